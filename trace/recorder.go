package trace

import (
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/google/uuid"
	"github.com/npillmayer/morphon/rule"
	"github.com/npillmayer/morphon/shape"
)

// Event is a recorded rule application.
type Event struct {
	ID      uuid.UUID
	Rule    *rule.Rule
	Input   *shape.Shape // snapshot of the input
	Output  *shape.Shape // snapshot of the output; nil if the rule has not been applied
	Applied bool
	Reason  rule.FailureReason // if not applied
}

func (e Event) String() string {
	if e.Applied {
		return fmt.Sprintf("%s: %s ⇒ %s", e.Rule.Name, e.Input, e.Output)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Rule.Name, e.Input, e.Reason)
}

// Recorder is a tracer keeping a log of events. Shapes are copied when an event
// is recorded, as they may be rewritten by subsequent rules.
//
// A recorder is not safe for concurrent use.
type Recorder struct {
	events *arraylist.List
}

var _ rule.Tracer = (*Recorder)(nil)

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{events: arraylist.New()}
}

// RuleApplied is part of interface rule.Tracer.
func (rec *Recorder) RuleApplied(r *rule.Rule, input, output *shape.Shape) {
	rec.events.Add(Event{
		ID:      uuid.New(),
		Rule:    r,
		Input:   input.Clone(),
		Output:  output.Clone(),
		Applied: true,
	})
}

// RuleNotApplied is part of interface rule.Tracer.
func (rec *Recorder) RuleNotApplied(r *rule.Rule, input *shape.Shape, reason rule.FailureReason) {
	rec.events.Add(Event{
		ID:     uuid.New(),
		Rule:   r,
		Input:  input.Clone(),
		Reason: reason,
	})
}

// Len returns the number of events recorded.
func (rec *Recorder) Len() int {
	return rec.events.Size()
}

// Events returns all events, in order.
func (rec *Recorder) Events() []Event {
	return toEvents(rec.events)
}

// Applied returns the events for rules which have been applied.
func (rec *Recorder) Applied() []Event {
	return toEvents(rec.events.Select(func(_ int, v interface{}) bool {
		return v.(Event).Applied
	}))
}

// Find returns the event with a given ID.
func (rec *Recorder) Find(id uuid.UUID) (Event, bool) {
	_, v := rec.events.Find(func(_ int, v interface{}) bool {
		return v.(Event).ID == id
	})
	if v == nil {
		return Event{}, false
	}
	return v.(Event), true
}

// Clear removes all events.
func (rec *Recorder) Clear() {
	rec.events.Clear()
}

func toEvents(l *arraylist.List) []Event {
	events := make([]Event, 0, l.Size())
	it := l.Iterator()
	for it.Next() {
		events = append(events, it.Value().(Event))
	}
	return events
}
