package trace

import (
	"fmt"

	"github.com/npillmayer/morphon/rule"
	"github.com/pterm/pterm"
)

// Display is a tracer which records the rule applications of a derivation and
// renders them as a tree on the terminal:
//
//   t a d
//   ├── final-devoicing ⇒ t a t
//   └── h-deletion (subrule mismatch)
//
// Rules which have not been applied are listed only if ShowFailures is set.
type Display struct {
	*Recorder
	ShowFailures bool
}

var _ rule.Tracer = (*Display)(nil)

// NewDisplay creates a display with an empty derivation.
func NewDisplay(showFailures bool) *Display {
	return &Display{
		Recorder:     NewRecorder(),
		ShowFailures: showFailures,
	}
}

// Tree returns the recorded derivation of word as a leveled list. Applied rules
// get a sub-item with the input they have been applied to.
func (d *Display) Tree(word string) pterm.LeveledList {
	ll := pterm.LeveledList{pterm.LeveledListItem{Level: 0, Text: word}}
	for _, e := range d.Events() {
		if e.Applied {
			ll = append(ll, pterm.LeveledListItem{
				Level: 1,
				Text:  fmt.Sprintf("%s ⇒ %s", e.Rule.Name, e.Output),
			})
			ll = append(ll, pterm.LeveledListItem{
				Level: 2,
				Text:  fmt.Sprintf("from %s", e.Input),
			})
		} else if d.ShowFailures {
			ll = append(ll, pterm.LeveledListItem{
				Level: 1,
				Text:  fmt.Sprintf("%s (%s)", e.Rule.Name, e.Reason),
			})
		}
	}
	return ll
}

// Render prints the derivation of word to the terminal and clears the recorded
// events.
func (d *Display) Render(word string) {
	root := pterm.NewTreeFromLeveledList(d.Tree(word))
	pterm.DefaultTree.WithRoot(root).Render()
	d.Clear()
}
