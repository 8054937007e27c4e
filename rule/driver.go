package rule

import (
	"fmt"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/morphon"
	"github.com/npillmayer/morphon/pattern"
	"github.com/npillmayer/morphon/shape"
)

// Driver applies a rule to a complete shape. Apply rewrites the shape in place
// and returns it, or returns false if the rule did not match anywhere.
type Driver interface {
	Apply(s *shape.Shape) (*shape.Shape, bool)
}

// state is the state of a rule driver.
type state int8

const (
	scanning state = iota // looking for the next start position
	matching              // trying the subrules at a position
	applying              // rewriting a match
	done
)

var stateNames = [...]string{"scanning", "matching", "applying", "done"}

func (st state) String() string {
	return stateNames[st]
}

// --- Iterative application -------------------------------------------------

// backtrackingDriver applies a rule iteratively: every match is rewritten as soon
// as it is found, and scanning resumes behind the match.
type backtrackingDriver struct {
	batch  *batch
	dir    morphon.Direction
	filter shape.Filter
}

var _ Driver = (*backtrackingDriver)(nil)

func (d *backtrackingDriver) Apply(s *shape.Shape) (*shape.Shape, bool) {
	var m *pattern.Match
	var sp *spec
	seq := s.Seq(d.dir, d.filter)
	count := 0
	st := scanning
	for st != done {
		switch st {
		case scanning:
			if seq.Done() {
				st = done
			} else {
				st = matching
			}
		case matching:
			if m, sp = d.batch.match(s, seq.First()); m == nil {
				seq.Next()
				st = scanning
			} else {
				st = applying
			}
		case applying:
			sp.applyOutput(m)
			count++
			seq.Reset(d.resume(s, m))
			st = scanning
		}
	}
	tracer().Debugf("iterative application: %d matches rewritten", count)
	if count == 0 {
		return nil, false
	}
	return s, true
}

// resume finds the position to continue scanning after a match has been
// rewritten. Scanning continues behind the match's target. Nodes inserted by an
// epenthesis rule lie behind the scanning position and are not scanned again.
// Matches of the empty sequence continue one position further, so every position
// is rewritten at most once.
func (d *backtrackingDriver) resume(s *shape.Shape, m *pattern.Match) shape.NodeID {
	if _, _, ok := m.Range(); !ok || m.Next == m.Start {
		return s.Step(m.Start, d.dir, d.filter)
	}
	return m.Next
}

// --- Simultaneous application ----------------------------------------------

// simultaneousDriver applies a rule simultaneously: all matches are collected
// before any of them is rewritten.
type simultaneousDriver struct {
	batch  *batch
	filter shape.Filter
}

var _ Driver = (*simultaneousDriver)(nil)

// candidate is a match found during the collecting scan.
type candidate struct {
	match *pattern.Match
	spec  *spec
	span  morphon.Span // target span
	seq   int          // scan position
}

func (c *candidate) String() string {
	return fmt.Sprintf("<candidate %s %s>", c.spec.id, c.span)
}

// byTargetStart orders candidates by the start of their target, then by scan
// position.
func byTargetStart(a, b interface{}) int {
	c1, c2 := a.(*candidate), b.(*candidate)
	if cmp := utils.IntComparator(c1.span.From(), c2.span.From()); cmp != 0 {
		return cmp
	}
	return utils.IntComparator(c1.seq, c2.seq)
}

func (d *simultaneousDriver) Apply(s *shape.Shape) (*shape.Shape, bool) {
	candidates := treeset.NewWith(byTargetStart)
	pos := 0
	st := scanning
	seq := s.Seq(morphon.LeftToRight, d.filter)
	for st != done {
		switch st {
		case scanning:
			if seq.Done() {
				st = done
			} else {
				st = matching
			}
		case matching:
			if m, sp := d.batch.match(s, seq.First()); m != nil {
				candidates.Add(&candidate{match: m, spec: sp, span: targetSpan(s, m, sp), seq: pos})
			}
			pos++
			seq.Next()
			st = scanning
		}
	}
	retained := retain(candidates)
	tracer().Debugf("simultaneous application: %d candidates, %d retained", candidates.Size(), len(retained))
	for _, c := range retained {
		c.spec.applyOutput(c.match)
	}
	if len(retained) == 0 {
		return nil, false
	}
	return s, true
}

// retain selects non-overlapping candidates. Candidates are visited by the start
// of their targets; a candidate overlapping one retained earlier is discarded.
func retain(candidates *treeset.Set) []*candidate {
	var retained []*candidate
	it := candidates.Iterator()
	for it.Next() {
		c := it.Value().(*candidate)
		overlapping := false
		for _, r := range retained {
			if r.span.Overlaps(c.span) {
				overlapping = true
				break
			}
		}
		if overlapping {
			tracer().Debugf("discarding %s", c)
			continue
		}
		retained = append(retained, c)
	}
	return retained
}

// targetSpan returns the span of positions covered by the target of a match.
// For an empty target this is the empty span at the gap.
func targetSpan(s *shape.Shape, m *pattern.Match, sp *spec) morphon.Span {
	if first, last, ok := m.Registers.Range(sp.target); ok {
		return s.Span(first, last)
	}
	pos := s.Position(m.Registers.Gap(sp.target))
	if sp.rule.Direction == morphon.RightToLeft {
		pos++ // the gap is right of the node
	}
	return morphon.Span{pos, pos}
}
