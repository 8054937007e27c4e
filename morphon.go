package morphon

import "fmt"

// --- Direction -------------------------------------------------------------

// Direction is the direction in which a matcher or a rule driver walks a shape.
type Direction int8

// Directions for matching and scanning.
const (
	LeftToRight Direction = iota
	RightToLeft
)

func (d Direction) String() string {
	if d == RightToLeft {
		return "RtoL"
	}
	return "LtoR"
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == RightToLeft {
		return LeftToRight
	}
	return RightToLeft
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a run of positions in a shape. Positions are
// order indices of nodes, not node identities, and therefore only valid as long as
// the shape is not modified. A span denotes a start position and the position just
// behind the end.
type Span [2]int // (x…y)

// From returns the start value of a span.
func (s Span) From() int {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() int {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() int {
	return s[1] - s[0]
}

// IsNull is true for the zero span.
func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering both s and other.
func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

// Overlaps is true if s and other share at least one position. Empty spans
// denote the gap before their start position; two gaps overlap if they are
// identical, a gap overlaps a non-empty span if it lies strictly inside of it.
func (s Span) Overlaps(other Span) bool {
	switch {
	case s.Len() == 0 && other.Len() == 0:
		return s[0] == other[0]
	case s.Len() == 0:
		return other[0] < s[0] && s[0] < other[1]
	case other.Len() == 0:
		return s[0] < other[0] && other[0] < s[1]
	}
	return s[0] < other[1] && other[0] < s[1]
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
