package morphon

import "testing"

func TestSpanOverlaps(t *testing.T) {
	var tests = []struct {
		a, b    Span
		overlap bool
	}{
		{Span{0, 3}, Span{5, 8}, false},
		{Span{0, 3}, Span{2, 4}, true},
		{Span{0, 3}, Span{3, 4}, false},
		{Span{2, 2}, Span{2, 2}, true},
		{Span{2, 2}, Span{3, 3}, false},
		{Span{2, 2}, Span{1, 4}, true},
		{Span{1, 1}, Span{1, 4}, false}, // gap in front of the span
		{Span{4, 4}, Span{1, 4}, false}, // gap behind the span
	}
	for i, test := range tests {
		if test.a.Overlaps(test.b) != test.overlap {
			t.Errorf("test #%d: expected %v overlaps %v to be %v", i, test.a, test.b, test.overlap)
		}
		if test.b.Overlaps(test.a) != test.overlap {
			t.Errorf("test #%d: overlap is not symmetric for %v, %v", i, test.a, test.b)
		}
	}
}

func TestSpanExtend(t *testing.T) {
	s := Span{3, 5}.Extend(Span{1, 4})
	if s.From() != 1 || s.To() != 5 || s.Len() != 4 {
		t.Errorf("expected (1…5), have %v", s)
	}
	if !(Span{}).IsNull() {
		t.Errorf("zero span should be null")
	}
}

func TestDirectionReverse(t *testing.T) {
	if LeftToRight.Reverse() != RightToLeft || RightToLeft.Reverse() != LeftToRight {
		t.Errorf("Reverse should flip the direction")
	}
}
