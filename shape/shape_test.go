package shape

import (
	"testing"

	"github.com/npillmayer/morphon"
	"github.com/npillmayer/morphon/feature"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeShape(labels ...string) *Shape {
	s := New()
	for _, l := range labels {
		if l == "#" {
			s.Append(Boundary, l, nil)
		} else {
			s.Append(Segment, l, feature.Bundle{"seg": feature.Symbol(l)})
		}
	}
	return s
}

func TestNewShape(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphon.shape")
	defer teardown()
	//
	s := New()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, s.End(), s.Step(s.Begin(), morphon.LeftToRight, nil))
	assert.Equal(t, s.Begin(), s.First(morphon.LeftToRight, nil), "anchors are visible to the default filter")
	assert.Equal(t, s.End(), s.First(morphon.RightToLeft, nil))
	assert.True(t, s.IsSentinel(s.Step(s.End(), morphon.LeftToRight, nil)))
	assert.True(t, s.IsSentinel(s.Step(s.Begin(), morphon.RightToLeft, nil)))
}

func TestInsertKeepsIdentities(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphon.shape")
	defer teardown()
	//
	s := makeShape("p", "a", "t")
	ids := s.Nodes()
	require.Len(t, ids, 3)
	x := s.InsertBefore(ids[1], Segment, "ə", nil)
	y := s.InsertAfter(ids[2], Segment, "o", nil)
	assert.Equal(t, "p ə a t o", s.String())
	assert.Equal(t, []NodeID{ids[0], x, ids[1], ids[2], y}, s.Nodes())
	assert.Equal(t, -1, s.Compare(x, ids[1]))
	assert.Equal(t, 1, s.Compare(y, ids[2]))
	assert.Panics(t, func() { s.InsertBefore(s.Begin(), Segment, "x", nil) })
	assert.Panics(t, func() { s.InsertAfter(s.End(), Segment, "x", nil) })
}

func TestDeleteAndCompact(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphon.shape")
	defer teardown()
	//
	s := makeShape("p", "a", "h", "a")
	ids := s.Nodes()
	_, err := s.Annotate("morph", ids[1], ids[2], nil)
	require.NoError(t, err)
	_, err = s.Annotate("suffix", ids[2], ids[2], nil)
	require.NoError(t, err)
	s.MarkDeleted(ids[2])
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, 3, s.LiveLen())
	assert.Equal(t, "p a a", s.String())
	assert.Equal(t, ids[3], s.Step(ids[1], morphon.LeftToRight, nil), "deleted nodes are skipped by the default filter")
	assert.Equal(t, 1, s.Compact())
	assert.Equal(t, 3, s.Len())
	require.Len(t, s.Annotations(), 1, "annotation without nodes should be dropped")
	a := s.Annotations()[0]
	assert.Equal(t, ids[1], a.Start)
	assert.Equal(t, ids[1], a.End)
	assert.Panics(t, func() { s.MarkDeleted(s.Begin()) })
}

func TestAnnotationsAt(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphon.shape")
	defer teardown()
	//
	s := makeShape("k", "a", "t", "a")
	ids := s.Nodes()
	_, err := s.Annotate("root", ids[0], ids[2], nil)
	require.NoError(t, err)
	_, err = s.Annotate("syllable", ids[2], ids[3], nil)
	require.NoError(t, err)
	_, err = s.Annotate("bad", ids[3], ids[0], nil)
	assert.Error(t, err)
	assert.Len(t, s.AnnotationsAt(ids[0]), 1)
	assert.Len(t, s.AnnotationsAt(ids[2]), 2)
	x := s.InsertAfter(ids[1], Segment, "ː", nil) // inside the root annotation
	assert.Len(t, s.AnnotationsAt(x), 1)
}

func TestSeq(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphon.shape")
	defer teardown()
	//
	s := makeShape("t", "a", "#", "a")
	ids := s.Nodes()
	seq := s.Seq(morphon.LeftToRight, TypeFilter(Segment))
	assert.Equal(t, []NodeID{ids[0], ids[1], ids[3]}, seq.List())
	seq = s.Seq(morphon.RightToLeft, nil)
	all := seq.List()
	require.Len(t, all, 6)
	assert.Equal(t, s.End(), all[0])
	assert.Equal(t, s.Begin(), all[5])
	seq = s.Seq(morphon.LeftToRight, nil)
	vowels := seq.Where(func(n *Node) bool { return n.Label == "a" })
	assert.Equal(t, []NodeID{ids[1], ids[3]}, vowels.List())
}

func TestSeqReset(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphon.shape")
	defer teardown()
	//
	s := makeShape("a", "t", "a")
	ids := s.Nodes()
	seq := s.Seq(morphon.LeftToRight, TypeFilter(Segment))
	assert.Equal(t, ids[0], seq.First())
	x := s.InsertBefore(ids[1], Segment, "ə", nil) // behind the scanning position
	seq.Reset(ids[1])
	assert.Equal(t, []NodeID{ids[1], ids[2]}, seq.List(), "inserted node must not be visited")
	assert.True(t, seq.Done())
	seq.Reset(x)
	assert.False(t, seq.Done())
	assert.Equal(t, ids[1], seq.Next())
	seq.Reset(s.Step(ids[2], morphon.LeftToRight, TypeFilter(Segment)))
	assert.True(t, seq.Done(), "resetting to a sentinel ends the sequence")
	seq = s.Seq(morphon.RightToLeft, TypeFilter(Segment))
	s.MarkDeleted(ids[1])
	seq.Reset(ids[2])
	assert.Equal(t, x, seq.Next(), "deleted nodes are skipped")
}

func TestRange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphon.shape")
	defer teardown()
	//
	s := makeShape("t", "a", "#", "a")
	ids := s.Nodes()
	s.MarkDeleted(ids[1])
	assert.Equal(t, []NodeID{ids[0], ids[2], ids[3]}, s.Range(ids[0], ids[3], nil))
	assert.Panics(t, func() { s.Range(ids[3], ids[0], nil) })
}

func TestCloneAndFingerprint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphon.shape")
	defer teardown()
	//
	s1 := makeShape("t", "a", "#", "a")
	s2 := makeShape("t", "a", "#", "a")
	c := s1.Clone()
	f1, err := s1.Fingerprint()
	require.NoError(t, err)
	f2, err := s2.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, f1, f2, "structurally identical shapes should have equal fingerprints")
	c.Node(c.Nodes()[0]).Features["voice"] = feature.Plus
	fc, err := c.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, f1, fc)
	_, ok := s1.Node(s1.Nodes()[0]).Features["voice"]
	assert.False(t, ok, "clone must not share feature bundles with the original")
}
