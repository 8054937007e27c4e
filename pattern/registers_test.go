package pattern

import (
	"testing"

	"github.com/npillmayer/morphon/shape"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestRegistersSparse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "morphon.pattern")
	defer teardown()
	//
	r := newRegisters()
	r.set(2, regGap, 7)
	r.set(0, regEnd, 9)
	r.set(0, regStart, 5)
	r.set(0, regGap, 5)
	r.set(2, regGap, 8) // overwrite
	assert.Equal(t, 4, r.ValueCount())
	assert.Equal(t, shape.NodeID(5), r.Start(0))
	assert.Equal(t, shape.NodeID(9), r.End(0))
	assert.Equal(t, shape.NodeID(8), r.Gap(2))
	assert.Equal(t, shape.Nil, r.Start(1))
	_, _, ok := r.Range(2)
	assert.False(t, ok, "group 2 is empty")
	assert.True(t, r.Matched(2))
	assert.False(t, r.Matched(1))
	assert.Equal(t, []int{0, 2}, r.Groups())
	assert.Equal(t, "{0:[5,9] 2:gap@8}", r.String())
	for i := 1; i < len(r.values); i++ {
		assert.True(t, r.values[i-1].storedLeftOf(r.values[i].group, r.values[i].col), "triplets must be sorted")
	}
}
