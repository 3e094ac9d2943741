package vect

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/strings-engine/errors"
	"github.com/wippyai/strings-engine/mem"
)

func TestZeroSized_NeverAllocates(t *testing.T) {
	l := mem.NewLedger(nil)
	v := NewWithLedger[struct{}](l)
	assert.Equal(t, math.MaxInt, v.Cap())

	for i := 0; i < 5000; i++ {
		v.Push(struct{}{})
		if i%3 == 0 {
			_, ok := v.Pop()
			require.True(t, ok)
		}
		require.Zero(t, l.TotalAllocation())
		require.Zero(t, l.TaggedAllocation(mem.TagVector))
	}
	assert.Equal(t, 5000-1667, v.Len())

	v.Insert(10, struct{}{})
	v.Remove(0)
	assert.Len(t, v.Slice(), 5000-1667)

	for v.Len() > 0 {
		_, ok := v.Pop()
		require.True(t, ok)
	}
	_, ok := v.Pop()
	assert.False(t, ok)
	v.Drop()
	assert.Zero(t, l.TotalAllocation())
}

func TestZeroSized_DestroysEachElement(t *testing.T) {
	markerDrops = 0
	v := NewWithLedger[marker](mem.NewLedger(nil))
	for range 100 {
		v.Push(marker{})
	}

	d := v.Drain()
	assert.Equal(t, 100, d.Len())
	for range 40 {
		m, ok := d.Next()
		require.True(t, ok)
		m.Drop()
	}
	m, _ := d.NextBack()
	m.Drop()
	assert.Equal(t, 59, d.Len(), "counter cursors report the exact remainder")
	d.Drop()
	assert.Equal(t, 100, markerDrops)

	for range 7 {
		v.Push(marker{})
	}
	it := v.IntoIter()
	assert.Equal(t, 7, it.Len())
	it.Drop()
	assert.Equal(t, 107, markerDrops)

	for range 3 {
		v.Push(marker{})
	}
	v.Drop()
	assert.Equal(t, 110, markerDrops)
}

func TestZeroSized_CountOverflowIsFatal(t *testing.T) {
	v := NewWithLedger[struct{}](mem.NewLedger(nil))
	v.len = math.MaxInt

	err := catch(func() { v.Push(struct{}{}) })
	require.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseGrow, Kind: errors.KindOverflow})

	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "struct {}", e.ElemType)
}

func TestGrow_AllocationTooLargeIsFatal(t *testing.T) {
	v := NewWithLedger[[1 << 20]byte](mem.NewLedger(nil))
	v.buf.cap = math.MaxInt >> 20
	v.len = v.buf.cap

	err := catch(func() { v.Push([1 << 20]byte{}) })
	require.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseGrow, Kind: errors.KindOverflow})
}
