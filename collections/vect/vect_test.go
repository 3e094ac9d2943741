package vect

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/strings-engine/errors"
	"github.com/wippyai/strings-engine/mem"
)

func TestVect_Scenario(t *testing.T) {
	l := mem.NewLedger(nil)
	v := NewWithLedger[int](l)
	defer v.Drop()

	for i := range 5 {
		v.Push(i)
	}
	if diff := cmp.Diff([]int{0, 1, 2, 3, 4}, v.Slice()); diff != "" {
		t.Fatalf("after push (-want +got):\n%s", diff)
	}

	require.Equal(t, 2, v.Remove(2))
	if diff := cmp.Diff([]int{0, 1, 3, 4}, v.Slice()); diff != "" {
		t.Fatalf("after remove (-want +got):\n%s", diff)
	}

	v.Insert(1, 9)
	if diff := cmp.Diff([]int{0, 9, 1, 3, 4}, v.Slice()); diff != "" {
		t.Fatalf("after insert (-want +got):\n%s", diff)
	}
}

func TestVect_PushPopIsLIFO(t *testing.T) {
	for _, tc := range []struct{ pushes, pops int }{
		{0, 0}, {1, 1}, {5, 3}, {17, 17}, {100, 1}, {64, 0},
	} {
		v := NewWithLedger[int](mem.NewLedger(nil))
		for i := 0; i < tc.pushes; i++ {
			v.Push(i * 3)
		}
		for i := 0; i < tc.pops; i++ {
			got, ok := v.Pop()
			require.True(t, ok)
			require.Equal(t, (tc.pushes-1-i)*3, got)
		}
		require.Equal(t, tc.pushes-tc.pops, v.Len())
		v.Drop()
	}
}

func TestVect_PopEmpty(t *testing.T) {
	v := New[string]()
	got, ok := v.Pop()
	assert.False(t, ok)
	assert.Empty(t, got)
	assert.True(t, v.IsEmpty())
}

func TestVect_InsertRemoveRoundTrip(t *testing.T) {
	base := []string{"a", "b", "c", "d"}
	for i := 0; i <= len(base); i++ {
		v := NewWithLedger[string](mem.NewLedger(nil))
		for _, s := range base {
			v.Push(s)
		}
		v.Insert(i, "x")
		require.Equal(t, "x", v.Get(i))
		require.Equal(t, "x", v.Remove(i))
		require.Equal(t, base, v.Slice(), "insert at %d", i)
		v.Drop()
	}
}

func TestVect_IndexFaults(t *testing.T) {
	v := NewWithLedger[int](mem.NewLedger(nil))
	v.Push(1)
	v.Push(2)
	defer v.Drop()

	tests := []struct {
		name  string
		phase errors.Phase
		fn    func()
	}{
		{"insert past end", errors.PhaseInsert, func() { v.Insert(3, 0) }},
		{"insert negative", errors.PhaseInsert, func() { v.Insert(-1, 0) }},
		{"remove at len", errors.PhaseRemove, func() { v.Remove(2) }},
		{"remove negative", errors.PhaseRemove, func() { v.Remove(-1) }},
		{"get at len", errors.PhaseAccess, func() { v.Get(2) }},
		{"set at len", errors.PhaseAccess, func() { v.Set(2, 0) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := catch(tt.fn)
			require.ErrorIs(t, err, &errors.Error{Phase: tt.phase, Kind: errors.KindOutOfBounds})
			assert.Equal(t, []int{1, 2}, v.Slice(), "failed call must not modify")
		})
	}

	v.Insert(2, 3)
	assert.Equal(t, []int{1, 2, 3}, v.Slice(), "insert at len appends")
}

func TestVect_GrowthChargesLedger(t *testing.T) {
	l := mem.NewLedger(nil)
	v := NewWithLedger[int64](l)

	assert.Zero(t, v.Cap())
	assert.Zero(t, l.TotalAllocation(), "empty Vect allocates nothing")

	wantCaps := []int{1, 2, 4, 4, 8, 8, 8, 8, 16}
	for i, want := range wantCaps {
		v.Push(int64(i))
		require.Equal(t, want, v.Cap(), "after %d pushes", i+1)
		require.Equal(t, uint64(want*8), l.TaggedAllocation(mem.TagVector))
		require.Equal(t, l.TaggedAllocation(mem.TagVector), l.TotalAllocation())
	}

	v.Drop()
	assert.Zero(t, v.Cap())
	assert.Zero(t, l.TotalAllocation())

	v.Drop()
	assert.Zero(t, l.TotalAllocation(), "second Drop is a no-op")
}

func TestVect_DropDestroysLastToFirst(t *testing.T) {
	l := mem.NewLedger(nil)
	log := newDropLog()
	v := NewWithLedger[tracked](l)
	for i := range 6 {
		v.Push(tracked{log: log, id: i})
	}

	v.Drop()
	log.requireEachOnce(t, 6)
	assert.Equal(t, []int{5, 4, 3, 2, 1, 0}, log.order)
	assert.Zero(t, l.TotalAllocation())
}

// ledgerSpy records the Vector bytes outstanding when it is destroyed.
type ledgerSpy struct {
	l    *mem.Ledger
	seen *[]uint64
}

func (p ledgerSpy) Drop() {
	*p.seen = append(*p.seen, p.l.TaggedAllocation(mem.TagVector))
}

func TestVect_DropDestroysBeforeRelease(t *testing.T) {
	l := mem.NewLedger(nil)
	var seen []uint64
	v := NewWithLedger[ledgerSpy](l)
	for range 3 {
		v.Push(ledgerSpy{l: l, seen: &seen})
	}
	charged := l.TaggedAllocation(mem.TagVector)
	require.NotZero(t, charged)

	v.Drop()
	assert.Equal(t, []uint64{charged, charged, charged}, seen)
	assert.Zero(t, l.TotalAllocation())
}

func TestVect_SetDestroysPrevious(t *testing.T) {
	log := newDropLog()
	v := NewWithLedger[tracked](mem.NewLedger(nil))
	v.Push(tracked{log: log, id: 0})
	v.Set(0, tracked{log: log, id: 1})

	assert.Equal(t, map[int]int{0: 1}, log.counts)
	assert.Equal(t, 1, v.Get(0).id)

	v.Drop()
	log.requireEachOnce(t, 2)
}

func TestVect_SliceWritesThrough(t *testing.T) {
	v := NewWithLedger[int](mem.NewLedger(nil))
	defer v.Drop()
	for i := range 4 {
		v.Push(i)
	}

	s := v.Slice()
	for i := range s {
		s[i] *= 10
	}
	assert.Equal(t, []int{0, 10, 20, 30}, v.Slice())
	assert.Equal(t, 4, cap(s), "view is capped at Len")
}

func TestVect_All(t *testing.T) {
	v := NewWithLedger[string](mem.NewLedger(nil))
	defer v.Drop()
	for _, s := range []string{"x", "y", "z"} {
		v.Push(s)
	}

	var got []string
	for i, s := range v.All() {
		if i == 2 {
			break
		}
		got = append(got, s)
	}
	assert.Equal(t, []string{"x", "y"}, got)
	assert.Equal(t, 3, v.Len(), "All does not consume")
}
