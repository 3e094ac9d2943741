package vect

import (
	"iter"

	stringsengine "github.com/wippyai/strings-engine"
	"github.com/wippyai/strings-engine/errors"
	"github.com/wippyai/strings-engine/internal/assert"
	"github.com/wippyai/strings-engine/mem"
)

// Vect is a growable array. Slots [0, Len()) hold live elements; the rest
// of the capacity is unused. A Vect has a single owner and is not safe for
// concurrent use.
type Vect[T any] struct {
	buf      rawVect[T]
	len      int
	draining bool
}

// New creates an empty Vect charging the process-wide ledger. No memory is
// allocated until the first element is added.
func New[T any]() *Vect[T] {
	return NewWithLedger[T](nil)
}

// NewWithLedger creates an empty Vect charging l. A nil ledger means
// mem.Default().
func NewWithLedger[T any](l *mem.Ledger) *Vect[T] {
	return &Vect[T]{buf: newRawVect[T](l)}
}

// Len returns the number of live elements.
func (v *Vect[T]) Len() int { return v.len }

// Cap returns the number of slots available without growing. Zero-sized
// element types report math.MaxInt.
func (v *Vect[T]) Cap() int { return v.buf.cap }

// IsEmpty reports whether the Vect has no live elements.
func (v *Vect[T]) IsEmpty() bool { return v.len == 0 }

// Push appends elem, growing the buffer when it is full.
func (v *Vect[T]) Push(elem T) {
	v.checkBorrow(errors.PhasePush)
	if v.len == v.buf.cap {
		v.buf.grow()
	}
	if !v.buf.zst {
		v.buf.slots[v.len] = elem
	}
	v.len++
}

// Pop removes and returns the last element. It reports false when the Vect
// is empty.
func (v *Vect[T]) Pop() (T, bool) {
	v.checkBorrow(errors.PhasePop)
	var zero T
	if v.len == 0 {
		return zero, false
	}
	v.len--
	if v.buf.zst {
		return zero, true
	}
	elem := v.buf.slots[v.len]
	v.buf.slots[v.len] = zero
	return elem, true
}

// Insert places elem at index, shifting [index, Len()) one slot right.
// index must be in [0, Len()].
func (v *Vect[T]) Insert(index int, elem T) {
	v.checkBorrow(errors.PhaseInsert)
	if index < 0 || index > v.len {
		assert.Fail(Logger(), "0 <= index <= len", errors.OutOfBounds(errors.PhaseInsert, index, v.len))
	}
	if v.len == v.buf.cap {
		v.buf.grow()
	}
	if !v.buf.zst {
		copy(v.buf.slots[index+1:v.len+1], v.buf.slots[index:v.len])
		v.buf.slots[index] = elem
	}
	v.len++
}

// Remove returns the element at index, shifting [index+1, Len()) one slot
// left. index must be in [0, Len()).
func (v *Vect[T]) Remove(index int) T {
	v.checkBorrow(errors.PhaseRemove)
	if index < 0 || index >= v.len {
		assert.Fail(Logger(), "0 <= index < len", errors.OutOfBounds(errors.PhaseRemove, index, v.len))
	}
	v.len--
	var zero T
	if v.buf.zst {
		return zero
	}
	elem := v.buf.slots[index]
	copy(v.buf.slots[index:v.len], v.buf.slots[index+1:v.len+1])
	v.buf.slots[v.len] = zero
	return elem
}

// Get returns the element at index.
func (v *Vect[T]) Get(index int) T {
	v.checkIndex(index)
	if v.buf.zst {
		var zero T
		return zero
	}
	return v.buf.slots[index]
}

// Set overwrites the element at index. The previous element is destroyed.
func (v *Vect[T]) Set(index int, elem T) {
	v.checkIndex(index)
	var old T
	if v.buf.zst {
		stringsengine.Destroy(old)
		return
	}
	old = v.buf.slots[index]
	v.buf.slots[index] = elem
	stringsengine.Destroy(old)
}

// Slice returns a view of the live elements. Writes through the view update
// the Vect. The view is invalidated by any call that changes the length.
func (v *Vect[T]) Slice() []T {
	if v.buf.zst {
		// Zero-sized slices occupy no memory.
		return make([]T, v.len)
	}
	return v.buf.slots[:v.len:v.len]
}

// All iterates over index/element pairs without consuming them.
func (v *Vect[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, elem := range v.Slice() {
			if !yield(i, elem) {
				return
			}
		}
	}
}

// Drain empties the Vect immediately and returns an iterator over the
// elements it held, in order. The Vect keeps its buffer but cannot be used
// until the Drain is dropped; dropping it destroys any elements not yet
// yielded.
func (v *Vect[T]) Drain() *Drain[T] {
	v.checkBorrow(errors.PhaseDrain)
	it := newRawValIter(v.buf.slots, v.len, v.buf.zst)
	v.len = 0
	v.draining = true
	return &Drain[T]{iter: it, vec: v}
}

// IntoIter moves the elements and their buffer into an owning iterator.
// The Vect is left empty with no allocation and may be reused.
func (v *Vect[T]) IntoIter() *IntoIter[T] {
	v.checkBorrow(errors.PhaseDrain)
	it := &IntoIter[T]{
		iter: newRawValIter(v.buf.slots, v.len, v.buf.zst),
		buf:  v.buf,
	}
	v.buf = newRawVect[T](v.buf.alloc.Ledger())
	v.len = 0
	return it
}

// Drop destroys the live elements, last to first, then releases the
// buffer. Dropping an already dropped Vect does nothing.
func (v *Vect[T]) Drop() {
	v.checkBorrow(errors.PhaseDrain)
	for v.len > 0 {
		elem, _ := v.Pop()
		stringsengine.Destroy(elem)
	}
	v.buf.release()
}

func (v *Vect[T]) checkBorrow(phase errors.Phase) {
	if v.draining {
		assert.Fail(Logger(), "no open drain", errors.Borrowed(phase, mem.TypeName[T]()))
	}
}

func (v *Vect[T]) checkIndex(index int) {
	if index < 0 || index >= v.len {
		assert.Fail(Logger(), "0 <= index < len", errors.OutOfBounds(errors.PhaseAccess, index, v.len))
	}
}
