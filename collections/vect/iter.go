package vect

import (
	"iter"

	stringsengine "github.com/wippyai/strings-engine"
)

// rawValIter moves elements out of the half-open slot range [start, end),
// from either end. Yielded slots are reset to the zero value. For
// zero-sized element types there are no slots and start/end are plain
// counters.
type rawValIter[T any] struct {
	slots   []T
	start   int
	end     int
	counter bool
}

func newRawValIter[T any](slots []T, n int, zst bool) rawValIter[T] {
	if zst {
		return rawValIter[T]{end: n, counter: true}
	}
	return rawValIter[T]{slots: slots[:n], end: n}
}

func (it *rawValIter[T]) next() (T, bool) {
	var zero T
	if it.start == it.end {
		return zero, false
	}
	if it.counter {
		it.start++
		return zero, true
	}
	elem := it.slots[it.start]
	it.slots[it.start] = zero
	it.start++
	return elem, true
}

func (it *rawValIter[T]) nextBack() (T, bool) {
	var zero T
	if it.start == it.end {
		return zero, false
	}
	it.end--
	if it.counter {
		return zero, true
	}
	elem := it.slots[it.end]
	it.slots[it.end] = zero
	return elem, true
}

// len is the exact number of elements left.
func (it *rawValIter[T]) len() int {
	return it.end - it.start
}

// destroyRest destroys every element not yet yielded.
func (it *rawValIter[T]) destroyRest() {
	for {
		elem, ok := it.next()
		if !ok {
			return
		}
		stringsengine.Destroy(elem)
	}
}

// IntoIter is an owning iterator created by Vect.IntoIter. It holds the
// buffer so the remaining elements stay valid until they are yielded or the
// iterator is dropped.
type IntoIter[T any] struct {
	buf     rawVect[T]
	iter    rawValIter[T]
	dropped bool
}

// Next yields the next element from the front.
func (it *IntoIter[T]) Next() (T, bool) {
	return it.iter.next()
}

// NextBack yields the next element from the back.
func (it *IntoIter[T]) NextBack() (T, bool) {
	return it.iter.nextBack()
}

// Len returns the exact number of elements not yet yielded.
func (it *IntoIter[T]) Len() int {
	return it.iter.len()
}

// Drop destroys the elements not yet yielded, then releases the buffer.
func (it *IntoIter[T]) Drop() {
	if it.dropped {
		return
	}
	it.iter.destroyRest()
	it.buf.release()
	it.dropped = true
}

// Seq yields the remaining elements front to back and drops the iterator
// when the loop ends, including on break.
func (it *IntoIter[T]) Seq() iter.Seq[T] {
	return seq(it.Next, it.Drop)
}

// Backward yields the remaining elements back to front and drops the
// iterator when the loop ends.
func (it *IntoIter[T]) Backward() iter.Seq[T] {
	return seq(it.NextBack, it.Drop)
}

// Drain is the iterator returned by Vect.Drain. The source Vect is already
// empty; the Drain borrows its buffer until dropped.
type Drain[T any] struct {
	vec  *Vect[T]
	iter rawValIter[T]
}

// Next yields the next element from the front.
func (d *Drain[T]) Next() (T, bool) {
	return d.iter.next()
}

// NextBack yields the next element from the back.
func (d *Drain[T]) NextBack() (T, bool) {
	return d.iter.nextBack()
}

// Len returns the exact number of elements not yet yielded.
func (d *Drain[T]) Len() int {
	return d.iter.len()
}

// Drop destroys the elements not yet yielded and returns the buffer to the
// source Vect.
func (d *Drain[T]) Drop() {
	if d.vec == nil {
		return
	}
	d.iter.destroyRest()
	d.vec.draining = false
	d.vec = nil
}

// Seq yields the remaining elements front to back and drops the drain when
// the loop ends, including on break.
func (d *Drain[T]) Seq() iter.Seq[T] {
	return seq(d.Next, d.Drop)
}

// Backward yields the remaining elements back to front and drops the drain
// when the loop ends.
func (d *Drain[T]) Backward() iter.Seq[T] {
	return seq(d.NextBack, d.Drop)
}

func seq[T any](next func() (T, bool), drop func()) iter.Seq[T] {
	return func(yield func(T) bool) {
		defer drop()
		for {
			elem, ok := next()
			if !ok || !yield(elem) {
				return
			}
		}
	}
}
