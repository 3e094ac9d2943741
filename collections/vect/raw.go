package vect

import (
	"math"

	"go.uber.org/zap"

	"github.com/wippyai/strings-engine/errors"
	"github.com/wippyai/strings-engine/internal/assert"
	"github.com/wippyai/strings-engine/mem"
)

// rawVect owns the slots of a Vect: one TagVector allocation holding cap
// slots, none of which it considers initialized. Zero-sized element types
// own nothing and report an unbounded capacity.
type rawVect[T any] struct {
	alloc mem.Allocator[T]
	slots []T
	cap   int
	zst   bool
}

func newRawVect[T any](l *mem.Ledger) rawVect[T] {
	r := rawVect[T]{
		alloc: mem.For[T](l, mem.TagVector),
		zst:   mem.SizeOf[T]() == 0,
	}
	if r.zst {
		r.cap = math.MaxInt
	}
	return r
}

// grow doubles the capacity, starting from one slot.
func (r *rawVect[T]) grow() {
	// Zero-sized buffers start at MaxInt, so getting here means the element
	// count itself overflowed.
	if r.zst {
		assert.Fail(Logger(), "sizeof(T) != 0", errors.CapacityOverflow(errors.PhaseGrow, mem.TypeName[T](), "capacity overflow"))
	}

	newCap := 1
	if r.cap != 0 {
		if r.cap > math.MaxInt/2 {
			assert.Fail(Logger(), "cap <= MaxInt/2", errors.CapacityOverflow(errors.PhaseGrow, mem.TypeName[T](), "capacity overflow"))
		}
		newCap = 2 * r.cap
	}

	size := mem.SizeOf[T]()
	if uint64(newCap) > math.MaxInt/size {
		assert.Fail(Logger(), "cap*size <= MaxInt", errors.CapacityOverflow(errors.PhaseGrow, mem.TypeName[T](), "allocation too large"))
	}

	Logger().Debug("vect grow",
		zap.String("elem", mem.TypeName[T]()),
		zap.Int("from", r.cap),
		zap.Int("to", newCap),
		zap.Uint64("elem_size", size),
	)

	r.slots = r.alloc.Realloc(r.slots, newCap)
	r.cap = newCap
}

// release returns the allocation to the ledger. It never destroys
// elements; the owner must have done so already.
func (r *rawVect[T]) release() {
	if r.cap != 0 && !r.zst {
		r.alloc.Dealloc(r.slots)
		r.slots = nil
		r.cap = 0
	}
}
