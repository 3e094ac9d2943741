package mem

import (
	"math"
	"reflect"
	"unsafe"

	"github.com/wippyai/strings-engine/errors"
	"github.com/wippyai/strings-engine/internal/assert"
)

// Allocator hands out zero-initialized storage for T charged to one ledger
// under one tag. Exhaustion of the Go heap aborts the process; there is no
// error path.
type Allocator[T any] struct {
	ledger *Ledger
	tag    Tag
}

// For binds an allocator for T to a ledger and tag. A nil ledger means
// Default().
func For[T any](l *Ledger, tag Tag) Allocator[T] {
	if l == nil {
		l = defaultLedger
	}
	return Allocator[T]{ledger: l, tag: tag}
}

// Ledger returns the ledger charged by a.
func (a Allocator[T]) Ledger() *Ledger { return a.ledger }

// Tag returns the tag a charges under.
func (a Allocator[T]) Tag() Tag { return a.tag }

// Alloc returns count zero-valued slots and charges count*sizeof(T) bytes.
func (a Allocator[T]) Alloc(count int) []T {
	n := a.bytes(errors.PhaseAlloc, count)
	storage := make([]T, count)
	a.ledger.Charge(a.tag, n)
	return storage
}

// Dealloc releases storage previously returned by Alloc or Realloc. The
// whole block is released, measured by cap(storage), so a resliced view of
// it releases the same bytes. The slots are cleared so stale references do
// not outlive the release.
func (a Allocator[T]) Dealloc(storage []T) {
	n := a.bytes(errors.PhaseDealloc, cap(storage))
	a.ledger.Release(a.tag, n)
	clear(storage[:cap(storage)])
}

// Realloc returns newCount zero-valued slots holding a copy of the first
// min(len(storage), newCount) slots of storage, and releases the block
// behind storage.
func (a Allocator[T]) Realloc(storage []T, newCount int) []T {
	oldBytes := a.bytes(errors.PhaseRealloc, cap(storage))
	newBytes := a.bytes(errors.PhaseRealloc, newCount)

	grown := make([]T, newCount)
	copy(grown, storage)
	a.ledger.Move(a.tag, oldBytes, newBytes)
	clear(storage[:cap(storage)])
	return grown
}

func (a Allocator[T]) bytes(phase errors.Phase, count int) uint64 {
	if count < 0 {
		assert.Fail(a.ledger.logger(), "count >= 0", errors.New(phase, errors.KindInvalidInput).
			Tag(a.tag).
			ElemType(TypeName[T]()).
			Value(count).
			Detail("negative slot count %d", count).
			Build())
	}
	size := SizeOf[T]()
	if size != 0 && uint64(count) > math.MaxInt/size {
		assert.Fail(a.ledger.logger(), "count*size <= MaxInt", errors.New(phase, errors.KindOverflow).
			Tag(a.tag).
			ElemType(TypeName[T]()).
			Value(count).
			Detail("allocation too large").
			Build())
	}
	return uint64(count) * size
}

// SizeOf returns the size in bytes of one T.
func SizeOf[T any]() uint64 {
	var zero T
	return uint64(unsafe.Sizeof(zero))
}

// TypeName returns the Go type name of T for diagnostics.
func TypeName[T any]() string {
	return reflect.TypeFor[T]().String()
}

// Alloc returns count zero-valued slots of T from the process-wide ledger.
func Alloc[T any](count int, tag Tag) []T {
	return For[T](defaultLedger, tag).Alloc(count)
}

// Dealloc releases storage to the process-wide ledger.
func Dealloc[T any](storage []T, tag Tag) {
	For[T](defaultLedger, tag).Dealloc(storage)
}

// Realloc resizes storage against the process-wide ledger.
func Realloc[T any](storage []T, newCount int, tag Tag) []T {
	return For[T](defaultLedger, tag).Realloc(storage, newCount)
}
