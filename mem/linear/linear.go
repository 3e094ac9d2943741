package linear

import (
	"context"

	"github.com/tetratelabs/wazero/experimental"
	"go.uber.org/zap"

	"github.com/wippyai/strings-engine/mem"
)

// NewAllocator returns a wazero memory allocator whose linear memories are
// charged to l under tag. Committed bytes are charged on every resize and
// released when the guest memory is freed.
func NewAllocator(l *mem.Ledger, tag mem.Tag) experimental.MemoryAllocator {
	if l == nil {
		l = mem.Default()
	}
	return experimental.MemoryAllocatorFunc(func(cap, max uint64) experimental.LinearMemory {
		return newLinearMemory(l, tag, cap, max)
	})
}

// WithLedger returns a context under which wazero instantiates guest
// memories through NewAllocator(l, tag).
func WithLedger(ctx context.Context, l *mem.Ledger, tag mem.Tag) context.Context {
	return experimental.WithMemoryAllocator(ctx, NewAllocator(l, tag))
}

// linearMemory is a guest memory that keeps the ledger in step with its
// committed length.
type linearMemory struct {
	ledger  *mem.Ledger
	res     reservation
	buf     []byte
	tag     mem.Tag
	max     uint64
	charged uint64
}

// reservation backs a linear memory. slice returns the first size bytes of
// the backing store, growing it if needed; free returns it to the system.
type reservation interface {
	slice(size uint64) []byte
	free()
}

func newLinearMemory(l *mem.Ledger, tag mem.Tag, cap, max uint64) *linearMemory {
	res, err := reserve(max)
	if err != nil {
		Logger().Warn("linear memory reservation failed, falling back to heap",
			zap.Uint64("max", max),
			zap.Error(err),
		)
		res = newHeapReservation(cap)
	}
	return &linearMemory{ledger: l, res: res, tag: tag, max: max}
}

// Reallocate implements experimental.LinearMemory. Requests beyond the
// declared maximum fail with nil.
func (m *linearMemory) Reallocate(size uint64) []byte {
	if size > m.max {
		Logger().Debug("linear memory grow beyond max",
			zap.Uint64("size", size),
			zap.Uint64("max", m.max),
		)
		return nil
	}
	m.buf = m.res.slice(size)
	m.ledger.Move(m.tag, m.charged, size)
	m.charged = size
	return m.buf
}

// Free implements experimental.LinearMemory.
func (m *linearMemory) Free() {
	if m.res == nil {
		return
	}
	m.res.free()
	m.ledger.Release(m.tag, m.charged)
	m.res, m.buf, m.charged = nil, nil, 0
}

// heapReservation is a moving, Go-heap backed store.
type heapReservation struct {
	buf []byte
}

func newHeapReservation(cap uint64) *heapReservation {
	return &heapReservation{buf: make([]byte, 0, cap)}
}

func (r *heapReservation) slice(size uint64) []byte {
	if c := uint64(cap(r.buf)); size > c {
		r.buf = append(r.buf[:c], make([]byte, size-c)...)
	}
	r.buf = r.buf[:size]
	return r.buf
}

func (r *heapReservation) free() {
	r.buf = nil
}
