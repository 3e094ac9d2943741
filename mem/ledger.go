package mem

import (
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/wippyai/strings-engine/errors"
	"github.com/wippyai/strings-engine/internal/assert"
)

// LedgerConfig holds configuration for ledger creation
type LedgerConfig struct {
	// Logger receives Unknown-tag warnings and fatal assertion reports.
	// nil means the package logger (see SetLogger).
	Logger *zap.Logger

	// AtomicRealloc applies a resize as one net delta per counter instead of
	// a release followed by a charge. With the two-step default a concurrent
	// reader can observe the old bytes already released and the new bytes
	// not yet charged.
	AtomicRealloc bool
}

// Ledger counts bytes outstanding, in total and per tag. Every counter is
// individually atomic; the total equals the sum of the tag counters only
// once concurrent updates have settled.
type Ledger struct {
	log           *zap.Logger
	total         atomic.Uint64
	tagged        [NumTags]atomic.Uint64
	atomicRealloc bool
}

// Usage is a best-effort snapshot of a ledger. Under concurrent allocation
// it may be torn: each counter is read atomically, the set is not.
type Usage struct {
	Tagged [NumTags]uint64
	Total  uint64
}

var defaultLedger = NewLedger(nil)

// NewLedger creates an empty ledger. A nil cfg uses defaults.
func NewLedger(cfg *LedgerConfig) *Ledger {
	l := &Ledger{}
	if cfg != nil {
		l.log = cfg.Logger
		l.atomicRealloc = cfg.AtomicRealloc
	}
	return l
}

// Default returns the process-wide ledger used by the package-level
// allocation functions.
func Default() *Ledger {
	return defaultLedger
}

// Init prepares the memory subsystem. The process-wide ledger needs no setup;
// the hook is kept so start-up order stays explicit.
func Init() {
	Logger().Debug("memory subsystem initialized")
}

// Close shuts the memory subsystem down, warning about any bytes still
// outstanding in the process-wide ledger.
func Close() {
	u := defaultLedger.Snapshot()
	if u.Total == 0 {
		return
	}
	fields := []zap.Field{zap.Uint64("total", u.Total)}
	for _, tag := range Tags() {
		if u.Tagged[tag] != 0 {
			fields = append(fields, zap.Uint64(tag.String(), u.Tagged[tag]))
		}
	}
	defaultLedger.logger().Warn("memory still allocated at shutdown", fields...)
}

// TotalAllocation returns the bytes outstanding in the process-wide ledger.
func TotalAllocation() uint64 {
	return defaultLedger.TotalAllocation()
}

// TaggedAllocation returns the bytes outstanding under tag in the
// process-wide ledger.
func TaggedAllocation(tag Tag) uint64 {
	return defaultLedger.TaggedAllocation(tag)
}

// TotalAllocation returns the bytes outstanding across all tags.
func (l *Ledger) TotalAllocation() uint64 {
	return l.total.Load()
}

// TaggedAllocation returns the bytes outstanding under tag.
func (l *Ledger) TaggedAllocation(tag Tag) uint64 {
	l.checkTag(errors.PhaseLedger, tag)
	return l.tagged[tag].Load()
}

// Snapshot reads every counter. The result is not a transaction.
func (l *Ledger) Snapshot() Usage {
	var u Usage
	for i := range l.tagged {
		u.Tagged[i] = l.tagged[i].Load()
	}
	u.Total = l.total.Load()
	return u
}

// Charge records n newly allocated bytes under tag.
func (l *Ledger) Charge(tag Tag, n uint64) {
	l.checkTag(errors.PhaseAlloc, tag)
	l.warnUnknown("alloc", tag, n)
	l.tagged[tag].Add(n)
	l.total.Add(n)
}

// Release records n bytes returned under tag. Releasing more than is
// outstanding is fatal.
func (l *Ledger) Release(tag Tag, n uint64) {
	l.checkTag(errors.PhaseDealloc, tag)
	l.warnUnknown("dealloc", tag, n)
	l.release(tag, n)
}

// Move records a resize under tag from oldBytes to newBytes.
func (l *Ledger) Move(tag Tag, oldBytes, newBytes uint64) {
	l.checkTag(errors.PhaseRealloc, tag)
	l.warnUnknown("realloc", tag, newBytes)

	if !l.atomicRealloc {
		l.release(tag, oldBytes)
		l.tagged[tag].Add(newBytes)
		l.total.Add(newBytes)
		return
	}

	if newBytes >= oldBytes {
		l.tagged[tag].Add(newBytes - oldBytes)
		l.total.Add(newBytes - oldBytes)
		return
	}
	l.release(tag, oldBytes-newBytes)
}

// release subtracts n from the tag counter and the total. If either would
// underflow, both are left as they were before the fault is raised.
func (l *Ledger) release(tag Tag, n uint64) {
	if have, ok := sub(&l.tagged[tag], n); !ok {
		assert.Fail(l.logger(), "outstanding >= released", errors.Underflow(tag.String(), n, have))
	}
	if have, ok := sub(&l.total, n); !ok {
		l.tagged[tag].Add(n)
		assert.Fail(l.logger(), "outstanding >= released", errors.Underflow("Total", n, have))
	}
}

// sub subtracts n from c unless that would underflow, in which case c is
// untouched and the value seen is returned with false.
func sub(c *atomic.Uint64, n uint64) (uint64, bool) {
	for {
		have := c.Load()
		if n > have {
			return have, false
		}
		if c.CompareAndSwap(have, have-n) {
			return have - n, true
		}
	}
}

func (l *Ledger) checkTag(phase errors.Phase, tag Tag) {
	if !tag.Valid() {
		assert.Fail(l.logger(), "tag < NumTags", errors.New(phase, errors.KindUnknownTag).
			Tag(tag).
			Detail("undefined memory tag").
			Build())
	}
}

func (l *Ledger) warnUnknown(op string, tag Tag, n uint64) {
	if tag == TagUnknown {
		l.logger().Warn(op+" called with TagUnknown; re-class this allocation",
			zap.String("op", op),
			zap.Stringer("tag", tag),
			zap.Uint64("bytes", n),
		)
	}
}

func (l *Ledger) logger() *zap.Logger {
	if l.log != nil {
		return l.log
	}
	return Logger()
}
