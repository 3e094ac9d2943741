package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which operation detected the fault
type Phase string

const (
	PhaseAlloc   Phase = "alloc"   // tagged allocation
	PhaseDealloc Phase = "dealloc" // tagged release
	PhaseRealloc Phase = "realloc" // tagged resize
	PhaseGrow    Phase = "grow"    // raw buffer growth
	PhasePush    Phase = "push"    // tail append
	PhasePop     Phase = "pop"     // tail removal
	PhaseInsert  Phase = "insert"  // positional insert
	PhaseRemove  Phase = "remove"  // positional remove
	PhaseAccess  Phase = "access"  // indexed read/write
	PhaseDrain   Phase = "drain"   // draining iteration
	PhaseLedger  Phase = "ledger"  // counter bookkeeping
	PhaseHost    Phase = "host"    // guest linear memory
)

// Kind categorizes the error
type Kind string

const (
	KindOverflow     Kind = "overflow"
	KindOutOfBounds  Kind = "out_of_bounds"
	KindUnderflow    Kind = "underflow"
	KindAllocation   Kind = "allocation"
	KindBorrowed     Kind = "borrowed"
	KindInvalidInput Kind = "invalid_input"
	KindUnknownTag   Kind = "unknown_tag"
)

// Error is the structured error type used throughout the engine core.
// The core never returns these; fatal faults are raised with panic.
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	Tag      string
	ElemType string
	Detail   string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Tag != "" || e.ElemType != "" {
		b.WriteString(" (")
		if e.Tag != "" {
			b.WriteString("tag ")
			b.WriteString(e.Tag)
		}
		if e.ElemType != "" {
			if e.Tag != "" {
				b.WriteString(", ")
			}
			b.WriteString("elem ")
			b.WriteString(e.ElemType)
		}
		b.WriteByte(')')
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Tag sets the allocation tag name
func (b *Builder) Tag(tag fmt.Stringer) *Builder {
	b.err.Tag = tag.String()
	return b
}

// ElemType sets the element type name
func (b *Builder) ElemType(t string) *Builder {
	b.err.ElemType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// CapacityOverflow creates a capacity overflow error for elemType
func CapacityOverflow(phase Phase, elemType string, detail string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindOverflow,
		ElemType: elemType,
		Detail:   detail,
	}
}

// Underflow creates a ledger underflow error: a release of n bytes against
// a counter holding only have.
func Underflow(tag string, n, have uint64) *Error {
	return &Error{
		Phase:  PhaseLedger,
		Kind:   KindUnderflow,
		Tag:    tag,
		Detail: fmt.Sprintf("release of %d bytes exceeds %d outstanding", n, have),
		Value:  n,
	}
}

// Borrowed creates an error for mutating a container while a drain holds it
func Borrowed(phase Phase, elemType string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindBorrowed,
		ElemType: elemType,
		Detail:   "container is borrowed by an open drain",
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, size uint64, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d bytes", size),
		Value:  size,
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
