// Package errors provides structured error types for the engine core.
//
// Errors are categorized by Phase (which operation detected the fault) and
// Kind (fault category). The Error type carries the allocation tag, the
// element type, the offending value and an optional cause.
//
// The core treats contract violations as programming defects: an *Error is
// raised with panic after being logged, never returned. Recover it and use
// errors.Is to classify:
//
//	defer func() {
//		if err, ok := recover().(error); ok && errors.Is(err, &errors.Error{Phase: errors.PhaseInsert, Kind: errors.KindOutOfBounds}) {
//			...
//		}
//	}()
//
// Use the Builder for structured construction:
//
//	err := errors.New(errors.PhaseGrow, errors.KindOverflow).
//		ElemType("struct {}").
//		Detail("capacity overflow").
//		Build()
package errors
