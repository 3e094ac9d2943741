// Package assert raises fatal contract violations.
//
// A failed assertion is logged at Error level with the asserted expression,
// the fault and the caller location, then the *errors.Error is raised with
// panic. Callers test the condition themselves so the happy path stays free
// of closures:
//
//	if index > v.len {
//		assert.Fail(Logger(), "index <= len", errors.OutOfBounds(errors.PhaseInsert, index, v.len))
//	}
package assert

import (
	"fmt"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"

	"github.com/wippyai/strings-engine/errors"
)

// Fail reports err as a failed assertion of expr and panics with it.
func Fail(log *zap.Logger, expr string, err *errors.Error) {
	location := "unknown"
	if _, file, line, ok := runtime.Caller(1); ok {
		location = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}
	if log == nil {
		log = zap.NewNop()
	}
	log.Error("assertion failed",
		zap.String("assertion", expr),
		zap.String("message", err.Error()),
		zap.String("location", location),
	)
	panic(err)
}
