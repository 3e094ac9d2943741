package vect

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// dropLog counts destructor calls per element id.
type dropLog struct {
	counts map[int]int
	order  []int
}

func newDropLog() *dropLog {
	return &dropLog{counts: make(map[int]int)}
}

// requireEachOnce asserts that ids [0, n) were each destroyed exactly once.
func (l *dropLog) requireEachOnce(t *testing.T, n int) {
	t.Helper()
	require.Len(t, l.counts, n)
	for id := 0; id < n; id++ {
		require.Equal(t, 1, l.counts[id], "element %d destroyed %d times", id, l.counts[id])
	}
}

type tracked struct {
	log *dropLog
	id  int
}

func (e tracked) Drop() {
	e.log.counts[e.id]++
	e.log.order = append(e.log.order, e.id)
}

// marker is a zero-sized element with a destructor.
type marker struct{}

var markerDrops int

func (marker) Drop() { markerDrops++ }

// catch runs fn and returns the error it panicked with, if any.
func catch(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err, _ = r.(error)
		}
	}()
	fn()
	return nil
}
