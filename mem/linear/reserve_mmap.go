//go:build linux || darwin

package linear

import (
	"fmt"
	"math"

	"golang.org/x/sys/unix"

	"github.com/wippyai/strings-engine/errors"
)

// mmapReservation maps the whole maximum up front without committing it,
// so the memory never moves as the guest grows.
type mmapReservation struct {
	mapped []byte
}

func reserve(max uint64) (reservation, error) {
	if max == 0 || max > math.MaxInt {
		return nil, fmt.Errorf("cannot reserve %d bytes", max)
	}
	b, err := unix.Mmap(-1, 0, int(max),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON|unix.MAP_NORESERVE)
	if err != nil {
		return nil, errors.AllocationFailed(errors.PhaseHost, max, err)
	}
	return &mmapReservation{mapped: b}, nil
}

func (r *mmapReservation) slice(size uint64) []byte {
	return r.mapped[:size:size]
}

func (r *mmapReservation) free() {
	if err := unix.Munmap(r.mapped); err != nil {
		Logger().Sugar().Warnf("munmap linear memory: %v", err)
	}
	r.mapped = nil
}
