// Package mem provides the fixed-size backing regions handed out to buffer
// owners.
//
// Platform-specific allocation is in region_linux.go / region_other.go.
package mem

import (
	"errors"
	"fmt"
)

// ErrRegionClosed is returned when a closed region is closed again.
var ErrRegionClosed = errors.New("mem: region already closed")

// Region is a fixed-length, zero-filled byte region. Its length never
// changes between New and Close.
type Region struct {
	buf    []byte
	free   func([]byte) error
	closed bool
}

// New allocates a zero-filled region of the given size. The allocation is
// refused up front when the host reports insufficient available memory.
func New(size int) (*Region, error) {
	if size <= 0 {
		return nil, fmt.Errorf("mem: invalid region size %d", size)
	}
	if !canAllocate(uint64(size)) {
		return nil, fmt.Errorf("mem: cannot allocate %d bytes, insufficient available memory", size)
	}
	buf, free, err := alloc(size)
	if err != nil {
		return nil, fmt.Errorf("mem: alloc %d bytes: %w", size, err)
	}
	return &Region{buf: buf, free: free}, nil
}

// Bytes returns the full region. The slice stays valid until Close.
func (r *Region) Bytes() []byte { return r.buf }

// Len returns the fixed region size in bytes.
func (r *Region) Len() int { return len(r.buf) }

// Close releases the region. The byte slice must not be used afterwards.
func (r *Region) Close() error {
	if r.closed {
		return ErrRegionClosed
	}
	r.closed = true
	buf := r.buf
	r.buf = nil
	if r.free != nil {
		return r.free(buf)
	}
	return nil
}
