// Package gralloc describes buffers produced by a graphics memory allocator.
//
// A Handle is the decoded form of an allocator's private buffer handle.
// Handles are owned by the allocator; this module only borrows them and
// never closes their file descriptors.
package gralloc

import (
	"errors"
	"fmt"

	"github.com/gogpu/drmhwc/format"
)

// ErrUnknownBuffer is returned by Module.Lookup for an id the allocator
// does not know.
var ErrUnknownBuffer = errors.New("gralloc: unknown buffer")

// Handle describes one allocated buffer.
type Handle struct {
	// ID identifies the buffer for the allocator's lifetime.
	ID uint64

	Width  int
	Height int

	// Format is the allocator pixel format, possibly with layout bits.
	Format format.HALFormat

	// Stride is the row stride in pixels.
	Stride int

	Usage Usage

	// FD references the shared memory backing the buffer (a dma-buf on
	// real hardware).
	FD int

	// Size is the allocation size in bytes.
	Size int
}

func (h *Handle) String() string {
	if h == nil {
		return "<nil>"
	}
	return fmt.Sprintf("buffer %d %dx%d %v stride=%d usage=%v fd=%d",
		h.ID, h.Width, h.Height, h.Format, h.Stride, h.Usage, h.FD)
}

// Module is the allocator as seen by importers.
type Module interface {
	// Name identifies the allocator implementation.
	Name() string

	// Lookup returns the handle of a live buffer.
	Lookup(id uint64) (*Handle, error)
}
