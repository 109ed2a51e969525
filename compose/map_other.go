//go:build !linux

package compose

import (
	"errors"

	"github.com/gogpu/drmhwc/gralloc"
)

// MapBuffer is only implemented on Linux.
func MapBuffer(h *gralloc.Handle) ([]byte, error) {
	return nil, errors.ErrUnsupported
}

// UnmapBuffer is only implemented on Linux.
func UnmapBuffer(data []byte) error {
	return errors.ErrUnsupported
}
