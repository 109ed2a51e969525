package compose

import (
	"golang.org/x/sys/unix"

	"github.com/gogpu/drmhwc"
	"github.com/gogpu/drmhwc/gralloc"
)

// MapBuffer maps the content of h read-only. Release the mapping with
// UnmapBuffer.
func MapBuffer(h *gralloc.Handle) ([]byte, error) {
	if h == nil || h.Size <= 0 {
		return nil, drmhwc.ErrInvalidHandle
	}
	data, err := unix.Mmap(h.FD, 0, h.Size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, &drmhwc.DeviceError{Op: "mmap", Err: err}
	}
	return data, nil
}

// UnmapBuffer releases a mapping returned by MapBuffer.
func UnmapBuffer(data []byte) error {
	return unix.Munmap(data)
}
