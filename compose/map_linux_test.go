package compose

import (
	"errors"
	"testing"

	"github.com/gogpu/drmhwc"
	"github.com/gogpu/drmhwc/format"
	"github.com/gogpu/drmhwc/gralloc"
	"github.com/gogpu/drmhwc/gralloc/shm"
)

func TestMapBuffer(t *testing.T) {
	alloc := shm.NewAllocator()
	h, err := alloc.Allocate(4, 4, format.HALRGBA8888, gralloc.SWWriteOften)
	if err != nil {
		t.Fatalf("Allocate() error = %v", err)
	}
	defer alloc.Free(h)

	rw, err := shm.Map(h)
	if err != nil {
		t.Fatalf("shm.Map() error = %v", err)
	}
	copy(rw, []byte{1, 2, 3, 4})
	if err := shm.Unmap(rw); err != nil {
		t.Fatalf("shm.Unmap() error = %v", err)
	}

	data, err := MapBuffer(h)
	if err != nil {
		t.Fatalf("MapBuffer() error = %v", err)
	}
	defer UnmapBuffer(data)

	if len(data) != h.Size {
		t.Errorf("len = %d, want %d", len(data), h.Size)
	}
	if data[0] != 1 || data[3] != 4 {
		t.Errorf("data = %v, want the written pixel", data[:4])
	}
}

func TestMapBufferInvalid(t *testing.T) {
	if _, err := MapBuffer(nil); !errors.Is(err, drmhwc.ErrInvalidHandle) {
		t.Errorf("MapBuffer(nil) error = %v, want ErrInvalidHandle", err)
	}

	_, err := MapBuffer(&gralloc.Handle{FD: -1, Size: 4096})
	var devErr *drmhwc.DeviceError
	if !errors.As(err, &devErr) {
		t.Errorf("MapBuffer(bad fd) error = %v, want *DeviceError", err)
	}
}
