package shm

import (
	"errors"
	"testing"

	"github.com/gogpu/drmhwc/format"
	"github.com/gogpu/drmhwc/gralloc"
)

func TestAllocateAndLookup(t *testing.T) {
	a := NewAllocator()

	h, err := a.Allocate(100, 20, format.HALRGBA8888, gralloc.HWFB)
	if err != nil {
		t.Fatalf("Allocate() error = %v", err)
	}
	t.Cleanup(func() { _ = a.Free(h) })

	if h.Stride != 112 {
		t.Errorf("Stride = %d, want 112", h.Stride)
	}
	if h.Size != 112*20*4 {
		t.Errorf("Size = %d, want %d", h.Size, 112*20*4)
	}
	if h.FD < 0 {
		t.Errorf("FD = %d, want a valid descriptor", h.FD)
	}

	got, err := a.Lookup(h.ID)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if got != h {
		t.Error("Lookup() returned a different handle")
	}
	if a.Name() != Name {
		t.Errorf("Name() = %q, want %q", a.Name(), Name)
	}
}

func TestAllocateRejectsUnknownFormat(t *testing.T) {
	a := NewAllocator()
	if _, err := a.Allocate(16, 16, format.HALFormat(0x99), 0); !errors.Is(err, format.ErrUnsupportedFormat) {
		t.Errorf("Allocate() error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := a.Allocate(0, 16, format.HALRGB565, 0); err == nil {
		t.Error("Allocate(0x16) should fail")
	}
}

func TestFree(t *testing.T) {
	a := NewAllocator()
	h, err := a.Allocate(16, 16, format.HALRGB565, 0)
	if err != nil {
		t.Fatalf("Allocate() error = %v", err)
	}
	if err := a.Free(h); err != nil {
		t.Fatalf("Free() error = %v", err)
	}
	if _, err := a.Lookup(h.ID); !errors.Is(err, gralloc.ErrUnknownBuffer) {
		t.Errorf("Lookup() after Free error = %v, want ErrUnknownBuffer", err)
	}
	if err := a.Free(h); !errors.Is(err, gralloc.ErrUnknownBuffer) {
		t.Errorf("second Free() error = %v, want ErrUnknownBuffer", err)
	}
}

func TestMapSharesMemory(t *testing.T) {
	a := NewAllocator()
	h, err := a.Allocate(16, 4, format.HALRGBA8888, 0)
	if err != nil {
		t.Fatalf("Allocate() error = %v", err)
	}
	t.Cleanup(func() { _ = a.Free(h) })

	w, err := Map(h)
	if err != nil {
		t.Fatalf("Map() error = %v", err)
	}
	w[0], w[len(w)-1] = 0xAB, 0xCD
	if err := Unmap(w); err != nil {
		t.Fatalf("Unmap() error = %v", err)
	}

	r, err := Map(h)
	if err != nil {
		t.Fatalf("second Map() error = %v", err)
	}
	defer func() { _ = Unmap(r) }()
	if r[0] != 0xAB || r[len(r)-1] != 0xCD {
		t.Errorf("mapped bytes = %#x..%#x, want 0xab..0xcd", r[0], r[len(r)-1])
	}
}
