// Package shm is a gralloc.Module backed by memfd shared memory.
//
// It serves software rendering paths and tests. Its buffers are plain
// shared memory, not dma-bufs, so a display device will normally refuse
// to import them; the descriptor-only importer accepts them fine.
package shm

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/gogpu/drmhwc/format"
	"github.com/gogpu/drmhwc/gralloc"
)

// Name is the module name reported by Allocator.
const Name = "gogpu-shm"

// strideAlign is the row alignment in pixels.
const strideAlign = 16

// Allocator hands out memfd-backed buffers.
type Allocator struct {
	mu      sync.Mutex
	nextID  uint64
	buffers map[uint64]*gralloc.Handle
}

// NewAllocator creates an empty allocator.
func NewAllocator() *Allocator {
	return &Allocator{
		nextID:  1,
		buffers: make(map[uint64]*gralloc.Handle),
	}
}

// Name implements gralloc.Module.
func (a *Allocator) Name() string { return Name }

// Lookup implements gralloc.Module.
func (a *Allocator) Lookup(id uint64) (*gralloc.Handle, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	h, ok := a.buffers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", gralloc.ErrUnknownBuffer, id)
	}
	return h, nil
}

// Allocate creates a buffer of the given geometry. The stride is rounded
// up to a multiple of 16 pixels.
func (a *Allocator) Allocate(width, height int, f format.HALFormat, usage gralloc.Usage) (*gralloc.Handle, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("shm: invalid size %dx%d", width, height)
	}
	bpp := format.BytesPerPixel(f)
	if bpp == 0 {
		return nil, fmt.Errorf("shm: %w: %v", format.ErrUnsupportedFormat, f)
	}

	stride := (width + strideAlign - 1) &^ (strideAlign - 1)
	size := stride * height * bpp
	if f == format.HALYV12 {
		// Luma plus two quarter-size chroma planes, each with a 16-pixel
		// aligned stride of half the luma stride.
		cstride := (stride/2 + strideAlign - 1) &^ (strideAlign - 1)
		size += 2 * cstride * ((height + 1) / 2)
	}

	fd, err := createAnonymousFile(int64(size))
	if err != nil {
		return nil, fmt.Errorf("shm: create buffer: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	h := &gralloc.Handle{
		ID:     a.nextID,
		Width:  width,
		Height: height,
		Format: f,
		Stride: stride,
		Usage:  usage,
		FD:     fd,
		Size:   size,
	}
	a.nextID++
	a.buffers[h.ID] = h
	return h, nil
}

// Free releases a buffer and closes its file descriptor.
func (a *Allocator) Free(h *gralloc.Handle) error {
	if h == nil {
		return nil
	}

	a.mu.Lock()
	_, ok := a.buffers[h.ID]
	delete(a.buffers, h.ID)
	a.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %d", gralloc.ErrUnknownBuffer, h.ID)
	}
	return unix.Close(h.FD)
}

// Map maps the buffer read-write. Release the mapping with Unmap.
func Map(h *gralloc.Handle) ([]byte, error) {
	return unix.Mmap(h.FD, 0, h.Size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
}

// Unmap releases a mapping returned by Map.
func Unmap(data []byte) error {
	return unix.Munmap(data)
}

func createAnonymousFile(size int64) (int, error) {
	fd, err := unix.MemfdCreate("drmhwc-shm", unix.MFD_CLOEXEC|unix.MFD_ALLOW_SEALING)
	if err != nil {
		return -1, err
	}
	if err := unix.Ftruncate(fd, size); err != nil {
		_ = unix.Close(fd)
		return -1, err
	}
	// Seal the size so a mapped buffer can never be truncated under the display.
	if _, err := unix.FcntlInt(uintptr(fd), unix.F_ADD_SEALS,
		unix.F_SEAL_SHRINK|unix.F_SEAL_GROW|unix.F_SEAL_SEAL); err != nil {
		_ = unix.Close(fd)
		return -1, err
	}
	return fd, nil
}

var _ gralloc.Module = (*Allocator)(nil)
