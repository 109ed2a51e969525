// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package drmtest provides a recording drm.Device for tests.
package drmtest

import (
	"fmt"
	"syscall"

	"github.com/gogpu/drmhwc/drm"
)

// Device is an in-memory drm.Device. It hands out kernel handles and
// framebuffer ids, records every request, and enforces the kernel rules
// the importers depend on: closing an unknown or already closed handle
// fails with EINVAL.
type Device struct {
	// Handles maps a shared-memory descriptor to the kernel handle it
	// resolves to. Descriptors that share memory can share a handle.
	// Unmapped descriptors get a fresh handle.
	Handles map[int]uint32

	// Failure injection.
	FailImport error
	FailAddFB  error
	FailRmFB   error
	FailClose  error

	// Recorded requests.
	Imported     []int
	Added        []drm.Framebuffer
	Removed      []uint32
	Closed       []uint32
	nextHandle   uint32
	nextFB       uint32
	open         map[uint32]int
	framebuffers map[uint32]bool
}

// New returns an empty device.
func New() *Device {
	return &Device{
		Handles:      make(map[int]uint32),
		nextHandle:   1,
		nextFB:       100,
		open:         make(map[uint32]int),
		framebuffers: make(map[uint32]bool),
	}
}

// PrimeFDToHandle implements drm.Device. Importing the same memory twice
// returns the same handle, as the kernel does.
func (d *Device) PrimeFDToHandle(fd int) (uint32, error) {
	d.Imported = append(d.Imported, fd)
	if d.FailImport != nil {
		return 0, d.FailImport
	}
	if fd < 0 {
		return 0, syscall.EBADF
	}

	h, ok := d.Handles[fd]
	if !ok {
		h = d.nextHandle
		d.nextHandle++
		d.Handles[fd] = h
	}
	d.open[h]++
	return h, nil
}

// AddFramebuffer implements drm.Device.
func (d *Device) AddFramebuffer(fb *drm.Framebuffer) (uint32, error) {
	d.Added = append(d.Added, *fb)
	if d.FailAddFB != nil {
		return 0, d.FailAddFB
	}
	for i, h := range fb.Handles {
		if h != 0 && d.open[h] == 0 {
			return 0, fmt.Errorf("plane %d: handle %d not open: %w", i, h, syscall.ENOENT)
		}
	}
	id := d.nextFB
	d.nextFB++
	d.framebuffers[id] = true
	return id, nil
}

// RemoveFramebuffer implements drm.Device.
func (d *Device) RemoveFramebuffer(id uint32) error {
	d.Removed = append(d.Removed, id)
	if d.FailRmFB != nil {
		return d.FailRmFB
	}
	if !d.framebuffers[id] {
		return syscall.ENOENT
	}
	delete(d.framebuffers, id)
	return nil
}

// CloseHandle implements drm.Device. The kernel does not reference count
// GEM handles per import, so one close releases the handle.
func (d *Device) CloseHandle(handle uint32) error {
	d.Closed = append(d.Closed, handle)
	if d.FailClose != nil {
		return d.FailClose
	}
	if d.open[handle] == 0 {
		return syscall.EINVAL
	}
	delete(d.open, handle)
	for fd, h := range d.Handles {
		if h == handle {
			delete(d.Handles, fd)
		}
	}
	return nil
}

// OpenHandles returns the number of kernel handles still open.
func (d *Device) OpenHandles() int {
	return len(d.open)
}

// Framebuffers returns the number of framebuffers still registered.
func (d *Device) Framebuffers() int {
	return len(d.framebuffers)
}

var _ drm.Device = (*Device)(nil)
