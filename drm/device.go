// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package drm is the display device as seen by importers and planners.
//
// Device is the narrow set of kernel requests an importer issues. The
// Linux implementation, Card, talks to /dev/dri/cardN through ioctls;
// tests use the recording fake in package drmtest.
//
// Key principle: drm RECEIVES buffers from the allocator, it does NOT
// allocate them. Every handle it creates is bound to memory someone else owns.
package drm

import (
	"github.com/gogpu/drmhwc/format"
)

// Device issues the kernel requests needed to scan out a buffer.
// Errors are returned as reported by the device, usually a syscall.Errno;
// callers attach the request name and classify them.
type Device interface {
	// PrimeFDToHandle converts a shared-memory descriptor into a
	// device-local kernel buffer handle.
	PrimeFDToHandle(fd int) (uint32, error)

	// AddFramebuffer registers a framebuffer object and returns its id.
	AddFramebuffer(fb *Framebuffer) (uint32, error)

	// RemoveFramebuffer unregisters a framebuffer object.
	RemoveFramebuffer(id uint32) error

	// CloseHandle releases a kernel buffer handle. Closing a handle twice
	// is undefined on real devices.
	CloseHandle(handle uint32) error
}

// MaxPlanes is the number of per-buffer plane slots in a framebuffer.
const MaxPlanes = 4

// Framebuffer describes a framebuffer registration (ADDFB2).
type Framebuffer struct {
	Width   uint32
	Height  uint32
	Format  format.Fourcc
	Handles [MaxPlanes]uint32
	Pitches [MaxPlanes]uint32
	Offsets [MaxPlanes]uint32
}
