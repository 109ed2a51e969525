// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package importer

import (
	"fmt"

	"github.com/gogpu/drmhwc/drm"
	"github.com/gogpu/drmhwc/format"
	"github.com/gogpu/drmhwc/gralloc"
)

// BufferObject is an allocator buffer as the display device sees it.
//
// FbID is non-zero iff a framebuffer is registered for the buffer. A
// GemHandles slot is non-zero iff it owns, or aliases another slot's,
// kernel handle. Only plane 0 is populated by the importers in this
// package. A BufferObject belongs to the frame that imported it until
// it is released; release zeroes every field.
type BufferObject struct {
	Width  uint32
	Height uint32
	Format format.Fourcc

	Pitches    [drm.MaxPlanes]uint32
	Offsets    [drm.MaxPlanes]uint32
	GemHandles [drm.MaxPlanes]uint32

	// PrimeFDs holds the raw shared-memory descriptors of the
	// descriptor-only variant, for devices that consume them directly.
	PrimeFDs [drm.MaxPlanes]int

	FbID  uint32
	Usage gralloc.Usage
}

// Framebuffer returns the ADDFB2 registration for b.
func (b *BufferObject) Framebuffer() *drm.Framebuffer {
	return &drm.Framebuffer{
		Width:   b.Width,
		Height:  b.Height,
		Format:  b.Format,
		Handles: b.GemHandles,
		Pitches: b.Pitches,
		Offsets: b.Offsets,
	}
}

func (b *BufferObject) String() string {
	if b == nil {
		return "<nil>"
	}
	return fmt.Sprintf("bo %dx%d %v pitch=%d gem=%v fb=%d",
		b.Width, b.Height, b.Format, b.Pitches[0], b.GemHandles, b.FbID)
}
