// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package importer

import (
	"github.com/gogpu/drmhwc"
	"github.com/gogpu/drmhwc/format"
	"github.com/gogpu/drmhwc/gralloc"
)

// Descriptor is the descriptor-only importer. It records the buffer's
// descriptor as the plane-0 reference for devices that consume it
// directly, and acquires no kernel resource.
type Descriptor struct {
	decoder
}

// NewDescriptor creates a descriptor-only importer. It fails with
// drmhwc.ErrAllocatorUnavailable when mod is nil.
func NewDescriptor(mod gralloc.Module, opts ...Option) (*Descriptor, error) {
	d, err := newDecoder(mod, options{order: format.OrderBGR}, opts)
	if err != nil {
		return nil, err
	}
	return &Descriptor{decoder: d}, nil
}

// DescribeBuffer decodes h into a buffer object whose plane 0 refers to
// the handle's descriptor.
func (d *Descriptor) DescribeBuffer(h *gralloc.Handle) (*BufferObject, error) {
	b, err := d.decode(h)
	if err != nil {
		return nil, err
	}
	b.PrimeFDs[0] = h.FD
	return b, nil
}

// ImportBuffer implements Importer. It is DescribeBuffer.
func (d *Descriptor) ImportBuffer(h *gralloc.Handle) (*BufferObject, error) {
	return d.DescribeBuffer(h)
}

// ReleaseBuffer implements Importer. Nothing was acquired, so it only
// clears b.
func (d *Descriptor) ReleaseBuffer(b *BufferObject) error {
	if b == nil {
		return drmhwc.ErrInvalidHandle
	}
	*b = BufferObject{}
	return nil
}

// CanImportBuffer implements Importer.
func (d *Descriptor) CanImportBuffer(h *gralloc.Handle) bool {
	return h != nil
}

var _ Importer = (*Descriptor)(nil)
