// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package importer

import (
	"github.com/gogpu/drmhwc"
	"github.com/gogpu/drmhwc/drm"
	"github.com/gogpu/drmhwc/format"
	"github.com/gogpu/drmhwc/gralloc"
)

// ZeroCopy imports buffers as kernel handles bound to the allocator's
// memory and registers a framebuffer for each, so the display scans out
// of the buffer without copying.
//
// The kernel returns the same handle for every import of the same memory
// and a single close releases it, so ZeroCopy counts imports per handle and
// closes a handle only when its last buffer object is released.
type ZeroCopy struct {
	decoder
	dev  drm.Device
	refs map[uint32]int
}

// NewZeroCopy creates a zero-copy importer issuing requests to dev.
func NewZeroCopy(dev drm.Device, mod gralloc.Module, opts ...Option) (*ZeroCopy, error) {
	if dev == nil {
		return nil, drmhwc.ErrDeviceUnavailable
	}
	d, err := newDecoder(mod, options{order: format.OrderRGB, usageCheck: true}, opts)
	if err != nil {
		return nil, err
	}
	return &ZeroCopy{decoder: d, dev: dev, refs: make(map[uint32]int)}, nil
}

// ImportBuffer implements Importer.
func (z *ZeroCopy) ImportBuffer(h *gralloc.Handle) (*BufferObject, error) {
	b, err := z.decode(h)
	if err != nil {
		return nil, err
	}

	handle, err := z.dev.PrimeFDToHandle(h.FD)
	if err != nil {
		drmhwc.Logger().Error("importer: PRIME_FD_TO_HANDLE failed",
			"buffer", h.ID, "fd", h.FD, "err", err)
		return nil, drmhwc.WrapDeviceError(drmhwc.ErrKernelImportFailed, "PRIME_FD_TO_HANDLE", err)
	}
	b.GemHandles[0] = handle
	z.refs[handle]++

	fb, err := z.dev.AddFramebuffer(b.Framebuffer())
	if err != nil {
		drmhwc.Logger().Error("importer: MODE_ADDFB2 failed",
			"buffer", h.ID, "bo", b, "err", err)
		if cerr := z.closeHandles(b); cerr != nil {
			drmhwc.Logger().Warn("importer: releasing partial import failed", "err", cerr)
		}
		return nil, drmhwc.WrapDeviceError(drmhwc.ErrFramebufferRegistrationFailed, "MODE_ADDFB2", err)
	}
	b.FbID = fb

	return b, nil
}

// ReleaseBuffer implements Importer. A framebuffer removal failure is
// logged and the kernel handles are closed regardless. The first close
// failure is returned once every slot has been processed.
func (z *ZeroCopy) ReleaseBuffer(b *BufferObject) error {
	if b == nil {
		return drmhwc.ErrInvalidHandle
	}

	if b.FbID != 0 {
		if err := z.dev.RemoveFramebuffer(b.FbID); err != nil {
			drmhwc.Logger().Warn("importer: MODE_RMFB failed", "fb", b.FbID, "err", err)
		}
		b.FbID = 0
	}

	err := z.closeHandles(b)
	*b = BufferObject{}
	return err
}

// closeHandles drops b's reference to every distinct kernel handle in it
// and closes those no other buffer object still holds. Slots aliasing an
// already processed handle are cleared without a second close request.
func (z *ZeroCopy) closeHandles(b *BufferObject) error {
	var first error
	for i, h := range b.GemHandles {
		if h == 0 {
			continue
		}
		if !z.unref(h) {
			drmhwc.Logger().Debug("importer: handle still shared", "handle", h, "refs", z.refs[h])
		} else if err := z.dev.CloseHandle(h); err != nil {
			drmhwc.Logger().Error("importer: GEM_CLOSE failed", "handle", h, "err", err)
			if first == nil {
				first = &drmhwc.DeviceError{Op: "GEM_CLOSE", Err: err}
			}
		}
		for j := i + 1; j < len(b.GemHandles); j++ {
			if b.GemHandles[j] == h {
				b.GemHandles[j] = 0
			}
		}
		b.GemHandles[i] = 0
	}
	return first
}

// unref drops one reference to h and reports whether it was the last.
// Handles never seen by ImportBuffer count as unshared.
func (z *ZeroCopy) unref(h uint32) bool {
	if z.refs[h] > 1 {
		z.refs[h]--
		return false
	}
	delete(z.refs, h)
	return true
}

// CanImportBuffer implements Importer.
func (z *ZeroCopy) CanImportBuffer(h *gralloc.Handle) bool {
	return h != nil
}

var _ Importer = (*ZeroCopy)(nil)
