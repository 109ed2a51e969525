// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package drm

import (
	"fmt"
	"math"
	"os"
	"unsafe"

	"github.com/NeowayLabs/drm/ioctl"
	"github.com/NeowayLabs/drm/mode"

	"github.com/gogpu/drmhwc"
	"github.com/gogpu/drmhwc/format"
)

// Card is an open DRM device node.
type Card struct {
	file *os.File
}

// Open opens a DRM device node such as /dev/dri/card0 and enables
// universal planes so that primary and cursor planes are enumerated too.
func Open(path string) (*Card, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("drm: open %s: %w", path, err)
	}
	c := &Card{file: f}

	if err := mode.SetClientCap(f, mode.ClientCapUniversalPlanes, 1); err != nil {
		// Older kernels still list overlay planes.
		drmhwc.Logger().Warn("drm: universal planes unavailable", "device", path, "err", err)
	}

	drmhwc.Logger().Info("drm: device opened", "device", path)
	return c, nil
}

// Close closes the device node.
func (c *Card) Close() error {
	return c.file.Close()
}

// PrimeFDToHandle implements Device.
func (c *Card) PrimeFDToHandle(fd int) (uint32, error) {
	req := &drmPrimeHandle{FD: int32(fd)} //nolint:gosec // descriptors fit in int32
	err := ioctl.Do(c.file.Fd(), uintptr(ioctlPrimeFDToHandle), uintptr(unsafe.Pointer(req)))
	if err != nil {
		return 0, err
	}
	return req.Handle, nil
}

// AddFramebuffer implements Device.
func (c *Card) AddFramebuffer(fb *Framebuffer) (uint32, error) {
	if fb.Width > math.MaxUint16 || fb.Height > math.MaxUint16 {
		return 0, fmt.Errorf("drm: framebuffer %dx%d exceeds mode limits", fb.Width, fb.Height)
	}
	return mode.AddFB2(c.file, uint16(fb.Width), uint16(fb.Height),
		uint32(fb.Format), 0, fb.Pitches[:], fb.Offsets[:], fb.Handles[:], nil)
}

// RemoveFramebuffer implements Device.
func (c *Card) RemoveFramebuffer(id uint32) error {
	return mode.RmFB(c.file, id)
}

// CloseHandle implements Device.
func (c *Card) CloseHandle(handle uint32) error {
	req := &drmGemClose{Handle: handle}
	return ioctl.Do(c.file.Fd(), uintptr(ioctlGemClose), uintptr(unsafe.Pointer(req)))
}

// Crtcs returns the display pipelines of the device in resource order.
func (c *Card) Crtcs() ([]*Crtc, error) {
	res, err := mode.GetResources(c.file)
	if err != nil {
		return nil, fmt.Errorf("drm: MODE_GETRESOURCES: %w", err)
	}

	crtcs := make([]*Crtc, 0, len(res.Crtcs))
	for i, id := range res.Crtcs {
		crtcs = append(crtcs, &Crtc{ID: id, Pipe: i})
	}
	return crtcs, nil
}

// Planes returns every plane of the device with its advertised formats.
func (c *Card) Planes() ([]*Plane, error) {
	res, err := mode.GetPlaneResources(c.file)
	if err != nil {
		return nil, fmt.Errorf("drm: MODE_GETPLANERESOURCES: %w", err)
	}

	planes := make([]*Plane, 0, len(res.Planes))
	for _, id := range res.Planes {
		mp, err := mode.GetPlane(c.file, id)
		if err != nil {
			return nil, fmt.Errorf("drm: MODE_GETPLANE(%d): %w", id, err)
		}
		planes = append(planes, convertPlane(mp))
	}
	return planes, nil
}

func convertPlane(mp *mode.Plane) *Plane {
	p := &Plane{
		ID:            mp.ID,
		PossibleCrtcs: mp.PossibleCrtcs,
		Formats:       make([]format.Fourcc, 0, len(mp.FormatTypes)),
	}
	for _, f := range mp.FormatTypes {
		p.Formats = append(p.Formats, format.Fourcc(f))
	}
	return p
}

var _ Device = (*Card)(nil)
