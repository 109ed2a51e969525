// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package format

import (
	"fmt"

	"github.com/gogpu/drmhwc"
)

// ErrUnsupportedFormat is drmhwc.ErrUnsupportedFormat, re-exported for
// callers that only deal with formats.
var ErrUnsupportedFormat = drmhwc.ErrUnsupportedFormat

// ChannelOrder selects the fourcc family a translator produces for the
// allocator's RGB formats. Display controllers differ in which byte order
// they expect for the same allocator format, so the order is configured
// per platform.
type ChannelOrder uint8

const (
	// OrderRGB maps RGBA_8888 to ARGB8888 and RGB_888 to RGB888.
	OrderRGB ChannelOrder = iota

	// OrderBGR maps RGBA_8888 to ABGR8888 and RGB_888 to BGR888.
	OrderBGR
)

func (o ChannelOrder) String() string {
	switch o {
	case OrderRGB:
		return "rgb"
	case OrderBGR:
		return "bgr"
	default:
		return fmt.Sprintf("ChannelOrder(%d)", uint8(o))
	}
}

var toDevice = [...]map[HALFormat]Fourcc{
	OrderRGB: {
		HALRGB888:   RGB888,
		HALBGRA8888: ARGB8888,
		HALRGBX8888: XRGB8888,
		HALRGBA8888: ARGB8888,
		HALRGB565:   RGB565,
		HALYV12:     YVU420,
	},
	OrderBGR: {
		HALRGB888:   BGR888,
		HALBGRA8888: ARGB8888,
		HALRGBX8888: XBGR8888,
		HALRGBA8888: ABGR8888,
		HALRGB565:   BGR565,
		HALYV12:     YVU420,
	},
}

// toSource covers every fourcc either order can produce. ARGB8888 is the
// image of both BGRA_8888 and RGBA_8888 under OrderRGB; it maps back to
// BGRA_8888, which has the same size and alpha.
var toSource = map[Fourcc]HALFormat{
	RGB888:   HALRGB888,
	BGR888:   HALRGB888,
	ARGB8888: HALBGRA8888,
	XRGB8888: HALRGBX8888,
	ABGR8888: HALRGBA8888,
	XBGR8888: HALRGBX8888,
	RGB565:   HALRGB565,
	BGR565:   HALRGB565,
	YVU420:   HALYV12,
}

// Translator converts allocator formats to DRM formats and back.
// The zero value uses OrderRGB.
type Translator struct {
	Order ChannelOrder
}

// ToDeviceFormat returns the DRM format for an allocator format.
func (t Translator) ToDeviceFormat(f HALFormat) (Fourcc, error) {
	if int(t.Order) >= len(toDevice) {
		return Invalid, fmt.Errorf("%w: channel order %v", ErrUnsupportedFormat, t.Order)
	}
	fourcc, ok := toDevice[t.Order][f]
	if !ok {
		return Invalid, fmt.Errorf("%w: cannot convert %v to a drm format", ErrUnsupportedFormat, f)
	}
	return fourcc, nil
}

// ToSourceFormat returns the allocator format for a DRM format.
func (t Translator) ToSourceFormat(f Fourcc) (HALFormat, error) {
	hal, ok := toSource[f]
	if !ok {
		return 0, fmt.Errorf("%w: cannot convert %v to an allocator format", ErrUnsupportedFormat, f)
	}
	return hal, nil
}
