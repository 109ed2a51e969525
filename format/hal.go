// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package format

import (
	"fmt"
	"math"
)

// HALFormat is a pixel format code as reported by the buffer allocator.
//
// Allocators may set extra bits on top of the base code to describe
// compressed or tiled memory layouts; see HasLayoutBits.
type HALFormat uint32

// Supported allocator pixel formats.
const (
	HALRGBA8888 HALFormat = 1
	HALRGBX8888 HALFormat = 2
	HALRGB888   HALFormat = 3
	HALRGB565   HALFormat = 4
	HALBGRA8888 HALFormat = 5

	// HALYV12 is 4:2:0 planar YCrCb. Only the luma plane is described.
	HALYV12 HALFormat = 0x32315659
)

// LayoutSafeMask covers the format bits this module understands. Any other
// bit on a non-fourcc code flags a compressed or non-linear layout.
const LayoutSafeMask HALFormat = 0x10F

// halInfo contains metadata about an allocator format.
type halInfo struct {
	// bytesPerPixel is the per-pixel size of plane 0. YV12 reports its
	// luma plane only.
	bytesPerPixel int

	// hasAlpha reports whether the format carries a meaningful alpha channel.
	hasAlpha bool

	name string
}

var halInfoTable = map[HALFormat]halInfo{
	HALRGBA8888: {bytesPerPixel: 4, hasAlpha: true, name: "RGBA_8888"},
	HALRGBX8888: {bytesPerPixel: 4, name: "RGBX_8888"},
	HALBGRA8888: {bytesPerPixel: 4, hasAlpha: true, name: "BGRA_8888"},
	HALRGB888:   {bytesPerPixel: 3, name: "RGB_888"},
	HALRGB565:   {bytesPerPixel: 2, name: "RGB_565"},
	HALYV12:     {bytesPerPixel: 1, name: "YV12"},
}

// IsValid reports whether f is one of the supported formats.
func (f HALFormat) IsValid() bool {
	_, ok := halInfoTable[f]
	return ok
}

// HasAlpha reports whether f carries an alpha channel.
func (f HALFormat) HasAlpha() bool {
	return halInfoTable[f].hasAlpha
}

// HasLayoutBits reports whether f carries bits outside LayoutSafeMask.
// Exactly recognised codes never do: YV12 is a fourcc-style code whose
// high bytes are part of its value, not layout flags.
func (f HALFormat) HasLayoutBits() bool {
	if f.IsValid() {
		return false
	}
	return f&^LayoutSafeMask != 0
}

func (f HALFormat) String() string {
	if info, ok := halInfoTable[f]; ok {
		return info.name
	}
	return fmt.Sprintf("HALFormat(%#x)", uint32(f))
}

// BytesPerPixel returns the plane-0 bytes per pixel of f, or 0 when f is
// unknown. A zero result means the row pitch cannot be computed.
func BytesPerPixel(f HALFormat) int {
	return halInfoTable[f].bytesPerPixel
}

// Pitch returns the plane-0 row pitch in bytes for a row stride given in
// pixels. It fails with ErrUnsupportedFormat rather than returning 0 when
// the bytes per pixel of f are unknown.
func Pitch(f HALFormat, stride int) (uint32, error) {
	bpp := BytesPerPixel(f)
	if bpp == 0 {
		return 0, fmt.Errorf("%w: no pitch for %v", ErrUnsupportedFormat, f)
	}
	if stride <= 0 {
		return 0, fmt.Errorf("%w: stride %d for %v", ErrUnsupportedFormat, stride, f)
	}
	if uint64(stride) > math.MaxUint32/uint64(bpp) {
		return 0, fmt.Errorf("%w: stride %d for %v overflows pitch", ErrUnsupportedFormat, stride, f)
	}
	return uint32(stride * bpp), nil //nolint:gosec // bounded above
}
