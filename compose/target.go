// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compose

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/drmhwc"
)

// ErrSizeMismatch is returned when an upload destination does not have the
// size of the target.
var ErrSizeMismatch = errors.New("compose: texture size does not match target")

// TargetOption configures a Target during creation.
type TargetOption func(*targetOptions)

type targetOptions struct {
	provider gpucontext.DeviceProvider
}

// WithDeviceProvider matches the target's output format to the surface
// format of a GPU device provider, so Bytes can be uploaded as a texture
// without conversion. Only RGBA8Unorm and BGRA8Unorm are honored; other
// formats fall back to RGBA8Unorm.
func WithDeviceProvider(p gpucontext.DeviceProvider) TargetOption {
	return func(o *targetOptions) {
		o.provider = p
	}
}

// Target is the CPU-backed client composition buffer.
//
// Compositing happens in *image.RGBA. The output format only affects
// Bytes.
//
// Example:
//
//	target := compose.NewTarget(1920, 1080)
//	err := compose.NewCompositor().Composite(target, sources)
//	img := target.Image()
type Target struct {
	img    *image.RGBA
	format gputypes.TextureFormat
}

// NewTarget creates a transparent target of the given size.
func NewTarget(width, height int, opts ...TargetOption) *Target {
	var o targetOptions
	for _, opt := range opts {
		opt(&o)
	}

	f := gputypes.TextureFormatRGBA8Unorm
	if o.provider != nil {
		if o.provider.SurfaceFormat() == gputypes.TextureFormatBGRA8Unorm {
			f = gputypes.TextureFormatBGRA8Unorm
		}
		info := o.provider.AdapterInfo()
		drmhwc.Logger().Debug("compose: target follows GPU surface",
			"adapter", info.Name, "type", info.Type, "format", f)
	}
	return &Target{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		format: f,
	}
}

// Width returns the target width in pixels.
func (t *Target) Width() int {
	return t.img.Bounds().Dx()
}

// Height returns the target height in pixels.
func (t *Target) Height() int {
	return t.img.Bounds().Dy()
}

// Format returns the pixel format produced by Bytes.
func (t *Target) Format() gputypes.TextureFormat {
	return t.format
}

// Stride returns the number of bytes per row.
func (t *Target) Stride() int {
	return t.img.Stride
}

// Image returns the underlying *image.RGBA.
// The returned image shares memory with the target.
func (t *Target) Image() *image.RGBA {
	return t.img
}

// Clear fills the entire target with c.
func (t *Target) Clear(c color.Color) {
	draw.Draw(t.img, t.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// Bytes returns a copy of the pixels in Format order.
func (t *Target) Bytes() []byte {
	out := make([]byte, len(t.img.Pix))
	copy(out, t.img.Pix)
	if t.format == gputypes.TextureFormatBGRA8Unorm {
		swapRB(out)
	}
	return out
}

// Upload copies the whole target into tex in Format order. When tex also
// reports its size, it must match the target.
func (t *Target) Upload(tex gpucontext.TextureUpdater) error {
	if sized, ok := tex.(gpucontext.Texture); ok {
		if sized.Width() != t.Width() || sized.Height() != t.Height() {
			return fmt.Errorf("%w: texture %dx%d, target %dx%d", ErrSizeMismatch,
				sized.Width(), sized.Height(), t.Width(), t.Height())
		}
	}
	return tex.UpdateData(t.Bytes())
}

// UploadRegion copies the part of the target inside r into the same
// region of tex, packed row by row. An r outside the target uploads
// nothing.
func (t *Target) UploadRegion(tex gpucontext.TextureRegionUpdater, r image.Rectangle) error {
	r = r.Intersect(t.img.Bounds())
	if r.Empty() {
		return nil
	}

	rowBytes := r.Dx() * 4
	out := make([]byte, 0, rowBytes*r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := t.img.PixOffset(r.Min.X, y)
		out = append(out, t.img.Pix[i:i+rowBytes]...)
	}
	if t.format == gputypes.TextureFormatBGRA8Unorm {
		swapRB(out)
	}
	return tex.UpdateRegion(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), out)
}

func swapRB(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+2] = pix[i+2], pix[i]
	}
}
