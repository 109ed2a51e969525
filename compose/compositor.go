// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compose

import (
	"errors"
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/drmhwc"
	"github.com/gogpu/drmhwc/gralloc"
)

// Source is one layer to composite in software.
type Source struct {
	Buffer *gralloc.Handle

	// Pixels is the mapped content of Buffer, see MapBuffer.
	Pixels []byte

	// SourceCrop selects the part of the buffer to show. An empty crop
	// shows the whole buffer.
	SourceCrop image.Rectangle

	// DisplayFrame is where the crop lands on the target. An empty frame
	// covers the whole target.
	DisplayFrame image.Rectangle
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithScaler sets the resampling kernel. The default is
// xdraw.ApproxBiLinear.
func WithScaler(s xdraw.Scaler) Option {
	return func(c *Compositor) {
		c.scaler = s
	}
}

// ScalerByName returns the resampling kernel called name: "nearest",
// "approx-bilinear", "bilinear" or "catmull-rom".
func ScalerByName(name string) (xdraw.Scaler, error) {
	switch name {
	case "nearest":
		return xdraw.NearestNeighbor, nil
	case "approx-bilinear", "":
		return xdraw.ApproxBiLinear, nil
	case "bilinear":
		return xdraw.BiLinear, nil
	case "catmull-rom":
		return xdraw.CatmullRom, nil
	}
	return nil, fmt.Errorf("compose: unknown scaler %q", name)
}

// Compositor blends client layers into a Target in order, each one over
// the result of the previous ones.
type Compositor struct {
	scaler xdraw.Scaler
}

// NewCompositor creates a compositor.
func NewCompositor(opts ...Option) *Compositor {
	c := &Compositor{scaler: xdraw.ApproxBiLinear}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Composite draws sources onto dst in slice order. A source that cannot
// be decoded is skipped; the errors of all skipped sources are returned
// joined.
func (c *Compositor) Composite(dst *Target, sources []Source) error {
	var errs []error
	for i, src := range sources {
		if err := c.draw(dst, src); err != nil {
			drmhwc.Logger().Warn("compose: source skipped", "source", i, "err", err)
			errs = append(errs, fmt.Errorf("source %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (c *Compositor) draw(dst *Target, src Source) error {
	img, err := Decode(src.Buffer, src.Pixels)
	if err != nil {
		return err
	}

	crop := src.SourceCrop.Intersect(img.Bounds())
	if src.SourceCrop.Empty() {
		crop = img.Bounds()
	}
	frame := src.DisplayFrame
	if frame.Empty() {
		frame = dst.img.Bounds()
	}
	if crop.Empty() {
		return nil
	}

	if crop.Size() == frame.Size() {
		xdraw.Draw(dst.img, frame, img, crop.Min, xdraw.Over)
		return nil
	}
	c.scaler.Scale(dst.img, frame, img, crop, xdraw.Over, nil)
	return nil
}
