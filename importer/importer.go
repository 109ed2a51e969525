// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package importer turns allocator buffers into display buffer objects.
//
// Two variants exist and a platform picks one at construction time:
//   - Descriptor: decodes the handle and passes its descriptor through.
//     No kernel resource is acquired, so release only clears the object.
//   - ZeroCopy: additionally imports the descriptor as a kernel handle and
//     registers a framebuffer, both of which release tears down again.
package importer

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/drmhwc"
	"github.com/gogpu/drmhwc/format"
	"github.com/gogpu/drmhwc/gralloc"
)

// Importer resolves buffer handles into device buffer objects.
type Importer interface {
	// ImportBuffer decodes h and acquires whatever device resources the
	// variant needs. On failure nothing stays acquired.
	ImportBuffer(h *gralloc.Handle) (*BufferObject, error)

	// ReleaseBuffer releases the resources held by b and zeroes it.
	ReleaseBuffer(b *BufferObject) error

	// CanImportBuffer is a cheap pre-filter: it reports whether h is
	// non-nil. ImportBuffer may still reject the buffer.
	CanImportBuffer(h *gralloc.Handle) bool
}

// Option configures an importer during creation.
//
// Example:
//
//	imp, err := importer.NewZeroCopy(card, allocator,
//	    importer.WithChannelOrder(format.OrderBGR),
//	    importer.WithExpectedModule("vivante"))
type Option func(*options)

type options struct {
	order          format.ChannelOrder
	usageCheck     bool
	expectedModule string
}

// WithChannelOrder selects the fourcc family produced for RGB buffers.
// The descriptor importer defaults to format.OrderBGR and the zero-copy
// importer to format.OrderRGB.
func WithChannelOrder(o format.ChannelOrder) Option {
	return func(opts *options) {
		opts.order = o
	}
}

// WithUsageCheck enables or disables the gralloc.IsUsageEligible gate.
// The descriptor importer defaults to off and the zero-copy importer to on.
func WithUsageCheck(enabled bool) Option {
	return func(opts *options) {
		opts.usageCheck = enabled
	}
}

// WithExpectedModule names the allocator implementation the platform was
// validated against. A different module only produces a warning.
func WithExpectedModule(name string) Option {
	return func(opts *options) {
		opts.expectedModule = name
	}
}

// decoder holds the translation settings shared by both variants.
type decoder struct {
	translator format.Translator
	usageCheck bool
}

func newDecoder(mod gralloc.Module, defaults options, opts []Option) (decoder, error) {
	o := defaults
	for _, opt := range opts {
		opt(&o)
	}
	if mod == nil {
		return decoder{}, drmhwc.ErrAllocatorUnavailable
	}
	if o.expectedModule != "" && !strings.EqualFold(mod.Name(), o.expectedModule) {
		drmhwc.Logger().Warn("importer: unexpected allocator module",
			"module", mod.Name(), "expected", o.expectedModule)
	}
	return decoder{
		translator: format.Translator{Order: o.order},
		usageCheck: o.usageCheck,
	}, nil
}

// decode fills geometry, format and pitch from h.
func (d decoder) decode(h *gralloc.Handle) (*BufferObject, error) {
	if h == nil {
		return nil, drmhwc.ErrInvalidHandle
	}
	if h.Width <= 0 || h.Height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", drmhwc.ErrInvalidHandle, h.Width, h.Height)
	}
	if uint64(h.Width) > math.MaxUint32 || uint64(h.Height) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: size %dx%d out of range", drmhwc.ErrInvalidHandle, h.Width, h.Height)
	}
	if h.Format.HasLayoutBits() {
		return nil, fmt.Errorf("%w: format %v", drmhwc.ErrUnsupportedLayout, h.Format)
	}
	if d.usageCheck && !gralloc.IsUsageEligible(h.Usage) {
		return nil, fmt.Errorf("%w: %v", drmhwc.ErrIneligibleUsage, h.Usage)
	}

	fourcc, err := d.translator.ToDeviceFormat(h.Format)
	if err != nil {
		return nil, err
	}
	pitch, err := format.Pitch(h.Format, h.Stride)
	if err != nil {
		return nil, err
	}

	b := &BufferObject{
		Width:  uint32(h.Width),  //nolint:gosec // range checked above
		Height: uint32(h.Height), //nolint:gosec // range checked above
		Format: fourcc,
		Usage:  h.Usage,
	}
	b.Pitches[0] = pitch
	b.Offsets[0] = 0

	drmhwc.Logger().Debug("importer: decoded buffer", "buffer", h.ID, "bo", b)
	return b, nil
}

// IsBufferError reports whether err is a buffer-level failure that routes
// the layer to client composition rather than failing the frame.
func IsBufferError(err error) bool {
	for _, target := range []error{
		drmhwc.ErrInvalidHandle,
		drmhwc.ErrUnsupportedFormat,
		drmhwc.ErrUnsupportedLayout,
		drmhwc.ErrIneligibleUsage,
		drmhwc.ErrKernelImportFailed,
		drmhwc.ErrFramebufferRegistrationFailed,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
