// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package display drives the frames of one CRTC.
//
// For every frame it asks the platform's planner for a plan, imports the
// buffer of each hardware layer, and moves a layer whose import fails to
// the client. Imported buffers are cached by handle and released once no
// layer of a frame refers to them any more, so every import is paired
// with exactly one release. When a client target is configured the client
// layers are composited into it in software.
//
// A Display is not safe for concurrent use; frames are presented in
// order from one goroutine.
package display

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"slices"

	"github.com/gogpu/drmhwc"
	"github.com/gogpu/drmhwc/compose"
	"github.com/gogpu/drmhwc/drm"
	"github.com/gogpu/drmhwc/importer"
	"github.com/gogpu/drmhwc/planner"
	"github.com/gogpu/drmhwc/platform"
)

// ErrClosed is returned by PresentFrame after Close.
var ErrClosed = errors.New("display: closed")

// Frame is the outcome of one PresentFrame call.
type Frame struct {
	// Seq numbers the frames of a display starting at 1.
	Seq uint64

	// Plan holds the hardware assignments whose buffers were imported and
	// every other layer in Client.
	Plan *planner.Plan

	// Buffers maps the layer index of each hardware assignment to its
	// imported buffer. The buffers stay owned by the Display.
	Buffers map[int]*importer.BufferObject

	// Composited is set when the client layers were drawn into the
	// client target.
	Composited bool

	// Uploaded is set when the client target was copied into the client
	// texture.
	Uploaded bool
}

// Display presents frames on one CRTC.
type Display struct {
	crtc     *drm.Crtc
	planes   []*drm.Plane
	platform *platform.Platform
	opts     options

	buffers map[uint64]*importer.BufferObject
	seq     uint64
	closed  bool
}

// New creates a display for crtc using the planes of the device and the
// importer and planner of p.
func New(crtc *drm.Crtc, planes []*drm.Plane, p *platform.Platform, opts ...Option) (*Display, error) {
	if crtc == nil {
		return nil, errors.New("display: nil crtc")
	}
	if p == nil || p.Importer == nil || p.Planner == nil {
		return nil, errors.New("display: incomplete platform")
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Display{
		crtc:     crtc,
		planes:   planes,
		platform: p,
		opts:     o,
		buffers:  make(map[uint64]*importer.BufferObject),
	}, nil
}

// PresentFrame splits layers between hardware planes and the client.
//
// Layer failures never fail the frame: a layer that cannot be planned or
// imported is composited by the client instead. If no layer ends up on a
// plane the whole frame goes to the client.
func (d *Display) PresentFrame(layers []*planner.Layer) (*Frame, error) {
	if d.closed {
		return nil, ErrClosed
	}
	d.seq++
	log := drmhwc.Logger().With("crtc", d.crtc.ID, "frame", d.seq)

	candidates := make([]planner.Candidate, len(layers))
	for i, l := range layers {
		candidates[i] = planner.Candidate{Index: i, Layer: l}
	}

	plan, err := d.platform.Planner.ProvisionPlanes(candidates, d.crtc, d.planes)
	switch {
	case errors.Is(err, drmhwc.ErrNoHardwareCandidates):
		log.Debug("display: no hardware candidates, client composition")
		plan = clientOnly(len(layers))
	case err != nil:
		log.Warn("display: planning failed, client composition", "err", err)
		plan = clientOnly(len(layers))
	}

	frame := &Frame{
		Seq:     d.seq,
		Plan:    &planner.Plan{Client: plan.Client},
		Buffers: make(map[int]*importer.BufferObject),
	}
	referenced := make(map[uint64]bool)
	for _, cp := range plan.Composition {
		h := layers[cp.LayerIndex].Buffer
		bo, ok := d.buffers[h.ID]
		if !ok {
			bo, err = d.platform.Importer.ImportBuffer(h)
			if err != nil {
				level := slog.LevelError
				if importer.IsBufferError(err) {
					level = slog.LevelWarn
				}
				log.Log(context.Background(), level, "display: import failed, layer moved to client",
					"layer", cp.LayerIndex, "buffer", h.ID, "err", err)
				frame.Plan.Client = append(frame.Plan.Client, cp.LayerIndex)
				continue
			}
			d.buffers[h.ID] = bo
		}
		referenced[h.ID] = true
		frame.Plan.Composition = append(frame.Plan.Composition, cp)
		frame.Buffers[cp.LayerIndex] = bo
	}
	slices.Sort(frame.Plan.Client)

	for id, bo := range d.buffers {
		if referenced[id] {
			continue
		}
		if err := d.platform.Importer.ReleaseBuffer(bo); err != nil {
			log.Warn("display: release failed", "buffer", id, "err", err)
		}
		delete(d.buffers, id)
	}

	if d.opts.target != nil && len(frame.Plan.Client) > 0 {
		d.composite(frame, layers)
	}

	log.Debug("display: frame presented",
		"hardware", len(frame.Plan.Composition), "client", len(frame.Plan.Client))
	return frame, nil
}

// composite draws the client layers of frame into the client target.
func (d *Display) composite(frame *Frame, layers []*planner.Layer) {
	var sources []compose.Source
	var unmaps []func() error
	defer func() {
		for _, unmap := range unmaps {
			if err := unmap(); err != nil {
				drmhwc.Logger().Warn("display: unmap failed", "err", err)
			}
		}
	}()

	for _, i := range frame.Plan.Client {
		l := layers[i]
		if l == nil || l.Buffer == nil {
			continue
		}
		pix, unmap, err := d.opts.mapper(l.Buffer)
		if err != nil {
			drmhwc.Logger().Warn("display: cannot map client layer", "layer", i, "err", err)
			continue
		}
		unmaps = append(unmaps, unmap)
		sources = append(sources, compose.Source{
			Buffer:       l.Buffer,
			Pixels:       pix,
			SourceCrop:   l.SourceCrop,
			DisplayFrame: l.DisplayFrame,
		})
	}

	d.opts.target.Clear(color.Transparent)
	if err := d.opts.compositor.Composite(d.opts.target, sources); err != nil {
		drmhwc.Logger().Warn("display: client composition incomplete", "err", err)
	}
	frame.Composited = true

	if d.opts.texture != nil {
		if err := d.opts.target.Upload(d.opts.texture); err != nil {
			drmhwc.Logger().Warn("display: client target upload failed", "err", err)
			return
		}
		frame.Uploaded = true
	}
}

// Buffers returns the number of imported buffers the display holds.
func (d *Display) Buffers() int {
	return len(d.buffers)
}

// Close releases every imported buffer. It returns the release errors
// joined; the buffers are dropped either way.
func (d *Display) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true

	var errs []error
	for id, bo := range d.buffers {
		if err := d.platform.Importer.ReleaseBuffer(bo); err != nil {
			errs = append(errs, fmt.Errorf("buffer %d: %w", id, err))
		}
	}
	clear(d.buffers)
	return errors.Join(errs...)
}

func clientOnly(n int) *planner.Plan {
	p := &planner.Plan{Client: make([]int, n)}
	for i := range p.Client {
		p.Client[i] = i
	}
	return p
}
