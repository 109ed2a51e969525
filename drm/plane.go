// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package drm

import (
	"fmt"
	"slices"

	"github.com/gogpu/drmhwc/format"
)

// Crtc is a display pipeline.
type Crtc struct {
	ID uint32

	// Pipe is the index of the CRTC in the device resources. Planes refer
	// to CRTCs through bit Pipe of their PossibleCrtcs mask.
	Pipe int
}

func (c *Crtc) String() string {
	return fmt.Sprintf("crtc %d (pipe %d)", c.ID, c.Pipe)
}

// Plane is a hardware scan-out plane.
type Plane struct {
	ID uint32

	// PossibleCrtcs is a bitmask of the CRTC pipes the plane can attach to.
	PossibleCrtcs uint32

	// Formats lists the fourccs the plane can scan out. An empty list
	// means the device did not advertise formats; any format is accepted.
	Formats []format.Fourcc
}

func (p *Plane) String() string {
	return fmt.Sprintf("plane %d", p.ID)
}

// SupportsCrtc reports whether p can be attached to c.
func (p *Plane) SupportsCrtc(c *Crtc) bool {
	if c == nil || c.Pipe < 0 || c.Pipe > 31 {
		return false
	}
	return p.PossibleCrtcs&(1<<uint(c.Pipe)) != 0
}

// SupportsFormat reports whether p can scan out buffers of format f.
func (p *Plane) SupportsFormat(f format.Fourcc) bool {
	if len(p.Formats) == 0 {
		return true
	}
	return slices.Contains(p.Formats, f)
}
