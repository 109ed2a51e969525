// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package drm

import (
	"testing"

	"github.com/gogpu/drmhwc/format"
)

func TestPlaneSupportsCrtc(t *testing.T) {
	p := &Plane{ID: 31, PossibleCrtcs: 0b101}

	tests := []struct {
		crtc *Crtc
		want bool
	}{
		{&Crtc{ID: 40, Pipe: 0}, true},
		{&Crtc{ID: 41, Pipe: 1}, false},
		{&Crtc{ID: 42, Pipe: 2}, true},
		{&Crtc{ID: 43, Pipe: 40}, false},
		{&Crtc{ID: 44, Pipe: -1}, false},
		{nil, false},
	}

	for _, tt := range tests {
		if got := p.SupportsCrtc(tt.crtc); got != tt.want {
			t.Errorf("SupportsCrtc(%v) = %v, want %v", tt.crtc, got, tt.want)
		}
	}
}

func TestPlaneSupportsFormat(t *testing.T) {
	unrestricted := &Plane{ID: 1}
	if !unrestricted.SupportsFormat(format.YVU420) {
		t.Error("plane without advertised formats should accept any format")
	}

	rgb := &Plane{ID: 2, Formats: []format.Fourcc{format.ARGB8888, format.XRGB8888}}
	if !rgb.SupportsFormat(format.XRGB8888) {
		t.Error("SupportsFormat(XRGB8888) = false, want true")
	}
	if rgb.SupportsFormat(format.YVU420) {
		t.Error("SupportsFormat(YVU420) = true, want false")
	}
}
