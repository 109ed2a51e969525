// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package format

import (
	"errors"
	"testing"
)

var allHAL = []HALFormat{HALRGB888, HALBGRA8888, HALRGBX8888, HALRGBA8888, HALRGB565, HALYV12}

func TestToDeviceFormat(t *testing.T) {
	tests := []struct {
		order ChannelOrder
		hal   HALFormat
		want  Fourcc
	}{
		{OrderRGB, HALRGB888, RGB888},
		{OrderRGB, HALBGRA8888, ARGB8888},
		{OrderRGB, HALRGBX8888, XRGB8888},
		{OrderRGB, HALRGBA8888, ARGB8888},
		{OrderRGB, HALRGB565, RGB565},
		{OrderRGB, HALYV12, YVU420},
		{OrderBGR, HALRGB888, BGR888},
		{OrderBGR, HALBGRA8888, ARGB8888},
		{OrderBGR, HALRGBX8888, XBGR8888},
		{OrderBGR, HALRGBA8888, ABGR8888},
		{OrderBGR, HALRGB565, BGR565},
		{OrderBGR, HALYV12, YVU420},
	}

	for _, tt := range tests {
		t.Run(tt.order.String()+"/"+tt.hal.String(), func(t *testing.T) {
			got, err := Translator{Order: tt.order}.ToDeviceFormat(tt.hal)
			if err != nil {
				t.Fatalf("ToDeviceFormat(%v) error = %v", tt.hal, err)
			}
			if got != tt.want {
				t.Errorf("ToDeviceFormat(%v) = %v, want %v", tt.hal, got, tt.want)
			}
		})
	}
}

func TestToDeviceFormatUnsupported(t *testing.T) {
	for _, order := range []ChannelOrder{OrderRGB, OrderBGR} {
		got, err := Translator{Order: order}.ToDeviceFormat(HALFormat(0x7f))
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("%v: error = %v, want ErrUnsupportedFormat", order, err)
		}
		if got != Invalid {
			t.Errorf("%v: format = %v, want Invalid", order, got)
		}
	}

	if _, err := (Translator{Order: ChannelOrder(9)}).ToDeviceFormat(HALRGBA8888); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("unknown order: error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestToSourceFormatUnsupported(t *testing.T) {
	if _, err := (Translator{}).ToSourceFormat(Fourcc(0x20202020)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
}

// Round trips land in the same family: same plane-0 size and same alpha.
func TestRoundTrip(t *testing.T) {
	for _, order := range []ChannelOrder{OrderRGB, OrderBGR} {
		tr := Translator{Order: order}
		for _, hal := range allHAL {
			dev, err := tr.ToDeviceFormat(hal)
			if err != nil {
				t.Fatalf("%v: ToDeviceFormat(%v) error = %v", order, hal, err)
			}
			back, err := tr.ToSourceFormat(dev)
			if err != nil {
				t.Fatalf("%v: ToSourceFormat(%v) error = %v", order, dev, err)
			}
			if BytesPerPixel(back) != BytesPerPixel(hal) {
				t.Errorf("%v: %v -> %v -> %v changes bytes per pixel", order, hal, dev, back)
			}
			if back.HasAlpha() != hal.HasAlpha() {
				t.Errorf("%v: %v -> %v -> %v changes alpha", order, hal, dev, back)
			}
		}
	}
}

// Under OrderBGR the mapping is one-to-one and round trips are exact.
func TestRoundTripExactBGR(t *testing.T) {
	tr := Translator{Order: OrderBGR}
	for _, hal := range allHAL {
		dev, _ := tr.ToDeviceFormat(hal)
		back, _ := tr.ToSourceFormat(dev)
		if back != hal {
			t.Errorf("%v -> %v -> %v, want %v", hal, dev, back, hal)
		}
	}
}

func TestChannelOrderString(t *testing.T) {
	if OrderRGB.String() != "rgb" || OrderBGR.String() != "bgr" {
		t.Errorf("String() = %q/%q, want rgb/bgr", OrderRGB.String(), OrderBGR.String())
	}
	if got := ChannelOrder(7).String(); got != "ChannelOrder(7)" {
		t.Errorf("String() = %q, want ChannelOrder(7)", got)
	}
}
