// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package format

import (
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestFourccValues(t *testing.T) {
	tests := []struct {
		f    Fourcc
		want uint32
		name string
	}{
		{ARGB8888, 0x34325241, "AR24"},
		{ABGR8888, 0x34324241, "AB24"},
		{XRGB8888, 0x34325258, "XR24"},
		{XBGR8888, 0x34324258, "XB24"},
		{RGB888, 0x34324752, "RG24"},
		{BGR888, 0x34324742, "BG24"},
		{RGB565, 0x36314752, "RG16"},
		{BGR565, 0x36314742, "BG16"},
		{YVU420, 0x32315659, "YV12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if uint32(tt.f) != tt.want {
				t.Errorf("value = %#x, want %#x", uint32(tt.f), tt.want)
			}
			if tt.f.String() != tt.name {
				t.Errorf("String() = %q, want %q", tt.f.String(), tt.name)
			}
		})
	}

	if Invalid.String() != "INVALID" {
		t.Errorf("Invalid.String() = %q", Invalid.String())
	}
	if got := Fourcc(0x01).String(); !strings.HasPrefix(got, "Fourcc(0x") {
		t.Errorf("Fourcc(1).String() = %q, want Fourcc(0x...)", got)
	}
}

func TestTextureFormat(t *testing.T) {
	tests := []struct {
		f    Fourcc
		want gputypes.TextureFormat
	}{
		{ABGR8888, gputypes.TextureFormatRGBA8Unorm},
		{XBGR8888, gputypes.TextureFormatRGBA8Unorm},
		{ARGB8888, gputypes.TextureFormatBGRA8Unorm},
		{XRGB8888, gputypes.TextureFormatBGRA8Unorm},
		{YVU420, gputypes.TextureFormatR8Unorm},
		{RGB565, gputypes.TextureFormatUndefined},
		{RGB888, gputypes.TextureFormatUndefined},
	}

	for _, tt := range tests {
		if got := TextureFormat(tt.f); got != tt.want {
			t.Errorf("TextureFormat(%v) = %v, want %v", tt.f, got, tt.want)
		}
	}
}
