// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package format

import "fmt"

// Fourcc is a DRM pixel format code as defined in drm_fourcc.h.
type Fourcc uint32

// DRM pixel formats produced by the translator.
const (
	Invalid Fourcc = 0

	RGB888   Fourcc = 'R' | 'G'<<8 | '2'<<16 | '4'<<24
	BGR888   Fourcc = 'B' | 'G'<<8 | '2'<<16 | '4'<<24
	ARGB8888 Fourcc = 'A' | 'R'<<8 | '2'<<16 | '4'<<24
	ABGR8888 Fourcc = 'A' | 'B'<<8 | '2'<<16 | '4'<<24
	XRGB8888 Fourcc = 'X' | 'R'<<8 | '2'<<16 | '4'<<24
	XBGR8888 Fourcc = 'X' | 'B'<<8 | '2'<<16 | '4'<<24
	RGB565   Fourcc = 'R' | 'G'<<8 | '1'<<16 | '6'<<24
	BGR565   Fourcc = 'B' | 'G'<<8 | '1'<<16 | '6'<<24
	YVU420   Fourcc = 'Y' | 'V'<<8 | '1'<<16 | '2'<<24
)

// String returns the four character code, e.g. "AR24".
func (f Fourcc) String() string {
	if f == Invalid {
		return "INVALID"
	}
	b := [4]byte{byte(f), byte(f >> 8), byte(f >> 16), byte(f >> 24)}
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return fmt.Sprintf("Fourcc(%#08x)", uint32(f))
		}
	}
	return string(b[:])
}
