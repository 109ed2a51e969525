// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package format

import "github.com/gogpu/gputypes"

// TextureFormat returns the GPU texture format that samples a buffer of
// DRM format f without conversion. Formats with no direct equivalent
// return gputypes.TextureFormatUndefined.
//
// DRM formats name channels from the most significant bit of a little
// endian word, so ABGR8888 stores bytes as R, G, B, A in memory.
// YVU420 maps to its luma plane.
func TextureFormat(f Fourcc) gputypes.TextureFormat {
	switch f {
	case ABGR8888, XBGR8888:
		return gputypes.TextureFormatRGBA8Unorm
	case ARGB8888, XRGB8888:
		return gputypes.TextureFormatBGRA8Unorm
	case YVU420:
		return gputypes.TextureFormatR8Unorm
	default:
		return gputypes.TextureFormatUndefined
	}
}
