// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package drm

import (
	"unsafe"

	kdrm "github.com/NeowayLabs/drm"
	"github.com/NeowayLabs/drm/ioctl"
)

// The mode package covers KMS requests only. The two GEM/PRIME requests the
// importer needs are encoded here the same way.

// drmGemClose corresponds to struct drm_gem_close.
type drmGemClose struct {
	Handle uint32
	Pad    uint32
}

// drmPrimeHandle corresponds to struct drm_prime_handle.
type drmPrimeHandle struct {
	Handle uint32
	Flags  uint32
	FD     int32
}

var (
	// DRM_IOW(0x09, struct drm_gem_close)
	ioctlGemClose = ioctl.NewCode(ioctl.Write,
		uint16(unsafe.Sizeof(drmGemClose{})), kdrm.IOCTLBase, 0x09)

	// DRM_IOWR(0x2E, struct drm_prime_handle)
	ioctlPrimeFDToHandle = ioctl.NewCode(ioctl.Read|ioctl.Write,
		uint16(unsafe.Sizeof(drmPrimeHandle{})), kdrm.IOCTLBase, 0x2E)
)
