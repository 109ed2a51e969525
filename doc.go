// Package drmhwc imports allocator buffers into DRM/KMS and assigns
// hardware planes to display layers.
//
// # Overview
//
// drmhwc sits between a compositor and a Linux display device. Each frame
// the compositor hands over a list of layers; drmhwc decides which of them
// are scanned out directly by a hardware plane and which fall back to
// client (software) composition, then turns the buffers of the hardware
// layers into framebuffer objects the device can display.
//
// # Quick Start
//
//	card, err := drm.Open("/dev/dri/card0")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer card.Close()
//
//	p, err := platform.New("stm32mpu", card, allocator)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	d, err := display.New(crtc, planes, p)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer d.Close()
//
//	frame, err := d.PresentFrame(layers)
//
// # Architecture
//
// The module is organized into:
//   - format: HAL pixel format to DRM fourcc translation
//   - gralloc: buffer handles, usage flags and the allocator interface
//   - drm: the display device interface and its Linux ioctl backend
//   - importer: buffer import and release (descriptor-only and zero-copy)
//   - planner: plane provisioning stages
//   - platform: named importer/planner combinations per target
//   - display: the per-frame driver tying it all together
//   - compose: CPU composition of layers rejected to the client path
//
// # Errors
//
// Buffer-level failures never abort a frame. They are reported with the
// sentinel errors in this package and the layer is composited in software.
//
// # Logging
//
// drmhwc is silent by default. See SetLogger.
package drmhwc

// Version information
const (
	// Version is the current version of the module
	Version = "0.1.0"
)
