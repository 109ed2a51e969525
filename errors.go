package drmhwc

import (
	"errors"
	"fmt"
)

// Buffer-level errors. They affect one buffer or layer only; callers route
// the layer to client composition and carry on with the rest of the frame.
var (
	// ErrInvalidHandle is returned for a nil or otherwise unusable buffer handle.
	ErrInvalidHandle = errors.New("drmhwc: invalid buffer handle")

	// ErrUnsupportedFormat is returned when a pixel format is outside the
	// supported enumeration or its row pitch cannot be computed.
	ErrUnsupportedFormat = errors.New("drmhwc: unsupported pixel format")

	// ErrUnsupportedLayout is returned when the format carries reserved bits
	// describing a compressed or non-linear memory layout.
	ErrUnsupportedLayout = errors.New("drmhwc: unsupported buffer layout")

	// ErrIneligibleUsage is returned when the usage flags forbid scan-out.
	ErrIneligibleUsage = errors.New("drmhwc: buffer usage not eligible for scan-out")

	// ErrKernelImportFailed is returned when the device rejects the
	// shared-memory descriptor of a buffer.
	ErrKernelImportFailed = errors.New("drmhwc: kernel buffer import failed")

	// ErrFramebufferRegistrationFailed is returned when the device rejects
	// the framebuffer registration of an imported buffer.
	ErrFramebufferRegistrationFailed = errors.New("drmhwc: framebuffer registration failed")
)

// Initialization errors. They are fatal to the importer instance.
var (
	// ErrAllocatorUnavailable is returned when no allocator module is present.
	ErrAllocatorUnavailable = errors.New("drmhwc: allocator module unavailable")

	// ErrDeviceUnavailable is returned when an importer that issues kernel
	// requests is built without a display device.
	ErrDeviceUnavailable = errors.New("drmhwc: display device unavailable")
)

// Plane provisioning errors.
var (
	// ErrNoPlanesRemaining marks the capacity boundary of a frame. It stops
	// hardware assignment and is not reported as a failure of the frame.
	ErrNoPlanesRemaining = errors.New("drmhwc: no planes remaining")

	// ErrPlaneRejected is returned when planes remain but none of them can
	// scan out the layer.
	ErrPlaneRejected = errors.New("drmhwc: no plane accepts layer")

	// ErrNoHardwareCandidates is returned when a provisioning pass assigned
	// no layer to a plane. The frame falls back to client composition.
	ErrNoHardwareCandidates = errors.New("drmhwc: no hardware composition candidates")

	// ErrNoUsablePlanes is returned when the display pipeline has no plane
	// that can be attached to its CRTC.
	ErrNoUsablePlanes = errors.New("drmhwc: display has no usable planes")
)

// DeviceError records a kernel request rejected by the display device.
// Op names the request (for example "PRIME_FD_TO_HANDLE") and Err is the
// underlying error, usually a syscall.Errno.
type DeviceError struct {
	Op  string
	Err error
}

func (e *DeviceError) Error() string {
	return "drmhwc: " + e.Op + ": " + e.Err.Error()
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}

// WrapDeviceError builds an error that matches both kind (one of the
// sentinel errors above) and a *DeviceError for op, so callers can use
// errors.Is for classification and errors.As for the failing request.
func WrapDeviceError(kind error, op string, err error) error {
	return fmt.Errorf("%w: %w", kind, &DeviceError{Op: op, Err: err})
}
