package drmhwc

import (
	"errors"
	"syscall"
	"testing"
)

func TestWrapDeviceError(t *testing.T) {
	err := WrapDeviceError(ErrKernelImportFailed, "PRIME_FD_TO_HANDLE", syscall.EBADF)

	if !errors.Is(err, ErrKernelImportFailed) {
		t.Errorf("errors.Is(err, ErrKernelImportFailed) = false, want true")
	}
	if errors.Is(err, ErrFramebufferRegistrationFailed) {
		t.Errorf("errors.Is(err, ErrFramebufferRegistrationFailed) = true, want false")
	}
	if !errors.Is(err, syscall.EBADF) {
		t.Errorf("errors.Is(err, EBADF) = false, want true")
	}

	var devErr *DeviceError
	if !errors.As(err, &devErr) {
		t.Fatal("errors.As(err, *DeviceError) = false, want true")
	}
	if devErr.Op != "PRIME_FD_TO_HANDLE" {
		t.Errorf("Op = %q, want %q", devErr.Op, "PRIME_FD_TO_HANDLE")
	}
}

func TestDeviceErrorMessage(t *testing.T) {
	err := &DeviceError{Op: "MODE_ADDFB2", Err: syscall.EINVAL}
	want := "drmhwc: MODE_ADDFB2: " + syscall.EINVAL.Error()
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
