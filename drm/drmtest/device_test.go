// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package drmtest

import (
	"errors"
	"syscall"
	"testing"

	"github.com/gogpu/drmhwc/drm"
	"github.com/gogpu/drmhwc/format"
)

func TestDeviceLifecycle(t *testing.T) {
	d := New()

	h, err := d.PrimeFDToHandle(7)
	if err != nil {
		t.Fatalf("PrimeFDToHandle() error = %v", err)
	}
	again, _ := d.PrimeFDToHandle(7)
	if again != h {
		t.Errorf("second import = %d, want same handle %d", again, h)
	}

	fb, err := d.AddFramebuffer(&drm.Framebuffer{
		Width: 4, Height: 4, Format: format.ARGB8888,
		Handles: [4]uint32{h},
		Pitches: [4]uint32{16},
	})
	if err != nil {
		t.Fatalf("AddFramebuffer() error = %v", err)
	}
	if d.Framebuffers() != 1 {
		t.Errorf("Framebuffers() = %d, want 1", d.Framebuffers())
	}

	if err := d.RemoveFramebuffer(fb); err != nil {
		t.Errorf("RemoveFramebuffer() error = %v", err)
	}
	if err := d.CloseHandle(h); err != nil {
		t.Errorf("CloseHandle() error = %v", err)
	}
	if err := d.CloseHandle(h); !errors.Is(err, syscall.EINVAL) {
		t.Errorf("double CloseHandle() error = %v, want EINVAL", err)
	}
	if d.OpenHandles() != 0 {
		t.Errorf("OpenHandles() = %d, want 0", d.OpenHandles())
	}
}

func TestDeviceRejectsClosedHandleInFramebuffer(t *testing.T) {
	d := New()
	_, err := d.AddFramebuffer(&drm.Framebuffer{Handles: [4]uint32{9}})
	if !errors.Is(err, syscall.ENOENT) {
		t.Errorf("AddFramebuffer() error = %v, want ENOENT", err)
	}
}

func TestDeviceFailureInjection(t *testing.T) {
	d := New()
	d.FailImport = syscall.ENODEV
	if _, err := d.PrimeFDToHandle(3); !errors.Is(err, syscall.ENODEV) {
		t.Errorf("PrimeFDToHandle() error = %v, want ENODEV", err)
	}
	if len(d.Imported) != 1 {
		t.Errorf("Imported = %v, want one request", d.Imported)
	}
}
