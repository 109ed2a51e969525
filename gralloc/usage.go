package gralloc

import (
	"fmt"
	"strings"
)

// Usage is the gralloc usage bitmask declared when a buffer was allocated.
type Usage uint32

// Software access flags. Read and write access are 4-bit fields.
const (
	SWReadNever  Usage = 0x00000000
	SWReadRarely Usage = 0x00000002
	SWReadOften  Usage = 0x00000003
	SWReadMask   Usage = 0x0000000F

	SWWriteNever  Usage = 0x00000000
	SWWriteRarely Usage = 0x00000020
	SWWriteOften  Usage = 0x00000030
	SWWriteMask   Usage = 0x000000F0
)

// Hardware access flags.
const (
	HWTexture      Usage = 0x00000100
	HWRender       Usage = 0x00000200
	HW2D           Usage = 0x00000400
	HWComposer     Usage = 0x00000800
	HWFB           Usage = 0x00001000
	ExternalDisp   Usage = 0x00002000
	Protected      Usage = 0x00004000
	Cursor         Usage = 0x00008000
	HWVideoEncoder Usage = 0x00010000
	HWCameraWrite  Usage = 0x00020000
	HWCameraRead   Usage = 0x00040000
)

// IsUsageEligible reports whether a buffer with the given usage may be
// handed to hardware scan-out: it is a framebuffer target, or the CPU
// never reads or writes it. CPU-mapped buffers stay on the client path
// since scan-out would bypass their cache maintenance.
func IsUsageEligible(u Usage) bool {
	if u&HWFB == HWFB {
		return true
	}
	return u&SWReadMask == SWReadNever && u&SWWriteMask == SWWriteNever
}

// SWRead returns the software read field of u.
func (u Usage) SWRead() Usage { return u & SWReadMask }

// SWWrite returns the software write field of u.
func (u Usage) SWWrite() Usage { return u & SWWriteMask }

var usageNames = []struct {
	flag Usage
	name string
}{
	{HWTexture, "HW_TEXTURE"},
	{HWRender, "HW_RENDER"},
	{HW2D, "HW_2D"},
	{HWComposer, "HW_COMPOSER"},
	{HWFB, "HW_FB"},
	{ExternalDisp, "EXTERNAL_DISP"},
	{Protected, "PROTECTED"},
	{Cursor, "CURSOR"},
	{HWVideoEncoder, "HW_VIDEO_ENCODER"},
	{HWCameraWrite, "HW_CAMERA_WRITE"},
	{HWCameraRead, "HW_CAMERA_READ"},
}

func accessName(v Usage, rarely, often Usage) string {
	switch v {
	case 0:
		return "NEVER"
	case rarely:
		return "RARELY"
	case often:
		return "OFTEN"
	default:
		return fmt.Sprintf("%#x", uint32(v))
	}
}

// String formats u as "SW_READ_x|SW_WRITE_y|HW_...".
func (u Usage) String() string {
	parts := []string{
		"SW_READ_" + accessName(u.SWRead(), SWReadRarely, SWReadOften),
		"SW_WRITE_" + accessName(u.SWWrite(), SWWriteRarely, SWWriteOften),
	}
	rest := u &^ (SWReadMask | SWWriteMask)
	for _, n := range usageNames {
		if rest&n.flag != 0 {
			parts = append(parts, n.name)
			rest &^= n.flag
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("%#x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}
