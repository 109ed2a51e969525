package planner

import (
	"fmt"
	"image"

	"github.com/gogpu/drmhwc/drm"
	"github.com/gogpu/drmhwc/gralloc"
)

// Layer is one display layer of a frame.
type Layer struct {
	Buffer *gralloc.Handle
	Usage  gralloc.Usage

	// DisplayFrame is where the layer lands on the display.
	DisplayFrame image.Rectangle

	// SourceCrop is the part of the buffer that is shown.
	SourceCrop image.Rectangle
}

// Candidate pairs a layer with its frame-local index. A slice of
// candidates is in priority order: earlier entries claim planes first.
type Candidate struct {
	Index int
	Layer *Layer
}

// CompositionType tells the display what a composition plane carries.
type CompositionType int

const (
	// TypeLayer scans a single layer's buffer out of the plane.
	TypeLayer CompositionType = iota + 1
)

func (t CompositionType) String() string {
	switch t {
	case TypeLayer:
		return "layer"
	default:
		return fmt.Sprintf("CompositionType(%d)", int(t))
	}
}

// CompositionPlane assigns a hardware plane to a layer.
type CompositionPlane struct {
	Type       CompositionType
	Plane      *drm.Plane
	Crtc       *drm.Crtc
	LayerIndex int
}

func (c CompositionPlane) String() string {
	return fmt.Sprintf("%v: %v layer %d on %v", c.Plane, c.Type, c.LayerIndex, c.Crtc)
}

// Plan is the hardware/software split of one frame.
type Plan struct {
	// Composition lists the hardware assignments. No plane appears twice.
	Composition []CompositionPlane

	// Client lists, in ascending order, the indices of the layers left
	// to software composition.
	Client []int
}

// Hardware reports whether layer index i was assigned a plane.
func (p *Plan) Hardware(i int) bool {
	for _, c := range p.Composition {
		if c.LayerIndex == i {
			return true
		}
	}
	return false
}
