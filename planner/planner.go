// Package planner decides which layers of a frame are scanned out of
// hardware planes and which are left to software composition.
//
// A Planner runs a fixed list of stages over a shared State. Each stage
// takes layers from the pending set and either places them on a plane or
// sends them to the client. Whatever is still pending after the last
// stage goes to the client as well.
//
//	p := planner.New(planner.WithStages(planner.UsageGatedStage{}))
//	plan, err := p.ProvisionPlanes(candidates, crtc, planes)
//	if errors.Is(err, drmhwc.ErrNoHardwareCandidates) {
//	    // compose the whole frame in software
//	}
package planner

import (
	"fmt"
	"slices"

	"github.com/gogpu/drmhwc"
	"github.com/gogpu/drmhwc/drm"
	"github.com/gogpu/drmhwc/format"
)

// Stage is one plan-building strategy.
type Stage interface {
	// ProvisionPlanes consumes pending layers of st. A returned error
	// aborts the whole plan.
	ProvisionPlanes(st *State) error
}

// Option configures a Planner during creation.
type Option func(*Planner)

// WithStages replaces the stage list. Stages run in the given order.
func WithStages(stages ...Stage) Option {
	return func(p *Planner) {
		p.stages = stages
	}
}

// WithChannelOrder selects the fourcc family used to match layer formats
// against plane format lists. It must match the importer's order.
func WithChannelOrder(o format.ChannelOrder) Option {
	return func(p *Planner) {
		p.translator.Order = o
	}
}

// Planner builds a Plan per frame. It keeps no per-frame state and can be
// reused across frames of one display.
type Planner struct {
	stages     []Stage
	translator format.Translator
}

// New creates a planner. By default it runs a single UsageGatedStage and
// matches formats in format.OrderRGB.
func New(opts ...Option) *Planner {
	p := &Planner{
		stages:     []Stage{UsageGatedStage{}},
		translator: format.Translator{Order: format.OrderRGB},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProvisionPlanes assigns planes usable on crtc to layers.
//
// It fails with drmhwc.ErrNoUsablePlanes when none of planes can attach
// to crtc, and with drmhwc.ErrNoHardwareCandidates when the stages
// assigned no layer to hardware. In both cases the whole frame belongs
// to the client.
func (p *Planner) ProvisionPlanes(layers []Candidate, crtc *drm.Crtc, planes []*drm.Plane) (*Plan, error) {
	var usable []*drm.Plane
	for _, pl := range planes {
		if pl != nil && pl.SupportsCrtc(crtc) {
			usable = append(usable, pl)
		}
	}
	if len(usable) == 0 {
		return nil, fmt.Errorf("%w: %v", drmhwc.ErrNoUsablePlanes, crtc)
	}

	st := &State{
		crtc:       crtc,
		translator: p.translator,
		pending:    slices.Clone(layers),
		pool:       usable,
		plan:       &Plan{},
	}
	for _, s := range p.stages {
		if err := s.ProvisionPlanes(st); err != nil {
			return nil, err
		}
		drmhwc.Logger().Debug("planner: stage done", "stage", fmt.Sprintf("%T", s),
			"assigned", st.Assigned(), "remaining", st.Remaining())
	}

	if len(st.plan.Composition) == 0 {
		return nil, drmhwc.ErrNoHardwareCandidates
	}
	for _, c := range st.pending {
		st.plan.Client = append(st.plan.Client, c.Index)
	}
	st.pending = nil
	slices.Sort(st.plan.Client)

	drmhwc.Logger().Debug("planner: frame planned",
		"crtc", crtc.ID, "hardware", len(st.plan.Composition), "client", len(st.plan.Client))
	return st.plan, nil
}

// State is the plan under construction, shared by the stages of one
// ProvisionPlanes call.
type State struct {
	crtc       *drm.Crtc
	translator format.Translator
	pending    []Candidate
	pool       []*drm.Plane
	plan       *Plan
}

// Pending returns the layers no stage has consumed yet, in priority order.
func (st *State) Pending() []Candidate {
	return st.pending
}

// Remaining returns the number of planes left in the pool.
func (st *State) Remaining() int {
	return len(st.pool)
}

// Assigned returns the number of layers placed on planes so far.
func (st *State) Assigned() int {
	return len(st.plan.Composition)
}

// Emplace places c on the first plane of the pool that can scan out its
// buffer format and consumes c. On failure c stays pending.
func (st *State) Emplace(c Candidate) error {
	if c.Layer == nil || c.Layer.Buffer == nil {
		return drmhwc.ErrInvalidHandle
	}
	if c.Layer.Buffer.Format.HasLayoutBits() {
		return fmt.Errorf("%w: format %v", drmhwc.ErrUnsupportedLayout, c.Layer.Buffer.Format)
	}
	fourcc, err := st.translator.ToDeviceFormat(c.Layer.Buffer.Format)
	if err != nil {
		return err
	}

	pl, err := st.claim(fourcc)
	if err != nil {
		return err
	}
	st.plan.Composition = append(st.plan.Composition, CompositionPlane{
		Type:       TypeLayer,
		Plane:      pl,
		Crtc:       st.crtc,
		LayerIndex: c.Index,
	})
	st.consume(c)
	return nil
}

// ToClient consumes c and leaves it to software composition.
func (st *State) ToClient(c Candidate) {
	st.plan.Client = append(st.plan.Client, c.Index)
	st.consume(c)
}

// claim pops planes off the pool until one accepts f. Rejected planes go
// back to the front of the pool in their original order.
func (st *State) claim(f format.Fourcc) (*drm.Plane, error) {
	if len(st.pool) == 0 {
		return nil, drmhwc.ErrNoPlanesRemaining
	}
	for i, pl := range st.pool {
		if pl.SupportsFormat(f) {
			st.pool = slices.Delete(st.pool, i, i+1)
			return pl, nil
		}
	}
	return nil, fmt.Errorf("%w: %v", drmhwc.ErrPlaneRejected, f)
}

func (st *State) consume(c Candidate) {
	for i, p := range st.pending {
		if p.Index == c.Index {
			st.pending = slices.Delete(st.pending, i, i+1)
			return
		}
	}
}
