package planner

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/drmhwc"
	"github.com/gogpu/drmhwc/gralloc"
)

// UsageGatedStage walks the pending layers in priority order. Layers whose
// usage forbids scan-out go to the client without consuming a plane. Each
// other layer claims one plane. Running out of planes stops the walk and
// leaves the unvisited layers pending. Any other claim failure drops only
// that layer to the client.
type UsageGatedStage struct{}

// ProvisionPlanes implements Stage.
func (UsageGatedStage) ProvisionPlanes(st *State) error {
	for _, c := range slices.Clone(st.Pending()) {
		if c.Layer == nil || !gralloc.IsUsageEligible(c.Layer.Usage) {
			st.ToClient(c)
			continue
		}
		err := st.Emplace(c)
		if errors.Is(err, drmhwc.ErrNoPlanesRemaining) {
			break
		}
		if err != nil {
			drmhwc.Logger().Warn("planner: layer dropped to client",
				"layer", c.Index, "err", err)
			st.ToClient(c)
		}
	}
	return nil
}

// GreedyStage places pending layers in priority order without looking at
// usage. Running out of planes stops it. Any other failure aborts the plan.
type GreedyStage struct{}

// ProvisionPlanes implements Stage.
func (GreedyStage) ProvisionPlanes(st *State) error {
	for _, c := range slices.Clone(st.Pending()) {
		err := st.Emplace(c)
		if errors.Is(err, drmhwc.ErrNoPlanesRemaining) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("planner: layer %d: %w", c.Index, err)
		}
	}
	return nil
}

var (
	_ Stage = UsageGatedStage{}
	_ Stage = GreedyStage{}
)
