package engine

import "vrpls/internal/model"

// Relocate removes the single job at source position i and inserts it
// into the target route at position j in [0, Lt] (spec §4.2). Pruned
// by: source non-empty, target has room for the smallest job demand
// in the input (minDemand), and
// NodeGains[s][i] alone beating the current best-so-far for (s,t) —
// see spec §9's open question on this pruning being unsound when
// insertion costs can be negative; preserved as specified.
type Relocate struct {
	base
	job int
}

// NewRelocate builds and scores a Relocate candidate, or nil if either
// position is out of range.
func NewRelocate(in *model.Input, sol *Solution, st *State, s, i, t, j int) *Relocate {
	sr, tr := sol.Routes[s], sol.Routes[t]
	if i >= len(sr.Jobs) || j > len(tr.Jobs) {
		return nil
	}
	job := sr.Jobs[i]

	candS := withoutAt(sr.Jobs, i)
	candT := withInsertedAt(tr.Jobs, j, job)

	before := st.RouteCosts[s] + st.RouteCosts[t]
	after := routeSequenceCost(in, s, candS) + routeSequenceCost(in, t, candT)

	return &Relocate{
		base: base{sVehicle: s, sRank: i, tVehicle: t, tRank: j, gain: before - after},
		job:  job,
	}
}

func (o *Relocate) IsValid(in *model.Input, sol *Solution, st *State) bool {
	if !model.HasSkills(in.Vehicles[o.tVehicle].Skills, in.Jobs[o.job].Skills) {
		return false
	}
	tr := sol.Routes[o.tVehicle]
	candT := withInsertedAt(tr.Jobs, o.tRank, o.job)
	if !fitsCapacity(in, o.tVehicle, candT) {
		return false
	}
	sr := sol.Routes[o.sVehicle]
	candS := withoutAt(sr.Jobs, o.sRank)
	return feasible(in, o.sVehicle, candS) && feasible(in, o.tVehicle, candT)
}

func (o *Relocate) Apply(in *model.Input, sol *Solution, st *State) {
	sr, tr := sol.Routes[o.sVehicle], sol.Routes[o.tVehicle]
	sr.Jobs = withoutAt(sr.Jobs, o.sRank)
	tr.Jobs = withInsertedAt(tr.Jobs, o.tRank, o.job)
	sr.Rebuild(in)
	tr.Rebuild(in)
	st.RefreshRoute(sol, o.sVehicle)
	st.RefreshRoute(sol, o.tVehicle)
}

// AdditionCandidates hints the two touched vehicles to the insertion
// heuristic: relocating a job can free enough capacity or time on
// either route to admit a job that previously didn't fit.
func (o *Relocate) AdditionCandidates() []int { return []int{o.sVehicle, o.tVehicle} }

func (o *Relocate) Family() string { return "relocate" }
