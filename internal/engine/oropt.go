package engine

import "vrpls/internal/model"

// OrOpt relocates the consecutive pair (source[i], source[i+1]) into
// the target at position j (spec §4.2). Pruned analogously to Relocate
// but via EdgeGains and a doubled minimum-demand threshold.
type OrOpt struct {
	base
	pair [2]int
}

// NewOrOpt builds and scores an OrOpt candidate, or nil if the pair or
// target position is out of range.
func NewOrOpt(in *model.Input, sol *Solution, st *State, s, i, t, j int) *OrOpt {
	sr, tr := sol.Routes[s], sol.Routes[t]
	if i+1 >= len(sr.Jobs) || j > len(tr.Jobs) {
		return nil
	}
	pair := [2]int{sr.Jobs[i], sr.Jobs[i+1]}

	candS := spliceReplace(sr.Jobs, i, 2, nil)
	candT := spliceReplace(tr.Jobs, j, 0, pair[:])

	before := st.RouteCosts[s] + st.RouteCosts[t]
	after := routeSequenceCost(in, s, candS) + routeSequenceCost(in, t, candT)

	return &OrOpt{
		base: base{sVehicle: s, sRank: i, tVehicle: t, tRank: j, gain: before - after},
		pair: pair,
	}
}

func (o *OrOpt) IsValid(in *model.Input, sol *Solution, st *State) bool {
	if !hasSkillsForAll(in, o.tVehicle, o.pair[:]) {
		return false
	}
	tr := sol.Routes[o.tVehicle]
	candT := spliceReplace(tr.Jobs, o.tRank, 0, o.pair[:])
	if !fitsCapacity(in, o.tVehicle, candT) {
		return false
	}
	sr := sol.Routes[o.sVehicle]
	candS := spliceReplace(sr.Jobs, o.sRank, 2, nil)
	return feasible(in, o.sVehicle, candS) && feasible(in, o.tVehicle, candT)
}

func (o *OrOpt) Apply(in *model.Input, sol *Solution, st *State) {
	sr, tr := sol.Routes[o.sVehicle], sol.Routes[o.tVehicle]
	sr.Jobs = spliceReplace(sr.Jobs, o.sRank, 2, nil)
	tr.Jobs = spliceReplace(tr.Jobs, o.tRank, 0, o.pair[:])
	sr.Rebuild(in)
	tr.Rebuild(in)
	st.RefreshRoute(sol, o.sVehicle)
	st.RefreshRoute(sol, o.tVehicle)
}

func (o *OrOpt) AdditionCandidates() []int { return []int{o.sVehicle, o.tVehicle} }

func (o *OrOpt) Family() string { return "or_opt" }
