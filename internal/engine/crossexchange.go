package engine

import "vrpls/internal/model"

// CrossExchange swaps the consecutive pair (i, i+1) on the source with
// the consecutive pair (j, j+1) on the target. Requires Ls>=2, Lt>=2;
// symmetric in (s,t), enumerated only for t > s (spec §4.2).
type CrossExchange struct {
	base
	sPair, tPair [2]int
}

// NewCrossExchange builds and scores a CrossExchange candidate, or nil
// if either pair is out of range.
func NewCrossExchange(in *model.Input, sol *Solution, st *State, s, i, t, j int) *CrossExchange {
	sr, tr := sol.Routes[s], sol.Routes[t]
	if i+1 >= len(sr.Jobs) || j+1 >= len(tr.Jobs) {
		return nil
	}
	sPair := [2]int{sr.Jobs[i], sr.Jobs[i+1]}
	tPair := [2]int{tr.Jobs[j], tr.Jobs[j+1]}

	candS := spliceReplace(sr.Jobs, i, 2, tPair[:])
	candT := spliceReplace(tr.Jobs, j, 2, sPair[:])

	before := st.RouteCosts[s] + st.RouteCosts[t]
	after := routeSequenceCost(in, s, candS) + routeSequenceCost(in, t, candT)

	return &CrossExchange{
		base:  base{sVehicle: s, sRank: i, tVehicle: t, tRank: j, gain: before - after},
		sPair: sPair, tPair: tPair,
	}
}

func spliceReplace(jobs []int, pos, n int, with []int) []int {
	out := make([]int, 0, len(jobs)-n+len(with))
	out = append(out, jobs[:pos]...)
	out = append(out, with...)
	out = append(out, jobs[pos+n:]...)
	return out
}

func (c *CrossExchange) IsValid(in *model.Input, sol *Solution, st *State) bool {
	sr, tr := sol.Routes[c.sVehicle], sol.Routes[c.tVehicle]
	if !hasSkillsForAll(in, c.sVehicle, c.tPair[:]) || !hasSkillsForAll(in, c.tVehicle, c.sPair[:]) {
		return false
	}
	candS := spliceReplace(sr.Jobs, c.sRank, 2, c.tPair[:])
	candT := spliceReplace(tr.Jobs, c.tRank, 2, c.sPair[:])
	if !fitsCapacity(in, c.sVehicle, candS) || !fitsCapacity(in, c.tVehicle, candT) {
		return false
	}
	return feasible(in, c.sVehicle, candS) && feasible(in, c.tVehicle, candT)
}

func (c *CrossExchange) Apply(in *model.Input, sol *Solution, st *State) {
	sr, tr := sol.Routes[c.sVehicle], sol.Routes[c.tVehicle]
	sr.Jobs = spliceReplace(sr.Jobs, c.sRank, 2, c.tPair[:])
	tr.Jobs = spliceReplace(tr.Jobs, c.tRank, 2, c.sPair[:])
	sr.Rebuild(in)
	tr.Rebuild(in)
	st.RefreshRoute(sol, c.sVehicle)
	st.RefreshRoute(sol, c.tVehicle)
}

func (c *CrossExchange) AdditionCandidates() []int { return nil }

func (c *CrossExchange) Family() string { return "cross_exchange" }
