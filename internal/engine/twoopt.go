package engine

import "vrpls/internal/model"

// TwoOptStar splits both routes after positions i and j and
// reconnects them: the source keeps 0..i and continues with the
// target's j+1..end, the target keeps 0..j and continues with the
// source's i+1..end. Symmetric in (s,t) (spec §4.2).
type TwoOptStar struct {
	base
	sHead, tTail []int
	tHead, sTail []int
}

// NewTwoOptStar builds and scores a TwoOptStar candidate. i and j are
// split points; i == -1 / j == -1 means "keep nothing before the
// split" (an empty head).
func NewTwoOptStar(in *model.Input, sol *Solution, st *State, s, i, t, j int) *TwoOptStar {
	sr, tr := sol.Routes[s], sol.Routes[t]
	if i >= len(sr.Jobs) || j >= len(tr.Jobs) {
		return nil
	}
	sHead := append([]int(nil), sr.Jobs[:i+1]...)
	sTail := append([]int(nil), sr.Jobs[i+1:]...)
	tHead := append([]int(nil), tr.Jobs[:j+1]...)
	tTail := append([]int(nil), tr.Jobs[j+1:]...)

	candS := append(append([]int(nil), sHead...), tTail...)
	candT := append(append([]int(nil), tHead...), sTail...)

	before := st.RouteCosts[s] + st.RouteCosts[t]
	after := routeSequenceCost(in, s, candS) + routeSequenceCost(in, t, candT)

	return &TwoOptStar{
		base:  base{sVehicle: s, sRank: i, tVehicle: t, tRank: j, gain: before - after},
		sHead: sHead, tTail: tTail, tHead: tHead, sTail: sTail,
	}
}

func (o *TwoOptStar) candidates() (candS, candT []int) {
	candS = append(append([]int(nil), o.sHead...), o.tTail...)
	candT = append(append([]int(nil), o.tHead...), o.sTail...)
	return
}

// BoundCapacityPrune implements the iteration bound of spec §4.2: as j
// decreases, stop once the target's backward amount at j exceeds the
// room left in the source vehicle after fwd_amounts[s][i].
func BoundCapacityPrune(in *model.Input, st *State, s, i, t, j int) bool {
	room := in.Vehicles[s].Capacity
	if i >= 0 {
		room = room.Sub(st.FwdAmounts[s][i])
	}
	if j < 0 || j >= len(st.BwdAmounts[t]) {
		return true
	}
	return st.BwdAmounts[t][j].LTE(room)
}

func (o *TwoOptStar) IsValid(in *model.Input, sol *Solution, st *State) bool {
	candS, candT := o.candidates()
	if !hasSkillsForAll(in, o.sVehicle, o.tTail) || !hasSkillsForAll(in, o.tVehicle, o.sTail) {
		return false
	}
	if !fitsCapacity(in, o.sVehicle, candS) || !fitsCapacity(in, o.tVehicle, candT) {
		return false
	}
	return feasible(in, o.sVehicle, candS) && feasible(in, o.tVehicle, candT)
}

func (o *TwoOptStar) Apply(in *model.Input, sol *Solution, st *State) {
	candS, candT := o.candidates()
	sol.Routes[o.sVehicle].Jobs = candS
	sol.Routes[o.tVehicle].Jobs = candT
	sol.Routes[o.sVehicle].Rebuild(in)
	sol.Routes[o.tVehicle].Rebuild(in)
	st.RefreshRoute(sol, o.sVehicle)
	st.RefreshRoute(sol, o.tVehicle)
}

func (o *TwoOptStar) AdditionCandidates() []int { return nil }

func (o *TwoOptStar) Family() string { return "two_opt_star" }
