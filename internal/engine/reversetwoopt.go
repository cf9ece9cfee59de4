package engine

import "vrpls/internal/model"

// ReverseTwoOptStar is TwoOptStar's mirrored sibling: the spliced
// tails are reversed before concatenation. The source becomes
// 0..i ++ reverse(target[0..j]); the target becomes
// reverse(source[i+1..]) ++ target[j+1..] (spec §4.2).
type ReverseTwoOptStar struct {
	base
	sHead, tHeadRev []int
	sTailRev, tTail []int
}

// NewReverseTwoOptStar builds and scores a ReverseTwoOptStar candidate.
func NewReverseTwoOptStar(in *model.Input, sol *Solution, st *State, s, i, t, j int) *ReverseTwoOptStar {
	sr, tr := sol.Routes[s], sol.Routes[t]
	if i >= len(sr.Jobs) || j >= len(tr.Jobs) {
		return nil
	}
	sHead := append([]int(nil), sr.Jobs[:i+1]...)
	tHeadRev := reversed(tr.Jobs[:j+1])
	sTailRev := reversed(sr.Jobs[i+1:])
	tTail := append([]int(nil), tr.Jobs[j+1:]...)

	candS := append(append([]int(nil), sHead...), tHeadRev...)
	candT := append(append([]int(nil), sTailRev...), tTail...)

	before := st.RouteCosts[s] + st.RouteCosts[t]
	after := routeSequenceCost(in, s, candS) + routeSequenceCost(in, t, candT)

	return &ReverseTwoOptStar{
		base:     base{sVehicle: s, sRank: i, tVehicle: t, tRank: j, gain: before - after},
		sHead:    sHead, tHeadRev: tHeadRev, sTailRev: sTailRev, tTail: tTail,
	}
}

func (o *ReverseTwoOptStar) candidates() (candS, candT []int) {
	candS = append(append([]int(nil), o.sHead...), o.tHeadRev...)
	candT = append(append([]int(nil), o.sTailRev...), o.tTail...)
	return
}

// BoundReverseCapacityPrune implements the early-break iteration bound
// of spec §4.2 for ReverseTwoOptStar: fwd_amounts[t][j] must fit the
// room left in the source vehicle after fwd_amounts[s][i].
func BoundReverseCapacityPrune(in *model.Input, st *State, s, i, t, j int) bool {
	room := in.Vehicles[s].Capacity
	if i >= 0 {
		room = room.Sub(st.FwdAmounts[s][i])
	}
	if j < 0 || j >= len(st.FwdAmounts[t]) {
		return true
	}
	return st.FwdAmounts[t][j].LTE(room)
}

func (o *ReverseTwoOptStar) IsValid(in *model.Input, sol *Solution, st *State) bool {
	candS, candT := o.candidates()
	if !hasSkillsForAll(in, o.sVehicle, o.tHeadRev) || !hasSkillsForAll(in, o.tVehicle, o.sTailRev) {
		return false
	}
	if !fitsCapacity(in, o.sVehicle, candS) || !fitsCapacity(in, o.tVehicle, candT) {
		return false
	}
	return feasible(in, o.sVehicle, candS) && feasible(in, o.tVehicle, candT)
}

func (o *ReverseTwoOptStar) Apply(in *model.Input, sol *Solution, st *State) {
	candS, candT := o.candidates()
	sol.Routes[o.sVehicle].Jobs = candS
	sol.Routes[o.tVehicle].Jobs = candT
	sol.Routes[o.sVehicle].Rebuild(in)
	sol.Routes[o.tVehicle].Rebuild(in)
	st.RefreshRoute(sol, o.sVehicle)
	st.RefreshRoute(sol, o.tVehicle)
}

func (o *ReverseTwoOptStar) AdditionCandidates() []int { return nil }

func (o *ReverseTwoOptStar) Family() string { return "reverse_two_opt_star" }
