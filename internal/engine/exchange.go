package engine

import "vrpls/internal/model"

// Exchange swaps the single job at source position i with the single
// job at target position j. Symmetric in (s,t); the driver enumerates
// it only for t > s (spec §4.2).
type Exchange struct {
	base
	sJob, tJob int
}

// NewExchange builds and lazily scores an Exchange candidate, or nil
// if the positions are out of range.
func NewExchange(in *model.Input, sol *Solution, st *State, s, i, t, j int) *Exchange {
	sr, tr := sol.Routes[s], sol.Routes[t]
	if i >= len(sr.Jobs) || j >= len(tr.Jobs) {
		return nil
	}
	sJob, tJob := sr.Jobs[i], tr.Jobs[j]

	candS := append([]int(nil), sr.Jobs...)
	candS[i] = tJob
	candT := append([]int(nil), tr.Jobs...)
	candT[j] = sJob

	before := st.RouteCosts[s] + st.RouteCosts[t]
	after := routeSequenceCost(in, s, candS) + routeSequenceCost(in, t, candT)

	return &Exchange{
		base: base{sVehicle: s, sRank: i, tVehicle: t, tRank: j, gain: before - after},
		sJob: sJob, tJob: tJob,
	}
}

func (e *Exchange) IsValid(in *model.Input, sol *Solution, st *State) bool {
	sr, tr := sol.Routes[e.sVehicle], sol.Routes[e.tVehicle]
	if !model.HasSkills(in.Vehicles[e.sVehicle].Skills, in.Jobs[e.tJob].Skills) ||
		!model.HasSkills(in.Vehicles[e.tVehicle].Skills, in.Jobs[e.sJob].Skills) {
		return false
	}
	candS := append([]int(nil), sr.Jobs...)
	candS[e.sRank] = e.tJob
	candT := append([]int(nil), tr.Jobs...)
	candT[e.tRank] = e.sJob
	if !fitsCapacity(in, e.sVehicle, candS) || !fitsCapacity(in, e.tVehicle, candT) {
		return false
	}
	return feasible(in, e.sVehicle, candS) && feasible(in, e.tVehicle, candT)
}

func (e *Exchange) Apply(in *model.Input, sol *Solution, st *State) {
	sr, tr := sol.Routes[e.sVehicle], sol.Routes[e.tVehicle]
	sr.Jobs[e.sRank], tr.Jobs[e.tRank] = e.tJob, e.sJob
	sr.Rebuild(in)
	tr.Rebuild(in)
	st.RefreshRoute(sol, e.sVehicle)
	st.RefreshRoute(sol, e.tVehicle)
}

func (e *Exchange) AdditionCandidates() []int { return nil }

func (e *Exchange) Family() string { return "exchange" }

// routeSequenceCost is Route.Cost for a hypothetical job list, without
// allocating and mutating a full Route's time-window profiles.
func routeSequenceCost(in *model.Input, v int, jobs []int) int64 {
	vh := in.Vehicles[v]
	var total int64
	prevLoc := vh.StartLocation
	for _, j := range jobs {
		loc := in.Jobs[j].Location
		total += in.Matrix.Cost(prevLoc, loc)
		prevLoc = loc
	}
	total += in.Matrix.Cost(prevLoc, vh.EndLocation)
	return total
}
