package engine

import "vrpls/internal/model"

// Direction selects which end of a route the construction helper
// builds from when straightening it (spec §1, §6).
type Direction int

const (
	Forward Direction = iota
	Backward
)

// RouteHeuristic is the single_route_heuristic(vehicle, route,
// direction) -> route external collaborator of spec §1/§6, consulted
// by StraightenRoute. It never mutates the route it is given; it
// returns a re-sequenced copy.
type RouteHeuristic interface {
	Sequence(in *model.Input, route *Route, dir Direction) *Route
}

// StraightenRoute re-runs the construction helper on route v in both
// directions and adopts the result only if it has the same length and
// strictly lower cost than the current route — it never worsens or
// shortens a route (spec §4.5 step 4).
func StraightenRoute(in *model.Input, sol *Solution, st *State, rh RouteHeuristic, v int) {
	if rh == nil {
		return
	}
	current := sol.Routes[v]
	currentCost := current.Cost(in)
	currentLen := current.Len()

	best := current
	bestCost := currentCost
	for _, dir := range []Direction{Forward, Backward} {
		cand := rh.Sequence(in, current, dir)
		if cand == nil || cand.Len() != currentLen {
			continue
		}
		if !cand.Rebuild(in) {
			continue
		}
		if c := cand.Cost(in); c < bestCost {
			best, bestCost = cand, c
		}
	}
	if best != current {
		sol.Routes[v] = best
		st.RefreshRoute(sol, v)
	}
}
