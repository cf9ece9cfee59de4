// Package heuristic implements the construction helper the core
// consults through engine.RouteHeuristic — single_route_heuristic in
// spec §1/§6. It is an external collaborator: the core only ever asks
// it to re-sequence a route in a given direction, never the other way
// around.
//
// Grounded on the ancestor's greedySeed cheapest-append loop and
// ImproveOrder2Opt (internal/opt/alns_engine.go,
// internal/opt/heuristics.go), generalized from a lat/lng tour into a
// matrix-indexed one, and from a single forward build direction into
// the forward/backward pair engine.StraightenRoute needs. Time windows
// and capacity are not considered here; engine.StraightenRoute rebuilds
// each returned route and discards an infeasible one.
package heuristic

import (
	"math"

	"vrpls/internal/engine"
	"vrpls/internal/model"
)

// Greedy is a nearest-next sequencer: it rebuilds a route job-by job,
// each time appending whichever remaining job is cheapest to reach
// next from the last one placed, without checking time windows. It implements
// engine.RouteHeuristic. Regret ranking applies to choosing which
// unassigned job to insert next (engine.TryJobAdditions's concern);
// Greedy only reorders a route's already-fixed job set, where no such
// choice exists, so it carries no regret parameter of its own.
type Greedy struct{}

// Sequence re-sequences route's job set from scratch in the given
// direction and returns a new Route with the same vehicle and job set
// but (possibly) a different, cheaper order. It does not mutate route.
func (g Greedy) Sequence(in *model.Input, route *engine.Route, dir engine.Direction) *engine.Route {
	jobs := append([]int(nil), route.Jobs...)
	if dir == engine.Backward {
		jobs = reverseInts(jobs)
	}
	seq := buildGreedy(in, route.Vehicle, jobs)
	if dir == engine.Backward {
		seq = reverseInts(seq)
	}
	return &engine.Route{Vehicle: route.Vehicle, Jobs: seq}
}

// buildGreedy orders remaining by repeatedly picking, among jobs not
// yet placed, whichever is cheapest to append next; ties broken by
// the order jobs were listed in. Grounded on the ancestor's greedySeed.
func buildGreedy(in *model.Input, vehicle int, remaining []int) []int {
	used := make(map[int]bool, len(remaining))
	out := make([]int, 0, len(remaining))
	lastLoc := in.Vehicles[vehicle].StartLocation

	for len(out) < len(remaining) {
		bestIdx, bestCost := -1, int64(math.MaxInt64)
		for _, jobIdx := range remaining {
			if used[jobIdx] {
				continue
			}
			c := in.Matrix.Cost(lastLoc, in.Jobs[jobIdx].Location)
			if c < bestCost {
				bestCost, bestIdx = c, jobIdx
			}
		}
		if bestIdx == -1 {
			break
		}
		used[bestIdx] = true
		out = append(out, bestIdx)
		lastLoc = in.Jobs[bestIdx].Location
	}
	return out
}

func reverseInts(xs []int) []int {
	out := make([]int, len(xs))
	for i, x := range xs {
		out[len(xs)-1-i] = x
	}
	return out
}
