package engine

import (
	"math"

	"vrpls/internal/model"
)

// TryJobAdditions is the insertion heuristic of spec §4.4: while any
// unassigned job has a feasible insertion in a candidate vehicle, pick
// the (job, vehicle, position) with the smallest regret-adjusted score
// and insert it, refreshing only the touched route's caches. The
// driver always calls this with regretCoeff 0 (pure cheapest
// insertion); heuristic.SeedSolution reuses it with the configured
// coefficient for construction. hintVehicles restricts the search to
// the routes an operator's AdditionCandidates flagged as newly roomy;
// pass nil to scan every route.
//
// Grounded on the ancestor's regretInsert/greedyInsert
// (internal/opt/alns_engine.go), generalized from a single fixed
// regret-2 rule into the coefficient-parameterized ranking spec §4.4
// step 3 specifies, and from an O(L) per-position rescan to the
// TwRoute O(1) feasibility check.
func TryJobAdditions(in *model.Input, sol *Solution, st *State, regretCoeff float64, hintVehicles []int) {
	vehicles := hintVehicles
	if len(vehicles) == 0 {
		vehicles = allVehicleIndices(len(sol.Routes))
	}
	for {
		bestJob, bestVehicle, bestPos, ok := bestInsertion(in, sol, st, regretCoeff, vehicles)
		if !ok {
			return
		}
		r := sol.Routes[bestVehicle]
		r.Jobs = withInsertedAt(r.Jobs, bestPos, bestJob)
		r.Rebuild(in)
		st.RefreshRoute(sol, bestVehicle)
		delete(st.Unassigned, bestJob)
	}
}

type insertionCost struct {
	vehicle, pos int
	cost         int64
}

func bestInsertion(in *model.Input, sol *Solution, st *State, regretCoeff float64, vehicles []int) (job, vehicle, pos int, ok bool) {
	bestEval := math.Inf(1)
	found := false

	for jobIdx := range st.Unassigned {
		costs := feasibleInsertions(in, sol, jobIdx, vehicles)
		if len(costs) == 0 {
			continue
		}
		best1, best2 := bestTwo(costs)
		for _, c := range costs {
			ref := best1.cost
			if c.vehicle == best1.vehicle {
				ref = best2.cost
			}
			eval := float64(c.cost) - regretCoeff*float64(ref)
			if !found || eval < bestEval {
				bestEval = eval
				found = true
				job, vehicle, pos = jobIdx, c.vehicle, c.pos
			}
		}
	}
	return job, vehicle, pos, found
}

func feasibleInsertions(in *model.Input, sol *Solution, jobIdx int, vehicles []int) []insertionCost {
	var out []insertionCost
	for _, v := range vehicles {
		pos, cost, ok := cheapestInsertion(in, sol.Routes[v], jobIdx)
		if ok {
			out = append(out, insertionCost{vehicle: v, pos: pos, cost: cost})
		}
	}
	return out
}

// cheapestInsertion finds the cheapest feasible rank for jobIdx on r,
// or ok=false if none exists.
func cheapestInsertion(in *model.Input, r *Route, jobIdx int) (pos int, cost int64, ok bool) {
	job := in.Jobs[jobIdx]
	if !model.HasSkills(in.Vehicles[r.Vehicle].Skills, job.Skills) {
		return 0, 0, false
	}
	if !r.FitsCapacity(in, job.Amount) {
		return 0, 0, false
	}
	bestPos, bestCost, any := -1, int64(math.MaxInt64), false
	for p := 0; p <= len(r.Jobs); p++ {
		if !r.IsValidAdditionForTW(in, jobIdx, p) {
			continue
		}
		prevLoc := r.locationAt(in, p-1)
		nextLoc := r.locationAt(in, p)
		delta := in.Matrix.Cost(prevLoc, job.Location) + in.Matrix.Cost(job.Location, nextLoc) - in.Matrix.Cost(prevLoc, nextLoc)
		if delta < bestCost {
			bestCost, bestPos, any = delta, p, true
		}
	}
	return bestPos, bestCost, any
}

func bestTwo(costs []insertionCost) (first, second insertionCost) {
	first = insertionCost{vehicle: -1, cost: math.MaxInt64}
	second = first
	for _, c := range costs {
		switch {
		case c.cost < first.cost:
			second = first
			first = c
		case c.cost < second.cost:
			second = c
		}
	}
	if second.vehicle == -1 {
		second = first
	}
	return
}

func allVehicleIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
