package engine

import "vrpls/internal/model"

// State is the SolutionState of spec §3: the caches that let the
// search driver prune operator candidates in O(1) instead of
// recomputing route-wide sums on every enumerated pair. Only the
// routes touched by the winning move are refreshed each round (spec
// §4.5 step 5) — the state never does a whole-solution recompute
// after construction.
type State struct {
	in *model.Input

	FwdAmounts [][]model.Amount // FwdAmounts[v][i] = demand of jobs at positions 0..i on route v
	BwdAmounts [][]model.Amount // BwdAmounts[v][i] = demand of jobs at positions i..end on route v
	RouteCosts []int64          // RouteCosts[v] = travel cost of route v
	NodeGains  [][]int64        // NodeGains[v][i] = cost saved by removing the job at position i
	EdgeGains  [][]int64        // EdgeGains[v][i] = cost saved by removing the pair at (i, i+1)

	Unassigned map[int]struct{} // job indices currently in no route
}

// NewState builds a SolutionState from scratch for the given solution.
func NewState(in *model.Input, sol *Solution) *State {
	st := &State{
		in:         in,
		FwdAmounts: make([][]model.Amount, len(sol.Routes)),
		BwdAmounts: make([][]model.Amount, len(sol.Routes)),
		RouteCosts: make([]int64, len(sol.Routes)),
		NodeGains:  make([][]int64, len(sol.Routes)),
		EdgeGains:  make([][]int64, len(sol.Routes)),
		Unassigned: make(map[int]struct{}),
	}
	present := make(map[int]struct{})
	for v, r := range sol.Routes {
		st.refreshRoute(sol, v)
		for _, j := range r.Jobs {
			present[j] = struct{}{}
		}
	}
	for j := range in.Jobs {
		if _, ok := present[j]; !ok {
			st.Unassigned[j] = struct{}{}
		}
	}
	return st
}

// RefreshRoute recomputes every cache entry for route v in O(L).
func (st *State) RefreshRoute(sol *Solution, v int) { st.refreshRoute(sol, v) }

func (st *State) refreshRoute(sol *Solution, v int) {
	r := sol.Routes[v]
	n := len(r.Jobs)
	dim := len(st.in.Vehicles[v].Capacity)

	fwd := make([]model.Amount, n)
	running := make(model.Amount, dim)
	for i, jobIdx := range r.Jobs {
		running = running.Add(st.in.Jobs[jobIdx].Amount)
		fwd[i] = append(model.Amount(nil), running...)
	}
	st.FwdAmounts[v] = fwd

	bwd := make([]model.Amount, n)
	running = make(model.Amount, dim)
	for i := n - 1; i >= 0; i-- {
		running = running.Add(st.in.Jobs[r.Jobs[i]].Amount)
		bwd[i] = append(model.Amount(nil), running...)
	}
	st.BwdAmounts[v] = bwd

	st.RouteCosts[v] = r.Cost(st.in)

	nodeGains := make([]int64, n)
	for i := range r.Jobs {
		prevLoc := r.locationAt(st.in, i-1)
		curLoc := r.locationAt(st.in, i)
		nextLoc := r.locationAt(st.in, i+1)
		nodeGains[i] = st.in.Matrix.Cost(prevLoc, curLoc) + st.in.Matrix.Cost(curLoc, nextLoc) - st.in.Matrix.Cost(prevLoc, nextLoc)
	}
	st.NodeGains[v] = nodeGains

	edgeGains := make([]int64, 0)
	if n >= 2 {
		edgeGains = make([]int64, n-1)
		for i := 0; i < n-1; i++ {
			prevLoc := r.locationAt(st.in, i-1)
			aLoc := r.locationAt(st.in, i)
			bLoc := r.locationAt(st.in, i+1)
			nextLoc := r.locationAt(st.in, i+2)
			removed := st.in.Matrix.Cost(prevLoc, aLoc) + st.in.Matrix.Cost(aLoc, bLoc) + st.in.Matrix.Cost(bLoc, nextLoc)
			bridge := st.in.Matrix.Cost(prevLoc, nextLoc)
			edgeGains[i] = removed - bridge
		}
	}
	st.EdgeGains[v] = edgeGains
}

// TotalAmount returns the sum of demand over every job on route v.
func (st *State) TotalAmount(v int) model.Amount {
	n := len(st.FwdAmounts[v])
	if n == 0 {
		return make(model.Amount, len(st.in.Vehicles[v].Capacity))
	}
	return st.FwdAmounts[v][n-1]
}
