package engine

import (
	"context"
	"fmt"

	"vrpls/internal/model"
)

// RegretCoeff is the regret coefficient the driver always calls
// TryJobAdditions with (spec §4.4): pure cheapest insertion.
const RegretCoeff = 0.0

// pairKey stores a candidate under the (min,max) vehicle-index
// convention spec §9's open question calls for: symmetric operators
// are enumerated only for t > s, but the best-gain table is consulted
// by both pair orderings during winner selection, so the storage
// convention has to be explicit.
type pairKey struct{ a, b int }

func keyFor(s, t int) pairKey {
	if s < t {
		return pairKey{s, t}
	}
	return pairKey{t, s}
}

// LocalSearch is the search driver of spec §4.5.
type LocalSearch struct {
	in  *model.Input
	sol *Solution
	st  *State
	rh  RouteHeuristic

	bestOps   map[pairKey]Operator
	bestGains map[pairKey]int64
	stale     map[pairKey]struct{}

	// OnRoundApplied, if set, is called once per round with the
	// winning operator's family and gain, right after the operator is
	// applied and before straightening and re-insertion — the hook the surrounding
	// service uses to feed internal/metrics without the core importing
	// it (spec §1's collaborator boundary).
	OnRoundApplied func(family string, gain int64)

	// MaxRounds caps the number of applied rounds; 0 means run to a
	// local optimum (spec §5's termination condition, unbounded by
	// default). config.IterationCap feeds this in the service layer.
	MaxRounds int
	rounds    int
}

// New builds a LocalSearch engine over an already-feasible initial
// solution (spec §7: the engine assumes its input is feasible). rh may
// be nil, in which case StraightenRoute is a no-op.
func New(in *model.Input, initial *Solution, rh RouteHeuristic) *LocalSearch {
	for _, r := range initial.Routes {
		r.Rebuild(in)
	}
	ls := &LocalSearch{
		in:        in,
		sol:       initial,
		st:        NewState(in, initial),
		rh:        rh,
		bestOps:   make(map[pairKey]Operator),
		bestGains: make(map[pairKey]int64),
		stale:     make(map[pairKey]struct{}),
	}
	for a := 0; a < len(initial.Routes); a++ {
		for b := a + 1; b < len(initial.Routes); b++ {
			ls.stale[pairKey{a, b}] = struct{}{}
		}
	}
	return ls
}

// Solution exposes the (mutated in place) solution.
func (ls *LocalSearch) Solution() *Solution { return ls.sol }

// State exposes the solution-state caches, mainly for tests.
func (ls *LocalSearch) State() *State { return ls.st }

// Run mutates the solution in place until a local optimum is reached
// or ctx is cancelled between rounds (spec §5: a round always
// completes once started — cancellation is only ever observed at a
// round boundary, never mid-round).
func (ls *LocalSearch) Run(ctx context.Context) {
	for {
		if ctx != nil && ctx.Err() != nil {
			return
		}
		if ls.MaxRounds > 0 && ls.rounds >= ls.MaxRounds {
			return
		}
		ls.refreshStalePairs()

		key, op := ls.pickBest()
		if op == nil {
			return
		}
		ls.applyRound(key, op)
		ls.rounds++
	}
}

// refreshStalePairs implements spec §4.5 step 1: for every stale
// (s,t), enumerate every operator family's candidates and keep the
// strictly-best one.
func (ls *LocalSearch) refreshStalePairs() {
	for key := range ls.stale {
		best := ls.enumeratePair(key.a, key.b)
		if best != nil {
			ls.bestOps[key] = best
			ls.bestGains[key] = best.Gain()
		} else {
			delete(ls.bestOps, key)
			delete(ls.bestGains, key)
		}
	}
	ls.stale = make(map[pairKey]struct{})
}

// enumeratePair enumerates all six families over the unordered pair
// (a,b): the four symmetric families once (s=a,t=b), and Relocate/OrOpt
// in both directions, keeping the strictly-best valid candidate found
// (spec §4.2, §9).
func (ls *LocalSearch) enumeratePair(a, b int) Operator {
	var best Operator
	var bestGain int64

	consider := func(op Operator) {
		if op == nil {
			return
		}
		if op.Gain() > bestGain && op.IsValid(ls.in, ls.sol, ls.st) {
			best, bestGain = op, op.Gain()
		}
	}

	sa, sb := ls.sol.Routes[a], ls.sol.Routes[b]
	la, lb := sa.Len(), sb.Len()

	for i := 0; i < la; i++ {
		for j := 0; j < lb; j++ {
			consider(NewExchange(ls.in, ls.sol, ls.st, a, i, b, j))
		}
	}
	if la >= 2 && lb >= 2 {
		for i := 0; i < la-1; i++ {
			for j := 0; j < lb-1; j++ {
				consider(NewCrossExchange(ls.in, ls.sol, ls.st, a, i, b, j))
			}
		}
	}
	for i := -1; i < la; i++ {
		for j := lb - 1; j >= -1; j-- {
			if !BoundCapacityPrune(ls.in, ls.st, a, i, b, j) {
				break
			}
			consider(NewTwoOptStar(ls.in, ls.sol, ls.st, a, i, b, j))
		}
	}
	for i := -1; i < la; i++ {
		for j := -1; j < lb; j++ {
			if !BoundReverseCapacityPrune(ls.in, ls.st, a, i, b, j) {
				break
			}
			consider(NewReverseTwoOptStar(ls.in, ls.sol, ls.st, a, i, b, j))
		}
	}

	allJobs := make([]int, len(ls.in.Jobs))
	for j := range allJobs {
		allJobs[j] = j
	}
	for _, dir := range [2][2]int{{a, b}, {b, a}} {
		s, t := dir[0], dir[1]
		sr, tr := ls.sol.Routes[s], ls.sol.Routes[t]
		if sr.Len() == 0 {
			continue
		}
		lower := minDemand(ls.in, allJobs, len(ls.in.Vehicles[t].Capacity))
		room := ls.in.Vehicles[t].Capacity.Sub(ls.st.TotalAmount(t))
		for i := 0; i < sr.Len() && lower.LTE(room); i++ {
			if ls.st.NodeGains[s][i] <= bestGain {
				continue
			}
			for j := 0; j <= tr.Len(); j++ {
				consider(NewRelocate(ls.in, ls.sol, ls.st, s, i, t, j))
			}
		}
		for i := 0; i+1 < sr.Len() && lower.Add(lower).LTE(room); i++ {
			if ls.st.EdgeGains[s][i] <= bestGain {
				continue
			}
			for j := 0; j <= tr.Len(); j++ {
				consider(NewOrOpt(ls.in, ls.sol, ls.st, s, i, t, j))
			}
		}
	}

	return best
}

// pickBest implements spec §4.5 step 2 and the tie-break of §4.5's
// "Tie-breaking": strict > on gain, lexicographically lowest pair on
// ties, by iterating keys in ascending (a,b) order.
func (ls *LocalSearch) pickBest() (pairKey, Operator) {
	var bestKey pairKey
	var bestGain int64
	var best Operator
	keys := sortedKeys(ls.bestGains)
	for _, key := range keys {
		g := ls.bestGains[key]
		if g > bestGain {
			bestGain, bestKey, best = g, key, ls.bestOps[key]
		}
	}
	return bestKey, best
}

func sortedKeys(m map[pairKey]int64) []pairKey {
	out := make([]pairKey, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && less(out[j], out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func less(x, y pairKey) bool {
	if x.a != y.a {
		return x.a < y.a
	}
	return x.b < y.b
}

// applyRound implements spec §4.5 steps 3–8.
func (ls *LocalSearch) applyRound(key pairKey, op Operator) {
	s, t := op.Vehicles()
	oldCost := ls.st.RouteCosts[s] + ls.st.RouteCosts[t]
	gain := op.Gain()

	op.Apply(ls.in, ls.sol, ls.st)
	if ls.OnRoundApplied != nil {
		ls.OnRoundApplied(op.Family(), gain)
	}

	newCost := ls.st.RouteCosts[s] + ls.st.RouteCosts[t]
	if newCost+gain != oldCost {
		panic(fmt.Sprintf("cost conservation violated: old=%d new=%d gain=%d", oldCost, newCost, gain))
	}

	StraightenRoute(ls.in, ls.sol, ls.st, ls.rh, s)
	StraightenRoute(ls.in, ls.sol, ls.st, ls.rh, t)

	ls.st.RefreshRoute(ls.sol, s)
	ls.st.RefreshRoute(ls.sol, t)

	TryJobAdditions(ls.in, ls.sol, ls.st, RegretCoeff, op.AdditionCandidates())

	ls.st.RefreshRoute(ls.sol, s)
	ls.st.RefreshRoute(ls.sol, t)

	delete(ls.bestOps, key)
	delete(ls.bestGains, key)
	for v := range ls.sol.Routes {
		if v == s || v == t {
			continue
		}
		delete(ls.bestOps, keyFor(v, s))
		delete(ls.bestGains, keyFor(v, s))
		delete(ls.bestOps, keyFor(v, t))
		delete(ls.bestGains, keyFor(v, t))
		ls.stale[keyFor(v, s)] = struct{}{}
		ls.stale[keyFor(v, t)] = struct{}{}
	}
	ls.stale[keyFor(s, t)] = struct{}{}
}

// Indicators reports spec §6's summary: unassigned count, total cost,
// and used-vehicle count (routes with at least one job).
func (ls *LocalSearch) Indicators() Indicators {
	var total int64
	used := 0
	for v, r := range ls.sol.Routes {
		total += ls.st.RouteCosts[v]
		if r.Len() > 0 {
			used++
		}
	}
	return Indicators{
		UnassignedCount: len(ls.st.Unassigned),
		TotalCost:       total,
		UsedVehicles:    used,
	}
}
