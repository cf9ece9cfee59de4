package heuristic

import (
	"vrpls/internal/engine"
	"vrpls/internal/model"
)

// SeedSolution builds an initial feasible solution for jobs with no
// assignment yet, via the regret-based insertion heuristic
// (engine.TryJobAdditions) with a positive regret coefficient — this
// is the "construction heuristic" spec §1 names as an external
// collaborator to the core, not part of internal/engine itself, and
// the reason the driver's insertion heuristic exposes regretCoeff as
// a parameter instead of hardwiring 0.
//
// Grounded on the ancestor's greedySeed (internal/opt/alns_engine.go),
// generalized to run through the same regret-ranked insertion the
// core's search driver uses, then straightened per route.
func SeedSolution(in *model.Input, rh engine.RouteHeuristic, regretCoeff float64) *engine.Solution {
	sol := engine.NewSolution(in)
	st := engine.NewState(in, sol)
	engine.TryJobAdditions(in, sol, st, regretCoeff, nil)
	for v := range sol.Routes {
		engine.StraightenRoute(in, sol, st, rh, v)
	}
	return sol
}
