package engine

import "vrpls/internal/model"

// Solution is an ordered sequence of routes, one per vehicle (spec §3).
type Solution struct {
	Routes []*Route
}

// NewSolution builds an empty solution with one route per vehicle.
func NewSolution(in *model.Input) *Solution {
	routes := make([]*Route, len(in.Vehicles))
	for i := range in.Vehicles {
		routes[i] = NewRoute(i)
	}
	return &Solution{Routes: routes}
}

// Clone deep-copies every route.
func (s *Solution) Clone() *Solution {
	routes := make([]*Route, len(s.Routes))
	for i, r := range s.Routes {
		routes[i] = r.Clone()
	}
	return &Solution{Routes: routes}
}

// Indicators summarizes a solution the way spec §6 requires.
type Indicators struct {
	UnassignedCount int
	TotalCost       int64
	UsedVehicles    int
}
