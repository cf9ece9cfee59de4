package engine_test

import (
	"testing"

	"vrpls/internal/engine"
	"vrpls/internal/model"
)

func twoJobInput() *model.Input {
	return &model.Input{
		Jobs: []model.Job{
			{ID: 0, Location: 1}, // position 10
			{ID: 1, Location: 2}, // position 5
		},
		Vehicles: []model.Vehicle{
			{ID: 0, ShiftStart: 0, ShiftEnd: 1000, StartLocation: 0, EndLocation: 0},
		},
		Matrix: lineMatrix{pos: []int64{0, 10, 5}},
	}
}

func TestRouteRebuildProfiles(t *testing.T) {
	in := twoJobInput()
	r := &engine.Route{Vehicle: 0, Jobs: []int{0, 1}}
	if ok := r.Rebuild(in); !ok {
		t.Fatalf("Rebuild: expected feasible route")
	}
	if got, want := r.Earliest[0], int64(10); got != want {
		t.Errorf("Earliest[0] = %d, want %d", got, want)
	}
	if got, want := r.Earliest[1], int64(15); got != want {
		t.Errorf("Earliest[1] = %d, want %d", got, want)
	}
	for i := range r.Jobs {
		if r.Earliest[i] > r.Latest[i] {
			t.Errorf("position %d: Earliest %d > Latest %d", i, r.Earliest[i], r.Latest[i])
		}
	}
	if got, want := r.Cost(in), int64(20); got != want {
		t.Errorf("Cost = %d, want %d", got, want)
	}
}

func TestRouteRebuildInfeasibleShift(t *testing.T) {
	in := twoJobInput()
	in.Vehicles[0].ShiftEnd = 5 // too tight to ever return to depot
	r := &engine.Route{Vehicle: 0, Jobs: []int{0, 1}}
	if ok := r.Rebuild(in); ok {
		t.Fatalf("Rebuild: expected infeasible route, got feasible")
	}
}

func TestIsValidAdditionForTW(t *testing.T) {
	in := twoJobInput()
	in.Jobs = append(in.Jobs, model.Job{ID: 2, Location: 3}) // position 7
	in.Matrix = lineMatrix{pos: []int64{0, 10, 5, 7}}

	r := &engine.Route{Vehicle: 0, Jobs: []int{0, 1}}
	if ok := r.Rebuild(in); !ok {
		t.Fatalf("Rebuild: expected feasible route")
	}
	if !r.IsValidAdditionForTW(in, 2, 1) {
		t.Errorf("IsValidAdditionForTW: expected insertion at rank 1 to be feasible")
	}

	in.Vehicles[0].ShiftEnd = 12 // too tight for any further insertion
	r2 := &engine.Route{Vehicle: 0, Jobs: []int{0, 1}}
	if ok := r2.Rebuild(in); ok {
		t.Fatalf("Rebuild: expected the tightened shift to already be infeasible")
	}
}

func TestAddRemoveRoundTrip(t *testing.T) {
	in := twoJobInput()
	in.Jobs = append(in.Jobs, model.Job{ID: 2, Location: 3})
	in.Matrix = lineMatrix{pos: []int64{0, 10, 5, 7}}

	r := &engine.Route{Vehicle: 0, Jobs: []int{0, 1}}
	r.Rebuild(in)

	r.Add(in, 2, 1)
	if got, want := r.Jobs, []int{0, 2, 1}; !equalInts(got, want) {
		t.Fatalf("Jobs after Add = %v, want %v", got, want)
	}

	r.Remove(in, 1)
	if got, want := r.Jobs, []int{0, 1}; !equalInts(got, want) {
		t.Fatalf("Jobs after Remove = %v, want %v", got, want)
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
