package engine_test

import (
	"testing"

	"vrpls/internal/engine"
	"vrpls/internal/model"
)

// V1 [A,B] and V2 [C,D] each carry a pair of jobs misplaced next to the
// other vehicle's depot; swapping the whole pairs is the improving move.
func TestCrossExchangeSwapsMisplacedPairs(t *testing.T) {
	in := &model.Input{
		Jobs: []model.Job{
			{ID: 0, Location: 1}, // A, misplaced near depot1
			{ID: 1, Location: 2}, // B, misplaced near depot1
			{ID: 2, Location: 3}, // C, misplaced near depot0
			{ID: 3, Location: 4}, // D, misplaced near depot0
		},
		Vehicles: []model.Vehicle{
			{ID: 0, ShiftStart: 0, ShiftEnd: 100000, StartLocation: 0, EndLocation: 0},
			{ID: 1, ShiftStart: 0, ShiftEnd: 100000, StartLocation: 5, EndLocation: 5},
		},
		Matrix: lineMatrix{pos: []int64{0, 980, 990, 10, 20, 1000}},
	}
	sol := engine.NewSolution(in)
	sol.Routes[0].Jobs = []int{0, 1}
	sol.Routes[1].Jobs = []int{2, 3}
	st := engine.NewState(in, sol)

	op := engine.NewCrossExchange(in, sol, st, 0, 0, 1, 0)
	if op == nil {
		t.Fatal("NewCrossExchange returned nil")
	}
	if got, want := op.Gain(), int64(3880); got != want {
		t.Fatalf("Gain = %d, want %d", got, want)
	}
	if !op.IsValid(in, sol, st) {
		t.Fatal("expected the pair swap to be valid")
	}
	op.Apply(in, sol, st)
	if got, want := sol.Routes[0].Jobs, []int{2, 3}; !equalInts(got, want) {
		t.Errorf("route0 after Apply = %v, want %v", got, want)
	}
	if got, want := sol.Routes[1].Jobs, []int{0, 1}; !equalInts(got, want) {
		t.Errorf("route1 after Apply = %v, want %v", got, want)
	}
}

func TestNewCrossExchangeNilWhenPairOutOfRange(t *testing.T) {
	in := &model.Input{
		Jobs: []model.Job{{ID: 0, Location: 0}},
		Vehicles: []model.Vehicle{
			{ID: 0, StartLocation: 0, EndLocation: 0},
			{ID: 1, StartLocation: 0, EndLocation: 0},
		},
		Matrix: lineMatrix{pos: []int64{0}},
	}
	sol := engine.NewSolution(in)
	sol.Routes[0].Jobs = []int{0}
	st := engine.NewState(in, sol)

	if op := engine.NewCrossExchange(in, sol, st, 0, 0, 1, 0); op != nil {
		t.Fatalf("expected nil for a single-job route, got %+v", op)
	}
}
