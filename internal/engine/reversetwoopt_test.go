package engine_test

import (
	"testing"

	"vrpls/internal/engine"
	"vrpls/internal/model"
)

// BoundReverseCapacityPrune checks FwdAmounts, which is non-decreasing
// as j grows — the opposite monotonicity from BoundCapacityPrune's
// BwdAmounts (twoopt_test.go). The driver must therefore iterate j
// upward from -1, never downward: evaluating the largest j first (as
// TwoOptStar's loop does) would see the prune fail immediately and
// break before ever trying the smaller, feasible j values below it.
func TestBoundReverseCapacityPruneIncreasesWithTargetPrefix(t *testing.T) {
	in := &model.Input{
		Jobs: []model.Job{
			{ID: 0, Location: 1, Amount: model.Amount{3}},
			{ID: 1, Location: 2, Amount: model.Amount{3}},
			{ID: 2, Location: 3, Amount: model.Amount{3}},
		},
		Vehicles: []model.Vehicle{
			{ID: 0, Capacity: model.Amount{5}, StartLocation: 0, EndLocation: 0},
			{ID: 1, Capacity: model.Amount{100}, StartLocation: 4, EndLocation: 4},
		},
		Matrix: lineMatrix{pos: []int64{0, 1, 2, 3, 4}},
	}
	sol := engine.NewSolution(in)
	sol.Routes[1].Jobs = []int{0, 1, 2}
	st := engine.NewState(in, sol)

	if !engine.BoundReverseCapacityPrune(in, st, 0, -1, 1, -1) {
		t.Error("j=-1 must always pass trivially")
	}
	if !engine.BoundReverseCapacityPrune(in, st, 0, -1, 1, 0) {
		t.Error("j=0 (prefix amount 3) should fit the source's capacity of 5")
	}
	if engine.BoundReverseCapacityPrune(in, st, 0, -1, 1, 1) {
		t.Error("j=1 (prefix amount 6) should exceed the source's capacity of 5")
	}
	if engine.BoundReverseCapacityPrune(in, st, 0, -1, 1, 2) {
		t.Error("j=2 (prefix amount 9) should exceed the source's capacity of 5")
	}
}

// V1 [A] and V2 [C,D]; keeping A on V1 and appending V2's jobs after it
// in reverse order, which leaves V2 empty, is the improving move.
// Exercises the genuine reversal in Apply's splice, not just a
// single-job degenerate case.
func TestReverseTwoOptStarAppliesReversedSplice(t *testing.T) {
	in := &model.Input{
		Jobs: []model.Job{
			{ID: 0, Location: 1}, // A
			{ID: 1, Location: 2}, // C
			{ID: 2, Location: 3}, // D
		},
		Vehicles: []model.Vehicle{
			{ID: 0, ShiftStart: 0, ShiftEnd: 100000, StartLocation: 0, EndLocation: 0},
			{ID: 1, ShiftStart: 0, ShiftEnd: 100000, StartLocation: 4, EndLocation: 4},
		},
		Matrix: lineMatrix{pos: []int64{0, 5, 6, 7, 100}},
	}
	sol := engine.NewSolution(in)
	sol.Routes[0].Jobs = []int{0}
	sol.Routes[1].Jobs = []int{1, 2}
	st := engine.NewState(in, sol)

	op := engine.NewReverseTwoOptStar(in, sol, st, 0, 0, 1, 1)
	if op == nil {
		t.Fatal("NewReverseTwoOptStar returned nil")
	}
	if got, want := op.Gain(), int64(184); got != want {
		t.Fatalf("Gain = %d, want %d", got, want)
	}
	if !op.IsValid(in, sol, st) {
		t.Fatal("expected the reversed splice to be valid")
	}
	op.Apply(in, sol, st)
	if got, want := sol.Routes[0].Jobs, []int{0, 2, 1}; !equalInts(got, want) {
		t.Errorf("route0 after Apply = %v, want %v (D before C: the target prefix was reversed)", got, want)
	}
	if got, want := sol.Routes[1].Jobs, []int{}; !equalInts(got, want) {
		t.Errorf("route1 after Apply = %v, want empty", got)
	}
}

// Capacity pruning (spec-style scenario): a ReverseTwoOptStar candidate
// whose spliced source demand exceeds the source vehicle's capacity
// must report IsValid() == false.
func TestReverseTwoOptStarInvalidWhenCapacityExceeded(t *testing.T) {
	in := &model.Input{
		Jobs: []model.Job{
			{ID: 0, Location: 1, Amount: model.Amount{1}}, // A
			{ID: 1, Location: 2, Amount: model.Amount{3}}, // C
			{ID: 2, Location: 3, Amount: model.Amount{3}}, // D
		},
		Vehicles: []model.Vehicle{
			{ID: 0, Capacity: model.Amount{5}, ShiftStart: 0, ShiftEnd: 100000, StartLocation: 0, EndLocation: 0},
			{ID: 1, Capacity: model.Amount{100}, ShiftStart: 0, ShiftEnd: 100000, StartLocation: 4, EndLocation: 4},
		},
		Matrix: lineMatrix{pos: []int64{0, 5, 6, 7, 100}},
	}
	sol := engine.NewSolution(in)
	sol.Routes[0].Jobs = []int{0}
	sol.Routes[1].Jobs = []int{1, 2}
	st := engine.NewState(in, sol)

	op := engine.NewReverseTwoOptStar(in, sol, st, 0, 0, 1, 1)
	if op == nil {
		t.Fatal("NewReverseTwoOptStar returned nil")
	}
	if op.IsValid(in, sol, st) {
		t.Fatal("expected IsValid() == false: candidate source demand (1+3+3=7) exceeds capacity 5")
	}
}
