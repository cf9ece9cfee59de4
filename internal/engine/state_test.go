package engine_test

import (
	"testing"

	"vrpls/internal/engine"
	"vrpls/internal/model"
)

func TestNewStateCachesAndUnassigned(t *testing.T) {
	in := &model.Input{
		Jobs: []model.Job{
			{ID: 0, Location: 1, Amount: model.Amount{2}},
			{ID: 1, Location: 2, Amount: model.Amount{3}},
			{ID: 2, Location: 4, Amount: model.Amount{1}}, // left unassigned
		},
		Vehicles: []model.Vehicle{
			{ID: 0, Capacity: model.Amount{100}, ShiftStart: 0, ShiftEnd: 1000, StartLocation: 0, EndLocation: 0},
		},
		Matrix: lineMatrix{pos: []int64{0, 10, 5, 0, 20}},
	}
	sol := engine.NewSolution(in)
	sol.Routes[0].Jobs = []int{0, 1}
	sol.Routes[0].Rebuild(in)

	st := engine.NewState(in, sol)

	if _, stillUnassigned := st.Unassigned[2]; !stillUnassigned {
		t.Errorf("Unassigned should still contain job 2")
	}
	if _, onRoute := st.Unassigned[0]; onRoute {
		t.Errorf("Unassigned should not contain job 0, it is on route 0")
	}

	total := st.TotalAmount(0)
	if got, want := total[0], 5.0; got != want {
		t.Errorf("TotalAmount = %v, want %v", got, want)
	}

	wantCost := sol.Routes[0].Cost(in)
	if st.RouteCosts[0] != wantCost {
		t.Errorf("RouteCosts[0] = %d, want %d", st.RouteCosts[0], wantCost)
	}

	if len(st.NodeGains[0]) != 2 || len(st.EdgeGains[0]) != 1 {
		t.Fatalf("unexpected cache shapes: nodeGains=%v edgeGains=%v", st.NodeGains[0], st.EdgeGains[0])
	}

	// Removing either job should save exactly NodeGains[0][i].
	for i := range sol.Routes[0].Jobs {
		withoutCost := routeCostWithout(in, sol.Routes[0], i)
		saved := wantCost - withoutCost
		if saved != st.NodeGains[0][i] {
			t.Errorf("position %d: saved cost %d != NodeGains %d", i, saved, st.NodeGains[0][i])
		}
	}
}

func routeCostWithout(in *model.Input, r *engine.Route, pos int) int64 {
	jobs := append([]int(nil), r.Jobs...)
	jobs = append(jobs[:pos], jobs[pos+1:]...)
	cand := &engine.Route{Vehicle: r.Vehicle, Jobs: jobs}
	return cand.Cost(in)
}
