package store_test

import (
	"context"
	"encoding/json"
	"testing"

	"vrpls/internal/store"
)

func TestMemoryCreateAndGetRun(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	r, err := m.CreateRun(ctx, json.RawMessage(`{"jobs":[]}`))
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}
	if r.Status != "running" {
		t.Fatalf("Status = %q, want running", r.Status)
	}

	got, err := m.GetRun(ctx, r.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.ID != r.ID {
		t.Fatalf("GetRun returned ID %q, want %q", got.ID, r.ID)
	}
}

func TestMemoryGetRunNotFound(t *testing.T) {
	m := store.NewMemory()
	_, err := m.GetRun(context.Background(), "missing")
	if err != store.ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMemorySaveRunResultUpdatesStatus(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()
	r, _ := m.CreateRun(ctx, json.RawMessage(`{}`))

	if err := m.SaveRunResult(ctx, r.ID, "completed", json.RawMessage(`{"totalCost":40}`), ""); err != nil {
		t.Fatalf("SaveRunResult: %v", err)
	}
	got, err := m.GetRun(ctx, r.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Status != "completed" {
		t.Fatalf("Status = %q, want completed", got.Status)
	}
	if string(got.Result) != `{"totalCost":40}` {
		t.Fatalf("Result = %s", got.Result)
	}
}

func TestMemoryListRunsPaginates(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()
	var ids []string
	for i := 0; i < 5; i++ {
		r, _ := m.CreateRun(ctx, json.RawMessage(`{}`))
		ids = append(ids, r.ID)
	}

	page1, cursor1, err := m.ListRuns(ctx, "", 2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(page1) != 2 || cursor1 == "" {
		t.Fatalf("page1 = %d runs, cursor=%q", len(page1), cursor1)
	}
	if page1[0].ID != ids[0] || page1[1].ID != ids[1] {
		t.Fatalf("page1 out of order: %+v", page1)
	}

	page2, cursor2, err := m.ListRuns(ctx, cursor1, 2)
	if err != nil {
		t.Fatalf("ListRuns page2: %v", err)
	}
	if len(page2) != 2 || cursor2 == "" {
		t.Fatalf("page2 = %d runs, cursor=%q", len(page2), cursor2)
	}
	if page2[0].ID != ids[2] || page2[1].ID != ids[3] {
		t.Fatalf("page2 out of order: %+v", page2)
	}

	page3, cursor3, err := m.ListRuns(ctx, cursor2, 2)
	if err != nil {
		t.Fatalf("ListRuns page3: %v", err)
	}
	if len(page3) != 1 || cursor3 != "" {
		t.Fatalf("page3 = %d runs, cursor=%q, want 1 run and empty cursor", len(page3), cursor3)
	}
	if page3[0].ID != ids[4] {
		t.Fatalf("page3[0] = %q, want %q", page3[0].ID, ids[4])
	}
}

func TestMemorySaveRoundMetricRequiresExistingRun(t *testing.T) {
	m := store.NewMemory()
	err := m.SaveRoundMetric(context.Background(), store.RoundMetric{RunID: "missing", Round: 1})
	if err != store.ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryListRoundMetricsOrdersByRound(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()
	r, _ := m.CreateRun(ctx, json.RawMessage(`{}`))

	for _, round := range []int{2, 3, 1} {
		err := m.SaveRoundMetric(ctx, store.RoundMetric{RunID: r.ID, Round: round, Family: "relocate", Gain: int64(round * 10)})
		if err != nil {
			t.Fatalf("SaveRoundMetric round %d: %v", round, err)
		}
	}

	metrics, err := m.ListRoundMetrics(ctx, r.ID)
	if err != nil {
		t.Fatalf("ListRoundMetrics: %v", err)
	}
	if len(metrics) != 3 {
		t.Fatalf("len(metrics) = %d, want 3", len(metrics))
	}
	for i, want := range []int{1, 2, 3} {
		if metrics[i].Round != want {
			t.Fatalf("metrics[%d].Round = %d, want %d", i, metrics[i].Round, want)
		}
	}
}
