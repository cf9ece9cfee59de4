package store

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is a map-backed Store used in tests and when no DATABASE_URL
// is configured. Grounded on the ancestor's store.Memory.
type Memory struct {
	mu      sync.Mutex
	runs    map[string]Run
	order   []string // run IDs in creation order, for cursor pagination
	metrics map[string][]RoundMetric
}

// NewMemory builds an empty Memory store.
func NewMemory() *Memory {
	return &Memory{
		runs:    make(map[string]Run),
		metrics: make(map[string][]RoundMetric),
	}
}

func (m *Memory) CreateRun(ctx context.Context, input json.RawMessage) (Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	r := Run{ID: uuid.New().String(), Status: "running", Input: input, CreatedAt: now, UpdatedAt: now}
	m.runs[r.ID] = r
	m.order = append(m.order, r.ID)
	return r, nil
}

func (m *Memory) GetRun(ctx context.Context, id string) (Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.runs[id]
	if !ok {
		return Run{}, ErrNotFound
	}
	return r, nil
}

func (m *Memory) ListRuns(ctx context.Context, cursor string, limit int) ([]Run, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit <= 0 {
		limit = 100
	}
	start := 0
	if cursor != "" {
		for i, id := range m.order {
			if id == cursor {
				start = i + 1
				break
			}
		}
	}
	out := []Run{}
	var next string
	for i := start; i < len(m.order) && len(out) < limit; i++ {
		out = append(out, m.runs[m.order[i]])
		next = m.order[i]
	}
	if len(out) < limit {
		next = ""
	}
	return out, next, nil
}

func (m *Memory) SaveRunResult(ctx context.Context, id, status string, result json.RawMessage, runErr string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.runs[id]
	if !ok {
		return ErrNotFound
	}
	r.Status = status
	r.Result = result
	r.Error = runErr
	r.UpdatedAt = time.Now().UTC()
	m.runs[id] = r
	return nil
}

func (m *Memory) SaveRoundMetric(ctx context.Context, rm RoundMetric) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.runs[rm.RunID]; !ok {
		return ErrNotFound
	}
	m.metrics[rm.RunID] = append(m.metrics[rm.RunID], rm)
	return nil
}

func (m *Memory) ListRoundMetrics(ctx context.Context, runID string) ([]RoundMetric, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]RoundMetric(nil), m.metrics[runID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Round < out[j].Round })
	return out, nil
}
