// Package store persists optimize runs and their per-round telemetry.
// Grounded on the ancestor's store.Store: a small context-first
// interface with cursor pagination, backed by an in-memory
// implementation for tests/dev and a Postgres implementation for
// production (store.Memory, store.Postgres).
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup by ID finds nothing.
var ErrNotFound = errors.New("not found")

// Run is one optimize invocation: its input snapshot, current status,
// and (once finished) its result — indicators plus the solution's
// per-vehicle job sequences, serialized as JSON the way the ancestor's
// Postgres store kept plan metrics as JSON columns rather than
// normalizing every field.
type Run struct {
	ID        string
	Status    string // "running", "completed", "failed"
	Input     json.RawMessage
	Result    json.RawMessage
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoundMetric is one applied local-search round, persisted the way the
// ancestor's SavePlanMetricsWeights persisted per-iteration weight
// snapshots.
type RoundMetric struct {
	RunID      string
	Round      int
	Family     string
	Gain       int64
	TotalCost  int64
	Unassigned int
	AppliedAt  time.Time
}

// Store is the persistence interface consumed by the API server.
type Store interface {
	CreateRun(ctx context.Context, input json.RawMessage) (Run, error)
	GetRun(ctx context.Context, id string) (Run, error)
	ListRuns(ctx context.Context, cursor string, limit int) ([]Run, string, error)
	SaveRunResult(ctx context.Context, id, status string, result json.RawMessage, runErr string) error

	SaveRoundMetric(ctx context.Context, m RoundMetric) error
	ListRoundMetrics(ctx context.Context, runID string) ([]RoundMetric, error)
}
