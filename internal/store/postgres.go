package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Postgres persists runs and round metrics via database/sql over the
// pgx stdlib driver, exactly as the ancestor's store.Postgres.
type Postgres struct {
	db *sql.DB
}

// NewPostgres opens and pings a connection pool against dsn.
func NewPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return &Postgres{db: db}, nil
}

// Schema is the DDL the service expects to already exist (applied out
// of band by migration tooling, as with the ancestor's db/migrations).
const Schema = `
CREATE TABLE IF NOT EXISTS optimize_runs (
	id uuid PRIMARY KEY,
	status text NOT NULL,
	input jsonb NOT NULL,
	result jsonb,
	error text,
	created_at timestamptz NOT NULL,
	updated_at timestamptz NOT NULL
);
CREATE TABLE IF NOT EXISTS round_metrics (
	id uuid PRIMARY KEY,
	run_id uuid NOT NULL REFERENCES optimize_runs(id) ON DELETE CASCADE,
	round int NOT NULL,
	family text NOT NULL,
	gain bigint NOT NULL,
	total_cost bigint NOT NULL,
	unassigned int NOT NULL,
	applied_at timestamptz NOT NULL
);
CREATE INDEX IF NOT EXISTS round_metrics_run_id_idx ON round_metrics(run_id);
`

func (p *Postgres) CreateRun(ctx context.Context, input json.RawMessage) (Run, error) {
	r := Run{ID: uuid.New().String(), Status: "running", Input: input, CreatedAt: time.Now().UTC()}
	r.UpdatedAt = r.CreatedAt
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO optimize_runs (id, status, input, created_at, updated_at) VALUES ($1,$2,$3,$4,$5)`,
		r.ID, r.Status, []byte(input), r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return Run{}, err
	}
	return r, nil
}

func (p *Postgres) GetRun(ctx context.Context, id string) (Run, error) {
	var r Run
	var result []byte
	var runErr sql.NullString
	row := p.db.QueryRowContext(ctx,
		`SELECT id, status, input, result, error, created_at, updated_at FROM optimize_runs WHERE id=$1`, id)
	if err := row.Scan(&r.ID, &r.Status, &r.Input, &result, &runErr, &r.CreatedAt, &r.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, ErrNotFound
		}
		return Run{}, err
	}
	r.Result = result
	r.Error = runErr.String
	return r, nil
}

func (p *Postgres) ListRuns(ctx context.Context, cursor string, limit int) ([]Run, string, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var rows *sql.Rows
	var err error
	if cursor != "" {
		rows, err = p.db.QueryContext(ctx,
			`SELECT id, status, input, result, error, created_at, updated_at FROM optimize_runs WHERE id::text > $1 ORDER BY id LIMIT $2`, cursor, limit)
	} else {
		rows, err = p.db.QueryContext(ctx,
			`SELECT id, status, input, result, error, created_at, updated_at FROM optimize_runs ORDER BY id LIMIT $1`, limit)
	}
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()
	out := []Run{}
	var last string
	for rows.Next() {
		var r Run
		var result []byte
		var runErr sql.NullString
		if err := rows.Scan(&r.ID, &r.Status, &r.Input, &result, &runErr, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, "", err
		}
		r.Result = result
		r.Error = runErr.String
		out = append(out, r)
		last = r.ID
	}
	next := ""
	if len(out) == limit {
		next = last
	}
	return out, next, nil
}

func (p *Postgres) SaveRunResult(ctx context.Context, id, status string, result json.RawMessage, runErr string) error {
	_, err := p.db.ExecContext(ctx,
		`UPDATE optimize_runs SET status=$1, result=$2, error=$3, updated_at=now() WHERE id=$4`,
		status, []byte(result), nullIfEmpty(runErr), id)
	return err
}

func (p *Postgres) SaveRoundMetric(ctx context.Context, m RoundMetric) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO round_metrics (id, run_id, round, family, gain, total_cost, unassigned, applied_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		uuid.New().String(), m.RunID, m.Round, m.Family, m.Gain, m.TotalCost, m.Unassigned, m.AppliedAt)
	return err
}

func (p *Postgres) ListRoundMetrics(ctx context.Context, runID string) ([]RoundMetric, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT run_id, round, family, gain, total_cost, unassigned, applied_at FROM round_metrics WHERE run_id=$1 ORDER BY round`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []RoundMetric{}
	for rows.Next() {
		var m RoundMetric
		if err := rows.Scan(&m.RunID, &m.Round, &m.Family, &m.Gain, &m.TotalCost, &m.Unassigned, &m.AppliedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
