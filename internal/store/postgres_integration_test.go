//go:build postgres_integration

package store

import (
	"context"
	"encoding/json"
	"os"
	"testing"
)

func TestPostgresConnectivityAndSchema(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set; skipping integration test")
	}
	p, err := NewPostgres(dsn)
	if err != nil {
		t.Fatalf("NewPostgres: %v", err)
	}
	ctx := context.Background()
	if _, err := p.db.ExecContext(ctx, Schema); err != nil {
		t.Fatalf("applying schema: %v", err)
	}
	run, err := p.CreateRun(ctx, json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}
	if _, err := p.GetRun(ctx, run.ID); err != nil {
		t.Fatalf("GetRun: %v", err)
	}
}
