package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"internhunt-engine/internal/registry"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// RecordRun appends one row to runs. A missing ID gets a fresh UUID.
func (s *SQLiteStore) RecordRun(ctx context.Context, run registry.RunRecord) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	failed := run.FailedSources
	if failed == nil {
		failed = []string{}
	}
	failedB, _ := json.Marshal(failed)

	query, args, err := sq.Insert("runs").
		Columns("id", "started_at", "finished_at", "fetched", "accepted", "rejected", "uniq",
			"added", "reopened", "updated", "closed", "failed_sources", "error").
		Values(run.ID, formatTime(run.StartedAt), formatTime(run.FinishedAt),
			run.Fetched, run.Accepted, run.Rejected, run.Unique,
			run.Added, run.Reopened, run.Updated, run.Closed, string(failedB), run.Error).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.db.Pool.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// Runs returns the most recent runs first.
func (s *SQLiteStore) Runs(ctx context.Context, limit int) ([]registry.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	query, args, err := sq.Select("id", "started_at", "finished_at", "fetched", "accepted", "rejected", "uniq",
		"added", "reopened", "updated", "closed", "failed_sources", "error").
		From("runs").
		OrderBy("started_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Pool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []registry.RunRecord
	for rows.Next() {
		var (
			r                 registry.RunRecord
			started, finished string
			failedJSON        string
		)
		if err := rows.Scan(&r.ID, &started, &finished, &r.Fetched, &r.Accepted, &r.Rejected, &r.Unique,
			&r.Added, &r.Reopened, &r.Updated, &r.Closed, &failedJSON, &r.Error); err != nil {
			return nil, err
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		r.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		_ = json.Unmarshal([]byte(failedJSON), &r.FailedSources)
		out = append(out, r)
	}
	return out, rows.Err()
}
