package registry

import (
	"context"
	"time"
)

// RunRecord is the audit row written after each pipeline run by stores that
// keep run history.
type RunRecord struct {
	ID            string    `json:"id"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
	Fetched       int       `json:"fetched"`
	Accepted      int       `json:"accepted"`
	Rejected      int       `json:"rejected"`
	Unique        int       `json:"unique"`
	Added         int       `json:"added"`
	Reopened      int       `json:"reopened"`
	Updated       int       `json:"updated"`
	Closed        int       `json:"closed"`
	FailedSources []string  `json:"failed_sources"`
	Error         string    `json:"error,omitempty"`
}

// RunRecorder is implemented by stores that keep run history.
type RunRecorder interface {
	RecordRun(ctx context.Context, run RunRecord) error
	Runs(ctx context.Context, limit int) ([]RunRecord, error)
}
