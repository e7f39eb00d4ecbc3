package types

import (
	"context"
	"time"

	"internhunt-engine/internal/domain"
)

// ScrapeResult is what one fetcher produced for its whole board list.
// Failed names the boards that errored and contributed nothing.
type ScrapeResult struct {
	Source  string
	Records []domain.RawRecord
	Failed  []string
}

type ScrapeStatus struct {
	LastRunAt  string `json:"last_run_at"`
	LastOkAt   string `json:"last_ok_at"`
	LastError  string `json:"last_error"`
	LastAdded  int    `json:"last_added"`
	LastClosed int    `json:"last_closed"`
	LastRunID  string `json:"last_run_id,omitempty"`
	Running    bool   `json:"running"`
}

type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) (ScrapeResult, error)
}

// Options are shared by every network fetcher.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	Workers   int
}

func (o Options) WithDefaults() Options {
	if o.UserAgent == "" {
		o.UserAgent = "Canadian-Internships-Auto/1.3"
	}
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.Workers <= 0 {
		o.Workers = 1
	}
	return o
}
