package util

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// HostLimiter spaces requests per hostname so that many boards on one ATS
// (api.lever.co, boards-api.greenhouse.io, *.myworkdayjobs.com) share a budget.
// A nil *HostLimiter never waits.
type HostLimiter struct {
	mu      sync.Mutex
	perHost map[string]*rate.Limiter
	every   rate.Limit
	burst   int
}

// NewHostLimiter allows reqPerSec per host with the given burst. A rate of
// zero or less disables limiting.
func NewHostLimiter(reqPerSec float64, burst int) *HostLimiter {
	every := rate.Limit(reqPerSec)
	if reqPerSec <= 0 {
		every = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &HostLimiter{perHost: make(map[string]*rate.Limiter), every: every, burst: burst}
}

func (hl *HostLimiter) forHost(host string) *rate.Limiter {
	hl.mu.Lock()
	defer hl.mu.Unlock()

	lim, ok := hl.perHost[host]
	if !ok {
		lim = rate.NewLimiter(hl.every, hl.burst)
		hl.perHost[host] = lim
	}
	return lim
}

// WaitURL blocks until a request to raw's host may go out. Unparseable URLs
// share one bucket.
func (hl *HostLimiter) WaitURL(ctx context.Context, raw string) error {
	if hl == nil {
		return nil
	}
	host := HostOf(raw)
	if host == "" {
		host = "_"
	}
	return hl.forHost(host).Wait(ctx)
}

// Hosts reports how many distinct hosts have been seen.
func (hl *HostLimiter) Hosts() int {
	if hl == nil {
		return 0
	}
	hl.mu.Lock()
	defer hl.mu.Unlock()
	return len(hl.perHost)
}
