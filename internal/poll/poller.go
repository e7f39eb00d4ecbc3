package poll

import (
	"context"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"internhunt-engine/internal/config"
	"internhunt-engine/internal/events"
	"internhunt-engine/internal/registry"
	"internhunt-engine/internal/scheduler"
	"internhunt-engine/internal/scrape/types"
)

// Runner owns the run status shared between the scheduler and the HTTP API.
type Runner struct {
	cfgVal  *atomic.Value // config.Config
	status  *atomic.Value // types.ScrapeStatus
	store   registry.Store
	dataDir string
	running atomic.Bool
	hub     *events.Hub

	// fetchers overrides the configured sources (tests).
	fetchers []types.Fetcher
}

func NewRunner(cfgVal, status *atomic.Value, store registry.Store, dataDir string) *Runner {
	if status.Load() == nil {
		status.Store(types.ScrapeStatus{})
	}
	return &Runner{cfgVal: cfgVal, status: status, store: store, dataDir: dataDir}
}

// WithEvents makes the runner publish run_started / run_finished / run_failed on h.
func (r *Runner) WithEvents(h *events.Hub) *Runner {
	r.hub = h
	return r
}

func (r *Runner) Status() types.ScrapeStatus {
	st, _ := r.status.Load().(types.ScrapeStatus)
	st.Running = r.running.Load()
	return st
}

func (r *Runner) Running() bool { return r.running.Load() }

// Run performs one run and records its outcome in the status. It returns
// ErrLocked without touching the status when a run is already going.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	if !r.running.CompareAndSwap(false, true) {
		return Summary{}, ErrLocked
	}
	defer r.running.Store(false)
	return r.runAcquired(ctx)
}

// runAcquired does the work of Run; the caller holds r.running.
func (r *Runner) runAcquired(ctx context.Context) (Summary, error) {
	cfg, ok := r.cfgVal.Load().(config.Config)
	if !ok {
		return Summary{}, errors.New("no config loaded")
	}

	st := r.Status()
	st.Running = true
	st.LastRunAt = time.Now().Format(time.RFC3339)
	r.status.Store(st)
	r.hub.Publish(events.MakeEvent("", events.TypeRunStarted, "", nil))

	sum, err := RunOnce(ctx, Deps{
		Config:   cfg,
		Store:    r.store,
		DataDir:  r.dataDir,
		Fetchers: r.fetchers,
	})

	st = r.Status()
	st.Running = false
	st.LastRunID = sum.RunID
	if err != nil {
		st.LastError = err.Error()
		log.Printf("[poll] error: %v", err)
		r.hub.Publish(events.MakeEvent("", events.TypeRunFailed, sum.RunID, map[string]string{"error": err.Error()}))
	} else {
		st.LastError = ""
		st.LastOkAt = time.Now().Format(time.RFC3339)
		st.LastAdded = len(sum.Diff.Added)
		st.LastClosed = len(sum.Diff.Closed)
		log.Printf("[poll] ok added=%d closed=%d", st.LastAdded, st.LastClosed)
		r.hub.Publish(events.MakeEvent("", events.TypeRunFinished, sum.RunID, sum))
	}
	r.status.Store(st)
	return sum, err
}

// Trigger starts a run in the background. It reports false when one is
// already in progress.
func (r *Runner) Trigger(ctx context.Context) bool {
	if !r.running.CompareAndSwap(false, true) {
		return false
	}
	go func() {
		defer r.running.Store(false)
		if _, err := r.runAcquired(ctx); errors.Is(err, ErrLocked) {
			log.Printf("[poll] run skipped: %v", err)
		}
	}()
	return true
}

// StartPoller runs r every schedule.interval_minutes until ctx is done.
// An interval of zero disables polling.
func StartPoller(ctx context.Context, r *Runner) {
	cfg, _ := r.cfgVal.Load().(config.Config)
	interval := time.Duration(cfg.Schedule.IntervalMinutes) * time.Minute
	if interval <= 0 {
		log.Printf("[poll] schedule disabled")
		return
	}
	go scheduler.Every(ctx, interval, "poll", func(ctx context.Context) error {
		_, err := r.Run(ctx)
		if errors.Is(err, ErrLocked) {
			return nil
		}
		return err
	})
}
