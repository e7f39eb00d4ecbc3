// Package poll runs the fetch -> normalize -> dedupe -> reconcile pipeline.
package poll

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"internhunt-engine/internal/config"
	"internhunt-engine/internal/dedupe"
	"internhunt-engine/internal/domain"
	"internhunt-engine/internal/normalize"
	"internhunt-engine/internal/registry"
	"internhunt-engine/internal/render"
	"internhunt-engine/internal/scrape"
	"internhunt-engine/internal/scrape/types"
	"internhunt-engine/internal/scrape/util"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ErrLocked means another run holds the data directory lock.
var ErrLocked = errors.New("another run is in progress")

const LockFile = "engine.lock"

type Deps struct {
	Config config.Config
	Store  registry.Store

	// DataDir holds the lock file. Relative output paths are resolved
	// against it.
	DataDir string

	// Fetchers overrides the sources built from Config (tests).
	Fetchers []types.Fetcher

	// Now defaults to time.Now.
	Now func() time.Time
}

type Summary struct {
	RunID         string        `json:"run_id"`
	StartedAt     time.Time     `json:"started_at"`
	FinishedAt    time.Time     `json:"finished_at"`
	Fetched       int           `json:"fetched"`
	Accepted      int           `json:"accepted"`
	Rejected      int           `json:"rejected"`
	Unique        int           `json:"unique"`
	Diff          registry.Diff `json:"diff"`
	FailedSources []string      `json:"failed_sources"`
	ReadmeWritten bool          `json:"readme_written"`
}

func (s Summary) record(runErr error) registry.RunRecord {
	rec := registry.RunRecord{
		ID:            s.RunID,
		StartedAt:     s.StartedAt,
		FinishedAt:    s.FinishedAt,
		Fetched:       s.Fetched,
		Accepted:      s.Accepted,
		Rejected:      s.Rejected,
		Unique:        s.Unique,
		Added:         len(s.Diff.Added),
		Reopened:      len(s.Diff.Reopened),
		Updated:       len(s.Diff.Updated),
		Closed:        len(s.Diff.Closed),
		FailedSources: s.FailedSources,
	}
	if runErr != nil {
		rec.Error = runErr.Error()
	}
	return rec
}

// RunOnce performs one full pipeline run under an exclusive file lock.
func RunOnce(ctx context.Context, d Deps) (Summary, error) {
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	sum := Summary{RunID: uuid.NewString(), StartedAt: now().UTC()}

	lock := flock.New(filepath.Join(d.DataDir, LockFile))
	ok, err := lock.TryLock()
	if err != nil {
		return sum, fmt.Errorf("lock: %w", err)
	}
	if !ok {
		return sum, ErrLocked
	}
	defer func() { _ = lock.Unlock() }()

	fail := func(err error) (Summary, error) {
		sum.FinishedAt = now().UTC()
		recordRun(ctx, d.Store, sum, err)
		return sum, err
	}

	reg, err := d.Store.Load(ctx)
	if err != nil {
		return fail(fmt.Errorf("load registry: %w", err))
	}

	fetchers := d.Fetchers
	if fetchers == nil {
		limiter := util.NewHostLimiter(d.Config.Fetch.ReqPerSec, d.Config.Fetch.Burst)
		fetchers = scrape.Fetchers(d.Config, limiter)
	}
	raws, failed := fetchAll(ctx, fetchers, d.Config.Fetch.Concurrency)
	sum.Fetched = len(raws)
	sum.FailedSources = failed

	n := normalize.New(d.Config.Filters)
	accepted, rejected := n.NormalizeAll(raws)
	sum.Accepted = len(accepted)
	sum.Rejected = rejected

	batch := dedupe.Postings(accepted)
	registry.SortPostings(batch)
	sum.Unique = len(batch)

	sum.Diff = reg.Reconcile(batch, now().UTC())

	if err := d.Store.Save(ctx, reg); err != nil {
		return fail(fmt.Errorf("save registry: %w", err))
	}

	if d.Config.Output.README != "" {
		wrote, err := writeReadme(d, reg, now().UTC())
		if err != nil {
			return fail(err)
		}
		sum.ReadmeWritten = wrote
	}

	sum.FinishedAt = now().UTC()
	recordRun(ctx, d.Store, sum, nil)

	log.Printf("[poll] run=%s fetched=%d accepted=%d rejected=%d unique=%d added=%d reopened=%d updated=%d closed=%d failed=%d",
		sum.RunID, sum.Fetched, sum.Accepted, sum.Rejected, sum.Unique,
		len(sum.Diff.Added), len(sum.Diff.Reopened), len(sum.Diff.Updated), len(sum.Diff.Closed), len(sum.FailedSources))
	return sum, nil
}

// recordRun keeps run history on stores that support it.
func recordRun(ctx context.Context, st registry.Store, sum Summary, runErr error) {
	rr, ok := st.(registry.RunRecorder)
	if !ok {
		return
	}
	if err := rr.RecordRun(ctx, sum.record(runErr)); err != nil {
		log.Printf("[poll] WARN record run %s: %v", sum.RunID, err)
	}
}

// fetchAll runs fetchers with at most limit in flight and concatenates their
// records in fetcher order, so later sources win on dedupe regardless of
// which finished first. A failing fetcher contributes nothing.
func fetchAll(ctx context.Context, fetchers []types.Fetcher, limit int) ([]domain.RawRecord, []string) {
	if limit <= 0 {
		limit = 1
	}
	results := make([]types.ScrapeResult, len(fetchers))
	errs := make([]error, len(fetchers))

	var g errgroup.Group
	g.SetLimit(limit)
	for i, f := range fetchers {
		i, f := i, f // per-iteration copies (go directive is 1.21)
		g.Go(func() error {
			log.Printf("[%s] Running...", f.Name())
			res, err := f.Fetch(ctx)
			if err != nil {
				log.Printf("[ats:%s] WARN error: %v", f.Name(), err)
				errs[i] = err
				return nil // best-effort: don't cancel siblings
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	var (
		raws   []domain.RawRecord
		failed []string
	)
	for i, f := range fetchers {
		if errs[i] != nil {
			failed = append(failed, f.Name())
			continue
		}
		log.Printf("[poll] got source=%s records=%d failed=%d", f.Name(), len(results[i].Records), len(results[i].Failed))
		raws = append(raws, results[i].Records...)
		failed = append(failed, results[i].Failed...)
	}
	return raws, failed
}

func writeReadme(d Deps, reg *registry.Registry, now time.Time) (bool, error) {
	r, err := render.FromFile(resolve(d.DataDir, d.Config.Output.Template))
	if err != nil {
		return false, err
	}
	var buf bytes.Buffer
	if err := r.README(&buf, reg, d.Config.Opportunities, now); err != nil {
		return false, fmt.Errorf("render readme: %w", err)
	}
	wrote, err := render.WriteIfChanged(resolve(d.DataDir, d.Config.Output.README), buf.Bytes())
	if err != nil {
		return false, fmt.Errorf("write readme: %w", err)
	}
	if wrote {
		log.Printf("[poll] README updated.")
	} else {
		log.Printf("[poll] No README changes.")
	}
	return wrote, nil
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) || dir == "" {
		return p
	}
	return filepath.Join(dir, p)
}
