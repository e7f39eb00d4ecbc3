package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"internhunt-engine/internal/domain"
	"internhunt-engine/internal/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func openTest(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "jobs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func posting(company, role, url, location string, tags ...string) domain.Posting {
	return domain.Posting{
		Company:  company,
		Role:     role,
		Location: location,
		Country:  "Canada",
		Deadline: domain.RollingDeadline,
		Status:   domain.StatusOpen,
		Tags:     tags,
		URL:      url,
		Level:    domain.LevelUndergraduate,
		Source:   "Lever",
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := openTest(t)
	require.NoError(t, Migrate(s.db.Pool))

	var v int
	require.NoError(t, s.db.Pool.QueryRow(`PRAGMA user_version;`).Scan(&v))
	assert.Equal(t, 1, v)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	r := registry.New()
	r.Reconcile([]domain.Posting{
		posting("Acme", "Software Engineering Intern", "https://x/1", "Toronto, ON", "software"),
	}, t0)
	require.NoError(t, s.Save(ctx, r))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	e, ok := loaded.Get("https://x/1")
	require.True(t, ok)
	assert.Equal(t, "Acme", e.Company)
	assert.Equal(t, []string{"software"}, e.Tags)
	assert.Equal(t, domain.StatusOpen, e.Status)
	assert.True(t, e.CreatedAt.Equal(t0))

	// closing keeps created_at and upserts in place
	loaded.Reconcile(nil, t0.Add(time.Hour))
	require.NoError(t, s.Save(ctx, loaded))

	again, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, again.Len())
	e, _ = again.Get("https://x/1")
	assert.Equal(t, domain.StatusClosed, e.Status)
	assert.True(t, e.CreatedAt.Equal(t0))
	assert.True(t, e.UpdatedAt.Equal(t0.Add(time.Hour)))
}

func TestListFilters(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	r := registry.New()
	r.Reconcile([]domain.Posting{
		posting("Acme", "Software Intern", "https://x/1", "Toronto, ON", "software"),
		posting("Beta Law", "Legal Student", "https://x/2", "Ottawa, ON", "law"),
		posting("acme", "Data Co-op", "https://x/3", "Montreal, QC", "data-ml-ai", "software"),
	}, t0)
	require.NoError(t, s.Save(ctx, r))

	all, err := s.List(ctx, registry.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "https://x/3", all[0].URL)

	soft, err := s.List(ctx, registry.Filter{Tag: "Software"})
	require.NoError(t, err)
	assert.Len(t, soft, 2)

	q, err := s.List(ctx, registry.Filter{Query: "ottawa"})
	require.NoError(t, err)
	require.Len(t, q, 1)
	assert.Equal(t, "Beta Law", q[0].Company)

	co, err := s.List(ctx, registry.Filter{Company: "ACME", Limit: 1})
	require.NoError(t, err)
	assert.Len(t, co, 1)

	closed, err := s.List(ctx, registry.Filter{Status: "closed"})
	require.NoError(t, err)
	assert.Empty(t, closed)
}

func TestRecordRun(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	require.NoError(t, s.RecordRun(ctx, registry.RunRecord{
		StartedAt:     t0,
		FinishedAt:    t0.Add(time.Minute),
		Fetched:       10,
		Accepted:      4,
		Rejected:      6,
		Unique:        3,
		Added:         3,
		FailedSources: []string{"lever:Wave"},
	}))
	require.NoError(t, s.RecordRun(ctx, registry.RunRecord{ID: "second", StartedAt: t0.Add(time.Hour), FinishedAt: t0.Add(time.Hour)}))

	runs, err := s.Runs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "second", runs[0].ID)
	assert.Empty(t, runs[0].FailedSources)
	assert.Len(t, runs[1].ID, 36)
	assert.Equal(t, []string{"lever:Wave"}, runs[1].FailedSources)
	assert.Equal(t, 6, runs[1].Rejected)
}
