package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"internhunt-engine/internal/domain"
	"internhunt-engine/internal/registry"

	sq "github.com/Masterminds/squirrel"
)

// SQLiteStore is the registry.Store backed by a postings table keyed by url.
type SQLiteStore struct {
	db *DB
}

var _ registry.Store = (*SQLiteStore)(nil)
var _ registry.RunRecorder = (*SQLiteStore)(nil)

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := Migrate(db.Pool); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

var postingColumns = []string{
	"url", "company", "role", "location", "country", "deadline", "status",
	"tags", "level", "source", "notes", "created_at", "updated_at",
}

func (s *SQLiteStore) Load(ctx context.Context) (*registry.Registry, error) {
	entries, err := s.query(ctx, sq.Select(postingColumns...).From("postings"))
	if err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}
	r := registry.New()
	for _, e := range entries {
		r.Items[e.URL] = e
	}
	return r, nil
}

// Save upserts every entry. Rows are never deleted: the registry only grows.
func (s *SQLiteStore) Save(ctx context.Context, r *registry.Registry) error {
	tx, err := s.db.Pool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO postings (url, company, role, location, country, deadline, status, tags, level, source, notes, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(url) DO UPDATE SET
  company = excluded.company,
  role = excluded.role,
  location = excluded.location,
  country = excluded.country,
  deadline = excluded.deadline,
  status = excluded.status,
  tags = excluded.tags,
  level = excluded.level,
  source = excluded.source,
  notes = excluded.notes,
  updated_at = excluded.updated_at;`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, e := range r.Entries() {
		tags := e.Tags
		if tags == nil {
			tags = []string{}
		}
		tagsB, _ := json.Marshal(tags)
		if _, err := stmt.ExecContext(ctx,
			e.URL, e.Company, e.Role, e.Location, e.Country, e.Deadline, string(e.Status),
			string(tagsB), string(e.Level), e.Source, e.Notes,
			formatTime(e.CreatedAt), formatTime(e.UpdatedAt),
		); err != nil {
			return fmt.Errorf("upsert %s: %w", e.URL, err)
		}
	}
	return tx.Commit()
}

// List filters in SQL; ordering matches registry.Entries.
func (s *SQLiteStore) List(ctx context.Context, f registry.Filter) ([]domain.Entry, error) {
	b := sq.Select(postingColumns...).From("postings")

	if f.Status != "" {
		b = b.Where("lower(status) = ?", strings.ToLower(f.Status))
	}
	if f.Level != "" {
		b = b.Where("lower(level) = ?", strings.ToLower(f.Level))
	}
	if f.Tag != "" {
		b = b.Where(sq.Expr("EXISTS (SELECT 1 FROM json_each(postings.tags) WHERE lower(json_each.value) = ?)", strings.ToLower(f.Tag)))
	}
	if f.Company != "" {
		b = b.Where(sq.Like{"lower(company)": likePattern(f.Company)})
	}
	if f.Query != "" {
		p := likePattern(f.Query)
		b = b.Where(sq.Or{
			sq.Like{"lower(company)": p},
			sq.Like{"lower(role)": p},
			sq.Like{"lower(location)": p},
		})
	}
	b = b.OrderBy("lower(company)", "lower(role)", "url")
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}

	out, err := s.query(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("list postings: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) query(ctx context.Context, b sq.SelectBuilder) ([]domain.Entry, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Pool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanEntry(rows *sql.Rows) (domain.Entry, error) {
	var (
		e                  domain.Entry
		status, level      string
		tagsJSON           string
		createdAt, updated string
	)
	if err := rows.Scan(
		&e.URL, &e.Company, &e.Role, &e.Location, &e.Country, &e.Deadline, &status,
		&tagsJSON, &level, &e.Source, &e.Notes, &createdAt, &updated,
	); err != nil {
		return e, err
	}
	e.Status = domain.Status(status)
	e.Level = domain.Level(level)
	_ = json.Unmarshal([]byte(tagsJSON), &e.Tags)
	e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	e.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
	return e, nil
}

func likePattern(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return "%" + s + "%"
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
