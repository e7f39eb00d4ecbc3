// Package registry holds the persistent url -> entry map and reconciles it
// against each run's batch.
package registry

import (
	"slices"
	"sort"
	"strings"
	"time"

	"internhunt-engine/internal/domain"
)

type Registry struct {
	Items map[string]domain.Entry `json:"items"`
}

func New() *Registry {
	return &Registry{Items: map[string]domain.Entry{}}
}

// Diff lists the URLs touched by one Reconcile call.
type Diff struct {
	Added    []string `json:"added"`
	Reopened []string `json:"reopened"`
	Updated  []string `json:"updated"`
	Closed   []string `json:"closed"`
}

func (d Diff) Empty() bool {
	return len(d.Added)+len(d.Reopened)+len(d.Updated)+len(d.Closed) == 0
}

// Reconcile applies one batch at now:
//   - new urls are inserted Open with created_at = updated_at = now;
//   - known urls get their fields overwritten, go (back to) Open and have
//     updated_at bumped, created_at kept;
//   - Open entries missing from the batch are Closed with updated_at = now;
//   - Closed entries missing from the batch are left alone.
//
// Nothing is ever deleted.
func (r *Registry) Reconcile(batch []domain.Posting, now time.Time) Diff {
	if r.Items == nil {
		r.Items = map[string]domain.Entry{}
	}
	now = now.UTC()

	var d Diff

	// Same-url postings in one batch fold into the last one before the
	// diff is taken against the registry as it stood.
	latest := make(map[string]domain.Posting, len(batch))
	var order []string
	for _, p := range batch {
		if p.URL == "" {
			continue
		}
		if _, dup := latest[p.URL]; !dup {
			order = append(order, p.URL)
		}
		p.Status = domain.StatusOpen
		p.Tags = slices.Clone(p.Tags)
		latest[p.URL] = p
	}

	for _, url := range order {
		p := latest[url]
		prev, ok := r.Items[url]
		if !ok {
			r.Items[url] = domain.Entry{Posting: p, CreatedAt: now, UpdatedAt: now}
			d.Added = append(d.Added, url)
			continue
		}

		switch {
		case prev.Status == domain.StatusClosed:
			d.Reopened = append(d.Reopened, url)
		case !samePosting(prev.Posting, p):
			d.Updated = append(d.Updated, url)
		}
		r.Items[url] = domain.Entry{Posting: p, CreatedAt: prev.CreatedAt, UpdatedAt: now}
	}

	for url, e := range r.Items {
		if _, ok := latest[url]; ok || e.Status != domain.StatusOpen {
			continue
		}
		e.Status = domain.StatusClosed
		e.UpdatedAt = now
		r.Items[url] = e
		d.Closed = append(d.Closed, url)
	}

	sort.Strings(d.Added)
	sort.Strings(d.Reopened)
	sort.Strings(d.Updated)
	sort.Strings(d.Closed)
	return d
}

func samePosting(a, b domain.Posting) bool {
	return a.Company == b.Company &&
		a.Role == b.Role &&
		a.Location == b.Location &&
		a.Country == b.Country &&
		a.Deadline == b.Deadline &&
		a.Status == b.Status &&
		a.Level == b.Level &&
		a.Source == b.Source &&
		a.Notes == b.Notes &&
		slices.Equal(a.Tags, b.Tags)
}

func (r *Registry) Len() int { return len(r.Items) }

func (r *Registry) Get(url string) (domain.Entry, bool) {
	e, ok := r.Items[url]
	return e, ok
}

// Entries returns every entry sorted by company, role, then url.
func (r *Registry) Entries() []domain.Entry {
	out := make([]domain.Entry, 0, len(r.Items))
	for _, e := range r.Items {
		out = append(out, e)
	}
	SortEntries(out)
	return out
}

// Filtered returns the sorted entries matching f.
func (r *Registry) Filtered(f Filter) []domain.Entry {
	var out []domain.Entry
	for _, e := range r.Entries() {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}

func SortEntries(es []domain.Entry) {
	sort.SliceStable(es, func(i, j int) bool {
		a, b := es[i], es[j]
		if c := strings.Compare(strings.ToLower(a.Company), strings.ToLower(b.Company)); c != 0 {
			return c < 0
		}
		if c := strings.Compare(strings.ToLower(a.Role), strings.ToLower(b.Role)); c != 0 {
			return c < 0
		}
		return a.URL < b.URL
	})
}

// SortPostings orders a batch the same way entries are listed.
func SortPostings(ps []domain.Posting) {
	sort.SliceStable(ps, func(i, j int) bool {
		a, b := ps[i], ps[j]
		if c := strings.Compare(strings.ToLower(a.Company), strings.ToLower(b.Company)); c != 0 {
			return c < 0
		}
		return strings.ToLower(a.Role) < strings.ToLower(b.Role)
	})
}
