// Package render produces the Markdown README from the registry.
package render

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"internhunt-engine/internal/config"
	"internhunt-engine/internal/domain"
	"internhunt-engine/internal/registry"
)

//go:embed templates/README.md.tmpl
var defaultTemplate string

const freshWindow = 7 * 24 * time.Hour

// Bucket is one README section. An entry shows up in every bucket whose
// tags it carries.
type Bucket struct {
	Key     string
	Title   string
	Tags    []string
	Entries []domain.Entry
}

var buckets = []Bucket{
	{Key: "software", Title: "Software / Data / ML", Tags: []string{"software", "data-ml-ai"}},
	{Key: "mechanical", Title: "Mechanical", Tags: []string{"mechanical"}},
	{Key: "mechatronics", Title: "Mechatronics / Robotics", Tags: []string{"mechatronics", "hardware-embedded", "robotics"}},
	{Key: "electrical_hw", Title: "Electrical / Hardware", Tags: []string{"electrical", "hardware-embedded", "hardware", "computer"}},
	{Key: "law_consulting", Title: "Law / Consulting", Tags: []string{"law", "consulting"}},
}

type view struct {
	GeneratedAt   string
	Total         int
	Open          int
	Fresh         []domain.Entry
	Buckets       []Bucket
	Opportunities []config.Opportunity
}

type Renderer struct {
	tmpl *template.Template
}

// New parses text, or the embedded default when text is empty.
func New(text string) (*Renderer, error) {
	if strings.TrimSpace(text) == "" {
		text = defaultTemplate
	}
	t, err := template.New("readme").Funcs(template.FuncMap{
		"table": table,
	}).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse readme template: %w", err)
	}
	return &Renderer{tmpl: t}, nil
}

// FromFile loads an override template; an empty path means the default.
func FromFile(path string) (*Renderer, error) {
	if path == "" {
		return New("")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read readme template: %w", err)
	}
	return New(string(b))
}

func (r *Renderer) README(w io.Writer, reg *registry.Registry, opps []config.Opportunity, now time.Time) error {
	return r.tmpl.Execute(w, build(reg, opps, now))
}

// README renders with the embedded template.
func README(w io.Writer, reg *registry.Registry, opps []config.Opportunity, now time.Time) error {
	r, err := New("")
	if err != nil {
		return err
	}
	return r.README(w, reg, opps, now)
}

func build(reg *registry.Registry, opps []config.Opportunity, now time.Time) view {
	now = now.UTC()
	entries := reg.Entries()

	v := view{
		GeneratedAt:   now.Format("2006-01-02 15:04 UTC"),
		Total:         len(entries),
		Opportunities: opps,
	}
	for _, b := range buckets {
		b.Entries = nil
		v.Buckets = append(v.Buckets, b)
	}

	for _, e := range entries {
		if e.Status == domain.StatusOpen {
			v.Open++
		}
		if isFresh(e, now) {
			v.Fresh = append(v.Fresh, e)
		}
		for i := range v.Buckets {
			if e.HasTag(v.Buckets[i].Tags...) {
				v.Buckets[i].Entries = append(v.Buckets[i].Entries, e)
			}
		}
	}
	return v
}

func isFresh(e domain.Entry, now time.Time) bool {
	ts := e.UpdatedAt
	if ts.IsZero() {
		ts = e.CreatedAt
	}
	if ts.IsZero() {
		return false
	}
	return now.Sub(ts) <= freshWindow
}

func table(rows []domain.Entry) string {
	if len(rows) == 0 {
		return "| _No entries yet._ |\n"
	}
	var b strings.Builder
	b.WriteString("| Company | Role | Location | Level | Deadline | Status | Link |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | [Apply](%s) |\n",
			cell(r.Company), cell(r.Role), cell(r.Location), cell(string(r.Level)),
			cell(r.Deadline), cell(string(r.Status)), r.URL)
	}
	return b.String()
}

func cell(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
	if s == "" {
		return "—"
	}
	return strings.ReplaceAll(s, "|", `\|`)
}

// WriteIfChanged rewrites path only when content differs from what is there,
// ignoring surrounding whitespace. It reports whether the file was written.
func WriteIfChanged(path string, content []byte) (bool, error) {
	old, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if err == nil && bytes.Equal(bytes.TrimSpace(old), bytes.TrimSpace(content)) {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return false, fmt.Errorf("replace %s: %w", path, err)
	}
	return true, nil
}
