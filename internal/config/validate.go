package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// Err folds the validation errors into one error, or nil.
func (v Validation) Err() error {
	if v.OK() {
		return nil
	}
	return errors.New("config validation failed:\n- " + strings.Join(v.Errors, "\n- "))
}

// NormalizeAndValidate returns a normalized copy of cfg together with the
// problems found. Keyword lists are trimmed, lowercased and deduped.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.ToLower(strings.TrimSpace(x))
			if x == "" || seen[x] {
				continue
			}
			seen[x] = true
			ys = append(ys, x)
		}
		return ys
	}
	trimTable := func(m map[string][]string) map[string][]string {
		if m == nil {
			return nil
		}
		t := make(map[string][]string, len(m))
		for k, v := range m {
			k = strings.ToLower(strings.TrimSpace(k))
			if k == "" {
				continue
			}
			t[k] = append(t[k], trimList(v)...)
		}
		return t
	}

	out.Filters.Country = strings.TrimSpace(out.Filters.Country)
	out.Filters.LocationHints = trimList(out.Filters.LocationHints)
	out.Filters.InternMarkers = trimList(out.Filters.InternMarkers)
	out.Filters.GraduateMarkers = trimList(out.Filters.GraduateMarkers)
	out.Filters.Categories = trimTable(out.Filters.Categories)
	out.Filters.CompanyHints = trimTable(out.Filters.CompanyHints)

	// ---- Validation rules ----

	if len(out.Filters.Categories) == 0 {
		res.addErr("filters.categories must define at least one bucket")
	}
	for _, name := range sortedKeys(out.Filters.Categories) {
		if len(out.Filters.Categories[name]) == 0 {
			res.addErr("filters.categories.%s must have at least 1 keyword", name)
		}
	}
	for _, company := range sortedKeys(out.Filters.CompanyHints) {
		for _, b := range out.Filters.CompanyHints[company] {
			if _, ok := out.Filters.Categories[b]; !ok {
				res.addWarn("filters.company_hints.%s references unknown bucket %q", company, b)
			}
		}
	}
	if len(out.Filters.InternMarkers) == 0 {
		res.addWarn("filters.intern_markers is empty; built-in markers will be used")
	}
	if out.Filters.Country == "" {
		res.addErr("filters.country is required")
	}

	if out.Fetch.TimeoutSeconds < 0 {
		res.addErr("fetch.timeout_seconds must be >= 0")
	}
	if out.Fetch.Concurrency < 0 {
		res.addErr("fetch.concurrency must be >= 0")
	} else if out.Fetch.Concurrency > 8 {
		res.addWarn("fetch.concurrency is high (%d) and may trip board rate limits.", out.Fetch.Concurrency)
	}
	if out.Schedule.IntervalMinutes < 0 {
		res.addErr("schedule.interval_minutes must be >= 0")
	}

	switch out.Registry.Driver {
	case "", "json", "sqlite":
	default:
		res.addErr("registry.driver must be json or sqlite, got %q", out.Registry.Driver)
	}

	checkBoards := func(name string, boards []Board) {
		for i, b := range boards {
			if strings.TrimSpace(b.Board) == "" {
				res.addErr("sources.%s[%d].board is required", name, i)
			}
			if strings.TrimSpace(b.Name) == "" {
				res.addWarn("sources.%s[%d].name is empty; the board id will be shown instead", name, i)
			}
		}
	}
	checkBoards("greenhouse", out.Sources.Greenhouse)
	checkBoards("lever", out.Sources.Lever)
	checkBoards("ashby", out.Sources.Ashby)
	checkBoards("workday", out.Sources.Workday)
	checkBoards("smartrecruiters", out.Sources.SmartRecruiters)
	checkBoards("html", out.Sources.HTML)

	for i, m := range out.Manual {
		if strings.TrimSpace(m.URL) == "" {
			res.addWarn("manual[%d] (%s) has no url and will be dropped", i, m.Company)
		}
	}

	return out, res
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
