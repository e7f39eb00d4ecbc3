package normalize

import (
	"testing"

	"internhunt-engine/internal/config"
	"internhunt-engine/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFilters() config.Filters {
	return config.Filters{
		Country:         "Canada",
		InternMarkers:   []string{"intern", "internship", "co-op", "coop", "student"},
		GraduateMarkers: []string{"graduate", "phd", "master's"},
		Categories: map[string][]string{
			"software":   {"software", "developer", "backend"},
			"data-ml-ai": {"data", "machine learning"},
			"law":        {"law", "legal", "clerk"},
		},
		CompanyHints: map[string][]string{
			"supreme court": {"law"},
		},
	}
}

func TestNormalizeGreenhouse(t *testing.T) {
	n := New(testFilters())
	p, ok := n.Normalize(domain.RawRecord{
		Kind:    domain.SourceGreenhouse,
		Company: "Acme",
		Board:   "acme",
		Fields: map[string]any{
			"title":        " Software Engineering Intern ",
			"absolute_url": "https://boards.greenhouse.io/acme/jobs/1?utm_source=x#top",
			"location":     map[string]any{"name": "Toronto, ON"},
			"departments":  []any{map[string]any{"name": "Data ML AI"}},
		},
	})
	require.True(t, ok)
	assert.Equal(t, "Acme", p.Company)
	assert.Equal(t, "Software Engineering Intern", p.Role)
	assert.Equal(t, "Toronto, ON", p.Location)
	assert.Equal(t, "Canada", p.Country)
	assert.Equal(t, domain.RollingDeadline, p.Deadline)
	assert.Equal(t, domain.StatusOpen, p.Status)
	assert.Equal(t, []string{"data-ml-ai", "software"}, p.Tags)
	assert.Equal(t, "https://boards.greenhouse.io/acme/jobs/1", p.URL)
	assert.Equal(t, domain.LevelUndergraduate, p.Level)
	assert.Equal(t, "Greenhouse", p.Source)
}

func TestNormalizeLocationShapes(t *testing.T) {
	n := New(testFilters())
	cases := []struct {
		name   string
		raw    domain.RawRecord
		expect string
	}{
		{
			name: "lever plain string",
			raw: domain.RawRecord{Kind: domain.SourceLever, Fields: map[string]any{
				"text": "Data Intern", "hostedUrl": "https://jobs.lever.co/w/1",
				"categories": map[string]any{"location": "Waterloo, ON"},
			}},
			expect: "Waterloo, ON",
		},
		{
			name: "lever list fallback",
			raw: domain.RawRecord{Kind: domain.SourceLever, Fields: map[string]any{
				"text": "Data Intern", "hostedUrl": "https://jobs.lever.co/w/2",
				"categories": map[string]any{"allLocations": []any{"", "Montreal, QC"}},
			}},
			expect: "Montreal, QC",
		},
		{
			name: "ashby postal address",
			raw: domain.RawRecord{Kind: domain.SourceAshby, Fields: map[string]any{
				"title": "ML Co-op", "jobUrl": "https://jobs.ashbyhq.com/c/1",
				"address": map[string]any{"postalAddress": map[string]any{
					"addressLocality": "Vancouver", "addressRegion": "BC", "addressCountry": "Canada",
				}},
			}},
			expect: "Vancouver, BC, Canada",
		},
		{
			name: "smartrecruiters city region country",
			raw: domain.RawRecord{Kind: domain.SourceSmartRecruiters, Board: "BoschGroup", Fields: map[string]any{
				"id": "744", "name": "Embedded Student",
				"location": map[string]any{"city": "Calgary", "region": "AB", "country": "ca"},
			}},
			expect: "Calgary, AB, ca",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, ok := n.Normalize(c.raw)
			require.True(t, ok)
			assert.Equal(t, c.expect, p.Location)
		})
	}
}

func TestNormalizeURLVariants(t *testing.T) {
	n := New(testFilters())

	p, ok := n.Normalize(domain.RawRecord{Kind: domain.SourceWorkday, Board: "https://rbc.wd3.myworkdayjobs.com/en-US/RBCGLOBAL1",
		Fields: map[string]any{"title": "Summer Intern", "externalPath": "/job/Toronto/Summer-Intern_R1", "locationsText": "Toronto, ON"}})
	require.True(t, ok)
	assert.Equal(t, "https://rbc.wd3.myworkdayjobs.com/job/Toronto/Summer-Intern_R1", p.URL)
	assert.Equal(t, "Workday", p.Source)

	p, ok = n.Normalize(domain.RawRecord{Kind: domain.SourceSmartRecruiters, Board: "BoschGroup",
		Fields: map[string]any{"id": "744", "name": "Software Intern", "location": map[string]any{"city": "Toronto"}}})
	require.True(t, ok)
	assert.Equal(t, "https://jobs.smartrecruiters.com/BoschGroup/744", p.URL)

	p, ok = n.Normalize(domain.RawRecord{Kind: domain.SourceHTML, Board: "https://www.canada.ca/en/jobs.html", Label: "Taleo",
		Fields: map[string]any{"title": "Legal Student", "href": "/job/9", "default_location": "Ottawa, ON"}})
	require.True(t, ok)
	assert.Equal(t, "https://www.canada.ca/job/9", p.URL)
	assert.Equal(t, "Ottawa, ON", p.Location)
	assert.Equal(t, "Taleo", p.Source)
}

func TestNormalizeManual(t *testing.T) {
	n := New(testFilters())
	p, ok := n.Normalize(domain.RawRecord{Kind: domain.SourceManual, Fields: map[string]any{
		"company":    "Supreme Court of Canada",
		"title_hint": "Law Clerk Student Program",
		"url":        "https://www.scc-csc.ca/empl/lc-aj-eng.aspx",
		"location":   "Ottawa, ON",
		"deadline":   "2026-11-01",
		"notes":      "Apply via portal",
	}})
	require.True(t, ok)
	assert.Equal(t, "Supreme Court of Canada", p.Company)
	assert.Equal(t, "2026-11-01", p.Deadline)
	assert.Equal(t, []string{"law"}, p.Tags)
	assert.Equal(t, "Manual", p.Source)
	assert.Equal(t, "Apply via portal", p.Notes)
}

func TestNormalizeRejects(t *testing.T) {
	n := New(testFilters())
	cases := map[string]domain.RawRecord{
		"missing title": {Kind: domain.SourceGreenhouse, Fields: map[string]any{
			"absolute_url": "https://x/1", "location": map[string]any{"name": "Toronto, ON"}}},
		"missing url": {Kind: domain.SourceGreenhouse, Fields: map[string]any{
			"title": "Software Intern", "location": map[string]any{"name": "Toronto, ON"}}},
		"not a student role": {Kind: domain.SourceGreenhouse, Fields: map[string]any{
			"title": "International Sales Manager", "absolute_url": "https://x/2", "location": map[string]any{"name": "Toronto, ON"}}},
		"outside canada": {Kind: domain.SourceGreenhouse, Fields: map[string]any{
			"title": "Software Intern", "absolute_url": "https://x/3", "location": map[string]any{"name": "Seattle, WA, USA"}}},
		"no location": {Kind: domain.SourceGreenhouse, Fields: map[string]any{
			"title": "Software Intern", "absolute_url": "https://x/4"}},
		"unknown kind": {Kind: "jobvite", Fields: map[string]any{"title": "Intern"}},
		"nil fields":   {Kind: domain.SourceLever},
	}
	for name, raw := range cases {
		_, ok := n.Normalize(raw)
		assert.False(t, ok, name)
	}
}

func TestNormalizeDefaultsAndLevel(t *testing.T) {
	n := New(testFilters())
	p, ok := n.Normalize(domain.RawRecord{Kind: domain.SourceLever, Fields: map[string]any{
		"text": "PhD Research Intern", "applyUrl": "https://jobs.lever.co/x/apply", "categories": map[string]any{"location": "Canada"},
	}})
	require.True(t, ok)
	assert.Equal(t, domain.UnknownCompany, p.Company)
	assert.Equal(t, []string{domain.GeneralTag}, p.Tags)
	assert.Equal(t, domain.LevelGraduate, p.Level)
}

func TestNormalizeAllCountsRejections(t *testing.T) {
	n := New(testFilters())
	out, rejected := n.NormalizeAll([]domain.RawRecord{
		{Kind: domain.SourceManual, Company: "A", Fields: map[string]any{"url": "https://x/a", "location": "Toronto"}},
		{Kind: domain.SourceManual, Company: "B", Fields: map[string]any{"url": "https://x/b", "location": "Seattle, WA"}},
	})
	require.Len(t, out, 1)
	assert.Equal(t, 1, rejected)
	assert.Equal(t, "Internship", out[0].Role)
	assert.Equal(t, "A", out[0].Company)
}
