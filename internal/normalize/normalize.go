// Package normalize maps raw board records onto domain.Posting and decides
// which of them are in scope.
package normalize

import (
	"strings"

	"internhunt-engine/internal/classify"
	"internhunt-engine/internal/config"
	"internhunt-engine/internal/domain"
	"internhunt-engine/internal/scrape/util"
)

// fields is what every per-source mapper extracts from a raw record.
type fields struct {
	company  string
	title    string
	url      string
	location string
	deadline string
	tags     []string
	notes    string
}

type mapper func(raw domain.RawRecord) fields

var mappers = map[domain.SourceKind]mapper{
	domain.SourceGreenhouse:      greenhouseFields,
	domain.SourceLever:           leverFields,
	domain.SourceAshby:           ashbyFields,
	domain.SourceWorkday:         workdayFields,
	domain.SourceSmartRecruiters: smartRecruitersFields,
	domain.SourceHTML:            htmlFields,
	domain.SourceManual:          manualFields,
}

type Normalizer struct {
	country string
	loc     *classify.Locator
	roles   *classify.RoleMatcher
	levels  *classify.Leveler
	cats    classify.Categories
}

func New(f config.Filters) *Normalizer {
	country := strings.TrimSpace(f.Country)
	if country == "" {
		country = "Canada"
	}
	return &Normalizer{
		country: country,
		loc:     classify.NewLocator(country, f.LocationHints),
		roles:   classify.NewRoleMatcher(f.InternMarkers),
		levels:  classify.NewLeveler(f.GraduateMarkers),
		cats: classify.Categories{
			Buckets:      f.Categories,
			CompanyHints: f.CompanyHints,
		},
	}
}

// Normalize returns the canonical posting for raw, or false when the record
// is incomplete, not an internship-type role, or outside the target country.
func (n *Normalizer) Normalize(raw domain.RawRecord) (domain.Posting, bool) {
	m, ok := mappers[raw.Kind]
	if !ok || raw.Fields == nil {
		return domain.Posting{}, false
	}
	f := m(raw)

	title := strings.TrimSpace(f.title)
	link := util.CanonicalizeURL(f.url)
	if title == "" || link == "" {
		return domain.Posting{}, false
	}
	if !n.roles.Match(title) {
		return domain.Posting{}, false
	}
	location := util.CleanText(f.location)
	if !n.loc.Match(location) {
		return domain.Posting{}, false
	}

	company := strings.TrimSpace(f.company)
	if company == "" {
		company = strings.TrimSpace(raw.Company)
	}
	if company == "" {
		company = domain.UnknownCompany
	}
	deadline := strings.TrimSpace(f.deadline)
	if deadline == "" {
		deadline = domain.RollingDeadline
	}

	tags := classify.AssignTags(company, title, f.tags, n.cats)
	source := raw.Label
	if source == "" {
		source = raw.Kind.Label()
	}

	return domain.Posting{
		Company:  company,
		Role:     title,
		Location: location,
		Country:  n.country,
		Deadline: deadline,
		Status:   domain.StatusOpen,
		Tags:     tags,
		URL:      link,
		Level:    n.levels.Infer(title, tags),
		Source:   source,
		Notes:    strings.TrimSpace(f.notes),
	}, true
}

// NormalizeAll keeps the accepted postings of raws in input order and reports
// how many were rejected.
func (n *Normalizer) NormalizeAll(raws []domain.RawRecord) (out []domain.Posting, rejected int) {
	out = make([]domain.Posting, 0, len(raws))
	for _, r := range raws {
		p, ok := n.Normalize(r)
		if !ok {
			rejected++
			continue
		}
		out = append(out, p)
	}
	return out, rejected
}
