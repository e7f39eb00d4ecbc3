package registry

import (
	"strings"

	"internhunt-engine/internal/domain"
)

// Filter narrows a listing. Zero values match everything; string fields
// compare case-insensitively.
type Filter struct {
	Status  string // Open | Closed
	Tag     string
	Level   string // Undergraduate | Graduate
	Company string // substring
	Query   string // substring of company, role or location
	Limit   int
}

func (f Filter) Match(e domain.Entry) bool {
	if f.Status != "" && !strings.EqualFold(string(e.Status), f.Status) {
		return false
	}
	if f.Tag != "" && !e.HasTag(f.Tag) {
		return false
	}
	if f.Level != "" && !strings.EqualFold(string(e.Level), f.Level) {
		return false
	}
	if f.Company != "" && !containsFold(e.Company, f.Company) {
		return false
	}
	if f.Query != "" &&
		!containsFold(e.Company, f.Query) &&
		!containsFold(e.Role, f.Query) &&
		!containsFold(e.Location, f.Query) {
		return false
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(sub)))
}
