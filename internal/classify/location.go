package classify

import "strings"

// CanadaHints is the built-in gazetteer: provinces, territories, their postal
// abbreviations and the larger cities.
var CanadaHints = []string{
	"canada", "toronto", "ontario", "on", "ottawa", "waterloo", "kitchener", "mississauga",
	"markham", "montreal", "quebec", "qc", "laval",
	"vancouver", "burnaby", "british columbia", "bc",
	"calgary", "edmonton", "alberta", "ab", "manitoba", "mb", "winnipeg",
	"saskatchewan", "sk", "regina", "saskatoon",
	"nova scotia", "ns", "halifax", "new brunswick", "nb", "fredericton", "moncton",
	"pei", "prince edward island", "charlottetown", "newfoundland", "nl",
	"st. john's", "st johns", "yukon", "yt", "whitehorse", "northwest territories", "nt",
	"yellowknife", "nunavut", "nu", "iqaluit",
}

// workplacePhrases are dropped before matching; their "on" is not Ontario.
var workplacePhrases = []string{" on site ", " on campus ", " on location "}

// Locator decides whether a free-text location is in the target country.
type Locator struct {
	country string
	hints   []string
}

// NewLocator builds a Locator for country. Extra hints extend CanadaHints.
func NewLocator(country string, hints []string) *Locator {
	all := make([]string, 0, len(CanadaHints)+len(hints))
	all = append(all, CanadaHints...)
	all = append(all, hints...)

	l := &Locator{country: padHint(country)}
	seen := map[string]bool{}
	for _, h := range all {
		p := padHint(h)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		l.hints = append(l.hints, p)
	}
	return l
}

func padHint(h string) string {
	h = strings.TrimSpace(h)
	if h == "" {
		return ""
	}
	return pad(h)
}

// Match reports whether location names the target country or one of its
// provinces/cities as a whole token ("Washington" never matches "on").
func (l *Locator) Match(location string) bool {
	if strings.TrimSpace(location) == "" {
		return false
	}
	t := pad(location)
	for _, p := range workplacePhrases {
		for strings.Contains(t, p) {
			t = strings.ReplaceAll(t, p, " ")
		}
	}
	return l.matchPadded(t) || l.matchPadded(strings.ReplaceAll(t, ".", ""))
}

func (l *Locator) matchPadded(t string) bool {
	if l.country != "" && strings.Contains(t, l.country) {
		return true
	}
	for _, h := range l.hints {
		if strings.Contains(t, h) {
			return true
		}
	}
	return false
}

var defaultLocator = NewLocator("Canada", nil)

// IsTargetCountry matches location against the Canadian defaults.
func IsTargetCountry(location string) bool {
	return defaultLocator.Match(location)
}
