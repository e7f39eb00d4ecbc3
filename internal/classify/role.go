package classify

import (
	"regexp"
	"strings"
)

// DefaultInternMarkers are the role words used when the config has none.
var DefaultInternMarkers = []string{"intern", "internship", "co-op", "coop", "student", "summer", "placement"}

// RoleMatcher matches internship / co-op / student titles on whole words.
type RoleMatcher struct {
	re *regexp.Regexp
}

// NewRoleMatcher compiles markers into one case-insensitive word-boundary
// alternation. A hyphen or space inside a marker matches "-", " " or nothing,
// so "co-op" also covers "co op" and "coop".
func NewRoleMatcher(markers []string) *RoleMatcher {
	if len(markers) == 0 {
		markers = DefaultInternMarkers
	}
	return &RoleMatcher{re: compileMarkers(markers)}
}

func compileMarkers(markers []string) *regexp.Regexp {
	alts := make([]string, 0, len(markers))
	for _, m := range markers {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		alts = append(alts, markerPattern(m))
	}
	if len(alts) == 0 {
		// matches nothing
		return regexp.MustCompile(`[^\s\S]`)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(alts, "|") + `)\b`)
}

func markerPattern(m string) string {
	words := strings.FieldsFunc(m, func(r rune) bool { return r == '-' || r == ' ' })
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(words, `[- ]?`)
}

func (m *RoleMatcher) Match(title string) bool {
	if strings.TrimSpace(title) == "" {
		return false
	}
	return m.re.MatchString(title)
}

var defaultRoles = NewRoleMatcher(nil)

// IsTargetRole matches title against DefaultInternMarkers.
func IsTargetRole(title string) bool {
	return defaultRoles.Match(title)
}
