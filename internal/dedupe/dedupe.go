// Package dedupe collapses duplicate postings within one batch.
package dedupe

import (
	"strings"

	"internhunt-engine/internal/domain"
)

type key struct {
	company, role, url string
}

func keyOf(p domain.Posting) key {
	return key{
		company: strings.ToLower(p.Company),
		role:    strings.ToLower(p.Role),
		url:     strings.ToLower(p.URL),
	}
}

// Postings keeps one posting per (company, role, url), compared
// case-insensitively. A later duplicate replaces an earlier one in place, so
// the output follows first-seen order while carrying the last-seen values.
func Postings(in []domain.Posting) []domain.Posting {
	idx := make(map[key]int, len(in))
	out := make([]domain.Posting, 0, len(in))
	for _, p := range in {
		k := keyOf(p)
		if i, ok := idx[k]; ok {
			out[i] = p
			continue
		}
		idx[k] = len(out)
		out = append(out, p)
	}
	return out
}
