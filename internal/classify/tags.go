package classify

import (
	"sort"
	"strings"

	"internhunt-engine/internal/domain"
)

// Categories is the bucket table: bucket name -> keyword triggers, plus the
// company-name overrides for employers whose titles are too generic.
type Categories struct {
	Buckets      map[string][]string
	CompanyHints map[string][]string
}

// AssignTags returns the sorted bucket keys for a posting. Triggers are
// matched as substrings of the lowercased title; incoming tags are kept only
// when they name a bucket; company hints are unioned in; an empty result
// becomes ["general"].
func AssignTags(company, title string, incoming []string, cats Categories) []string {
	out := map[string]struct{}{}

	text := strings.ToLower(title)
	for bucket, kws := range cats.Buckets {
		for _, kw := range kws {
			kw = strings.ToLower(kw)
			if kw != "" && strings.Contains(text, kw) {
				out[bucket] = struct{}{}
				break
			}
		}
	}

	for _, t := range incoming {
		if b, ok := matchBucket(t, cats.Buckets); ok {
			out[b] = struct{}{}
		}
	}

	cl := strings.ToLower(company)
	if cl != "" {
		for key, buckets := range cats.CompanyHints {
			if key != "" && strings.Contains(cl, strings.ToLower(key)) {
				for _, b := range buckets {
					out[b] = struct{}{}
				}
			}
		}
	}

	if len(out) == 0 {
		return []string{domain.GeneralTag}
	}
	tags := make([]string, 0, len(out))
	for t := range out {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// matchBucket compares an upstream tag with bucket names, treating spaces and
// hyphens as equivalent ("Data ML AI" names "data-ml-ai").
func matchBucket(tag string, buckets map[string][]string) (string, bool) {
	t := collapse(strings.ToLower(tag))
	if t == "" {
		return "", false
	}
	if _, ok := buckets[t]; ok {
		return t, true
	}
	hyphened := strings.ReplaceAll(t, " ", "-")
	spaced := strings.ReplaceAll(t, "-", " ")
	for b := range buckets {
		if b == hyphened || strings.ReplaceAll(b, "-", " ") == spaced {
			return b, true
		}
	}
	return "", false
}
