package util

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LooksLikeJunkTitle catches navigation anchors ("View all jobs", "Apply")
// that career pages mix in with real postings.
func LooksLikeJunkTitle(t string) bool {
	l := strings.ToLower(CleanText(t))
	if l == "" {
		return true
	}
	switch l {
	case "apply", "apply now", "view", "view all", "view all jobs", "next", "previous", "back", "home":
		return true
	}
	return strings.HasPrefix(l, "view all") || strings.HasPrefix(l, "see all")
}

var locationSelectors = []string{
	".location",
	".job-location",
	".job__location",
	".location--small",
	"[data-testid='job-location']",
	"[data-testid='location']",
	"[data-automation-id='locations']",
}

// FindLocation looks for a location element near an anchor: inside each
// ancestor up to the row/list item level, then in labeled text.
func FindLocation(a *goquery.Selection) string {
	cur := a
	for depth := 0; depth < 4 && cur.Length() > 0; depth++ {
		cur = cur.Parent()
		for _, sel := range locationSelectors {
			if t := CleanText(cur.Find(sel).First().Text()); t != "" {
				return NormalizeLocation(t)
			}
		}
		if goquery.NodeName(cur) == "tr" || goquery.NodeName(cur) == "li" {
			if loc := ExtractLocationFromLabeledText(cur.Text()); loc != "" {
				return NormalizeLocation(loc)
			}
			break
		}
	}
	return ""
}

// ExtractLocationFromLabeledText extracts what follows a "Location:" label.
func ExtractLocationFromLabeledText(s string) string {
	low := strings.ToLower(s)

	labels := []string{
		"job location:",
		"locations:",
		"location:",
	}

	for _, lab := range labels {
		if i := strings.Index(low, lab); i >= 0 {
			start := i + len(lab)
			rest := strings.TrimSpace(s[start:])

			// stop at newline-ish boundaries if present
			for _, cut := range []string{"\n", "\r", " | ", " · "} {
				if j := strings.Index(rest, cut); j >= 0 {
					rest = rest[:j]
				}
			}

			rest = CleanText(rest)
			if rest != "" && len(rest) <= 80 {
				return rest
			}
		}
	}
	return ""
}
