// Package manual serves the curated entries from the config file as a source.
package manual

import (
	"context"
	"log"

	"internhunt-engine/internal/config"
	"internhunt-engine/internal/domain"
	"internhunt-engine/internal/scrape/types"
)

type Scraper struct {
	entries []config.ManualEntry
}

func New(entries []config.ManualEntry) *Scraper {
	return &Scraper{entries: entries}
}

func (s *Scraper) Name() string { return "manual" }

func (s *Scraper) Fetch(ctx context.Context) (types.ScrapeResult, error) {
	out := make([]domain.RawRecord, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, domain.RawRecord{
			Kind:    domain.SourceManual,
			Company: e.Company,
			Fields:  fields(e),
		})
	}
	log.Printf("[manual] Processed: %d", len(out))
	return types.ScrapeResult{Source: s.Name(), Records: out}, ctx.Err()
}

func fields(e config.ManualEntry) map[string]any {
	m := map[string]any{
		"company":    e.Company,
		"title_hint": e.TitleHint,
		"role":       e.Role,
		"url":        e.URL,
		"location":   e.Location,
		"deadline":   e.Deadline,
		"notes":      e.Notes,
	}
	if len(e.Tags) > 0 {
		tags := make([]any, 0, len(e.Tags))
		for _, t := range e.Tags {
			tags = append(tags, t)
		}
		m["tags"] = tags
	}
	return m
}
