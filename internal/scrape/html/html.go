// Package html scrapes plain career pages (Workday-HTML, Taleo, generic
// listings) where no JSON API is available.
package html

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"internhunt-engine/internal/domain"
	"internhunt-engine/internal/scrape/types"
	"internhunt-engine/internal/scrape/util"

	"github.com/PuerkitoBio/goquery"
)

type Config struct {
	Boards []domain.Board // Board is the page URL; Location the fallback location
	types.Options
}

type Scraper struct {
	cfg     Config
	hc      *http.Client
	limiter *util.HostLimiter
}

func New(cfg Config, limiter *util.HostLimiter) *Scraper {
	cfg.Options = cfg.Options.WithDefaults()
	return &Scraper{
		cfg:     cfg,
		hc:      &http.Client{Timeout: cfg.Timeout},
		limiter: limiter,
	}
}

func (s *Scraper) Name() string { return "html" }

func (s *Scraper) Fetch(ctx context.Context) (types.ScrapeResult, error) {
	recs, failed := util.FetchBoards(ctx, s.Name(), s.cfg.Boards, s.cfg.Workers, s.cfg.Timeout, s.fetchBoard)
	return types.ScrapeResult{Source: s.Name(), Records: recs, Failed: failed}, nil
}

func (s *Scraper) fetchBoard(ctx context.Context, b domain.Board) ([]domain.RawRecord, error) {
	if strings.TrimSpace(b.Board) == "" {
		return nil, fmt.Errorf("empty board url")
	}
	res, err := util.Get(ctx, s.hc, s.limiter, s.cfg.UserAgent, b.Board, "text/html,application/xhtml+xml")
	if err != nil {
		return nil, fmt.Errorf("html: %w", err)
	}
	defer res.Body.Close()

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("html parse: %w", err)
	}
	return Extract(doc, b), nil
}

// Extract turns every usable anchor on the page into a raw record.
func Extract(doc *goquery.Document, b domain.Board) []domain.RawRecord {
	seen := map[string]bool{}
	var out []domain.RawRecord

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		if skipHref(href) {
			return
		}
		title := util.CleanText(a.Text())
		if title == "" || util.LooksLikeJunkTitle(title) {
			return
		}
		key := href + "\x00" + title
		if seen[key] {
			return
		}
		seen[key] = true

		fields := map[string]any{
			"title": title,
			"href":  href,
		}
		if loc := util.FindLocation(a); loc != "" {
			fields["location"] = loc
		}
		if b.Location != "" {
			fields["default_location"] = b.Location
		}
		out = append(out, util.Record(domain.SourceHTML, b, fields))
	})
	return out
}

func skipHref(href string) bool {
	if href == "" || strings.HasPrefix(href, "#") {
		return true
	}
	low := strings.ToLower(href)
	return strings.HasPrefix(low, "javascript:") || strings.HasPrefix(low, "mailto:") || strings.HasPrefix(low, "tel:")
}
