package smartrecruiters

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"internhunt-engine/internal/domain"
	"internhunt-engine/internal/scrape/types"
	"internhunt-engine/internal/scrape/util"
)

const apiBase = "https://api.smartrecruiters.com/v1/companies"

type Config struct {
	// Board is the SmartRecruiters company identifier used in URLs, e.g.
	// https://jobs.smartrecruiters.com/<board>
	Boards []domain.Board
	types.Options

	// APIBase overrides the public API root (tests).
	APIBase string
}

type Scraper struct {
	cfg     Config
	hc      *http.Client
	limiter *util.HostLimiter
}

func New(cfg Config, limiter *util.HostLimiter) *Scraper {
	cfg.Options = cfg.Options.WithDefaults()
	if cfg.APIBase == "" {
		cfg.APIBase = apiBase
	}
	return &Scraper{
		cfg:     cfg,
		hc:      &http.Client{Timeout: cfg.Timeout},
		limiter: limiter,
	}
}

func (s *Scraper) Name() string { return "smartrecruiters" }

// Response schema (public API) is typically:
// { "content": [...], "totalFound": N, "offset": O, "limit": L }
type postingsResponse struct {
	Content    []map[string]any `json:"content"`
	TotalFound int              `json:"totalFound"`
}

func (s *Scraper) Fetch(ctx context.Context) (types.ScrapeResult, error) {
	recs, failed := util.FetchBoards(ctx, s.Name(), s.cfg.Boards, s.cfg.Workers, s.cfg.Timeout, s.fetchBoard)
	return types.ScrapeResult{Source: s.Name(), Records: recs, Failed: failed}, nil
}

func (s *Scraper) fetchBoard(ctx context.Context, b domain.Board) ([]domain.RawRecord, error) {
	slug := strings.TrimSpace(b.Board)
	if slug == "" {
		return nil, fmt.Errorf("empty slug")
	}
	base := fmt.Sprintf("%s/%s/postings", strings.TrimRight(s.cfg.APIBase, "/"), url.PathEscape(slug))

	limit := 100
	offset := 0
	var out []domain.RawRecord

	for {
		select {
		case <-ctx.Done():
			return out, ctx.Err()
		default:
		}

		u := fmt.Sprintf("%s?limit=%d&offset=%d", base, limit, offset)
		var pr postingsResponse
		if err := util.GetJSON(ctx, s.hc, s.limiter, s.cfg.UserAgent, u, &pr); err != nil {
			return out, fmt.Errorf("smartrecruiters: %w", err)
		}
		if len(pr.Content) == 0 {
			break
		}
		for _, p := range pr.Content {
			if p == nil {
				continue
			}
			out = append(out, util.Record(domain.SourceSmartRecruiters, b, p))
		}

		offset += limit
		if pr.TotalFound > 0 && offset >= pr.TotalFound {
			break
		}
		if len(pr.Content) < limit || offset > 5000 {
			break
		}
	}

	return out, nil
}
