package greenhouse

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

const apiBase = "https://boards-api.greenhouse.io/v1/boards"

type Config struct {
	Boards []domain.Board // Board is a slug or a full API base
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

func (s *Scraper) Name() string { return "greenhouse" }

type jobsResponse struct {
	Jobs []map[string]any `json:"jobs"`
}

func (s *Scraper) Fetch(ctx context.Context) (types.ScrapeResult, error) {
	recs, failed := util.FetchBoards(ctx, s.Name(), s.cfg.Boards, s.cfg.Workers, s.cfg.Timeout, s.fetchBoard)
	return types.ScrapeResult{Source: s.Name(), Records: recs, Failed: failed}, nil
}

func jobsURL(board string) (string, error) {
	board = strings.TrimSpace(board)
	if board == "" {
		return "", fmt.Errorf("empty board")
	}
	if strings.HasPrefix(board, "http://") || strings.HasPrefix(board, "https://") {
		return strings.TrimRight(board, "/") + "/jobs", nil
	}
	return fmt.Sprintf("%s/%s/jobs", apiBase, url.PathEscape(board)), nil
}

func (s *Scraper) fetchBoard(ctx context.Context, b domain.Board) ([]domain.RawRecord, error) {
	u, err := jobsURL(b.Board)
	if err != nil {
		return nil, err
	}
	var jr jobsResponse
	if err := util.GetJSON(ctx, s.hc, s.limiter, s.cfg.UserAgent, u, &jr); err != nil {
		return nil, fmt.Errorf("greenhouse: %w", err)
	}

	out := make([]domain.RawRecord, 0, len(jr.Jobs))
	for _, j := range jr.Jobs {
		if j == nil {
			continue
		}
		out = append(out, util.Record(domain.SourceGreenhouse, b, j))
	}
	return out, nil
}
