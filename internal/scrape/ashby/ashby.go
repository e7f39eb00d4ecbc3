package ashby

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"internhunt-engine/internal/domain"
	"internhunt-engine/internal/scrape/types"
	"internhunt-engine/internal/scrape/util"
)

const apiBase = "https://api.ashbyhq.com/posting-api/job-board"

type Config struct {
	Boards []domain.Board // Board is a slug or a full job-board API URL
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

func (s *Scraper) Name() string { return "ashby" }

func (s *Scraper) Fetch(ctx context.Context) (types.ScrapeResult, error) {
	recs, failed := util.FetchBoards(ctx, s.Name(), s.cfg.Boards, s.cfg.Workers, s.cfg.Timeout, s.fetchBoard)
	return types.ScrapeResult{Source: s.Name(), Records: recs, Failed: failed}, nil
}

func boardURL(board string) (string, error) {
	board = strings.TrimSpace(board)
	if board == "" {
		return "", fmt.Errorf("empty board")
	}
	if strings.HasPrefix(board, "http://") || strings.HasPrefix(board, "https://") {
		return board, nil
	}
	return fmt.Sprintf("%s/%s", apiBase, url.PathEscape(board)), nil
}

// decodeJobs accepts both {"jobs":[...]} and a bare array.
func decodeJobs(raw json.RawMessage) ([]map[string]any, error) {
	var wrapped struct {
		Jobs []map[string]any `json:"jobs"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		return wrapped.Jobs, nil
	}
	var bare []map[string]any
	if err := json.Unmarshal(raw, &bare); err != nil {
		return nil, err
	}
	return bare, nil
}

func (s *Scraper) fetchBoard(ctx context.Context, b domain.Board) ([]domain.RawRecord, error) {
	u, err := boardURL(b.Board)
	if err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := util.GetJSON(ctx, s.hc, s.limiter, s.cfg.UserAgent, u, &raw); err != nil {
		return nil, fmt.Errorf("ashby: %w", err)
	}
	jobs, err := decodeJobs(raw)
	if err != nil {
		return nil, fmt.Errorf("ashby decode: %w", err)
	}

	out := make([]domain.RawRecord, 0, len(jobs))
	for _, j := range jobs {
		if j == nil {
			continue
		}
		out = append(out, util.Record(domain.SourceAshby, b, j))
	}
	return out, nil
}
