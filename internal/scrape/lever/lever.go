package lever

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

const apiBase = "https://api.lever.co/v0/postings"

type Config struct {
	Boards []domain.Board // Board is a slug or a full postings URL
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

func (s *Scraper) Name() string { return "lever" }

func (s *Scraper) Fetch(ctx context.Context) (types.ScrapeResult, error) {
	recs, failed := util.FetchBoards(ctx, s.Name(), s.cfg.Boards, s.cfg.Workers, s.cfg.Timeout, s.fetchBoard)
	return types.ScrapeResult{Source: s.Name(), Records: recs, Failed: failed}, nil
}

func postingsURL(board string) (string, error) {
	board = strings.TrimSpace(board)
	if board == "" {
		return "", fmt.Errorf("empty board")
	}
	if strings.HasPrefix(board, "http://") || strings.HasPrefix(board, "https://") {
		board = strings.TrimRight(board, "/")
		if strings.HasSuffix(board, ".json") || strings.Contains(board, "mode=json") {
			return board, nil
		}
		return board + ".json", nil
	}
	return fmt.Sprintf("%s/%s?mode=json", apiBase, url.PathEscape(board)), nil
}

func (s *Scraper) fetchBoard(ctx context.Context, b domain.Board) ([]domain.RawRecord, error) {
	u, err := postingsURL(b.Board)
	if err != nil {
		return nil, err
	}
	var postings []map[string]any
	if err := util.GetJSON(ctx, s.hc, s.limiter, s.cfg.UserAgent, u, &postings); err != nil {
		return nil, fmt.Errorf("lever: %w", err)
	}

	out := make([]domain.RawRecord, 0, len(postings))
	for _, p := range postings {
		if p == nil {
			continue
		}
		out = append(out, util.Record(domain.SourceLever, b, p))
	}
	return out, nil
}
