package scrape

import (
	"strings"
	"time"

	"internhunt-engine/internal/config"
	"internhunt-engine/internal/domain"
	"internhunt-engine/internal/scrape/ashby"
	"internhunt-engine/internal/scrape/greenhouse"
	"internhunt-engine/internal/scrape/html"
	"internhunt-engine/internal/scrape/lever"
	"internhunt-engine/internal/scrape/manual"
	"internhunt-engine/internal/scrape/smartrecruiters"
	"internhunt-engine/internal/scrape/types"
	"internhunt-engine/internal/scrape/util"
	"internhunt-engine/internal/scrape/workday"
)

// MapBoards turns config board entries into domain boards, dropping entries
// without a board and defaulting the display name to the board.
func MapBoards(in []config.Board) []domain.Board {
	out := make([]domain.Board, 0, len(in))
	for _, c := range in {
		board := strings.TrimSpace(c.Board)
		if board == "" {
			continue
		}
		name := strings.TrimSpace(c.Name)
		if name == "" {
			name = board
		}
		out = append(out, domain.Board{
			Name:     name,
			Board:    board,
			Label:    strings.TrimSpace(c.Label),
			Location: strings.TrimSpace(c.Location),
		})
	}
	return out
}

// Fetchers builds one fetcher per non-empty source list, in the fixed order
// greenhouse, lever, ashby, workday, smartrecruiters, html, manual. Manual
// comes last so curated entries override scraped ones on dedupe.
func Fetchers(cfg config.Config, limiter *util.HostLimiter) []types.Fetcher {
	opts := types.Options{
		UserAgent: cfg.Fetch.UserAgent,
		Timeout:   time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second,
		Workers:   cfg.Fetch.Concurrency,
	}
	src := cfg.Sources

	var out []types.Fetcher
	if b := MapBoards(src.Greenhouse); len(b) > 0 {
		out = append(out, greenhouse.New(greenhouse.Config{Boards: b, Options: opts}, limiter))
	}
	if b := MapBoards(src.Lever); len(b) > 0 {
		out = append(out, lever.New(lever.Config{Boards: b, Options: opts}, limiter))
	}
	if b := MapBoards(src.Ashby); len(b) > 0 {
		out = append(out, ashby.New(ashby.Config{Boards: b, Options: opts}, limiter))
	}
	if b := MapBoards(src.Workday); len(b) > 0 {
		out = append(out, workday.New(workday.Config{Boards: b, Options: opts}, limiter))
	}
	if b := MapBoards(src.SmartRecruiters); len(b) > 0 {
		out = append(out, smartrecruiters.New(smartrecruiters.Config{Boards: b, Options: opts}, limiter))
	}
	if b := MapBoards(src.HTML); len(b) > 0 {
		out = append(out, html.New(html.Config{Boards: b, Options: opts}, limiter))
	}
	if len(cfg.Manual) > 0 {
		out = append(out, manual.New(cfg.Manual))
	}
	return out
}
