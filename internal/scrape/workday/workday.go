package workday

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"

	"internhunt-engine/internal/domain"
	"internhunt-engine/internal/scrape/types"
	"internhunt-engine/internal/scrape/util"
)

type Config struct {
	Boards []domain.Board // Board needs the full Workday job board URL
	types.Options
}

type Scraper struct {
	cfg     Config
	limiter *util.HostLimiter

	mu          sync.Mutex
	blockedHost map[string]bool
}

type board struct {
	Scheme string
	Host   string
	Tenant string
	Site   string
	Locale string
}

func New(cfg Config, limiter *util.HostLimiter) *Scraper {
	cfg.Options = cfg.Options.WithDefaults()
	return &Scraper{
		cfg:         cfg,
		limiter:     limiter,
		blockedHost: map[string]bool{},
	}
}

func (s *Scraper) Name() string { return "workday" }

type wdRequest struct {
	AppliedFacets map[string]any `json:"appliedFacets"`
	Limit         int            `json:"limit"`
	Offset        int            `json:"offset"`
	SearchText    string         `json:"searchText"`
}

type wdResponse struct {
	Total       int              `json:"total"`
	JobPostings []map[string]any `json:"jobPostings"`
}

var ErrWorkdayBlocked = errors.New("workday blocked by cloudflare")

func (s *Scraper) newClient() *http.Client {
	jar, _ := cookiejar.New(nil)
	return &http.Client{
		Jar:     jar,
		Timeout: s.cfg.Timeout,
	}
}

func (s *Scraper) Fetch(ctx context.Context) (types.ScrapeResult, error) {
	recs, failed := util.FetchBoards(ctx, s.Name(), s.cfg.Boards, s.cfg.Workers, s.cfg.Timeout, s.fetchBoard)
	return types.ScrapeResult{Source: s.Name(), Records: recs, Failed: failed}, nil
}

func parseBoardURL(raw string) (board, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return board{}, errors.New("empty board url")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return board{}, err
	}
	if u.Scheme == "" {
		u.Scheme = "https"
	}
	if u.Host == "" {
		return board{}, fmt.Errorf("missing host in %q", raw)
	}

	parts := strings.Split(u.Hostname(), ".")
	tenant := parts[0]
	if len(parts) < 3 {
		// non-myworkdayjobs hosts carry the tenant as ?tenant=
		tenant = u.Query().Get("tenant")
		if tenant == "" {
			return board{}, fmt.Errorf("unexpected host %q", u.Host)
		}
	}

	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segs) == 0 || segs[0] == "" {
		return board{}, fmt.Errorf("unexpected path %q", u.Path)
	}

	locale := ""
	if len(segs) >= 2 && looksLikeLocale(segs[0]) {
		locale = normalizeLocale(segs[0])
		segs = segs[1:]
	}

	site := segs[len(segs)-1]
	if site == "" {
		return board{}, fmt.Errorf("could not derive site from path %q", u.Path)
	}

	return board{
		Scheme: u.Scheme,
		Host:   u.Host,
		Tenant: tenant,
		Site:   site,
		Locale: locale,
	}, nil
}

// accepts en-US, en-us, etc.
func looksLikeLocale(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) != 5 || s[2] != '-' {
		return false
	}
	return isAlpha(s[0:2]) && isAlpha(s[3:5])
}

func normalizeLocale(s string) string {
	s = strings.TrimSpace(s)
	if len(s) == 5 && s[2] == '-' {
		return strings.ToLower(s[0:2]) + "-" + strings.ToUpper(s[3:5])
	}
	return s
}

func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')) {
			return false
		}
	}
	return true
}

func (b board) origin() string {
	return fmt.Sprintf("%s://%s", b.Scheme, b.Host)
}

func (b board) jobsEndpoint() string {
	base := fmt.Sprintf("%s/wday/cxs/%s/%s/jobs", b.origin(), b.Tenant, b.Site)
	if b.Locale == "" {
		return base
	}
	return base + "?locale=" + url.QueryEscape(b.Locale)
}

func (s *Scraper) isBlocked(host string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blockedHost[host]
}

func (s *Scraper) markBlocked(host string) {
	s.mu.Lock()
	s.blockedHost[host] = true
	s.mu.Unlock()
	log.Printf("[ats:workday] host=%q blocked by Cloudflare; skipping remaining boards", host)
}

func (s *Scraper) fetchBoard(ctx context.Context, co domain.Board) ([]domain.RawRecord, error) {
	b, err := parseBoardURL(co.Board)
	if err != nil {
		return nil, err
	}
	if s.isBlocked(b.Host) {
		return nil, ErrWorkdayBlocked
	}

	// per-board client so cookies/CSRF persist across pages
	hc := s.newClient()
	endpoint := b.jobsEndpoint()

	// Bootstrap once; some tenants require CALYPSO_CSRF_TOKEN + CXS_SESSION.
	csrf, bootErr := bootstrapSession(ctx, hc, s.cfg.UserAgent, co.Board)
	if errors.Is(bootErr, ErrWorkdayBlocked) {
		s.markBlocked(b.Host)
		return nil, ErrWorkdayBlocked
	}

	limit := 20
	offset := 0
	var out []domain.RawRecord

	for {
		select {
		case <-ctx.Done():
			return out, ctx.Err()
		default:
		}

		payload, _ := json.Marshal(wdRequest{
			AppliedFacets: map[string]any{},
			Limit:         limit,
			Offset:        offset,
		})

		status, data, err := s.postJobs(ctx, hc, b, co.Board, endpoint, payload, csrf)
		if err != nil {
			return out, err
		}
		if status >= 400 {
			// If we already bootstrapped, don't loop.
			if bootErr == nil {
				return out, fmt.Errorf("workday status %d body=%s", status, util.Truncate(string(data), 240))
			}
			csrf2, err2 := bootstrapSession(ctx, hc, s.cfg.UserAgent, co.Board)
			if errors.Is(err2, ErrWorkdayBlocked) {
				s.markBlocked(b.Host)
				return out, ErrWorkdayBlocked
			}
			bootErr = nil
			csrf = csrf2

			status, data, err = s.postJobs(ctx, hc, b, co.Board, endpoint, payload, csrf)
			if err != nil {
				return out, err
			}
			if status >= 400 {
				return out, fmt.Errorf("workday retry status %d body=%s", status, util.Truncate(string(data), 240))
			}
		}

		var jr wdResponse
		if err := json.Unmarshal(data, &jr); err != nil {
			return out, fmt.Errorf("workday decode: %w body=%s", err, util.Truncate(string(data), 240))
		}
		if len(jr.JobPostings) == 0 {
			break
		}
		for _, p := range jr.JobPostings {
			if p == nil {
				continue
			}
			// externalPath is resolved on the board host by the normalizer
			out = append(out, util.Record(domain.SourceWorkday, co, p))
		}

		offset += limit
		if jr.Total > 0 && offset >= jr.Total {
			break
		}
		if offset > 5000 {
			break
		}
	}

	return out, nil
}

func (s *Scraper) postJobs(ctx context.Context, hc *http.Client, b board, referer, endpoint string, payload []byte, csrf string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", b.origin())
	req.Header.Set("Referer", strings.TrimRight(referer, "/"))
	lang := b.Locale
	if lang == "" {
		lang = "en-US"
	}
	req.Header.Set("Accept-Language", lang)
	if csrf != "" {
		req.Header.Set("x-calypso-csrf-token", csrf)
	}

	if s.limiter != nil {
		if err := s.limiter.WaitURL(ctx, endpoint); err != nil {
			return 0, nil, err
		}
	}
	res, err := hc.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("workday post jobs: %w", err)
	}
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, nil, fmt.Errorf("workday read body: %w", err)
	}
	return res.StatusCode, data, nil
}

func bootstrapSession(ctx context.Context, client *http.Client, userAgent, boardURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, boardURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	// small preview for CF detection, then discard the rest
	previewBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	_, _ = io.Copy(io.Discard, resp.Body)

	if looksLikeCloudflareBlock(resp, string(previewBytes)) {
		return "", ErrWorkdayBlocked
	}

	u, _ := url.Parse(boardURL)
	for _, c := range client.Jar.Cookies(u) {
		if c.Name == "CALYPSO_CSRF_TOKEN" && c.Value != "" {
			return c.Value, nil
		}
	}
	return "", fmt.Errorf("workday bootstrap: missing CALYPSO_CSRF_TOKEN cookie (status=%d)", resp.StatusCode)
}

func looksLikeCloudflareBlock(resp *http.Response, bodyPreview string) bool {
	server := strings.ToLower(resp.Header.Get("Server"))
	cfRay := resp.Header.Get("CF-RAY")

	if strings.Contains(server, "cloudflare") && cfRay != "" {
		return true
	}

	low := strings.ToLower(bodyPreview)
	if strings.Contains(low, "/cdn-cgi/") ||
		(strings.Contains(low, "cloudflare") && strings.Contains(low, "checking your browser")) ||
		(strings.Contains(low, "attention required") && strings.Contains(low, "cloudflare")) {
		return true
	}

	return resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests
}
