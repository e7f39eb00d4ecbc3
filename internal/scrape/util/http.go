package util

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// GetJSON issues a rate-limited GET and decodes a JSON body into out.
func GetJSON(ctx context.Context, hc *http.Client, lim *HostLimiter, userAgent, u string, out any) error {
	res, err := Get(ctx, hc, lim, userAgent, u, "application/json")
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", u, err)
	}
	return nil
}

// Get issues a rate-limited GET and fails on 4xx/5xx. The caller closes the body.
func Get(ctx context.Context, hc *http.Client, lim *HostLimiter, userAgent, u, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	if lim != nil {
		if err := lim.WaitURL(ctx, u); err != nil {
			return nil, err
		}
	}
	res, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", u, err)
	}
	if res.StatusCode >= 400 {
		preview, _ := io.ReadAll(io.LimitReader(res.Body, 240))
		res.Body.Close()
		return nil, fmt.Errorf("status %d body=%s", res.StatusCode, Truncate(string(preview), 240))
	}
	return res, nil
}

func Truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
