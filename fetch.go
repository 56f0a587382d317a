package xtid

import (
	"context"
	"fmt"

	stealth "github.com/anatolykoptev/go-stealth"
)

// Fetcher is the HTTP capability the engine consumes during construction.
// Implementations own all transport policy: timeouts, retries, proxies.
type Fetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// defaultUserAgent is the fallback User-Agent when none is configured.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/133.0.0.0 Safari/537.36"

// fetchHeaderOrder is the wire order of the browser-like request headers.
var fetchHeaderOrder = []string{"user-agent", "accept", "accept-language"}

// browserHeaders returns the header set x.com expects from a browser page load.
func browserHeaders(userAgent string) map[string]string {
	return map[string]string{
		"user-agent":      userAgent,
		"accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"accept-language": "en-US,en;q=0.9",
	}
}

// FetchConfig configures the bundled stealth transport.
type FetchConfig struct {
	// Proxy is an optional proxy URL for all fetches.
	Proxy string

	// UserAgent overrides the default browser User-Agent.
	UserAgent string
}

// defaults fills in zero-value config fields.
func (cfg *FetchConfig) defaults() {
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
}

// StealthFetcher is the bundled default Fetcher, built on a
// TLS-fingerprinting browser client.
type StealthFetcher struct {
	client    *stealth.BrowserClient
	userAgent string
}

// NewStealthFetcher creates the bundled transport.
func NewStealthFetcher(cfg FetchConfig) (*StealthFetcher, error) {
	cfg.defaults()

	opts := []stealth.ClientOption{
		stealth.WithHeaderOrder(fetchHeaderOrder),
	}
	if cfg.Proxy != "" {
		opts = append(opts, stealth.WithProxy(cfg.Proxy))
	}
	bc, err := stealth.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("stealth client: %w", err)
	}

	return &StealthFetcher{client: bc, userAgent: cfg.UserAgent}, nil
}

// FetchText GETs a URL and returns its body. Non-200 responses are
// transport errors; the engine never interprets them.
func (f *StealthFetcher) FetchText(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &TransportError{URL: url, Err: err}
	}

	body, _, status, err := f.client.DoWithHeaderOrder("GET", url, browserHeaders(f.userAgent), nil, fetchHeaderOrder)
	if err != nil {
		return "", &TransportError{URL: url, Err: err}
	}
	if status != 200 {
		return "", &TransportError{URL: url, Status: status}
	}
	return string(body), nil
}
