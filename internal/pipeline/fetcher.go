package pipeline

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ovelis/leaderwatch/internal/cache"
	"github.com/ovelis/leaderwatch/internal/model"
	"github.com/ovelis/leaderwatch/internal/util"
)

const (
	fetchMaxAttempts = 3
	fetchBackoffBase = 1 * time.Second
)

// Overridable for fast tests
var fetchSleepFunc = time.Sleep

// Fetcher retrieves page markup over HTTP with retry, an optional in-run
// cache and optional robots.txt compliance
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	pageCache  cache.PageCache
	cacheTTL   time.Duration
	robots     *util.RobotsChecker
}

// NewFetcher creates a fetcher from run configuration
func NewFetcher(cfg model.Config) *Fetcher {
	transport := &http.Transport{
		Proxy: util.NewProxyFunc(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy),
	}
	if cfg.HTTP.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	f := &Fetcher{
		httpClient: &http.Client{
			Timeout:   cfg.HTTP.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.HTTP.UserAgent,
		maxBytes:  cfg.HTTP.MaxBodyBytes,
	}

	if cfg.Cache.Enabled {
		f.pageCache = cache.NewMemoryPageCache(cfg.Cache.TTL)
		f.cacheTTL = cfg.Cache.TTL
	}
	if cfg.Robots.Enabled {
		f.robots = util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	}

	return f
}

// FetchPage retrieves the raw markup for one URL. Duplicate URLs in the
// target list hit the in-run cache instead of the network.
func (f *Fetcher) FetchPage(ctx context.Context, rawURL string) (string, error) {
	if f.pageCache != nil {
		if body, found := f.pageCache.Get(rawURL); found {
			return body, nil
		}
	}

	if f.robots != nil {
		allowed, delay := f.robots.CanFetch(ctx, rawURL)
		if !allowed {
			return "", fmt.Errorf("blocked by robots.txt: %s", rawURL)
		}
		if delay > 0 {
			fetchSleepFunc(delay)
		}
	}

	html, err := f.fetchWithRetry(ctx, rawURL)
	if err != nil {
		return "", err
	}

	if f.pageCache != nil {
		f.pageCache.Set(rawURL, html, f.cacheTTL)
	}

	return html, nil
}

// fetchWithRetry retries transient failures (429, 5xx, transport errors)
// with linear backoff
func (f *Fetcher) fetchWithRetry(ctx context.Context, rawURL string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= fetchMaxAttempts; attempt++ {
		html, err := f.fetch(ctx, rawURL)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if !isRetryableFetchError(err) || attempt == fetchMaxAttempts {
			return "", err
		}

		fetchSleepFunc(fetchBackoffBase * time.Duration(attempt))
	}

	return "", lastErr
}

// fetch performs a single HTTP GET
func (f *Fetcher) fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	limitedReader := io.LimitReader(resp.Body, f.maxBytes)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	return string(body), nil
}

// isRetryableFetchError reports whether a fetch error is worth retrying.
// HTTP 429 and 5xx are transient; transport-level failures usually are too.
func isRetryableFetchError(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()

	if rest, ok := strings.CutPrefix(msg, "unexpected status: "); ok {
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			return false
		}
		code, convErr := strconv.Atoi(fields[0])
		if convErr != nil {
			return false
		}
		return code == http.StatusTooManyRequests || code >= 500
	}

	return strings.HasPrefix(msg, "fetch: ")
}
