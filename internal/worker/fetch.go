package worker

import (
	"context"
)

// PageFetcher retrieves the raw markup for one URL
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (string, error)
}

// FetchJob fetches a single URL through the shared rate limiter
type FetchJob struct {
	URL     string
	Fetcher PageFetcher
	Limiter *Limiter
}

// Execute fetches the page
func (j *FetchJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, j.URL); err != nil {
			return &FetchResult{URL: j.URL, Err: err}
		}
	}

	html, err := j.Fetcher.FetchPage(ctx, j.URL)
	return &FetchResult{URL: j.URL, HTML: html, Err: err}
}

// FetchResult is the outcome of one page fetch
type FetchResult struct {
	URL  string
	HTML string
	Err  error
}

// GetError returns the fetch error, if any
func (r *FetchResult) GetError() error {
	return r.Err
}

// FetchBatch fetches multiple URLs concurrently
type FetchBatch struct {
	fetcher PageFetcher
	workers int
	limiter *Limiter
}

// NewFetchBatch creates a batch fetcher with the given worker count and
// per-domain rate limit
func NewFetchBatch(fetcher PageFetcher, workers int, requestsPerSecond float64, burst int) *FetchBatch {
	if workers <= 0 {
		workers = 1
	}
	return &FetchBatch{
		fetcher: fetcher,
		workers: workers,
		limiter: NewLimiter(requestsPerSecond, burst),
	}
}

// FetchAll fetches every URL and returns results keyed by URL. Completion
// order is not meaningful; callers re-establish input order themselves.
func (b *FetchBatch) FetchAll(ctx context.Context, urls []string) map[string]*FetchResult {
	results := make(map[string]*FetchResult, len(urls))
	if len(urls) == 0 {
		return results
	}

	pool := NewPool(ctx, b.workers)
	pool.Start()

	// Submit from a goroutine so Wait drains results while the queue
	// fills; batches larger than the pool buffers would block otherwise.
	go func() {
		for _, url := range urls {
			pool.Submit(&FetchJob{URL: url, Fetcher: b.fetcher, Limiter: b.limiter})
		}
		pool.Close()
	}()

	for _, result := range pool.Wait() {
		fr := result.(*FetchResult)
		results[fr.URL] = fr
	}

	return results
}
