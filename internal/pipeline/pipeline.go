// Package pipeline wires fetching, extraction, matching, classification and
// notification into one monitoring run.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ovelis/leaderwatch/internal/alert"
	"github.com/ovelis/leaderwatch/internal/extract"
	"github.com/ovelis/leaderwatch/internal/match"
	"github.com/ovelis/leaderwatch/internal/model"
	"github.com/ovelis/leaderwatch/internal/notify"
	"github.com/ovelis/leaderwatch/internal/sentiment"
	"github.com/ovelis/leaderwatch/internal/worker"
)

// Pipeline orchestrates one complete monitoring pass
type Pipeline struct {
	cfg        model.Config
	fetcher    worker.PageFetcher
	extractor  *extract.SnippetExtractor
	matcher    *match.Matcher
	classifier sentiment.Provider
	decider    *sentiment.Decider
	notifier   notify.Notifier
	log        *slog.Logger
}

// New creates a pipeline with explicit collaborators. Used directly by
// tests; production code goes through NewFromConfig.
func New(cfg model.Config, fetcher worker.PageFetcher, classifier sentiment.Provider, notifier notify.Notifier, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{
		cfg:        cfg,
		fetcher:    fetcher,
		extractor:  extract.NewSnippetExtractor(),
		matcher:    match.NewMatcher(cfg.Leaders),
		classifier: classifier,
		decider:    sentiment.NewDecider(cfg.Sentiment.Threshold),
		notifier:   notifier,
		log:        log,
	}
}

// NewFromConfig builds the production pipeline: HTTP fetcher, configured
// sentiment provider, SMTP notifier (nil when credentials are absent; the
// run then logs instead of emailing).
func NewFromConfig(cfg model.Config, log *slog.Logger) (*Pipeline, error) {
	classifier, err := sentiment.NewProvider(sentiment.ConfigFromModel(cfg.Sentiment, cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy))
	if err != nil {
		return nil, fmt.Errorf("create sentiment provider: %w", err)
	}

	var notifier notify.Notifier
	if cfg.Email.EmailReady() {
		n, err := notify.NewSMTPNotifier(cfg.Email)
		if err != nil {
			return nil, fmt.Errorf("create notifier: %w", err)
		}
		notifier = n
	}

	return New(cfg, NewFetcher(cfg), classifier, notifier, log), nil
}

// Run executes one monitoring pass: fetch every target URL, extract and
// classify snippets, then email the deduplicated digest if any negative
// mention was found. Per-URL and per-snippet failures are logged and
// skipped; only absent configuration aborts the run.
func (p *Pipeline) Run(ctx context.Context) (*model.RunSummary, error) {
	if err := p.cfg.Validate(); err != nil {
		return nil, err
	}

	summary := &model.RunSummary{}

	batch := worker.NewFetchBatch(p.fetcher, p.cfg.Concurrency.FetchWorkers,
		p.cfg.Concurrency.RequestsPerSecond, p.cfg.Concurrency.BurstSize)
	pages := batch.FetchAll(ctx, p.cfg.TargetURLs)

	var found []model.Alert

	// Iterate in configuration order so digest order is deterministic
	// regardless of fetch completion order.
	for _, url := range p.cfg.TargetURLs {
		summary.URLsScanned++

		page := pages[url]
		if page == nil || page.Err != nil {
			var err error
			if page != nil {
				err = page.Err
			}
			p.log.Warn("failed to fetch", "url", url, "error", err)
			summary.FetchFailures++
			continue
		}

		found = append(found, p.scanPage(ctx, url, page.HTML, summary)...)
	}

	final := alert.Dedupe(found)
	summary.Alerts = len(final)

	if len(final) == 0 {
		p.log.Info("no negative comments found")
		return summary, nil
	}

	p.notifyDigest(ctx, final)

	return summary, nil
}

// ScanURL runs extraction and classification for a single URL without
// deduplication or notification. Backs the check command.
func (p *Pipeline) ScanURL(ctx context.Context, url string) ([]model.Alert, error) {
	html, err := p.fetcher.FetchPage(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	summary := &model.RunSummary{}
	return p.scanPage(ctx, url, html, summary), nil
}

// scanPage turns one page's markup into confirmed negative alerts
func (p *Pipeline) scanPage(ctx context.Context, url, html string, summary *model.RunSummary) []model.Alert {
	snippets := p.extractor.Extract(html, p.cfg.Leaders)
	summary.Snippets += len(snippets)
	p.log.Info("candidate snippets", "url", url, "count", len(snippets))

	var found []model.Alert

	for _, snippet := range snippets {
		leader := p.matcher.Match(snippet.Text)
		if leader == "" {
			continue
		}

		result, err := p.classifier.Classify(ctx, sentiment.Truncate(snippet.Text))
		if err != nil {
			p.log.Warn("sentiment call failed", "url", url, "leader", leader, "error", err)
			summary.ClassifyFails++
			continue
		}
		summary.Classified++

		p.log.Debug("classified snippet",
			"leader", leader, "label", result.Label, "score", result.Score)

		if p.decider.IsNegative(result.Label, result.Score) {
			found = append(found, model.Alert{
				Leader:  leader,
				Text:    snippet.Text,
				Context: snippet.Context,
				URL:     url,
				Score:   result.Score,
			})
		}
	}

	return found
}

// notifyDigest renders and sends the digest; delivery failure is logged,
// never fatal
func (p *Pipeline) notifyDigest(ctx context.Context, final []model.Alert) {
	subject := alert.Subject(len(final))
	body := alert.RenderDigest(final)

	if p.notifier == nil {
		p.log.Error("email credentials not set, skipping email", "alerts", len(final))
		return
	}

	if err := p.notifier.Notify(ctx, subject, body); err != nil {
		p.log.Error("failed to send email", "error", err)
		return
	}

	p.log.Info("email sent", "alerts", len(final))
}
