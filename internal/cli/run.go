package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ovelis/leaderwatch/internal/model"
	"github.com/ovelis/leaderwatch/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	runTimeout    time.Duration
	fetchTimeout  time.Duration
	userAgent     string
	maxBytes      int64
	fetchWorkers  int
	noCache       bool
	respectRobots bool
	insecureTLS   bool
	provider      string
	sentModel     string
	threshold     float64
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one monitoring pass and email the alert digest",
	Long: `Run performs a single monitoring pass:
- Fetch every configured target URL
- Extract text snippets mentioning a configured leader
- Classify each snippet's sentiment
- Email a deduplicated digest if confident negative mentions were found

Leaders and target URLs come from the config file or from the LEADERS and
TARGET_URLS environment variables (JSON array strings, the form used for
scheduler secrets).

Example:
  leaderwatch run
  leaderwatch run --threshold 0.75 --workers 4
  leaderwatch run --provider openai --model gpt-4o-mini`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().DurationVar(&runTimeout, "run-timeout", 10*time.Minute, "overall timeout for the whole pass")
	addScanFlags(runCmd)
}

// addScanFlags registers the flags shared by run and check
func addScanFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&fetchTimeout, "timeout", 20*time.Second, "per-page fetch timeout")
	cmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent override")
	cmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read per page")
	cmd.Flags().IntVar(&fetchWorkers, "workers", 1, "number of concurrent fetch workers")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the in-run page cache")
	cmd.Flags().BoolVar(&respectRobots, "robots", false, "honor robots.txt before fetching")
	cmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification")
	cmd.Flags().StringVar(&provider, "provider", "", "sentiment provider (huggingface, openai, ollama)")
	cmd.Flags().StringVar(&sentModel, "model", "", "sentiment model name")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "negativity confidence threshold")
}

// applyScanFlags overlays explicitly set flags onto the loaded config
func applyScanFlags(cmd *cobra.Command, cfg *model.Config) {
	flags := cmd.Flags()
	if flags.Changed("timeout") {
		cfg.HTTP.Timeout = fetchTimeout
	}
	if flags.Changed("ua") {
		cfg.HTTP.UserAgent = userAgent
	}
	if flags.Changed("max-bytes") {
		cfg.HTTP.MaxBodyBytes = maxBytes
	}
	if flags.Changed("workers") {
		cfg.Concurrency.FetchWorkers = fetchWorkers
	}
	if flags.Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}
	if flags.Changed("robots") {
		cfg.Robots.Enabled = respectRobots
	}
	if flags.Changed("insecure") {
		cfg.HTTP.InsecureTLS = insecureTLS
	}
	if flags.Changed("provider") {
		cfg.Sentiment.Provider = provider
	}
	if flags.Changed("model") {
		cfg.Sentiment.Model = sentModel
	}
	if flags.Changed("threshold") {
		cfg.Sentiment.Threshold = threshold
	}
}

func runRun(cmd *cobra.Command, args []string) error {
	log := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyScanFlags(cmd, &cfg)
	cfg.Output.Verbose = verbose

	// Absent leaders or targets is a precondition failure, not an error
	// exit: log the explanation and stop before any work.
	if err := cfg.Validate(); err != nil {
		if errors.Is(err, model.ErrNoLeaders) || errors.Is(err, model.ErrNoTargets) {
			log.Error("configuration incomplete, nothing to do", "error", err)
			return nil
		}
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	p, err := pipeline.NewFromConfig(cfg, log)
	if err != nil {
		return err
	}

	log.Info("starting monitoring pass",
		"leaders", len(cfg.Leaders),
		"urls", len(cfg.TargetURLs),
		"provider", cfg.Sentiment.Provider,
		"threshold", cfg.Sentiment.Threshold)

	summary, err := p.Run(ctx)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	log.Info("monitoring pass complete",
		"urls_scanned", summary.URLsScanned,
		"fetch_failures", summary.FetchFailures,
		"snippets", summary.Snippets,
		"classified", summary.Classified,
		"classify_failures", summary.ClassifyFails,
		"alerts", summary.Alerts)

	if verbose {
		fmt.Fprintf(os.Stderr, "\nDone: %d alert(s) from %d URL(s)\n", summary.Alerts, summary.URLsScanned)
	}

	return nil
}
