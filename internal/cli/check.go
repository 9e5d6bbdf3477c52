package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/ovelis/leaderwatch/internal/pipeline"
	"github.com/spf13/cobra"
)

var checkTimeout time.Duration

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <url>",
	Short: "Scan a single URL and print would-be alerts without emailing",
	Long: `Check runs the extraction and classification pipeline against one URL
and prints the alerts that a full run would raise, without sending email.
Useful for verifying leader names, extraction behavior and thresholds.

Example:
  leaderwatch check https://news.example/post/123
  leaderwatch check https://news.example/post/123 --threshold 0.8 -v`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().DurationVar(&checkTimeout, "check-timeout", 2*time.Minute, "overall timeout for the check")
	addScanFlags(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	url := args[0]
	log := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyScanFlags(cmd, &cfg)
	cfg.TargetURLs = []string{url}

	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	p, err := pipeline.NewFromConfig(cfg, log)
	if err != nil {
		return err
	}

	found, err := p.ScanURL(ctx, url)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if len(found) == 0 {
		fmt.Println("No negative mentions found.")
		return nil
	}

	fmt.Printf("%d negative mention(s):\n\n", len(found))
	for _, a := range found {
		fmt.Printf("Leader: %s\n", a.Leader)
		fmt.Printf("Score: %v\n", a.Score)
		fmt.Printf("Comment snippet: %s\n", a.Text)
		fmt.Printf("Post URL: %s\n", a.URL)
		fmt.Println("---")
	}

	return nil
}
