package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ovelis/leaderwatch/internal/model"
	"github.com/spf13/viper"
)

// loadConfig builds the run configuration: defaults, then config file and
// LEADERWATCH_* env vars via viper, then the plain scheduler-secret
// environment convention on top
func loadConfig() (model.Config, error) {
	cfg := model.DefaultConfig()

	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parse configuration: %w", err)
	}

	applyEnvOverrides(&cfg)

	if err := resolveAPIKey(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// applyEnvOverrides maps the scheduler-secret convention onto the config.
// LEADERS and TARGET_URLS are JSON array strings (the form used when
// secrets are injected by a CI scheduler); the EMAIL_* variables and
// SENTIMENT_MODEL are plain strings.
func applyEnvOverrides(cfg *model.Config) {
	if raw := os.Getenv("LEADERS"); raw != "" {
		var leaders []string
		if err := json.Unmarshal([]byte(raw), &leaders); err == nil {
			cfg.Leaders = leaders
		}
	}
	if raw := os.Getenv("TARGET_URLS"); raw != "" {
		var urls []string
		if err := json.Unmarshal([]byte(raw), &urls); err == nil {
			cfg.TargetURLs = urls
		}
	}

	if v := os.Getenv("EMAIL_FROM"); v != "" {
		cfg.Email.From = v
	}
	if v := os.Getenv("EMAIL_PASS"); v != "" {
		cfg.Email.Password = v
	}
	if v := os.Getenv("EMAIL_TO"); v != "" {
		cfg.Email.To = v
	}

	if v := os.Getenv("SENTIMENT_MODEL"); v != "" {
		cfg.Sentiment.Model = v
	}
}

// resolveAPIKey fills the provider API key from the conventional
// environment variable when the config carries none
func resolveAPIKey(cfg *model.Config) error {
	if cfg.Sentiment.APIKey != "" {
		return nil
	}

	switch strings.ToLower(cfg.Sentiment.Provider) {
	case "openai":
		cfg.Sentiment.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.Sentiment.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "huggingface", "hf":
		// Keyless access works but is heavily rate limited.
		cfg.Sentiment.APIKey = os.Getenv("HUGGINGFACE_API_KEY")
		if cfg.Sentiment.APIKey == "" {
			cfg.Sentiment.APIKey = os.Getenv("HF_TOKEN")
		}
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" && cfg.Sentiment.BaseURL == "" {
			cfg.Sentiment.BaseURL = baseURL
		}
	}

	return nil
}
