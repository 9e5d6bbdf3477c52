package model

import (
	"errors"
	"time"
)

// Config is the complete configuration for one monitoring run.
// It is built once at startup (flags > env > config file > defaults) and
// passed by value into the pipeline; components never read ambient state.
type Config struct {
	Leaders    []string `yaml:"leaders" mapstructure:"leaders"`
	TargetURLs []string `yaml:"target_urls" mapstructure:"target_urls"`

	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Sentiment   SentimentConfig   `yaml:"sentiment" mapstructure:"sentiment"`
	Email       EmailConfig       `yaml:"email" mapstructure:"email"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Robots      RobotsConfig      `yaml:"robots" mapstructure:"robots"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// HTTPConfig controls page fetching
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	InsecureTLS  bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
}

// SentimentConfig selects and tunes the classification provider
type SentimentConfig struct {
	Provider  string  `yaml:"provider" mapstructure:"provider"` // huggingface, openai, ollama
	Model     string  `yaml:"model" mapstructure:"model"`
	APIKey    string  `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL   string  `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout   int     `yaml:"timeout" mapstructure:"timeout"` // seconds
	Threshold float64 `yaml:"threshold" mapstructure:"threshold"`
}

// EmailConfig holds SMTP delivery settings for the alert digest
type EmailConfig struct {
	From     string `yaml:"from" mapstructure:"from"`
	Password string `yaml:"password,omitempty" mapstructure:"password"`
	To       string `yaml:"to" mapstructure:"to"`
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
}

// ConcurrencyConfig bounds parallel page fetching
type ConcurrencyConfig struct {
	FetchWorkers      int     `yaml:"fetch_workers" mapstructure:"fetch_workers"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// CacheConfig controls the in-run page cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// RobotsConfig controls robots.txt compliance before fetching
type RobotsConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// OutputConfig controls logging verbosity
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// Configuration preconditions. A run with no leaders or no targets halts
// before any work begins.
var (
	ErrNoLeaders = errors.New("no leader names configured")
	ErrNoTargets = errors.New("no target URLs configured")
)

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		HTTP: HTTPConfig{
			Timeout:      20 * time.Second,
			UserAgent:    "Mozilla/5.0 (compatible; LeaderWatch/1.0; +https://github.com/ovelis/leaderwatch)",
			MaxBodyBytes: 2_000_000,
		},
		Sentiment: SentimentConfig{
			Provider:  "huggingface",
			Model:     "distilbert-base-uncased-finetuned-sst-2-english",
			Timeout:   60,
			Threshold: 0.6,
		},
		Email: EmailConfig{
			Host: "smtp.gmail.com",
			Port: 587,
		},
		Concurrency: ConcurrencyConfig{
			FetchWorkers:      1,
			RequestsPerSecond: 1,
			BurstSize:         2,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     10 * time.Minute,
		},
	}
}

// Validate checks the preconditions required before a run may start
func (c Config) Validate() error {
	if len(c.Leaders) == 0 {
		return ErrNoLeaders
	}
	for _, l := range c.Leaders {
		if l == "" {
			return errors.New("leader names must be non-empty")
		}
	}
	if len(c.TargetURLs) == 0 {
		return ErrNoTargets
	}
	return nil
}

// EmailReady reports whether all fields needed to send the digest are set
func (c EmailConfig) EmailReady() bool {
	return c.From != "" && c.Password != "" && c.To != "" && c.Host != ""
}
