package sentiment

import (
	"fmt"
	"strings"

	"github.com/ovelis/leaderwatch/internal/model"
)

// NewProvider creates a classification provider based on configuration
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "huggingface", "hf":
		return NewHuggingFaceProvider(config)

	case "openai":
		return NewOpenAIProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	default:
		return nil, fmt.Errorf("unknown sentiment provider: %s (supported: huggingface, openai, ollama)", config.Provider)
	}
}

// ConfigFromModel converts model.SentimentConfig to sentiment.Config
func ConfigFromModel(modelConfig model.SentimentConfig, httpProxy, httpsProxy string) Config {
	return Config{
		Provider:   modelConfig.Provider,
		Model:      modelConfig.Model,
		APIKey:     modelConfig.APIKey,
		BaseURL:    modelConfig.BaseURL,
		Timeout:    modelConfig.Timeout,
		HTTPProxy:  httpProxy,
		HTTPSProxy: httpsProxy,
	}
}
