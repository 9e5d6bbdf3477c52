package sentiment

import (
	"context"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
)

// classifySystemPrompt pins the output contract for chat-based providers
const classifySystemPrompt = `You are a sentiment classifier. Given a text, respond with exactly one JSON object and nothing else:
{"label": "POSITIVE" or "NEGATIVE", "score": confidence between 0.0 and 1.0}
The score is your confidence in the chosen label, not a polarity value.`

// OpenAIProvider implements the Provider interface using OpenAI chat models
// as a zero-shot sentiment classifier
type OpenAIProvider struct {
	client *openai.Client
	config Config
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the provider is properly configured
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	_, err := p.client.ListModels(ctx)
	return err == nil
}

// Classify asks the chat model for a label/score pair
func (p *OpenAIProvider) Classify(ctx context.Context, text string) (Result, error) {
	model := p.config.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	timeout := time.Duration(p.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	chatReq := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: classifySystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
		MaxTokens:   64,
		Temperature: 0, // Deterministic labeling
	}

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, chatReq)
	if err != nil {
		return Result{}, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return Result{}, fmt.Errorf("no response from OpenAI")
	}

	return parseResultJSON(resp.Choices[0].Message.Content)
}
