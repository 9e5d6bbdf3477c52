package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ovelis/leaderwatch/internal/util"
)

// HuggingFaceProvider implements the Provider interface against the
// Hugging Face Inference API. This is the provider whose native output
// matches the transformers pipeline conventions (NEGATIVE/POSITIVE labels,
// or LABEL_0/LABEL_1 placeholders depending on the model card).
type HuggingFaceProvider struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
}

// Hugging Face API structures
type hfRequest struct {
	Inputs  string    `json:"inputs"`
	Options hfOptions `json:"options"`
}

type hfOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type hfError struct {
	Error string `json:"error"`
}

// NewHuggingFaceProvider creates a new Hugging Face Inference API provider
func NewHuggingFaceProvider(config Config) (*HuggingFaceProvider, error) {
	if config.Model == "" {
		return nil, fmt.Errorf("huggingface model must be specified (e.g., distilbert-base-uncased-finetuned-sst-2-english)")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "https://api-inference.huggingface.co"
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second // Cold models can take a while to load
	}

	return &HuggingFaceProvider{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   config.Model,
		apiKey:  config.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(config.HTTPProxy, config.HTTPSProxy),
			},
		},
	}, nil
}

// Name returns the provider name
func (p *HuggingFaceProvider) Name() string {
	return "huggingface"
}

// IsAvailable checks if the inference endpoint is reachable
func (p *HuggingFaceProvider) IsAvailable(ctx context.Context) bool {
	url := fmt.Sprintf("%s/models/%s", p.baseURL, p.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode < 500
}

// Classify submits text and returns the top-scoring label
func (p *HuggingFaceProvider) Classify(ctx context.Context, text string) (Result, error) {
	body, err := json.Marshal(hfRequest{
		Inputs:  text,
		Options: hfOptions{WaitForModel: true},
	})
	if err != nil {
		return Result{}, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s", p.baseURL, p.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return Result{}, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		var apiErr hfError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error != "" {
			return Result{}, fmt.Errorf("API error (%d): %s", httpResp.StatusCode, apiErr.Error)
		}
		return Result{}, fmt.Errorf("API error (%d): %s", httpResp.StatusCode, string(respBody))
	}

	return parseHFResponse(respBody)
}

// parseHFResponse handles both response shapes the API produces:
// [[{label,score},...]] for most text-classification models, and
// [{label,score},...] for some older deployments. The top-scoring entry
// wins, matching the transformers pipeline default.
func parseHFResponse(body []byte) (Result, error) {
	var nested [][]Result
	if err := json.Unmarshal(body, &nested); err == nil && len(nested) > 0 && len(nested[0]) > 0 {
		return topResult(nested[0]), nil
	}

	var flat []Result
	if err := json.Unmarshal(body, &flat); err == nil && len(flat) > 0 {
		return topResult(flat), nil
	}

	return Result{}, fmt.Errorf("unexpected response shape: %s", string(body))
}

func topResult(results []Result) Result {
	top := results[0]
	for _, r := range results[1:] {
		if r.Score > top.Score {
			top = r
		}
	}
	return top
}
