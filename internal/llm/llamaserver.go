package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// LlamaServerClient talks to a llama.cpp server over its
// OpenAI-compatible chat completions endpoint.
type LlamaServerClient struct {
	baseURL string
	model   string
	threads int
	client  *http.Client
}

// NewLlamaServerClient creates a client for a llama.cpp server.
// baseURL should be like "http://localhost:8080". A timeout of 0
// defaults to 120s; the timeout is the adapter's internal failure
// boundary — callers see it as a GenerationError.
func NewLlamaServerClient(baseURL, model string, threads int, timeout time.Duration) *LlamaServerClient {
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	baseURL = strings.TrimSuffix(baseURL, "/")
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	return &LlamaServerClient{
		baseURL: baseURL,
		model:   model,
		threads: threads,
		client:  &http.Client{Timeout: timeout},
	}
}

// Complete sends a non-streaming chat completion request.
func (l *LlamaServerClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	start := time.Now()

	model := req.Model
	if model == "" {
		model = l.model
	}

	body := chatCompletionsRequest{
		Model:       model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		TopP:        req.TopP,
		MaxTokens:   req.MaxTokens,
		Stream:      false,
		Threads:     l.threads,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST",
		l.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := l.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result chatCompletionsResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("response contained no choices")
	}

	return &CompletionResponse{
		Content:  result.Choices[0].Message.Content,
		Model:    result.Model,
		Duration: time.Since(start),
	}, nil
}

// Name returns the provider name.
func (l *LlamaServerClient) Name() string {
	return "llama-server"
}

// Wire structures for the OpenAI-compatible endpoint.

type chatCompletionsRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	TopP        float64   `json:"top_p,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Stream      bool      `json:"stream"`
	Threads     int       `json:"n_threads,omitempty"` // llama.cpp extension
}

type chatCompletionsResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Index   int     `json:"index"`
		Message Message `json:"message"`
	} `json:"choices"`
}
