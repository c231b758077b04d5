package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLlamaServerComplete(t *testing.T) {
	var got chatCompletionsRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(map[string]any{
			"model": "tinyllama",
			"choices": []map[string]any{
				{"index": 0, "message": map[string]any{"role": "assistant", "content": "Coconut oil is great."}},
			},
		})
	}))
	defer srv.Close()

	client := NewLlamaServerClient(srv.URL, "tinyllama", 4, time.Second)
	resp, err := client.Complete(context.Background(), CompletionRequest{
		Messages:    []Message{{Role: RoleUser, Content: "tell me about coconut oil"}},
		Temperature: 0.7,
		TopP:        0.95,
		MaxTokens:   128,
	})
	require.NoError(t, err)

	assert.Equal(t, "Coconut oil is great.", resp.Content)
	assert.Equal(t, "tinyllama", resp.Model)

	// sampling params and the parallelism hint are forwarded as-is
	assert.Equal(t, "tinyllama", got.Model)
	assert.Equal(t, 0.7, got.Temperature)
	assert.Equal(t, 0.95, got.TopP)
	assert.Equal(t, 128, got.MaxTokens)
	assert.Equal(t, 4, got.Threads)
	assert.False(t, got.Stream)
}

func TestLlamaServerCompleteHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewLlamaServerClient(srv.URL, "tinyllama", 0, time.Second)
	_, err := client.Complete(context.Background(), CompletionRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestLlamaServerCompleteNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"model": "tinyllama", "choices": []}`))
	}))
	defer srv.Close()

	client := NewLlamaServerClient(srv.URL, "tinyllama", 0, time.Second)
	_, err := client.Complete(context.Background(), CompletionRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestLlamaServerTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewLlamaServerClient(srv.URL, "tinyllama", 0, 20*time.Millisecond)
	_, err := client.Complete(context.Background(), CompletionRequest{})
	require.Error(t, err)
}

func TestLlamaServerDefaults(t *testing.T) {
	client := NewLlamaServerClient("", "m", 0, 0)
	assert.Equal(t, "http://localhost:8080", client.baseURL)
	assert.Equal(t, 120*time.Second, client.client.Timeout)
	assert.Equal(t, "llama-server", client.Name())
}

func TestGenerationError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &GenerationError{Provider: "llama-server", Message: "request failed", Err: cause}

	assert.Contains(t, err.Error(), "llama-server")
	assert.Contains(t, err.Error(), "connection refused")
	assert.True(t, errors.Is(err, cause))

	var genErr *GenerationError
	assert.True(t, errors.As(err, &genErr))
}
