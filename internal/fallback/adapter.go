// Package fallback wraps the generative model behind the adapter the
// dialogue router delegates to when no intent rule matches.
package fallback

import (
	"context"
	"errors"
	"strings"

	"github.com/isvaryam/assistant/internal/domain"
	"github.com/isvaryam/assistant/internal/llm"
	"github.com/isvaryam/assistant/internal/logging"
)

// Options fix the adapter's sampling parameters and context budget at
// startup; Generate never varies them per call.
type Options struct {
	Model            string
	Temperature      float64
	TopP             float64
	MaxTokens        int
	MaxContextTokens int
}

// Adapter turns session history plus a new user message into a single
// non-streaming completion.
type Adapter struct {
	client llm.Client
	opts   Options
	log    *logging.Logger
}

// New creates a fallback adapter over the given completion client.
func New(client llm.Client, opts Options, log *logging.Logger) *Adapter {
	return &Adapter{
		client: client,
		opts:   opts,
		log:    log.Sub("fallback"),
	}
}

// Generate requests one completion for history ++ userText. All
// failures — transport, timeout, empty output — surface as a
// *llm.GenerationError.
func (a *Adapter) Generate(ctx context.Context, userText string, history []domain.Exchange) (string, error) {
	messages := a.buildMessages(userText, history)

	resp, err := a.client.Complete(ctx, llm.CompletionRequest{
		Model:       a.opts.Model,
		Messages:    messages,
		MaxTokens:   a.opts.MaxTokens,
		Temperature: a.opts.Temperature,
		TopP:        a.opts.TopP,
	})
	if err != nil {
		var genErr *llm.GenerationError
		if errors.As(err, &genErr) {
			return "", err
		}
		return "", &llm.GenerationError{
			Provider: a.client.Name(),
			Message:  "completion failed",
			Err:      err,
		}
	}

	reply := strings.TrimSpace(resp.Content)
	if reply == "" {
		return "", &llm.GenerationError{
			Provider: a.client.Name(),
			Message:  "model returned an empty completion",
		}
	}
	return reply, nil
}

// buildMessages assembles the prompt sequence, dropping oldest history
// entries until the estimated token count fits the context budget.
// This trimming is independent of the session store's own cap: token
// length and exchange count are different measures.
func (a *Adapter) buildMessages(userText string, history []domain.Exchange) []llm.Message {
	budget := a.opts.MaxContextTokens
	if budget > 0 {
		used := estimateTokens(userText)
		keep := len(history)
		// Walk newest to oldest, keeping what fits. The new user
		// message is never dropped.
		for i := len(history) - 1; i >= 0; i-- {
			cost := estimateTokens(history[i].Content)
			if used+cost > budget {
				break
			}
			used += cost
			keep = i
		}
		if keep > 0 {
			a.log.Debug().Int("dropped", keep).Int("budget", budget).
				Msg("trimmed history to fit context window")
		}
		history = history[keep:]
	}

	messages := make([]llm.Message, 0, len(history)+1)
	for _, e := range history {
		messages = append(messages, llm.Message{Role: e.Role, Content: e.Content})
	}
	return append(messages, llm.Message{Role: llm.RoleUser, Content: userText})
}

// estimateTokens approximates the token count of a string. The model
// server owns the real tokenizer; four characters per token is a
// conservative bound for the budget check.
func estimateTokens(s string) int {
	return len(s)/4 + 1
}
