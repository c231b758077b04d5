// Package router decides, per inbound message, whether to answer from
// the intent rules or delegate to the generative fallback, and keeps
// the session memory consistent around the fallback path.
package router

import (
	"context"
	"sync"
	"time"

	"github.com/isvaryam/assistant/internal/domain"
	"github.com/isvaryam/assistant/internal/intent"
	"github.com/isvaryam/assistant/internal/logging"
	"github.com/isvaryam/assistant/internal/session"
)

// DegradedReply is returned when the fallback model fails. The caller
// always gets a textual reply; failures never cross the transport
// boundary as faults.
const DegradedReply = "Sorry, I'm having trouble answering right now. Please try again in a moment."

// Source identifies which path produced a reply.
type Source string

const (
	SourceIntent   Source = "intent"
	SourceFallback Source = "fallback"
	SourceError    Source = "error"
)

// Decision is the observable outcome of routing one message. It
// carries no state beyond what tests and logs need.
type Decision struct {
	Source Source
	Rule   string // intent rule name when Source == SourceIntent
	Reply  string
}

// Generator is the fallback boundary the router delegates to.
type Generator interface {
	Generate(ctx context.Context, userText string, history []domain.Exchange) (string, error)
}

// Router orchestrates the intent matcher, session store, and fallback
// generator. It owns orchestration only — not the store's backing
// state, not the model.
type Router struct {
	matcher  *intent.Matcher
	sessions *session.Store
	gen      Generator
	now      func() time.Time
	log      *logging.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex // per-session-key serialization
}

// Option configures a Router.
type Option func(*Router)

// WithClock overrides the wall clock used for time-of-day replies.
func WithClock(now func() time.Time) Option {
	return func(r *Router) { r.now = now }
}

// New creates a dialogue router.
func New(matcher *intent.Matcher, sessions *session.Store, gen Generator, log *logging.Logger, opts ...Option) *Router {
	r := &Router{
		matcher:  matcher,
		sessions: sessions,
		gen:      gen,
		now:      time.Now,
		log:      log.Sub("router"),
		locks:    make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Handle routes one inbound message and always returns a reply.
//
// Intent matches answer immediately and deliberately leave session
// history untouched (the matched exchange never reaches the model's
// context). On no match, the history read, the generate call, and the
// append are serialized per session key so concurrent messages from
// one user cannot corrupt or interleave history. No lock spans
// sessions, so a slow model call for one user never queues another.
func (r *Router) Handle(ctx context.Context, req domain.ChatRequest) Decision {
	key := req.SessionKey()

	if res := r.matcher.Match(req.Message, r.now()); res.Matched {
		r.log.Info().
			Str("event", "intent_matched").
			Str("session", key).
			Str("rule", res.Rule).
			Msg("answered from intent catalog")
		return Decision{Source: SourceIntent, Rule: res.Rule, Reply: res.Reply}
	}

	unlock := r.lockSession(key)
	defer unlock()

	history := r.sessions.History(key)

	r.log.Info().
		Str("event", "fallback_invoked").
		Str("session", key).
		Int("historyLen", len(history)).
		Msg("delegating to generative fallback")

	reply, err := r.gen.Generate(ctx, req.Message, history)
	if err != nil {
		// Fail fast: no retries, history untouched.
		r.log.Error().
			Str("event", "generation_error").
			Str("session", key).
			Str("input", truncate(req.Message, 80)).
			Err(err).
			Msg("fallback generation failed")
		return Decision{Source: SourceError, Reply: DegradedReply}
	}

	r.sessions.AppendExchange(key, req.Message, reply)

	return Decision{Source: SourceFallback, Reply: reply}
}

// lockSession acquires the mutex for a session key, creating it on
// first use. Locks live for the process lifetime, like sessions.
func (r *Router) lockSession(key string) (unlock func()) {
	r.mu.Lock()
	l, ok := r.locks[key]
	if !ok {
		l = &sync.Mutex{}
		r.locks[key] = l
	}
	r.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
