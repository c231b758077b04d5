// Package intent implements the rule-based fast path: an ordered list
// of predicate/responder pairs evaluated before the generative model
// gets involved.
package intent

import (
	"strings"
	"time"
)

// Input is what a responder sees: the lowercased text used for
// matching, the original message, and the injected wall-clock time.
// Time is an explicit input so time-of-day replies stay testable.
type Input struct {
	Text string
	Raw  string
	Now  time.Time
}

// Rule pairs a predicate over lowercased text with a responder.
// Rules are immutable after startup and evaluated in declaration
// order; the first satisfied predicate wins.
type Rule struct {
	Name      string
	Predicate func(text string) bool
	Respond   func(in Input) string
}

// Result is the explicit outcome of evaluating the rule list: either
// Matched with a reply, or NoMatch. NoMatch is control flow, not an
// error — it means "try the fallback".
type Result struct {
	Matched bool
	Rule    string
	Reply   string
}

// NoMatch is the result used when no rule fires.
var NoMatch = Result{}

// Matcher evaluates an ordered rule list against incoming messages.
type Matcher struct {
	rules []Rule
}

// NewMatcher creates a matcher over the given rules. Rule order is
// significant and preserved.
func NewMatcher(rules []Rule) *Matcher {
	return &Matcher{rules: rules}
}

// Match evaluates the rules in order against the lowercased message
// and returns the first match. Empty or whitespace-only input never
// matches. Match is pure: no side effects, no hidden clock reads.
func (m *Matcher) Match(raw string, now time.Time) Result {
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return NoMatch
	}

	for _, r := range m.rules {
		if r.Predicate(text) {
			return Result{
				Matched: true,
				Rule:    r.Name,
				Reply:   r.Respond(Input{Text: text, Raw: raw, Now: now}),
			}
		}
	}
	return NoMatch
}

// containsAny reports whether text contains any of the keywords.
// Matching is substring-based, not tokenized.
func containsAny(text string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
