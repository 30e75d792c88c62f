package domain

import (
	"context"
	"sync"
)

type tokenUsageKey struct{}

// TokenUsage collects model token usage for a single demo run or HTTP request.
// The caller puts a mutable pointer into the context; transports add to it after each call.
type TokenUsage struct {
	mu               sync.Mutex
	PromptTokens     int
	CompletionTokens int
	Calls            int
}

// NewContextWithUsage returns a context with an embedded usage collector.
func NewContextWithUsage(ctx context.Context) (context.Context, *TokenUsage) {
	u := &TokenUsage{}
	return context.WithValue(ctx, tokenUsageKey{}, u), u
}

// ContextWithUsage attaches an existing collector, so several contexts can share one.
func ContextWithUsage(ctx context.Context, u *TokenUsage) context.Context {
	return context.WithValue(ctx, tokenUsageKey{}, u)
}

// UsageFromContext extracts the usage collector from context. Returns nil if not set.
func UsageFromContext(ctx context.Context) *TokenUsage {
	u, _ := ctx.Value(tokenUsageKey{}).(*TokenUsage)
	return u
}

// Add records one model call. Safe on a nil receiver.
func (u *TokenUsage) Add(prompt, completion int) {
	if u == nil {
		return
	}
	u.mu.Lock()
	u.PromptTokens += prompt
	u.CompletionTokens += completion
	u.Calls++
	u.mu.Unlock()
}

// Total returns prompt plus completion tokens.
func (u *TokenUsage) Total() int {
	if u == nil {
		return 0
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.PromptTokens + u.CompletionTokens
}

// Counts returns prompt tokens, completion tokens and the number of model calls.
func (u *TokenUsage) Counts() (prompt, completion, calls int) {
	if u == nil {
		return 0, 0, 0
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.PromptTokens, u.CompletionTokens, u.Calls
}
