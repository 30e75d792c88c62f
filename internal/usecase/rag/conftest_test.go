package rag

import (
	"context"
	"sync"

	"github.com/timothywarner/ai900/internal/domain"
)

// --- Mocks ---

type mockChat struct {
	mu       sync.Mutex
	requests []domain.ChatRequest
	reply    string
	err      error
}

func (m *mockChat) Complete(_ context.Context, req domain.ChatRequest) (domain.ChatResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	if m.err != nil {
		return domain.ChatResult{}, m.err
	}
	return domain.ChatResult{Content: m.reply}, nil
}

// mapEmbedder returns fixed vectors per text; unknown text gets fallback.
type mapEmbedder struct {
	vectors  map[string][]float32
	fallback []float32
	err      error
	calls    int
}

func (m *mapEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.calls++
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	if v, ok := m.vectors[text]; ok {
		return domain.EmbeddingResult{Embedding: v}, nil
	}
	return domain.EmbeddingResult{Embedding: m.fallback}, nil
}

type staticKB []domain.Document

func (s staticKB) All() []domain.Document {
	out := make([]domain.Document, len(s))
	copy(out, s)
	return out
}

func doc(id, content string) domain.Document {
	return domain.Document{ID: id, Title: "Title " + id, Content: content, Category: "test"}
}
