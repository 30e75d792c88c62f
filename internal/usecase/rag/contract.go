package rag

import (
	"context"

	"github.com/timothywarner/ai900/internal/domain"
)

// KnowledgeBase lists the documents retrieval scans.
type KnowledgeBase interface {
	All() []domain.Document
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// ChatCompleter sends chat completion requests.
type ChatCompleter interface {
	Complete(ctx context.Context, req domain.ChatRequest) (domain.ChatResult, error)
}
