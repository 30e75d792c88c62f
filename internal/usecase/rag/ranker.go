package rag

import (
	"context"
	"fmt"
	"sort"

	"github.com/timothywarner/ai900/internal/domain"
)

// Ranker scores documents against a query vector by linear scan.
type Ranker struct {
	embed Embedder
}

// NewRanker creates a ranker that embeds candidate documents with embed.
func NewRanker(embed Embedder) *Ranker {
	return &Ranker{embed: embed}
}

// Rank returns the k documents most similar to query, highest first.
// Every document's content is embedded on each call. Equal scores keep
// their input order. When k exceeds len(docs), all documents are returned.
func (r *Ranker) Rank(
	ctx context.Context, query []float32, docs []domain.Document, k int,
) ([]domain.ScoredDocument, error) {
	if k < 1 {
		return nil, fmt.Errorf("rank: %w (got %d)", domain.ErrInvalidTopK, k)
	}

	scored := make([]domain.ScoredDocument, 0, len(docs))
	for _, doc := range docs {
		emb, err := r.embed.Embed(ctx, doc.Content)
		if err != nil {
			return nil, fmt.Errorf("embed document %s: %w", doc.ID, err)
		}

		sim, err := CosineSimilarity(query, emb.Embedding)
		if err != nil {
			return nil, fmt.Errorf("score document %s: %w", doc.ID, err)
		}

		scored = append(scored, domain.ScoredDocument{Document: doc, Similarity: sim})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}
