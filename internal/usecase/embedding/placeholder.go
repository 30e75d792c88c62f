package embedding

import (
	"context"
	"math/rand"

	"github.com/cespare/xxhash/v2"

	"github.com/timothywarner/ai900/internal/domain"
)

// DefaultDimensions matches the small sentence-transformer models the placeholder stands in for.
const DefaultDimensions = 384

// HashEmbedder is a deterministic stand-in for a real embedding model.
// Each text seeds a PRNG with its 64-bit xxhash; the vector is dims values in [0,1).
// Identical text always yields identical vectors, across runs and machines.
// The vectors carry no semantic meaning.
type HashEmbedder struct {
	dims int
}

// NewHashEmbedder creates a placeholder embedder. dims <= 0 uses DefaultDimensions.
func NewHashEmbedder(dims int) *HashEmbedder {
	if dims <= 0 {
		dims = DefaultDimensions
	}
	return &HashEmbedder{dims: dims}
}

// Embed returns the pseudo-random vector for text. Never fails.
func (e *HashEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	//nolint:gosec // deterministic seeding is the point; not used for security
	rng := rand.New(rand.NewSource(int64(xxhash.Sum64String(text))))

	vec := make([]float32, e.dims)
	for i := range vec {
		vec[i] = rng.Float32()
	}
	return domain.EmbeddingResult{Embedding: vec}, nil
}

// Dimensions returns the vector length.
func (e *HashEmbedder) Dimensions() int {
	return e.dims
}
