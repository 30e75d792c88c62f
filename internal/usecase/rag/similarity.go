package rag

import (
	"fmt"
	"math"

	"github.com/timothywarner/ai900/internal/domain"
)

// CosineSimilarity returns dot(a,b) / (|a|*|b|) in [-1, 1].
// Vectors of different length yield ErrVectorDimMismatch; a zero-magnitude
// vector yields ErrZeroNormVector rather than NaN.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", domain.ErrVectorDimMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0, domain.ErrZeroNormVector
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	// Clamp float drift so sim(a,a) never reports 1.0000000002.
	return math.Max(-1, math.Min(1, sim)), nil
}
