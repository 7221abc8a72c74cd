package retrieval

import (
	"errors"
	"math"
)

// ErrDimensionMismatch indicates vectors of different lengths, typically
// from mixing embedding models without re-embedding.
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// CosineSimilarity computes the cosine similarity of two vectors. A vector
// with zero norm yields the sentinel -1, never NaN, so degenerate inputs
// sort below every real match instead of poisoning comparisons.
func CosineSimilarity(a, b []float32) (float32, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return -1, nil
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB))), nil
}
