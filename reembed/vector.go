package reembed

import "math"

// NormalizeVector scales a vector to unit length and returns the result as
// a new slice. Accumulation runs in float64, matching the precision of the
// cosine similarity the stored vectors are compared with. A zero or empty
// vector comes back unchanged in length with all components zero.
func NormalizeVector(v []float32) []float32 {
	out := make([]float32, len(v))
	var norm float64
	for _, c := range v {
		norm += float64(c) * float64(c)
	}
	if norm == 0 {
		return out
	}
	inv := 1 / math.Sqrt(norm)
	for i, c := range v {
		out[i] = float32(float64(c) * inv)
	}
	return out
}
