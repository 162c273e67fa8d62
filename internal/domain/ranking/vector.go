package ranking

import "math"

// Vector holds non-negative term counts indexed by a Vocabulary.
// Vectors produced by different vocabularies must not be compared.
type Vector []int

// Norm returns the Euclidean length.
func (v Vector) Norm() float64 {
	var sum float64
	for _, c := range v {
		sum += float64(c) * float64(c)
	}
	return math.Sqrt(sum)
}

// Dot returns the sum of elementwise products. Vectors of different length yield 0.
func (v Vector) Dot(o Vector) float64 {
	if len(v) != len(o) {
		return 0
	}
	var sum float64
	for i := range v {
		sum += float64(v[i]) * float64(o[i])
	}
	return sum
}

// CosineSimilarity returns dot(a,b) / (|a|*|b|).
// Returns 0 when either vector has zero norm, is empty, or the lengths differ.
func CosineSimilarity(a, b Vector) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	normA, normB := a.Norm(), b.Norm()
	if normA == 0 || normB == 0 {
		return 0
	}

	return a.Dot(b) / (normA * normB)
}
