package voiceprint

import "math"

// cosineEpsilon guards the norm product against division by zero. It matches
// the extractor side of the contract so similarities round-trip identically.
const cosineEpsilon = 1e-8

// Embedding is a fixed-dimension speaker vector produced by the external
// extractor. The extractor contract guarantees it is never the zero vector.
type Embedding []float32

// Dim returns the embedding dimension.
func (e Embedding) Dim() int { return len(e) }

// CosineSimilarity computes the cosine similarity between two embeddings,
// clamped to [0, 1]. Mismatched dimensions yield 0.
func CosineSimilarity(a, b Embedding) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	sim := dot / (math.Sqrt(normA)*math.Sqrt(normB) + cosineEpsilon)
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return sim
}
