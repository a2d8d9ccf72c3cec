// Package voiceprint stores speaker reference embeddings and matches query
// embeddings against them with cosine similarity.
//
// A Database maps each presenter to an ordered list of embeddings and is
// rebuilt wholesale by the Builder from curated training samples; it is never
// mutated incrementally. The Validator computes within-speaker and
// between-speaker similarity statistics so confusable voiceprints surface
// before a database is trusted.
package voiceprint
