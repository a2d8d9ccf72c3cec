package voiceprint

import (
	"fmt"
	"math"
	"sort"
)

// SimilaritySummary aggregates pairwise similarities for one presenter's
// reference set.
type SimilaritySummary struct {
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// PairSimilarity records the similarity between two presenters' voiceprints.
type PairSimilarity struct {
	Pair       string  `json:"pair"`
	Similarity float64 `json:"similarity"`
}

// ValidationStats is the quality report for a voiceprint database. Within
// stats exist only for presenters with at least two embeddings; between
// stats compare the first embedding of every unordered presenter pair, a
// cheap proxy rather than an exhaustive sweep.
type ValidationStats struct {
	Presenters      int                          `json:"presenters"`
	TotalEmbeddings int                          `json:"total_embeddings"`
	WithinSpeaker   map[string]SimilaritySummary `json:"within_speaker_similarity"`
	BetweenSpeaker  []PairSimilarity             `json:"between_speaker_similarity"`
	BetweenMean     float64                      `json:"between_speaker_mean,omitempty"`
	BetweenStd      float64                      `json:"between_speaker_std,omitempty"`
}

// Validate computes within-speaker and between-speaker similarity statistics
// for the database. The result is diagnostic: it does not gate deployment,
// it surfaces confusable presenter pairs for manual review.
func Validate(db *Database) ValidationStats {
	stats := ValidationStats{
		Presenters:      db.Len(),
		TotalEmbeddings: db.TotalEmbeddings(),
		WithinSpeaker:   make(map[string]SimilaritySummary),
	}

	names := db.Names()

	for _, name := range names {
		embeddings := db.References(name)
		if len(embeddings) < 2 {
			continue
		}
		var sims []float64
		for i := 0; i < len(embeddings); i++ {
			for j := i + 1; j < len(embeddings); j++ {
				sims = append(sims, CosineSimilarity(embeddings[i], embeddings[j]))
			}
		}
		stats.WithinSpeaker[name] = summarize(sims)
	}

	var betweenSims []float64
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			first := db.References(names[i])
			second := db.References(names[j])
			if len(first) == 0 || len(second) == 0 {
				continue
			}
			sim := CosineSimilarity(first[0], second[0])
			stats.BetweenSpeaker = append(stats.BetweenSpeaker, PairSimilarity{
				Pair:       fmt.Sprintf("%s vs %s", names[i], names[j]),
				Similarity: sim,
			})
			betweenSims = append(betweenSims, sim)
		}
	}
	if len(betweenSims) > 0 {
		summary := summarize(betweenSims)
		stats.BetweenMean = summary.Mean
		stats.BetweenStd = summary.Std
	}

	return stats
}

// MostConfusable returns the highest-similarity presenter pairs, best first,
// capped at limit.
func (s ValidationStats) MostConfusable(limit int) []PairSimilarity {
	pairs := make([]PairSimilarity, len(s.BetweenSpeaker))
	copy(pairs, s.BetweenSpeaker)
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Similarity > pairs[j].Similarity
	})
	if limit > 0 && len(pairs) > limit {
		pairs = pairs[:limit]
	}
	return pairs
}

func summarize(values []float64) SimilaritySummary {
	if len(values) == 0 {
		return SimilaritySummary{}
	}
	minVal := values[0]
	maxVal := values[0]
	sum := 0.0
	for _, v := range values {
		sum += v
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	mean := sum / float64(len(values))
	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))
	return SimilaritySummary{
		Mean:  mean,
		Std:   math.Sqrt(variance),
		Min:   minVal,
		Max:   maxVal,
		Count: len(values),
	}
}
