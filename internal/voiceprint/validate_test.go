package voiceprint

import (
	"math"
	"testing"
)

func TestValidate(t *testing.T) {
	db, err := NewDatabase(map[string][]Embedding{
		"Zeb Soanes":      {{1, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		"Corrie Corfield": {{0, 1, 0}},
		"Neil Nunes":      {{0, 0, 1}, {0, 0, 1}},
	})
	if err != nil {
		t.Fatalf("NewDatabase: %v", err)
	}

	stats := Validate(db)
	if stats.Presenters != 3 || stats.TotalEmbeddings != 6 {
		t.Fatalf("stats header = %d presenters / %d embeddings, want 3 / 6", stats.Presenters, stats.TotalEmbeddings)
	}

	// Single-embedding presenters have no within-speaker entry.
	if _, ok := stats.WithinSpeaker["Corrie Corfield"]; ok {
		t.Error("within-speaker stats computed for a single-embedding presenter")
	}

	zeb, ok := stats.WithinSpeaker["Zeb Soanes"]
	if !ok {
		t.Fatal("missing within-speaker stats for Zeb Soanes")
	}
	// Pairs: (1,1)=1, (1,0)=0, (1,0)=0.
	if zeb.Count != 3 {
		t.Errorf("Count = %d, want 3", zeb.Count)
	}
	if math.Abs(zeb.Mean-1.0/3) > 1e-6 {
		t.Errorf("Mean = %v, want 1/3", zeb.Mean)
	}
	if zeb.Min != 0 || math.Abs(zeb.Max-1) > 1e-6 {
		t.Errorf("Min/Max = %v/%v, want 0/1", zeb.Min, zeb.Max)
	}

	neil := stats.WithinSpeaker["Neil Nunes"]
	if neil.Count != 1 || math.Abs(neil.Mean-1) > 1e-6 || neil.Std != 0 {
		t.Errorf("Neil Nunes stats = %+v, want single perfect pair", neil)
	}

	// Between-speaker uses first embeddings only: three unordered pairs.
	if len(stats.BetweenSpeaker) != 3 {
		t.Fatalf("BetweenSpeaker pairs = %d, want 3", len(stats.BetweenSpeaker))
	}
	for _, pair := range stats.BetweenSpeaker {
		if pair.Similarity != 0 {
			t.Errorf("pair %q similarity = %v, want 0 for orthogonal first embeddings", pair.Pair, pair.Similarity)
		}
	}
	if stats.BetweenMean != 0 {
		t.Errorf("BetweenMean = %v, want 0", stats.BetweenMean)
	}
}

func TestMostConfusable(t *testing.T) {
	stats := ValidationStats{BetweenSpeaker: []PairSimilarity{
		{Pair: "A vs B", Similarity: 0.2},
		{Pair: "A vs C", Similarity: 0.9},
		{Pair: "B vs C", Similarity: 0.5},
	}}

	got := stats.MostConfusable(2)
	if len(got) != 2 {
		t.Fatalf("MostConfusable(2) returned %d pairs, want 2", len(got))
	}
	if got[0].Pair != "A vs C" || got[1].Pair != "B vs C" {
		t.Errorf("MostConfusable(2) = %v, want A vs C then B vs C", got)
	}

	if all := stats.MostConfusable(0); len(all) != 3 {
		t.Errorf("MostConfusable(0) returned %d pairs, want all 3", len(all))
	}
}
