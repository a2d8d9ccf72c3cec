package voiceprint

import (
	"math"
	"testing"
)

func matcherTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(map[string][]Embedding{
		"Zeb Soanes":      {{1, 0, 0}, {0.9, 0.1, 0}},
		"Corrie Corfield": {{0, 1, 0}},
		"Neil Nunes":      {{0, 0, 1}},
	})
	if err != nil {
		t.Fatalf("NewDatabase: %v", err)
	}
	return db
}

func TestCompareRanking(t *testing.T) {
	matches := Compare(Embedding{1, 0, 0}, matcherTestDB(t))
	if len(matches) != 3 {
		t.Fatalf("Compare() returned %d matches, want 3", len(matches))
	}

	top := matches[0]
	if top.Presenter != "Zeb Soanes" || top.Rank != 1 {
		t.Fatalf("top match = %+v, want Zeb Soanes at rank 1", top)
	}
	if math.Abs(top.BestSimilarity-1.0) > 1e-6 {
		t.Errorf("BestSimilarity = %v, want 1.0", top.BestSimilarity)
	}
	if top.ReferenceCount != 2 {
		t.Errorf("ReferenceCount = %d, want 2", top.ReferenceCount)
	}
	// Mean over both references is below the best.
	if top.MeanSimilarity >= top.BestSimilarity {
		t.Errorf("MeanSimilarity = %v, want below best %v", top.MeanSimilarity, top.BestSimilarity)
	}

	for i, match := range matches {
		if match.Rank != i+1 {
			t.Errorf("match[%d].Rank = %d, want %d", i, match.Rank, i+1)
		}
		if i > 0 && match.BestSimilarity > matches[i-1].BestSimilarity {
			t.Errorf("matches not sorted descending at index %d", i)
		}
	}
}

func TestCompareNoInput(t *testing.T) {
	if got := Compare(nil, matcherTestDB(t)); got != nil {
		t.Errorf("Compare(nil query) = %v, want nil", got)
	}
	if got := Compare(Embedding{1, 0, 0}, nil); got != nil {
		t.Errorf("Compare(nil db) = %v, want nil", got)
	}
}
