package voiceprint

import "sort"

// Match ranks one presenter against a query embedding.
type Match struct {
	Presenter      string  `json:"name"`
	BestSimilarity float64 `json:"similarity"`
	MeanSimilarity float64 `json:"avg_similarity"`
	ReferenceCount int     `json:"num_references"`
	Rank           int     `json:"rank"`
}

// Compare scores the query against every presenter's references and returns
// matches ranked descending by best similarity with 1-based ranks. The
// matcher applies no accept threshold; that is caller policy.
func Compare(query Embedding, db *Database) []Match {
	if db == nil || db.Len() == 0 || len(query) == 0 {
		return nil
	}
	matches := make([]Match, 0, db.Len())
	for _, name := range db.Names() {
		references := db.References(name)
		best := 0.0
		sum := 0.0
		for _, ref := range references {
			sim := CosineSimilarity(query, ref)
			sum += sim
			if sim > best {
				best = sim
			}
		}
		mean := 0.0
		if len(references) > 0 {
			mean = sum / float64(len(references))
		}
		matches = append(matches, Match{
			Presenter:      name,
			BestSimilarity: best,
			MeanSimilarity: mean,
			ReferenceCount: len(references),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].BestSimilarity > matches[j].BestSimilarity
	})
	for i := range matches {
		matches[i].Rank = i + 1
	}
	return matches
}
