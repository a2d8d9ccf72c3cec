package corpus

import "sort"

// Curate selects the training set from a corpus snapshot: recordings flagged
// suitable and meeting minConfidence, grouped by presenter, newest first,
// capped at maxSamples per presenter. The recency bias is deliberate:
// presenters' voices and recording conditions drift, so a presenter with more
// than maxSamples eligible recordings keeps exactly the most recent ones.
//
// Curate is pure: the input snapshot is not modified and the returned slices
// share no backing storage with it.
func Curate(recordings []Recording, maxSamples int, minConfidence float64) map[string][]Recording {
	if maxSamples <= 0 {
		return map[string][]Recording{}
	}

	byPresenter := make(map[string][]Recording)
	for _, rec := range recordings {
		if !rec.SuitableForTraining {
			continue
		}
		if rec.Result.Presenter == "" || rec.Result.Confidence < minConfidence {
			continue
		}
		byPresenter[rec.Result.Presenter] = append(byPresenter[rec.Result.Presenter], rec)
	}

	for name, group := range byPresenter {
		sorted := make([]Recording, len(group))
		copy(sorted, group)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Timestamp.After(sorted[j].Timestamp)
		})
		if len(sorted) > maxSamples {
			sorted = sorted[:maxSamples:maxSamples]
		}
		byPresenter[name] = sorted
	}

	return byPresenter
}

// SampleFiles reduces a curated selection to presenter → file paths,
// preserving the curator's ordering. This is the builder's input shape.
func SampleFiles(selection map[string][]Recording) map[string][]string {
	files := make(map[string][]string, len(selection))
	for name, group := range selection {
		paths := make([]string, 0, len(group))
		for _, rec := range group {
			paths = append(paths, rec.File)
		}
		files[name] = paths
	}
	return files
}
