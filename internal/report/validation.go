package report

import (
	"fmt"
	"sort"
	"strings"

	"aircheck/internal/voiceprint"
)

// confusablePairs is how many of the most similar presenter pairs the
// validation report surfaces for manual review.
const confusablePairs = 5

// RenderValidation formats voiceprint database validation statistics as
// terminal tables.
func RenderValidation(stats voiceprint.ValidationStats) string {
	var b strings.Builder

	names := make([]string, 0, len(stats.WithinSpeaker))
	for name := range stats.WithinSpeaker {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		s := stats.WithinSpeaker[name]
		rows = append(rows, []string{
			name,
			fmt.Sprintf("%.4f", s.Mean),
			fmt.Sprintf("%.4f", s.Std),
			fmt.Sprintf("%.4f", s.Min),
			fmt.Sprintf("%.4f", s.Max),
			fmt.Sprintf("%d", s.Count),
		})
	}
	b.WriteString(renderTable(
		fmt.Sprintf("Within-speaker similarity (%d presenters, %d embeddings)",
			stats.Presenters, stats.TotalEmbeddings),
		[]string{"Presenter", "Mean", "Std", "Min", "Max", "Pairs"}, rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight}))

	if len(stats.BetweenSpeaker) > 0 {
		confusable := stats.MostConfusable(confusablePairs)
		rows := make([][]string, 0, len(confusable))
		for _, pair := range confusable {
			rows = append(rows, []string{pair.Pair, fmt.Sprintf("%.4f", pair.Similarity)})
		}
		b.WriteString("\n\n")
		b.WriteString(renderTable(
			fmt.Sprintf("Most confusable pairs (between-speaker mean %.4f, std %.4f)",
				stats.BetweenMean, stats.BetweenStd),
			[]string{"Pair", "Similarity"}, rows,
			[]columnAlignment{alignLeft, alignRight}))
	}

	return b.String()
}
