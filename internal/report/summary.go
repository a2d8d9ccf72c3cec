package report

import (
	"fmt"
	"sort"
	"strings"

	"aircheck/internal/corpus"
)

// noPresenterKey groups recordings where no presenter was resolved.
const noPresenterKey = "NONE"

// unknownTranscriptChars bounds the transcript excerpt kept for unknown
// presenter entries.
const unknownTranscriptChars = 100

// UnknownEntry is a recording where a name was extracted but never matched:
// a candidate new presenter for the directory.
type UnknownEntry struct {
	Filename   string `json:"filename"`
	RawMatch   string `json:"raw_match"`
	Transcript string `json:"transcript"`
}

// ErrorEntry is a recording that failed analysis.
type ErrorEntry struct {
	Filename  string `json:"filename"`
	MatchType string `json:"match_type"`
}

// SuitableSummary counts training-suitable recordings.
type SuitableSummary struct {
	Total       int            `json:"total"`
	ByPresenter map[string]int `json:"by_presenter"`
}

// Summary aggregates one analysis run.
type Summary struct {
	TotalAnalyzed       int             `json:"total_analyzed"`
	ByPresenter         map[string]int  `json:"by_presenter"`
	ByMatchType         map[string]int  `json:"by_match_type"`
	SuitableForTraining SuitableSummary `json:"suitable_for_training"`
	Unknowns            []UnknownEntry  `json:"unknowns"`
	Errors              []ErrorEntry    `json:"errors"`
}

// Summarize aggregates analysis results for reporting.
func Summarize(recordings []corpus.Recording) Summary {
	summary := Summary{
		TotalAnalyzed: len(recordings),
		ByPresenter:   make(map[string]int),
		ByMatchType:   make(map[string]int),
		SuitableForTraining: SuitableSummary{
			ByPresenter: make(map[string]int),
		},
	}

	for _, rec := range recordings {
		name := rec.Result.Presenter
		if name == "" {
			name = noPresenterKey
		}
		summary.ByPresenter[name]++
		summary.ByMatchType[string(rec.Result.Type)]++

		if rec.SuitableForTraining {
			summary.SuitableForTraining.Total++
			summary.SuitableForTraining.ByPresenter[name]++
		}
		if rec.Result.RawMatch != "" && rec.Result.Presenter == "" {
			summary.Unknowns = append(summary.Unknowns, UnknownEntry{
				Filename:   rec.Filename,
				RawMatch:   rec.Result.RawMatch,
				Transcript: truncate(rec.Result.Transcript, unknownTranscriptChars),
			})
		}
		if rec.Result.Type.Failure() {
			summary.Errors = append(summary.Errors, ErrorEntry{
				Filename:  rec.Filename,
				MatchType: string(rec.Result.Type),
			})
		}
	}
	return summary
}

// RenderSummary formats the analysis summary as terminal tables.
func RenderSummary(summary Summary) string {
	var b strings.Builder

	rows := countRows(summary.ByPresenter)
	for i, row := range rows {
		if row[0] == noPresenterKey {
			rows[i][0] = "(no presenter detected)"
		}
	}
	b.WriteString(renderTable(
		fmt.Sprintf("Recordings analyzed: %d", summary.TotalAnalyzed),
		[]string{"Presenter", "Count"}, rows,
		[]columnAlignment{alignLeft, alignRight}))
	b.WriteString("\n\n")

	b.WriteString(renderTable(
		"Match types",
		[]string{"Type", "Count"}, countRows(summary.ByMatchType),
		[]columnAlignment{alignLeft, alignRight}))
	b.WriteString("\n\n")

	b.WriteString(renderTable(
		fmt.Sprintf("Suitable for training: %d", summary.SuitableForTraining.Total),
		[]string{"Presenter", "Count"}, countRows(summary.SuitableForTraining.ByPresenter),
		[]columnAlignment{alignLeft, alignRight}))

	if len(summary.Unknowns) > 0 {
		rows := make([][]string, 0, len(summary.Unknowns))
		for _, u := range summary.Unknowns {
			rows = append(rows, []string{u.Filename, u.RawMatch})
		}
		b.WriteString("\n\n")
		b.WriteString(renderTable(
			fmt.Sprintf("Unknown presenters: %d (possible directory additions)", len(summary.Unknowns)),
			[]string{"Recording", "Extracted name"}, rows,
			[]columnAlignment{alignLeft, alignLeft}))
	}

	if len(summary.Errors) > 0 {
		rows := make([][]string, 0, len(summary.Errors))
		for _, e := range summary.Errors {
			rows = append(rows, []string{e.Filename, e.MatchType})
		}
		b.WriteString("\n\n")
		b.WriteString(renderTable(
			fmt.Sprintf("Errors: %d", len(summary.Errors)),
			[]string{"Recording", "Failure"}, rows,
			[]columnAlignment{alignLeft, alignLeft}))
	}

	return b.String()
}

// countRows converts a count map to rows sorted by count descending, then
// name, matching the summary ordering of the labels artifact.
func countRows(counts map[string]int) [][]string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, fmt.Sprintf("%d", counts[name])})
	}
	return rows
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
