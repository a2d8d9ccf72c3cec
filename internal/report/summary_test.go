package report

import (
	"strings"
	"testing"
	"time"

	"aircheck/internal/corpus"
	"aircheck/internal/presenter"
)

func testRecording(name string, result presenter.Result) corpus.Recording {
	return corpus.NewRecording("run-1", "/archive/2026/01/"+name, name, "2026", "01",
		time.Date(2026, 1, 10, 4, 48, 0, 0, time.UTC), result)
}

func testCorpus() []corpus.Recording {
	return []corpus.Recording{
		testRecording("a.mp3", presenter.Result{Presenter: "Zeb Soanes", Confidence: 1.0, Type: presenter.MatchExact}),
		testRecording("b.mp3", presenter.Result{Presenter: "Zeb Soanes", Confidence: 0.9, Type: presenter.MatchVariation}),
		testRecording("c.mp3", presenter.Result{Presenter: "Corrie Corfield", Confidence: 0.75, Type: presenter.MatchFuzzy}),
		testRecording("d.mp3", presenter.Result{RawMatch: "Alice Smith", Transcript: "This is Alice Smith.", Type: presenter.MatchUnknown}),
		testRecording("e.mp3", presenter.Result{Type: presenter.MatchTranscriptionError}),
	}
}

func TestSummarize(t *testing.T) {
	summary := Summarize(testCorpus())

	if summary.TotalAnalyzed != 5 {
		t.Errorf("TotalAnalyzed = %d, want 5", summary.TotalAnalyzed)
	}
	if summary.ByPresenter["Zeb Soanes"] != 2 {
		t.Errorf("ByPresenter[Zeb Soanes] = %d, want 2", summary.ByPresenter["Zeb Soanes"])
	}
	if summary.ByPresenter["NONE"] != 2 {
		t.Errorf("ByPresenter[NONE] = %d, want 2 (unknown and error)", summary.ByPresenter["NONE"])
	}
	if summary.ByMatchType["exact"] != 1 || summary.ByMatchType["fuzzy"] != 1 {
		t.Errorf("ByMatchType = %v, want one exact and one fuzzy", summary.ByMatchType)
	}

	// Fuzzy matches never qualify for training.
	if summary.SuitableForTraining.Total != 2 {
		t.Errorf("SuitableForTraining.Total = %d, want 2", summary.SuitableForTraining.Total)
	}
	if summary.SuitableForTraining.ByPresenter["Corrie Corfield"] != 0 {
		t.Errorf("fuzzy match counted as training-suitable: %v", summary.SuitableForTraining.ByPresenter)
	}

	if len(summary.Unknowns) != 1 || summary.Unknowns[0].RawMatch != "Alice Smith" {
		t.Errorf("Unknowns = %v, want the unmatched extraction", summary.Unknowns)
	}
	if len(summary.Errors) != 1 || summary.Errors[0].MatchType != "transcription_error" {
		t.Errorf("Errors = %v, want the failed recording", summary.Errors)
	}
}

func TestSummarizeTruncatesUnknownTranscripts(t *testing.T) {
	long := strings.Repeat("x", 150)
	summary := Summarize([]corpus.Recording{
		testRecording("a.mp3", presenter.Result{RawMatch: "Alice Smith", Transcript: long, Type: presenter.MatchUnknown}),
	})
	if got := len(summary.Unknowns[0].Transcript); got != 100 {
		t.Errorf("transcript excerpt length = %d, want 100", got)
	}
}

func TestRenderSummary(t *testing.T) {
	out := RenderSummary(Summarize(testCorpus()))

	for _, want := range []string{
		"Recordings analyzed: 5",
		"Zeb Soanes",
		"(no presenter detected)",
		"Match types",
		"Suitable for training: 2",
		"Unknown presenters: 1",
		"Errors: 1",
		"transcription_error",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary output missing %q", want)
		}
	}
}

func TestCountRowsOrdering(t *testing.T) {
	rows := countRows(map[string]int{"b": 2, "a": 2, "c": 5})
	want := [][]string{{"c", "5"}, {"a", "2"}, {"b", "2"}}
	if len(rows) != len(want) {
		t.Fatalf("rows = %v, want %v", rows, want)
	}
	for i := range want {
		if rows[i][0] != want[i][0] || rows[i][1] != want[i][1] {
			t.Errorf("row %d = %v, want %v", i, rows[i], want[i])
		}
	}
}
