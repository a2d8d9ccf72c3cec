package archive

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"aircheck/internal/logging"
	"aircheck/internal/presenter"
	"aircheck/internal/services"
	"aircheck/internal/services/transcriber"
	"aircheck/internal/voiceprint"
)

type fakeTranscriber struct {
	mu          sync.Mutex
	transcripts map[string]string
	failures    map[string]error
	calls       int
}

func (f *fakeTranscriber) TranscribeSignoff(ctx context.Context, audioPath string) (transcriber.Result, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if err, ok := f.failures[audioPath]; ok {
		return transcriber.Result{}, err
	}
	return transcriber.Result{Text: f.transcripts[audioPath]}, nil
}

func (f *fakeTranscriber) Enabled() bool { return true }

type fakeEmbedder struct {
	embeddings map[string]voiceprint.Embedding
	enabled    bool
}

func (f *fakeEmbedder) Extract(ctx context.Context, audioPath string) (voiceprint.Embedding, error) {
	if emb, ok := f.embeddings[audioPath]; ok {
		return emb, nil
	}
	return nil, errors.New("no embedding")
}

func (f *fakeEmbedder) Enabled() bool { return f.enabled }

func analyzerResolver(t *testing.T) *presenter.Resolver {
	t.Helper()
	directory, err := presenter.NewDirectory([]presenter.Record{
		{Name: "Zeb Soanes", Variations: []string{"Zeb"}},
		{Name: "Corrie Corfield", Variations: []string{"Corrie"}},
	})
	if err != nil {
		t.Fatalf("NewDirectory: %v", err)
	}
	return presenter.NewResolver(directory, nil, nil, presenter.Options{
		SimilarityThreshold: 0.7,
		EscalationThreshold: 0.85,
		BiometricMinimum:    0.70,
	}, logging.NewNop())
}

func analyzerFiles() []File {
	base := time.Date(2026, 1, 15, 5, 20, 0, 0, time.UTC)
	return []File{
		{Path: "/archive/2026/01/a.mp3", Name: "a.mp3", Year: "2026", Month: "01", ModTime: base.Add(2 * time.Hour)},
		{Path: "/archive/2026/01/b.mp3", Name: "b.mp3", Year: "2026", Month: "01", ModTime: base.Add(time.Hour)},
		{Path: "/archive/2026/01/c.mp3", Name: "c.mp3", Year: "2026", Month: "01", ModTime: base},
	}
}

func TestAnalyzerRun(t *testing.T) {
	fake := &fakeTranscriber{
		transcripts: map[string]string{
			"/archive/2026/01/a.mp3": "This is Zeb Soanes.",
			"/archive/2026/01/b.mp3": "Shipping areas Viking, North Utsire.",
		},
		failures: map[string]error{
			"/archive/2026/01/c.mp3": services.Wrap(services.ErrExternalTool, "transcriber", "remote", "whisper failed", nil),
		},
	}
	analyzer := NewAnalyzer(analyzerResolver(t), fake, nil, 2, logging.NewNop())

	runID, recordings, err := analyzer.Run(context.Background(), analyzerFiles())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if runID == "" {
		t.Error("empty run ID")
	}
	if len(recordings) != 3 {
		t.Fatalf("Run produced %d recordings, want 3", len(recordings))
	}

	// Results come back sorted newest first regardless of worker completion
	// order.
	if recordings[0].Filename != "a.mp3" || recordings[2].Filename != "c.mp3" {
		t.Errorf("recordings unordered: %s, %s, %s",
			recordings[0].Filename, recordings[1].Filename, recordings[2].Filename)
	}

	byFile := make(map[string]presenter.Result, len(recordings))
	for _, rec := range recordings {
		if rec.RunID != runID {
			t.Errorf("recording %s carries run ID %q, want %q", rec.Filename, rec.RunID, runID)
		}
		byFile[rec.Filename] = rec.Result
	}
	if got := byFile["a.mp3"]; got.Presenter != "Zeb Soanes" || got.Type != presenter.MatchExact {
		t.Errorf("a.mp3 result = %+v, want exact Zeb Soanes", got)
	}
	if got := byFile["b.mp3"]; got.Type != presenter.MatchNone {
		t.Errorf("b.mp3 result = %+v, want no_match", got)
	}
	if got := byFile["c.mp3"]; got.Type != presenter.MatchTranscriptionError {
		t.Errorf("c.mp3 result = %+v, want transcription_error", got)
	}
}

func TestAnalyzerEmbeddingFailureKeepsTextResult(t *testing.T) {
	fake := &fakeTranscriber{
		transcripts: map[string]string{"/archive/2026/01/a.mp3": "This is Zeb Soanes."},
	}
	embedder := &fakeEmbedder{enabled: true}
	analyzer := NewAnalyzer(analyzerResolver(t), fake, embedder, 1, logging.NewNop())

	_, recordings, err := analyzer.Run(context.Background(), analyzerFiles()[:1])
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := recordings[0].Result; got.Presenter != "Zeb Soanes" || got.Type != presenter.MatchExact {
		t.Errorf("result = %+v, want text match despite embedding failure", got)
	}
}

func TestAnalyzerRecordsBroadcastTimestamp(t *testing.T) {
	file := File{
		Path:    "/archive/2026/01/ShippingFCST-260115_AM_052000UTC--kiwisdr1--avg-36.mp3",
		Name:    "ShippingFCST-260115_AM_052000UTC--kiwisdr1--avg-36.mp3",
		Year:    "2026",
		Month:   "01",
		ModTime: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
	}
	fake := &fakeTranscriber{transcripts: map[string]string{file.Path: "This is Zeb Soanes."}}
	analyzer := NewAnalyzer(analyzerResolver(t), fake, nil, 1, logging.NewNop())

	_, recordings, err := analyzer.Run(context.Background(), []File{file})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := time.Date(2026, 1, 15, 5, 20, 0, 0, time.UTC)
	if got := recordings[0].Timestamp; !got.Equal(want) {
		t.Errorf("recording timestamp = %v, want broadcast time %v", got, want)
	}
}

func TestAnalyzerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fake := &fakeTranscriber{transcripts: map[string]string{}}
	analyzer := NewAnalyzer(analyzerResolver(t), fake, nil, 1, logging.NewNop())

	_, _, err := analyzer.Run(ctx, analyzerFiles())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run err = %v, want context.Canceled", err)
	}
}
