package main

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"aircheck/internal/corpus"
	"aircheck/internal/presenter"
)

func TestBuildRequiresEmbedderHost(t *testing.T) {
	env := setupCLITestEnv(t)
	labels := writeLabelsFixture(t, env.baseDir)

	_, _, err := runCLI(t, []string{"build", "--labels", labels})
	if err == nil {
		t.Fatal("expected error without an embedder host")
	}
	if !strings.Contains(err.Error(), "embedder.ssh_host") {
		t.Fatalf("error %q does not mention the embedder host", err)
	}
}

func TestBuildRequiresTrainingSamples(t *testing.T) {
	env := setupCLITestEnv(t)

	// Only an unresolved recording: nothing qualifies for training.
	unsuitable := []corpus.Recording{
		corpus.NewRecording("run-1",
			filepath.Join(env.baseDir, "archive", "2026", "01", "unknown.mp3"),
			"unknown.mp3", "2026", "01", time.Date(2026, 1, 10, 4, 48, 0, 0, time.UTC),
			presenter.Result{RawMatch: "Alice Smith", Type: presenter.MatchUnknown}),
	}
	labels := filepath.Join(env.baseDir, "labels.json")
	if err := corpus.WriteLabels(labels, env.archiveDir, "run-1", nil, unsuitable); err != nil {
		t.Fatalf("write labels: %v", err)
	}

	_, _, err := runCLI(t, []string{"build", "--labels", labels})
	if err == nil {
		t.Fatal("expected error when curation selects nothing")
	}
	if !strings.Contains(err.Error(), "no recordings suitable") {
		t.Fatalf("error %q does not mention empty curation", err)
	}
}
