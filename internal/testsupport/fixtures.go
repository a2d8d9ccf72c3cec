package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"aircheck/internal/presenter"
	"aircheck/internal/voiceprint"
)

// DirectoryRecords is a small presenter roster used across tests.
func DirectoryRecords() []presenter.Record {
	return []presenter.Record{
		{Name: "Zeb Soanes", Variations: []string{"Zeb", "Soanes"}},
		{Name: "Corrie Corfield", Variations: []string{"Corrie"}},
		{Name: "Neil Nunes", Variations: []string{"Neil"}},
	}
}

// NewDirectory builds the standard test presenter directory.
func NewDirectory(t testing.TB) *presenter.Directory {
	t.Helper()
	directory, err := presenter.NewDirectory(DirectoryRecords())
	if err != nil {
		t.Fatalf("NewDirectory: %v", err)
	}
	return directory
}

// WriteDirectoryFile writes the standard test roster as a presenters JSON
// file and returns its path.
func WriteDirectoryFile(t testing.TB, dir string) string {
	t.Helper()
	payload := struct {
		Presenters []presenter.Record `json:"presenters"`
	}{Presenters: DirectoryRecords()}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		t.Fatalf("marshal presenters: %v", err)
	}
	path := filepath.Join(dir, "presenters.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write presenters: %v", err)
	}
	return path
}

// NewVoiceprintDatabase builds a small reference database with orthogonal
// voiceprints so similarity outcomes are predictable.
func NewVoiceprintDatabase(t testing.TB) *voiceprint.Database {
	t.Helper()
	db, err := voiceprint.NewDatabase(map[string][]voiceprint.Embedding{
		"Zeb Soanes":      {{1, 0, 0, 0}, {0.9, 0.1, 0, 0}},
		"Corrie Corfield": {{0, 1, 0, 0}, {0.1, 0.9, 0, 0}},
	})
	if err != nil {
		t.Fatalf("NewVoiceprintDatabase: %v", err)
	}
	return db
}
