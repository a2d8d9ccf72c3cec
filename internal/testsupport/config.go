package testsupport

import (
	"path/filepath"
	"testing"

	"aircheck/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.ArchiveDir = filepath.Join(base, "archive")
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.PresentersFile = filepath.Join(base, "presenters.json")
	cfg.Paths.VoiceprintDB = filepath.Join(base, "voiceprints", "database.json")
	cfg.Disambiguator.Enabled = false

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}
