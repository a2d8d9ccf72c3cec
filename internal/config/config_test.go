package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"aircheck/internal/config"
)

func TestLoadDefaultConfigExpandsPathsAndFillsDefaults(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("AIRCHECK_LLM_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "aircheck")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Paths.PresentersFile != filepath.Join(tempHome, ".config", "aircheck", "presenters.json") {
		t.Fatalf("unexpected presenters file: %q", cfg.Paths.PresentersFile)
	}
	if !cfg.Matching.Enabled {
		t.Fatal("expected matching enabled by default")
	}
	if cfg.Matching.SimilarityThreshold != 0.7 {
		t.Fatalf("unexpected similarity threshold: %v", cfg.Matching.SimilarityThreshold)
	}
	if cfg.Matching.EscalationThreshold != 0.85 {
		t.Fatalf("unexpected escalation threshold: %v", cfg.Matching.EscalationThreshold)
	}
	if cfg.Matching.UnknownLabel != "Unknown Announcer" {
		t.Fatalf("unexpected unknown label: %q", cfg.Matching.UnknownLabel)
	}
	if cfg.Training.MaxSamples != 10 {
		t.Fatalf("unexpected max samples: %d", cfg.Training.MaxSamples)
	}
	if cfg.Training.MinConfidence != 0.8 {
		t.Fatalf("unexpected min confidence: %v", cfg.Training.MinConfidence)
	}
	if cfg.Disambiguator.APIKey != "" {
		t.Fatalf("expected empty API key without env, got %q", cfg.Disambiguator.APIKey)
	}
	if cfg.Analysis.Workers != 1 {
		t.Fatalf("unexpected worker count: %d", cfg.Analysis.Workers)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("unexpected log format: %q", cfg.Logging.Format)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aircheck.toml")

	cfg := config.Default()
	cfg.Paths.ArchiveDir = filepath.Join(dir, "archive")
	cfg.Paths.DataDir = filepath.Join(dir, "data")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")
	cfg.Paths.PresentersFile = filepath.Join(dir, "presenters.json")
	cfg.Paths.VoiceprintDB = filepath.Join(dir, "voiceprints.json")
	cfg.Transcriber.SSHHost = "whisper-host"
	cfg.Matching.SimilarityThreshold = 0.65
	cfg.Training.MaxSamples = 5

	payload, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	loaded, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, path)
	}
	if loaded.Transcriber.SSHHost != "whisper-host" {
		t.Fatalf("unexpected transcriber host: %q", loaded.Transcriber.SSHHost)
	}
	if loaded.Matching.SimilarityThreshold != 0.65 {
		t.Fatalf("unexpected similarity threshold: %v", loaded.Matching.SimilarityThreshold)
	}
	if loaded.Training.MaxSamples != 5 {
		t.Fatalf("unexpected max samples: %d", loaded.Training.MaxSamples)
	}
	// Unset fields still pick up defaults.
	if loaded.Transcriber.Model != "base" {
		t.Fatalf("unexpected transcriber model: %q", loaded.Transcriber.Model)
	}
}

func TestEmbedderHostFallsBackToTranscriberHost(t *testing.T) {
	dir := t.TempDir()
	path := writeConfigFile(t, dir, map[string]any{
		"paths": map[string]any{
			"data_dir":        filepath.Join(dir, "data"),
			"presenters_file": filepath.Join(dir, "presenters.json"),
		},
		"transcriber": map[string]any{"ssh_host": "shared-host"},
	})

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Embedder.SSHHost != "shared-host" {
		t.Fatalf("embedder host = %q, want transcriber host", cfg.Embedder.SSHHost)
	}
}

func TestAPIKeyFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := writeConfigFile(t, dir, map[string]any{
		"paths": map[string]any{
			"data_dir":        filepath.Join(dir, "data"),
			"presenters_file": filepath.Join(dir, "presenters.json"),
		},
	})

	t.Setenv("AIRCHECK_LLM_API_KEY", "env-key")
	t.Setenv("OPENROUTER_API_KEY", "fallback-key")

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Disambiguator.APIKey != "env-key" {
		t.Fatalf("expected AIRCHECK_LLM_API_KEY to win, got %q", cfg.Disambiguator.APIKey)
	}

	t.Setenv("AIRCHECK_LLM_API_KEY", "")
	cfg, _, _, err = config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Disambiguator.APIKey != "fallback-key" {
		t.Fatalf("expected OPENROUTER_API_KEY fallback, got %q", cfg.Disambiguator.APIKey)
	}
}

func TestConfigFileAPIKeyWinsOverEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := writeConfigFile(t, dir, map[string]any{
		"paths": map[string]any{
			"data_dir":        filepath.Join(dir, "data"),
			"presenters_file": filepath.Join(dir, "presenters.json"),
		},
		"disambiguator": map[string]any{"api_key": "file-key"},
	})

	t.Setenv("AIRCHECK_LLM_API_KEY", "env-key")

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Disambiguator.APIKey != "file-key" {
		t.Fatalf("expected file key to win, got %q", cfg.Disambiguator.APIKey)
	}
}

func TestCreateSample(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")

	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(payload), "[paths]") {
		t.Fatal("sample config missing [paths] section")
	}
	if !strings.Contains(string(payload), "[matching]") {
		t.Fatal("sample config missing [matching] section")
	}

	if err := config.CreateSample(path); err == nil {
		t.Fatal("expected error when sample already exists")
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:    "missing presenters file",
			mutate:  func(c *config.Config) { c.Paths.PresentersFile = " " },
			wantErr: "presenters_file",
		},
		{
			name:    "similarity threshold out of range",
			mutate:  func(c *config.Config) { c.Matching.SimilarityThreshold = 1.5 },
			wantErr: "similarity_threshold",
		},
		{
			name:    "negative biometric minimum",
			mutate:  func(c *config.Config) { c.Matching.BiometricMinimum = -0.1 },
			wantErr: "biometric_minimum",
		},
		{
			name:    "zero max samples",
			mutate:  func(c *config.Config) { c.Training.MaxSamples = 0 },
			wantErr: "max_samples",
		},
		{
			name:    "bad log format",
			mutate:  func(c *config.Config) { c.Logging.Format = "xml" },
			wantErr: "logging.format",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Paths.DataDir = t.TempDir()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func writeConfigFile(t *testing.T, dir string, sections map[string]any) string {
	t.Helper()
	payload, err := toml.Marshal(sections)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(dir, "aircheck.toml")
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
