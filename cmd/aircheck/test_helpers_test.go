package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"aircheck/internal/config"
	"aircheck/internal/testsupport"
)

type cliTestEnv struct {
	baseDir        string
	homeDir        string
	configPath     string
	archiveDir     string
	dataDir        string
	presentersFile string
	voiceprintDB   string
	matching       bool
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("AIRCHECK_LLM_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "")

	env := &cliTestEnv{
		baseDir:        base,
		homeDir:        homeDir,
		configPath:     filepath.Join(homeDir, ".config", "aircheck", "config.toml"),
		archiveDir:     filepath.Join(base, "archive"),
		dataDir:        filepath.Join(base, "data"),
		presentersFile: testsupport.WriteDirectoryFile(t, base),
		voiceprintDB:   filepath.Join(base, "voiceprints.json"),
		matching:       true,
	}
	if err := os.MkdirAll(env.archiveDir, 0o755); err != nil {
		t.Fatalf("mkdir archive: %v", err)
	}
	env.writeConfig(t)
	return env
}

func (env *cliTestEnv) writeConfig(t *testing.T) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
archive_dir = %q
data_dir = %q
log_dir = %q
presenters_file = %q
voiceprint_db = %q

[matching]
enabled = %t

[disambiguator]
enabled = false
`,
		env.archiveDir,
		env.dataDir,
		filepath.Join(env.baseDir, "logs"),
		env.presentersFile,
		env.voiceprintDB,
		env.matching,
	)
	if err := os.MkdirAll(filepath.Dir(env.configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func loadTestConfig(t *testing.T, env *cliTestEnv) *config.Config {
	t.Helper()
	cfg, _, _, err := config.Load(env.configPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
