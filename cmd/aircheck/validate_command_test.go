package main

import (
	"encoding/json"
	"testing"

	"aircheck/internal/testsupport"
	"aircheck/internal/voiceprint"
)

func TestValidateDatabaseJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	db := testsupport.NewVoiceprintDatabase(t)
	if err := db.Save(env.voiceprintDB); err != nil {
		t.Fatalf("save database: %v", err)
	}

	out, _, err := runCLI(t, []string{"validate", "--database", env.voiceprintDB, "--json"})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	var stats voiceprint.ValidationStats
	if err := json.Unmarshal([]byte(out), &stats); err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(stats.WithinSpeaker) != 2 {
		t.Fatalf("within-speaker entries = %d, want 2", len(stats.WithinSpeaker))
	}
	if _, ok := stats.WithinSpeaker["Zeb Soanes"]; !ok {
		t.Fatal("missing within-speaker stats for Zeb Soanes")
	}
}

func TestValidateDatabaseTable(t *testing.T) {
	env := setupCLITestEnv(t)
	db := testsupport.NewVoiceprintDatabase(t)
	if err := db.Save(env.voiceprintDB); err != nil {
		t.Fatalf("save database: %v", err)
	}

	out, _, err := runCLI(t, []string{"validate", "--database", env.voiceprintDB})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	requireContains(t, out, "Zeb Soanes")
	requireContains(t, out, "Corrie Corfield")
}

func TestValidateMissingDatabase(t *testing.T) {
	env := setupCLITestEnv(t)

	// voiceprintDB path from config does not exist yet.
	if _, _, err := runCLI(t, []string{"validate"}); err == nil {
		t.Fatal("expected error for a missing database file")
	}
	_ = env
}
