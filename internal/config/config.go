package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and reference-data locations.
type Paths struct {
	ArchiveDir     string `toml:"archive_dir"`
	DataDir        string `toml:"data_dir"`
	LogDir         string `toml:"log_dir"`
	PresentersFile string `toml:"presenters_file"`
	VoiceprintDB   string `toml:"voiceprint_db"`
}

// Transcriber contains settings for the remote speech-to-text service.
type Transcriber struct {
	SSHHost          string `toml:"ssh_host"`
	Script           string `toml:"script"`
	Model            string `toml:"model"`
	SegmentSeconds   int    `toml:"segment_seconds"`
	EndOffsetSeconds int    `toml:"end_offset_seconds"`
	TimeoutSeconds   int    `toml:"timeout_seconds"`
}

// Embedder contains settings for the remote speaker-embedding service.
type Embedder struct {
	SSHHost        string `toml:"ssh_host"`
	Script         string `toml:"script"`
	RemoteTempDir  string `toml:"remote_temp_dir"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Disambiguator contains settings for the LLM used to resolve uncertain
// presenter names. A missing API key disables escalation without error.
type Disambiguator struct {
	Enabled        bool   `toml:"enabled"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Matching contains presenter-resolution thresholds and policy.
type Matching struct {
	Enabled             bool    `toml:"enabled"`
	SimilarityThreshold float64 `toml:"similarity_threshold"`
	EscalationThreshold float64 `toml:"escalation_threshold"`
	BiometricMinimum    float64 `toml:"biometric_minimum"`
	UnknownLabel        string  `toml:"unknown_label"`
}

// Training contains training-set curation settings.
type Training struct {
	MaxSamples    int     `toml:"max_samples"`
	MinConfidence float64 `toml:"min_confidence"`
}

// Analysis contains archive batch-analysis settings.
type Analysis struct {
	Workers int `toml:"workers"`
}

// Logging contains log output settings.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config encapsulates all configuration values for aircheck.
//
// Configuration sections by subsystem:
//   - Paths: archive location, state directory, reference data files
//   - Transcriber: remote whisper transcription contract
//   - Embedder: remote speaker-embedding contract
//   - Disambiguator: LLM escalation for uncertain name matches
//   - Matching: resolution thresholds and fallback labels
//   - Training: voiceprint training-set curation
//   - Analysis: batch worker settings
//   - Logging: log level and format
type Config struct {
	Paths         Paths         `toml:"paths"`
	Transcriber   Transcriber   `toml:"transcriber"`
	Embedder      Embedder      `toml:"embedder"`
	Disambiguator Disambiguator `toml:"disambiguator"`
	Matching      Matching      `toml:"matching"`
	Training      Training      `toml:"training"`
	Analysis      Analysis      `toml:"analysis"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/aircheck/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("aircheck.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state directories required for analysis runs.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// FFmpegBinary returns the ffmpeg executable name used for segment extraction.
func (c *Config) FFmpegBinary() string {
	return "ffmpeg"
}

// FFprobeBinary returns the ffprobe executable name used for duration probing.
func (c *Config) FFprobeBinary() string {
	return "ffprobe"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists at %s", expanded)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
