package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTranscriber()
	c.normalizeEmbedder()
	c.normalizeDisambiguator()
	c.normalizeMatching()
	c.normalizeTraining()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.ArchiveDir, err = expandPath(c.Paths.ArchiveDir); err != nil {
		return fmt.Errorf("paths.archive_dir: %w", err)
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.PresentersFile, err = expandPath(c.Paths.PresentersFile); err != nil {
		return fmt.Errorf("paths.presenters_file: %w", err)
	}
	if c.Paths.VoiceprintDB, err = expandPath(c.Paths.VoiceprintDB); err != nil {
		return fmt.Errorf("paths.voiceprint_db: %w", err)
	}
	return nil
}

func (c *Config) normalizeTranscriber() {
	if c.Transcriber.Model == "" {
		c.Transcriber.Model = defaultTranscriberModel
	}
	if c.Transcriber.SegmentSeconds <= 0 {
		c.Transcriber.SegmentSeconds = defaultSegmentSeconds
	}
	if c.Transcriber.EndOffsetSeconds < 0 {
		c.Transcriber.EndOffsetSeconds = defaultEndOffsetSeconds
	}
	if c.Transcriber.TimeoutSeconds <= 0 {
		c.Transcriber.TimeoutSeconds = defaultTranscriberTimeout
	}
}

func (c *Config) normalizeEmbedder() {
	if c.Embedder.SSHHost == "" {
		c.Embedder.SSHHost = c.Transcriber.SSHHost
	}
	if c.Embedder.RemoteTempDir == "" {
		c.Embedder.RemoteTempDir = defaultEmbedderRemoteTemp
	}
	if c.Embedder.TimeoutSeconds <= 0 {
		c.Embedder.TimeoutSeconds = defaultEmbedderTimeout
	}
}

func (c *Config) normalizeDisambiguator() {
	if strings.TrimSpace(c.Disambiguator.APIKey) == "" {
		c.Disambiguator.APIKey = strings.TrimSpace(os.Getenv("AIRCHECK_LLM_API_KEY"))
	}
	if strings.TrimSpace(c.Disambiguator.APIKey) == "" {
		c.Disambiguator.APIKey = strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY"))
	}
	if c.Disambiguator.BaseURL == "" {
		c.Disambiguator.BaseURL = defaultDisambiguatorBaseURL
	}
	if c.Disambiguator.Model == "" {
		c.Disambiguator.Model = defaultDisambiguatorModel
	}
	if c.Disambiguator.TimeoutSeconds <= 0 {
		c.Disambiguator.TimeoutSeconds = defaultDisambiguatorTimeout
	}
}

func (c *Config) normalizeMatching() {
	if c.Matching.SimilarityThreshold == 0 {
		c.Matching.SimilarityThreshold = defaultSimilarityThreshold
	}
	if c.Matching.EscalationThreshold == 0 {
		c.Matching.EscalationThreshold = defaultEscalationThreshold
	}
	if c.Matching.BiometricMinimum == 0 {
		c.Matching.BiometricMinimum = defaultBiometricMinimum
	}
	if strings.TrimSpace(c.Matching.UnknownLabel) == "" {
		c.Matching.UnknownLabel = defaultUnknownLabel
	}
}

func (c *Config) normalizeTraining() {
	if c.Training.MaxSamples <= 0 {
		c.Training.MaxSamples = defaultMaxSamples
	}
	if c.Training.MinConfidence == 0 {
		c.Training.MinConfidence = defaultMinConfidence
	}
}

func (c *Config) normalizeLogging() {
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	if c.Analysis.Workers <= 0 {
		c.Analysis.Workers = defaultAnalysisWorkers
	}
}
