package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateTraining(); err != nil {
		return err
	}
	if err := c.validateTimeouts(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.PresentersFile) == "" {
		return errors.New("paths.presenters_file must be set")
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	return nil
}

func (c *Config) validateMatching() error {
	if c.Matching.SimilarityThreshold < 0 || c.Matching.SimilarityThreshold > 1 {
		return errors.New("matching.similarity_threshold must be between 0 and 1")
	}
	if c.Matching.EscalationThreshold < 0 || c.Matching.EscalationThreshold > 1 {
		return errors.New("matching.escalation_threshold must be between 0 and 1")
	}
	if c.Matching.BiometricMinimum < 0 || c.Matching.BiometricMinimum > 1 {
		return errors.New("matching.biometric_minimum must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateTraining() error {
	if c.Training.MaxSamples < 1 {
		return errors.New("training.max_samples must be at least 1")
	}
	if c.Training.MinConfidence < 0 || c.Training.MinConfidence > 1 {
		return errors.New("training.min_confidence must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateTimeouts() error {
	return ensurePositiveMap(map[string]int{
		"transcriber.timeout_seconds":   c.Transcriber.TimeoutSeconds,
		"transcriber.segment_seconds":   c.Transcriber.SegmentSeconds,
		"embedder.timeout_seconds":      c.Embedder.TimeoutSeconds,
		"disambiguator.timeout_seconds": c.Disambiguator.TimeoutSeconds,
		"analysis.workers":              c.Analysis.Workers,
	})
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
