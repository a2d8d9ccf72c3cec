package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"aircheck/internal/config"
	"aircheck/internal/logging"
	"aircheck/internal/presenter"
	"aircheck/internal/services/embedder"
	"aircheck/internal/services/llm"
	"aircheck/internal/services/transcriber"
	"aircheck/internal/voiceprint"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	log        *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) logger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.log, c.loggerErr = logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		})
	})
	return c.log, c.loggerErr
}

// loadDirectory loads the presenter directory. A missing or malformed file
// is fatal for any command that matches names.
func (c *commandContext) loadDirectory() (*presenter.Directory, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	directory, err := presenter.LoadDirectory(cfg.Paths.PresentersFile)
	if err != nil {
		return nil, fmt.Errorf("load presenter directory: %w", err)
	}
	return directory, nil
}

// loadDatabase loads the voiceprint database when one exists. Absence
// disables biometric matching; a malformed file is fatal.
func (c *commandContext) loadDatabase() (*voiceprint.Database, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Paths.VoiceprintDB == "" {
		return nil, nil
	}
	if _, err := os.Stat(cfg.Paths.VoiceprintDB); os.IsNotExist(err) {
		return nil, nil
	}
	db, err := voiceprint.LoadDatabase(cfg.Paths.VoiceprintDB)
	if err != nil {
		return nil, fmt.Errorf("load voiceprint database: %w", err)
	}
	return db, nil
}

// newDisambiguator returns the LLM escalation client, or nil when the
// disambiguator is disabled or has no credentials.
func (c *commandContext) newDisambiguator() presenter.Disambiguator {
	cfg, err := c.ensureConfig()
	if err != nil || !cfg.Disambiguator.Enabled {
		return nil
	}
	client := llm.NewClient(llm.Config{
		APIKey:         cfg.Disambiguator.APIKey,
		BaseURL:        cfg.Disambiguator.BaseURL,
		Model:          cfg.Disambiguator.Model,
		TimeoutSeconds: cfg.Disambiguator.TimeoutSeconds,
	})
	if !client.Enabled() {
		return nil
	}
	return client
}

func (c *commandContext) newResolver(directory *presenter.Directory, database *voiceprint.Database) (*presenter.Resolver, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	log, err := c.logger()
	if err != nil {
		return nil, err
	}
	return presenter.NewResolver(directory, database, c.newDisambiguator(), presenter.Options{
		SimilarityThreshold: cfg.Matching.SimilarityThreshold,
		EscalationThreshold: cfg.Matching.EscalationThreshold,
		BiometricMinimum:    cfg.Matching.BiometricMinimum,
	}, log), nil
}

func (c *commandContext) newTranscriber() (*transcriber.Service, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	log, err := c.logger()
	if err != nil {
		return nil, err
	}
	return transcriber.NewService(transcriber.Config{
		SSHHost:          cfg.Transcriber.SSHHost,
		Script:           cfg.Transcriber.Script,
		Model:            cfg.Transcriber.Model,
		FFmpegBinary:     cfg.FFmpegBinary(),
		FFprobeBinary:    cfg.FFprobeBinary(),
		SegmentSeconds:   cfg.Transcriber.SegmentSeconds,
		EndOffsetSeconds: cfg.Transcriber.EndOffsetSeconds,
		TimeoutSeconds:   cfg.Transcriber.TimeoutSeconds,
	}, log), nil
}

func (c *commandContext) newEmbedder() (*embedder.Service, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	log, err := c.logger()
	if err != nil {
		return nil, err
	}
	return embedder.NewService(embedder.Config{
		SSHHost:        cfg.Embedder.SSHHost,
		Script:         cfg.Embedder.Script,
		RemoteTempDir:  cfg.Embedder.RemoteTempDir,
		TimeoutSeconds: cfg.Embedder.TimeoutSeconds,
	}, log), nil
}
