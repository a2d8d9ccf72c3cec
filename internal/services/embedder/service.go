package embedder

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"aircheck/internal/logging"
	"aircheck/internal/services"
	"aircheck/internal/voiceprint"
)

// Config captures the remote embedding extraction settings.
type Config struct {
	SSHHost        string
	Script         string
	RemoteTempDir  string
	TimeoutSeconds int
}

// CommandRunner executes an external command and returns its stdout.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Service extracts voiceprint embeddings on the remote speaker-recognition
// host. It satisfies voiceprint.Extractor.
type Service struct {
	cfg    Config
	logger *slog.Logger
	runner CommandRunner
}

// NewService creates an embedding service with the given configuration.
func NewService(cfg Config, logger *slog.Logger) *Service {
	if cfg.RemoteTempDir == "" {
		cfg.RemoteTempDir = "/tmp"
	}
	return &Service{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "embedder"),
		runner: runCommand,
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner CommandRunner) {
	if runner != nil {
		s.runner = runner
	}
}

// Enabled reports whether a remote embedding host is configured.
func (s *Service) Enabled() bool {
	return s != nil && strings.TrimSpace(s.cfg.SSHHost) != ""
}

func (s *Service) timeout() time.Duration {
	if s.cfg.TimeoutSeconds > 0 {
		return time.Duration(s.cfg.TimeoutSeconds) * time.Second
	}
	return 120 * time.Second
}

type remoteResponse struct {
	Embedding []float32 `json:"embedding"`
	Error     string    `json:"error,omitempty"`
}

// Extract copies the audio file to the remote host, runs the extraction
// script, and returns the resulting embedding vector.
func (s *Service) Extract(ctx context.Context, audioPath string) (voiceprint.Embedding, error) {
	if !s.Enabled() {
		return nil, services.Wrap(services.ErrConfiguration, "embedder", "extract", "ssh host not configured", nil)
	}

	remotePath := path.Join(s.cfg.RemoteTempDir, fmt.Sprintf("aircheck_embed_%s.mp3", uuid.NewString()))

	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	if _, err := s.runner(ctx, "scp", "-q", audioPath, s.cfg.SSHHost+":"+remotePath); err != nil {
		return nil, fmt.Errorf("copy audio to remote: %w", err)
	}
	defer func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cleanupCancel()
		_, _ = s.runner(cleanupCtx, "ssh", s.cfg.SSHHost, "rm -f "+remotePath)
	}()

	output, err := s.runner(ctx, "ssh", s.cfg.SSHHost,
		fmt.Sprintf("python3 %s extract %s", s.cfg.Script, remotePath))
	if err != nil {
		return nil, fmt.Errorf("remote extraction: %w", err)
	}

	var response remoteResponse
	if err := json.Unmarshal(output, &response); err != nil {
		return nil, fmt.Errorf("remote extraction: %w", err)
	}
	if response.Error != "" {
		return nil, services.Wrap(services.ErrExternalTool, "embedder", "remote", response.Error, nil)
	}
	if len(response.Embedding) == 0 {
		return nil, services.Wrap(services.ErrExternalTool, "embedder", "remote", "empty embedding returned", nil)
	}

	s.logger.Debug("embedding extracted",
		logging.String(logging.FieldRecording, path.Base(audioPath)),
		logging.Int("dimensions", len(response.Embedding)))
	return voiceprint.Embedding(response.Embedding), nil
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	var stderr strings.Builder
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return nil, fmt.Errorf("%s: %w: %s", name, err, detail)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return output, nil
}
