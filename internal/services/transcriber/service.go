package transcriber

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"aircheck/internal/logging"
	"aircheck/internal/services"
)

// Config captures the remote transcription contract settings.
type Config struct {
	SSHHost          string
	Script           string
	Model            string
	FFmpegBinary     string
	FFprobeBinary    string
	SegmentSeconds   int
	EndOffsetSeconds int
	TimeoutSeconds   int
}

// Result is a completed transcription.
type Result struct {
	Text     string  `json:"text"`
	Language string  `json:"language,omitempty"`
	Duration float64 `json:"duration,omitempty"`
}

type remoteResponse struct {
	Result
	Error string `json:"error,omitempty"`
}

// CommandRunner executes an external command and returns its stdout.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Service transcribes recording sign-off segments via the remote whisper
// host.
type Service struct {
	cfg    Config
	logger *slog.Logger
	runner CommandRunner
}

// NewService creates a transcription service with the given configuration.
func NewService(cfg Config, logger *slog.Logger) *Service {
	if cfg.FFmpegBinary == "" {
		cfg.FFmpegBinary = "ffmpeg"
	}
	if cfg.FFprobeBinary == "" {
		cfg.FFprobeBinary = "ffprobe"
	}
	return &Service{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "transcriber"),
		runner: runCommand,
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner CommandRunner) {
	if runner != nil {
		s.runner = runner
	}
}

// Enabled reports whether a remote transcription host is configured.
func (s *Service) Enabled() bool {
	return s != nil && strings.TrimSpace(s.cfg.SSHHost) != ""
}

func (s *Service) timeout() time.Duration {
	if s.cfg.TimeoutSeconds > 0 {
		return time.Duration(s.cfg.TimeoutSeconds) * time.Second
	}
	return 120 * time.Second
}

// TranscribeSignoff extracts the closing segment of the recording and
// transcribes it remotely. The segment ends shortly before the end of the
// recording so the scripted sign-off lands inside it.
func (s *Service) TranscribeSignoff(ctx context.Context, audioPath string) (Result, error) {
	var result Result
	if !s.Enabled() {
		return result, services.Wrap(services.ErrConfiguration, "transcriber", "transcribe", "ssh host not configured", nil)
	}

	duration, err := s.probeDuration(ctx, audioPath)
	if err != nil {
		return result, err
	}

	segment := float64(s.cfg.SegmentSeconds)
	start := duration - segment - float64(s.cfg.EndOffsetSeconds)
	if start < 0 {
		start = 0
	}

	s.logger.Debug("extracting sign-off segment",
		logging.String(logging.FieldRecording, filepath.Base(audioPath)),
		logging.Float64("start", start),
		logging.Float64("seconds", segment))

	segmentPath, err := s.extractSegment(ctx, audioPath, start, segment)
	if err != nil {
		return result, err
	}
	defer os.Remove(segmentPath)

	return s.transcribeRemote(ctx, segmentPath)
}

func (s *Service) probeDuration(ctx context.Context, audioPath string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()
	output, err := s.runner(ctx, s.cfg.FFprobeBinary,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		audioPath,
	)
	if err != nil {
		return 0, fmt.Errorf("probe duration: %w", err)
	}
	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("probe duration: parse %q: %w", strings.TrimSpace(string(output)), err)
	}
	return duration, nil
}

func (s *Service) extractSegment(ctx context.Context, audioPath string, start, seconds float64) (string, error) {
	segmentPath := filepath.Join(os.TempDir(), fmt.Sprintf("aircheck_signoff_%s.wav", uuid.NewString()))
	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()
	_, err := s.runner(ctx, s.cfg.FFmpegBinary,
		"-y",
		"-i", audioPath,
		"-ss", strconv.FormatFloat(start, 'f', 2, 64),
		"-t", strconv.FormatFloat(seconds, 'f', 2, 64),
		"-ar", "16000",
		"-ac", "1",
		segmentPath,
	)
	if err != nil {
		_ = os.Remove(segmentPath)
		return "", fmt.Errorf("extract segment: %w", err)
	}
	return segmentPath, nil
}

func (s *Service) transcribeRemote(ctx context.Context, segmentPath string) (Result, error) {
	var result Result

	// Per-call remote file name so concurrent workers never collide.
	remotePath := fmt.Sprintf("/tmp/aircheck_segment_%s.wav", uuid.NewString())

	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	if _, err := s.runner(ctx, "scp", "-q", segmentPath, s.cfg.SSHHost+":"+remotePath); err != nil {
		return result, fmt.Errorf("copy segment to remote: %w", err)
	}
	defer func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cleanupCancel()
		_, _ = s.runner(cleanupCtx, "ssh", s.cfg.SSHHost, "rm -f "+remotePath)
	}()

	output, err := s.runner(ctx, "ssh", s.cfg.SSHHost,
		fmt.Sprintf("python3 %s %s %s", s.cfg.Script, remotePath, s.cfg.Model))
	if err != nil {
		return result, fmt.Errorf("remote transcription: %w", err)
	}

	var response remoteResponse
	if err := json.Unmarshal(output, &response); err != nil {
		return result, fmt.Errorf("remote transcription: %w", err)
	}
	if response.Error != "" {
		return result, services.Wrap(services.ErrExternalTool, "transcriber", "remote", response.Error, nil)
	}
	return response.Result, nil
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
