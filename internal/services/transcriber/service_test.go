package transcriber

import (
	"context"
	"errors"
	"strings"
	"testing"

	"aircheck/internal/logging"
	"aircheck/internal/services"
)

type runnerCall struct {
	name string
	args []string
}

func newTestService(t *testing.T, responses map[string]func(call runnerCall) ([]byte, error)) (*Service, *[]runnerCall) {
	t.Helper()
	svc := NewService(Config{
		SSHHost:          "whisper-host",
		Script:           "/opt/transcribe_audio.py",
		Model:            "base",
		SegmentSeconds:   45,
		EndOffsetSeconds: 12,
		TimeoutSeconds:   30,
	}, logging.NewNop())

	calls := &[]runnerCall{}
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		call := runnerCall{name: name, args: args}
		*calls = append(*calls, call)
		if handler, ok := responses[name]; ok {
			return handler(call)
		}
		return nil, nil
	})
	return svc, calls
}

func TestTranscribeSignoff(t *testing.T) {
	svc, calls := newTestService(t, map[string]func(runnerCall) ([]byte, error){
		"ffprobe": func(runnerCall) ([]byte, error) {
			return []byte("754.3\n"), nil
		},
		"ssh": func(call runnerCall) ([]byte, error) {
			if strings.Contains(call.args[len(call.args)-1], "rm -f") {
				return nil, nil
			}
			return []byte(`{"text": "This is Zeb Soanes.", "language": "en", "duration": 45.0}`), nil
		},
	})

	got, err := svc.TranscribeSignoff(context.Background(), "/archive/2026/01/a.mp3")
	if err != nil {
		t.Fatalf("TranscribeSignoff: %v", err)
	}
	if got.Text != "This is Zeb Soanes." || got.Language != "en" {
		t.Errorf("Result = %+v, want the remote transcript", got)
	}

	var sawExtract, sawCopy bool
	for _, call := range *calls {
		switch call.name {
		case "ffmpeg":
			sawExtract = true
			// Segment starts at duration - segment - end offset.
			joined := strings.Join(call.args, " ")
			if !strings.Contains(joined, "-ss 697.30") {
				t.Errorf("ffmpeg args = %q, want segment start 697.30", joined)
			}
			if !strings.Contains(joined, "-ar 16000") || !strings.Contains(joined, "-ac 1") {
				t.Errorf("ffmpeg args = %q, want 16 kHz mono output", joined)
			}
		case "scp":
			sawCopy = true
			if !strings.HasPrefix(call.args[len(call.args)-1], "whisper-host:") {
				t.Errorf("scp target = %q, want the configured host", call.args[len(call.args)-1])
			}
		}
	}
	if !sawExtract || !sawCopy {
		t.Errorf("calls = %v, want ffmpeg extraction and scp upload", *calls)
	}

	last := (*calls)[len(*calls)-1]
	if last.name != "ssh" || !strings.Contains(strings.Join(last.args, " "), "rm -f") {
		t.Errorf("last call = %v, want remote temp cleanup", last)
	}
}

func TestTranscribeSignoffShortRecording(t *testing.T) {
	svc, calls := newTestService(t, map[string]func(runnerCall) ([]byte, error){
		"ffprobe": func(runnerCall) ([]byte, error) {
			return []byte("30.0"), nil
		},
		"ssh": func(call runnerCall) ([]byte, error) {
			return []byte(`{"text": "short"}`), nil
		},
	})

	if _, err := svc.TranscribeSignoff(context.Background(), "/archive/short.mp3"); err != nil {
		t.Fatalf("TranscribeSignoff: %v", err)
	}
	for _, call := range *calls {
		if call.name == "ffmpeg" {
			// Segment start clamps to zero instead of going negative.
			if !strings.Contains(strings.Join(call.args, " "), "-ss 0.00") {
				t.Errorf("ffmpeg args = %v, want clamped start 0.00", call.args)
			}
		}
	}
}

func TestTranscribeSignoffRemoteError(t *testing.T) {
	svc, _ := newTestService(t, map[string]func(runnerCall) ([]byte, error){
		"ffprobe": func(runnerCall) ([]byte, error) {
			return []byte("754.3"), nil
		},
		"ssh": func(call runnerCall) ([]byte, error) {
			if strings.Contains(call.args[len(call.args)-1], "rm -f") {
				return nil, nil
			}
			return []byte(`{"error": "whisper model failed to load"}`), nil
		},
	})

	_, err := svc.TranscribeSignoff(context.Background(), "/archive/a.mp3")
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("err = %v, want ErrExternalTool for a remote error payload", err)
	}
}

func TestTranscribeSignoffMalformedRemoteOutput(t *testing.T) {
	svc, _ := newTestService(t, map[string]func(runnerCall) ([]byte, error){
		"ffprobe": func(runnerCall) ([]byte, error) {
			return []byte("754.3"), nil
		},
		"ssh": func(call runnerCall) ([]byte, error) {
			if strings.Contains(call.args[len(call.args)-1], "rm -f") {
				return nil, nil
			}
			return []byte("Traceback (most recent call last):"), nil
		},
	})

	if _, err := svc.TranscribeSignoff(context.Background(), "/archive/a.mp3"); err == nil {
		t.Fatal("TranscribeSignoff accepted non-JSON remote output")
	}
}

func TestTranscribeSignoffDisabled(t *testing.T) {
	svc := NewService(Config{}, logging.NewNop())
	if svc.Enabled() {
		t.Error("Enabled() = true without an ssh host")
	}
	if _, err := svc.TranscribeSignoff(context.Background(), "/archive/a.mp3"); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("err = %v, want ErrConfiguration", err)
	}
}
