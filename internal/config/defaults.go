package config

const (
	defaultArchiveDir     = "/mnt/rack-shipping"
	defaultDataDir        = "~/.local/share/aircheck"
	defaultLogDir         = "~/.local/share/aircheck/logs"
	defaultPresentersFile = "~/.config/aircheck/presenters.json"
	defaultVoiceprintDB   = "/mnt/rack-shipping/voiceprints/database.json"

	defaultTranscriberScript    = "/usr/local/bin/transcribe_audio.py"
	defaultTranscriberModel     = "base"
	defaultSegmentSeconds       = 45
	defaultEndOffsetSeconds     = 12
	defaultTranscriberTimeout   = 120
	defaultEmbedderScript       = "/usr/local/bin/speaker_recognition.py"
	defaultEmbedderRemoteTemp   = "/tmp/voiceprints"
	defaultEmbedderTimeout      = 120
	defaultDisambiguatorBaseURL = "https://openrouter.ai/api/v1/chat/completions"
	defaultDisambiguatorModel   = "anthropic/claude-3.5-haiku"
	defaultDisambiguatorTimeout = 30

	defaultSimilarityThreshold = 0.7
	defaultEscalationThreshold = 0.85
	defaultBiometricMinimum    = 0.70
	defaultUnknownLabel        = "Unknown Announcer"

	defaultMaxSamples    = 10
	defaultMinConfidence = 0.8

	defaultAnalysisWorkers = 1

	defaultLogLevel  = "info"
	defaultLogFormat = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ArchiveDir:     defaultArchiveDir,
			DataDir:        defaultDataDir,
			LogDir:         defaultLogDir,
			PresentersFile: defaultPresentersFile,
			VoiceprintDB:   defaultVoiceprintDB,
		},
		Transcriber: Transcriber{
			Script:           defaultTranscriberScript,
			Model:            defaultTranscriberModel,
			SegmentSeconds:   defaultSegmentSeconds,
			EndOffsetSeconds: defaultEndOffsetSeconds,
			TimeoutSeconds:   defaultTranscriberTimeout,
		},
		Embedder: Embedder{
			Script:         defaultEmbedderScript,
			RemoteTempDir:  defaultEmbedderRemoteTemp,
			TimeoutSeconds: defaultEmbedderTimeout,
		},
		Disambiguator: Disambiguator{
			Enabled:        true,
			BaseURL:        defaultDisambiguatorBaseURL,
			Model:          defaultDisambiguatorModel,
			TimeoutSeconds: defaultDisambiguatorTimeout,
		},
		Matching: Matching{
			Enabled:             true,
			SimilarityThreshold: defaultSimilarityThreshold,
			EscalationThreshold: defaultEscalationThreshold,
			BiometricMinimum:    defaultBiometricMinimum,
			UnknownLabel:        defaultUnknownLabel,
		},
		Training: Training{
			MaxSamples:    defaultMaxSamples,
			MinConfidence: defaultMinConfidence,
		},
		Analysis: Analysis{
			Workers: defaultAnalysisWorkers,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
