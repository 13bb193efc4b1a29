package config

import (
	"time"

	"github.com/leonardotrapani/tunescribe/internal/provider"
	"github.com/leonardotrapani/tunescribe/internal/transcriber"
)

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address:         ":8000",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    15 * time.Minute,
			ShutdownTimeout: 10 * time.Second,
		},
		Downloads: DownloadsConfig{
			Dir:    "./downloads",
			MaxAge: 24 * time.Hour,
		},
		Transcription: TranscriptionConfig{
			Provider:         provider.ProviderWhisperCpp,
			Model:            "",
			Language:         "",
			Threads:          0,
			SilenceThreshold: transcriber.DefaultSilenceThreshold,
			CloudTimeout:     5 * time.Minute,
		},
		Translation: TranslationConfig{
			Enabled:  false,
			Provider: "openai",
			Model:    "gpt-4o-mini",
		},
		Providers: make(map[string]ProviderConfig),
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
