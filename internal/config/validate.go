package config

import (
	"fmt"

	"github.com/leonardotrapani/tunescribe/internal/language"
	"github.com/leonardotrapani/tunescribe/internal/provider"
)

func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return fmt.Errorf("invalid server.address: empty")
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("invalid server.read_timeout: %v", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("invalid server.write_timeout: %v", c.Server.WriteTimeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("invalid server.shutdown_timeout: %v", c.Server.ShutdownTimeout)
	}

	if c.Downloads.Dir == "" {
		return fmt.Errorf("invalid downloads.dir: empty")
	}
	if c.Downloads.MaxAge < 0 {
		return fmt.Errorf("invalid downloads.max_age: %v", c.Downloads.MaxAge)
	}

	if c.Transcription.Provider == "" {
		return fmt.Errorf("invalid transcription.provider: empty")
	}
	p := provider.Get(c.Transcription.Provider)
	if p == nil {
		return fmt.Errorf("unsupported transcription.provider: %s (must be one of %v)",
			c.Transcription.Provider, provider.Names())
	}

	if c.Transcription.Model != "" {
		if _, err := provider.FindModel(c.Transcription.Provider, c.Transcription.Model); err != nil {
			return fmt.Errorf("invalid transcription.model: %w", err)
		}
	}

	if lang := c.Transcription.Language; lang != "" && !language.IsValidCode(language.NormalizeCode(lang)) {
		return fmt.Errorf("invalid transcription.language: %s (use empty string for auto-detect or ISO-639-1 codes like 'en', 'es', 'fr')", lang)
	}

	if c.Transcription.SilenceThreshold < 0 {
		return fmt.Errorf("invalid transcription.silence_threshold: %v", c.Transcription.SilenceThreshold)
	}
	if c.Transcription.CloudTimeout <= 0 {
		return fmt.Errorf("invalid transcription.cloud_timeout: %v", c.Transcription.CloudTimeout)
	}

	if p.RequiresAPIKey() && c.ResolveAPIKey(c.Transcription.Provider) == "" {
		return fmt.Errorf("%s API key required: not found in config (providers.%s.api_key) or environment variable (%s)",
			c.Transcription.Provider, c.Transcription.Provider, provider.EnvVarForProvider(c.Transcription.Provider))
	}

	if c.Translation.Enabled {
		if c.Translation.Provider != "" && c.Translation.Provider != "openai" {
			return fmt.Errorf("invalid translation.provider: %s (must be openai)", c.Translation.Provider)
		}
		if c.ResolveTranslationAPIKey() == "" {
			return fmt.Errorf("OpenAI API key required for translation: not found in config (providers.openai.api_key) or environment variable (%s)", provider.EnvOpenAIKey)
		}
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level: %s (must be debug, info, warn, or error)", c.Logging.Level)
	}

	return nil
}
