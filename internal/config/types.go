package config

import "time"

type Config struct {
	Server        ServerConfig              `toml:"server"`
	Downloads     DownloadsConfig           `toml:"downloads"`
	Transcription TranscriptionConfig       `toml:"transcription"`
	Translation   TranslationConfig         `toml:"translation"`
	Providers     map[string]ProviderConfig `toml:"providers"`
	Logging       LoggingConfig             `toml:"logging"`
}

type ServerConfig struct {
	Address         string        `toml:"address"`
	ReadTimeout     time.Duration `toml:"read_timeout"`
	WriteTimeout    time.Duration `toml:"write_timeout"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

type DownloadsConfig struct {
	Dir    string        `toml:"dir"`
	MaxAge time.Duration `toml:"max_age"` // 0 disables cleanup
}

type TranscriptionConfig struct {
	Provider         string        `toml:"provider"`
	Model            string        `toml:"model"`
	Language         string        `toml:"language"`
	Threads          int           `toml:"threads"`           // CPU threads for local transcription (0 = auto: NumCPU-1)
	SilenceThreshold float64       `toml:"silence_threshold"` // seconds of silence that close a segment
	CloudTimeout     time.Duration `toml:"cloud_timeout"`
}

type TranslationConfig struct {
	Enabled  bool   `toml:"enabled"`
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
}

// ProviderConfig holds API key for a provider
type ProviderConfig struct {
	APIKey string `toml:"api_key"`
}

type LoggingConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error"
}
