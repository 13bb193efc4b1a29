package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"

	"github.com/leonardotrapani/tunescribe/internal/provider"
)

var ErrConfigNotFound = errors.New("config not found")

func GetConfigPath() (string, error) {
	if path := os.Getenv("TUNESCRIBE_CONFIG"); path != "" {
		return path, nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}

	dir := filepath.Join(configDir, "tunescribe")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file, falling back to defaults when it is absent.
// Unset fields are filled from DefaultConfig so a partial file stays valid.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config.applyThreadsDefault()
		return config, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat config file %s: %w", configPath, err)
	}

	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	if config.Providers == nil {
		config.Providers = make(map[string]ProviderConfig)
	}
	config.applyThreadsDefault()

	return config, nil
}

// applyThreadsDefault sets default threads for local transcription if not explicitly set
func (c *Config) applyThreadsDefault() {
	if c.Transcription.Threads == 0 {
		threads := runtime.NumCPU() - 1
		if threads < 1 {
			threads = 1
		}
		c.Transcription.Threads = threads
	}
}

// ResolveAPIKey returns the credential for a provider, preferring the config
// file over the environment.
func (c *Config) ResolveAPIKey(name string) string {
	if pc, ok := c.Providers[name]; ok && pc.APIKey != "" {
		return pc.APIKey
	}
	if env := provider.EnvVarForProvider(name); env != "" {
		return os.Getenv(env)
	}
	return ""
}

// ResolveTranslationAPIKey returns the credential for the translation
// backend. OpenAI keys live under providers.openai or OPENAI_API_KEY.
func (c *Config) ResolveTranslationAPIKey() string {
	if pc, ok := c.Providers[c.Translation.Provider]; ok && pc.APIKey != "" {
		return pc.APIKey
	}
	if c.Translation.Provider == "openai" || c.Translation.Provider == "" {
		return os.Getenv(provider.EnvOpenAIKey)
	}
	return ""
}

// APIKeys materializes the per-provider credential map handed to the
// transcription pipeline.
func (c *Config) APIKeys() map[string]string {
	keys := make(map[string]string)
	for _, name := range provider.Names() {
		if key := c.ResolveAPIKey(name); key != "" {
			keys[name] = key
		}
	}
	return keys
}
