package translate

import (
	"context"
	"fmt"
)

// Translator turns one segment of text from a source language into a target
// language. Implementations must be safe for concurrent use.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// Config holds translator configuration
type Config struct {
	Provider string
	APIKey   string
	Model    string
}

// NewTranslator creates a translator based on the provider
func NewTranslator(cfg Config) (Translator, error) {
	switch cfg.Provider {
	case "openai", "":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		return NewOpenAITranslator(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported translation provider: %s", cfg.Provider)
	}
}
