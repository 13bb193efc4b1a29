package transcriber

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/leonardotrapani/tunescribe/internal/provider"
	"github.com/leonardotrapani/tunescribe/internal/transcript"
)

// Request is the provider-agnostic decode request handed to an adapter.
// Exactly one of FilePath and SourceURL is set; SourceURL is only honored
// by cloud adapters.
type Request struct {
	FilePath    string
	SourceURL   string
	Language    string // forced language code, empty = auto-detect
	Diarize     bool
	MaxSpeakers int
	Granularity string // timestamp granularity: "word" (default) or "character"
}

// Detection is the raw adapter output before normalization.
type Detection struct {
	Language            string
	LanguageProbability *float64
	Segments            []transcript.Segment
	FileDuration        float64
}

// Adapter is the single decoding capability both providers implement.
type Adapter interface {
	Decode(ctx context.Context, req Request) (*Detection, error)
}

// Config selects and configures an adapter.
type Config struct {
	Provider         string
	Model            string
	APIKey           string
	Threads          int           // CPU threads for local decoding (0 = auto)
	SilenceThreshold float64       // silence gap in seconds that closes a cloud segment
	Timeout          time.Duration // cloud request timeout
	Logger           *zap.Logger
}

// DefaultSilenceThreshold is the inter-token gap that closes a segment when
// reconstructing cloud output.
const DefaultSilenceThreshold = 1.0

// NewAdapter creates the adapter for the configured provider. The model is
// resolved against the provider registry before any I/O happens.
func NewAdapter(cfg Config) (Adapter, error) {
	model, err := provider.FindModel(cfg.Provider, cfg.Model)
	if err != nil {
		return nil, NewValidationError("%v", err)
	}

	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.SilenceThreshold <= 0 {
		cfg.SilenceThreshold = DefaultSilenceThreshold
	}

	switch cfg.Provider {
	case provider.ProviderWhisperCpp:
		return NewWhisperCppAdapter(model, cfg.Threads, cfg.Logger), nil

	case provider.ProviderElevenLabs:
		if cfg.APIKey == "" {
			return nil, NewProviderError(cfg.Provider, ErrAuthentication, "ElevenLabs API key required")
		}
		return NewElevenLabsAdapter(model, cfg.APIKey, cfg.SilenceThreshold, cfg.Timeout, cfg.Logger), nil

	default:
		return nil, NewValidationError("unsupported provider: %s", cfg.Provider)
	}
}

// terminalPunctuation reports whether a word closes a sentence.
func terminalPunctuation(word string) bool {
	for i := len(word) - 1; i >= 0; i-- {
		switch word[i] {
		case '.', '?', '!':
			return true
		case '"', '\'', ')', ']':
			continue
		default:
			return false
		}
	}
	return false
}
