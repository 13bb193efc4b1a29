package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/leonardotrapani/tunescribe/internal/audio"
	"github.com/leonardotrapani/tunescribe/internal/language"
	"github.com/leonardotrapani/tunescribe/internal/provider"
	"github.com/leonardotrapani/tunescribe/internal/transcriber"
	"github.com/leonardotrapani/tunescribe/internal/transcript"
	"github.com/leonardotrapani/tunescribe/internal/translate"
)

type State string

const (
	Validating  State = "validating"
	Detecting   State = "detecting"
	Normalizing State = "normalizing"
	Translating State = "translating"
	Done        State = "done"
	Failed      State = "failed"
)

// Request is one transcription job as the HTTP layer hands it over.
type Request struct {
	FilePath      string
	SourceURL     string
	Provider      string
	Model         string
	ForceLanguage string
	TranslateTo   string
	Diarize       bool
	MaxSpeakers   int
	Granularity   string
}

// AdapterFactory builds the decoding adapter for a validated request.
type AdapterFactory func(transcriber.Config) (transcriber.Adapter, error)

// Config holds the process-wide knobs shared by every request.
type Config struct {
	APIKeys          map[string]string // provider name -> credential
	Threads          int
	SilenceThreshold float64
	CloudTimeout     time.Duration

	// AdapterFactory overrides adapter construction; nil means the real
	// provider adapters.
	AdapterFactory AdapterFactory
}

// Pipeline runs transcription requests. It is stateless across requests:
// each Run creates its own state machine and discards it on completion.
type Pipeline struct {
	cfg        Config
	newAdapter AdapterFactory
	translator translate.Translator // nil when translation is not configured
	logger     *zap.Logger
}

func New(cfg Config, translator translate.Translator, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	newAdapter := cfg.AdapterFactory
	if newAdapter == nil {
		newAdapter = transcriber.NewAdapter
	}
	return &Pipeline{
		cfg:        cfg,
		newAdapter: newAdapter,
		translator: translator,
		logger:     logger,
	}
}

// run is the per-request state machine.
type run struct {
	state  State
	logger *zap.Logger
}

func (r *run) transition(next State) {
	r.logger.Debug("state transition",
		zap.String("from", string(r.state)),
		zap.String("to", string(next)))
	r.state = next
}

// Run drives one request through validation, decoding, normalization and the
// optional translation stage.
func (p *Pipeline) Run(ctx context.Context, req Request) (*transcript.Transcript, error) {
	r := &run{state: Validating, logger: p.logger.With(
		zap.String("provider", req.Provider),
		zap.String("model", req.Model))}

	tr, err := p.execute(ctx, r, &req)
	if err != nil {
		failedAt := r.state
		r.transition(Failed)
		r.logger.Warn("transcription failed",
			zap.String("state", string(failedAt)),
			zap.Error(err))
		return nil, err
	}
	r.transition(Done)
	return tr, nil
}

func (p *Pipeline) execute(ctx context.Context, r *run, req *Request) (*transcript.Transcript, error) {
	if err := p.validate(req); err != nil {
		return nil, err
	}

	adapter, err := p.newAdapter(transcriber.Config{
		Provider:         req.Provider,
		Model:            req.Model,
		APIKey:           p.cfg.APIKeys[req.Provider],
		Threads:          p.cfg.Threads,
		SilenceThreshold: p.cfg.SilenceThreshold,
		Timeout:          p.cfg.CloudTimeout,
		Logger:           p.logger,
	})
	if err != nil {
		return nil, err
	}

	r.transition(Detecting)
	detection, err := adapter.Decode(ctx, transcriber.Request{
		FilePath:    req.FilePath,
		SourceURL:   req.SourceURL,
		Language:    req.ForceLanguage,
		Diarize:     req.Diarize,
		MaxSpeakers: req.MaxSpeakers,
		Granularity: req.Granularity,
	})
	if err != nil {
		return nil, err
	}

	r.transition(Normalizing)
	segments, err := transcript.Normalize(detection.Segments)
	if err != nil {
		return nil, transcriber.NewProviderError(req.Provider, err, "adapter produced a malformed transcript")
	}

	tr := &transcript.Transcript{
		Language:            detection.Language,
		LanguageProbability: detection.LanguageProbability,
		FileDuration:        detection.FileDuration,
		Provider:            req.Provider,
		Segments:            segments,
	}

	if req.TranslateTo != "" && req.TranslateTo != tr.Language {
		r.transition(Translating)
		stage := translate.NewStage(p.translator, p.logger)
		if err := stage.Apply(ctx, tr, req.TranslateTo); err != nil {
			return nil, err
		}
	}

	return tr, nil
}

// validate rejects a request before any I/O happens. Every failure here is a
// validation or resource error; the adapters are never constructed.
func (p *Pipeline) validate(req *Request) error {
	prov := provider.Get(req.Provider)
	if prov == nil {
		return transcriber.NewValidationError("unknown provider: %s", req.Provider)
	}
	if !provider.Available(req.Provider) {
		return transcriber.NewValidationError("provider %s is not available", req.Provider)
	}
	if _, err := provider.FindModel(req.Provider, req.Model); err != nil {
		return transcriber.NewValidationError("%v", err)
	}

	if prov.IsLocal() {
		if req.SourceURL != "" {
			return transcriber.NewValidationError("provider %s does not support source_url", req.Provider)
		}
		if req.FilePath == "" {
			return transcriber.NewValidationError("file_path is required")
		}
	} else if req.FilePath != "" && req.SourceURL != "" {
		return transcriber.NewValidationError("file_path and source_url are mutually exclusive")
	} else if req.FilePath == "" && req.SourceURL == "" {
		return transcriber.NewValidationError("either file_path or source_url is required")
	}

	if req.FilePath != "" {
		if err := audio.CheckFile(req.FilePath); err != nil {
			return transcriber.NewResourceError(err, "%s", req.FilePath)
		}
	}

	if req.Diarize && !prov.SupportsDiarization() {
		return transcriber.NewValidationError("provider %s does not support diarization", req.Provider)
	}

	switch req.Granularity {
	case "", "word", "character":
	default:
		return transcriber.NewValidationError("invalid timestamps granularity: %s", req.Granularity)
	}

	req.ForceLanguage = language.NormalizeCode(req.ForceLanguage)
	if req.ForceLanguage != "" && !language.IsValidCode(req.ForceLanguage) {
		return transcriber.NewValidationError("unsupported language code: %s", req.ForceLanguage)
	}

	req.TranslateTo = language.NormalizeCode(req.TranslateTo)
	if req.TranslateTo != "" {
		if p.translator == nil {
			return transcriber.NewValidationError("translation backend is not configured")
		}
		if !language.IsTranslatable(req.TranslateTo) {
			return transcriber.NewValidationError("unsupported translation target: %s", req.TranslateTo)
		}
	}

	return nil
}
