package transcriber

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/leonardotrapani/tunescribe/internal/language"
	"github.com/leonardotrapani/tunescribe/internal/models/whisper"
	"github.com/leonardotrapani/tunescribe/internal/provider"
)

// WhisperCppAdapter decodes audio locally through the whisper-cli binary.
type WhisperCppAdapter struct {
	model   *provider.Model
	threads int
	logger  *zap.Logger
}

// whisper-cli loads its model per invocation; running two decodes of the
// same model concurrently doubles peak memory for no throughput gain, so
// decodes are serialized per model file.
var (
	modelLocksMu sync.Mutex
	modelLocks   = make(map[string]*sync.Mutex)
)

func lockForModel(path string) *sync.Mutex {
	modelLocksMu.Lock()
	defer modelLocksMu.Unlock()
	mu, ok := modelLocks[path]
	if !ok {
		mu = &sync.Mutex{}
		modelLocks[path] = mu
	}
	return mu
}

// NewWhisperCppAdapter creates a local adapter for the given registry model.
// threads 0 lets whisper-cli pick.
func NewWhisperCppAdapter(model *provider.Model, threads int, logger *zap.Logger) *WhisperCppAdapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WhisperCppAdapter{
		model:   model,
		threads: threads,
		logger:  logger,
	}
}

func (a *WhisperCppAdapter) Decode(ctx context.Context, req Request) (*Detection, error) {
	if req.Language != "" && !a.model.SupportsLanguage(req.Language) {
		return nil, NewProviderError(provider.ProviderWhisperCpp, ErrUnsupportedLanguage,
			"model %s does not support language %q", a.model.ID, req.Language)
	}

	modelPath := whisper.Path(a.model.ID)
	if modelPath == "" {
		return nil, NewProviderError(provider.ProviderWhisperCpp, ErrModelLoad, "unknown model %s", a.model.ID)
	}
	if _, err := os.Stat(modelPath); err != nil {
		return nil, NewProviderError(provider.ProviderWhisperCpp, ErrModelLoad,
			"model file not found: %s (run: tunescribe models download %s)", modelPath, a.model.ID)
	}

	whisperPath, err := exec.LookPath("whisper-cli")
	if err != nil {
		return nil, NewProviderError(provider.ProviderWhisperCpp, ErrModelLoad,
			"whisper-cli not found: install whisper.cpp first")
	}

	outDir, err := os.MkdirTemp("", "tunescribe-whisper-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(outDir)
	outBase := filepath.Join(outDir, "decode")

	args := []string{
		"-m", modelPath,
		"-l", language.ToProviderFormat(req.Language, provider.ProviderWhisperCpp),
		"-ojf", // full JSON output with token timing
		"-of", outBase,
		"-np", // no progress
		"-f", req.FilePath,
	}
	if a.threads > 0 {
		args = append(args, "-t", fmt.Sprintf("%d", a.threads))
	}

	mu := lockForModel(modelPath)
	mu.Lock()
	defer mu.Unlock()

	cmd := exec.CommandContext(ctx, whisperPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	err = cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		a.logger.Error("whisper-cli failed",
			zap.String("model", a.model.ID),
			zap.Duration("elapsed", elapsed),
			zap.String("stderr", stderr.String()),
			zap.Error(err))
		return nil, NewProviderError(provider.ProviderWhisperCpp, ErrDecode, "whisper-cli failed")
	}

	raw, err := os.ReadFile(outBase + ".json")
	if err != nil {
		return nil, NewProviderError(provider.ProviderWhisperCpp, ErrDecode, "whisper-cli produced no JSON output")
	}

	detection, err := parseWhisperOutput(raw)
	if err != nil {
		return nil, NewProviderError(provider.ProviderWhisperCpp, ErrDecode, "%v", err)
	}

	a.logger.Info("local decode finished",
		zap.String("model", a.model.ID),
		zap.Duration("elapsed", elapsed),
		zap.Int("segments", len(detection.Segments)),
		zap.String("language", detection.Language))

	return detection, nil
}
