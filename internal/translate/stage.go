package translate

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/leonardotrapani/tunescribe/internal/language"
	"github.com/leonardotrapani/tunescribe/internal/transcript"
)

// maxWorkers caps the number of concurrent translation calls.
const maxWorkers = 4

// Stage translates transcript segments after normalization. A failed segment
// never fails the whole request: its translated_text stays empty and the
// failure is counted on the result.
type Stage struct {
	translator Translator
	logger     *zap.Logger
}

// NewStage creates a translation stage.
func NewStage(translator Translator, logger *zap.Logger) *Stage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Stage{translator: translator, logger: logger}
}

// Apply translates every segment of tr into targetLang, in place. Segment
// order and timing are untouched. Translation is skipped entirely when the
// target matches the detected language.
func (s *Stage) Apply(ctx context.Context, tr *transcript.Transcript, targetLang string) error {
	if targetLang == "" || len(tr.Segments) == 0 {
		return nil
	}
	if !language.IsTranslatable(targetLang) {
		return &UnsupportedTargetError{Code: targetLang}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if language.NormalizeCode(tr.Language) == targetLang {
		s.logger.Info("translation skipped, already in target language",
			zap.String("language", targetLang))
		return nil
	}

	type job struct {
		index int
		text  string
	}

	jobs := make(chan job)
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed int
	)

	workers := maxWorkers
	if len(tr.Segments) < workers {
		workers = len(tr.Segments)
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				translated, err := s.translator.Translate(ctx, j.text, tr.Language, targetLang)
				if err != nil {
					s.logger.Warn("segment translation failed",
						zap.Int("segment", j.index),
						zap.Error(err))
					mu.Lock()
					failed++
					mu.Unlock()
					continue
				}
				tr.Segments[j.index].TranslatedText = translated
			}
		}()
	}

	for i, seg := range tr.Segments {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return ctx.Err()
		case jobs <- job{index: i, text: seg.Text}:
		}
	}
	close(jobs)
	wg.Wait()

	tr.TranslatedTo = targetLang
	tr.FailedTranslations = failed

	s.logger.Info("translation finished",
		zap.String("target", targetLang),
		zap.Int("segments", len(tr.Segments)),
		zap.Int("failed", failed))
	return nil
}

// UnsupportedTargetError marks a translation target outside the supported
// language list.
type UnsupportedTargetError struct {
	Code string
}

func (e *UnsupportedTargetError) Error() string {
	return "unsupported translation target: " + e.Code
}
