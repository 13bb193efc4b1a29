package translate

import (
	"context"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAITranslator implements Translator using OpenAI's chat completions API
type OpenAITranslator struct {
	client *openai.Client
	config Config
	logger *zap.Logger
}

// NewOpenAITranslator creates a new OpenAI translator
func NewOpenAITranslator(cfg Config) *OpenAITranslator {
	return &OpenAITranslator{
		client: openai.NewClient(cfg.APIKey),
		config: cfg,
		logger: zap.NewNop(),
	}
}

// WithLogger replaces the translator's logger.
func (a *OpenAITranslator) WithLogger(logger *zap.Logger) *OpenAITranslator {
	if logger != nil {
		a.logger = logger
	}
	return a
}

func (a *OpenAITranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if text == "" {
		return "", nil
	}

	model := a.config.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: BuildSystemPrompt(sourceLang, targetLang)},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: 0.3, // Low temperature for faithful translation
	}

	start := time.Now()
	resp, err := a.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		a.logger.Warn("translation API call failed",
			zap.Duration("elapsed", duration),
			zap.Error(err))
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai chat completion: no response choices")
	}

	result := resp.Choices[0].Message.Content
	a.logger.Debug("segment translated",
		zap.Duration("elapsed", duration),
		zap.Int("chars", len(text)))
	return result, nil
}
