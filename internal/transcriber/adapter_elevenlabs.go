package transcriber

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/leonardotrapani/tunescribe/internal/language"
	"github.com/leonardotrapani/tunescribe/internal/provider"
)

// Documented request size ceilings for the ElevenLabs speech-to-text API.
const (
	maxUploadBytes    = 1 << 30 // 1GB direct upload
	maxRemoteURLBytes = 2 << 30 // 2GB via cloud_storage_url
)

// maxRetries bounds transient-failure retries; auth and client errors are
// never retried.
const maxRetries = 2

// ElevenLabsAdapter decodes audio through the ElevenLabs speech-to-text API
// and reconstructs segments from its word-level token stream.
type ElevenLabsAdapter struct {
	client       *http.Client
	endpoint     *provider.EndpointConfig
	apiKey       string
	model        string
	gapThreshold float64
	logger       *zap.Logger
}

// elevenLabsResponse is the raw API response.
type elevenLabsResponse struct {
	LanguageCode        string        `json:"language_code"`
	LanguageProbability *float64      `json:"language_probability,omitempty"`
	Text                string        `json:"text"`
	Words               []scribeToken `json:"words"`
}

type elevenLabsErrorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// NewElevenLabsAdapter creates a cloud adapter for the given registry model.
func NewElevenLabsAdapter(model *provider.Model, apiKey string, gapThreshold float64, timeout time.Duration, logger *zap.Logger) *ElevenLabsAdapter {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ElevenLabsAdapter{
		client:       &http.Client{Timeout: timeout},
		endpoint:     model.Endpoint,
		apiKey:       apiKey,
		model:        model.ID,
		gapThreshold: gapThreshold,
		logger:       logger,
	}
}

func (a *ElevenLabsAdapter) Decode(ctx context.Context, req Request) (*Detection, error) {
	if req.FilePath != "" && req.SourceURL != "" {
		return nil, NewValidationError("file_path and source_url are mutually exclusive")
	}
	if req.FilePath == "" && req.SourceURL == "" {
		return nil, NewValidationError("either file_path or source_url is required")
	}

	if req.FilePath != "" {
		info, err := os.Stat(req.FilePath)
		if err != nil {
			return nil, NewResourceError(err, "audio file not found: %s", req.FilePath)
		}
		if info.Size() > maxUploadBytes {
			return nil, NewProviderError(provider.ProviderElevenLabs, ErrPayloadTooLarge,
				"file is %d bytes, direct upload limit is %d", info.Size(), maxUploadBytes)
		}
	}

	var (
		resp *elevenLabsResponse
		err  error
	)
	for attempt := 0; ; attempt++ {
		resp, err = a.transcribeOnce(ctx, req)
		if err == nil || !retryable(err) || attempt == maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * 500 * time.Millisecond
		a.logger.Warn("remote transcription failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", backoff),
			zap.Error(err))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
	if err != nil {
		return nil, err
	}

	segments := segmentsFromTokens(resp.Words, a.gapThreshold, req.Diarize)

	var duration float64
	for _, w := range resp.Words {
		if w.End > duration {
			duration = w.End
		}
	}

	a.logger.Info("remote transcription finished",
		zap.String("model", a.model),
		zap.Int("tokens", len(resp.Words)),
		zap.Int("segments", len(segments)),
		zap.String("language", resp.LanguageCode))

	return &Detection{
		Language:            language.NormalizeCode(resp.LanguageCode),
		LanguageProbability: resp.LanguageProbability,
		Segments:            segments,
		FileDuration:        duration,
	}, nil
}

// retryable reports whether the failure is worth one more attempt: network
// errors and 5xx responses are, everything else is not.
func retryable(err error) bool {
	var remote *RemoteServiceError
	if errors.As(err, &remote) {
		return remote.Timeout || remote.StatusCode >= 500
	}
	var se *Error
	if errors.As(err, &se) {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func (a *ElevenLabsAdapter) transcribeOnce(ctx context.Context, req Request) (*elevenLabsResponse, error) {
	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(a.writeForm(writer, req))
	}()

	url := a.endpoint.BaseURL + a.endpoint.Path
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, pr)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.Header.Set("xi-api-key", a.apiKey)

	start := time.Now()
	httpResp, err := a.client.Do(httpReq)
	elapsed := time.Since(start)

	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if isTimeout(err) {
			return nil, NewProviderError(provider.ProviderElevenLabs,
				&RemoteServiceError{Timeout: true}, "request timed out after %v", elapsed)
		}
		return nil, fmt.Errorf("elevenlabs request: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(httpResp.Body, 8<<10))
		a.logger.Error("elevenlabs API error",
			zap.Int("status", httpResp.StatusCode),
			zap.Duration("elapsed", elapsed),
			zap.String("body", string(body)))

		switch httpResp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return nil, NewProviderError(provider.ProviderElevenLabs, ErrAuthentication,
				"API rejected credential (status %d)", httpResp.StatusCode)
		case http.StatusRequestEntityTooLarge:
			return nil, NewProviderError(provider.ProviderElevenLabs, ErrPayloadTooLarge,
				"API rejected payload size")
		case http.StatusUnprocessableEntity:
			if detail := errorDetail(body); detail != "" {
				return nil, NewProviderError(provider.ProviderElevenLabs, ErrUnsupportedModel, "%s", detail)
			}
		}
		return nil, NewProviderError(provider.ProviderElevenLabs,
			&RemoteServiceError{StatusCode: httpResp.StatusCode, Body: string(body)}, "transcription failed")
	}

	var result elevenLabsResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &result, nil
}

// writeForm streams the multipart request body: either the audio file itself
// or a remote URL reference, plus the transcription options.
func (a *ElevenLabsAdapter) writeForm(writer *multipart.Writer, req Request) error {
	defer writer.Close()

	fields := map[string]string{
		"model_id":               a.model,
		"timestamps_granularity": req.Granularity,
		"tag_audio_events":       "true",
		"diarize":                strconv.FormatBool(req.Diarize),
	}
	if fields["timestamps_granularity"] == "" {
		fields["timestamps_granularity"] = "word"
	}
	if req.Language != "" {
		fields["language_code"] = language.ToProviderFormat(req.Language, provider.ProviderElevenLabs)
	}
	if req.Diarize && req.MaxSpeakers > 0 {
		fields["num_speakers"] = strconv.Itoa(req.MaxSpeakers)
	}
	if req.SourceURL != "" {
		fields["cloud_storage_url"] = req.SourceURL
	}

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return fmt.Errorf("write field %s: %w", name, err)
		}
	}

	if req.FilePath == "" {
		return nil
	}

	file, err := os.Open(req.FilePath)
	if err != nil {
		return fmt.Errorf("open audio file: %w", err)
	}
	defer file.Close()

	part, err := writer.CreateFormFile("file", filepath.Base(req.FilePath))
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("copy audio data: %w", err)
	}
	return nil
}

func isTimeout(err error) bool {
	var timeoutErr interface{ Timeout() bool }
	return errors.As(err, &timeoutErr) && timeoutErr.Timeout()
}

func errorDetail(body []byte) string {
	var parsed elevenLabsErrorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	return string(parsed.Detail)
}
