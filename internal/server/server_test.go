package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonardotrapani/tunescribe/internal/audio"
	"github.com/leonardotrapani/tunescribe/internal/config"
	"github.com/leonardotrapani/tunescribe/internal/media"
	"github.com/leonardotrapani/tunescribe/internal/pipeline"
	"github.com/leonardotrapani/tunescribe/internal/provider"
	"github.com/leonardotrapani/tunescribe/internal/transcriber"
	"github.com/leonardotrapani/tunescribe/internal/transcript"
)

type stubAdapter struct {
	detection *transcriber.Detection
	err       error
}

func (a *stubAdapter) Decode(context.Context, transcriber.Request) (*transcriber.Detection, error) {
	return a.detection, a.err
}

func newTestServer(t *testing.T, adapter transcriber.Adapter) *Server {
	t.Helper()

	provider.SetAvailable(provider.ProviderWhisperCpp, true)
	t.Cleanup(func() { provider.SetAvailable(provider.ProviderWhisperCpp, false) })

	cfg := config.DefaultConfig()
	dir := t.TempDir()
	cfg.Downloads.Dir = dir

	pl := pipeline.New(pipeline.Config{
		AdapterFactory: func(transcriber.Config) (transcriber.Adapter, error) {
			return adapter, nil
		},
	}, nil, nil)

	return New(cfg, pl, audio.NewService(dir, nil), media.NewService(dir, nil), nil)
}

func writeAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "song.mp3")
	require.NoError(t, os.WriteFile(path, []byte("fake"), 0o600))
	return path
}

func doJSON(t *testing.T, handler http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &stubAdapter{})
	rec := doJSON(t, srv.Routes(), http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestProviders(t *testing.T) {
	srv := newTestServer(t, &stubAdapter{})
	rec := doJSON(t, srv.Routes(), http.MethodGet, "/api/v1/providers", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var caps []provider.Capabilities
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &caps))
	require.Len(t, caps, 2)

	byName := map[string]provider.Capabilities{}
	for _, c := range caps {
		byName[c.Name] = c
	}
	assert.True(t, byName[provider.ProviderWhisperCpp].Available)
	assert.True(t, byName[provider.ProviderWhisperCpp].Local)
	assert.False(t, byName[provider.ProviderElevenLabs].Available)
	assert.True(t, byName[provider.ProviderElevenLabs].SupportsDiarization)
	assert.Equal(t, "scribe_v1", byName[provider.ProviderElevenLabs].DefaultModel)
}

func TestTranscribe(t *testing.T) {
	prob := 0.9
	srv := newTestServer(t, &stubAdapter{detection: &transcriber.Detection{
		Language:            "pt",
		LanguageProbability: &prob,
		FileDuration:        7.2,
		Segments: []transcript.Segment{
			{Start: 0, End: 2.1, Text: "Olá mundo."},
			{Start: 3.4, End: 5.0, Text: "Tudo bem?"},
		},
	}})

	rec := doJSON(t, srv.Routes(), http.MethodPost, "/api/v1/transcribe", map[string]any{
		"file_path": writeAudio(t),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		transcript.Transcript
		Text string `json:"text"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "pt", body.Language)
	assert.Equal(t, provider.ProviderWhisperCpp, body.Provider)
	require.Len(t, body.Segments, 2)
	assert.Equal(t, "Olá mundo.", body.Segments[0].Text)
	assert.Equal(t, "Olá mundo. Tudo bem?", body.Text)
}

func TestTranscribe_ValidationError(t *testing.T) {
	srv := newTestServer(t, &stubAdapter{})

	rec := doJSON(t, srv.Routes(), http.MethodPost, "/api/v1/transcribe", map[string]any{
		"file_path": writeAudio(t),
		"provider":  "acme",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation", resp.Kind)
}

func TestTranscribe_MissingFile(t *testing.T) {
	srv := newTestServer(t, &stubAdapter{})

	rec := doJSON(t, srv.Routes(), http.MethodPost, "/api/v1/transcribe", map[string]any{
		"file_path": "/no/such/file.mp3",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTranscribe_AuthErrorMapsTo401(t *testing.T) {
	srv := newTestServer(t, &stubAdapter{
		err: transcriber.NewProviderError(provider.ProviderElevenLabs, transcriber.ErrAuthentication, "bad key"),
	})

	rec := doJSON(t, srv.Routes(), http.MethodPost, "/api/v1/transcribe", map[string]any{
		"file_path": writeAudio(t),
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTranscribe_RemoteFailureMapsTo502(t *testing.T) {
	srv := newTestServer(t, &stubAdapter{
		err: transcriber.NewProviderError(provider.ProviderElevenLabs,
			&transcriber.RemoteServiceError{StatusCode: 500, Body: "boom"}, "transcription failed"),
	})

	rec := doJSON(t, srv.Routes(), http.MethodPost, "/api/v1/transcribe", map[string]any{
		"file_path": writeAudio(t),
	})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestTranscribe_InvalidBody(t *testing.T) {
	srv := newTestServer(t, &stubAdapter{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcribe", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTrim_Validation(t *testing.T) {
	srv := newTestServer(t, &stubAdapter{})

	rec := doJSON(t, srv.Routes(), http.MethodPost, "/api/v1/trim", map[string]any{
		"file_path": "/tmp/x.mp3",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTrim_MissingFile(t *testing.T) {
	srv := newTestServer(t, &stubAdapter{})

	rec := doJSON(t, srv.Routes(), http.MethodPost, "/api/v1/trim", map[string]any{
		"file_path":  "/no/such/file.mp3",
		"start_time": "0:10",
		"end_time":   "0:20",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearch_RequiresQuery(t *testing.T) {
	srv := newTestServer(t, &stubAdapter{})

	rec := doJSON(t, srv.Routes(), http.MethodGet, "/api/v1/search", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearch_LimitBounds(t *testing.T) {
	srv := newTestServer(t, &stubAdapter{})

	rec := doJSON(t, srv.Routes(), http.MethodGet, "/api/v1/search?query=test&limit=99", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDownload_RequiresVideoID(t *testing.T) {
	srv := newTestServer(t, &stubAdapter{})

	rec := doJSON(t, srv.Routes(), http.MethodPost, "/api/v1/download", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoot(t *testing.T) {
	srv := newTestServer(t, &stubAdapter{})

	rec := doJSON(t, srv.Routes(), http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv.Routes(), http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
