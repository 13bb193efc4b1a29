package transcriber

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonardotrapani/tunescribe/internal/provider"
)

func testModel(baseURL string) *provider.Model {
	return &provider.Model{
		ID:       "scribe_v1",
		Endpoint: &provider.EndpointConfig{BaseURL: baseURL, Path: "/v1/speech-to-text"},
	}
}

func writeTempAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.mp3")
	require.NoError(t, os.WriteFile(path, []byte("fake-mp3-bytes"), 0o600))
	return path
}

func TestElevenLabsAdapter_Decode(t *testing.T) {
	var gotModelID, gotGranularity, gotAPIKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("xi-api-key")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotModelID = r.FormValue("model_id")
		gotGranularity = r.FormValue("timestamps_granularity")

		_, _, err := r.FormFile("file")
		require.NoError(t, err)

		json.NewEncoder(w).Encode(map[string]any{
			"language_code":        "eng",
			"language_probability": 0.97,
			"text":                 "Hello world!",
			"words": []map[string]any{
				{"text": "Hello", "start": 0.0, "end": 0.5, "type": "word"},
				{"text": " ", "start": 0.5, "end": 0.5, "type": "spacing"},
				{"text": "world!", "start": 0.5, "end": 1.2, "type": "word"},
			},
		})
	}))
	defer srv.Close()

	adapter := NewElevenLabsAdapter(testModel(srv.URL), "test-key", 1.0, 30*time.Second, nil)

	detection, err := adapter.Decode(context.Background(), Request{FilePath: writeTempAudio(t)})
	require.NoError(t, err)

	assert.Equal(t, "test-key", gotAPIKey)
	assert.Equal(t, "scribe_v1", gotModelID)
	assert.Equal(t, "word", gotGranularity)

	// ISO 639-3 code comes back normalized
	assert.Equal(t, "en", detection.Language)
	require.NotNil(t, detection.LanguageProbability)
	assert.Equal(t, 0.97, *detection.LanguageProbability)
	assert.Equal(t, 1.2, detection.FileDuration)

	require.Len(t, detection.Segments, 1)
	assert.Equal(t, "Hello world!", detection.Segments[0].Text)
}

func TestElevenLabsAdapter_RemoteURL(t *testing.T) {
	var gotURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotURL = r.FormValue("cloud_storage_url")
		if _, _, err := r.FormFile("file"); err == nil {
			t.Error("file part must be absent in remote-URL mode")
		}
		json.NewEncoder(w).Encode(map[string]any{"language_code": "en", "words": []any{}})
	}))
	defer srv.Close()

	adapter := NewElevenLabsAdapter(testModel(srv.URL), "k", 1.0, 30*time.Second, nil)

	_, err := adapter.Decode(context.Background(), Request{SourceURL: "https://bucket.example/clip.mp3"})
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.example/clip.mp3", gotURL)
}

func TestElevenLabsAdapter_FilePathAndURLExclusive(t *testing.T) {
	adapter := NewElevenLabsAdapter(testModel("http://unused"), "k", 1.0, time.Second, nil)

	_, err := adapter.Decode(context.Background(), Request{FilePath: "/a.mp3", SourceURL: "https://x"})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = adapter.Decode(context.Background(), Request{})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestElevenLabsAdapter_AuthErrorNotRetried(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, `{"detail":"invalid api key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	adapter := NewElevenLabsAdapter(testModel(srv.URL), "bad-key", 1.0, 30*time.Second, nil)

	_, err := adapter.Decode(context.Background(), Request{FilePath: writeTempAudio(t)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAuthentication))
	assert.Equal(t, 1, calls, "auth failures must not be retried")
}

func TestElevenLabsAdapter_ServerErrorRetriedWithBound(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	adapter := NewElevenLabsAdapter(testModel(srv.URL), "k", 1.0, 30*time.Second, nil)

	_, err := adapter.Decode(context.Background(), Request{FilePath: writeTempAudio(t)})
	require.Error(t, err)

	var remote *RemoteServiceError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, http.StatusInternalServerError, remote.StatusCode)
	assert.Contains(t, remote.Body, "upstream exploded")
	assert.Equal(t, 1+maxRetries, calls)
}

func TestElevenLabsAdapter_RecoversAfterTransientFailure(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "temporarily unavailable", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"language_code": "en", "words": []any{}})
	}))
	defer srv.Close()

	adapter := NewElevenLabsAdapter(testModel(srv.URL), "k", 1.0, 30*time.Second, nil)

	_, err := adapter.Decode(context.Background(), Request{FilePath: writeTempAudio(t)})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestElevenLabsAdapter_MissingFile(t *testing.T) {
	adapter := NewElevenLabsAdapter(testModel("http://unused"), "k", 1.0, time.Second, nil)

	_, err := adapter.Decode(context.Background(), Request{FilePath: "/does/not/exist.mp3"})
	require.Error(t, err)
	assert.Equal(t, KindResource, KindOf(err))
}

func TestElevenLabsAdapter_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// consume the upload, then hold the request open until the
		// client hangs up so the cancellation reaches the adapter
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	adapter := NewElevenLabsAdapter(testModel(srv.URL), "k", 1.0, 30*time.Second, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := adapter.Decode(ctx, Request{FilePath: writeTempAudio(t)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
