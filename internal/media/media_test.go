package media

import (
	"bytes"
	"context"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToResult(t *testing.T) {
	svc := NewService(t.TempDir(), nil)

	entry := ytSearchEntry{
		ID:       "dQw4w9WgXcQ",
		Title:    "Some Song",
		Uploader: "Some Artist",
		Duration: 213,
	}

	result := svc.toResult(context.Background(), entry)
	assert.Equal(t, "dQw4w9WgXcQ", result.VideoID)
	assert.Equal(t, "Some Song", result.Title)
	assert.Equal(t, "Some Artist", result.Artist)
	assert.Equal(t, "00:03:33", result.Duration)
	assert.Empty(t, result.Colors, "no thumbnail means no colors")
}

func TestToResult_ThumbnailColors(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, twoToneImage()))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(buf.Bytes())
	}))
	defer srv.Close()

	svc := NewService(t.TempDir(), nil)
	entry := ytSearchEntry{
		ID:         "abc",
		Title:      "Colorful",
		Uploader:   "Artist",
		Duration:   10,
		Thumbnails: []ytThumbnail{{URL: srv.URL}},
	}

	result := svc.toResult(context.Background(), entry)
	assert.Equal(t, []string{"#c81414", "#1414c8"}, result.Colors)
	// dominant red reads as dark, so overlay text should be white
	assert.Equal(t, "#ffffff", result.TextColor)
}

func TestToResult_ChannelFallback(t *testing.T) {
	svc := NewService(t.TempDir(), nil)

	result := svc.toResult(context.Background(), ytSearchEntry{ID: "x", Channel: "The Channel"})
	assert.Equal(t, "The Channel", result.Artist)
}

func TestSearch_EmptyQuery(t *testing.T) {
	svc := NewService(t.TempDir(), nil)

	_, err := svc.Search(context.Background(), "   ", 5)
	require.Error(t, err)
}

func TestDownload_EmptyVideoID(t *testing.T) {
	svc := NewService(t.TempDir(), nil)

	_, err := svc.Download(context.Background(), "")
	require.Error(t, err)
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "512 B", humanSize(512))
	assert.Equal(t, "1.0 KB", humanSize(1024))
	assert.Equal(t, "5.2 MB", humanSize(5452595))
	assert.Equal(t, "1.5 GB", humanSize(1610612736))
}

func TestCleanupOldFiles(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, nil)

	stale := filepath.Join(dir, "old.mp3")
	fresh := filepath.Join(dir, "new.mp3")
	require.NoError(t, os.WriteFile(stale, []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(fresh, []byte("x"), 0o600))

	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(stale, past, past))

	svc.CleanupOldFiles(24 * time.Hour)

	_, err := os.Stat(stale)
	assert.True(t, os.IsNotExist(err), "stale file should be removed")
	_, err = os.Stat(fresh)
	assert.NoError(t, err, "fresh file should survive")
}
