package whisper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// ProgressFunc receives running download progress. total is the expected
// size and may come from the catalog when the server omits Content-Length.
type ProgressFunc func(downloaded, total int64)

var downloadClient = &http.Client{Timeout: 30 * time.Minute}

// Download fetches the model's weights into the model directory. The file
// is written to a .part sibling and renamed only on success, so an
// interrupted download never leaves a half-written model behind.
func Download(ctx context.Context, id string, onProgress ProgressFunc) error {
	m, ok := Lookup(id)
	if !ok {
		return fmt.Errorf("unknown model: %s", id)
	}

	dir, err := Dir()
	if err != nil {
		return fmt.Errorf("resolve model directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create model directory: %w", err)
	}

	dest := filepath.Join(dir, m.Filename)
	partPath := dest + ".part"

	out, err := os.Create(partPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	success := false
	defer func() {
		out.Close()
		if !success {
			os.Remove(partPath)
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, DownloadURL(id), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := downloadClient.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: unexpected status %s", id, resp.Status)
	}

	total := resp.ContentLength
	if total < 0 {
		total = m.SizeBytes
	}

	var src io.Reader = resp.Body
	if onProgress != nil {
		src = io.TeeReader(resp.Body, &progressWriter{total: total, fn: onProgress})
	}
	if _, err := io.Copy(out, src); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("write model data: %w", err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("close model file: %w", err)
	}
	if err := os.Rename(partPath, dest); err != nil {
		return fmt.Errorf("finalize download: %w", err)
	}
	success = true
	return nil
}

// Remove deletes an installed model's weights.
func Remove(id string) error {
	if _, ok := Lookup(id); !ok {
		return fmt.Errorf("unknown model: %s", id)
	}
	if !IsInstalled(id) {
		return fmt.Errorf("model not installed: %s", id)
	}
	if err := os.Remove(Path(id)); err != nil {
		return fmt.Errorf("remove model: %w", err)
	}
	return nil
}

type progressWriter struct {
	done  int64
	total int64
	fn    ProgressFunc
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.done += int64(len(p))
	w.fn(w.done, w.total)
	return len(p), nil
}
