// Package whisper manages the on-disk catalog of whisper.cpp models:
// what exists upstream, what is installed locally, and fetching the
// ggml weights from Hugging Face.
package whisper

import (
	"os"
	"path/filepath"
)

// Model describes one entry in the whisper.cpp model catalog.
type Model struct {
	ID           string
	Name         string
	Filename     string
	Size         string
	SizeBytes    int64
	Multilingual bool
}

var downloadBase = "https://huggingface.co/ggerganov/whisper.cpp/resolve/main"

var catalog = []Model{
	{ID: "tiny.en", Name: "Tiny English", Filename: "ggml-tiny.en.bin", Size: "75MB", SizeBytes: 75_000_000},
	{ID: "base.en", Name: "Base English", Filename: "ggml-base.en.bin", Size: "142MB", SizeBytes: 142_000_000},
	{ID: "small.en", Name: "Small English", Filename: "ggml-small.en.bin", Size: "466MB", SizeBytes: 466_000_000},
	{ID: "medium.en", Name: "Medium English", Filename: "ggml-medium.en.bin", Size: "1.5GB", SizeBytes: 1_500_000_000},
	{ID: "tiny", Name: "Tiny", Filename: "ggml-tiny.bin", Size: "75MB", SizeBytes: 75_000_000, Multilingual: true},
	{ID: "base", Name: "Base", Filename: "ggml-base.bin", Size: "142MB", SizeBytes: 142_000_000, Multilingual: true},
	{ID: "small", Name: "Small", Filename: "ggml-small.bin", Size: "466MB", SizeBytes: 466_000_000, Multilingual: true},
	{ID: "medium", Name: "Medium", Filename: "ggml-medium.bin", Size: "1.5GB", SizeBytes: 1_500_000_000, Multilingual: true},
	{ID: "large-v3", Name: "Large V3", Filename: "ggml-large-v3.bin", Size: "3GB", SizeBytes: 3_000_000_000, Multilingual: true},
}

// Catalog returns every model known upstream, installed or not.
func Catalog() []Model {
	out := make([]Model, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a catalog entry by ID.
func Lookup(id string) (Model, bool) {
	for _, m := range catalog {
		if m.ID == id {
			return m, true
		}
	}
	return Model{}, false
}

// Dir returns the local model directory. TUNESCRIBE_MODEL_DIR overrides
// the default under the user's data dir.
func Dir() (string, error) {
	if dir := os.Getenv("TUNESCRIBE_MODEL_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "tunescribe", "models", "whisper"), nil
}

// Path returns where the model's weights live (or would live) on disk.
// Empty string for unknown IDs.
func Path(id string) string {
	m, ok := Lookup(id)
	if !ok {
		return ""
	}
	dir, err := Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, m.Filename)
}

// DownloadURL returns the upstream URL for the model's weights.
func DownloadURL(id string) string {
	m, ok := Lookup(id)
	if !ok {
		return ""
	}
	return downloadBase + "/" + m.Filename
}

// IsInstalled reports whether the model's weights are present and non-empty.
func IsInstalled(id string) bool {
	path := Path(id)
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Size() > 0
}

// ListInstalled returns the IDs of all installed models, in catalog order.
func ListInstalled() []string {
	var ids []string
	for _, m := range catalog {
		if IsInstalled(m.ID) {
			ids = append(ids, m.ID)
		}
	}
	return ids
}
