package media

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

var ErrNotFound = errors.New("no results")

// SearchResult is one catalog hit.
type SearchResult struct {
	Title     string   `json:"title"`
	Artist    string   `json:"artist"`
	VideoID   string   `json:"video_id"`
	Thumbnail string   `json:"thumbnail"`
	Duration  string   `json:"duration"`
	Colors    []string `json:"colors,omitempty"`
	TextColor string   `json:"text_color,omitempty"`
}

// DownloadResult describes a finished audio download.
type DownloadResult struct {
	FilePath string `json:"file_path"`
	Title    string `json:"title"`
	Duration string `json:"duration"`
	VideoID  string `json:"video_id"`
	FileSize string `json:"file_size"`
}

// Service searches the catalog and downloads audio through yt-dlp.
type Service struct {
	downloadsDir string
	colors       *ColorExtractor
	logger       *zap.Logger
}

func NewService(downloadsDir string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		downloadsDir: downloadsDir,
		colors:       NewColorExtractor(logger),
		logger:       logger,
	}
}

// CleanupOldFiles removes downloads older than maxAge.
func (s *Service) CleanupOldFiles(maxAge time.Duration) {
	entries, err := os.ReadDir(s.downloadsDir)
	if err != nil {
		return
	}
	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(s.downloadsDir, entry.Name())
		if err := os.Remove(path); err == nil {
			s.logger.Info("removed stale download", zap.String("file", entry.Name()))
		}
	}
}
