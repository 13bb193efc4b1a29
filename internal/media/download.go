package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/leonardotrapani/tunescribe/internal/audio"
)

// ytDownloadInfo is the metadata yt-dlp prints for a downloaded video.
type ytDownloadInfo struct {
	Title    string  `json:"title"`
	Duration float64 `json:"duration"`
	Uploader string  `json:"uploader"`
}

// Download fetches a video's audio track as 44.1kHz MP3 into the downloads
// directory. The file is named after the video ID so repeated downloads
// overwrite instead of piling up.
func (s *Service) Download(ctx context.Context, videoID string) (*DownloadResult, error) {
	if strings.TrimSpace(videoID) == "" {
		return nil, fmt.Errorf("empty video id")
	}
	if err := os.MkdirAll(s.downloadsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create downloads dir: %w", err)
	}

	url := "https://www.youtube.com/watch?v=" + videoID
	finalPath := filepath.Join(s.downloadsDir, videoID+".mp3")

	args := []string{
		url,
		"--format", "bestaudio[ext=m4a]/bestaudio[ext=webm]/bestaudio",
		"--extract-audio",
		"--audio-format", "mp3",
		"--audio-quality", "192K",
		"--postprocessor-args", "-ar 44100",
		"--output", filepath.Join(s.downloadsDir, videoID+".%(ext)s"),
		"--no-warnings",
		"--print-json",
	}

	cmd := exec.CommandContext(ctx, "yt-dlp", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	s.logger.Info("downloading audio", zap.String("video_id", videoID))

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("yt-dlp download: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	info, err := os.Stat(finalPath)
	if err != nil {
		return nil, fmt.Errorf("download finished but %s is missing: %w", finalPath, err)
	}

	var meta ytDownloadInfo
	if err := json.Unmarshal(stdout.Bytes(), &meta); err != nil {
		s.logger.Warn("unparseable download metadata", zap.Error(err))
	}

	s.logger.Info("download finished",
		zap.String("file", finalPath),
		zap.Int64("bytes", info.Size()))

	return &DownloadResult{
		FilePath: finalPath,
		Title:    meta.Title,
		Duration: audio.FormatClock(meta.Duration),
		VideoID:  videoID,
		FileSize: humanSize(info.Size()),
	}, nil
}

func humanSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMG"[exp])
}
