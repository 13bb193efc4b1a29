package media

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/leonardotrapani/tunescribe/internal/audio"
)

// ytSearchEntry is the subset of yt-dlp's --dump-json output the search
// endpoint needs.
type ytSearchEntry struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Uploader   string  `json:"uploader"`
	Channel    string  `json:"channel"`
	Duration   float64       `json:"duration"`
	Thumbnails []ytThumbnail `json:"thumbnails"`
}

type ytThumbnail struct {
	URL string `json:"url"`
}

// Search queries the catalog and returns up to limit results. Thumbnail
// colors are filled in best-effort; a failed extraction leaves them empty.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty search query")
	}
	if limit <= 0 {
		limit = 10
	}

	args := []string{
		fmt.Sprintf("ytsearch%d:%s", limit, query),
		"--dump-json",
		"--skip-download",
		"--no-warnings",
		"--ignore-errors",
	}

	cmd := exec.CommandContext(ctx, "yt-dlp", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	s.logger.Info("catalog search", zap.String("query", query), zap.Int("limit", limit))

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// yt-dlp exits non-zero when some entries fail but may still have
		// produced usable output for the rest.
		if stdout.Len() == 0 {
			return nil, fmt.Errorf("yt-dlp search: %w: %s", err, strings.TrimSpace(stderr.String()))
		}
	}

	var results []SearchResult
	scanner := bufio.NewScanner(&stdout)
	scanner.Buffer(make([]byte, 0, 1<<20), 16<<20)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var entry ytSearchEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			s.logger.Warn("skipping unparseable search entry", zap.Error(err))
			continue
		}
		if entry.ID == "" {
			continue
		}
		results = append(results, s.toResult(ctx, entry))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read yt-dlp output: %w", err)
	}

	if len(results) == 0 {
		return nil, ErrNotFound
	}
	return results, nil
}

func (s *Service) toResult(ctx context.Context, entry ytSearchEntry) SearchResult {
	artist := entry.Uploader
	if artist == "" {
		artist = entry.Channel
	}

	var thumbnail string
	if n := len(entry.Thumbnails); n > 0 {
		// last entry is the highest quality
		thumbnail = entry.Thumbnails[n-1].URL
	}

	result := SearchResult{
		Title:     entry.Title,
		Artist:    artist,
		VideoID:   entry.ID,
		Thumbnail: thumbnail,
		Duration:  audio.FormatClock(entry.Duration),
	}
	if thumbnail != "" {
		colors, err := s.colors.FromURL(ctx, thumbnail, 3)
		if err != nil {
			s.logger.Debug("thumbnail color extraction failed",
				zap.String("video_id", entry.ID),
				zap.Error(err))
		} else {
			result.Colors = colors
			if len(colors) > 0 {
				result.TextColor = ContrastColor(colors[0])
			}
		}
	}
	return result
}
