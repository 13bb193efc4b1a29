package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrFileNotFound is returned when the input audio file does not exist.
	ErrFileNotFound = errors.New("audio file not found")
	// ErrUnsupportedFormat is returned for file extensions ffmpeg cannot
	// be trusted to decode here.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

// supported input extensions, matching what the download service produces
var validExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".m4a":  true,
	".flac": true,
	".ogg":  true,
}

// Service trims audio files and probes their duration with ffmpeg/ffprobe.
type Service struct {
	downloadsDir string
	logger       *zap.Logger
}

// TrimResult describes a completed trim operation.
type TrimResult struct {
	TrimmedFilePath  string `json:"trimmed_file_path"`
	OriginalDuration string `json:"original_duration"`
	TrimmedDuration  string `json:"trimmed_duration"`
}

func NewService(downloadsDir string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{downloadsDir: downloadsDir, logger: logger}
}

// CheckFile verifies the path exists and carries a supported extension.
func CheckFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !validExtensions[ext] {
		return fmt.Errorf("%w: %s (use mp3, wav, m4a, flac or ogg)", ErrUnsupportedFormat, ext)
	}
	return nil
}

// Trim cuts [startTime, endTime) out of inputPath and writes an mp3 next to
// the other downloads. Times are clock strings as accepted by ParseClock.
func (s *Service) Trim(ctx context.Context, inputPath, startTime, endTime string) (*TrimResult, error) {
	if err := CheckFile(inputPath); err != nil {
		return nil, err
	}

	startSecs, err := ParseClock(startTime)
	if err != nil {
		return nil, fmt.Errorf("start_time: %w", err)
	}
	endSecs, err := ParseClock(endTime)
	if err != nil {
		return nil, fmt.Errorf("end_time: %w", err)
	}
	if startSecs >= endSecs {
		return nil, fmt.Errorf("%w: start_time must be before end_time", ErrInvalidTimeFormat)
	}

	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	outputPath := filepath.Join(s.downloadsDir, fmt.Sprintf("%s_trimmed_%d_%d.mp3", base, int(startSecs), int(endSecs)))

	args := []string{
		"-y",
		"-i", inputPath,
		"-ss", strconv.FormatFloat(startSecs, 'f', 3, 64),
		"-t", strconv.FormatFloat(endSecs-startSecs, 'f', 3, 64),
		"-acodec", "libmp3lame",
		"-q:a", "2",
		outputPath,
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Error("ffmpeg trim failed",
			zap.String("input", inputPath),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("stderr", stderr.String()),
			zap.Error(err))
		return nil, fmt.Errorf("ffmpeg trim: %w", err)
	}

	original, err := s.Duration(ctx, inputPath)
	if err != nil {
		return nil, err
	}
	trimmed, err := s.Duration(ctx, outputPath)
	if err != nil {
		return nil, err
	}

	s.logger.Info("trimmed audio",
		zap.String("input", inputPath),
		zap.String("output", outputPath),
		zap.Duration("elapsed", time.Since(start)))

	return &TrimResult{
		TrimmedFilePath:  outputPath,
		OriginalDuration: FormatClock(original),
		TrimmedDuration:  FormatClock(trimmed),
	}, nil
}

// Duration probes the file duration in seconds with ffprobe.
func (s *Service) Duration(ctx context.Context, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	secs, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("parse ffprobe duration: %w", err)
	}
	return secs, nil
}
