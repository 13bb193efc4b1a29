package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leonardotrapani/tunescribe/internal/audio"
	"github.com/leonardotrapani/tunescribe/internal/config"
	"github.com/leonardotrapani/tunescribe/internal/deps"
	"github.com/leonardotrapani/tunescribe/internal/logging"
	"github.com/leonardotrapani/tunescribe/internal/media"
	"github.com/leonardotrapani/tunescribe/internal/pipeline"
	"github.com/leonardotrapani/tunescribe/internal/provider"
	"github.com/leonardotrapani/tunescribe/internal/server"
	"github.com/leonardotrapani/tunescribe/internal/translate"
)

func serveCmd() *cobra.Command {
	var jsonLogs bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(jsonLogs)
		},
	}

	cmd.Flags().BoolVar(&jsonLogs, "json-logs", false, "emit logs as JSON")

	return cmd
}

func runServe(jsonLogs bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(logging.Options{Level: cfg.Logging.Level, JSON: jsonLogs})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	manager, err := config.NewManager(logger)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := manager.StartWatching(ctx); err != nil {
		logger.Warn("config hot-reload disabled", zap.Error(err))
	}
	defer manager.Stop()

	cfg = manager.GetConfig()
	markProviderAvailability(cfg, logger)

	var translator translate.Translator
	if cfg.Translation.Enabled {
		translator, err = translate.NewTranslator(translate.Config{
			Provider: cfg.Translation.Provider,
			APIKey:   cfg.ResolveTranslationAPIKey(),
			Model:    cfg.Translation.Model,
		})
		if err != nil {
			return fmt.Errorf("translation: %w", err)
		}
	}

	pl := pipeline.New(pipeline.Config{
		APIKeys:          cfg.APIKeys(),
		Threads:          cfg.Transcription.Threads,
		SilenceThreshold: cfg.Transcription.SilenceThreshold,
		CloudTimeout:     cfg.Transcription.CloudTimeout,
	}, translator, logger)

	audioSvc := audio.NewService(cfg.Downloads.Dir, logger)
	mediaSvc := media.NewService(cfg.Downloads.Dir, logger)

	if cfg.Downloads.MaxAge > 0 {
		go cleanupLoop(ctx, mediaSvc, cfg.Downloads.MaxAge)
	}

	return server.New(cfg, pl, audioSvc, mediaSvc, logger).Run(ctx)
}

// markProviderAvailability probes binaries and credentials once at startup;
// the flags stay read-only for the rest of the process lifetime.
func markProviderAvailability(cfg *config.Config, logger *zap.Logger) {
	whisperOK := deps.CheckWhisperCli().Installed
	provider.SetAvailable(provider.ProviderWhisperCpp, whisperOK)
	if !whisperOK {
		logger.Warn("whisper-cli not found, local transcription disabled")
	}

	elevenOK := cfg.ResolveAPIKey(provider.ProviderElevenLabs) != ""
	provider.SetAvailable(provider.ProviderElevenLabs, elevenOK)
	if !elevenOK {
		logger.Warn("no ElevenLabs API key, cloud transcription disabled")
	}

	for _, tool := range []struct {
		name   string
		status deps.Status
	}{
		{"ffmpeg", deps.CheckFFmpeg()},
		{"ffprobe", deps.CheckFFprobe()},
		{"yt-dlp", deps.CheckYtDlp()},
	} {
		if tool.status.Installed {
			logger.Info("found dependency",
				zap.String("tool", tool.name),
				zap.String("version", tool.status.Version))
		} else {
			logger.Warn("missing dependency, related endpoints will fail",
				zap.String("tool", tool.name))
		}
	}
}

func cleanupLoop(ctx context.Context, svc *media.Service, maxAge time.Duration) {
	svc.CleanupOldFiles(maxAge)

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			svc.CleanupOldFiles(maxAge)
		case <-ctx.Done():
			return
		}
	}
}
