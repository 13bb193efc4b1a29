package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/leonardotrapani/tunescribe/internal/models/whisper"
	"github.com/leonardotrapani/tunescribe/internal/provider"
)

func modelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Manage local transcription models",
	}

	cmd.AddCommand(modelListCmd())
	cmd.AddCommand(modelDownloadCmd())
	cmd.AddCommand(modelRemoveCmd())

	return cmd
}

func modelListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List models for every provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModelList()
		},
	}
}

func runModelList() error {
	for _, name := range provider.Names() {
		p := provider.Get(name)
		fmt.Printf("\n%s:\n", name)
		for _, m := range p.Models() {
			printModelLine(m, m.ID == p.DefaultModel())
		}
	}
	fmt.Println()
	return nil
}

func printModelLine(m provider.Model, isDefault bool) {
	prefix := "  "
	if m.NeedsDownload() {
		if whisper.IsInstalled(m.ID) {
			prefix = "  [x]"
		} else {
			prefix = "  [ ]"
		}
	}

	line := fmt.Sprintf("%s %s", prefix, m.ID)
	if m.Description != "" {
		line += fmt.Sprintf(" - %s", m.Description)
	}
	if m.LocalInfo != nil && m.LocalInfo.Size != "" {
		line += fmt.Sprintf(" [%s]", m.LocalInfo.Size)
	}
	if isDefault {
		line += " (default)"
	}

	fmt.Println(line)
}

func modelDownloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "download <model-name>",
		Short: "Download a local whisper model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModelDownload(cmd.Context(), args[0])
		},
	}
}

func runModelDownload(ctx context.Context, modelName string) error {
	model, err := provider.FindModel(provider.ProviderWhisperCpp, modelName)
	if err != nil {
		return fmt.Errorf("unknown model: %s", modelName)
	}
	if !model.NeedsDownload() {
		return fmt.Errorf("model '%s' has no downloadable weights", modelName)
	}

	if whisper.IsInstalled(modelName) {
		fmt.Printf("model '%s' is already installed at %s\n", modelName, whisper.Path(modelName))
		return nil
	}

	fmt.Printf("downloading %s (%s)...\n", modelName, model.LocalInfo.Size)

	var bar *progressbar.ProgressBar
	err = whisper.Download(ctx, modelName, func(downloaded, total int64) {
		if bar == nil && total > 0 {
			bar = progressbar.NewOptions64(
				total,
				progressbar.OptionSetDescription(modelName),
				progressbar.OptionSetWidth(20),
				progressbar.OptionShowBytes(true),
				progressbar.OptionThrottle(65*time.Millisecond),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionClearOnFinish(),
			)
		}
		if bar != nil {
			_ = bar.Set64(downloaded)
		}
	})
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}
	if bar != nil {
		_ = bar.Finish()
	}

	fmt.Printf("download complete: %s\n", whisper.Path(modelName))
	return nil
}

func modelRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <model-name>",
		Short: "Remove a downloaded whisper model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !whisper.IsInstalled(args[0]) {
				return fmt.Errorf("model '%s' is not installed", args[0])
			}
			if err := whisper.Remove(args[0]); err != nil {
				return fmt.Errorf("remove failed: %w", err)
			}
			fmt.Printf("model '%s' removed\n", args[0])
			return nil
		},
	}
}
