package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leonardotrapani/tunescribe/internal/config"
	"github.com/leonardotrapani/tunescribe/internal/deps"
	"github.com/leonardotrapani/tunescribe/internal/models/whisper"
	"github.com/leonardotrapani/tunescribe/internal/provider"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check external dependencies and credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor()
		},
	}
}

func runDoctor() error {
	fmt.Println(styleHeader.Render("tunescribe doctor"))

	tools := []struct {
		name     string
		status   deps.Status
		usedFor  string
		required bool
	}{
		{"whisper-cli", deps.CheckWhisperCli(), "local transcription", false},
		{"ffmpeg", deps.CheckFFmpeg(), "audio trimming and download post-processing", true},
		{"ffprobe", deps.CheckFFprobe(), "audio duration probing", true},
		{"yt-dlp", deps.CheckYtDlp(), "catalog search and audio download", true},
	}

	for _, tool := range tools {
		if tool.status.Installed {
			fmt.Printf("%s %s %s\n",
				styleAvailable.Render("ok      "),
				styleName.Render(tool.name),
				styleMuted.Render(tool.status.Version))
		} else {
			marker := styleUnavailable.Render("missing ")
			if !tool.required {
				marker = styleUnavailable.Render("optional")
			}
			fmt.Printf("%s %s %s\n",
				marker,
				styleName.Render(tool.name),
				styleMuted.Render("needed for "+tool.usedFor))
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Println()
	if cfg.ResolveAPIKey(provider.ProviderElevenLabs) != "" {
		fmt.Printf("%s ElevenLabs API key configured\n", styleAvailable.Render("ok      "))
	} else {
		fmt.Printf("%s no ElevenLabs API key (set %s or providers.elevenlabs.api_key)\n",
			styleUnavailable.Render("missing "), provider.EnvElevenLabsKey)
	}
	if cfg.ResolveTranslationAPIKey() != "" {
		fmt.Printf("%s OpenAI API key configured\n", styleAvailable.Render("ok      "))
	} else {
		fmt.Printf("%s no OpenAI API key, translation unavailable\n", styleUnavailable.Render("missing "))
	}

	installed := whisper.ListInstalled()
	fmt.Println()
	if len(installed) == 0 {
		fmt.Println(styleMuted.Render("no local whisper models installed (run: tunescribe model download base)"))
	} else {
		fmt.Printf("installed whisper models: %v\n", installed)
	}

	return nil
}
