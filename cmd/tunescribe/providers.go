package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/leonardotrapani/tunescribe/internal/config"
	"github.com/leonardotrapani/tunescribe/internal/deps"
	"github.com/leonardotrapani/tunescribe/internal/provider"
)

var (
	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginBottom(1)

	styleName = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	styleAvailable = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	styleUnavailable = lipgloss.NewStyle().
				Foreground(lipgloss.Color("9"))

	styleMuted = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

func providersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "Show transcription providers and their capabilities",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProviders()
		},
	}
}

func runProviders() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	provider.SetAvailable(provider.ProviderWhisperCpp, deps.CheckWhisperCli().Installed)
	provider.SetAvailable(provider.ProviderElevenLabs, cfg.ResolveAPIKey(provider.ProviderElevenLabs) != "")

	fmt.Println(styleHeader.Render("Transcription providers"))

	for _, caps := range provider.Snapshot() {
		status := styleAvailable.Render("available")
		if !caps.Available {
			status = styleUnavailable.Render("unavailable")
		}

		kind := "cloud"
		if caps.Local {
			kind = "local"
		}

		fmt.Printf("%s  %s %s\n", styleName.Render(caps.Name), status, styleMuted.Render("("+kind+")"))

		var features []string
		if caps.SupportsDiarization {
			features = append(features, "diarization")
		}
		if caps.SupportsTranslation {
			features = append(features, "translation")
		}
		if len(features) > 0 {
			fmt.Printf("  features: %s\n", strings.Join(features, ", "))
		}
		fmt.Printf("  models:   %s\n", strings.Join(caps.SupportedModels, ", "))
		fmt.Printf("  default:  %s\n\n", caps.DefaultModel)
	}

	return nil
}
