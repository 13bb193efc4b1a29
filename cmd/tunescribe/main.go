package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tunescribe",
	Short: "Music transcription and translation API",
	Long: `tunescribe searches a music catalog, downloads and trims audio, and
transcribes it into timestamped, optionally translated text using a local
whisper.cpp model or the ElevenLabs speech-to-text API.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(
		serveCmd(),
		providersCmd(),
		modelCmd(),
		doctorCmd(),
		versionCmd(),
	)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}
}
