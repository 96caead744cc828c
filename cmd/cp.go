package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/rtzll/tubescribe/internal"
)

// cpCmd copies the transcript to the system clipboard instead of printing to stdout.
var cpCmd = &cobra.Command{
	Use:   "cp [URL]",
	Short: "Copy a video's transcript to the clipboard",
	Example: `  # Transcribe and copy to the clipboard
  tubescribe cp "https://www.youtube.com/watch?v=tAP1eZYEuKA"
  tubescribe cp tAP1eZYEuKA

  # Use the hosted Whisper API
  tubescribe cp tAP1eZYEuKA --engine openai`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := internal.HandleTranscriptionFlags(cmd, config); err != nil {
			return err
		}

		app := internal.NewApp(config)

		youtubeURL, _ := internal.ParseArg(args[0])
		transcript, _, err := app.Transcript(cmd.Context(), youtubeURL, !config.Quiet)
		if err != nil {
			return err
		}

		if err := clipboard.WriteAll(transcript.PlainText("")); err != nil {
			return fmt.Errorf("copying transcript to clipboard: %w", err)
		}

		if !config.Quiet {
			fmt.Println("Transcript copied to clipboard")
		}

		return nil
	},
}

func init() {
	internal.AddTranscriptionFlags(cpCmd)
	rootCmd.AddCommand(cpCmd)
}
