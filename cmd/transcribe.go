package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rtzll/tubescribe/internal"
)

// transcribeCmd represents the transcribe command
var transcribeCmd = &cobra.Command{
	Use:   "transcribe [YouTube URL or ID]",
	Short: "Transcribe a YouTube video in one shot",
	Example: `  # Print the plain-text transcript
  tubescribe transcribe "https://www.youtube.com/watch?v=tAP1eZYEuKA"
  tubescribe transcribe tAP1eZYEuKA

  # Save the transcript as JSON
  tubescribe transcribe tAP1eZYEuKA --format json -o transcript.json

  # Prepend a header line to the plain-text output
  tubescribe transcribe tAP1eZYEuKA --header "My Video"

  # Use the hosted Whisper API
  tubescribe transcribe tAP1eZYEuKA --engine openai`,
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

		format, _ := cmd.Flags().GetString("format")
		var output string
		switch format {
		case "json":
			output, err = transcript.JSON()
			if err != nil {
				return err
			}
		case "text":
			header, _ := cmd.Flags().GetString("header")
			if header != "" {
				header += "\n"
			}
			output = transcript.PlainText(header)
		default:
			return fmt.Errorf("unsupported format: %q (supported: json, text)", format)
		}

		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile != "" {
			return os.WriteFile(outputFile, []byte(output), 0644)
		}

		fmt.Println(output)
		return nil
	},
}

func init() {
	internal.AddTranscriptionFlags(transcribeCmd)
	transcribeCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	transcribeCmd.Flags().StringP("format", "f", "text", "Output format (json or text)")
	transcribeCmd.Flags().String("header", "", "Header line for plain-text output")
	rootCmd.AddCommand(transcribeCmd)
}
