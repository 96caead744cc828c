package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rtzll/tubescribe/internal"
)

// audioCmd downloads the audio track without transcribing it
var audioCmd = &cobra.Command{
	Use:   "audio [URL]",
	Short: "Download the audio track of a YouTube video",
	Example: `  # Download the best-available audio as mp3
  tubescribe audio "https://www.youtube.com/watch?v=tAP1eZYEuKA"
  tubescribe audio tAP1eZYEuKA`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := internal.NewApp(config)

		youtubeURL, _ := internal.ParseArg(args[0])
		audioFile, err := app.DownloadAudio(cmd.Context(), youtubeURL)
		if err != nil {
			return err
		}

		fmt.Println(audioFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(audioCmd)
}
