package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AddTranscriptionFlags adds flags related to transcription functionality
func AddTranscriptionFlags(cmd *cobra.Command) {
	cmd.Flags().String("engine", "", "Transcription engine (whisperx or openai)")
	cmd.Flags().String("device", "", "Compute device for local transcription (cuda or cpu)")
	cmd.Flags().Int("batch-size", 0, "Batch size for local transcription (1, 4, 8 or 16)")
	cmd.Flags().String("precision", "", "Numeric precision for local transcription (int8, float16 or float32)")
	cmd.Flags().StringP("model", "m", "", "Whisper model to use")
	cmd.Flags().Bool("keep-audio", false, "Keep the downloaded audio file after transcription")
}

// HandleTranscriptionFlags overrides config values with explicitly set
// flags and validates the resulting engine settings
func HandleTranscriptionFlags(cmd *cobra.Command, config *Config) error {
	if engine, _ := cmd.Flags().GetString("engine"); engine != "" {
		config.Engine = engine
	}
	if device, _ := cmd.Flags().GetString("device"); device != "" {
		config.Device = device
	}
	if batchSize, _ := cmd.Flags().GetInt("batch-size"); batchSize != 0 {
		config.BatchSize = batchSize
	}
	if precision, _ := cmd.Flags().GetString("precision"); precision != "" {
		config.Precision = precision
	}
	if model, _ := cmd.Flags().GetString("model"); model != "" {
		config.Model = model
	}
	if keepAudio, _ := cmd.Flags().GetBool("keep-audio"); keepAudio {
		config.KeepAudio = true
	}

	if config.Engine != EngineWhisperX && config.Engine != EngineOpenAI {
		return fmt.Errorf("unsupported engine: %q (supported: %s, %s)",
			config.Engine, EngineWhisperX, EngineOpenAI)
	}

	return config.TranscriptionConfig().Validate()
}

// HandleVerboseFlag processes the --verbose flag to update config
func HandleVerboseFlag(cmd *cobra.Command, config *Config) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	config.Verbose = verbose
	return nil
}
