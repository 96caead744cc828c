package internal

import (
	"context"
	"fmt"
	"os/exec"
)

// CommandRunner executes external commands
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// DefaultCommandRunner implements CommandRunner
type DefaultCommandRunner struct{}

func (r *DefaultCommandRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

// Engine names accepted in configuration and flags
const (
	EngineWhisperX = "whisperx"
	EngineOpenAI   = "openai"
)

// NewTranscriber creates the transcription engine selected by the config
func NewTranscriber(config *Config, ui UIManager) (Transcriber, error) {
	switch config.Engine {
	case EngineWhisperX:
		return NewWhisperX(&DefaultCommandRunner{}, config.TempDir, config.Verbose), nil
	case EngineOpenAI:
		if err := ValidateOpenAIAPIKey(config.OpenAIAPIKey); err != nil {
			return nil, err
		}
		audio := NewAudio(&DefaultCommandRunner{}, config.TempDir, config.Verbose)
		return NewWhisperAPI(config.OpenAIAPIKey, audio, ui, config.Verbose), nil
	default:
		return nil, fmt.Errorf("unsupported engine: %q (supported: %s, %s)",
			config.Engine, EngineWhisperX, EngineOpenAI)
	}
}

// Ensure both engines satisfy the interface
var _ Transcriber = (*WhisperX)(nil)
var _ Transcriber = (*WhisperAPI)(nil)
