package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// WhisperX transcribes audio locally by invoking the whisperx CLI. The
// device, batch size and precision settings map directly onto whisperx
// flags; they affect speed and memory footprint, not correctness.
type WhisperX struct {
	cmdRunner CommandRunner
	outputDir string
	verbose   bool
}

// NewWhisperX creates a local whisperx engine
func NewWhisperX(cmdRunner CommandRunner, outputDir string, verbose bool) *WhisperX {
	return &WhisperX{
		cmdRunner: cmdRunner,
		outputDir: outputDir,
		verbose:   verbose,
	}
}

// whisperxOutput mirrors the JSON file whisperx writes with
// --output_format json
type whisperxOutput struct {
	Segments []Segment `json:"segments"`
	Language string    `json:"language"`
}

// Transcribe runs whisperx on the audio file and parses its JSON output
func (w *WhisperX) Transcribe(ctx context.Context, audioFile string, cfg TranscriptionConfig) (*Transcript, error) {
	if err := EnsureDirs(w.outputDir); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	if w.verbose {
		fmt.Printf("Transcribing %s with whisperx (model=%s device=%s batch=%d precision=%s)\n",
			audioFile, cfg.Model, cfg.Device, cfg.BatchSize, cfg.Precision)
	}

	output, err := w.cmdRunner.Run(ctx, "whisperx",
		audioFile,
		"--model", cfg.Model,
		"--device", string(cfg.Device),
		"--batch_size", strconv.Itoa(cfg.BatchSize),
		"--compute_type", string(cfg.Precision),
		"--output_format", "json",
		"--output_dir", w.outputDir)
	if err != nil {
		return nil, fmt.Errorf("whisperx failed: %w\nOutput: %s", err, string(output))
	}

	resultFile := w.resultPath(audioFile)
	data, err := os.ReadFile(resultFile)
	if err != nil {
		return nil, fmt.Errorf("reading whisperx output %s: %w", resultFile, err)
	}
	defer cleanupFiles(resultFile)

	transcript, err := parseWhisperXResult(data)
	if err != nil {
		return nil, err
	}

	if w.verbose {
		fmt.Printf("Transcribed %d segments (language %s)\n", len(transcript.Segments), transcript.Language)
	}
	return transcript, nil
}

// resultPath is where whisperx writes the JSON result for an input file
func (w *WhisperX) resultPath(audioFile string) string {
	base := filepath.Base(audioFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(w.outputDir, name+".json")
}

// parseWhisperXResult converts the whisperx JSON file into a Transcript
func parseWhisperXResult(data []byte) (*Transcript, error) {
	var out whisperxOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parsing whisperx output: %w", err)
	}
	return &Transcript{
		Language: out.Language,
		Segments: out.Segments,
	}, nil
}
