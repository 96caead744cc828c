package internal

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
)

// Audio handles audio file operations using FFmpeg
type Audio struct {
	cmdRunner CommandRunner
	tempDir   string
	verbose   bool
}

// NewAudio creates a new audio processor
func NewAudio(cmdRunner CommandRunner, tempDir string, verbose bool) *Audio {
	return &Audio{
		cmdRunner: cmdRunner,
		tempDir:   tempDir,
		verbose:   verbose,
	}
}

// Duration returns the audio file duration in seconds
func (a *Audio) Duration(ctx context.Context, audioFile string) (float64, error) {
	output, err := a.cmdRunner.Run(ctx, "ffprobe",
		"-i", audioFile,
		"-show_entries", "format=duration",
		"-v", "quiet",
		"-of", "csv=p=0")
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w\nOutput: %s", err, string(output))
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("parsing duration: %w", err)
	}

	return duration, nil
}

// Split divides an audio file into numChunks pieces of equal duration.
// It returns the chunk paths and the per-chunk duration in seconds, so
// callers can map chunk-relative timestamps back to the source timeline.
func (a *Audio) Split(ctx context.Context, audioFile string, numChunks int) ([]string, int, error) {
	if err := EnsureDirs(a.tempDir); err != nil {
		return nil, 0, fmt.Errorf("creating temp directory: %w", err)
	}

	duration, err := a.Duration(ctx, audioFile)
	if err != nil {
		return nil, 0, fmt.Errorf("getting audio duration: %w", err)
	}

	chunkSeconds := int(math.Ceil(duration / float64(numChunks)))
	base := strings.TrimSuffix(filepath.Base(audioFile), filepath.Ext(audioFile))

	chunks := make([]string, 0, numChunks)
	for i := range numChunks {
		output := filepath.Join(a.tempDir, fmt.Sprintf("%s_chunk_%d.mp3", base, i))
		if err := a.extract(ctx, audioFile, i*chunkSeconds, chunkSeconds, output); err != nil {
			cleanupFiles(chunks...)
			return nil, 0, fmt.Errorf("creating chunk %d: %w", i, err)
		}
		chunks = append(chunks, output)
	}

	if a.verbose {
		fmt.Printf("Split %s into %d chunks of %ds\n", audioFile, numChunks, chunkSeconds)
	}
	return chunks, chunkSeconds, nil
}

// extract copies a time span from an audio file without re-encoding
func (a *Audio) extract(ctx context.Context, audioFile string, start, duration int, output string) error {
	cmdOutput, err := a.cmdRunner.Run(ctx, "ffmpeg",
		"-v", "quiet",
		"-i", audioFile,
		"-ss", strconv.Itoa(start),
		"-t", strconv.Itoa(duration),
		"-c:a", "copy",
		"-y", output)
	if err != nil {
		return fmt.Errorf("ffmpeg failed: %w\nOutput: %s", err, string(cmdOutput))
	}
	return nil
}
