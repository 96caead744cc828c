package internal

import (
	"context"
	"fmt"
	"math"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// WhisperAPILimit is the maximum file size accepted by OpenAI's Whisper
// API (25 MiB)
const WhisperAPILimit int64 = 25 << 20

// transcriptionClient is the part of the OpenAI client the engine uses
type transcriptionClient interface {
	CreateTranscription(ctx context.Context, request openai.AudioRequest) (openai.AudioResponse, error)
}

// WhisperAPI transcribes audio through OpenAI's hosted Whisper model.
// Files over the API size limit are split into chunks with ffmpeg and
// transcribed sequentially, with segment timestamps shifted back onto
// the original timeline. Device, batch size and precision settings do
// not apply to the hosted engine and are ignored.
type WhisperAPI struct {
	client    transcriptionClient
	audio     *Audio
	ui        UIManager
	verbose   bool
	sizeLimit int64
}

// NewWhisperAPI creates a hosted Whisper engine
func NewWhisperAPI(apiKey string, audio *Audio, ui UIManager, verbose bool) *WhisperAPI {
	return &WhisperAPI{
		client:    openai.NewClient(apiKey),
		audio:     audio,
		ui:        ui,
		verbose:   verbose,
		sizeLimit: WhisperAPILimit,
	}
}

// Transcribe sends the audio to the Whisper API and collects the timed
// segments from the verbose JSON response
func (w *WhisperAPI) Transcribe(ctx context.Context, audioFile string, cfg TranscriptionConfig) (*Transcript, error) {
	info, err := os.Stat(audioFile)
	if err != nil {
		return nil, fmt.Errorf("getting audio file info: %w", err)
	}

	numChunks := int(math.Ceil(float64(info.Size()) / float64(w.sizeLimit)))

	chunks := []string{audioFile}
	var chunkSeconds int
	if numChunks > 1 {
		chunks, chunkSeconds, err = w.audio.Split(ctx, audioFile, numChunks)
		if err != nil {
			return nil, fmt.Errorf("splitting audio: %w", err)
		}
		defer cleanupFiles(chunks...)
	}

	if w.verbose {
		fmt.Printf("Transcribing %s via Whisper API (%d chunk(s))\n", audioFile, len(chunks))
	}

	var bar ProgressBar
	if len(chunks) > 1 {
		bar = w.ui.NewProgressBar(len(chunks), "Transcribing chunks")
		defer bar.Finish()
	}

	transcript := &Transcript{}
	for i, chunkPath := range chunks {
		resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
			Model:    openai.Whisper1,
			FilePath: chunkPath,
			Format:   openai.AudioResponseFormatVerboseJSON,
		})
		if err != nil {
			return nil, fmt.Errorf("transcribing chunk %d: %w", i+1, err)
		}

		// Chunk-relative timestamps are shifted by the chunk's offset in
		// the source file.
		offset := float64(i * chunkSeconds)
		for _, seg := range resp.Segments {
			transcript.Segments = append(transcript.Segments, Segment{
				Start: seg.Start + offset,
				End:   seg.End + offset,
				Text:  seg.Text,
			})
		}
		if transcript.Language == "" {
			transcript.Language = resp.Language
		}

		if bar != nil {
			bar.Set(i + 1)
		}
	}

	return transcript, nil
}
