package internal

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
)

// ErrMetadataFetch is returned when the video source yields no metadata.
var ErrMetadataFetch = errors.New("metadata fetch failed")

// ErrAudioDownload is returned when the video source yields no audio file.
var ErrAudioDownload = errors.New("audio download failed")

// ErrTranscription is returned when the engine yields no usable transcript.
var ErrTranscription = errors.New("transcription failed")

// ErrInvalidStage is returned when a transition is requested from the
// wrong stage.
var ErrInvalidStage = errors.New("action not valid in current stage")

// ErrEmptyURL is returned when an empty URL string is submitted.
var ErrEmptyURL = errors.New("URL must not be empty")

// VideoSource resolves a video URL to metadata and downloadable audio
type VideoSource interface {
	FetchMetadata(ctx context.Context, url string) (*VideoMetadata, error)
	DownloadAudio(ctx context.Context, url string) (string, error)
}

// Transcriber converts an audio file into timed text segments
type Transcriber interface {
	Transcribe(ctx context.Context, audioFile string, cfg TranscriptionConfig) (*Transcript, error)
}

// Session drives the four-stage workflow for one user. It holds the
// intermediate results of each stage and advances only when the stage's
// external call succeeds. A session is owned by a single goroutine;
// concurrent sessions are independent and share nothing but the storage
// root, which the video source namespaces per video id.
type Session struct {
	id         string
	stage      Stage
	url        string
	info       *VideoMetadata
	audioFile  string
	transcript *Transcript

	source    VideoSource
	engine    Transcriber
	keepAudio bool
}

// SessionOption customizes session creation
type SessionOption func(*Session)

// WithKeepAudio disables deletion of the audio file after successful
// transcription
func WithKeepAudio() SessionOption {
	return func(s *Session) {
		s.keepAudio = true
	}
}

// NewSession creates a session in the enter-url stage
func NewSession(source VideoSource, engine Transcriber, options ...SessionOption) *Session {
	s := &Session{
		id:     uuid.NewString(),
		stage:  StageEnterURL,
		source: source,
		engine: engine,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// ID returns the session identifier
func (s *Session) ID() string { return s.id }

// Stage returns the current workflow stage
func (s *Session) Stage() Stage { return s.stage }

// URL returns the submitted video URL
func (s *Session) URL() string { return s.url }

// Metadata returns the fetched video metadata, nil before metadata-fetched
func (s *Session) Metadata() *VideoMetadata { return s.info }

// AudioFile returns the extracted audio path, empty before audio-extracted
func (s *Session) AudioFile() string { return s.audioFile }

// Transcript returns the transcript, nil before transcript-ready
func (s *Session) Transcript() *Transcript { return s.transcript }

// SubmitURL fetches metadata for the given URL and advances to
// metadata-fetched. On failure the session stays in enter-url and no
// fields are populated. URL syntax is not validated here; the video
// source fails on malformed input.
func (s *Session) SubmitURL(ctx context.Context, url string) error {
	if s.stage != StageEnterURL {
		return fmt.Errorf("%w: submit URL in stage %s", ErrInvalidStage, s.stage)
	}
	if url == "" {
		return ErrEmptyURL
	}

	info, err := s.source.FetchMetadata(ctx, url)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMetadataFetch, err)
	}
	if info == nil || info.ID == "" {
		return fmt.Errorf("%w: empty result for %s", ErrMetadataFetch, url)
	}

	s.url = url
	s.info = info
	s.stage = StageMetadataFetched
	logf("INFO", "session %s: metadata fetched for %s (%s)", s.id, info.ID, info.Title)
	return nil
}

// ExtractAudio downloads the audio track and advances to audio-extracted
func (s *Session) ExtractAudio(ctx context.Context) error {
	if s.stage != StageMetadataFetched {
		return fmt.Errorf("%w: extract audio in stage %s", ErrInvalidStage, s.stage)
	}

	audioFile, err := s.source.DownloadAudio(ctx, s.url)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAudioDownload, err)
	}
	if audioFile == "" {
		return fmt.Errorf("%w: empty path for %s", ErrAudioDownload, s.url)
	}

	s.audioFile = audioFile
	s.stage = StageAudioExtracted
	logf("INFO", "session %s: audio extracted to %s", s.id, audioFile)
	return nil
}

// Transcribe runs the engine on the extracted audio and advances to
// transcript-ready. A transcript with zero segments counts as a failure:
// an engine that produced nothing is indistinguishable from one that
// failed silently, so the session fails closed and the user may retry.
// On success the consumed audio file is deleted best-effort.
func (s *Session) Transcribe(ctx context.Context, cfg TranscriptionConfig) error {
	if s.stage != StageAudioExtracted {
		return fmt.Errorf("%w: transcribe in stage %s", ErrInvalidStage, s.stage)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrTranscription, err)
	}

	transcript, err := s.engine.Transcribe(ctx, s.audioFile, cfg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTranscription, err)
	}
	if transcript == nil || len(transcript.Segments) == 0 {
		return fmt.Errorf("%w: engine produced no segments", ErrTranscription)
	}

	s.transcript = transcript
	s.stage = StageTranscriptReady

	// The intermediate audio file is no longer needed. Deletion failures
	// are warned about, never surfaced as errors.
	if !s.keepAudio {
		if err := os.Remove(s.audioFile); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove audio file %s: %v\n", s.audioFile, err)
			logf("WARN", "session %s: removing audio file %s: %v", s.id, s.audioFile, err)
		}
		s.audioFile = ""
	}

	logf("INFO", "session %s: transcript ready (%d segments, language %s)",
		s.id, len(transcript.Segments), transcript.Language)
	return nil
}

// Reset clears all session fields and returns to the enter-url stage.
// Valid from any stage.
func (s *Session) Reset() {
	s.stage = StageEnterURL
	s.url = ""
	s.info = nil
	s.audioFile = ""
	s.transcript = nil
	logf("INFO", "session %s: reset", s.id)
}
