package internal

import (
	"context"
	"fmt"
	"os"
)

// App holds the application state and dependencies
type App struct {
	youtube VideoSource
	engine  Transcriber
	config  *Config
	ui      UIManager
}

// NewApp initializes the application. The transcription engine is built
// lazily so engine-free commands work without engine credentials.
func NewApp(config *Config, options ...AppOption) *App {
	app := &App{
		youtube: NewYouTube(config.MediaDir, config.Verbose),
		config:  config,
		ui:      NewUIManager(config.Verbose, config.Quiet),
	}

	for _, option := range options {
		option(app)
	}

	return app
}

// AppOption customizes App creation
type AppOption func(*App)

// WithVideoSource sets a custom video source
func WithVideoSource(source VideoSource) AppOption {
	return func(a *App) {
		a.youtube = source
	}
}

// WithTranscriber sets a custom transcription engine
func WithTranscriber(engine Transcriber) AppOption {
	return func(a *App) {
		a.engine = engine
	}
}

// transcriber returns the configured engine, constructing it on first use
func (app *App) transcriber() (Transcriber, error) {
	if app.engine == nil {
		engine, err := NewTranscriber(app.config, app.ui)
		if err != nil {
			return nil, err
		}
		app.engine = engine
	}
	return app.engine, nil
}

// NewSession creates a workflow session wired to the app's collaborators
func (app *App) NewSession() (*Session, error) {
	engine, err := app.transcriber()
	if err != nil {
		return nil, err
	}

	var options []SessionOption
	if app.config.KeepAudio {
		options = append(options, WithKeepAudio())
	}
	return NewSession(app.youtube, engine, options...), nil
}

// UI returns the app's UI manager
func (app *App) UI() UIManager {
	return app.ui
}

// FetchMetadata fetches video metadata with an optional status spinner
func (app *App) FetchMetadata(ctx context.Context, youtubeURL string, showStatus bool) (*VideoMetadata, error) {
	var spinner ProgressBar
	if showStatus {
		spinner = app.ui.NewSpinner("Fetching video metadata...")
		defer spinner.Finish()
	}

	return app.youtube.FetchMetadata(ctx, youtubeURL)
}

// DownloadAudio downloads the audio track with the configured timeout
func (app *App) DownloadAudio(ctx context.Context, youtubeURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, app.config.DownloadTimeout)
	defer cancel()

	audioFile, err := app.youtube.DownloadAudio(ctx, youtubeURL)
	if err != nil {
		return "", fmt.Errorf("downloading audio: %w", err)
	}
	return audioFile, nil
}

// Transcript runs the full pipeline for a URL and returns the transcript
// and metadata. A previously produced transcript for the same video id
// is reused from the data directory; sessions themselves never persist.
func (app *App) Transcript(ctx context.Context, youtubeURL string, showStatus bool) (*Transcript, *VideoMetadata, error) {
	var spinner ProgressBar
	if showStatus {
		spinner = app.ui.NewSpinner("Fetching video metadata...")
	}

	session, err := app.NewSession()
	if err != nil {
		if spinner != nil {
			spinner.Finish()
		}
		return nil, nil, err
	}
	if err := session.SubmitURL(ctx, youtubeURL); err != nil {
		if spinner != nil {
			spinner.Finish()
		}
		return nil, nil, err
	}
	metadata := session.Metadata()

	// Check for a cached transcript before the expensive stages
	if cached, err := LoadCachedTranscript(metadata.ID, app.config.TranscriptsDir); err == nil {
		if spinner != nil {
			spinner.Finish()
		}
		app.ui.Verbose("Using cached transcript for %s\n", metadata.ID)
		return cached, metadata, nil
	}

	// Uploading to the hosted engine costs money, so confirm first
	if app.config.Engine == EngineOpenAI && !app.config.Quiet {
		if spinner != nil {
			spinner.Finish()
			spinner = nil
		}
		if !AskUser(fmt.Sprintf("No cached transcript for %q. Upload the audio to the OpenAI Whisper API?", metadata.Title)) {
			return nil, nil, fmt.Errorf("transcription cancelled")
		}
		if showStatus {
			spinner = app.ui.NewSpinner("Downloading audio...")
		}
	} else if spinner != nil {
		spinner.Describe("Downloading audio...")
		spinner.Advance()
	}

	downloadCtx, cancelDownload := context.WithTimeout(ctx, app.config.DownloadTimeout)
	err = session.ExtractAudio(downloadCtx)
	cancelDownload()
	if err != nil {
		if spinner != nil {
			spinner.Finish()
		}
		return nil, nil, err
	}

	if spinner != nil {
		spinner.Describe("Transcribing audio...")
		spinner.Advance()
	}

	transcribeCtx, cancelTranscribe := context.WithTimeout(ctx, app.config.TranscribeTimeout)
	err = session.Transcribe(transcribeCtx, app.config.TranscriptionConfig())
	cancelTranscribe()
	if spinner != nil {
		spinner.Finish()
	}
	if err != nil {
		return nil, nil, err
	}

	transcript := session.Transcript()
	if err := SaveTranscript(session.Metadata().ID, transcript, app.config.TranscriptsDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	return transcript, metadata, nil
}
