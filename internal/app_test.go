package internal

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func testAppConfig(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()
	defaults := DefaultTranscriptionConfig()
	return &Config{
		Engine:            EngineWhisperX,
		Device:            string(defaults.Device),
		BatchSize:         defaults.BatchSize,
		Precision:         string(defaults.Precision),
		Model:             defaults.Model,
		DownloadTimeout:   time.Minute,
		TranscribeTimeout: time.Minute,
		Quiet:             true,
		MediaDir:          filepath.Join(dir, "media"),
		TempDir:           filepath.Join(dir, "temp"),
		TranscriptsDir:    filepath.Join(dir, "transcripts"),
	}
}

// countingEngine tracks how often the engine actually runs
type countingEngine struct {
	fakeEngine
	calls int
}

func (c *countingEngine) Transcribe(ctx context.Context, audioFile string, cfg TranscriptionConfig) (*Transcript, error) {
	c.calls++
	return c.fakeEngine.Transcribe(ctx, audioFile, cfg)
}

// TestAppTranscriptUsesCache verifies the second run for the same video
// id skips the download and transcription stages.
func TestAppTranscriptUsesCache(t *testing.T) {
	config := testAppConfig(t)

	engine := &countingEngine{fakeEngine: fakeEngine{transcript: &Transcript{
		Language: "en",
		Segments: []Segment{{Text: "Hello"}, {Text: "World"}},
	}}}

	newSource := func() *fakeSource {
		return &fakeSource{metadata: testMetadata(), audioFile: writeTestAudio(t)}
	}

	app := NewApp(config, WithVideoSource(newSource()), WithTranscriber(engine))

	ctx := context.Background()
	url := "https://www.youtube.com/watch?v=tAP1eZYEuKA"

	transcript, metadata, err := app.Transcript(ctx, url, false)
	if err != nil {
		t.Fatalf("Transcript: %v", err)
	}
	if len(transcript.Segments) != 2 || metadata.Title != "Sample Video Title" {
		t.Fatalf("transcript = %+v metadata = %+v", transcript, metadata)
	}
	if engine.calls != 1 {
		t.Fatalf("engine calls = %d, want 1", engine.calls)
	}

	// second run hits the transcript cache keyed by video id
	app = NewApp(config, WithVideoSource(newSource()), WithTranscriber(engine))

	cached, _, err := app.Transcript(ctx, url, false)
	if err != nil {
		t.Fatalf("Transcript (cached): %v", err)
	}
	if engine.calls != 1 {
		t.Errorf("engine calls = %d, want cache hit without a new run", engine.calls)
	}
	if len(cached.Segments) != 2 {
		t.Errorf("cached transcript = %+v", cached)
	}
}

// TestAppTranscriptFailureSurfaces checks the workflow error taxonomy
// passes through the app layer unchanged.
func TestAppTranscriptFailureSurfaces(t *testing.T) {
	config := testAppConfig(t)

	app := NewApp(config,
		WithVideoSource(&fakeSource{metadata: testMetadata(), audioErr: context.DeadlineExceeded}),
		WithTranscriber(&fakeEngine{}))

	_, _, err := app.Transcript(context.Background(), "https://www.youtube.com/watch?v=tAP1eZYEuKA", false)
	if err == nil {
		t.Fatal("expected error from failing download")
	}
}

// TestAppTranscriptConfirmsHostedUpload verifies the hosted engine asks
// before uploading audio and that declining stops the pipeline cold.
func TestAppTranscriptConfirmsHostedUpload(t *testing.T) {
	config := testAppConfig(t)
	config.Engine = EngineOpenAI
	config.Quiet = false

	engine := &countingEngine{fakeEngine: fakeEngine{transcript: &Transcript{
		Language: "en",
		Segments: []Segment{{Text: "Hello"}},
	}}}
	app := NewApp(config,
		WithVideoSource(&fakeSource{metadata: testMetadata(), audioFile: writeTestAudio(t)}),
		WithTranscriber(engine))

	origAskUser := AskUser
	defer func() { AskUser = origAskUser }()

	AskUser = func(message string) bool { return false }
	_, _, err := app.Transcript(context.Background(), "https://www.youtube.com/watch?v=tAP1eZYEuKA", false)
	if err == nil {
		t.Fatal("expected error after declining the upload")
	}
	if engine.calls != 0 {
		t.Fatalf("engine calls = %d, want 0 after declining", engine.calls)
	}

	AskUser = func(message string) bool { return true }
	app = NewApp(config,
		WithVideoSource(&fakeSource{metadata: testMetadata(), audioFile: writeTestAudio(t)}),
		WithTranscriber(engine))
	transcript, _, err := app.Transcript(context.Background(), "https://www.youtube.com/watch?v=tAP1eZYEuKA", false)
	if err != nil {
		t.Fatalf("Transcript after confirming: %v", err)
	}
	if engine.calls != 1 || len(transcript.Segments) != 1 {
		t.Fatalf("engine calls = %d transcript = %+v", engine.calls, transcript)
	}
}

// TestAppMetadataWithoutEngineCredentials verifies engine-free commands
// work when the configured engine could not be constructed.
func TestAppMetadataWithoutEngineCredentials(t *testing.T) {
	config := testAppConfig(t)
	config.Engine = EngineOpenAI
	config.OpenAIAPIKey = ""

	app := NewApp(config, WithVideoSource(&fakeSource{metadata: testMetadata()}))

	metadata, err := app.FetchMetadata(context.Background(), "https://www.youtube.com/watch?v=tAP1eZYEuKA", false)
	if err != nil {
		t.Fatalf("FetchMetadata: %v", err)
	}
	if metadata.Title != "Sample Video Title" {
		t.Errorf("metadata = %+v", metadata)
	}

	// the missing API key only surfaces once the engine is needed
	if _, err := app.NewSession(); err == nil {
		t.Error("expected engine construction error from NewSession")
	}
	if _, _, err := app.Transcript(context.Background(), "https://www.youtube.com/watch?v=tAP1eZYEuKA", false); err == nil {
		t.Error("expected engine construction error from Transcript")
	}
}
