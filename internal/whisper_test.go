package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

// fakeWhisperClient plays one scripted verbose_json response per call
type fakeWhisperClient struct {
	responses []string
	files     []string
	err       error
}

func (f *fakeWhisperClient) CreateTranscription(ctx context.Context, req openai.AudioRequest) (openai.AudioResponse, error) {
	f.files = append(f.files, req.FilePath)
	if f.err != nil {
		return openai.AudioResponse{}, f.err
	}

	var resp openai.AudioResponse
	if err := json.Unmarshal([]byte(f.responses[len(f.files)-1]), &resp); err != nil {
		return openai.AudioResponse{}, err
	}
	return resp, nil
}

// recordingBar captures progress updates
type recordingBar struct {
	sets     []int
	finished bool
}

func (b *recordingBar) Set(current int) { b.sets = append(b.sets, current) }

func (b *recordingBar) Advance() {}

func (b *recordingBar) Describe(string) {}

func (b *recordingBar) Finish() { b.finished = true }

// recordingUI hands out recordingBars and swallows output
type recordingUI struct {
	bar   *recordingBar
	total int
}

func (u *recordingUI) NewProgressBar(total int, description string) ProgressBar {
	u.total = total
	u.bar = &recordingBar{}
	return u.bar
}

func (u *recordingUI) NewSpinner(description string) ProgressBar { return &recordingBar{} }

func (u *recordingUI) Verbose(string, ...interface{}) {}

func (u *recordingUI) Printf(string, ...interface{}) {}

func (u *recordingUI) Println(...interface{}) {}

func chunkResponse(language string, start, end float64, text string) string {
	return fmt.Sprintf(`{"language": %q, "segments": [{"start": %v, "end": %v, "text": %q}]}`,
		language, start, end, text)
}

// TestWhisperAPIChunkedTranscribe splits an oversized file and checks the
// chunk-relative timestamps land back on the source timeline.
func TestWhisperAPIChunkedTranscribe(t *testing.T) {
	tempDir := filepath.Join(t.TempDir(), "temp")
	audioFile := filepath.Join(t.TempDir(), "vid.mp3")
	if err := os.WriteFile(audioFile, []byte("twelve bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	runner := &scriptedRunner{duration: "30.0"}
	client := &fakeWhisperClient{responses: []string{
		chunkResponse("en", 0, 2, "One"),
		chunkResponse("en", 0, 3, "Two"),
		chunkResponse("en", 1, 2.5, "Three"),
	}}
	ui := &recordingUI{}

	w := &WhisperAPI{
		client:    client,
		audio:     NewAudio(runner, tempDir, false),
		ui:        ui,
		sizeLimit: 5,
	}

	transcript, err := w.Transcribe(context.Background(), audioFile, DefaultTranscriptionConfig())
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}

	// 12 bytes over a 5-byte limit gives 3 chunks of 10s each
	want := []Segment{
		{Start: 0, End: 2, Text: "One"},
		{Start: 10, End: 13, Text: "Two"},
		{Start: 21, End: 22.5, Text: "Three"},
	}
	if !slices.Equal(transcript.Segments, want) {
		t.Errorf("segments = %+v, want %+v", transcript.Segments, want)
	}
	if transcript.Language != "en" {
		t.Errorf("language = %q, want en", transcript.Language)
	}

	wantFiles := []string{
		filepath.Join(tempDir, "vid_chunk_0.mp3"),
		filepath.Join(tempDir, "vid_chunk_1.mp3"),
		filepath.Join(tempDir, "vid_chunk_2.mp3"),
	}
	if !slices.Equal(client.files, wantFiles) {
		t.Errorf("uploaded files = %v, want %v", client.files, wantFiles)
	}

	// chunk files are temporary and must be gone afterwards
	for _, chunk := range wantFiles {
		if FileExists(chunk) {
			t.Errorf("chunk %s should be removed after transcription", chunk)
		}
	}

	if ui.total != 3 {
		t.Errorf("progress bar total = %d, want 3", ui.total)
	}
	if !slices.Equal(ui.bar.sets, []int{1, 2, 3}) {
		t.Errorf("progress updates = %v, want [1 2 3]", ui.bar.sets)
	}
	if !ui.bar.finished {
		t.Error("progress bar should be finished")
	}
}

// TestWhisperAPISmallFile sends the file as-is and leaves timestamps alone
func TestWhisperAPISmallFile(t *testing.T) {
	audioFile := filepath.Join(t.TempDir(), "vid.mp3")
	if err := os.WriteFile(audioFile, []byte("tiny"), 0644); err != nil {
		t.Fatal(err)
	}

	runner := &scriptedRunner{duration: "30.0"}
	client := &fakeWhisperClient{responses: []string{chunkResponse("de", 1, 4, "Hallo")}}

	w := &WhisperAPI{
		client:    client,
		audio:     NewAudio(runner, t.TempDir(), false),
		ui:        &recordingUI{},
		sizeLimit: WhisperAPILimit,
	}

	transcript, err := w.Transcribe(context.Background(), audioFile, DefaultTranscriptionConfig())
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}

	if len(runner.calls) != 0 {
		t.Errorf("unexpected ffmpeg/ffprobe calls: %v", runner.calls)
	}
	if !slices.Equal(client.files, []string{audioFile}) {
		t.Errorf("uploaded files = %v, want the original", client.files)
	}
	if len(transcript.Segments) != 1 || transcript.Segments[0].Start != 1 {
		t.Errorf("segments = %+v", transcript.Segments)
	}
}

func TestWhisperAPIFailure(t *testing.T) {
	audioFile := filepath.Join(t.TempDir(), "vid.mp3")
	if err := os.WriteFile(audioFile, []byte("tiny"), 0644); err != nil {
		t.Fatal(err)
	}

	w := &WhisperAPI{
		client:    &fakeWhisperClient{err: os.ErrDeadlineExceeded},
		audio:     NewAudio(&scriptedRunner{duration: "30.0"}, t.TempDir(), false),
		ui:        &recordingUI{},
		sizeLimit: WhisperAPILimit,
	}

	_, err := w.Transcribe(context.Background(), audioFile, DefaultTranscriptionConfig())
	if err == nil {
		t.Fatal("expected error from failing API call")
	}
}
