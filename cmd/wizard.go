package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/rtzll/tubescribe/internal"
)

// runWizard drives the interactive four-stage session in the terminal
func runWizard(ctx context.Context, config *internal.Config, initialURL string) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return fmt.Errorf("interactive mode requires a terminal (use 'tubescribe transcribe' for scripted use)")
	}

	app := internal.NewApp(config)

	ui := app.UI()
	ui.Println("Welcome to TubeScribe! This tool transcribes audio from YouTube videos.")

	session, err := app.NewSession()
	if err != nil {
		return err
	}
	reader := bufio.NewReader(os.Stdin)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		var err error
		switch session.Stage() {
		case internal.StageEnterURL:
			err = wizardEnterURL(ctx, config, session, reader, ui, &initialURL)
		case internal.StageMetadataFetched:
			err = wizardExtractAudio(ctx, config, session, reader, ui)
		case internal.StageAudioExtracted:
			err = wizardTranscribe(ctx, config, session, reader, ui)
		case internal.StageTranscriptReady:
			err = wizardTranscriptReady(session, reader, ui)
		}
		if err == errWizardDone {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// errWizardDone signals a clean exit from the wizard loop
var errWizardDone = errors.New("done")

// wizardEnterURL prompts for a URL and fetches its metadata
func wizardEnterURL(ctx context.Context, config *internal.Config, session *internal.Session, reader *bufio.Reader, ui internal.UIManager, initialURL *string) error {
	url := *initialURL
	*initialURL = ""

	if url == "" {
		ui.Printf("Enter a YouTube video URL (or 'q' to quit): ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "q" || line == "quit" {
			return errWizardDone
		}
		if line == "" {
			return nil
		}
		url, _ = internal.ParseArg(line)
	}

	spinner := ui.NewSpinner("Fetching video details...")
	err := session.SubmitURL(ctx, url)
	spinner.Finish()
	if err != nil {
		ui.Printf("Failed to fetch video details. Please try again.\n")
		ui.Verbose("Error: %v\n", err)
	}
	return nil
}

// wizardExtractAudio shows the metadata and offers audio extraction
func wizardExtractAudio(ctx context.Context, config *internal.Config, session *internal.Session, reader *bufio.Reader, ui internal.UIManager) error {
	showMetadata(session.Metadata(), ui)

	switch prompt(reader, ui, "(e)xtract audio, (d)escription, (r)estart, (q)uit") {
	case "e", "extract":
		spinner := ui.NewSpinner("Extracting audio...")
		downloadCtx, cancel := context.WithTimeout(ctx, config.DownloadTimeout)
		err := session.ExtractAudio(downloadCtx)
		cancel()
		spinner.Finish()
		if err != nil {
			ui.Printf("Failed to extract audio. Please try again.\n")
			ui.Verbose("Error: %v\n", err)
		}
	case "d", "description":
		ui.Println(wrapText(session.Metadata().Description, terminalWidth()))
	case "r", "restart":
		session.Reset()
	case "q", "quit":
		return errWizardDone
	}
	return nil
}

// wizardTranscribe runs the transcription engine on the extracted audio
func wizardTranscribe(ctx context.Context, config *internal.Config, session *internal.Session, reader *bufio.Reader, ui internal.UIManager) error {
	cfg := config.TranscriptionConfig()
	ui.Printf("Audio ready: %s\n", session.AudioFile())
	if config.Engine == internal.EngineWhisperX {
		ui.Printf("Engine: whisperx (model=%s device=%s batch=%d precision=%s)\n",
			cfg.Model, cfg.Device, cfg.BatchSize, cfg.Precision)
	} else {
		ui.Printf("Engine: OpenAI Whisper API\n")
	}

	switch prompt(reader, ui, "(t)ranscribe audio, (r)estart, (q)uit") {
	case "t", "transcribe":
		spinner := ui.NewSpinner("Transcribing audio...")
		transcribeCtx, cancel := context.WithTimeout(ctx, config.TranscribeTimeout)
		err := session.Transcribe(transcribeCtx, cfg)
		cancel()
		spinner.Finish()
		if err != nil {
			ui.Printf("Failed to transcribe audio. Please try again.\n")
			ui.Verbose("Error: %v\n", err)
		}
	case "r", "restart":
		session.Reset()
	case "q", "quit":
		return errWizardDone
	}
	return nil
}

// wizardTranscriptReady offers the finished transcript for download
func wizardTranscriptReady(session *internal.Session, reader *bufio.Reader, ui internal.UIManager) error {
	transcript := session.Transcript()
	ui.Printf("Transcription complete! %d segments, language: %s\n",
		len(transcript.Segments), orUnknown(transcript.Language))

	switch prompt(reader, ui, "save as (j)son, save as (t)ext, (c)opy to clipboard, (s)tart over, (q)uit") {
	case "j", "json":
		data, err := transcript.JSON()
		if err != nil {
			return err
		}
		return saveTranscriptFile(session, "json", data, ui)
	case "t", "text":
		return saveTranscriptFile(session, "txt", transcript.PlainText(""), ui)
	case "c", "copy":
		if err := clipboard.WriteAll(transcript.PlainText("")); err != nil {
			return fmt.Errorf("copying transcript to clipboard: %w", err)
		}
		ui.Println("Transcript copied to clipboard")
	case "s", "start":
		session.Reset()
	case "q", "quit":
		return errWizardDone
	}
	return nil
}

// saveTranscriptFile writes a transcript rendering to the working directory
func saveTranscriptFile(session *internal.Session, ext, data string, ui internal.UIManager) error {
	filename := internal.TranscriptFilename(session.Metadata().Title, ext)
	if err := os.WriteFile(filename, []byte(data), 0644); err != nil {
		return fmt.Errorf("saving transcript: %w", err)
	}
	ui.Printf("Saved %s\n", filename)
	return nil
}

// showMetadata prints the fetched video details
func showMetadata(info *internal.VideoMetadata, ui internal.UIManager) {
	ui.Printf("\n%s\n", info.Title)
	ui.Printf("Duration: %s | Language: %s | Uploader: %s\n",
		internal.FormatDuration(int(info.Duration)), orUnknown(info.Language), info.Uploader)
	if internal.FileExists(info.Thumbnail) {
		ui.Printf("Thumbnail: %s\n", info.Thumbnail)
	}
}

// prompt shows the available actions and reads one choice
func prompt(reader *bufio.Reader, ui internal.UIManager, choices string) string {
	ui.Printf("%s: ", choices)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "q"
	}
	return strings.ToLower(strings.TrimSpace(line))
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

// terminalWidth gets terminal width with fallback
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 10 {
		return 80
	}
	return width - 4
}

// wrapText wraps words at the given width
func wrapText(text string, width int) string {
	var sb strings.Builder
	lineLen := 0
	for _, line := range strings.Split(text, "\n") {
		if lineLen > 0 {
			sb.WriteString("\n")
			lineLen = 0
		}
		for _, word := range strings.Fields(line) {
			if lineLen > 0 && lineLen+len(word)+1 > width {
				sb.WriteString("\n")
				lineLen = 0
			} else if lineLen > 0 {
				sb.WriteString(" ")
				lineLen++
			}
			sb.WriteString(word)
			lineLen += len(word)
		}
	}
	return sb.String()
}
