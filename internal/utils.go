package internal

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ParseArg normalizes YouTube video IDs and URLs. It returns the full
// watch URL and the video id when one can be extracted, otherwise the
// argument is passed through unchanged for yt-dlp to reject.
func ParseArg(arg string) (string, string) {
	if strings.HasPrefix(arg, "https://") || strings.HasPrefix(arg, "http://") {
		videoID, err := getVideoID(arg)
		if err != nil {
			return arg, arg
		}
		return arg, videoID
	}

	if IsValidYouTubeID(arg) {
		return "https://www.youtube.com/watch?v=" + arg, arg
	}

	return arg, arg
}

// VideoIDExtractor extracts video IDs from YouTube URLs
type VideoIDExtractor func(string) (string, error)

// Default implementation of video ID extraction
var getVideoID VideoIDExtractor = func(youtubeURL string) (string, error) {
	youtubeURL = strings.TrimSpace(youtubeURL)
	u, err := url.Parse(youtubeURL)
	if err != nil {
		return "", fmt.Errorf("parsing URL: %w", err)
	}

	if u.Host != "www.youtube.com" && u.Host != "youtube.com" && u.Host != "youtu.be" {
		return "", fmt.Errorf("not a YouTube URL: %s", youtubeURL)
	}

	if v := u.Query().Get("v"); v != "" {
		return v, nil
	}

	parts := strings.Split(u.Path, "/")
	if len(parts) > 0 && parts[len(parts)-1] != "" {
		return parts[len(parts)-1], nil
	}

	return "", fmt.Errorf("could not extract video ID from URL: %s", youtubeURL)
}

// IsValidYouTubeID checks if a string looks like a valid YouTube video ID
func IsValidYouTubeID(id string) bool {
	// YouTube video IDs are exactly 11 characters long
	if len(id) != 11 {
		return false
	}

	matched, _ := regexp.MatchString(`^[A-Za-z0-9_-]+$`, id)
	return matched
}

// AskUser is a variable that holds the function for asking user confirmation
// This allows it to be replaced in tests
var AskUser = func(message string) bool {
	fmt.Printf("%s (y/N): ", message)
	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		response := strings.ToLower(strings.TrimSpace(scanner.Text()))
		return strings.HasPrefix(response, "y")
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
	}
	return false
}

// FileExists checks if a file exists
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

// EnsureDirs creates directories if needed
func EnsureDirs(dirs ...string) error {
	for _, dir := range dirs {
		if !FileExists(dir) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
		}
	}
	return nil
}

// cleanupFiles removes temporary files
func cleanupFiles(files ...string) {
	for _, file := range files {
		if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove file %s: %v\n", file, err)
		}
	}
}

// CleanupTempDir purges files from a temporary directory
func CleanupTempDir(tempDir string) error {
	if _, err := os.Stat(tempDir); os.IsNotExist(err) {
		return nil
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		return fmt.Errorf("reading temp directory: %w", err)
	}

	for _, entry := range entries {
		filePath := filepath.Join(tempDir, entry.Name())
		if err := os.Remove(filePath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove temporary file %s: %v\n", filePath, err)
		}
	}

	if err := os.Remove(tempDir); err != nil {
		fmt.Fprintf(os.Stderr, "Note: could not remove temp directory %s: %v\n", tempDir, err)
	}

	return nil
}

// invalidFilenameChars matches characters unsafe in filenames across platforms
var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

// TranscriptFilename derives a download filename from the video title,
// falling back to "transcript" when the title sanitizes to nothing
func TranscriptFilename(title, ext string) string {
	name := invalidFilenameChars.ReplaceAllString(title, "")
	name = strings.Join(strings.Fields(name), " ")
	name = strings.TrimSpace(name)
	if name == "" {
		name = "transcript"
	}
	return name + "." + ext
}

// SaveTranscript caches a transcript as JSON in the transcripts directory
func SaveTranscript(videoID string, transcript *Transcript, transcriptsDir string) error {
	if err := EnsureDirs(transcriptsDir); err != nil {
		return fmt.Errorf("creating transcripts directory: %w", err)
	}

	data, err := transcript.JSON()
	if err != nil {
		return err
	}

	transcriptPath := filepath.Join(transcriptsDir, videoID+".json")
	if err := os.WriteFile(transcriptPath, []byte(data), 0644); err != nil {
		return fmt.Errorf("saving transcript: %w", err)
	}
	return nil
}

// LoadCachedTranscript loads a previously saved transcript for a video id
func LoadCachedTranscript(videoID, transcriptsDir string) (*Transcript, error) {
	transcriptPath := filepath.Join(transcriptsDir, videoID+".json")
	if !FileExists(transcriptPath) {
		return nil, fmt.Errorf("transcript cache not found")
	}

	data, err := os.ReadFile(transcriptPath)
	if err != nil {
		return nil, fmt.Errorf("reading transcript cache: %w", err)
	}

	return ParseTranscriptJSON(data)
}

// ValidateOpenAIAPIKey checks if the OpenAI API key is set
func ValidateOpenAIAPIKey(apiKey string) error {
	if apiKey == "" {
		return fmt.Errorf("OpenAI API key is required - set it in config.toml or OPENAI_API_KEY environment variable")
	}
	return nil
}
