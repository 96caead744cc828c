package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/lrstanley/go-ytdlp"
)

// YouTube resolves video URLs to metadata and audio files using yt-dlp.
// All downloads land under mediaDir in one subdirectory per video id, so
// sessions processing different videos never collide.
type YouTube struct {
	mediaDir string
	verbose  bool
}

// NewYouTube creates a new YouTube client
func NewYouTube(mediaDir string, verbose bool) *YouTube {
	return &YouTube{
		mediaDir: mediaDir,
		verbose:  verbose,
	}
}

// mediaPath returns the per-video storage path for the given id and extension
func (yt *YouTube) mediaPath(videoID, ext string) string {
	return filepath.Join(yt.mediaDir, videoID, videoID+"."+ext)
}

// outputTemplate is the yt-dlp output path template for per-id subdirectories
func (yt *YouTube) outputTemplate() string {
	return filepath.Join(yt.mediaDir, "%(id)s", "%(id)s.%(ext)s")
}

// FetchMetadata fetches video details and the thumbnail using go-ytdlp.
// The thumbnail is converted to webp and written under the video's
// per-id directory.
func (yt *YouTube) FetchMetadata(ctx context.Context, url string) (*VideoMetadata, error) {
	if yt.verbose {
		fmt.Println("Fetching video metadata...")
	}

	dl := ytdlp.New().
		DumpSingleJSON().
		NoPlaylist().
		SkipDownload().
		WriteThumbnail().
		ConvertThumbnails("webp").
		Output(yt.outputTemplate())

	result, err := dl.Run(ctx, url)
	if err != nil {
		if yt.verbose && result != nil {
			fmt.Printf("Metadata fetch error: %v\nStderr: %s\n", err, result.Stderr)
		}
		return nil, fmt.Errorf("fetching video metadata: %w", err)
	}

	metadata, err := parseMetadata([]byte(result.Stdout))
	if err != nil {
		return nil, err
	}
	metadata.URL = url
	metadata.Thumbnail = yt.mediaPath(metadata.ID, "webp")

	if yt.verbose {
		fmt.Printf("Title: %s\n", metadata.Title)
		fmt.Printf("Uploader: %s\n", metadata.Uploader)
		fmt.Printf("Duration: %s\n", FormatDuration(int(metadata.Duration)))
	}

	return metadata, nil
}

// DownloadAudio downloads the best-available audio track as mp3 into the
// video's per-id directory, alongside its .info.json metadata file.
func (yt *YouTube) DownloadAudio(ctx context.Context, url string) (string, error) {
	if yt.verbose {
		fmt.Println("Downloading audio...")
	}

	dl := ytdlp.New().
		Format("bestaudio/best").
		ExtractAudio().
		AudioFormat("mp3").
		NoPlaylist().
		WriteInfoJSON().
		DumpSingleJSON().
		NoSimulate().
		Output(yt.outputTemplate())

	result, err := dl.Run(ctx, url)
	if err != nil {
		if yt.verbose && result != nil {
			fmt.Printf("Audio download error: %v\nStderr: %s\n", err, result.Stderr)
		}
		return "", fmt.Errorf("downloading audio: %w", err)
	}

	// yt-dlp echoes the metadata on stdout; after mp3 extraction the
	// audio lands at a deterministic path.
	metadata, err := parseMetadata([]byte(result.Stdout))
	if err != nil {
		return "", err
	}

	audioFile := yt.mediaPath(metadata.ID, "mp3")
	if !FileExists(audioFile) {
		return "", fmt.Errorf("audio file not found after download: %s", audioFile)
	}

	if yt.verbose {
		fmt.Printf("Audio downloaded to %s\n", audioFile)
	}
	return audioFile, nil
}

// parseMetadata extracts the fields TubeScribe cares about from yt-dlp's
// JSON output
func parseMetadata(data []byte) (*VideoMetadata, error) {
	var metadata VideoMetadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, fmt.Errorf("parsing video metadata: %w", err)
	}
	if metadata.ID == "" {
		return nil, fmt.Errorf("video metadata has no id")
	}
	if metadata.Uploader == "" {
		metadata.Uploader = metadata.Channel
	}
	return &metadata, nil
}
