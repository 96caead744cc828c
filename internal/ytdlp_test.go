package internal

import (
	"path/filepath"
	"testing"
)

func TestParseMetadata(t *testing.T) {
	data := []byte(`{
		"id": "abc123def45",
		"title": "Sample Video Title",
		"uploader": "CoolUploader",
		"channel": "CoolChannel",
		"duration": 360,
		"description": "This is a sample description",
		"language": "en"
	}`)

	metadata, err := parseMetadata(data)
	if err != nil {
		t.Fatalf("parseMetadata: %v", err)
	}

	if metadata.ID != "abc123def45" {
		t.Errorf("id = %q, want abc123def45", metadata.ID)
	}
	if metadata.Title != "Sample Video Title" {
		t.Errorf("title = %q", metadata.Title)
	}
	if metadata.Uploader != "CoolUploader" {
		t.Errorf("uploader = %q", metadata.Uploader)
	}
	if metadata.Duration != 360 {
		t.Errorf("duration = %v, want 360", metadata.Duration)
	}
	if metadata.Language != "en" {
		t.Errorf("language = %q, want en", metadata.Language)
	}
}

func TestParseMetadataUploaderFallback(t *testing.T) {
	data := []byte(`{"id": "abc123def45", "channel": "CoolChannel"}`)

	metadata, err := parseMetadata(data)
	if err != nil {
		t.Fatalf("parseMetadata: %v", err)
	}
	if metadata.Uploader != "CoolChannel" {
		t.Errorf("uploader = %q, want channel fallback", metadata.Uploader)
	}
}

func TestParseMetadataRejectsMissingID(t *testing.T) {
	if _, err := parseMetadata([]byte(`{"title": "no id"}`)); err == nil {
		t.Error("expected error for metadata without id")
	}

	if _, err := parseMetadata([]byte(`not json`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

// TestMediaPathNamespacing checks the per-video-id directory layout that
// keeps concurrent sessions from colliding.
func TestMediaPathNamespacing(t *testing.T) {
	yt := NewYouTube("/cache/media", false)

	one := yt.mediaPath("videoid0001", "mp3")
	two := yt.mediaPath("videoid0002", "mp3")

	if filepath.Dir(one) == filepath.Dir(two) {
		t.Errorf("distinct video ids share a directory: %s vs %s", one, two)
	}
	if one != filepath.Join("/cache/media", "videoid0001", "videoid0001.mp3") {
		t.Errorf("media path = %q", one)
	}
	if yt.outputTemplate() != filepath.Join("/cache/media", "%(id)s", "%(id)s.%(ext)s") {
		t.Errorf("output template = %q", yt.outputTemplate())
	}
}
