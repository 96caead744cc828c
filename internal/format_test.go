package internal

import (
	"strings"
	"testing"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{60, "00:01:00"},
		{3599, "00:59:59"},
		{3661, "01:01:01"},
		{90000, "25:00:00"},
		{360000, "100:00:00"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestPlainText(t *testing.T) {
	transcript := &Transcript{
		Language: "en",
		Segments: []Segment{
			{Start: 0, End: 1.5, Text: "Hello"},
			{Start: 1.5, End: 3, Text: "World"},
		},
	}

	if got := transcript.PlainText(""); got != "Hello\nWorld" {
		t.Errorf("PlainText(\"\") = %q, want %q", got, "Hello\nWorld")
	}

	if got := transcript.PlainText("H\n"); got != "H\nHello\nWorld" {
		t.Errorf("PlainText(header) = %q, want %q", got, "H\nHello\nWorld")
	}
}

// TestPlainTextPreservesOrder checks that segments are never reordered
// or deduplicated.
func TestPlainTextPreservesOrder(t *testing.T) {
	transcript := &Transcript{
		Segments: []Segment{
			{Text: "same"},
			{Text: "same"},
			{Text: "other"},
		},
	}

	if got := transcript.PlainText(""); got != "same\nsame\nother" {
		t.Errorf("PlainText = %q, want duplicates kept in order", got)
	}
}

func TestTranscriptJSONRoundTrip(t *testing.T) {
	original := &Transcript{
		Language: "de",
		Segments: []Segment{
			{Start: 0, End: 2.34, Text: "Grüße aus Köln"},
			{Start: 2.34, End: 5.1, Text: "日本語のテキスト"},
		},
	}

	data, err := original.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}

	// pretty-printed, non-ASCII verbatim
	if !strings.Contains(data, "\n  ") {
		t.Error("expected indented output")
	}
	if !strings.Contains(data, "Grüße aus Köln") || !strings.Contains(data, "日本語のテキスト") {
		t.Errorf("expected non-ASCII preserved verbatim, got:\n%s", data)
	}
	if strings.Contains(data, `\u`) {
		t.Errorf("expected no unicode escapes, got:\n%s", data)
	}

	parsed, err := ParseTranscriptJSON([]byte(data))
	if err != nil {
		t.Fatalf("ParseTranscriptJSON: %v", err)
	}

	if parsed.Language != original.Language {
		t.Errorf("language = %q, want %q", parsed.Language, original.Language)
	}
	if len(parsed.Segments) != len(original.Segments) {
		t.Fatalf("segments = %d, want %d", len(parsed.Segments), len(original.Segments))
	}
	for i, seg := range parsed.Segments {
		if seg != original.Segments[i] {
			t.Errorf("segment %d = %+v, want %+v", i, seg, original.Segments[i])
		}
	}
}
