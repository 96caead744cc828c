package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// FormatDuration converts a duration in seconds to "HH:MM:SS". The hours
// field is not clamped, so durations beyond 24h render correctly.
// Negative input is a caller contract violation.
func FormatDuration(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}

// JSON serializes the transcript as pretty-printed UTF-8 JSON. Non-ASCII
// characters are preserved verbatim rather than escaped, matching what
// users expect to see in a downloaded transcript file.
func (t *Transcript) JSON() (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return "", fmt.Errorf("encoding transcript: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// ParseTranscriptJSON is the inverse of Transcript.JSON
func ParseTranscriptJSON(data []byte) (*Transcript, error) {
	var t Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing transcript JSON: %w", err)
	}
	return &t, nil
}

// PlainText concatenates the segment texts, one per line, in transcript
// order. If header is non-empty it is prepended verbatim as the first
// line. No reordering, no deduplication, no timestamps.
func (t *Transcript) PlainText(header string) string {
	texts := make([]string, len(t.Segments))
	for i, seg := range t.Segments {
		texts[i] = seg.Text
	}
	return header + strings.Join(texts, "\n")
}
