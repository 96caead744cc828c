package internal

import (
	"fmt"
	"slices"
	"strings"
)

// Stage represents the current position in the session workflow
type Stage int

const (
	StageEnterURL Stage = iota
	StageMetadataFetched
	StageAudioExtracted
	StageTranscriptReady
)

// String returns a human-readable representation of the stage
func (s Stage) String() string {
	switch s {
	case StageEnterURL:
		return "enter-url"
	case StageMetadataFetched:
		return "metadata-fetched"
	case StageAudioExtracted:
		return "audio-extracted"
	case StageTranscriptReady:
		return "transcript-ready"
	default:
		return "unknown"
	}
}

// VideoMetadata contains YouTube video information
type VideoMetadata struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Uploader    string  `json:"uploader"`
	Channel     string  `json:"channel"`
	Duration    float64 `json:"duration"`
	Description string  `json:"description"`
	Language    string  `json:"language"`
	Thumbnail   string  `json:"thumbnail"`
	URL         string  `json:"url"`
}

// Segment is a single timed span of recognized speech
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Transcript holds the ordered segments and the detected language.
// Segment ordering by start time is the engine's contract and is not
// re-verified here.
type Transcript struct {
	Language string    `json:"language"`
	Segments []Segment `json:"segments"`
}

// Device selects the compute device for local transcription
type Device string

const (
	DeviceCUDA Device = "cuda"
	DeviceCPU  Device = "cpu"
)

// Precision selects the numeric precision for local transcription.
// It trades memory use against accuracy and has no effect on correctness.
type Precision string

const (
	PrecisionInt8    Precision = "int8"
	PrecisionFloat16 Precision = "float16"
	PrecisionFloat32 Precision = "float32"
)

// BatchSizes lists the accepted batch size values
var BatchSizes = []int{1, 4, 8, 16}

// TranscriptionConfig carries the user-selectable engine settings
type TranscriptionConfig struct {
	Device    Device
	BatchSize int
	Precision Precision
	Model     string
}

// DefaultTranscriptionConfig returns conservative settings that work
// without accelerator hardware
func DefaultTranscriptionConfig() TranscriptionConfig {
	return TranscriptionConfig{
		Device:    DeviceCPU,
		BatchSize: 8,
		Precision: PrecisionInt8,
		Model:     "large-v2",
	}
}

// Validate checks that only recognized option values are present
func (c TranscriptionConfig) Validate() error {
	switch c.Device {
	case DeviceCUDA, DeviceCPU:
	default:
		return fmt.Errorf("unsupported device: %q (supported: cuda, cpu)", c.Device)
	}

	if !slices.Contains(BatchSizes, c.BatchSize) {
		sizes := make([]string, len(BatchSizes))
		for i, s := range BatchSizes {
			sizes[i] = fmt.Sprintf("%d", s)
		}
		return fmt.Errorf("unsupported batch size: %d (supported: %s)", c.BatchSize, strings.Join(sizes, ", "))
	}

	switch c.Precision {
	case PrecisionInt8, PrecisionFloat16, PrecisionFloat32:
	default:
		return fmt.Errorf("unsupported precision: %q (supported: int8, float16, float32)", c.Precision)
	}

	if c.Model == "" {
		return fmt.Errorf("model must not be empty")
	}

	return nil
}
