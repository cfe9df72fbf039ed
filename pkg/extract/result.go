package extract

import (
	"encoding/json"

	"github.com/casslabs/layoutocr/pkg/layout"
)

// Result is the complete outcome of one extraction call, immutable once
// returned. On failure only Success, Error, and possibly Trace are set.
//
// Times are seconds. ImageSize is [width, height] of the image actually fed
// to inference, which is the resized artifact when a resize happened.
type Result struct {
	Success bool `json:"success"`

	Text   string         `json:"text,omitempty"`
	Lines  []string       `json:"lines,omitempty"`
	Blocks []layout.Block `json:"blocks,omitempty"`

	Confidence float64 `json:"confidence,omitempty"`

	ProcessingTime  float64 `json:"processing_time,omitempty"`
	LoadTime        float64 `json:"load_time,omitempty"`
	GenerationTime  float64 `json:"generation_time,omitempty"`
	TokensPerSecond float64 `json:"tokens_per_second,omitempty"`
	PeakMemoryGB    float64 `json:"peak_memory_gb,omitempty"`

	ImageSize []int `json:"image_size,omitempty"`

	// Diagnostics: the raw model output and the image artifact it was run on.
	RawHTML        string `json:"raw_html,omitempty"`
	ProcessedImage string `json:"processed_image,omitempty"`

	Error string `json:"error,omitempty"`
	Trace string `json:"trace,omitempty"`
}

// JSON renders the result as indented JSON.
func (r *Result) JSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
