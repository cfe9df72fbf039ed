// Package extract runs the full layout OCR pipeline on a single image.
//
// The pipeline is linear: validate the input, normalize the image size, send
// the image and the fixed layout prompt to a Recognizer, parse the returned
// markup into positioned blocks, and package everything into a Result. When
// block extraction yields nothing, text assembly falls back to plain-text
// recovery and the result carries the lower confidence value.
//
// An Engine wraps one Recognizer and loads it once, on first use. A single
// Engine is not safe for concurrent Run calls beyond that initialization
// guard; the recognizer handle is used from one extraction at a time.
package extract

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/casslabs/layoutocr/pkg/imageprep"
	"github.com/casslabs/layoutocr/pkg/layout"
)

// Confidence is a coarse signal, not a statistical measure: it only records
// whether structured block extraction succeeded or the plain-text fallback ran.
const (
	structuredConfidence = 0.95
	fallbackConfidence   = 0.7
)

// Generation is the raw outcome of one model call: the generated layout
// markup plus whatever performance counters the backend reports.
type Generation struct {
	Markup          string
	TokensPerSecond float64
	PeakMemoryGB    float64
}

// Recognizer is the model boundary. Load warms the underlying model handle
// and must be safe to call more than once; Recognize turns an image and a
// prompt into generated layout markup.
type Recognizer interface {
	Load(ctx context.Context) error
	Recognize(ctx context.Context, imagePath, prompt string) (*Generation, error)
}

// Config holds user options for the extraction pipeline.
type Config struct {
	MaxPixels int    // Pixel budget for input images
	Prompt    string // Override for the layout prompt (empty = LayoutPrompt())
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() Config {
	return Config{
		MaxPixels: imageprep.DefaultMaxPixels,
	}
}

// Engine binds a Recognizer to the extraction pipeline. Construct it once
// with NewEngine and reuse it; the recognizer is loaded lazily on the first
// Run and kept for the Engine's lifetime.
type Engine struct {
	rec Recognizer
	cfg Config

	loadOnce sync.Once
	loadErr  error
	loadTime time.Duration
}

// NewEngine creates an extraction engine around the given recognizer.
func NewEngine(rec Recognizer, cfg Config) *Engine {
	if cfg.MaxPixels <= 0 {
		cfg.MaxPixels = imageprep.DefaultMaxPixels
	}
	return &Engine{rec: rec, cfg: cfg}
}

// Run performs one extraction. It never returns a partial result: any
// failure, including a panic from the recognizer, is converted into a
// Result with Success false and a descriptive error.
func (e *Engine) Run(ctx context.Context, imagePath string) (result *Result) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			result = &Result{
				Success: false,
				Error:   fmt.Sprintf("extraction panicked: %v", r),
				Trace:   string(debug.Stack()),
			}
		}
	}()

	if e.rec == nil {
		return failure(fmt.Errorf("no recognizer configured"))
	}
	if _, err := os.Stat(imagePath); err != nil {
		return failure(fmt.Errorf("image not accessible: %w", err))
	}

	e.loadOnce.Do(func() {
		loadStart := time.Now()
		e.loadErr = e.rec.Load(ctx)
		e.loadTime = time.Since(loadStart)
	})
	if e.loadErr != nil {
		return failure(fmt.Errorf("failed to load recognizer: %w", e.loadErr))
	}

	preparedPath, size, _, err := imageprep.Prepare(imagePath, e.cfg.MaxPixels)
	if err != nil {
		return failure(err)
	}

	prompt := e.cfg.Prompt
	if prompt == "" {
		prompt = LayoutPrompt()
	}

	genStart := time.Now()
	gen, err := e.rec.Recognize(ctx, preparedPath, prompt)
	if err != nil {
		return failure(fmt.Errorf("recognition failed: %w", err))
	}
	generationTime := time.Since(genStart)

	// With an unknown image size every box rescales to nothing, so block
	// extraction drains and the plain-text fallback takes over.
	blocks := layout.ParseBlocks(gen.Markup, size.Width, size.Height)

	result = &Result{
		Success:         true,
		Blocks:          blocks,
		ImageSize:       []int{size.Width, size.Height},
		RawHTML:         gen.Markup,
		ProcessedImage:  preparedPath,
		LoadTime:        e.loadTime.Seconds(),
		GenerationTime:  generationTime.Seconds(),
		TokensPerSecond: gen.TokensPerSecond,
		PeakMemoryGB:    gen.PeakMemoryGB,
	}

	if len(blocks) > 0 {
		lines := make([]string, len(blocks))
		for i, block := range blocks {
			lines[i] = block.Text
		}
		result.Text = strings.Join(lines, "\n")
		result.Lines = lines
		result.Confidence = structuredConfidence
	} else {
		extracted := layout.ExtractText(gen.Markup)
		result.Text = extracted.Text
		result.Lines = extracted.Lines
		result.Confidence = fallbackConfidence
	}

	result.ProcessingTime = time.Since(start).Seconds()
	return result
}

func failure(err error) *Result {
	return &Result{
		Success: false,
		Error:   err.Error(),
	}
}
