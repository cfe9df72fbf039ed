// Package tessocr backs the extraction pipeline with a local Tesseract
// engine via gosseract. It requires Tesseract to be installed on the system.
// On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
//
// Tesseract reports block boxes in image pixel space; the recognizer
// normalizes them onto the layout grid and renders layout markup, so the
// pipeline consumes Tesseract output exactly like model output. The layout
// prompt is accepted for interface compatibility and ignored.
package tessocr

import (
	"context"
	"fmt"
	"image"
	"os"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/otiai10/gosseract/v2"

	"github.com/casslabs/layoutocr/pkg/extract"
	"github.com/casslabs/layoutocr/pkg/layout"
)

// Config holds user options for the Tesseract engine.
type Config struct {
	// Language is the Tesseract language setting, "+" separated for multiple
	// languages (e.g. "eng+fra"). Empty means the Tesseract default.
	Language string `yaml:"language"`
}

// Recognizer is an extract.Recognizer backed by a local Tesseract engine.
type Recognizer struct {
	cfg    Config
	client *gosseract.Client
}

// New creates a Tesseract recognizer. The engine is initialized by Load.
func New(cfg Config) *Recognizer {
	return &Recognizer{cfg: cfg}
}

// Load initializes the Tesseract client. Calling Load on an already-loaded
// recognizer is a no-op.
func (r *Recognizer) Load(ctx context.Context) error {
	if r.client != nil {
		return nil
	}

	client := gosseract.NewClient()
	if r.cfg.Language != "" {
		if err := client.SetLanguage(strings.Split(r.cfg.Language, "+")...); err != nil {
			client.Close()
			return fmt.Errorf("failed to set language %q: %w", r.cfg.Language, err)
		}
	}

	r.client = client
	return nil
}

// Close releases Tesseract resources.
func (r *Recognizer) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// Recognize runs Tesseract on the image and returns its block boxes rendered
// as layout markup.
func (r *Recognizer) Recognize(ctx context.Context, imagePath, prompt string) (*extract.Generation, error) {
	if r.client == nil {
		return nil, fmt.Errorf("recognizer is not loaded")
	}

	width, height, err := imageDimensions(imagePath)
	if err != nil {
		return nil, err
	}

	if err := r.client.SetImage(imagePath); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := r.client.GetBoundingBoxes(gosseract.RIL_BLOCK)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	var regions []layout.Region
	for _, box := range boxes {
		text := strings.TrimSpace(box.Word)
		if text == "" {
			continue
		}
		regions = append(regions, layout.Region{
			Box:   gridBox(box.Box, width, height),
			Label: layout.DefaultLabel,
			Text:  text,
		})
	}

	markup, err := layout.GenerateDocument(regions)
	if err != nil {
		return nil, err
	}

	return &extract.Generation{Markup: markup}, nil
}

// gridBox projects a pixel-space rectangle onto the normalized layout grid.
func gridBox(r image.Rectangle, width, height int) layout.GridBox {
	return layout.GridBox{
		X0: r.Min.X * layout.GridSize / width,
		Y0: r.Min.Y * layout.GridSize / height,
		X1: r.Max.X * layout.GridSize / width,
		Y1: r.Max.Y * layout.GridSize / height,
	}
}

// imageDimensions reads the pixel dimensions of the image at path.
func imageDimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, fmt.Errorf("image has no area")
	}
	return cfg.Width, cfg.Height, nil
}
