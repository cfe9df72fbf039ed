// Package overlay renders an extraction result as a searchable single-page
// PDF: the source image as the page background with the extracted blocks laid
// over it as an invisible text layer at their pixel positions. Debug mode
// makes the layer visible and outlines each block box.
package overlay

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/casslabs/layoutocr/pkg/layout"
)

// BuildPDF creates a single-page PDF from the image the blocks were
// extracted from. Block coordinates are interpreted in the image's pixel
// space, so the image must be the same artifact the extraction ran on.
func BuildPDF(imageData []byte, blocks []layout.Block, cfg Config) ([]byte, error) {
	imgCfg, format, err := image.DecodeConfig(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image config: %w", err)
	}
	w := float64(imgCfg.Width)
	h := float64(imgCfg.Height)

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})

	opts := fpdf.ImageOptions{ReadDpi: false, ImageType: strings.ToUpper(format)}
	pdf.RegisterImageOptionsReader("page", opts, bytes.NewReader(imageData))
	pdf.ImageOptions("page", 0, 0, w, h, false, opts, 0, "")

	if err := drawTextLayer(pdf, blocks, cfg); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// drawTextLayer draws the extracted blocks onto a named PDF layer.
func drawTextLayer(pdf *fpdf.Fpdf, blocks []layout.Block, cfg Config) error {
	layer := pdf.AddLayer(cfg.LayerName, true)
	pdf.BeginLayer(layer)
	pdf.SetFont(cfg.Font.Name, cfg.Font.Style, cfg.Font.Size)

	if cfg.Debug {
		pdf.SetTextColor(255, 0, 0) // highlight text in red
	} else {
		pdf.SetAlpha(0.0, "Normal") // hide text from normal view
	}

	encodingErrors := 0
	for _, block := range blocks {
		drawBlock(pdf, block, cfg, &encodingErrors)
	}

	pdf.EndLayer()

	// Report encoding errors if more than a threshold
	if len(blocks) > 0 && encodingErrors > len(blocks)/10 {
		return fmt.Errorf("character encoding issues in %d of %d blocks",
			encodingErrors, len(blocks))
	}
	return nil
}

// drawBlock renders a single block's text scaled to its box width.
func drawBlock(pdf *fpdf.Fpdf, block layout.Block, cfg Config, encodingErrors *int) {
	x := float64(block.X)
	y := float64(block.Y)
	blockWidth := float64(block.Width)

	// Convert text to ISO-8859-1 to avoid PDF encoding issues
	latin1, err := charmap.ISO8859_1.NewEncoder().String(block.Text)
	if err != nil {
		*encodingErrors++
		latin1 = block.Text // fallback to raw text
	}

	strWidth := pdf.GetStringWidth(latin1)
	if strWidth > 0 {
		scale := blockWidth / strWidth
		pdf.SetFontSize(cfg.Font.Size * scale)
	}

	fontSize, _ := pdf.GetFontSize()
	baseline := y + fontSize*cfg.Font.AscentRatio

	pdf.Text(x, baseline, latin1)
	pdf.SetFontSize(cfg.Font.Size)

	if cfg.Debug {
		pdf.Rect(x, y, blockWidth, float64(block.Height), "D")
	}
}
