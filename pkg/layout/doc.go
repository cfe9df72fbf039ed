// Package layout implements parsing, text extraction, and generation of layout
// markup, the HTML-based format a layout-aware OCR model uses to describe the
// blocks it recognized on a page.
//
// In layout markup every recognized block is a top-level <div> whose data-bbox
// attribute holds the block's bounding box in [x0, y0, x1, y1] form on a fixed
// normalized grid (side GridSize), and whose data-label attribute names the
// block type (Section-Header, Table, Text, ...).
//
// This package provides:
//
// - Parsing of layout markup into positioned Block values in image pixel space
// - Rescaling from the normalized grid to arbitrary image dimensions
// - Plain-text extraction with a structured and a degraded strategy
// - Generation of layout markup from normalized Region values
//
// Key Types:
//
// - Block: a recognized block with pixel coordinates, text, and label
// - Region: a labeled text region on the normalized grid, used for generation
// - TextExtraction: plain text plus the strategy that produced it
//
// Main Functions:
//
// - ParseBlocks: parses markup and rescales block boxes to image pixels
// - ExtractText: recovers plain text when block extraction is not usable
// - GenerateDocument: renders Region values as layout markup
package layout
