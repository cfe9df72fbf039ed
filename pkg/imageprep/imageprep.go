// Package imageprep keeps input images within the pixel budget a layout OCR
// model can handle.
//
// Oversized images are downscaled with a single uniform factor so the aspect
// ratio is preserved exactly, and the downscaled copy is written as a sibling
// artifact without touching the source file. The dimensions reported here are
// the dimensions downstream coordinate rescaling must be parameterized with.
package imageprep

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"

	_ "image/gif"

	xdraw "golang.org/x/image/draw"
)

// DefaultMaxPixels is the default pixel budget for a single image.
const DefaultMaxPixels = 2048 * 2048

// Size holds image pixel dimensions.
type Size struct {
	Width  int
	Height int
}

// Unknown reports whether the size is the sentinel for an image whose
// dimensions could not be determined. Callers must not rescale against an
// unknown size.
func (s Size) Unknown() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Normalize decides the dimensions an image of the given size should be
// processed at. Images within the budget pass through unchanged; larger
// images shrink by one scalar factor on both axes, flooring each dimension.
func Normalize(width, height, maxPixels int) (int, int, bool) {
	if width*height <= maxPixels {
		return width, height, false
	}
	scale := math.Sqrt(float64(maxPixels) / float64(width*height))
	return int(float64(width) * scale), int(float64(height) * scale), true
}

// Prepare decodes the image at path and, if it exceeds the pixel budget,
// writes a downscaled copy named resized_<name> next to it. It returns the
// path and dimensions of the image to feed to inference, and whether a resize
// happened.
//
// An image that cannot be decoded is not an error: Prepare returns the
// original path with the unknown-size sentinel and lets the caller degrade.
// Failing to persist the downscaled copy is an error.
func Prepare(path string, maxPixels int) (string, Size, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return path, Size{}, false, nil
	}
	img, format, err := image.Decode(f)
	f.Close()
	if err != nil {
		return path, Size{}, false, nil
	}

	bounds := img.Bounds()
	size := Size{Width: bounds.Dx(), Height: bounds.Dy()}

	width, height, resized := Normalize(size.Width, size.Height, maxPixels)
	if !resized {
		return path, size, false, nil
	}

	fmt.Fprintf(os.Stderr, "[INFO] resizing %dx%d -> %dx%d\n", size.Width, size.Height, width, height)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)

	resizedPath := filepath.Join(filepath.Dir(path), "resized_"+filepath.Base(path))
	out, err := os.Create(resizedPath)
	if err != nil {
		return path, size, false, fmt.Errorf("failed to create resized image: %w", err)
	}
	defer out.Close()

	switch format {
	case "jpeg":
		err = jpeg.Encode(out, dst, &jpeg.Options{Quality: 95})
	default:
		err = png.Encode(out, dst)
	}
	if err != nil {
		return path, size, false, fmt.Errorf("failed to encode resized image: %w", err)
	}

	return resizedPath, Size{Width: width, Height: height}, true, nil
}
