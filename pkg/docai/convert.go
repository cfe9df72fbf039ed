package docai

import (
	"math"
	"strings"

	"cloud.google.com/go/documentai/apiv1/documentaipb"

	"github.com/casslabs/layoutocr/pkg/layout"
)

// markupFromDocument renders the blocks of a Document AI response as layout
// markup on the normalized grid, in the order the API reports them. Blocks
// without a usable bounding polygon or without text are skipped.
func markupFromDocument(doc *documentaipb.Document) (string, error) {
	if doc == nil {
		return "", nil
	}

	var regions []layout.Region
	for _, page := range doc.Pages {
		for _, block := range page.Blocks {
			box, ok := gridBoxFromLayout(block.Layout, page.Dimension)
			if !ok {
				continue
			}
			text := strings.TrimSpace(textFromLayout(block.Layout, doc.Text))
			if text == "" {
				continue
			}
			regions = append(regions, layout.Region{
				Box:   box,
				Label: layout.DefaultLabel,
				Text:  text,
			})
		}
	}

	return layout.GenerateDocument(regions)
}

// gridBoxFromLayout projects a Document AI bounding polygon onto the
// normalized grid. Normalized vertices (0..1) are preferred; absolute
// vertices are divided by the page dimension.
func gridBoxFromLayout(l *documentaipb.Document_Page_Layout, dim *documentaipb.Document_Page_Dimension) (layout.GridBox, bool) {
	var box layout.GridBox
	if l == nil || l.BoundingPoly == nil {
		return box, false
	}

	if nv := l.BoundingPoly.NormalizedVertices; len(nv) >= 3 {
		minX, minY := math.Inf(1), math.Inf(1)
		maxX, maxY := math.Inf(-1), math.Inf(-1)
		for _, v := range nv {
			minX = math.Min(minX, float64(v.X))
			minY = math.Min(minY, float64(v.Y))
			maxX = math.Max(maxX, float64(v.X))
			maxY = math.Max(maxY, float64(v.Y))
		}
		box = layout.GridBox{
			X0: int(minX * layout.GridSize),
			Y0: int(minY * layout.GridSize),
			X1: int(maxX * layout.GridSize),
			Y1: int(maxY * layout.GridSize),
		}
		return box, box.X1 > box.X0 && box.Y1 > box.Y0
	}

	if v := l.BoundingPoly.Vertices; len(v) >= 3 && dim != nil && dim.Width > 0 && dim.Height > 0 {
		minX, minY := math.Inf(1), math.Inf(1)
		maxX, maxY := math.Inf(-1), math.Inf(-1)
		for _, p := range v {
			minX = math.Min(minX, float64(p.X))
			minY = math.Min(minY, float64(p.Y))
			maxX = math.Max(maxX, float64(p.X))
			maxY = math.Max(maxY, float64(p.Y))
		}
		box = layout.GridBox{
			X0: int(minX / float64(dim.Width) * layout.GridSize),
			Y0: int(minY / float64(dim.Height) * layout.GridSize),
			X1: int(maxX / float64(dim.Width) * layout.GridSize),
			Y1: int(maxY / float64(dim.Height) * layout.GridSize),
		}
		return box, box.X1 > box.X0 && box.Y1 > box.Y0
	}

	return box, false
}

// textFromLayout extracts text from a layout's text anchor segments
func textFromLayout(l *documentaipb.Document_Page_Layout, fullText string) string {
	if l == nil || l.TextAnchor == nil {
		return ""
	}
	runes := []rune(fullText)
	result := strings.Builder{}
	totalRunes := len(runes)

	for _, seg := range l.TextAnchor.TextSegments {
		start := int(seg.StartIndex)
		end := int(seg.EndIndex)
		if start < 0 {
			start = 0
		}
		if end > totalRunes {
			end = totalRunes
		}
		if start > end {
			start = end
		}
		result.WriteString(string(runes[start:end]))
	}
	return result.String()
}
