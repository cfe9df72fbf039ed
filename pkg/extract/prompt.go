package extract

import (
	"fmt"
	"strings"

	"github.com/casslabs/layoutocr/pkg/layout"
)

// promptTemplate is the fixed structured-output prompt for layout OCR. The
// %d placeholders take the grid size; the %s placeholder takes the label
// vocabulary as a bulleted list. The permitted tags and attributes keep the
// generated markup inside what the parser tolerates.
const promptTemplate = `OCR this image to HTML, arranged as layout blocks.  Each layout block should be a div with the data-bbox attribute representing the bounding box of the block in [x0, y0, x1, y1] format.  Bboxes are normalized 0-%d. The data-label attribute is the label for the block.

Use the following labels:
%s

Only use these tags ['math', 'br', 'i', 'b', 'u', 'del', 'sup', 'sub', 'table', 'tr', 'td', 'p', 'th', 'div', 'pre', 'h1', 'h2', 'h3', 'h4', 'h5', 'ul', 'ol', 'li', 'input', 'a', 'span', 'img', 'hr', 'tbody', 'small', 'caption', 'strong', 'thead', 'big', 'code'], and these attributes ['class', 'colspan', 'rowspan', 'display', 'checked', 'type', 'border', 'value', 'style', 'href', 'alt', 'align'].

Guidelines:
* Inline math: Surround math with <math>...</math> tags. Math expressions should be rendered in KaTeX-compatible LaTeX. Use display for block math.
* Tables: Use colspan and rowspan attributes to match table structure.
* Formatting: Maintain consistent formatting with the image, including spacing, indentation, subscripts/superscripts, and special characters.
* Images: Include a description of any images in the alt attribute of an <img> tag. Do not fill out the src property.
* Forms: Mark checkboxes and radio buttons properly.
* Text: join lines together properly into paragraphs using <p>...</p> tags.  Use <br> tags for line breaks within paragraphs, but only when absolutely necessary to maintain meaning.
* Use the simplest possible HTML structure that accurately represents the content of the block.
* Make sure the text is accurate and easy for a human to read and interpret.  Reading order should be correct and natural.`

// LayoutPrompt builds the prompt sent with every image, binding the grid
// size and the label vocabulary.
func LayoutPrompt() string {
	labels := make([]string, len(layout.Labels))
	for i, label := range layout.Labels {
		labels[i] = "- " + label
	}
	return fmt.Sprintf(promptTemplate, layout.GridSize, strings.Join(labels, "\n"))
}
