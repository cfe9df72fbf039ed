package layout

import (
	"encoding/json"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding/charmap"
)

// ParseBlocks extracts positioned text blocks from raw layout markup.
// Box coordinates are rescaled from the normalized grid to the given image
// dimensions and clamped to the image, and blocks that end up with no area or
// no text are dropped. Blocks are returned in document order.
func ParseBlocks(raw string, imageWidth, imageHeight int) []Block {
	doc, err := parseMarkup(raw)
	if err != nil {
		return nil
	}

	widthScale := float64(imageWidth) / GridSize
	heightScale := float64(imageHeight) / GridSize

	var blocks []Block
	for _, div := range topLevelDivs(doc) {
		coords, ok := parseBBox(getAttrVal(div, "data-bbox"))
		if !ok {
			// A block without a usable bbox is model noise, not an error
			continue
		}

		label := getAttrVal(div, "data-label")
		if label == "" {
			label = DefaultLabel
		}

		// Scale first, clamp after, truncating rather than rounding. Boxes
		// that nominally extend past the grid still clip to a usable box.
		x1 := max(0, int(float64(coords[0])*widthScale))
		y1 := max(0, int(float64(coords[1])*heightScale))
		x2 := min(int(float64(coords[2])*widthScale), imageWidth)
		y2 := min(int(float64(coords[3])*heightScale), imageHeight)

		width := x2 - x1
		height := y2 - y1
		if width <= 0 || height <= 0 {
			continue
		}

		text := textContent(div)
		if text == "" {
			continue
		}

		blocks = append(blocks, Block{
			Text:      text,
			X:         x1,
			Y:         y1,
			Width:     width,
			Height:    height,
			Label:     label,
			Estimated: false,
		})
	}

	return blocks
}

// parseBBox reads a bounding box attribute value, tolerating both a JSON
// array of four numbers and a whitespace-separated list of four numbers.
// Fractional coordinates are truncated to integers.
func parseBBox(s string) ([4]int, bool) {
	var result [4]int
	if s == "" {
		return result, false
	}

	var nums []float64
	if err := json.Unmarshal([]byte(s), &nums); err != nil || len(nums) != 4 {
		fields := strings.Fields(s)
		if len(fields) != 4 {
			return result, false
		}
		nums = nums[:0]
		for _, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return result, false
			}
			nums = append(nums, v)
		}
	}

	for i, v := range nums {
		result[i] = int(v)
	}
	return result, true
}

// parseMarkup parses raw markup into an HTML node tree, decoding Latin-1
// input to UTF-8 when the markup declares an ISO-8859-1 family charset.
func parseMarkup(raw string) (*html.Node, error) {
	if isLatin1(sniffCharset(raw)) {
		decoded, err := charmap.ISO8859_1.NewDecoder().String(raw)
		if err != nil {
			return nil, err
		}
		raw = decoded
	}

	return html.Parse(strings.NewReader(raw))
}

// sniffCharset reads a charset= declaration out of the markup, if any.
// Model output is arbitrary text, so a declaration truncated at the end of
// the input yields "" rather than an error.
func sniffCharset(raw string) string {
	idx := strings.Index(raw, "charset=")
	if idx < 0 {
		return ""
	}
	snippet := raw[idx+len("charset="):]
	if len(snippet) > 20 {
		snippet = snippet[:20]
	}
	fields := strings.FieldsFunc(snippet, func(r rune) bool {
		return r == '"' || r == ';' || r == '\'' || r == '>' || r == ' '
	})
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// isLatin1 reports whether the declared charset names an ISO-8859-1 family
// encoding. Any other declaration, canonical or not, is left alone and
// parsed as UTF-8.
func isLatin1(enc string) bool {
	switch enc {
	case "iso-8859-1", "iso8859-1", "latin1", "latin-1":
		return true
	}
	return false
}

// topLevelDivs returns the div elements that are direct children of the
// document body. Divs nested inside another block are not separate blocks;
// their text folds into the parent.
func topLevelDivs(doc *html.Node) []*html.Node {
	var body *html.Node
	var findBody func(*html.Node)
	findBody = func(n *html.Node) {
		if body != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "body" {
			body = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			findBody(c)
		}
	}
	findBody(doc)
	if body == nil {
		return nil
	}

	var divs []*html.Node
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "div" {
			divs = append(divs, c)
		}
	}
	return divs
}

// textContent gathers the visible text of a node and all its descendants.
// Each text run is trimmed, empty runs are skipped, and the runs are joined
// with single spaces.
func textContent(n *html.Node) string {
	var runs []string
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			if t := strings.TrimSpace(node.Data); t != "" {
				runs = append(runs, t)
			}
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(runs, " ")
}

// Get the value of a specific attribute from a node
func getAttrVal(n *html.Node, attrName string) string {
	for _, attr := range n.Attr {
		if attr.Key == attrName {
			return attr.Val
		}
	}
	return ""
}
