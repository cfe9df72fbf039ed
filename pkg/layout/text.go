package layout

import (
	"regexp"
	"strings"
)

// Strategy identifies how plain text was recovered from layout markup.
type Strategy int

const (
	// StrategyStructured extracts text per top-level block from the parsed
	// markup tree, preserving block boundaries as lines.
	StrategyStructured Strategy = iota
	// StrategyDegraded strips tags literally and collapses whitespace. Used
	// when the markup tree is unusable for the input.
	StrategyDegraded
)

func (s Strategy) String() string {
	if s == StrategyStructured {
		return "structured"
	}
	return "degraded"
}

// TextExtraction is plain text recovered from layout markup, together with
// the strategy that produced it. Text is always the newline join of Lines in
// the structured case, and Lines never contains empty entries.
type TextExtraction struct {
	Strategy Strategy
	Text     string
	Lines    []string
}

var (
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// ExtractText recovers an ordered plain-text representation from raw layout
// markup. It prefers the structured strategy and degrades to literal tag
// stripping when the markup tree yields nothing usable.
func ExtractText(raw string) TextExtraction {
	if doc, err := parseMarkup(raw); err == nil {
		var texts []string
		for _, div := range topLevelDivs(doc) {
			if text := textContent(div); text != "" {
				texts = append(texts, text)
			}
		}
		if len(texts) > 0 {
			return TextExtraction{
				Strategy: StrategyStructured,
				Text:     strings.Join(texts, "\n"),
				Lines:    texts,
			}
		}
	}
	return extractDegraded(raw)
}

// extractDegraded strips markup without a tree: literal bracket removal,
// whitespace collapsing, then a split into non-empty lines.
func extractDegraded(raw string) TextExtraction {
	text := tagPattern.ReplaceAllString(raw, " ")
	text = strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	return TextExtraction{
		Strategy: StrategyDegraded,
		Text:     text,
		Lines:    lines,
	}
}
