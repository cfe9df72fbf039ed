package layout

import (
	"strings"
	"testing"
)

func TestExtractTextStructured(t *testing.T) {
	markup := `<div data-bbox="[0,0,100,100]">first block</div>` +
		`<div><p>second</p><p>block</p></div>`
	got := ExtractText(markup)

	if got.Strategy != StrategyStructured {
		t.Fatalf("expected structured strategy, got %v", got.Strategy)
	}
	if got.Text != "first block\nsecond block" {
		t.Errorf("unexpected text: %q", got.Text)
	}
	if len(got.Lines) != 2 || got.Lines[0] != "first block" || got.Lines[1] != "second block" {
		t.Errorf("unexpected lines: %#v", got.Lines)
	}
}

func TestExtractTextDegradedOnDivlessMarkup(t *testing.T) {
	got := ExtractText(`<p>plain   words</p> here`)

	if got.Strategy != StrategyDegraded {
		t.Fatalf("expected degraded strategy, got %v", got.Strategy)
	}
	if got.Text != "plain words here" {
		t.Errorf("expected collapsed whitespace, got %q", got.Text)
	}
	if len(got.Lines) != 1 || got.Lines[0] != "plain words here" {
		t.Errorf("unexpected lines: %#v", got.Lines)
	}
}

func TestExtractTextEmptyInput(t *testing.T) {
	got := ExtractText("")

	if got.Text != "" {
		t.Errorf("expected empty text, got %q", got.Text)
	}
	if len(got.Lines) != 0 {
		t.Errorf("expected no lines, got %#v", got.Lines)
	}
}

// Both strategies must produce the same shape so downstream code never
// branches on which one ran.
func TestExtractTextShapeIsStrategyAgnostic(t *testing.T) {
	inputs := []string{
		`<div>one</div><div>two</div>`,
		`<p>no blocks here</p>`,
		`bare text`,
		``,
	}

	for _, input := range inputs {
		got := ExtractText(input)
		if got.Text != strings.Join(got.Lines, "\n") {
			t.Errorf("input %q: text %q is not the newline join of lines %#v", input, got.Text, got.Lines)
		}
		for i, line := range got.Lines {
			if strings.TrimSpace(line) == "" {
				t.Errorf("input %q: line %d is empty", input, i)
			}
		}
	}
}
