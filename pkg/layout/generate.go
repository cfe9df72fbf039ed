package layout

import (
	"bytes"
	"embed"
	"fmt"
	stdhtml "html"
	"strings"
	"text/template"
)

//go:embed templates/layout.tmpl
var templateFS embed.FS

// GenerateDocument renders Region values as layout markup, one top-level div
// per region in input order. The output parses back through ParseBlocks.
func GenerateDocument(regions []Region) (string, error) {
	tmpl, err := template.New("layout.tmpl").Funcs(template.FuncMap{
		"escape": stdhtml.EscapeString,
		"trim":   strings.TrimSpace,
	}).ParseFS(templateFS, "templates/layout.tmpl")
	if err != nil {
		return "", fmt.Errorf("error parsing layout template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, regions); err != nil {
		return "", fmt.Errorf("error rendering layout template: %w", err)
	}

	return buf.String(), nil
}
