package overlay

// Config holds user options for rendering an extraction result to PDF
type Config struct {
	Debug     bool   // Draw block boxes and visible text instead of a hidden layer
	LayerName string // Name of the text layer in the PDF
	Font      FontConfig
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() Config {
	return Config{
		Debug:     false,
		LayerName: "OCR Text",
		Font:      DefaultFont,
	}
}

// FontConfig contains font settings for the text layer
type FontConfig struct {
	Name        string  // Font name (e.g., "Helvetica")
	Style       string  // Font style ("", "B", "I", "BI")
	Size        float64 // Default font size
	AscentRatio float64 // Vertical positioning ratio
}

// DefaultFont sets the default font to Helvetica which is tried and tested for the OCR layer
var DefaultFont = FontConfig{
	Name:        "Helvetica",
	Style:       "",
	Size:        10,
	AscentRatio: 0.718,
}
