// layoutocr is a command-line tool that runs layout OCR on a raster image and
// emits the recognized text blocks, with pixel-space bounding boxes, as JSON.
//
// The tool normalizes oversized images to a pixel budget, sends the image to
// the selected recognition engine, parses the returned layout markup into
// positioned blocks, and packages the result with timing and confidence
// metadata. When no blocks can be extracted it falls back to plain text.
//
// Engines:
//
//	tesseract  Local Tesseract engine via gosseract (default)
//	docai      Google Document AI OCR processor
//
// Configuration:
//
// An optional YAML configuration file selects the engine and its settings:
//
//	engine: "docai"
//	max_pixels: 4194304
//	language: "eng"
//	document_ai:
//	  project_id: "your-gcp-project-id"
//	  location: "us"
//	  processor_id: "your-processor-id"
//
// Usage:
//
//	layoutocr -image page.png [options]
//
// Required flags:
//
//	-image string   Path to the input image
//
// Options:
//
//	-config string     Path to the YAML configuration file
//	-engine string     Recognition engine, overrides the config file
//	-max-pixels int    Pixel budget before downscaling, overrides the config file
//	-json              Print only the JSON result on stdout
//	-output string     Path to save the JSON result
//	-text string       Path to save the plain text
//	-pdf string        Path to save a searchable PDF of the result
//	-debug-raw string  Path to save the raw model markup
//	-debug-api string  Path to save the raw Document AI response (docai engine only)
//
// Authentication:
//
// The docai engine uses the GOOGLE_APPLICATION_CREDENTIALS environment
// variable for authentication with Google Cloud.
//
// Example:
//
//	layoutocr -image scan.png -json
//	layoutocr -image scan.png -config config.yml -pdf scan_searchable.pdf
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/casslabs/layoutocr/pkg/docai"
	"github.com/casslabs/layoutocr/pkg/extract"
	"github.com/casslabs/layoutocr/pkg/overlay"
	"github.com/casslabs/layoutocr/pkg/tessocr"
)

type yamlConfig struct {
	Engine     string       `yaml:"engine"`
	MaxPixels  int          `yaml:"max_pixels"`
	Language   string       `yaml:"language"`
	DocumentAI docai.Config `yaml:"document_ai"`
}

// loadConfig reads the YAML configuration file
func loadConfig(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return nil, err
	}
	return &yc, nil
}

// fail prints a failure envelope and exits non-zero. Every user-visible
// failure is JSON-shaped with a human-readable error string.
func fail(message string) {
	result := &extract.Result{Success: false, Error: message}
	out, err := result.JSON()
	if err != nil {
		fmt.Fprintln(os.Stderr, message)
		os.Exit(1)
	}
	fmt.Println(out)
	os.Exit(1)
}

func main() {
	imagePath := flag.String("image", "", "Path to the input image (required)")
	configPath := flag.String("config", "", "Path to the YAML configuration file")
	engineName := flag.String("engine", "", "Recognition engine: tesseract or docai (overrides config)")
	maxPixels := flag.Int("max-pixels", 0, "Pixel budget before downscaling (overrides config)")
	jsonOnly := flag.Bool("json", false, "Print only the JSON result on stdout")
	outputPath := flag.String("output", "", "Path to save the JSON result")
	textPath := flag.String("text", "", "Path to save the plain text")
	pdfPath := flag.String("pdf", "", "Path to save a searchable PDF of the result")
	debugRawPath := flag.String("debug-raw", "", "Path to save the raw model markup")
	debugAPIPath := flag.String("debug-api", "", "Path to save the raw Document AI response")
	flag.Parse()

	if *imagePath == "" {
		fmt.Fprintln(os.Stderr, "Error: -image flag is required")
		fmt.Fprintln(os.Stderr, "Usage:")
		flag.PrintDefaults()
		fail("usage: layoutocr -image <path>")
	}

	cfg := &yamlConfig{}
	if *configPath != "" {
		loaded, err := loadConfig(*configPath)
		if err != nil {
			fail(fmt.Sprintf("failed to load config: %v", err))
		}
		cfg = loaded
	}
	if *engineName != "" {
		cfg.Engine = *engineName
	}
	if *maxPixels > 0 {
		cfg.MaxPixels = *maxPixels
	}

	// Build the selected recognizer
	var rec extract.Recognizer
	var docaiRec *docai.Recognizer
	switch cfg.Engine {
	case "docai":
		docaiRec = docai.New(&cfg.DocumentAI)
		rec = docaiRec
	case "", "tesseract":
		tessRec := tessocr.New(tessocr.Config{Language: cfg.Language})
		defer tessRec.Close()
		rec = tessRec
	default:
		fail(fmt.Sprintf("unknown engine %q (expected tesseract or docai)", cfg.Engine))
	}
	if docaiRec != nil {
		defer docaiRec.Close()
	}

	engineCfg := extract.DefaultConfig()
	if cfg.MaxPixels > 0 {
		engineCfg.MaxPixels = cfg.MaxPixels
	}

	engine := extract.NewEngine(rec, engineCfg)
	result := engine.Run(context.Background(), *imagePath)

	resultJSON, err := result.JSON()
	if err != nil {
		fail(fmt.Sprintf("failed to encode result: %v", err))
	}

	if *jsonOnly {
		fmt.Println(resultJSON)
	} else if result.Success {
		fmt.Printf("Extracted %d blocks (confidence %.2f) from %s\n",
			len(result.Blocks), result.Confidence, *imagePath)
	} else {
		// Failures are JSON-shaped on stdout like every other outcome
		fmt.Println(resultJSON)
	}

	if *outputPath != "" {
		if err := os.WriteFile(*outputPath, []byte(resultJSON), 0644); err != nil {
			fail(fmt.Sprintf("failed to write JSON output: %v", err))
		}
		if !*jsonOnly {
			fmt.Println("Result JSON saved to:", *outputPath)
		}
	}

	if *textPath != "" && result.Success {
		if err := os.WriteFile(*textPath, []byte(result.Text), 0644); err != nil {
			fail(fmt.Sprintf("failed to write text output: %v", err))
		}
		if !*jsonOnly {
			fmt.Println("Plain text saved to:", *textPath)
		}
	}

	if *debugRawPath != "" && result.RawHTML != "" {
		if err := os.WriteFile(*debugRawPath, []byte(result.RawHTML), 0644); err != nil {
			fail(fmt.Sprintf("failed to write raw markup: %v", err))
		}
		if !*jsonOnly {
			fmt.Println("Raw markup saved to:", *debugRawPath)
		}
	}

	if *debugAPIPath != "" {
		if docaiRec == nil {
			fmt.Fprintln(os.Stderr, "Warning: -debug-api is only available with the docai engine")
		} else if apiJSON, err := docaiRec.RawResponseJSON(); err == nil {
			if err := os.WriteFile(*debugAPIPath, []byte(apiJSON), 0644); err != nil {
				fail(fmt.Sprintf("failed to write API response: %v", err))
			}
			if !*jsonOnly {
				fmt.Println("API response saved to:", *debugAPIPath)
			}
		}
	}

	if *pdfPath != "" && result.Success {
		imageData, err := os.ReadFile(result.ProcessedImage)
		if err != nil {
			fail(fmt.Sprintf("failed to read processed image: %v", err))
		}
		pdfBytes, err := overlay.BuildPDF(imageData, result.Blocks, overlay.DefaultConfig())
		if err != nil {
			fail(fmt.Sprintf("failed to build PDF: %v", err))
		}
		if err := os.WriteFile(*pdfPath, pdfBytes, 0644); err != nil {
			fail(fmt.Sprintf("failed to write PDF: %v", err))
		}
		if !*jsonOnly {
			fmt.Println("Searchable PDF saved to:", *pdfPath)
		}
	}

	if !result.Success {
		os.Exit(1)
	}
}
