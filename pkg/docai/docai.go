// Package docai backs the extraction pipeline with Google Document AI.
//
// The recognizer sends the prepared image to a Document AI OCR processor and
// renders the blocks of the response as layout markup on the normalized grid,
// so the rest of the pipeline treats Document AI exactly like a layout-aware
// model. The prompt is accepted for interface compatibility but Document AI
// takes no instructions; the processor configuration decides the behavior.
//
// Usage Requirements:
//
// - Google Cloud project with the Document AI API enabled
// - A Document AI processor configured for OCR
// - Authentication via the GOOGLE_APPLICATION_CREDENTIALS environment variable
package docai

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/api/option"

	"github.com/casslabs/layoutocr/pkg/extract"
)

// Config holds the Document AI processor settings.
type Config struct {
	ProjectID   string `yaml:"project_id"`
	Location    string `yaml:"location"`
	ProcessorID string `yaml:"processor_id"`
}

// Recognizer is an extract.Recognizer backed by a Document AI processor.
type Recognizer struct {
	cfg    *Config
	client *documentai.DocumentProcessorClient

	// Raw response of the most recent Recognize call, kept for debug dumps.
	lastResponse *documentaipb.Document
}

// New creates a Document AI recognizer. The client connection is established
// by Load, not here.
func New(cfg *Config) *Recognizer {
	return &Recognizer{cfg: cfg}
}

// Load validates the configuration and connects the Document AI client.
// Calling Load on an already-loaded recognizer is a no-op.
func (r *Recognizer) Load(ctx context.Context) error {
	if r.client != nil {
		return nil
	}
	if r.cfg == nil || r.cfg.ProjectID == "" || r.cfg.Location == "" || r.cfg.ProcessorID == "" {
		return fmt.Errorf("document ai config is incomplete: project_id, location and processor_id are required")
	}

	endpoint := fmt.Sprintf("%s-documentai.googleapis.com:443", r.cfg.Location)
	client, err := documentai.NewDocumentProcessorClient(
		ctx,
		option.WithEndpoint(endpoint),
		option.WithCredentialsFile(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")),
	)
	if err != nil {
		return fmt.Errorf("failed to create Document AI client: %w", err)
	}

	r.client = client
	return nil
}

// Close releases the client connection.
func (r *Recognizer) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// Recognize runs the image through the configured processor and returns the
// response rendered as layout markup.
func (r *Recognizer) Recognize(ctx context.Context, imagePath, prompt string) (*extract.Generation, error) {
	if r.client == nil {
		return nil, fmt.Errorf("recognizer is not loaded")
	}

	imageBytes, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	mimeType, err := detectMimeType(imageBytes)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf(
		"projects/%s/locations/%s/processors/%s",
		r.cfg.ProjectID, r.cfg.Location, r.cfg.ProcessorID,
	)

	req := &documentaipb.ProcessRequest{
		Name: name,
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  imageBytes,
				MimeType: mimeType,
			},
		},
		SkipHumanReview: true,
	}

	resp, err := r.client.ProcessDocument(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to process document: %w", err)
	}
	r.lastResponse = resp.Document

	markup, err := markupFromDocument(resp.Document)
	if err != nil {
		return nil, err
	}

	return &extract.Generation{Markup: markup}, nil
}

// detectMimeType sniffs the image format and maps it to the MIME type the
// Document AI API expects.
func detectMimeType(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to detect image type: %w", err)
	}
	return "image/" + format, nil
}
