package docai

import (
	"testing"

	"cloud.google.com/go/documentai/apiv1/documentaipb"

	"github.com/casslabs/layoutocr/pkg/layout"
)

func blockWithNormalizedBox(start, end int64, verts [][2]float32) *documentaipb.Document_Page_Block {
	nv := make([]*documentaipb.NormalizedVertex, len(verts))
	for i, v := range verts {
		nv[i] = &documentaipb.NormalizedVertex{X: v[0], Y: v[1]}
	}
	return &documentaipb.Document_Page_Block{
		Layout: &documentaipb.Document_Page_Layout{
			TextAnchor: &documentaipb.Document_TextAnchor{
				TextSegments: []*documentaipb.Document_TextAnchor_TextSegment{
					{StartIndex: start, EndIndex: end},
				},
			},
			BoundingPoly: &documentaipb.BoundingPoly{NormalizedVertices: nv},
		},
	}
}

func TestMarkupFromDocument(t *testing.T) {
	doc := &documentaipb.Document{
		Text: "Hello world",
		Pages: []*documentaipb.Document_Page{
			{
				Blocks: []*documentaipb.Document_Page_Block{
					blockWithNormalizedBox(0, 5, [][2]float32{{0, 0}, {0.5, 0}, {0.5, 0.25}, {0, 0.25}}),
					blockWithNormalizedBox(6, 11, [][2]float32{{0, 0.5}, {1, 0.5}, {1, 1}, {0, 1}}),
				},
			},
		},
	}

	markup, err := markupFromDocument(doc)
	if err != nil {
		t.Fatalf("markupFromDocument failed: %v", err)
	}

	blocks := layout.ParseBlocks(markup, layout.GridSize, layout.GridSize)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d (markup: %q)", len(blocks), markup)
	}
	if blocks[0].Text != "Hello" || blocks[1].Text != "world" {
		t.Errorf("unexpected block texts %q, %q", blocks[0].Text, blocks[1].Text)
	}
	if blocks[0].X != 0 || blocks[0].Y != 0 || blocks[0].Width != 512 || blocks[0].Height != 256 {
		t.Errorf("unexpected first box %+v", blocks[0])
	}
	if blocks[1].Y != 512 || blocks[1].Width != 1024 || blocks[1].Height != 512 {
		t.Errorf("unexpected second box %+v", blocks[1])
	}
}

func TestMarkupFromDocumentSkipsUnusableBlocks(t *testing.T) {
	doc := &documentaipb.Document{
		Text: "Hello",
		Pages: []*documentaipb.Document_Page{
			{
				Blocks: []*documentaipb.Document_Page_Block{
					// No bounding polygon
					{
						Layout: &documentaipb.Document_Page_Layout{
							TextAnchor: &documentaipb.Document_TextAnchor{
								TextSegments: []*documentaipb.Document_TextAnchor_TextSegment{{StartIndex: 0, EndIndex: 5}},
							},
						},
					},
					// No text
					blockWithNormalizedBox(0, 0, [][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}),
				},
			},
		},
	}

	markup, err := markupFromDocument(doc)
	if err != nil {
		t.Fatalf("markupFromDocument failed: %v", err)
	}
	if blocks := layout.ParseBlocks(markup, layout.GridSize, layout.GridSize); len(blocks) != 0 {
		t.Errorf("expected unusable blocks to be skipped, got %d", len(blocks))
	}
}

func TestGridBoxFromAbsoluteVertices(t *testing.T) {
	l := &documentaipb.Document_Page_Layout{
		BoundingPoly: &documentaipb.BoundingPoly{
			Vertices: []*documentaipb.Vertex{
				{X: 0, Y: 0}, {X: 400, Y: 0}, {X: 400, Y: 300}, {X: 0, Y: 300},
			},
		},
	}
	dim := &documentaipb.Document_Page_Dimension{Width: 800, Height: 600}

	box, ok := gridBoxFromLayout(l, dim)
	if !ok {
		t.Fatal("expected a usable box")
	}
	want := layout.GridBox{X0: 0, Y0: 0, X1: 512, Y1: 512}
	if box != want {
		t.Errorf("got %+v, want %+v", box, want)
	}
}

func TestTextFromLayoutClampsSegments(t *testing.T) {
	l := &documentaipb.Document_Page_Layout{
		TextAnchor: &documentaipb.Document_TextAnchor{
			TextSegments: []*documentaipb.Document_TextAnchor_TextSegment{
				{StartIndex: 6, EndIndex: 999},
			},
		},
	}
	if got := textFromLayout(l, "Hello world"); got != "world" {
		t.Errorf("got %q, want %q", got, "world")
	}
}
