package layout

// GridSize is the side of the normalized coordinate grid used by layout
// markup. Bounding boxes in data-bbox attributes are expressed on this grid
// regardless of the real image dimensions.
const GridSize = 1024

// DefaultLabel is assigned to blocks whose data-label attribute is missing.
const DefaultLabel = "Text"

// Labels is the block label vocabulary the OCR prompt asks the model to use.
// The parser does not enforce it; unknown labels pass through unchanged.
var Labels = []string{
	"Caption",
	"Footnote",
	"Equation-Block",
	"List-Group",
	"Page-Header",
	"Page-Footer",
	"Image",
	"Section-Header",
	"Table",
	"Text",
	"Complex-Block",
	"Code-Block",
	"Form",
	"Table-Of-Contents",
	"Figure",
}

// Block is one recognized layout block positioned in image pixel space.
// Width and Height are always positive; blocks that would be empty after
// rescaling are never emitted.
type Block struct {
	Text      string `json:"text"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Label     string `json:"label"`
	Estimated bool   `json:"estimated"`
}

// GridBox is a rectangle on the normalized grid.
// (X0, Y0) is the top-left corner, (X1, Y1) the bottom-right.
type GridBox struct {
	X0 int
	Y0 int
	X1 int
	Y1 int
}

// Region is a labeled text region on the normalized grid. It is the input
// unit for markup generation, the inverse of Block which is parser output.
type Region struct {
	Box   GridBox
	Label string
	Text  string
}
