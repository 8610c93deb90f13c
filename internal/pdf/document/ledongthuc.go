package document

import (
	"fmt"
	"math"
	"sort"

	lpdf "github.com/ledongthuc/pdf"

	"github.com/daisukehino1979/pdf-theck-gijyututeiansho-app/internal/pdf"
)

const (
	// Text fragments whose baselines differ by at most this many points are
	// merged into one block.
	lineTolerance = 2.0

	// Page-tree traversal limit when resolving an inherited MediaBox.
	maxParentDepth = 10
)

// PageSize returns the page's width and height in points, taken from its
// MediaBox with page-tree inheritance.
func (d *Document) PageSize(pageNum int) (float64, float64, error) {
	if err := d.checkPageNum(pageNum); err != nil {
		return 0, 0, err
	}

	page := d.reader.Page(pageNum)
	if page.V.IsNull() {
		return 0, 0, fmt.Errorf("page %d has no page dictionary", pageNum)
	}

	box, err := mediaBox(page)
	if err != nil {
		return 0, 0, err
	}

	return box.X1 - box.X0, box.Y1 - box.Y0, nil
}

// TextBlocks returns the page's text blocks intersecting the clip rectangle.
// Fragments sharing a baseline are merged into one block, and coordinates are
// converted to top-left origin so the clip rectangle and the returned boxes
// use the same space as the selection algorithm.
func (d *Document) TextBlocks(pageNum int, clip pdf.Rect) (blocks []pdf.TextBlock, err error) {
	// Malformed content streams can panic inside the content parser.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during text extraction on page %d: %v", pageNum, r)
		}
	}()

	if err := d.checkPageNum(pageNum); err != nil {
		return nil, err
	}

	page := d.reader.Page(pageNum)
	if page.V.IsNull() {
		return nil, nil
	}

	box, err := mediaBox(page)
	if err != nil {
		return nil, err
	}

	content := page.Content()
	for _, block := range buildBlocks(content.Text, box) {
		if block.Rect.Intersects(clip) {
			blocks = append(blocks, block)
		}
	}

	return blocks, nil
}

// buildBlocks merges raw text fragments into baseline-level blocks with
// top-left-origin bounding boxes relative to the page's MediaBox. Fragments
// are ordered top of page first, then left to right, so merging and output
// order are deterministic.
func buildBlocks(frags []lpdf.Text, box pdf.Rect) []pdf.TextBlock {
	if len(frags) == 0 {
		return nil
	}

	sorted := make([]lpdf.Text, len(frags))
	copy(sorted, frags)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			// Larger native Y is higher on the page.
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var blocks []pdf.TextBlock
	baseline := math.Inf(1)
	for _, t := range sorted {
		if t.S == "" {
			continue
		}

		rect := fragmentRect(t, box)
		if len(blocks) > 0 && math.Abs(t.Y-baseline) <= lineTolerance {
			last := &blocks[len(blocks)-1]
			last.Text += t.S
			last.Rect = last.Rect.Union(rect)
			continue
		}

		blocks = append(blocks, pdf.TextBlock{Rect: rect, Text: t.S})
		baseline = t.Y
	}

	return blocks
}

// fragmentRect converts a text fragment's native bottom-left-origin position
// into a top-left-origin bounding box relative to the MediaBox origin, so a
// nonzero-origin MediaBox still yields coordinates in 0..width/0..height
// space. The fragment spans from its baseline up by its font size.
func fragmentRect(t lpdf.Text, box pdf.Rect) pdf.Rect {
	return pdf.Rect{
		X0: t.X - box.X0,
		Y0: box.Y1 - (t.Y + t.FontSize),
		X1: t.X + t.W - box.X0,
		Y1: box.Y1 - t.Y,
	}
}

// mediaBox reads the page's MediaBox, walking up the page tree when the
// entry is inherited.
func mediaBox(page lpdf.Page) (pdf.Rect, error) {
	if box := page.V.Key("MediaBox"); !box.IsNull() {
		return parseBoxValue(box)
	}

	current := page.V
	for i := 0; i < maxParentDepth; i++ {
		parent := current.Key("Parent")
		if parent.IsNull() {
			break
		}
		if box := parent.Key("MediaBox"); !box.IsNull() {
			return parseBoxValue(box)
		}
		current = parent
	}

	return pdf.Rect{}, fmt.Errorf("no valid MediaBox found")
}

// parseBoxValue parses a MediaBox array into a rectangle.
func parseBoxValue(box lpdf.Value) (pdf.Rect, error) {
	if box.Kind() != lpdf.Array {
		return pdf.Rect{}, fmt.Errorf("MediaBox is not an array: %v", box.Kind())
	}
	if box.Len() != 4 {
		return pdf.Rect{}, fmt.Errorf("invalid MediaBox array length: %d, expected 4", box.Len())
	}

	coords := make([]float64, 4)
	for i := 0; i < 4; i++ {
		val := box.Index(i)
		switch val.Kind() {
		case lpdf.Integer:
			coords[i] = float64(val.Int64())
		case lpdf.Real:
			coords[i] = val.Float64()
		default:
			return pdf.Rect{}, fmt.Errorf("invalid coordinate type at index %d: %v", i, val.Kind())
		}
	}

	llx, lly, urx, ury := coords[0], coords[1], coords[2], coords[3]
	if urx <= llx || ury <= lly {
		return pdf.Rect{}, fmt.Errorf("invalid MediaBox dimensions: [%.2f %.2f %.2f %.2f]", llx, lly, urx, ury)
	}

	return pdf.Rect{X0: llx, Y0: lly, X1: urx, Y1: ury}, nil
}
