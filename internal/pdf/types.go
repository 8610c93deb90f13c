package pdf

// Rect is an axis-aligned rectangle in page coordinates. The origin is the
// top-left corner of the page and y grows downward, so Y1 is the bottom edge
// and X1 the right edge. Document sources convert from native PDF
// bottom-left-origin space before handing rectangles to this package.
type Rect struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Intersects reports whether r and other share any area. Edges count as
// overlap, matching the inclusive clip region used for drawing-number lookup.
func (r Rect) Intersects(other Rect) bool {
	return r.X0 <= other.X1 && other.X0 <= r.X1 &&
		r.Y0 <= other.Y1 && other.Y0 <= r.Y1
}

// Union returns the smallest rectangle covering both r and other.
func (r Rect) Union(other Rect) Rect {
	out := r
	if other.X0 < out.X0 {
		out.X0 = other.X0
	}
	if other.Y0 < out.Y0 {
		out.Y0 = other.Y0
	}
	if other.X1 > out.X1 {
		out.X1 = other.X1
	}
	if other.Y1 > out.Y1 {
		out.Y1 = other.Y1
	}
	return out
}

// TextBlock is a contiguous run of text with its bounding box, as reported by
// the document source for a clipped region of a page.
type TextBlock struct {
	Rect Rect   `json:"rect"`
	Text string `json:"text"`
}

// AnnotationRecord is a raw page annotation as reported by the document
// source. Every field is optional: absent string fields are empty and an
// absent stroke color is a nil slice. Only Contents gates whether the
// annotation produces an output row.
type AnnotationRecord struct {
	Contents string    `json:"contents"`
	Title    string    `json:"title"`
	ModDate  string    `json:"mod_date"`
	Stroke   []float64 `json:"stroke"` // 0..1 channel values: 1 = grayscale, 3 = RGB
}

// NormalizedAnnotation is a commented annotation with its color classified,
// ready to be stamped with page context.
type NormalizedAnnotation struct {
	Comment   string `json:"comment"`
	Author    string `json:"author"`
	Modified  string `json:"modified"`
	ColorName string `json:"color_name"`
	ColorHex  string `json:"color_hex"`
}

// ExtractedRow is one row of the final comment list. Rows are immutable once
// created and appended in page order, then in native annotation order.
type ExtractedRow struct {
	Page          int    `json:"page"`
	DrawingNumber string `json:"drawing_number"`
	Comment       string `json:"comment"`
	Author        string `json:"author"`
	Modified      string `json:"modified"`
	ColorName     string `json:"color_name"`
	ColorHex      string `json:"color_hex"`
}

// PDFExtractCommentsRequest represents a request to extract review comments
// from a PDF file.
type PDFExtractCommentsRequest struct {
	Path string `json:"path"`
}

// PDFExtractCommentsResult represents the result of a comment extraction
// operation. An empty Rows slice means the document carries no commented
// annotations; it is not an error.
type PDFExtractCommentsResult struct {
	Path       string         `json:"path"`
	Pages      int            `json:"pages"`
	Rows       []ExtractedRow `json:"rows"`
	TotalCount int            `json:"total_count"`
}

// Document is the page-level view of a PDF file required by the extraction
// service. Page numbers are 1-based. Implementations live in the document
// subpackage; tests substitute fakes.
type Document interface {
	// PageCount returns the number of pages in the document.
	PageCount() int

	// PageSize returns the width and height of a page in points.
	PageSize(pageNum int) (width, height float64, err error)

	// TextBlocks returns the text blocks of a page that intersect the clip
	// rectangle, with top-left-origin coordinates.
	TextBlocks(pageNum int, clip Rect) ([]TextBlock, error)

	// Annotations returns the page's annotation records in native order.
	Annotations(pageNum int) ([]AnnotationRecord, error)

	// Close releases the underlying file handles.
	Close() error
}
