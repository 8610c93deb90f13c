package document

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	lpdf "github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daisukehino1979/pdf-theck-gijyututeiansho-app/internal/pdf"
)

func frag(s string, x, y, w, size float64) lpdf.Text {
	return lpdf.Text{S: s, X: x, Y: y, W: w, FontSize: size}
}

// a4Landscape is a zero-origin A4 landscape MediaBox.
var a4Landscape = pdf.Rect{X0: 0, Y0: 0, X1: 842, Y1: 595}

func TestFragmentRect(t *testing.T) {
	// A fragment with its baseline 100pt above the page bottom on a 595pt
	// page ends up 495pt from the top.
	r := fragmentRect(frag("A-101", 700, 100, 50, 12), a4Landscape)

	if r.X0 != 700 || r.X1 != 750 {
		t.Errorf("unexpected horizontal extent: %.1f..%.1f", r.X0, r.X1)
	}
	if r.Y1 != 495 {
		t.Errorf("expected bottom edge 495 but got %.1f", r.Y1)
	}
	if r.Y0 != 483 {
		t.Errorf("expected top edge 483 but got %.1f", r.Y0)
	}
}

func TestFragmentRect_NonZeroOrigin(t *testing.T) {
	// With a shifted MediaBox the fragment position is relative to the box
	// origin, not raw user space.
	box := pdf.Rect{X0: 100, Y0: 100, X1: 942, Y1: 695}
	r := fragmentRect(frag("A-101", 800, 200, 50, 12), box)

	if r.X0 != 700 || r.X1 != 750 {
		t.Errorf("unexpected horizontal extent: %.1f..%.1f", r.X0, r.X1)
	}
	if r.Y1 != 495 {
		t.Errorf("expected bottom edge 495 but got %.1f", r.Y1)
	}
	if r.Y0 != 483 {
		t.Errorf("expected top edge 483 but got %.1f", r.Y0)
	}
}

func TestBuildBlocks(t *testing.T) {
	tests := []struct {
		name     string
		frags    []lpdf.Text
		expected []string
	}{
		{
			name:     "no fragments",
			frags:    nil,
			expected: nil,
		},
		{
			name: "same baseline merges left to right",
			frags: []lpdf.Text{
				frag("101", 730, 100, 30, 12),
				frag("A-", 700, 100, 30, 12),
			},
			expected: []string{"A-101"},
		},
		{
			name: "baseline within tolerance merges",
			frags: []lpdf.Text{
				frag("A-", 700, 101, 30, 12),
				frag("101", 730, 100, 30, 12),
			},
			expected: []string{"A-101"},
		},
		{
			name: "separate baselines stay separate, top of page first",
			frags: []lpdf.Text{
				frag("Scale 1:100", 700, 80, 80, 10),
				frag("A-101", 700, 200, 50, 12),
			},
			expected: []string{"A-101", "Scale 1:100"},
		},
		{
			name: "empty fragments dropped",
			frags: []lpdf.Text{
				frag("", 700, 100, 0, 12),
				frag("A-101", 700, 100, 50, 12),
			},
			expected: []string{"A-101"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := buildBlocks(tt.frags, a4Landscape)

			if len(blocks) != len(tt.expected) {
				t.Fatalf("expected %d blocks but got %d", len(tt.expected), len(blocks))
			}
			for i, want := range tt.expected {
				if blocks[i].Text != want {
					t.Errorf("block %d: expected %q but got %q", i, want, blocks[i].Text)
				}
			}
		})
	}
}

func TestBuildBlocks_MergedRectCoversFragments(t *testing.T) {
	blocks := buildBlocks([]lpdf.Text{
		frag("A-", 700, 100, 30, 12),
		frag("101", 730, 100, 30, 12),
	}, a4Landscape)

	if len(blocks) != 1 {
		t.Fatalf("expected one block but got %d", len(blocks))
	}

	r := blocks[0].Rect
	if r.X0 != 700 || r.X1 != 760 {
		t.Errorf("merged rect does not span fragments: %.1f..%.1f", r.X0, r.X1)
	}
}

func TestBuildBlocks_BlockInQuadrantClip(t *testing.T) {
	// A block near the bottom-right corner of an A4 landscape page must
	// intersect the search region computed for that page.
	blocks := buildBlocks([]lpdf.Text{
		frag("A-101", 760, 30, 50, 12),
	}, a4Landscape)

	if len(blocks) != 1 {
		t.Fatalf("expected one block but got %d", len(blocks))
	}

	clip := pdf.SearchRegion(a4Landscape.X1, a4Landscape.Y1)
	if !blocks[0].Rect.Intersects(clip) {
		t.Errorf("block %+v should intersect clip %+v", blocks[0].Rect, clip)
	}
}

func TestBuildBlocks_NonZeroOriginStaysInQuadrantClip(t *testing.T) {
	// Bottom-right text on a page whose MediaBox does not start at (0,0)
	// must still land inside the search region for the page's dimensions.
	box := pdf.Rect{X0: 100, Y0: 100, X1: 942, Y1: 695}
	blocks := buildBlocks([]lpdf.Text{
		frag("A-101", 860, 130, 50, 12),
	}, box)

	if len(blocks) != 1 {
		t.Fatalf("expected one block but got %d", len(blocks))
	}

	clip := pdf.SearchRegion(box.X1-box.X0, box.Y1-box.Y0)
	if !blocks[0].Rect.Intersects(clip) {
		t.Errorf("block %+v should intersect clip %+v", blocks[0].Rect, clip)
	}
}

func TestRectIntersects(t *testing.T) {
	clip := pdf.Rect{X0: 421, Y0: 297.5, X1: 842, Y1: 595}

	tests := []struct {
		name     string
		rect     pdf.Rect
		expected bool
	}{
		{name: "inside", rect: pdf.Rect{X0: 500, Y0: 400, X1: 600, Y1: 420}, expected: true},
		{name: "outside top-left", rect: pdf.Rect{X0: 10, Y0: 10, X1: 100, Y1: 50}, expected: false},
		{name: "touching edge counts", rect: pdf.Rect{X0: 400, Y0: 280, X1: 421, Y1: 297.5}, expected: true},
		{name: "straddling boundary", rect: pdf.Rect{X0: 400, Y0: 290, X1: 500, Y1: 310}, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rect.Intersects(clip); got != tt.expected {
				t.Errorf("expected %v but got %v", tt.expected, got)
			}
		})
	}
}

// writeAnnotatedPDF generates a minimal single-page PDF fixture with three
// annotations: a fully populated text note, a link, and a highlight without
// optional fields. Object offsets and the xref table are computed while
// writing so the file is well formed for both backing parsers.
func writeAnnotatedPDF(t *testing.T) string {
	t.Helper()

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 /MediaBox [0 0 842 595] >>",
		"<< /Type /Page /Parent 2 0 R /Annots [4 0 R 5 0 R 6 0 R] >>",
		"<< /Type /Annot /Subtype /Text /Rect [700 20 760 40] /Contents (Fix wall) /T (tanaka) /M (D:20240501120000) /C [1 0 0] >>",
		"<< /Type /Annot /Subtype /Link /Rect [0 0 10 10] /Contents (navigation) >>",
		"<< /Type /Annot /Subtype /Highlight /Rect [20 20 40 40] /Contents (Check door) >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects)+1)
	for i, obj := range objects {
		offsets[i+1] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(objects); i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, xrefOffset)

	path := filepath.Join(t.TempDir(), "annotated.pdf")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestDocument_Annotations(t *testing.T) {
	doc, err := Open(writeAnnotatedPDF(t))
	require.NoError(t, err)
	defer doc.Close()

	require.Equal(t, 1, doc.PageCount())

	annots, err := doc.Annotations(1)
	require.NoError(t, err)
	require.Len(t, annots, 2, "link annotations carry no review comments and must be skipped")

	full := annots[0]
	assert.Equal(t, "Fix wall", full.Contents)
	assert.Equal(t, "tanaka", full.Title)
	assert.Equal(t, "D:20240501120000", full.ModDate)
	assert.Equal(t, []float64{1, 0, 0}, full.Stroke)

	minimal := annots[1]
	assert.Equal(t, "Check door", minimal.Contents)
	assert.Equal(t, "", minimal.Title)
	assert.Equal(t, "", minimal.ModDate)
	assert.Nil(t, minimal.Stroke)
}

func TestDocument_Annotations_OutOfRange(t *testing.T) {
	doc, err := Open(writeAnnotatedPDF(t))
	require.NoError(t, err)
	defer doc.Close()

	_, err = doc.Annotations(2)
	require.Error(t, err)

	_, err = doc.Annotations(0)
	require.Error(t, err)
}

func TestDocument_PageSize_InheritedMediaBox(t *testing.T) {
	// The fixture's MediaBox lives on the Pages node, so the page inherits it.
	doc, err := Open(writeAnnotatedPDF(t))
	require.NoError(t, err)
	defer doc.Close()

	width, height, err := doc.PageSize(1)
	require.NoError(t, err)
	assert.Equal(t, 842.0, width)
	assert.Equal(t, 595.0, height)
}
