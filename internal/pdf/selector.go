package pdf

import (
	"fmt"
	"sort"
	"strings"
)

// UnreadableDrawingNumber is returned when the search region contains no
// usable text.
const UnreadableDrawingNumber = "(unreadable)"

// SearchRegion returns the clip rectangle used for drawing-number lookup: the
// bottom-right quadrant of the page, inclusive of its edges. Architectural
// sheets conventionally carry the drawing number in the bottom-right title
// block, so text extraction is restricted to that quadrant.
func SearchRegion(pageWidth, pageHeight float64) Rect {
	return Rect{
		X0: pageWidth * 0.5,
		Y0: pageHeight * 0.5,
		X1: pageWidth,
		Y1: pageHeight,
	}
}

type candidate struct {
	text   string
	bottom float64
	right  float64
}

// SelectDrawingNumber picks the block that most likely holds the drawing
// number from a set of text blocks already clipped to the search region:
// the lowest block on the page wins, and among equally low blocks the
// rightmost wins. No content-based filtering is applied; unrelated
// bottom-right text such as a scale note can be misselected. That is a
// documented precision/simplicity trade-off of the positional heuristic.
//
// Returns UnreadableDrawingNumber when no block survives whitespace trimming.
// Page dimensions must be positive.
func SelectDrawingNumber(blocks []TextBlock, pageWidth, pageHeight float64) (string, error) {
	if pageWidth <= 0 || pageHeight <= 0 {
		return "", fmt.Errorf("invalid page dimensions: %.2f x %.2f", pageWidth, pageHeight)
	}

	candidates := make([]candidate, 0, len(blocks))
	for _, b := range blocks {
		text := strings.TrimSpace(b.Text)
		if text == "" {
			continue
		}
		candidates = append(candidates, candidate{
			text:   text,
			bottom: b.Rect.Y1,
			right:  b.Rect.X1,
		})
	}

	if len(candidates) == 0 {
		return UnreadableDrawingNumber, nil
	}

	// Greater bottom edge first, then greater right edge. Fully equal keys
	// keep their original block order so output is reproducible.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].bottom != candidates[j].bottom {
			return candidates[i].bottom > candidates[j].bottom
		}
		return candidates[i].right > candidates[j].right
	})

	return strings.ReplaceAll(candidates[0].text, "\n", ""), nil
}
