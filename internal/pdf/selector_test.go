package pdf

import (
	"strings"
	"testing"
)

func block(text string, x0, y0, x1, y1 float64) TextBlock {
	return TextBlock{Rect: Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}, Text: text}
}

func TestSelectDrawingNumber(t *testing.T) {
	tests := []struct {
		name     string
		blocks   []TextBlock
		expected string
	}{
		{
			name:     "no blocks",
			blocks:   nil,
			expected: UnreadableDrawingNumber,
		},
		{
			name: "only whitespace blocks",
			blocks: []TextBlock{
				block("   ", 500, 700, 560, 712),
				block("\n\t", 520, 750, 580, 762),
			},
			expected: UnreadableDrawingNumber,
		},
		{
			name: "lowest block wins regardless of right edge",
			blocks: []TextBlock{
				block("Scale 1:100", 300, 700, 595, 712),
				block("A-101", 500, 780, 560, 792),
			},
			expected: "A-101",
		},
		{
			name: "equal bottom prefers rightmost",
			blocks: []TextBlock{
				block("S-201", 400, 780, 460, 792),
				block("A-101", 500, 780, 560, 792),
			},
			expected: "A-101",
		},
		{
			name: "single block",
			blocks: []TextBlock{
				block("  A-102  ", 500, 780, 560, 792),
			},
			expected: "A-102",
		},
		{
			name: "newlines removed from winner",
			blocks: []TextBlock{
				block("A-\n103\n", 500, 770, 560, 792),
			},
			expected: "A-103",
		},
		{
			name: "fully equal keys keep first block",
			blocks: []TextBlock{
				block("first", 500, 780, 560, 792),
				block("second", 500, 780, 560, 792),
			},
			expected: "first",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectDrawingNumber(tt.blocks, 842, 595)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %q but got %q", tt.expected, got)
			}
		})
	}
}

func TestSelectDrawingNumber_InvalidDimensions(t *testing.T) {
	tests := []struct {
		name   string
		width  float64
		height float64
	}{
		{name: "zero width", width: 0, height: 595},
		{name: "zero height", width: 842, height: 0},
		{name: "negative width", width: -842, height: 595},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SelectDrawingNumber(nil, tt.width, tt.height)
			if err == nil {
				t.Errorf("expected error for dimensions %.0fx%.0f", tt.width, tt.height)
			}
		})
	}
}

func TestSelectDrawingNumber_BottomAlwaysBeatsRight(t *testing.T) {
	// A block lower on the page must win even when another block extends
	// much farther right.
	blocks := []TextBlock{
		block("far right but higher", 500, 700, 842, 712),
		block("lower", 430, 780, 470, 792),
	}

	got, err := SelectDrawingNumber(blocks, 842, 595)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "lower" {
		t.Errorf("expected lower block to win, got %q", got)
	}
}

func TestSearchRegion(t *testing.T) {
	region := SearchRegion(842, 595)

	if region.X0 != 421 || region.Y0 != 297.5 {
		t.Errorf("unexpected region origin: (%.1f, %.1f)", region.X0, region.Y0)
	}
	if region.X1 != 842 || region.Y1 != 595 {
		t.Errorf("unexpected region extent: (%.1f, %.1f)", region.X1, region.Y1)
	}
}

func TestSelectDrawingNumber_TrimsSurroundingWhitespaceOnly(t *testing.T) {
	// Interior whitespace survives; only surrounding whitespace is trimmed
	// and newlines are removed.
	blocks := []TextBlock{
		block("\t A-104 Rev.2 \n", 500, 780, 560, 792),
	}

	got, err := SelectDrawingNumber(blocks, 842, 595)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "A-104 Rev.2" {
		t.Errorf("expected %q but got %q", "A-104 Rev.2", got)
	}
	if strings.Contains(got, "\n") {
		t.Errorf("newline leaked into result: %q", got)
	}
}
