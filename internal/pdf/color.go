package pdf

import (
	"fmt"
	"strings"
)

// ColorNotSpecified is the placeholder for annotations without a stroke
// color. It is distinguishable from any real hex code.
const ColorNotSpecified = "(not specified)"

// Categorical color labels for the output rows.
const (
	ColorNameRed   = "Red"
	ColorNameBlue  = "Blue"
	ColorNameBlack = "Black"
	ColorNameOther = "Other"
)

// ColorHex converts a stroke-color channel tuple with 0..1 values into a
// lower-case #rrggbb code. A single channel is treated as grayscale and
// replicated across all three output channels. A nil or empty tuple yields
// ColorNotSpecified. Any other channel count renders the raw values so that
// data-shape anomalies stay visible in the output instead of being dropped.
func ColorHex(channels []float64) string {
	if len(channels) == 0 {
		return ColorNotSpecified
	}

	bytes := make([]int, len(channels))
	for i, c := range channels {
		v := int(c * 255)
		if v < 0 {
			v = 0
		} else if v > 255 {
			v = 255
		}
		bytes[i] = v
	}

	switch len(bytes) {
	case 3:
		return fmt.Sprintf("#%02x%02x%02x", bytes[0], bytes[1], bytes[2])
	case 1:
		return fmt.Sprintf("#%02x%02x%02x", bytes[0], bytes[0], bytes[0])
	default:
		return fmt.Sprintf("%v", channels)
	}
}

// ColorName classifies a hex code into one of the fixed categorical labels.
// The match is exact and case-insensitive; everything else, including the
// not-specified placeholder, is Other.
func ColorName(hex string) string {
	switch strings.ToUpper(hex) {
	case "#FF0000":
		return ColorNameRed
	case "#0000FF":
		return ColorNameBlue
	case "#000000":
		return ColorNameBlack
	default:
		return ColorNameOther
	}
}
