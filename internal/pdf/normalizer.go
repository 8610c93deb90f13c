package pdf

import "strings"

// NormalizeAnnotations filters a page's raw annotations down to the commented
// ones and classifies each stroke color. Annotations whose content is absent
// or whitespace-only are skipped; the relative order of the rest is
// preserved. Missing optional fields normalize to empty strings or the
// not-specified color placeholder, never to an error.
func NormalizeAnnotations(annots []AnnotationRecord) []NormalizedAnnotation {
	normalized := make([]NormalizedAnnotation, 0, len(annots))

	for _, a := range annots {
		if strings.TrimSpace(a.Contents) == "" {
			continue
		}

		hex := ColorHex(a.Stroke)
		normalized = append(normalized, NormalizedAnnotation{
			Comment:   a.Contents,
			Author:    a.Title,
			Modified:  a.ModDate,
			ColorName: ColorName(hex),
			ColorHex:  hex,
		})
	}

	return normalized
}
