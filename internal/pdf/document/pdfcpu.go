package document

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/daisukehino1979/pdf-theck-gijyututeiansho-app/internal/pdf"
)

// Page-tree recursion limit; malformed files can contain cycles.
const maxPageTreeDepth = 50

// Annotation subtypes that never carry review comments. Links and widgets
// are navigation and form machinery; popups mirror the contents of their
// parent markup annotation and would duplicate rows.
var skippedSubtypes = map[string]bool{
	"Link":   true,
	"Widget": true,
	"Popup":  true,
}

// Annotations returns the page's annotation records in the order of its
// Annots array. Missing optional entries yield zero values, never errors;
// individual annotations that fail to dereference are skipped.
func (d *Document) Annotations(pageNum int) ([]pdf.AnnotationRecord, error) {
	if err := d.checkPageNum(pageNum); err != nil {
		return nil, err
	}
	if pageNum > len(d.pageDicts) {
		// Page tree walk found fewer pages than the reader; treat the page
		// as unannotated rather than failing the whole document.
		return nil, nil
	}

	pageDict := d.pageDicts[pageNum-1]
	annotsObj, found := pageDict.Find("Annots")
	if !found {
		return nil, nil
	}

	annotsArray, err := d.ctx.DereferenceArray(annotsObj)
	if err != nil {
		return nil, fmt.Errorf("failed to dereference Annots array: %w", err)
	}

	var records []pdf.AnnotationRecord
	for _, annotObj := range annotsArray {
		annotDict, err := d.ctx.DereferenceDict(annotObj)
		if err != nil || annotDict == nil {
			continue
		}

		if subObj, found := annotDict.Find("Subtype"); found {
			if name, err := d.ctx.DereferenceName(subObj, model.V10, nil); err == nil && skippedSubtypes[string(name)] {
				continue
			}
		}

		records = append(records, d.annotationRecord(annotDict))
	}

	return records, nil
}

// annotationRecord reads the optional entries of one annotation dictionary.
func (d *Document) annotationRecord(annotDict types.Dict) pdf.AnnotationRecord {
	rec := pdf.AnnotationRecord{}

	if obj, found := annotDict.Find("Contents"); found {
		if s, err := d.ctx.DereferenceStringOrHexLiteral(obj, model.V10, nil); err == nil {
			rec.Contents = s
		}
	}

	// T holds the annotation's author label.
	if obj, found := annotDict.Find("T"); found {
		if s, err := d.ctx.DereferenceStringOrHexLiteral(obj, model.V10, nil); err == nil {
			rec.Title = s
		}
	}

	// M is the modification date string, passed through verbatim.
	if obj, found := annotDict.Find("M"); found {
		if s, err := d.ctx.DereferenceStringOrHexLiteral(obj, model.V10, nil); err == nil {
			rec.ModDate = s
		}
	}

	// C is the stroke color: 1 channel for grayscale, 3 for RGB.
	if obj, found := annotDict.Find("C"); found {
		if arr, err := d.ctx.DereferenceArray(obj); err == nil {
			channels := make([]float64, 0, len(arr))
			for _, ch := range arr {
				if f, err := d.ctx.DereferenceNumber(ch); err == nil {
					channels = append(channels, f)
				}
			}
			if len(channels) > 0 {
				rec.Stroke = channels
			}
		}
	}

	return rec
}

// collectPageDicts walks the page tree and returns the page dictionaries in
// document order. Nodes that fail to dereference are skipped.
func collectPageDicts(ctx *model.Context) []types.Dict {
	rootDict, err := ctx.Catalog()
	if err != nil {
		return nil
	}

	pagesObj, found := rootDict.Find("Pages")
	if !found {
		return nil
	}

	pagesDict, err := ctx.DereferenceDict(pagesObj)
	if err != nil || pagesDict == nil {
		return nil
	}

	var pages []types.Dict
	appendPageDicts(ctx, pagesDict, &pages, 0)
	return pages
}

func appendPageDicts(ctx *model.Context, dict types.Dict, pages *[]types.Dict, depth int) {
	if dict == nil || depth > maxPageTreeDepth {
		return
	}

	nodeType := ""
	if typeObj, found := dict.Find("Type"); found {
		if name, err := ctx.DereferenceName(typeObj, model.V10, nil); err == nil {
			nodeType = string(name)
		}
	}

	if nodeType == "Page" {
		*pages = append(*pages, dict)
		return
	}

	// Intermediate node: recurse into Kids. Nodes without a Type entry are
	// treated as tree nodes when they carry a Kids array.
	kidsObj, found := dict.Find("Kids")
	if !found {
		return
	}

	kidsArray, err := ctx.DereferenceArray(kidsObj)
	if err != nil {
		return
	}

	for _, kidObj := range kidsArray {
		kidDict, err := ctx.DereferenceDict(kidObj)
		if err != nil || kidDict == nil {
			continue
		}
		appendPageDicts(ctx, kidDict, pages, depth+1)
	}
}
