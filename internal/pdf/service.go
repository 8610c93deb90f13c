package pdf

import (
	"fmt"
)

// OpenDocumentFunc opens a Document for the given path. The production
// implementation lives in the document subpackage.
type OpenDocumentFunc func(path string) (Document, error)

// ProgressFunc is invoked after each processed page with the 1-based page
// number and the total page count.
type ProgressFunc func(page, total int)

// Service drives per-page drawing-number selection and annotation
// normalization across a whole document. Pages carry no cross-page state, so
// processing is strictly sequential and each page's work is a pure function
// of that page's data.
type Service struct {
	validator *Validator
	openDoc   OpenDocumentFunc
	progress  ProgressFunc
}

// NewService creates a new extraction service
func NewService(maxFileSize int64, openDoc OpenDocumentFunc) *Service {
	return &Service{
		validator: NewValidator(maxFileSize),
		openDoc:   openDoc,
	}
}

// SetProgress registers an optional per-page progress callback.
func (s *Service) SetProgress(fn ProgressFunc) {
	s.progress = fn
}

// ExtractComments extracts one row per commented annotation across the
// document. Each row is stamped with its page's 1-based number and that
// page's inferred drawing number; rows accumulate in page order, then in the
// page's native annotation order. A document without commented annotations
// yields an empty result, not an error.
func (s *Service) ExtractComments(req PDFExtractCommentsRequest) (*PDFExtractCommentsResult, error) {
	if err := s.validator.ValidateFile(req.Path); err != nil {
		return nil, err
	}

	doc, err := s.openDoc(req.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	result := &PDFExtractCommentsResult{
		Path:  req.Path,
		Pages: doc.PageCount(),
		Rows:  []ExtractedRow{},
	}

	for pageNum := 1; pageNum <= result.Pages; pageNum++ {
		rows, err := s.extractPage(doc, pageNum)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", pageNum, err)
		}
		result.Rows = append(result.Rows, rows...)

		if s.progress != nil {
			s.progress(pageNum, result.Pages)
		}
	}

	result.TotalCount = len(result.Rows)
	return result, nil
}

// extractPage runs the two per-page components: drawing-number selection over
// the bottom-right quadrant, then annotation normalization.
func (s *Service) extractPage(doc Document, pageNum int) ([]ExtractedRow, error) {
	width, height, err := doc.PageSize(pageNum)
	if err != nil {
		return nil, fmt.Errorf("failed to read page size: %w", err)
	}

	blocks, err := doc.TextBlocks(pageNum, SearchRegion(width, height))
	if err != nil {
		return nil, fmt.Errorf("failed to extract text blocks: %w", err)
	}

	drawingNo, err := SelectDrawingNumber(blocks, width, height)
	if err != nil {
		return nil, err
	}

	annots, err := doc.Annotations(pageNum)
	if err != nil {
		return nil, fmt.Errorf("failed to read annotations: %w", err)
	}

	var rows []ExtractedRow
	for _, n := range NormalizeAnnotations(annots) {
		rows = append(rows, ExtractedRow{
			Page:          pageNum,
			DrawingNumber: drawingNo,
			Comment:       n.Comment,
			Author:        n.Author,
			Modified:      n.Modified,
			ColorName:     n.ColorName,
			ColorHex:      n.ColorHex,
		})
	}

	return rows, nil
}
