// Package document implements the pdf.Document interface on top of two
// parsing libraries: ledongthuc/pdf supplies positioned text content and page
// geometry, pdfcpu supplies the annotation dictionaries that ledongthuc does
// not expose.
package document

import (
	"fmt"
	"os"

	lpdf "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/daisukehino1979/pdf-theck-gijyututeiansho-app/internal/pdf"
)

// Document is a PDF file opened for comment extraction. It holds a
// ledongthuc reader for text and geometry and a pdfcpu context for
// annotation access. Not safe for concurrent use.
type Document struct {
	file      *os.File
	reader    *lpdf.Reader
	ctx       *model.Context
	pageDicts []types.Dict
}

// Open opens the PDF at path with both backing libraries. The returned
// Document must be closed by the caller.
func Open(path string) (pdf.Document, error) {
	file, reader, err := lpdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	ctx, err := readContext(path)
	if err != nil {
		file.Close()
		return nil, err
	}

	doc := &Document{
		file:   file,
		reader: reader,
		ctx:    ctx,
	}
	doc.pageDicts = collectPageDicts(ctx)

	return doc, nil
}

// readContext loads a pdfcpu context for annotation access. The file handle
// is only needed while reading; pdfcpu keeps the parsed objects in memory.
func readContext(path string) (*model.Context, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(file, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}

	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("failed to ensure page count: %w", err)
	}

	return ctx, nil
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return d.reader.NumPage()
}

// Close releases the underlying file handle.
func (d *Document) Close() error {
	return d.file.Close()
}

func (d *Document) checkPageNum(pageNum int) error {
	if pageNum < 1 || pageNum > d.PageCount() {
		return fmt.Errorf("page %d out of range (1..%d)", pageNum, d.PageCount())
	}
	return nil
}
