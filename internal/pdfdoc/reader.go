// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfdoc

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disableConfigDir sync.Once

// Reader opens PDFs from disk. The text layer is read with ledongthuc/pdf;
// when preflight is enabled the file is first validated by pdfcpu so broken
// files fail with a clear reason instead of a parser panic.
type Reader struct {
	preflight bool
}

// NewReader creates a Reader. With preflight set, every file is checked by
// pdfcpu in relaxed validation mode before it is parsed.
func NewReader(preflight bool) *Reader {
	if preflight {
		// pdfcpu would otherwise create a config directory under $HOME.
		disableConfigDir.Do(api.DisableConfigDir)
	}
	return &Reader{preflight: preflight}
}

// Open parses the PDF at path. All failures wrap ErrUnreadable.
func (r *Reader) Open(path string) (doc *Document, err error) {
	name := filepath.Base(path)

	if r.preflight {
		if _, err := PageCount(path); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrUnreadable, name, err)
		}
	}

	// ledongthuc/pdf panics on some malformed content streams.
	defer func() {
		if p := recover(); p != nil {
			doc = nil
			err = fmt.Errorf("%w: %s: parser panic: %v", ErrUnreadable, name, p)
		}
	}()

	f, pr, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnreadable, name, err)
	}
	defer f.Close()

	numPages := pr.NumPage()
	doc = &Document{
		Name:  name,
		Pages: make([]Page, 0, numPages),
	}
	for i := 1; i <= numPages; i++ {
		p := pr.Page(i)
		if p.V.IsNull() {
			doc.Pages = append(doc.Pages, Page{Number: i})
			continue
		}
		doc.Pages = append(doc.Pages, buildPage(i, p.Content().Text))
	}
	return doc, nil
}

// PageCount validates the PDF at path with pdfcpu and returns its page count.
func PageCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	n, err := api.PageCount(f, conf)
	if err != nil {
		return 0, fmt.Errorf("validating PDF: %w", err)
	}
	return n, nil
}
