// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/docoutline/internal/pdfdoc"
	"github.com/pdiddy/docoutline/pkg/types"
)

// MaxHeadingLen is the longest trimmed run, in characters, still considered
// a heading candidate. Longer runs are body text regardless of font size.
const MaxHeadingLen = 150

// Extractor turns PDF files into ordered Section records.
type Extractor struct {
	opener pdfdoc.Opener
}

// NewExtractor creates an Extractor that parses documents with opener.
func NewExtractor(opener pdfdoc.Opener) *Extractor {
	return &Extractor{opener: opener}
}

// ExtractFile opens the PDF at path and returns its sections in traversal
// order. Open and parse failures are returned unchanged apart from wrapping.
func (e *Extractor) ExtractFile(path string) ([]types.Section, error) {
	doc, err := e.opener.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	if doc.Name == "" {
		doc.Name = filepath.Base(path)
	}
	return ExtractDocument(doc), nil
}

// ExtractDocument computes thresholds for doc once and returns one Section
// per heading-sized run, walking pages, blocks, lines, and spans in order.
// Sections are neither sorted nor deduplicated.
func ExtractDocument(doc *pdfdoc.Document) []types.Section {
	thresholds := CollectThresholds(doc)

	var sections []types.Section
	for i, page := range doc.Pages {
		pageNum := page.Number
		if pageNum == 0 {
			pageNum = i + 1
		}
		for _, block := range page.Blocks {
			for _, line := range block.Lines {
				for _, span := range line.Spans {
					text := strings.TrimSpace(span.Text)
					if text == "" || utf8.RuneCountInString(text) > MaxHeadingLen {
						continue
					}
					level := Classify(span.Size, thresholds)
					if level == types.LevelNone {
						continue
					}
					sections = append(sections, types.Section{
						Document: doc.Name,
						Page:     pageNum,
						Title:    text,
						Level:    level,
						Excerpt:  SnippetAfter(page.Text, text),
					})
				}
			}
		}
	}
	return sections
}
