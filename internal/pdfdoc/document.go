// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfdoc turns PDF files into a page → block → line → span tree with
// per-span font sizes and a flattened plain-text view of each page.
package pdfdoc

import "errors"

// ErrUnreadable is wrapped by every error returned when a PDF cannot be
// opened, validated, or parsed.
var ErrUnreadable = errors.New("unreadable PDF")

// Document is a parsed PDF.
type Document struct {
	// Name is the base name of the source file.
	Name  string
	Pages []Page
}

// Page is one page of a Document.
type Page struct {
	// Number is 1-based.
	Number int
	Blocks []Block

	// Text is the page flattened to plain text: lines separated by "\n",
	// blocks separated by "\n\n".
	Text string
}

// Block is a group of vertically adjacent lines.
type Block struct {
	Lines []Line
}

// Line is a run of spans sharing a baseline.
type Line struct {
	Spans []Span
}

// Span is a contiguous piece of text with uniform font attributes.
type Span struct {
	Text string
	Font string
	Size float64
}

// Text returns the concatenated text of the line's spans.
func (l Line) Text() string {
	n := 0
	for _, s := range l.Spans {
		n += len(s.Text)
	}
	b := make([]byte, 0, n)
	for _, s := range l.Spans {
		b = append(b, s.Text...)
	}
	return string(b)
}

// Opener parses the PDF at path.
type Opener interface {
	Open(path string) (*Document, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(path string) (*Document, error)

// Open calls f(path).
func (f OpenerFunc) Open(path string) (*Document, error) {
	return f(path)
}
