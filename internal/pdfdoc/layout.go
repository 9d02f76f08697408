// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfdoc

import (
	"math"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// rowToleranceFactor is the share of the font size a glyph's baseline may
	// drift and still belong to the current line (covers super/subscripts).
	rowToleranceFactor = 0.4
	// wordGapFactor is the share of the font size a horizontal gap must
	// exceed before a space is inserted between glyphs.
	wordGapFactor = 0.25
	// blockGapFactor is the multiple of the previous line's font size a
	// baseline drop must exceed to start a new block.
	blockGapFactor = 1.5
)

// lineBuilder accumulates glyphs sharing a baseline.
type lineBuilder struct {
	y     float64
	size  float64 // largest font size seen on the line
	end   float64 // x coordinate where the last glyph ended
	spans []Span
}

func (lb *lineBuilder) add(t pdf.Text) {
	if n := len(lb.spans); n > 0 {
		last := &lb.spans[n-1]
		if t.X-lb.end > wordGapFactor*t.FontSize &&
			!strings.HasSuffix(last.Text, " ") && !strings.HasPrefix(t.S, " ") {
			last.Text += " "
		}
		if last.Font == t.Font && sameSize(last.Size, t.FontSize) {
			last.Text += t.S
			lb.advance(t)
			return
		}
	}
	lb.spans = append(lb.spans, Span{Text: t.S, Font: t.Font, Size: t.FontSize})
	lb.advance(t)
}

func (lb *lineBuilder) advance(t pdf.Text) {
	lb.end = t.X + t.W
	if t.FontSize > lb.size {
		lb.size = t.FontSize
	}
}

// buildPage groups the glyph runs of one page, in content-stream order, into
// lines, spans, and blocks, and renders the page's plain text.
func buildPage(number int, texts []pdf.Text) Page {
	page := Page{Number: number}

	var (
		block Block
		cur   *lineBuilder
	)
	flushLine := func() {
		if cur != nil && len(cur.spans) > 0 {
			block.Lines = append(block.Lines, Line{Spans: cur.spans})
		}
	}
	flushBlock := func() {
		if len(block.Lines) > 0 {
			page.Blocks = append(page.Blocks, block)
		}
		block = Block{}
	}

	for _, t := range texts {
		if t.S == "" {
			continue
		}
		if cur != nil && sameRow(cur, t) {
			cur.add(t)
			continue
		}
		prev := cur
		flushLine()
		if prev != nil && startsBlock(prev, t) {
			flushBlock()
		}
		cur = &lineBuilder{y: t.Y}
		cur.add(t)
	}
	flushLine()
	flushBlock()

	page.Text = renderText(page.Blocks)
	return page
}

func sameRow(lb *lineBuilder, t pdf.Text) bool {
	tol := rowToleranceFactor * math.Max(lb.size, t.FontSize)
	if tol < 1 {
		tol = 1
	}
	return math.Abs(t.Y-lb.y) <= tol
}

// startsBlock reports whether t, which begins a new line after prev, also
// begins a new block: the baseline jumped upward (a new column or region)
// or dropped by more than a paragraph gap.
func startsBlock(prev *lineBuilder, t pdf.Text) bool {
	if t.Y > prev.y {
		return true
	}
	return prev.y-t.Y > blockGapFactor*math.Max(prev.size, 1)
}

func sameSize(a, b float64) bool {
	return math.Round(a*10) == math.Round(b*10)
}

func renderText(blocks []Block) string {
	var b strings.Builder
	for i, blk := range blocks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		for j, ln := range blk.Lines {
			if j > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(strings.TrimRight(ln.Text(), " "))
		}
	}
	return b.String()
}
