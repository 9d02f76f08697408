// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package outline detects headings in parsed PDFs by font size and
// extracts the paragraph that follows each one.
package outline

import (
	"math"
	"sort"
	"strconv"

	"github.com/pdiddy/docoutline/internal/pdfdoc"
)

// Fallback thresholds used when a document has fewer than three distinct
// font sizes.
const (
	FallbackH1 = 20.0
	FallbackH2 = 16.0
	FallbackH3 = 13.0
)

// Thresholds holds the minimum font size for each heading level of one
// document. H1 >= H2 >= H3 always holds for values returned by
// CollectThresholds.
type Thresholds struct {
	H1 float64
	H2 float64
	H3 float64
}

// DefaultThresholds returns the fallback thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{H1: FallbackH1, H2: FallbackH2, H3: FallbackH3}
}

// CollectThresholds assigns the three largest distinct font sizes in doc,
// rounded to one decimal, to H1, H2, and H3. Levels the document has no
// size for take their fallback value, capped at the level above so the
// ordering holds. The cap never changes a classification: a size at or
// above an uncapped fallback would already match the level above it.
func CollectThresholds(doc *pdfdoc.Document) Thresholds {
	seen := make(map[float64]bool)
	var sizes []float64
	for _, page := range doc.Pages {
		for _, block := range page.Blocks {
			for _, line := range block.Lines {
				for _, span := range line.Spans {
					s := roundSize(span.Size)
					if !seen[s] {
						seen[s] = true
						sizes = append(sizes, s)
					}
				}
			}
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sizes)))

	t := DefaultThresholds()
	if len(sizes) > 0 {
		t.H1 = sizes[0]
	}
	if len(sizes) > 1 {
		t.H2 = sizes[1]
	}
	if len(sizes) > 2 {
		t.H3 = sizes[2]
	}
	t.H2 = math.Min(t.H2, t.H1)
	t.H3 = math.Min(t.H3, t.H2)
	return t
}

// roundSize rounds a font size to one decimal place. It rounds the exact
// binary value, ties to even, so 12.25 gives 12.2 and 14.45 (stored just
// below 14.45) gives 14.4.
func roundSize(size float64) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(size, 'f', 1, 64), 64)
	if err != nil {
		return size
	}
	return v
}
