// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docoutline/internal/pdfdoc"
	"github.com/pdiddy/docoutline/pkg/types"
)

// span is shorthand for a one-span line.
func span(text string, size float64) pdfdoc.Line {
	return pdfdoc.Line{Spans: []pdfdoc.Span{{Text: text, Size: size}}}
}

// docWith builds a single-block page per entry in pages.
func docWith(name string, pageText []string, pages ...[]pdfdoc.Line) *pdfdoc.Document {
	doc := &pdfdoc.Document{Name: name}
	for i, lines := range pages {
		p := pdfdoc.Page{Number: i + 1, Blocks: []pdfdoc.Block{{Lines: lines}}}
		if i < len(pageText) {
			p.Text = pageText[i]
		}
		doc.Pages = append(doc.Pages, p)
	}
	return doc
}

// --- CollectThresholds ---

func TestCollectThresholds(t *testing.T) {
	tests := []struct {
		name  string
		sizes []float64
		want  Thresholds
	}{
		{
			name:  "four distinct sizes",
			sizes: []float64{12, 24, 10, 18, 12},
			want:  Thresholds{H1: 24, H2: 18, H3: 12},
		},
		{
			name: "no text runs",
			want: Thresholds{H1: 20, H2: 16, H3: 13},
		},
		{
			name:  "rounding merges near-equal sizes",
			sizes: []float64{11.96, 12.04, 9.02},
			want:  Thresholds{H1: 12, H2: 9, H3: 9},
		},
		{
			name:  "two large sizes keep H3 fallback",
			sizes: []float64{30, 22},
			want:  Thresholds{H1: 30, H2: 22, H3: 13},
		},
		{
			name:  "single small size caps fallbacks",
			sizes: []float64{10},
			want:  Thresholds{H1: 10, H2: 10, H3: 10},
		},
		{
			name:  "exact tie rounds to even",
			sizes: []float64{12.25, 9},
			want:  Thresholds{H1: 12.2, H2: 9, H3: 9},
		},
		{
			name:  "binary value below the tie rounds down",
			sizes: []float64{14.45, 12.35, 10},
			want:  Thresholds{H1: 14.4, H2: 12.3, H3: 10},
		},
		{
			name:  "single mid size caps H2 only",
			sizes: []float64{14.44, 14.4},
			want:  Thresholds{H1: 14.4, H2: 14.4, H3: 13},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lines []pdfdoc.Line
			for _, s := range tt.sizes {
				lines = append(lines, span("x", s))
			}
			doc := docWith("a.pdf", nil, lines)

			got := CollectThresholds(doc)

			assert.InDelta(t, tt.want.H1, got.H1, 1e-9, "H1")
			assert.InDelta(t, tt.want.H2, got.H2, 1e-9, "H2")
			assert.InDelta(t, tt.want.H3, got.H3, 1e-9, "H3")
			assert.GreaterOrEqual(t, got.H1, got.H2)
			assert.GreaterOrEqual(t, got.H2, got.H3)
		})
	}
}

func TestExtractDocument_LargestRunStaysH1(t *testing.T) {
	for _, size := range []float64{12.25, 14.45, 12.35, 17.95} {
		doc := docWith("a.pdf", []string{"Big\nbody"},
			[]pdfdoc.Line{span("Big", size), span("body", 9)},
		)
		sections := ExtractDocument(doc)
		require.Len(t, sections, 2, "size %v", size)
		assert.Equal(t, "Big", sections[0].Title)
		assert.Equal(t, types.LevelH1, sections[0].Level, "size %v", size)
	}
}

func TestCollectThresholds_AcrossPages(t *testing.T) {
	doc := docWith("a.pdf", nil,
		[]pdfdoc.Line{span("a", 10)},
		[]pdfdoc.Line{span("b", 24)},
		[]pdfdoc.Line{span("c", 18), span("d", 12)},
	)

	got := CollectThresholds(doc)

	assert.Equal(t, Thresholds{H1: 24, H2: 18, H3: 12}, got)
}

// --- Classify ---

func TestClassify(t *testing.T) {
	scanned := Thresholds{H1: 24, H2: 18, H3: 12}
	tests := []struct {
		name string
		size float64
		th   Thresholds
		want types.HeadingLevel
	}{
		{"fallback H2", 18, DefaultThresholds(), types.LevelH2},
		{"fallback H1 boundary", 20, DefaultThresholds(), types.LevelH1},
		{"fallback H3 boundary", 13, DefaultThresholds(), types.LevelH3},
		{"fallback body", 12.9, DefaultThresholds(), types.LevelNone},
		{"above H1", 40, scanned, types.LevelH1},
		{"exact H2", 18, scanned, types.LevelH2},
		{"exact H3", 12, scanned, types.LevelH3},
		{"below H3", 9, scanned, types.LevelNone},
		{"unrounded just below H1", 23.96, scanned, types.LevelH2},
		{"H1 wins over crossed thresholds", 20, Thresholds{H1: 20, H2: 30, H3: 40}, types.LevelH1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.size, tt.th))
		})
	}
}

func TestClassify_IntroductionRank(t *testing.T) {
	level := Classify(18.0, DefaultThresholds())

	assert.Equal(t, types.LevelH2, level)
	assert.Equal(t, 2, level.Rank())
}

// --- SnippetAfter ---

func TestSnippetAfter(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		heading string
		want    string
	}{
		{
			name:    "first paragraph after heading",
			text:    "Summary\n\nThis is the body text.\n\nNext paragraph.",
			heading: "Summary",
			want:    "This is the body text.",
		},
		{
			name:    "heading missing",
			text:    "Intro-\nduction\n\nBody",
			heading: "Introduction",
			want:    "",
		},
		{
			name:    "heading at end of page",
			text:    "Body first.\n\nConclusion",
			heading: "Conclusion",
			want:    "",
		},
		{
			name:    "multi-line paragraph kept",
			text:    "Methods\nWe sampled\nten sites.\n\nResults",
			heading: "Methods",
			want:    "We sampled\nten sites.",
		},
		{
			name:    "stops at next occurrence of heading",
			text:    "Notes\nsee Notes below\n\nmore",
			heading: "Notes",
			want:    "see",
		},
		{
			name:    "uses first occurrence",
			text:    "Scope A\n\nScope\n\nlater",
			heading: "Scope",
			want:    "A",
		},
		{
			name:    "empty heading",
			text:    "anything",
			heading: "",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SnippetAfter(tt.text, tt.heading))
		})
	}
}

func TestSnippetAfter_Truncates(t *testing.T) {
	body := strings.Repeat("é", 700)
	got := SnippetAfter("Heading\n"+body, "Heading")

	assert.Len(t, []rune(got), MaxSnippetLen)
	assert.Equal(t, strings.Repeat("é", MaxSnippetLen), got)
}

func TestSnippetAfter_Idempotent(t *testing.T) {
	text := "Overview\n\n  Lots of words here.  \n\nTail"
	first := SnippetAfter(text, "Overview")
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, SnippetAfter(text, "Overview"))
	}
	assert.Equal(t, "Lots of words here.", first)
}

// --- ExtractDocument ---

func TestExtractDocument(t *testing.T) {
	page1 := "Title\n\nChapter\nBody text here.\n\nMore body."
	page2 := "Section\nSecond page body."
	doc := docWith("guide.pdf", []string{page1, page2},
		[]pdfdoc.Line{
			span("  Title  ", 24),
			span("Chapter", 18),
			span("Body text here.", 10),
			span("   ", 24),
		},
		[]pdfdoc.Line{
			span("Section", 12),
			span("Second page body.", 10),
		},
	)

	sections := ExtractDocument(doc)

	require.Len(t, sections, 3)
	assert.Equal(t, types.Section{
		Document: "guide.pdf", Page: 1, Title: "Title", Level: types.LevelH1,
		Excerpt: "Chapter\nBody text here.",
	}, sections[0])
	assert.Equal(t, "Chapter", sections[1].Title)
	assert.Equal(t, types.LevelH2, sections[1].Level)
	assert.Equal(t, "Body text here.", sections[1].Excerpt)
	assert.Equal(t, 2, sections[2].Page)
	assert.Equal(t, "Section", sections[2].Title)
	assert.Equal(t, 3, sections[2].Rank())
	assert.Equal(t, "Second page body.", sections[2].Excerpt)
}

func TestExtractDocument_SkipsLongRuns(t *testing.T) {
	long := strings.Repeat("w", MaxHeadingLen+1)
	exact := strings.Repeat("v", MaxHeadingLen)
	doc := docWith("a.pdf", []string{long + "\n" + exact},
		[]pdfdoc.Line{span(long, 30), span(exact, 30)},
	)

	sections := ExtractDocument(doc)

	require.Len(t, sections, 1)
	assert.Equal(t, exact, sections[0].Title)
}

func TestExtractDocument_MismatchKeepsRecord(t *testing.T) {
	doc := docWith("a.pdf", []string{"Intro duction\n\nbody"},
		[]pdfdoc.Line{span("Introduction", 20)},
	)

	sections := ExtractDocument(doc)

	require.Len(t, sections, 1)
	assert.Equal(t, "Introduction", sections[0].Title)
	assert.Equal(t, "", sections[0].Excerpt)
}

func TestExtractDocument_DuplicatesKept(t *testing.T) {
	doc := docWith("a.pdf", []string{"Notes\n\nNotes"},
		[]pdfdoc.Line{span("Notes", 20), span("Notes", 20)},
	)

	sections := ExtractDocument(doc)

	require.Len(t, sections, 2)
	assert.Equal(t, sections[0], sections[1])
}

func TestExtractFile(t *testing.T) {
	opener := pdfdoc.OpenerFunc(func(path string) (*pdfdoc.Document, error) {
		if strings.HasSuffix(path, "bad.pdf") {
			return nil, pdfdoc.ErrUnreadable
		}
		return docWith("", []string{"Head\nbody"}, []pdfdoc.Line{span("Head", 30)}), nil
	})
	e := NewExtractor(opener)

	sections, err := e.ExtractFile("/in/good.pdf")
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "good.pdf", sections[0].Document)
	assert.Equal(t, "body", sections[0].Excerpt)

	_, err = e.ExtractFile("/in/bad.pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, pdfdoc.ErrUnreadable))
	assert.Contains(t, err.Error(), "bad.pdf")
}

func TestExtractFile_RealPDF(t *testing.T) {
	for _, preflight := range []bool{true, false} {
		e := NewExtractor(pdfdoc.NewReader(preflight))
		sections, err := e.ExtractFile(filepath.Join("..", "pdfdoc", "testdata", "summary.pdf"))
		require.NoError(t, err, "preflight=%v", preflight)

		// Sizes {24, 12} give H1=24, H2=12, H3=12: the body lines rank 2.
		require.Len(t, sections, 3)
		assert.Equal(t, types.Section{
			Document: "summary.pdf",
			Page:     1,
			Title:    "Summary",
			Level:    types.LevelH1,
			Excerpt:  "This is the body text.",
		}, sections[0])
		assert.Equal(t, "This is the body text.", sections[1].Title)
		assert.Equal(t, types.LevelH2, sections[1].Level)
		assert.Equal(t, "Next paragraph.", sections[2].Title)
		assert.Equal(t, types.LevelH2, sections[2].Level)
	}
}
