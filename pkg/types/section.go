// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// HeadingLevel is the prominence class of a heading, inferred from font size.
type HeadingLevel string

const (
	LevelNone HeadingLevel = ""
	LevelH1   HeadingLevel = "H1"
	LevelH2   HeadingLevel = "H2"
	LevelH3   HeadingLevel = "H3"
)

// Rank returns the importance rank for the level: 1 for H1 through 3 for H3.
// LevelNone and unknown levels rank 4.
func (l HeadingLevel) Rank() int {
	switch l {
	case LevelH1:
		return 1
	case LevelH2:
		return 2
	case LevelH3:
		return 3
	default:
		return 4
	}
}

// Section is one detected heading occurrence with the excerpt that follows it.
// Records are never deduplicated; the same title may appear several times.
type Section struct {
	// Document is the base name of the source PDF.
	Document string `json:"document" yaml:"document"`

	// Page is the 1-based page number.
	Page int `json:"page_number" yaml:"page_number"`

	// Title is the trimmed text of the heading run.
	Title string `json:"section_title" yaml:"section_title"`

	// Level is the heading class the run was assigned.
	Level HeadingLevel `json:"level" yaml:"level"`

	// Excerpt is the paragraph following the heading on the same page.
	// Empty when the heading could not be located in the page text.
	Excerpt string `json:"refined_text" yaml:"refined_text"`
}

// Rank returns the importance rank of the section's heading level.
func (s Section) Rank() int {
	return s.Level.Rank()
}

// DocumentFailure records a PDF that could not be processed.
type DocumentFailure struct {
	Document string `json:"document" yaml:"document"`
	Error    string `json:"error" yaml:"error"`
}
