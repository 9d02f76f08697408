// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Descriptor is the auto-generated input.json written before extraction.
// Its schema mirrors what a configurable-input run would read back.
type Descriptor struct {
	ChallengeInfo ChallengeInfo        `json:"challenge_info" yaml:"challenge_info"`
	Documents     []DescriptorDocument `json:"documents" yaml:"documents"`
	Persona       Persona              `json:"persona" yaml:"persona"`
	JobToBeDone   JobToBeDone          `json:"job_to_be_done" yaml:"job_to_be_done"`
}

// ChallengeInfo identifies the test case a descriptor belongs to.
type ChallengeInfo struct {
	ChallengeID  string `json:"challenge_id" yaml:"challenge_id"`
	TestCaseName string `json:"test_case_name" yaml:"test_case_name"`
	Description  string `json:"description" yaml:"description"`
}

// DescriptorDocument pairs a discovered filename with a title derived from it.
type DescriptorDocument struct {
	Filename string `json:"filename" yaml:"filename"`
	Title    string `json:"title" yaml:"title"`
}

// Persona describes who the outline is prepared for.
type Persona struct {
	Role string `json:"role" yaml:"role"`
}

// JobToBeDone describes what the persona wants to accomplish.
type JobToBeDone struct {
	Task string `json:"task" yaml:"task"`
}

// Result is the document written to result.json.
type Result struct {
	Metadata           Metadata             `json:"metadata" yaml:"metadata"`
	ExtractedSections  []ExtractedSection   `json:"extracted_sections" yaml:"extracted_sections"`
	SubsectionAnalysis []SubsectionAnalysis `json:"subsection_analysis" yaml:"subsection_analysis"`
}

// Metadata describes the run that produced a Result.
type Metadata struct {
	InputDocuments      []string `json:"input_documents" yaml:"input_documents"`
	Persona             string   `json:"persona" yaml:"persona"`
	JobToBeDone         string   `json:"job_to_be_done" yaml:"job_to_be_done"`
	ProcessingTimestamp string   `json:"processing_timestamp" yaml:"processing_timestamp"`
}

// ExtractedSection is the title projection of a Section.
type ExtractedSection struct {
	Document       string `json:"document" yaml:"document"`
	PageNumber     int    `json:"page_number" yaml:"page_number"`
	SectionTitle   string `json:"section_title" yaml:"section_title"`
	ImportanceRank int    `json:"importance_rank" yaml:"importance_rank"`
}

// SubsectionAnalysis is the excerpt projection of a Section.
type SubsectionAnalysis struct {
	Document    string `json:"document" yaml:"document"`
	RefinedText string `json:"refined_text" yaml:"refined_text"`
	PageNumber  int    `json:"page_number" yaml:"page_number"`
}

// NewResult projects sections into the two index-aligned output lists.
// The lists are always non-nil so they serialize as [] rather than null.
func NewResult(meta Metadata, sections []Section) Result {
	if meta.InputDocuments == nil {
		meta.InputDocuments = []string{}
	}
	r := Result{
		Metadata:           meta,
		ExtractedSections:  make([]ExtractedSection, 0, len(sections)),
		SubsectionAnalysis: make([]SubsectionAnalysis, 0, len(sections)),
	}
	for _, s := range sections {
		r.ExtractedSections = append(r.ExtractedSections, ExtractedSection{
			Document:       s.Document,
			PageNumber:     s.Page,
			SectionTitle:   s.Title,
			ImportanceRank: s.Rank(),
		})
		r.SubsectionAnalysis = append(r.SubsectionAnalysis, SubsectionAnalysis{
			Document:    s.Document,
			RefinedText: s.Excerpt,
			PageNumber:  s.Page,
		})
	}
	return r
}
