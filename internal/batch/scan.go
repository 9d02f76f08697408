// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/docoutline/pkg/types"
)

// DescriptorFile is the name of the descriptor written into the input directory.
const DescriptorFile = "input.json"

// IsPDF reports whether name has a .pdf extension, ignoring case.
func IsPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}

// ListPDFs returns the names of the non-directory *.pdf entries of dir,
// in lexical order.
func ListPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputDir, err)
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !IsPDF(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// NewDescriptor builds the input.json descriptor for the discovered files.
// Titles are the filenames with the extension stripped.
func NewDescriptor(names []string, cfg types.BatchConfig) types.Descriptor {
	docs := make([]types.DescriptorDocument, 0, len(names))
	for _, n := range names {
		docs = append(docs, types.DescriptorDocument{
			Filename: n,
			Title:    strings.TrimSuffix(n, filepath.Ext(n)),
		})
	}

	persona := cfg.Persona
	if persona == "" {
		persona = types.DefaultPersona
	}
	task := cfg.Task
	if task == "" {
		task = types.DefaultTask
	}

	return types.Descriptor{
		ChallengeInfo: types.ChallengeInfo{
			ChallengeID:  types.DefaultChallengeID,
			TestCaseName: types.DefaultTestCaseName,
			Description:  types.DefaultDescription,
		},
		Documents:   docs,
		Persona:     types.Persona{Role: persona},
		JobToBeDone: types.JobToBeDone{Task: task},
	}
}
