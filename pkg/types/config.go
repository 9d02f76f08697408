// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"path/filepath"
	"time"
)

// OutputFormat selects the serialization written next to result.json.
type OutputFormat string

const (
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// Defaults used when the config file, environment, and flags leave a value unset.
const (
	DefaultInputDir     = "input"
	DefaultOutputDir    = "output"
	DefaultPersona      = "Generic Persona"
	DefaultTask         = "Analyze documents and extract sections"
	DefaultChallengeID  = "round_1b_002"
	DefaultTestCaseName = "auto_generated_case"
	DefaultDescription  = "Auto-generated input based on available PDFs"
	DefaultStoreFile    = "sections.db"
	DefaultDebounce     = 500 * time.Millisecond
)

// BatchConfig holds settings for one batch extraction run.
type BatchConfig struct {
	// InputDir is the directory scanned for *.pdf files. The descriptor
	// (input.json) is written here as well.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputDir receives result.json (and result.yaml when Format is yaml).
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Persona is the persona role recorded in the descriptor and result metadata.
	Persona string `json:"persona" yaml:"persona"`

	// Task is the job-to-be-done recorded in the descriptor and result metadata.
	Task string `json:"task" yaml:"task"`

	// FailFast aborts the run on the first unreadable document instead of
	// recording the failure and moving on.
	FailFast bool `json:"fail_fast" yaml:"fail_fast"`

	// Format adds a second serialization of the result. JSON is always written.
	Format OutputFormat `json:"format" yaml:"format"`

	// Preflight validates each PDF with pdfcpu before parsing it.
	Preflight bool `json:"preflight" yaml:"preflight"`
}

// StoreConfig holds settings for the SQLite section store.
type StoreConfig struct {
	// Path is the database file. An empty path disables the store.
	Path string `json:"path" yaml:"path"`

	// MaxResults is the default query limit (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// WatchConfig holds settings for watch mode.
type WatchConfig struct {
	// Debounce is how long the watcher waits after the last PDF event
	// before starting a run.
	Debounce time.Duration `json:"debounce" yaml:"debounce"`
}

// PipelineConfig groups all configuration for the CLI.
type PipelineConfig struct {
	Batch BatchConfig `json:"batch" yaml:"batch"`
	Store StoreConfig `json:"store" yaml:"store"`
	Watch WatchConfig `json:"watch" yaml:"watch"`
}

// DefaultConfig returns a PipelineConfig rooted at the conventional
// input/ and output/ directories.
func DefaultConfig() PipelineConfig {
	return PipelineConfig{
		Batch: BatchConfig{
			InputDir:  DefaultInputDir,
			OutputDir: DefaultOutputDir,
			Persona:   DefaultPersona,
			Task:      DefaultTask,
			Format:    OutputJSON,
			Preflight: true,
		},
		Store: StoreConfig{
			Path:       filepath.Join(DefaultOutputDir, DefaultStoreFile),
			MaxResults: 20,
		},
		Watch: WatchConfig{
			Debounce: DefaultDebounce,
		},
	}
}
