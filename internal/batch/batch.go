// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch runs outline extraction over every PDF in an input
// directory and writes the aggregate result.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/docoutline/pkg/types"
)

var (
	// ErrInputDir is returned when the input directory cannot be listed.
	ErrInputDir = errors.New("reading input directory")
	// ErrWriteOutput is returned when a descriptor or result file cannot be written.
	ErrWriteOutput = errors.New("writing output")
)

// Extractor produces the sections of one PDF.
type Extractor interface {
	ExtractFile(path string) ([]types.Section, error)
}

// DocumentResult is the outcome of extracting one document: its sections
// on success, or the error that stopped it.
type DocumentResult struct {
	Document string
	Sections []types.Section
	Err      error
}

// OK reports whether the document was extracted.
func (r DocumentResult) OK() bool {
	return r.Err == nil
}

// Summary holds the outcome of a batch run.
type Summary struct {
	Extracted int
	Failed    int

	// Sections is every record in output order.
	Sections []types.Section
	Failures []types.DocumentFailure

	// Result is what was written to ResultPath.
	Result     types.Result
	ResultPath string
}

// Total returns the number of documents processed.
func (s Summary) Total() int {
	return s.Extracted + s.Failed
}

// HasFailures reports whether any document failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// Runner drives extraction across an input directory.
type Runner struct {
	cfg       types.BatchConfig
	extractor Extractor
	logger    *slog.Logger
	now       func() time.Time
}

// NewRunner creates a Runner. A nil logger discards log output.
func NewRunner(cfg types.BatchConfig, ex Extractor, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{
		cfg:       cfg,
		extractor: ex,
		logger:    logger,
		now:       time.Now,
	}
}

// Run scans the input directory, writes the descriptor, extracts every PDF
// in listing order, and writes the result. Per-document status lines and a
// final summary go to w.
//
// A document that fails to open is recorded in Summary.Failures and the run
// continues, unless FailFast is set. Failing to list the input directory or
// to write the descriptor or result is returned as an error.
func (r *Runner) Run(ctx context.Context, w io.Writer) (Summary, error) {
	var summary Summary

	if err := os.MkdirAll(r.cfg.OutputDir, 0o755); err != nil {
		return summary, fmt.Errorf("%w: creating output directory: %w", ErrWriteOutput, err)
	}

	names, err := ListPDFs(r.cfg.InputDir)
	if err != nil {
		return summary, err
	}
	r.logger.Info("discovered PDFs", "input_dir", r.cfg.InputDir, "count", len(names))

	desc := NewDescriptor(names, r.cfg)
	if err := writeJSON(filepath.Join(r.cfg.InputDir, DescriptorFile), desc); err != nil {
		return summary, fmt.Errorf("writing descriptor: %w", err)
	}

	summary.Sections = []types.Section{}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		res := r.extract(name)
		if !res.OK() {
			fmt.Fprintf(w, "failed:    %s (%v)\n", res.Document, res.Err)
			r.logger.Warn("document failed", "document", res.Document, "error", res.Err)
			summary.Failed++
			summary.Failures = append(summary.Failures, types.DocumentFailure{
				Document: res.Document,
				Error:    res.Err.Error(),
			})
			if r.cfg.FailFast {
				return summary, res.Err
			}
			continue
		}

		fmt.Fprintf(w, "extracted: %s (%d sections)\n", res.Document, len(res.Sections))
		r.logger.Debug("document extracted", "document", res.Document, "sections", len(res.Sections))
		summary.Extracted++
		summary.Sections = append(summary.Sections, res.Sections...)
	}

	meta := types.Metadata{
		InputDocuments:      names,
		Persona:             desc.Persona.Role,
		JobToBeDone:         desc.JobToBeDone.Task,
		ProcessingTimestamp: FormatTimestamp(r.now()),
	}
	summary.Result = types.NewResult(meta, summary.Sections)

	if err := r.writeResult(&summary); err != nil {
		return summary, err
	}

	fmt.Fprintf(w, "\nBatch summary: %d extracted, %d failed, %d sections (total: %d)\n",
		summary.Extracted, summary.Failed, len(summary.Sections), summary.Total())
	for _, f := range summary.Failures {
		fmt.Fprintf(w, "  failed: %s: %s\n", f.Document, f.Error)
	}
	return summary, nil
}

func (r *Runner) extract(name string) DocumentResult {
	sections, err := r.extractor.ExtractFile(filepath.Join(r.cfg.InputDir, name))
	return DocumentResult{Document: name, Sections: sections, Err: err}
}

func (r *Runner) writeResult(summary *Summary) error {
	summary.ResultPath = filepath.Join(r.cfg.OutputDir, ResultFile)
	if err := writeJSON(summary.ResultPath, summary.Result); err != nil {
		return fmt.Errorf("writing %s: %w", ResultFile, err)
	}
	if r.cfg.Format == types.OutputYAML {
		if err := writeYAML(filepath.Join(r.cfg.OutputDir, ResultYAMLFile), summary.Result); err != nil {
			return fmt.Errorf("writing %s: %w", ResultYAMLFile, err)
		}
	}
	r.logger.Info("result written", "path", summary.ResultPath, "sections", len(summary.Sections))
	return nil
}
