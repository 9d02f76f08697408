// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docoutline/internal/batch"
	"github.com/pdiddy/docoutline/internal/outline"
	"github.com/pdiddy/docoutline/internal/pdfdoc"
	"github.com/pdiddy/docoutline/internal/store"
	"github.com/pdiddy/docoutline/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Extract outlines from every PDF in the input directory",
	Long: `Run lists the *.pdf files in the input directory, writes input.json next
to them, detects headings in each document by font size, and writes
result.json to the output directory. A PDF that cannot be read is reported
and skipped; the command exits non-zero if any document failed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := pipelineConfig(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		summary, err := runBatch(ctx, cfg, os.Stdout)
		if err != nil {
			return err
		}
		if summary.HasFailures() {
			return fmt.Errorf("%d document(s) failed extraction", summary.Failed)
		}
		return nil
	},
}

// runBatch runs one extraction pass and records it in the section store
// when one is configured.
func runBatch(ctx context.Context, cfg types.PipelineConfig, w io.Writer) (batch.Summary, error) {
	extractor := outline.NewExtractor(pdfdoc.NewReader(cfg.Batch.Preflight))
	summary, err := batch.NewRunner(cfg.Batch, extractor, logger).Run(ctx, w)
	if err != nil {
		return summary, err
	}
	fmt.Fprintf(w, "wrote %s\n", summary.ResultPath)

	if cfg.Store.Path == "" {
		return summary, nil
	}
	s, err := store.Open(cfg.Store)
	if err != nil {
		return summary, err
	}
	defer s.Close()

	id, err := s.SaveRun(ctx, summary.Result, summary.Sections)
	if err != nil {
		return summary, fmt.Errorf("recording run: %w", err)
	}
	logger.Info("run recorded", "run_id", id, "store", cfg.Store.Path)
	return summary, nil
}

func init() {
	addBatchFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}
