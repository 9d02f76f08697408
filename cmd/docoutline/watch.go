// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docoutline/internal/watch"
	"github.com/pdiddy/docoutline/pkg/types"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run extraction whenever PDFs in the input directory change",
	Long: `Watch performs one run immediately, then watches the input directory and
performs another run after PDFs are added, changed, removed, or renamed.
Changes are debounced so copying several files triggers a single run.
Stop with Ctrl-C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := pipelineConfig(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		trigger := func(ctx context.Context) error {
			_, err := runBatch(ctx, cfg, os.Stdout)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		if err := trigger(ctx); err != nil {
			return err
		}

		return watch.New(cfg.Batch.InputDir, cfg.Watch.Debounce, logger).Run(ctx, trigger)
	},
}

func init() {
	addBatchFlags(watchCmd)
	watchCmd.Flags().Duration("debounce", types.DefaultDebounce, "quiet period after the last PDF change before a run starts")
	rootCmd.AddCommand(watchCmd)
}
