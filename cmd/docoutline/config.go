// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docoutline/pkg/types"
)

// addBatchFlags registers the flags shared by run and watch. They override
// the config file and environment only when set explicitly.
func addBatchFlags(cmd *cobra.Command) {
	cmd.Flags().String("persona", types.DefaultPersona, "persona role recorded in input.json and result metadata")
	cmd.Flags().String("task", types.DefaultTask, "job-to-be-done recorded in input.json and result metadata")
	cmd.Flags().String("format", string(types.OutputJSON), "extra result format: json (result.json only) or yaml (adds result.yaml)")
	cmd.Flags().Bool("fail-fast", false, "abort on the first unreadable PDF")
	cmd.Flags().Bool("no-preflight", false, "skip pdfcpu validation before parsing")
	cmd.Flags().Bool("no-store", false, "do not record the run in the section database")
}

// pipelineConfig assembles the configuration from viper and cmd's flags.
func pipelineConfig(cmd *cobra.Command) (types.PipelineConfig, error) {
	cfg := types.DefaultConfig()

	cfg.Batch.InputDir = viper.GetString("input_dir")
	cfg.Batch.OutputDir = viper.GetString("output_dir")
	cfg.Batch.Persona = viper.GetString("persona")
	cfg.Batch.Task = viper.GetString("task")
	cfg.Batch.FailFast = viper.GetBool("batch.fail_fast")
	cfg.Batch.Preflight = viper.GetBool("pdf.preflight")
	format := viper.GetString("output.format")

	flags := cmd.Flags()
	if flags.Lookup("persona") != nil {
		if flags.Changed("persona") {
			cfg.Batch.Persona, _ = flags.GetString("persona")
		}
		if flags.Changed("task") {
			cfg.Batch.Task, _ = flags.GetString("task")
		}
		if flags.Changed("format") {
			format, _ = flags.GetString("format")
		}
		if flags.Changed("fail-fast") {
			cfg.Batch.FailFast, _ = flags.GetBool("fail-fast")
		}
		if noPreflight, _ := flags.GetBool("no-preflight"); noPreflight {
			cfg.Batch.Preflight = false
		}
	}

	switch f := types.OutputFormat(strings.ToLower(format)); f {
	case types.OutputJSON, types.OutputYAML:
		cfg.Batch.Format = f
	default:
		return cfg, fmt.Errorf("unsupported format %q: use json or yaml", format)
	}

	cfg.Store.Path = viper.GetString("store.path")
	if cfg.Store.Path == "" {
		cfg.Store.Path = filepath.Join(cfg.Batch.OutputDir, types.DefaultStoreFile)
	}
	if flags.Lookup("no-store") != nil {
		if noStore, _ := flags.GetBool("no-store"); noStore {
			cfg.Store.Path = ""
		}
	}
	cfg.Store.MaxResults = viper.GetInt("store.max_results")

	cfg.Watch.Debounce = viper.GetDuration("watch.debounce")
	if flags.Lookup("debounce") != nil && flags.Changed("debounce") {
		cfg.Watch.Debounce, _ = flags.GetDuration("debounce")
	}
	if cfg.Watch.Debounce <= 0 {
		cfg.Watch.Debounce = types.DefaultDebounce
	}

	return cfg, nil
}

// newLogger builds a stderr logger with the given level and format.
func newLogger(level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q: use text or json", format)
	}
}
