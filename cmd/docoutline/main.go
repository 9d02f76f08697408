// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docoutline CLI.
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

// version is set at build time via ldflags.
var version = "dev"

// logger is built from the log.* settings before any subcommand runs.
var logger = slog.Default()

// rootCmd is the base command for the docoutline CLI.
var rootCmd = &cobra.Command{
	Use:   "docoutline",
	Short: "Extract heading outlines and excerpts from a directory of PDFs",
	Long: `docoutline scans a directory of PDF files, detects headings by font size,
and writes a JSON outline listing each heading, its page, an importance rank,
and the paragraph that follows it.

Use run for a single pass, watch to re-run whenever PDFs change, and query to
search the outlines of previous runs.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(viper.GetString("log.level"), viper.GetString("log.format"))
		if err != nil {
			return err
		}
		logger = l
		slog.SetDefault(l)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./docoutline.yaml or ~/.config/docoutline/docoutline.yaml)")
	pf.String("input-dir", types.DefaultInputDir, "directory containing the PDFs")
	pf.String("output-dir", types.DefaultOutputDir, "directory for result.json")
	pf.String("store-path", "", "section database (default: <output-dir>/sections.db)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text or json")

	_ = viper.BindPFlag("input_dir", pf.Lookup("input-dir"))
	_ = viper.BindPFlag("output_dir", pf.Lookup("output-dir"))
	_ = viper.BindPFlag("store.path", pf.Lookup("store-path"))
	_ = viper.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = viper.BindPFlag("log.format", pf.Lookup("log-format"))

	viper.SetDefault("persona", types.DefaultPersona)
	viper.SetDefault("task", types.DefaultTask)
	viper.SetDefault("output.format", string(types.OutputJSON))
	viper.SetDefault("pdf.preflight", true)
	viper.SetDefault("store.max_results", 20)
	viper.SetDefault("watch.debounce", types.DefaultDebounce)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("docoutline")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "docoutline"))
		}
	}

	viper.SetEnvPrefix("DOCOUTLINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
