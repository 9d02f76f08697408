// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docoutline/internal/store"
	"github.com/pdiddy/docoutline/pkg/types"
)

func batchCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addBatchFlags(cmd)
	cmd.Flags().Duration("debounce", types.DefaultDebounce, "")
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestPipelineConfig_Defaults(t *testing.T) {
	cfg, err := pipelineConfig(batchCommand(t))
	require.NoError(t, err)

	assert.Equal(t, types.DefaultInputDir, cfg.Batch.InputDir)
	assert.Equal(t, types.DefaultOutputDir, cfg.Batch.OutputDir)
	assert.Equal(t, types.DefaultPersona, cfg.Batch.Persona)
	assert.Equal(t, types.DefaultTask, cfg.Batch.Task)
	assert.Equal(t, types.OutputJSON, cfg.Batch.Format)
	assert.True(t, cfg.Batch.Preflight)
	assert.False(t, cfg.Batch.FailFast)
	assert.Equal(t, filepath.Join(types.DefaultOutputDir, types.DefaultStoreFile), cfg.Store.Path)
	assert.Equal(t, types.DefaultDebounce, cfg.Watch.Debounce)
}

func TestPipelineConfig_Flags(t *testing.T) {
	cmd := batchCommand(t,
		"--persona", "Researcher",
		"--task", "Review methods",
		"--format", "YAML",
		"--fail-fast",
		"--no-preflight",
		"--no-store",
		"--debounce", "2s",
	)

	cfg, err := pipelineConfig(cmd)
	require.NoError(t, err)

	assert.Equal(t, "Researcher", cfg.Batch.Persona)
	assert.Equal(t, "Review methods", cfg.Batch.Task)
	assert.Equal(t, types.OutputYAML, cfg.Batch.Format)
	assert.True(t, cfg.Batch.FailFast)
	assert.False(t, cfg.Batch.Preflight)
	assert.Equal(t, "", cfg.Store.Path)
	assert.Equal(t, 2*time.Second, cfg.Watch.Debounce)
}

func TestPipelineConfig_BadFormat(t *testing.T) {
	_, err := pipelineConfig(batchCommand(t, "--format", "xml"))
	assert.ErrorContains(t, err, "unsupported format")
}

func TestNewLogger(t *testing.T) {
	for _, tt := range []struct {
		level, format string
		wantErr       bool
	}{
		{"info", "text", false},
		{"DEBUG", "json", false},
		{"warn", "", false},
		{"loud", "text", true},
		{"info", "xml", true},
	} {
		l, err := newLogger(tt.level, tt.format)
		if tt.wantErr {
			assert.Error(t, err, "%s/%s", tt.level, tt.format)
			continue
		}
		require.NoError(t, err)
		assert.NotNil(t, l)
	}
}

func TestFormatResults(t *testing.T) {
	var buf bytes.Buffer
	err := formatResults(&buf, []store.QueryResult{{
		Document:       "guide.pdf",
		PageNumber:     3,
		SectionTitle:   "Getting Around",
		ImportanceRank: 2,
		RefinedText:    "Trains\nand buses",
	}}, false)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "guide.pdf")
	assert.Contains(t, out, "Getting Around")
	assert.Contains(t, out, "Trains and buses")
	assert.Contains(t, out, "1 results")

	buf.Reset()
	require.NoError(t, formatResults(&buf, nil, false))
	assert.Equal(t, "No results found.\n", buf.String())
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))
	assert.Equal(t, "abcd...", clip("abcdefghij", 7))
	assert.Equal(t, "ééé...", clip("éééééééé", 6))
}
