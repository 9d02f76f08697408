// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

const (
	// ResultFile is the JSON result written into the output directory.
	ResultFile = "result.json"
	// ResultYAMLFile is written alongside ResultFile when the yaml format is selected.
	ResultYAMLFile = "result.yaml"

	// TimestampLayout is local ISO-8601 time with microseconds.
	TimestampLayout = "2006-01-02T15:04:05.000000"
	// timestampLayoutWhole is used when the microsecond field is zero.
	timestampLayoutWhole = "2006-01-02T15:04:05"
)

// FormatTimestamp renders t in local ISO-8601 form, truncated to
// microseconds. The fraction is omitted when it is zero.
func FormatTimestamp(t time.Time) string {
	t = t.Truncate(time.Microsecond)
	if t.Nanosecond() == 0 {
		return t.Format(timestampLayoutWhole)
	}
	return t.Format(TimestampLayout)
}

// writeJSON writes v as two-space indented JSON. Non-ASCII text and
// characters like & and < are written as-is.
func writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

// writeYAML marshals v to a YAML file.
func writeYAML(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}
