// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docoutline/internal/store"
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Search the outlines recorded by previous runs",
	Long: `Query searches the section database written by run and watch. Without
--run it searches the most recent run. Text matches section titles and
excerpts; --document and --max-rank narrow the results further.

Use --runs to list the recorded runs instead.`,
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := pipelineConfig(cmd)
	if err != nil {
		return err
	}

	s, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close()

	jsonOutput, _ := cmd.Flags().GetBool("json")

	if listRuns, _ := cmd.Flags().GetBool("runs"); listRuns {
		runs, err := s.Runs(context.Background())
		if err != nil {
			return err
		}
		return formatRuns(os.Stdout, runs, jsonOutput)
	}

	runID, _ := cmd.Flags().GetString("run")
	document, _ := cmd.Flags().GetString("document")
	maxRank, _ := cmd.Flags().GetInt("max-rank")
	limit, _ := cmd.Flags().GetInt("limit")

	results, err := s.Query(context.Background(), store.QueryOptions{
		Text:     strings.Join(args, " "),
		Document: document,
		MaxRank:  maxRank,
		RunID:    runID,
		Limit:    limit,
	})
	if err != nil {
		return err
	}
	return formatResults(os.Stdout, results, jsonOutput)
}

func formatResults(w io.Writer, results []store.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "%-4s  %-24s  %-4s  %-40s  %s\n", "Rank", "Document", "Page", "Section", "Excerpt")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, r := range results {
		excerpt := strings.ReplaceAll(r.RefinedText, "\n", " ")
		fmt.Fprintf(w, "%-4d  %-24s  %-4d  %-40s  %s\n",
			r.ImportanceRank, clip(r.Document, 24), r.PageNumber, clip(r.SectionTitle, 40), clip(excerpt, 30))
	}
	fmt.Fprintf(w, "\n%d results\n", len(results))
	return nil
}

func formatRuns(w io.Writer, runs []store.Run, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-36s  %-26s  %-9s  %s\n", "Run", "Generated", "Documents", "Sections")
	for _, r := range runs {
		fmt.Fprintf(w, "%-36s  %-26s  %-9d  %d\n", r.ID, r.GeneratedAt, len(r.Documents), r.Sections)
	}
	return nil
}

// clip shortens s to at most n characters, marking the cut with "...".
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	queryCmd.Flags().String("run", "", "run ID to search (default: most recent run)")
	queryCmd.Flags().String("document", "", "only sections from this PDF file name")
	queryCmd.Flags().Int("max-rank", 0, "only sections with importance rank at most this (0 = all)")
	queryCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	queryCmd.Flags().Bool("json", false, "output results as JSON")
	queryCmd.Flags().Bool("runs", false, "list recorded runs instead of sections")

	rootCmd.AddCommand(queryCmd)
}
