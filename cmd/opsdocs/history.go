// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/opsdocs/internal/catalog"
	"github.com/pdiddy/opsdocs/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded generation runs",
	Long: `History lists generation runs from the catalog in the output directory,
newest first, with block and table counts, warnings, the export status and
a prefix of the SHA-256 of the written file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		guideName, _ := cmd.Flags().GetString("guide")
		batch, _ := cmd.Flags().GetString("batch")
		limit, _ := cmd.Flags().GetInt("limit")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		path := catalogPath(cfg)
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("no catalog at %s: run opsdocs generate first", path)
		}
		store, err := catalog.Open(path)
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.List(cmd.Context(), catalog.ListOptions{Guide: guideName, Batch: batch, Limit: limit})
		if err != nil {
			return err
		}
		return formatHistory(os.Stdout, runs, jsonOutput)
	},
}

func formatHistory(w io.Writer, runs []types.GenerationRun, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-5s  %-8s  %-20s  %-20s  %-6s  %-6s  %-8s  %-8s  %s\n",
		"ID", "Batch", "Guide", "Generated", "Blocks", "Tables", "Warnings", "Export", "SHA256")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, r := range runs {
		sum := r.SHA256
		if len(sum) > 12 {
			sum = sum[:12]
		}
		batch := r.Batch
		if len(batch) > 8 {
			batch = batch[:8]
		}
		fmt.Fprintf(w, "%-5d  %-8s  %-20s  %-20s  %-6d  %-6d  %-8d  %-8s  %s\n",
			r.ID, batch, r.Guide, r.GeneratedAt.Local().Format("2006-01-02 15:04:05"),
			r.Blocks, r.Tables, r.Warnings, r.Export, sum)
	}
	fmt.Fprintf(w, "\n%d runs\n", len(runs))
	return nil
}

func init() {
	historyCmd.Flags().String("output-dir", ".", "output directory whose catalog is read")
	historyCmd.Flags().String("guide", "", "only show runs for this guide")
	historyCmd.Flags().String("batch", "", "only show runs from this generate invocation")
	historyCmd.Flags().Int("limit", 20, "maximum runs to show")
	historyCmd.Flags().Bool("json", false, "output runs as JSON")

	rootCmd.AddCommand(historyCmd)
}
