package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/opsdocs/internal/guide"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available guides",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		guides, err := guide.Load(cfg.Generate.GuidesDir)
		if err != nil {
			return err
		}
		printGuides(os.Stdout, guides)
		return nil
	},
}

func printGuides(w io.Writer, guides []*guide.Guide) {
	fmt.Fprintf(w, "%-20s  %-45s  %s\n", "Name", "Title", "Output")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, g := range guides {
		fmt.Fprintf(w, "%-20s  %-45s  %s\n", g.Name, truncate(g.Title, 45), g.Output)
	}
	fmt.Fprintf(w, "\n%d guides\n", len(guides))
}

// truncate shortens s to at most n runes, ending in "..." when cut.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	listCmd.Flags().String("guides-dir", "", "directory of extra or overriding guide files (*.md)")

	rootCmd.AddCommand(listCmd)
}
