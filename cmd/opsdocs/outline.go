package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/opsdocs/internal/guide"
	"github.com/pdiddy/opsdocs/internal/outline"
)

var outlineCmd = &cobra.Command{
	Use:   "outline <guide>",
	Short: "Print the block sequence a guide produces",
	Long: `Outline builds a guide without writing a file and prints the ordered
blocks it produces (headings, paragraphs with their run formatting, code
blocks, tables and page breaks) as YAML or JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")

		guides, err := guide.Load(cfg.Generate.GuidesDir)
		if err != nil {
			return err
		}
		g, err := guide.Find(guides, args[0])
		if err != nil {
			return err
		}
		doc, err := guide.Build(g, guide.Options{
			Theme:     cfg.Generate.Theme,
			RowPolicy: cfg.Generate.RowPolicy(),
			Logger:    logger,
		})
		if err != nil {
			return err
		}
		return outline.Write(os.Stdout, outline.Build(doc), format)
	},
}

func init() {
	outlineCmd.Flags().String("format", outline.FormatYAML, "output format: yaml or json")
	outlineCmd.Flags().String("guides-dir", "", "directory of extra or overriding guide files (*.md)")
	outlineCmd.Flags().Bool("strict", false, "fail on tables whose rows do not match the header")

	rootCmd.AddCommand(outlineCmd)
}
