package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/opsdocs/internal/guide"
	"github.com/pdiddy/opsdocs/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate guides whenever their source files change",
	Long: `Watch monitors the guides directory and regenerates a guide each time its
Markdown file is saved. Every rebuild is recorded in the catalog like a
normal generate run. Stop with Ctrl-C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		dir := cfg.Generate.GuidesDir
		if dir == "" {
			return fmt.Errorf("no guides directory: set --guides-dir or generate.guides_dir")
		}
		debounce, _ := cmd.Flags().GetDuration("debounce")

		g := &generator{cfg: cfg, out: os.Stdout, log: logger}
		rebuild := func(ctx context.Context, names []string) error {
			guides, err := guide.Load(dir)
			if err != nil {
				return err
			}
			var selected []*guide.Guide
			for _, name := range names {
				gd, err := guide.Find(guides, name)
				if errors.Is(err, guide.ErrNotFound) {
					logger.Info("guide removed", "guide", name)
					continue
				}
				if err != nil {
					return err
				}
				selected = append(selected, gd)
			}
			if len(selected) == 0 {
				return nil
			}
			return g.run(ctx, selected)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return watch.New(dir, debounce, rebuild, logger).Run(ctx)
	},
}

func init() {
	watchCmd.Flags().String("guides-dir", "", "directory of guide files (*.md) to watch")
	watchCmd.Flags().String("output-dir", ".", "directory for generated .docx files")
	watchCmd.Flags().Bool("strict", false, "fail on tables whose rows do not match the header")
	watchCmd.Flags().Duration("debounce", watch.DefaultDebounce, "quiet period before a rebuild")

	rootCmd.AddCommand(watchCmd)
}
