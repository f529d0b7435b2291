// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pdiddy/opsdocs/internal/catalog"
	"github.com/pdiddy/opsdocs/internal/container"
	"github.com/pdiddy/opsdocs/internal/convert"
	"github.com/pdiddy/opsdocs/internal/docx"
	"github.com/pdiddy/opsdocs/internal/guide"
	"github.com/pdiddy/opsdocs/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate [guide...]",
	Short: "Generate Word documents for one or more guides",
	Long: `Generate builds each named guide into a .docx file in the output
directory and records the run in the generation catalog. Use --all to build
every available guide. With --pdf each document is also exported to PDF
through a headless office container.

Tables whose rows do not match their header are padded with a warning;
--strict turns that into an error that aborts the run.`,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	all, _ := cmd.Flags().GetBool("all")
	pdf, _ := cmd.Flags().GetBool("pdf")

	guides, err := guide.Load(cfg.Generate.GuidesDir)
	if err != nil {
		return err
	}
	selected, err := selectGuides(guides, args, all)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	g := &generator{cfg: cfg, out: os.Stdout, log: logger}
	if pdf {
		rt, err := container.DetectRuntime(ctx, cfg.Export.Runtime)
		if err != nil {
			return err
		}
		conv, err := convert.NewOfficeConverter(ctx, rt, cfg.Export.Image)
		if err != nil {
			return err
		}
		g.conv = conv
	}
	return g.run(ctx, selected)
}

// selectGuides resolves the guide names given on the command line.
func selectGuides(guides []*guide.Guide, names []string, all bool) ([]*guide.Guide, error) {
	if all {
		if len(names) > 0 {
			return nil, fmt.Errorf("--all cannot be combined with guide names")
		}
		return guides, nil
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no guide given: name one or more guides or use --all (see opsdocs list)")
	}
	selected := make([]*guide.Guide, 0, len(names))
	for _, name := range names {
		g, err := guide.Find(guides, name)
		if err != nil {
			return nil, err
		}
		selected = append(selected, g)
	}
	return selected, nil
}

// generator builds, writes and records guides. conv is nil when PDF
// export is off.
type generator struct {
	cfg  types.Config
	out  io.Writer
	log  *slog.Logger
	conv convert.Converter
}

func (g *generator) run(ctx context.Context, guides []*guide.Guide) error {
	outDir := g.cfg.Generate.OutputDir
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	var store *catalog.Store
	if !g.cfg.Catalog.Disabled {
		s, err := catalog.Open(catalogPath(g.cfg))
		if err != nil {
			return err
		}
		defer s.Close()
		store = s
	}

	batch := uuid.NewString()
	g.log.Debug("generation started", "batch", batch, "guides", len(guides))

	exportFailures := 0
	for _, gd := range guides {
		run, err := g.generate(gd)
		if err != nil {
			return err
		}
		run.Batch = batch
		if store != nil {
			if err := store.Record(ctx, run); err != nil {
				return err
			}
		}

		if g.conv != nil {
			status := convert.ConvertFile(ctx, g.conv, run.OutputPath, true, g.out)
			if status == types.ExportFailed {
				exportFailures++
			}
			if store != nil {
				if err := store.SetExport(ctx, run.ID, status); err != nil {
					return err
				}
			}
		}

		fmt.Fprintf(g.out, "%s documentation created successfully!\n", gd.DisplayName())
	}

	if exportFailures > 0 {
		return fmt.Errorf("%d PDF export(s) failed", exportFailures)
	}
	return nil
}

// generate builds one guide and writes it to the output directory.
func (g *generator) generate(gd *guide.Guide) (*types.GenerationRun, error) {
	doc, err := guide.Build(gd, guide.Options{
		Theme:     g.cfg.Generate.Theme,
		RowPolicy: g.cfg.Generate.RowPolicy(),
		Logger:    g.log,
	})
	if err != nil {
		return nil, err
	}

	path := filepath.Join(g.cfg.Generate.OutputDir, doc.Output)
	if err := docx.WriteFile(path, doc); err != nil {
		return nil, err
	}
	sum, err := catalog.FileSHA256(path)
	if err != nil {
		return nil, err
	}
	g.log.Debug("document written", "guide", gd.Name, "path", path, "blocks", len(doc.Blocks))

	return &types.GenerationRun{
		Guide:      gd.Name,
		Title:      doc.Title,
		OutputPath: path,
		Blocks:     len(doc.Blocks),
		Tables:     doc.CountKind(types.KindTable),
		Warnings:   len(doc.Warnings),
		SHA256:     sum,
	}, nil
}

func init() {
	generateCmd.Flags().Bool("all", false, "generate every available guide")
	generateCmd.Flags().String("output-dir", ".", "directory for generated .docx files")
	generateCmd.Flags().String("guides-dir", "", "directory of extra or overriding guide files (*.md)")
	generateCmd.Flags().Bool("strict", false, "fail on tables whose rows do not match the header")
	generateCmd.Flags().Bool("pdf", false, "also export each document to PDF")
	generateCmd.Flags().String("image", "", "office container image used for PDF export")
	generateCmd.Flags().String("runtime", "", "container runtime for PDF export: docker or podman (default: auto-detect)")

	rootCmd.AddCommand(generateCmd)
}
