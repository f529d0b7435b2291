package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/opsdocs/internal/container"
	"github.com/pdiddy/opsdocs/internal/convert"
)

var convertCmd = &cobra.Command{
	Use:   "convert <file.docx>...",
	Short: "Export .docx files to PDF",
	Long: `Convert exports existing .docx files to PDF by running a headless office
suite in a container (docker preferred, podman as fallback). Each PDF is
written next to its source. Files whose PDF is newer than the source are
skipped unless --force is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")

		ctx := cmd.Context()
		rt, err := container.DetectRuntime(ctx, cfg.Export.Runtime)
		if err != nil {
			return err
		}
		logger.Debug("container runtime", "name", rt.Name(), "image", cfg.Export.Image)

		conv, err := convert.NewOfficeConverter(ctx, rt, cfg.Export.Image)
		if err != nil {
			return err
		}

		result := convert.ConvertPaths(ctx, conv, args, force, os.Stdout)
		if result.HasFailures() {
			return fmt.Errorf("%d file(s) failed to export", result.Failed)
		}
		return nil
	},
}

func init() {
	convertCmd.Flags().Bool("force", false, "re-export even when the PDF is up to date")
	convertCmd.Flags().String("image", "", "office container image")
	convertCmd.Flags().String("runtime", "", "container runtime: docker or podman (default: auto-detect)")

	rootCmd.AddCommand(convertCmd)
}
