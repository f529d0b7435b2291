package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/opsdocs/internal/catalog"
	"github.com/pdiddy/opsdocs/pkg/types"
)

// setDefaults registers every config key with viper so environment
// variables such as OPSDOCS_GENERATE_OUTPUT_DIR are picked up.
func setDefaults() {
	d := types.DefaultConfig()
	viper.SetDefault("generate.output_dir", d.Generate.OutputDir)
	viper.SetDefault("generate.guides_dir", d.Generate.GuidesDir)
	viper.SetDefault("generate.strict", d.Generate.Strict)
	viper.SetDefault("generate.theme.body_font", d.Generate.Theme.BodyFont)
	viper.SetDefault("generate.theme.body_size", d.Generate.Theme.BodySize)
	viper.SetDefault("generate.theme.code_font", d.Generate.Theme.CodeFont)
	viper.SetDefault("generate.theme.code_size", d.Generate.Theme.CodeSize)
	viper.SetDefault("generate.theme.table_style", d.Generate.Theme.TableStyle)
	viper.SetDefault("generate.theme.warning_color", d.Generate.Theme.WarningColor)
	viper.SetDefault("generate.theme.note_color", d.Generate.Theme.NoteColor)
	viper.SetDefault("catalog.path", d.Catalog.Path)
	viper.SetDefault("catalog.disabled", d.Catalog.Disabled)
	viper.SetDefault("export.image", d.Export.Image)
	viper.SetDefault("export.runtime", d.Export.Runtime)
}

// loadConfig returns the effective configuration: defaults, then the
// config file and environment, then any flags set on cmd.
func loadConfig(cmd *cobra.Command) (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("output-dir") {
		cfg.Generate.OutputDir, _ = flags.GetString("output-dir")
	}
	if flags.Changed("guides-dir") {
		cfg.Generate.GuidesDir, _ = flags.GetString("guides-dir")
	}
	if flags.Changed("strict") {
		cfg.Generate.Strict, _ = flags.GetBool("strict")
	}
	if flags.Changed("image") {
		cfg.Export.Image, _ = flags.GetString("image")
	}
	if flags.Changed("runtime") {
		cfg.Export.Runtime, _ = flags.GetString("runtime")
	}
	return cfg, nil
}

// catalogPath returns the catalog database location for cfg.
func catalogPath(cfg types.Config) string {
	if cfg.Catalog.Path != "" {
		return cfg.Catalog.Path
	}
	return catalog.DefaultPath(cfg.Generate.OutputDir)
}
