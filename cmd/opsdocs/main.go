// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the opsdocs CLI, which generates
// Word installation and operations guides for infrastructure services.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is configured from --verbose before any command runs.
var logger = slog.New(slog.DiscardHandler)

// rootCmd is the base command for the opsdocs CLI.
var rootCmd = &cobra.Command{
	Use:   "opsdocs",
	Short: "Generate Word installation guides for infrastructure services",
	Long: `opsdocs builds formatted .docx installation and operations guides for
Redis, RabbitMQ and other services from Markdown guide sources.

Three guides are built in. A guides directory can add new guides or replace
a built-in one. Every generation is recorded in a local catalog, and the
generated documents can optionally be exported to PDF through a headless
office container.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Debug("config loaded", "file", f)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./opsdocs.yaml or ~/.config/opsdocs/opsdocs.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("opsdocs")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "opsdocs"))
		}
	}

	setDefaults()
	viper.SetEnvPrefix("OPSDOCS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
