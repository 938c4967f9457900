package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// Global flags available to all subcommands.
var verbose bool

// NewRootCmd creates the root command for the harness CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retro-harness",
		Short: "Host and exercise a libretro core from the command line",
		Long: `retro-harness loads a built libretro core, drives the documented
lifecycle from the frontend side and reports what the core does. It is the
smoke-test companion for cores built on the retroglue bridge.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	// accept underscore spellings of every flag
	cmd.SetGlobalNormalizationFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	cmd.AddCommand(newInfoCmd())
	cmd.AddCommand(newRunCmd())

	return cmd
}

// newLogger builds the CLI logger honoring the verbose flag.
func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	return cfg.Build()
}
