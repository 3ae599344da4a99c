package main

import (
	"github.com/arloliu/aerzip/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// globalOptions are the flags shared by every subcommand.
type globalOptions struct {
	verbose     bool
	presetsFile string

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}

	c := &cobra.Command{
		Use:           "aerzip",
		Short:         "Compress neuromorphic spike recordings",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(g.verbose)
			if err != nil {
				return err
			}
			g.logger = logger

			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if g.logger != nil {
				_ = g.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Usage()
		},
	}

	c.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable debug logging")
	c.PersistentFlags().StringVar(&g.presetsFile, "presets", "", "YAML file with additional sensor presets")

	c.AddCommand(newCompressCmd(g))
	c.AddCommand(newDecompressCmd(g))
	c.AddCommand(newInspectCmd(g))
	c.AddCommand(newPresetsCmd(g))

	return c
}

// newLogger builds a development logger at debug level when verbose, and a production
// logger otherwise.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)

	return cfg.Build()
}

// presets returns the built-in presets merged with the user's presets file, if any.
func (g *globalOptions) presets() ([]config.Preset, error) {
	presets := config.BuiltinPresets()
	if g.presetsFile == "" {
		return presets, nil
	}

	custom, err := config.LoadPresets(g.presetsFile)
	if err != nil {
		return nil, err
	}

	return config.Merge(presets, custom), nil
}
