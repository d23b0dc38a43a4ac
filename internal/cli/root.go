// Package cli implements the minesweeper command line.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/logging"
	"github.com/vancomm/minesweeper/internal/mines"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFile string
	Verbose    bool
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "minesweeper",
		Short:         "Minesweeper in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "", "YAML config file")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(NewPlayCommand(opts))
	cmd.AddCommand(NewLevelsCommand(opts))

	return cmd
}

// load reads the configuration and installs the process logger. The engine
// logs through the same logger.
func (o *RootOptions) load(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(o.ConfigFile)
	if err != nil {
		return cfg, nil, err
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return cfg, nil, err
	}
	if o.Verbose {
		level = slog.LevelDebug
	}

	logger := logging.New(cmd.ErrOrStderr(), cfg.Development, level)
	mines.Log = logger
	return cfg, logger, nil
}

func NewLevelsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List the preset levels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, l := range mines.Levels() {
				info := l.FieldInfo()
				if _, err := fmt.Fprintf(out, "%-13s %3d x %-3d %3d mines\n",
					l, info.Height, info.Width, info.MineCount); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// Execute runs the root command and reports errors on its error stream.
func Execute(ctx context.Context, cmd *cobra.Command) int {
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
		return 1
	}
	return 0
}
