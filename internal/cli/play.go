package cli

import (
	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper/internal/journal"
	"github.com/vancomm/minesweeper/internal/mines"
)

type PlayOptions struct {
	Level   string
	Field   string
	Seed    uint64
	Journal string
}

func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlayOptions{}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play an interactive game",
		Long: `Play minesweeper from the terminal.

The board is chosen from the config file and environment unless --level or
--field is given. Type h during the game for the list of commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Level, "level", "l", "", "preset level (beginner|intermediate|expert)")
	cmd.Flags().StringVarP(&opts.Field, "field", "f", "", `custom field as "height:width:mines"`)
	cmd.Flags().Uint64VarP(&opts.Seed, "seed", "s", 0, "seed for reproducible layouts, 0 for random")
	cmd.Flags().StringVar(&opts.Journal, "journal", "", "append every move to this file")

	return cmd
}

func runPlay(cmd *cobra.Command, rootOpts *RootOptions, opts *PlayOptions) error {
	cfg, logger, err := rootOpts.load(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("level") {
		cfg.Level = opts.Level
		cfg.Height, cfg.Width, cfg.MineCount = 0, 0, 0
	}
	if flags.Changed("seed") {
		cfg.Seed = opts.Seed
	}
	if flags.Changed("journal") {
		cfg.Journal.File = opts.Journal
	}

	info, err := cfg.Field()
	if flags.Changed("field") {
		info, err = mines.ParseKey(opts.Field)
	}
	if err != nil {
		return err
	}

	j, err := journal.Open(cfg.Journal)
	if err != nil {
		return err
	}
	session, err := NewSession(cmd.OutOrStdout(), logger, j, info, cfg.Seed)
	if err != nil {
		j.Close()
		return err
	}
	return session.Run(cmd.Context(), cmd.InOrStdin())
}
