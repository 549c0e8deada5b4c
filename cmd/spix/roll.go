package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/spix/internal/dice"
	"github.com/KirkDiggler/spix/internal/errors"
)

func newRollCmd(opts *options) *cobra.Command {
	var (
		modifier int
		times    int
	)

	cmd := &cobra.Command{
		Use:   "roll <spec>",
		Short: "Roll dice, e.g. 3d6, d4 or 6",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if times < 1 {
				return errors.InvalidArgumentf("times must be at least 1, got %d", times)
			}

			d, err := dice.Parse(args[0])
			if err != nil {
				return err
			}

			roller := dice.DefaultRoller()
			if opts.seed != 0 {
				roller = dice.NewSeeded(opts.seed)
			}

			for range times {
				roll, err := d.Roll(roller, modifier)
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), roll.String()); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&modifier, "mod", "m", 0, "added to each total")
	cmd.Flags().IntVarP(&times, "times", "n", 1, "how many rolls")
	return cmd
}
