package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/spix/internal/catalog"
	"github.com/KirkDiggler/spix/internal/entities"
	"github.com/KirkDiggler/spix/internal/errors"
	"github.com/KirkDiggler/spix/internal/repositories/saves"
	"github.com/KirkDiggler/spix/internal/sheet"
)

func newSheetCmd(opts *options) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "sheet <save>",
		Short: "Print a saved character as a PDF sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			setupLogging(cmd.ErrOrStderr(), cfg.Level(slog.LevelWarn))

			repo, closeSaves, err := openSaves(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeSaves()
			if repo == nil {
				return errors.InvalidArgument("saves are disabled")
			}

			name := saves.NormalizeName(args[0])
			save, err := repo.Get(cmd.Context(), saves.GetInput{Owner: cfg.Owner, Name: name})
			if err != nil {
				return err
			}

			cat, err := catalog.Default()
			if err != nil {
				return errors.Wrap(err, "failed to load catalog")
			}
			player, err := entities.PlayerFromData(save.Snapshot.Player, cat)
			if err != nil {
				return err
			}

			pdf, err := sheet.Generate(player)
			if err != nil {
				return err
			}

			if out == "" {
				out = name + ".pdf"
			}
			if err := os.WriteFile(out, pdf, 0o600); err != nil {
				return errors.Wrapf(err, "failed to write %s", out)
			}
			slog.Info("Sheet written", "save", name, "path", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default <save>.pdf)")
	return cmd
}
