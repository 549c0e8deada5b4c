package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/spix/internal/config"
	"github.com/KirkDiggler/spix/internal/errors"
	"github.com/KirkDiggler/spix/internal/redis"
	"github.com/KirkDiggler/spix/internal/repositories/saves"
)

func newScrubCmd(opts *options) *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "scrub",
		Short: "Find Redis saves that can no longer be loaded",
		Long: `Scan the Redis save backend for saves that fail to decode and index
entries pointing at missing saves. Nothing is changed unless --delete is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			setupLogging(cmd.ErrOrStderr(), cfg.Level(slog.LevelInfo))
			if cfg.SaveBackend != config.BackendRedis {
				return errors.InvalidArgumentf("scrub needs the redis backend, not %q", cfg.SaveBackend)
			}

			client, err := redis.Connect(cmd.Context(), cfg.RedisAddr, nil)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			report, err := saves.ScrubRedis(cmd.Context(), client, remove)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "checked %d saves\n", report.Checked)
			for _, key := range report.Corrupt {
				_, _ = fmt.Fprintf(out, "corrupt: %s\n", key)
			}
			for _, key := range report.Orphans {
				_, _ = fmt.Fprintf(out, "orphan:  %s\n", key)
			}
			switch {
			case report.Clean():
				_, _ = fmt.Fprintln(out, "no problems found")
			case report.Removed:
				_, _ = fmt.Fprintln(out, "removed")
			default:
				_, _ = fmt.Fprintln(out, "run again with --delete to remove them")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&remove, "delete", false, "remove what was found")
	return cmd
}
