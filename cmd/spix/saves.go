package main

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/spix/internal/config"
	"github.com/KirkDiggler/spix/internal/errors"
	"github.com/KirkDiggler/spix/internal/redis"
	"github.com/KirkDiggler/spix/internal/repositories/saves"
)

// openSaves builds the configured save backend. The returned func releases
// it; it is safe to call when the repository is nil.
func openSaves(ctx context.Context, cfg *config.Config) (saves.Repository, func(), error) {
	noop := func() {}

	switch cfg.SaveBackend {
	case config.BackendNone:
		return nil, noop, nil

	case config.BackendFile:
		repo, err := saves.NewFile(&saves.FileConfig{Dir: cfg.SaveDir})
		if err != nil {
			return nil, noop, errors.Wrap(err, "failed to create file saves")
		}
		return repo, noop, nil

	case config.BackendRedis:
		client, err := redis.Connect(ctx, cfg.RedisAddr, nil)
		if err != nil {
			return nil, noop, err
		}
		repo, err := saves.NewRedis(&saves.RedisConfig{Client: client})
		if err != nil {
			_ = client.Close()
			return nil, noop, errors.Wrap(err, "failed to create redis saves")
		}
		return repo, func() {
			if err := client.Close(); err != nil {
				slog.Warn("Failed to close redis client", "error", err)
			}
		}, nil

	case config.BackendSQLite:
		repo, err := saves.OpenSQLite(&saves.SQLiteConfig{Path: cfg.SQLitePath})
		if err != nil {
			return nil, noop, errors.Wrap(err, "failed to open sqlite saves")
		}
		return repo, func() {
			if err := repo.Close(); err != nil {
				slog.Warn("Failed to close sqlite saves", "error", err)
			}
		}, nil

	default:
		return nil, noop, errors.InvalidArgumentf("unknown save backend %q", cfg.SaveBackend)
	}
}
