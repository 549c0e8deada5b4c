package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/spix/internal/catalog"
	"github.com/KirkDiggler/spix/internal/errors"
	"github.com/KirkDiggler/spix/internal/server"
	"github.com/KirkDiggler/spix/internal/telemetry"
)

const shutdownTimeout = 30 * time.Second

type serveOptions struct {
	addr        string
	healthPort  int
	maxSessions int
}

func newServeCmd(opts *options) *cobra.Command {
	serveOpts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve games over websockets",
		Long: `Start the websocket game server on /ws (liveness on /up) and a gRPC
health server. Every connection plays its own game.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts, serveOpts)
		},
	}

	cmd.Flags().StringVar(&serveOpts.addr, "addr", "", "websocket listen address (SPIX_LISTEN_ADDR)")
	cmd.Flags().IntVar(&serveOpts.healthPort, "health-port", 0, "gRPC health port (SPIX_HEALTH_PORT)")
	cmd.Flags().IntVar(&serveOpts.maxSessions, "max-sessions", 0, "concurrent game limit (SPIX_MAX_SESSIONS)")
	return cmd
}

func runServe(cmd *cobra.Command, opts *options, serveOpts *serveOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.ListenAddr = serveOpts.addr
	}
	if flags.Changed("health-port") {
		cfg.HealthPort = serveOpts.healthPort
	}
	if flags.Changed("max-sessions") {
		cfg.MaxSessions = serveOpts.maxSessions
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	setupLogging(cmd.ErrOrStderr(), cfg.Level(slog.LevelInfo))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	cat, err := catalog.Default()
	if err != nil {
		return errors.Wrap(err, "failed to load catalog")
	}

	repo, closeSaves, err := openSaves(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSaves()

	games, err := server.NewServer(&server.Config{
		Catalog:         cat,
		Saves:           repo,
		NewRoller:       rollerFactory(cfg.Seed),
		MaxSessions:     cfg.MaxSessions,
		HideTranscripts: !cfg.Transcripts,
	})
	if err != nil {
		return err
	}

	healthLis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.HealthPort))
	if err != nil {
		return errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to listen on health port %d", cfg.HealthPort)
	}
	health := server.NewHealth()

	httpSrv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           games.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 2)
	go func() {
		slog.Info("Health server starting", "port", cfg.HealthPort)
		if err := health.Serve(healthLis); err != nil {
			errChan <- err
		}
	}()
	go func() {
		slog.Info("Game server starting", "addr", cfg.ListenAddr, "max_sessions", cfg.MaxSessions, "saves", cfg.SaveBackend)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- errors.WrapWithCode(err, errors.CodeUnavailable, "game server stopped")
		}
	}()
	health.SetServing(true)

	var runErr error
	select {
	case <-ctx.Done():
		slog.Info("Received shutdown signal, gracefully stopping...")
	case runErr = <-errChan:
		slog.Error("Server failed", "error", runErr)
	}

	health.SetServing(false)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("Game server shutdown incomplete", "error", err)
	}
	// hijacked websocket connections are not tracked by http.Server
	games.Close()
	health.Stop(shutdownCtx)
	slog.Info("Server stopped")

	return runErr
}
