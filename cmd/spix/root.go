package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/spix/internal/catalog"
	"github.com/KirkDiggler/spix/internal/config"
	"github.com/KirkDiggler/spix/internal/dice"
	"github.com/KirkDiggler/spix/internal/entities"
	"github.com/KirkDiggler/spix/internal/errors"
	"github.com/KirkDiggler/spix/internal/scene"
	"github.com/KirkDiggler/spix/internal/scenes"
	"github.com/KirkDiggler/spix/internal/telemetry"
	"github.com/KirkDiggler/spix/internal/ui"
)

// flags shared by every command; each overrides its SPIX_* variable
type options struct {
	seed     int64
	backend  string
	logLevel string
	width    int
	color    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "spix [scene] [typed-args...]",
		Short: "Legend of the Evil Spix IV: Ghosts of the Wastes",
		Long: `A text adventure played in the terminal.

With no arguments the game starts at the title screen. Naming a scene starts
there instead with a fresh character; extra arguments are passed to the
scene as typed literals such as int:3, boolean:true or string:raccoon.`,
		Example: `  spix
  spix combat raccoon
  spix barter string:Blacksmith
  SPIX_SEED=42 spix camp`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, opts, args)
		},
	}

	pf := root.PersistentFlags()
	pf.Int64Var(&opts.seed, "seed", 0, "dice seed; 0 rolls non-deterministically")
	pf.StringVar(&opts.backend, "saves", "", "save backend: none, file, redis or sqlite")
	pf.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")
	root.Flags().IntVar(&opts.width, "width", ui.DefaultWidth, "wrap width")
	root.Flags().BoolVar(&opts.color, "color", true, "clear the screen and dim secondary text when the terminal supports it")

	root.AddCommand(newServeCmd(opts), newRollCmd(opts), newSheetCmd(opts), newScrubCmd(opts))
	return root
}

// loadConfig reads the environment then applies any flags that were set
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = opts.seed
	}
	if flags.Changed("saves") {
		cfg.SaveBackend = opts.backend
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogging(w io.Writer, level slog.Level) {
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// rollerFactory gives every session the same sequence when seeded
func rollerFactory(seed int64) func() dice.Roller {
	if seed == 0 {
		return dice.DefaultRoller
	}
	return func() dice.Roller { return dice.NewSeeded(seed) }
}

func runPlay(cmd *cobra.Command, opts *options, args []string) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	// the game owns stdout; keep logs quiet unless asked
	setupLogging(cmd.ErrOrStderr(), cfg.Level(slog.LevelWarn))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Setup(ctx, cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() { _ = shutdown(context.Background()) }()

	name := scenes.Title
	var sceneArgs []any
	if len(args) > 0 {
		name = args[0]
		sceneArgs, err = scene.ParseArgs(args[1:])
		if err != nil {
			return err
		}
	}

	cat, err := catalog.Default()
	if err != nil {
		return errors.Wrap(err, "failed to load catalog")
	}

	repo, closeSaves, err := openSaves(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSaves()

	reg, err := scenes.NewRegistry(&scenes.Config{
		Saves:           repo,
		Owner:           cfg.Owner,
		HideTranscripts: !cfg.Transcripts,
	})
	if err != nil {
		return err
	}

	term := ui.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout(), ui.WithWidth(opts.width), ui.WithColor(opts.color))
	window, err := ui.NewWindow(ctx, term)
	if err != nil {
		return err
	}

	ctl, err := scene.NewController(&scene.Config{
		Registry: reg,
		Window:   window,
		Catalog:  cat,
		Roller:   rollerFactory(cfg.Seed)(),
	})
	if err != nil {
		return err
	}

	// scenes past the title expect a character to exist
	if name != scenes.Title {
		ctl.SetPlayer(entities.NewPlayer(cat))
	}
	if err := ctl.Proceed(name, sceneArgs...); err != nil {
		return err
	}

	slog.Info("Session started", "scene", name, "seed", cfg.Seed, "saves", cfg.SaveBackend)
	err = ctl.Run(ctx)
	if errors.IsDisconnected(err) || errors.IsCanceled(err) {
		return nil
	}
	return err
}
