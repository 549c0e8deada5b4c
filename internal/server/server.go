// Package server puts game sessions on the network. Each websocket
// connection plays its own game in its own goroutine; a small gRPC server
// reports health for whatever supervises the process.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/net/websocket"

	"github.com/KirkDiggler/spix/internal/catalog"
	"github.com/KirkDiggler/spix/internal/dice"
	"github.com/KirkDiggler/spix/internal/errors"
	"github.com/KirkDiggler/spix/internal/pkg/idgen"
	"github.com/KirkDiggler/spix/internal/repositories/saves"
	"github.com/KirkDiggler/spix/internal/scene"
	"github.com/KirkDiggler/spix/internal/scenes"
	"github.com/KirkDiggler/spix/internal/ui"
)

// PlayerCookie carries the player id that owns a browser's saves
const PlayerCookie = "spix_player"

const playerCookieMaxAge = 365 * 24 * time.Hour

// Config holds the dependencies for a Server
type Config struct {
	Catalog *catalog.Catalog
	// Saves is optional; without it the save scene refuses to save
	Saves saves.Repository
	// NewRoller gives each session its own dice. Defaults to the
	// toolkit roller.
	NewRoller   func() dice.Roller
	Script      *scenes.Script
	MaxSessions int
	// HideTranscripts starts new games with combat transcripts off
	HideTranscripts bool
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.MaxSessions < 1 {
		vb.InvalidField("MaxSessions", "must be at least 1")
	}

	return vb.Build()
}

// Server accepts websocket sessions up to a fixed cap
type Server struct {
	catalog         *catalog.Catalog
	saves           saves.Repository
	newRoller       func() dice.Roller
	script          *scenes.Script
	hideTranscripts bool

	players  *idgen.UUIDGenerator
	sessions idgen.Generator
	slots    chan struct{}

	ctx    context.Context
	cancel context.CancelFunc

	// mu orders wg.Add against Close so no session starts after Wait
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewServer creates a server with no sessions
func NewServer(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	newRoller := cfg.NewRoller
	if newRoller == nil {
		newRoller = dice.DefaultRoller
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		catalog:         cfg.Catalog,
		saves:           cfg.Saves,
		newRoller:       newRoller,
		script:          cfg.Script,
		hideTranscripts: cfg.HideTranscripts,
		players:         idgen.NewUUID("player"),
		sessions:        idgen.NewPrefixed("session"),
		slots:           make(chan struct{}, cfg.MaxSessions),
		ctx:             ctx,
		cancel:          cancel,
	}, nil
}

// Handler routes /up (liveness) and /ws (game sessions)
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/up", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// Active is the number of sessions currently playing
func (s *Server) Active() int {
	return len(s.slots)
}

// Close ends every session and waits for them to wind down
func (s *Server) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

// begin registers a session unless the server is closing
func (s *Server) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.wg.Add(1)
	return true
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !s.begin() {
		writeError(w, errors.Unavailable("server is shutting down"))
		return
	}
	defer s.wg.Done()

	select {
	case s.slots <- struct{}{}:
	default:
		slog.Warn("Session refused", "reason", "full", "max_sessions", cap(s.slots))
		writeError(w, errors.ResourceExhaustedf("all %d seats are taken", cap(s.slots)))
		return
	}

	owner, fresh := s.identify(r)
	ws := websocket.Server{
		Handshake: func(cfg *websocket.Config, _ *http.Request) error {
			if fresh {
				cookie := &http.Cookie{
					Name:     PlayerCookie,
					Value:    owner,
					Path:     "/",
					MaxAge:   int(playerCookieMaxAge.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				}
				if cfg.Header == nil {
					cfg.Header = http.Header{}
				}
				cfg.Header.Add("Set-Cookie", cookie.String())
			}
			return nil
		},
		Handler: func(conn *websocket.Conn) {
			s.serve(conn, owner)
		},
	}

	defer func() { <-s.slots }()
	ws.ServeHTTP(w, r)
}

// identify returns the player id from the cookie, or a new one when the
// cookie is missing or was not minted here
func (s *Server) identify(r *http.Request) (string, bool) {
	if c, err := r.Cookie(PlayerCookie); err == nil && s.players.Valid(c.Value) {
		return c.Value, false
	}
	return s.players.Generate(), true
}

func (s *Server) serve(conn *websocket.Conn, owner string) {
	defer func() { _ = conn.Close() }()

	logger := slog.With("session_id", s.sessions.Generate(), "owner", owner)
	logger.Info("Session connected", "remote", conn.Request().RemoteAddr, "active", s.Active())
	started := time.Now()

	transport := newWSTransport(conn)
	go transport.read()

	err := s.play(s.ctx, transport, owner)
	switch {
	case err == nil:
	case errors.IsDisconnected(err) || errors.IsCanceled(err):
		logger.Debug("Session input closed", "reason", errors.GetCode(err).String())
	default:
		logger.Error("Session failed", "error", err)
	}

	if err := transport.Send(context.Background(), ui.QuitFrame()); err != nil {
		logger.Debug("Quit frame not delivered", "error", err)
	}
	logger.Info("Session disconnected", "duration", time.Since(started).Round(time.Millisecond))
}

// play runs one game from the title screen until its stack empties
func (s *Server) play(ctx context.Context, transport ui.Transport, owner string) error {
	reg, err := scenes.NewRegistry(&scenes.Config{
		Saves:           s.saves,
		Owner:           owner,
		Script:          s.script,
		HideTranscripts: s.hideTranscripts,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create registry")
	}

	window, err := ui.NewWindow(ctx, transport)
	if err != nil {
		return errors.Wrap(err, "failed to create window")
	}

	ctl, err := scene.NewController(&scene.Config{
		Registry: reg,
		Window:   window,
		Catalog:  s.catalog,
		Roller:   s.newRoller(),
	})
	if err != nil {
		return errors.Wrap(err, "failed to create controller")
	}

	if err := ctl.Proceed(scenes.Title); err != nil {
		return err
	}
	return ctl.Run(ctx)
}

func writeError(w http.ResponseWriter, err error) {
	http.Error(w, errors.GetMessage(err), errors.GetCode(err).HTTPStatus())
}
