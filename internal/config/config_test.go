package config_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/spix/internal/config"
	"github.com/KirkDiggler/spix/internal/errors"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) TestDefaults() {
	cfg, err := config.FromMap(map[string]string{})
	s.Require().NoError(err)

	s.Assert().Equal(config.BackendFile, cfg.SaveBackend)
	s.Assert().Equal("saves", cfg.SaveDir)
	s.Assert().Equal("local", cfg.Owner)
	s.Assert().Equal(":8080", cfg.ListenAddr)
	s.Assert().Equal(50051, cfg.HealthPort)
	s.Assert().Equal(32, cfg.MaxSessions)
	s.Assert().Zero(cfg.Seed)
	s.Assert().True(cfg.Transcripts)
	s.Assert().Empty(cfg.OTLPEndpoint)
	s.Assert().Equal(slog.LevelWarn, cfg.Level(slog.LevelWarn))
}

func (s *ConfigTestSuite) TestOverrides() {
	cfg, err := config.FromMap(map[string]string{
		"SPIX_SAVE_BACKEND": "redis",
		"SPIX_REDIS_ADDR":   "cache:6380",
		"SPIX_SEED":         "1234",
		"SPIX_LOG_LEVEL":    "debug",
		"SPIX_TRANSCRIPTS":  "false",
		"SPIX_MAX_SESSIONS": "2",
	})
	s.Require().NoError(err)

	s.Assert().Equal(config.BackendRedis, cfg.SaveBackend)
	s.Assert().Equal("cache:6380", cfg.RedisAddr)
	s.Assert().Equal(int64(1234), cfg.Seed)
	s.Assert().False(cfg.Transcripts)
	s.Assert().Equal(2, cfg.MaxSessions)
	s.Assert().Equal(slog.LevelDebug, cfg.Level(slog.LevelWarn))
}

func (s *ConfigTestSuite) TestRejects() {
	testCases := []struct {
		name    string
		environ map[string]string
		field   string
	}{
		{"unknown backend", map[string]string{"SPIX_SAVE_BACKEND": "floppy"}, "SPIX_SAVE_BACKEND"},
		{"file without dir", map[string]string{"SPIX_SAVE_DIR": " "}, "SPIX_SAVE_DIR"},
		{"sqlite without path", map[string]string{"SPIX_SAVE_BACKEND": "sqlite", "SPIX_SQLITE_PATH": " "}, "SPIX_SQLITE_PATH"},
		{"owner with separator", map[string]string{"SPIX_OWNER": "../root"}, "SPIX_OWNER"},
		{"port out of range", map[string]string{"SPIX_HEALTH_PORT": "70000"}, "SPIX_HEALTH_PORT"},
		{"no sessions", map[string]string{"SPIX_MAX_SESSIONS": "0"}, "SPIX_MAX_SESSIONS"},
		{"bad level", map[string]string{"SPIX_LOG_LEVEL": "chatty"}, "SPIX_LOG_LEVEL"},
		{"not a number", map[string]string{"SPIX_SEED": "lucky"}, "lucky"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := config.FromMap(tc.environ)
			s.Require().Error(err)
			s.Assert().True(errors.IsInvalidArgument(err), "got %v", err)
			s.Assert().Contains(err.Error(), tc.field)
		})
	}
}

func (s *ConfigTestSuite) TestNoneBackendNeedsNothing() {
	cfg, err := config.FromMap(map[string]string{
		"SPIX_SAVE_BACKEND": "none",
		"SPIX_SAVE_DIR":     "",
	})
	s.Require().NoError(err)
	s.Assert().Equal(config.BackendNone, cfg.SaveBackend)
}
