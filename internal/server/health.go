package server

import (
	"context"
	"log/slog"
	"net"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/KirkDiggler/spix/internal/errors"
)

// GameService is the health service name reported alongside the overall
// server status
const GameService = "spix.Game"

// Health is a gRPC server carrying only health checks and reflection
type Health struct {
	srv    *grpc.Server
	health *health.Server
}

// NewHealth creates a health server reporting NOT_SERVING until SetServing
func NewHealth() *Health {
	logger := grpc_logging.LoggerFunc(logFunc)
	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(logger),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(logger),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	hs := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, hs)
	reflection.Register(srv)

	h := &Health{srv: srv, health: hs}
	h.SetServing(false)
	return h
}

// SetServing flips the reported status of the server and the game service
func (h *Health) SetServing(serving bool) {
	status := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if serving {
		status = grpc_health_v1.HealthCheckResponse_SERVING
	}
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(GameService, status)
}

// Serve blocks accepting connections on lis until Stop
func (h *Health) Serve(lis net.Listener) error {
	if err := h.srv.Serve(lis); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "health server stopped")
	}
	return nil
}

// Stop drains in-flight calls, forcing the stop if ctx ends first
func (h *Health) Stop(ctx context.Context) {
	h.health.Shutdown()

	stopped := make(chan struct{})
	go func() {
		h.srv.GracefulStop()
		close(stopped)
	}()

	select {
	case <-ctx.Done():
		slog.Warn("Graceful shutdown timeout exceeded, forcing stop")
		h.srv.Stop()
	case <-stopped:
	}
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Log(ctx, slog.Level(level), msg, fields...)
}
