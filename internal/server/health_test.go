package server_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/KirkDiggler/spix/internal/server"
)

type HealthTestSuite struct {
	suite.Suite
	health *server.Health
	conn   *grpc.ClientConn
	served chan error
}

func TestHealthSuite(t *testing.T) {
	suite.Run(t, new(HealthTestSuite))
}

func (s *HealthTestSuite) SetupTest() {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	s.Require().NoError(err)

	s.health = server.NewHealth()
	s.served = make(chan error, 1)
	go func() {
		s.served <- s.health.Serve(lis)
	}()

	s.conn, err = grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	s.Require().NoError(err)
}

func (s *HealthTestSuite) TearDownTest() {
	_ = s.conn.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s.health.Stop(ctx)

	select {
	case err := <-s.served:
		s.Assert().NoError(err)
	case <-time.After(2 * time.Second):
		s.Fail("health server did not stop")
	}
}

func (s *HealthTestSuite) check(service string) grpc_health_v1.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	resp, err := grpc_health_v1.NewHealthClient(s.conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: service})
	s.Require().NoError(err)
	return resp.GetStatus()
}

func (s *HealthTestSuite) TestStartsNotServing() {
	s.Assert().Equal(grpc_health_v1.HealthCheckResponse_NOT_SERVING, s.check(""))
	s.Assert().Equal(grpc_health_v1.HealthCheckResponse_NOT_SERVING, s.check(server.GameService))
}

func (s *HealthTestSuite) TestSetServing() {
	s.health.SetServing(true)
	s.Assert().Equal(grpc_health_v1.HealthCheckResponse_SERVING, s.check(""))
	s.Assert().Equal(grpc_health_v1.HealthCheckResponse_SERVING, s.check(server.GameService))

	s.health.SetServing(false)
	s.Assert().Equal(grpc_health_v1.HealthCheckResponse_NOT_SERVING, s.check(server.GameService))
}
