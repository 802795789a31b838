// Package grpcserver exposes the standard gRPC health service for probes.
package grpcserver

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name reported alongside the overall status.
const ServiceName = "internship.v1.InternshipService"

// Prober reports readiness as "ready" or anything else.
type Prober func(ctx context.Context) (string, map[string]string)

type Server struct {
	grpcServer   *grpc.Server
	healthServer *health.Server
	probe        Prober
	interval     time.Duration
	logger       *slog.Logger
}

func New(probe Prober, interval time.Duration, logger *slog.Logger) *Server {
	grpcServer := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	healthServer.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	return &Server{
		grpcServer:   grpcServer,
		healthServer: healthServer,
		probe:        probe,
		interval:     interval,
		logger:       logger,
	}
}

// Refresh runs the probe once and publishes the result.
func (s *Server) Refresh(ctx context.Context) {
	status := grpc_health_v1.HealthCheckResponse_SERVING
	if s.probe != nil {
		if state, checks := s.probe(ctx); state != "ready" {
			s.logger.WarnContext(ctx, "gRPC health not serving", "checks", checks)
			status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
		}
	}
	s.healthServer.SetServingStatus("", status)
	s.healthServer.SetServingStatus(ServiceName, status)
}

// Serve blocks until the listener fails or Stop is called. The health status is
// refreshed every interval until ctx is done.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	s.Refresh(ctx)
	go s.watch(ctx)

	s.logger.Info("gRPC server starting", "addr", lis.Addr().String())
	if err := s.grpcServer.Serve(lis); err != nil && err != grpc.ErrServerStopped {
		return fmt.Errorf("gRPC server: %w", err)
	}
	return nil
}

func (s *Server) ListenAndServe(ctx context.Context, port string) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%s", port))
	if err != nil {
		return fmt.Errorf("failed to listen on gRPC port: %w", err)
	}
	return s.Serve(ctx, lis)
}

func (s *Server) watch(ctx context.Context) {
	if s.interval <= 0 {
		return
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}

func (s *Server) Stop() {
	s.healthServer.Shutdown()
	s.grpcServer.GracefulStop()
}
