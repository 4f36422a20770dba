// Package rpc поднимает gRPC health сервис для станции контроля качества.
package rpc

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName имя сервиса в ответах grpc.health.v1
const ServiceName = "garmentqc.Annotations"

// HealthServer gRPC сервер, отдающий статус по доступности базы данных
type HealthServer struct {
	server   *grpc.Server
	health   *health.Server
	check    func() error
	interval time.Duration
	logger   *logrus.Logger
}

// NewHealthServer создает сервер. check вызывается при каждом обновлении статуса.
func NewHealthServer(check func() error, interval time.Duration, logger *logrus.Logger) *HealthServer {
	hs := health.NewServer()
	server := grpc.NewServer()
	grpc_health_v1.RegisterHealthServer(server, hs)

	return &HealthServer{
		server:   server,
		health:   hs,
		check:    check,
		interval: interval,
		logger:   logger,
	}
}

// Health возвращает реализацию grpc.health.v1
func (s *HealthServer) Health() grpc_health_v1.HealthServer {
	return s.health
}

// Refresh обновляет статус по результату проверки
func (s *HealthServer) Refresh() grpc_health_v1.HealthCheckResponse_ServingStatus {
	status := grpc_health_v1.HealthCheckResponse_SERVING
	if err := s.check(); err != nil {
		s.logger.Warnf("gRPC health: база данных недоступна: %v", err)
		status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}

	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
	return status
}

// Serve обслуживает соединения на порту и периодически обновляет статус до отмены ctx
func (s *HealthServer) Serve(ctx context.Context, port int) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", port, err)
	}
	return s.ServeListener(ctx, lis)
}

// ServeListener как Serve, но на готовом listener
func (s *HealthServer) ServeListener(ctx context.Context, lis net.Listener) error {
	s.Refresh()

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				s.Stop()
				return
			case <-ticker.C:
				s.Refresh()
			}
		}
	}()

	s.logger.Infof("gRPC health сервер запущен на %s", lis.Addr())
	return s.server.Serve(lis)
}

// Stop останавливает сервер, отмечая сервис как NOT_SERVING
func (s *HealthServer) Stop() {
	s.health.Shutdown()
	s.server.GracefulStop()
}
