package server

import (
	"context"
	"fmt"
	"net"
	"time"

	"google.golang.org/grpc"

	"github.com/MKhiriev/go-repo-pulse/internal/config"
	myGRPC "github.com/MKhiriev/go-repo-pulse/internal/handler/grpc"
	"github.com/MKhiriev/go-repo-pulse/internal/logger"
)

type grpcServer struct {
	handler *myGRPC.Handler

	server          *grpc.Server
	address         string
	gRPCNetListener net.Listener

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) *grpcServer {
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(loggingInterceptor(logger)))
	handler.Register(s)

	return &grpcServer{
		handler: handler,
		server:  s,
		address: cfg.GRPCAddress,
		logger:  logger,
	}
}

func (g *grpcServer) listen() error {
	l, err := net.Listen("tcp", g.address)
	if err != nil {
		return fmt.Errorf("gRPC server listen on %s: %w", g.address, err)
	}
	g.gRPCNetListener = l
	return nil
}

func (g *grpcServer) RunServer() error {
	if g.gRPCNetListener == nil {
		return errNotListening
	}

	g.logger.Info().Str("address", g.gRPCNetListener.Addr().String()).Msg("Launching GRPC server")
	if err := g.server.Serve(g.gRPCNetListener); err != nil {
		return fmt.Errorf("gRPC server Serve: %w", err)
	}
	return nil
}

// Shutdown reports NOT_SERVING, then stops gracefully. In-flight calls still
// running when ctx is done are cancelled.
func (g *grpcServer) Shutdown(ctx context.Context) error {
	g.logger.Info().Msg("GRPC server Shutdown")
	g.handler.Shutdown()

	stopped := make(chan struct{})
	go func() {
		g.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		return nil
	case <-ctx.Done():
		g.server.Stop()
		return fmt.Errorf("gRPC server Shutdown: %w", ctx.Err())
	}
}

func loggingInterceptor(log *logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		entry := log.Debug()
		if err != nil {
			entry = log.Warn().Err(err)
		}
		entry.Str("method", info.FullMethod).Dur("duration", time.Since(start)).Msg("gRPC call")
		return resp, err
	}
}
