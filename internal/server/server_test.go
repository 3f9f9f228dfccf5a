package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/go-repo-pulse/internal/config"
	"github.com/MKhiriev/go-repo-pulse/internal/handler"
	"github.com/MKhiriev/go-repo-pulse/internal/logger"
	"github.com/MKhiriev/go-repo-pulse/internal/service"
)

var localAddrs = config.Server{HTTPAddress: "127.0.0.1:0", GRPCAddress: "127.0.0.1:0"}

func newTestServer(t *testing.T, cfg config.Server) *server {
	t.Helper()
	handlers, err := handler.NewHandlers(&service.Services{}, nil, nil, cfg, logger.Nop())
	require.NoError(t, err)

	s, err := NewServer(handlers, cfg, logger.Nop())
	require.NoError(t, err)
	return s.(*server)
}

func TestNewServer_NoServers(t *testing.T) {
	_, err := NewServer(&handler.Handlers{}, config.Server{}, logger.Nop())

	assert.ErrorIs(t, err, errNoServersAreCreated)
}

func TestNewServer_OnlyHTTP(t *testing.T) {
	s := newTestServer(t, config.Server{HTTPAddress: "127.0.0.1:0"})

	assert.NotNil(t, s.httpServer)
	assert.Nil(t, s.gRPCServer)
}

func TestServer_ServesAndShutsDown(t *testing.T) {
	s := newTestServer(t, localAddrs)
	require.NoError(t, s.listen())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.serve(ctx) }()

	httpAddr := s.httpServer.listener.Addr().String()
	resp, err := http.Get("http://" + httpAddr + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"ok"`)

	conn, err := grpc.NewClient(s.gRPCServer.gRPCNetListener.Addr().String(),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	checkCtx, checkCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer checkCancel()
	hc, err := healthpb.NewHealthClient(conn).Check(checkCtx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, hc.GetStatus())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	_, err = http.Get("http://" + httpAddr + "/healthz")
	assert.Error(t, err)
}

func TestServer_ListenFailsOnTakenPort(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()

	cfg := config.Server{HTTPAddress: "127.0.0.1:0", GRPCAddress: taken.Addr().String()}
	s := newTestServer(t, cfg)

	err = s.RunServer(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "gRPC server listen")
}

func TestHTTPServer_RunWithoutListen(t *testing.T) {
	h := newHTTPServer(http.NotFoundHandler(), config.Server{HTTPAddress: "127.0.0.1:0"}, logger.Nop())

	assert.ErrorIs(t, h.RunServer(), errNotListening)
}
