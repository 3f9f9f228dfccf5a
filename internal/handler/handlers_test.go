package handler

import (
	nethttp "net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-repo-pulse/internal/config"
	"github.com/MKhiriev/go-repo-pulse/internal/logger"
	"github.com/MKhiriev/go-repo-pulse/internal/mock"
	"github.com/MKhiriev/go-repo-pulse/internal/service"
)

// newTestServices returns a nil *service.Services. Both constructors only
// store the pointer, so nil is safe for construction-time tests.
func newTestServices() *service.Services {
	return nil
}

func TestNewHandlers(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Server
		wantHTTP bool
		wantGRPC bool
		wantErr  error
	}{
		{
			name:     "both addresses",
			cfg:      config.Server{HTTPAddress: ":8080", GRPCAddress: ":9090"},
			wantHTTP: true,
			wantGRPC: true,
		},
		{
			name:     "only HTTP",
			cfg:      config.Server{HTTPAddress: ":8080"},
			wantHTTP: true,
		},
		{
			name:     "only gRPC",
			cfg:      config.Server{GRPCAddress: ":9090"},
			wantGRPC: true,
		},
		{
			name:    "no addresses",
			cfg:     config.Server{},
			wantErr: errNoHandlersAreCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewHandlers(newTestServices(), nil, nil, tt.cfg, logger.Nop())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, h)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHTTP, h.HTTP != nil)
			assert.Equal(t, tt.wantGRPC, h.GRPC != nil)
		})
	}
}

func TestNewHandlers_WiresJobAndMetrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	job := mock.NewMockFlowJob(ctrl)
	job.EXPECT().Healthy().Return(true).AnyTimes()
	metrics := nethttp.NotFoundHandler()

	h, err := NewHandlers(newTestServices(), job, metrics, config.Server{HTTPAddress: ":8080", GRPCAddress: ":9090"}, logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, h.HTTP)
	require.NotNil(t, h.GRPC)

	assert.NotPanics(t, func() { h.GRPC.Sync() })
	assert.NotNil(t, h.HTTP.Init())
}
