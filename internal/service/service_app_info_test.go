package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-repo-pulse/internal/config"
	"github.com/MKhiriev/go-repo-pulse/internal/logger"
	"github.com/MKhiriev/go-repo-pulse/models"
)

func TestNewAppInfoService_Success(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "1.0.0"}, models.AppBuildInfo{}, logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, svc)
}

func TestNewAppInfoService_EmptyVersion_ReturnsError(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: ""}, models.AppBuildInfo{}, logger.Nop())

	assert.Nil(t, svc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVersionIsNotSpecified))
}

func TestGetAppVersion_ReturnsConfiguredVersion(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "3.1.4"}, models.AppBuildInfo{Version: "0.0.1"}, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "3.1.4", svc.GetAppVersion(context.Background()))
}

func TestGetAppVersion_CancelledContext_StillReturnsVersion(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "1.0.0"}, models.AppBuildInfo{}, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, "1.0.0", svc.GetAppVersion(ctx))
}

func TestGetBuildInfo(t *testing.T) {
	tests := []struct {
		name  string
		build models.AppBuildInfo
		want  models.AppBuildInfo
	}{
		{
			name:  "injected metadata",
			build: models.AppBuildInfo{Date: "2026-05-01", Commit: "abc123"},
			want:  models.AppBuildInfo{Version: "v1.2.3-beta+build.42", Date: "2026-05-01", Commit: "abc123"},
		},
		{
			name:  "nothing injected",
			build: models.AppBuildInfo{},
			want:  models.AppBuildInfo{Version: "v1.2.3-beta+build.42", Date: "N/A", Commit: "N/A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewAppInfoService(config.App{Version: "v1.2.3-beta+build.42"}, tt.build, logger.Nop())
			require.NoError(t, err)

			assert.Equal(t, tt.want, svc.GetBuildInfo(context.Background()))
		})
	}
}
