package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) *StructuredConfig {
	t.Helper()
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{"defaults are valid", func(*StructuredConfig) {}, nil},
		{"prod environment", func(cfg *StructuredConfig) { cfg.App.Environment = EnvironmentProd }, nil},
		{"unknown environment", func(cfg *StructuredConfig) { cfg.App.Environment = "qa" }, ErrInvalidAppConfigs},
		{"unknown log format", func(cfg *StructuredConfig) { cfg.Logging.Format = "xml" }, ErrInvalidLoggingConfigs},
		{"console format any case", func(cfg *StructuredConfig) { cfg.Logging.Format = "Console" }, nil},
		{"zero attempts", func(cfg *StructuredConfig) { cfg.HTTP.MaxAttempts = 0 }, ErrInvalidHTTPConfigs},
		{"zero timeout", func(cfg *StructuredConfig) { cfg.HTTP.Timeout = 0 }, ErrInvalidHTTPConfigs},
		{"min above max", func(cfg *StructuredConfig) { cfg.HTTP.WaitMin = 2 * time.Minute }, ErrInvalidHTTPConfigs},
		{"negative rate", func(cfg *StructuredConfig) { cfg.HTTP.RateLimit = -1 }, ErrInvalidHTTPConfigs},
		{"zero interval", func(cfg *StructuredConfig) { cfg.Flow.Interval = 0 }, ErrInvalidFlowConfigs},
		{"malformed extra target", func(cfg *StructuredConfig) { cfg.Flow.ExtraTargets = []string{"nope"} }, ErrInvalidFlowConfigs},
		{"malformed secrets target", func(cfg *StructuredConfig) { cfg.Secrets.TargetRepository = "nope" }, ErrInvalidSecretsConfigs},
		{"zero request timeout", func(cfg *StructuredConfig) { cfg.Server.RequestTimeout = 0 }, ErrInvalidServerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFlowTargets_Deduplicates(t *testing.T) {
	f := Flow{RepoOwner: "octo", RepoName: "hello", ExtraTargets: []string{"octo/hello", "a/b", "a/b"}}

	targets, err := f.Targets()

	require.NoError(t, err)
	require.Len(t, targets, 2)
	assert.Equal(t, "octo/hello", targets[0].String())
	assert.Equal(t, "a/b", targets[1].String())
}

func TestApp_Environments(t *testing.T) {
	assert.True(t, App{Environment: EnvironmentProd}.IsProduction())
	assert.False(t, App{Environment: EnvironmentDev}.IsProduction())
	assert.False(t, App{Environment: EnvironmentDev}.IsLocal())
}
