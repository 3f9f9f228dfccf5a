package config

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_ReloadSwapsConfig(t *testing.T) {
	versions := []string{"1", "2"}
	calls := 0
	p, err := NewProvider(func() (*StructuredConfig, error) {
		cfg := &StructuredConfig{App: App{Version: versions[calls]}}
		calls++
		return cfg, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "1", p.Current().App.Version)

	var seen string
	p.OnReload(func(cfg *StructuredConfig) { seen = cfg.App.Version })

	require.NoError(t, p.Reload())
	assert.Equal(t, "2", p.Current().App.Version)
	assert.Equal(t, "2", seen)
}

func TestProvider_FailedReloadKeepsPrevious(t *testing.T) {
	fail := false
	p, err := NewProvider(func() (*StructuredConfig, error) {
		if fail {
			return nil, assert.AnError
		}
		return &StructuredConfig{App: App{Version: "stable"}}, nil
	})
	require.NoError(t, err)

	fail = true
	assert.ErrorIs(t, p.Reload(), assert.AnError)
	assert.Equal(t, "stable", p.Current().App.Version)
}

func TestNewProvider_InitialLoadError(t *testing.T) {
	_, err := NewProvider(func() (*StructuredConfig, error) { return nil, assert.AnError })
	assert.ErrorIs(t, err, assert.AnError)
}

func TestProvider_ConcurrentAccess(t *testing.T) {
	p := NewStaticProvider(&StructuredConfig{App: App{Version: "static"}})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.Equal(t, "static", p.Current().App.Version)
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, p.Reload())
		}()
	}
	wg.Wait()
}
