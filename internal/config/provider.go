package config

import (
	"fmt"
	"sync"
)

// LoaderFunc produces a fresh configuration.
type LoaderFunc func() (*StructuredConfig, error)

// Provider holds the configuration of a running process. It is constructed
// once in main and passed to the components that need to observe reloads.
type Provider struct {
	mu     sync.RWMutex
	cfg    *StructuredConfig
	load   LoaderFunc
	reload []func(*StructuredConfig)
}

// NewProvider loads the configuration once with load.
func NewProvider(load LoaderFunc) (*Provider, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	return &Provider{cfg: cfg, load: load}, nil
}

// NewStaticProvider wraps an already loaded configuration. Reload re-applies
// the same value.
func NewStaticProvider(cfg *StructuredConfig) *Provider {
	return &Provider{
		cfg:  cfg,
		load: func() (*StructuredConfig, error) { return cfg, nil },
	}
}

// Current returns the configuration in effect. Callers must not modify it.
func (p *Provider) Current() *StructuredConfig {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cfg
}

// Reload loads the configuration again. On failure the previous value stays
// in effect and the error is returned.
func (p *Provider) Reload() error {
	cfg, err := p.load()
	if err != nil {
		return fmt.Errorf("error reloading config: %w", err)
	}

	p.mu.Lock()
	p.cfg = cfg
	hooks := append([]func(*StructuredConfig){}, p.reload...)
	p.mu.Unlock()

	for _, hook := range hooks {
		hook(cfg)
	}
	return nil
}

// OnReload registers fn to run after every successful Reload.
func (p *Provider) OnReload(fn func(*StructuredConfig)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reload = append(p.reload, fn)
}
