// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app bootstraps the go-repo-pulse binaries.
//
// Every binary loads its configuration through a [config.Provider], builds a
// logger from it, owns a Prometheus registry and talks to GitHub through one
// adapter. Runtime bundles these so the commands only wire what is specific
// to them.
package app

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/MKhiriev/go-repo-pulse/internal/adapter"
	"github.com/MKhiriev/go-repo-pulse/internal/config"
	"github.com/MKhiriev/go-repo-pulse/internal/logger"
	"github.com/MKhiriev/go-repo-pulse/internal/metrics"
	"github.com/MKhiriev/go-repo-pulse/models"
)

// Runtime is the process-wide state shared by the components of a binary.
type Runtime struct {
	Provider *config.Provider
	Logger   *logger.Logger
	Registry *prometheus.Registry
	Recorder metrics.Recorder
	Build    models.AppBuildInfo
}

// Init loads the configuration from args and the environment and builds the
// runtime of the binary called role.
func Init(role string, args []string, build models.AppBuildInfo) (*Runtime, error) {
	provider, err := config.NewProvider(func() (*config.StructuredConfig, error) {
		return config.Load(args)
	})
	if err != nil {
		return nil, err
	}
	return NewRuntime(role, provider, build), nil
}

// NewRuntime builds a runtime around an already loaded provider.
func NewRuntime(role string, provider *config.Provider, build models.AppBuildInfo) *Runtime {
	cfg := provider.Current()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Runtime{
		Provider: provider,
		Logger:   NewLogger(role, cfg),
		Registry: reg,
		Recorder: metrics.NewPrometheusRecorder(reg),
		Build:    build,
	}
}

// Config returns the configuration in effect.
func (r *Runtime) Config() *config.StructuredConfig {
	return r.Provider.Current()
}

// NewGitHubAdapter creates the GitHub adapter of the process. The caller
// closes it.
func (r *Runtime) NewGitHubAdapter() (adapter.GitHubAdapter, error) {
	github, err := adapter.NewGitHubAdapter(r.Config(), r.Logger, adapter.WithMetrics(r.Recorder))
	if err != nil {
		return nil, fmt.Errorf("error creating GitHub adapter: %w", err)
	}
	return github, nil
}

// NewLogger builds the logger of role from the logging section of cfg.
func NewLogger(role string, cfg *config.StructuredConfig) *logger.Logger {
	return logger.New(role, logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Debug:  cfg.App.Debug,
	})
}

// PrintBuildInfo writes the build metadata the way every binary prints it on
// start.
func PrintBuildInfo(w io.Writer, info models.AppBuildInfo) {
	fmt.Fprintf(w, "Build version: %s\n", info.Version)
	fmt.Fprintf(w, "Build date: %s\n", info.Date)
	fmt.Fprintf(w, "Build commit: %s\n", info.Commit)
}
