// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"strings"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants before it is used at startup. Every violated group is reported.
func (cfg *StructuredConfig) validate() error {
	return errors.Join(
		cfg.validateApp(),
		cfg.validateLogging(),
		cfg.validateHTTP(),
		cfg.validateFlow(),
		cfg.validateSecrets(),
		cfg.validateServer(),
	)
}

func (cfg *StructuredConfig) validateApp() error {
	switch cfg.App.Environment {
	case EnvironmentLocal, EnvironmentDev, EnvironmentProd:
		return nil
	default:
		return fmt.Errorf("%w: unknown environment %q", ErrInvalidAppConfigs, cfg.App.Environment)
	}
}

func (cfg *StructuredConfig) validateLogging() error {
	switch strings.ToLower(cfg.Logging.Format) {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("%w: unknown format %q", ErrInvalidLoggingConfigs, cfg.Logging.Format)
	}
}

func (cfg *StructuredConfig) validateHTTP() error {
	h := cfg.HTTP
	switch {
	case h.Timeout <= 0:
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidHTTPConfigs)
	case h.MaxAttempts < 1:
		return fmt.Errorf("%w: max attempts must be at least 1", ErrInvalidHTTPConfigs)
	case h.WaitMultiplier <= 0 || h.WaitMin < 0 || h.WaitMax <= 0:
		return fmt.Errorf("%w: waits must be positive", ErrInvalidHTTPConfigs)
	case h.WaitMin > h.WaitMax:
		return fmt.Errorf("%w: wait min %s exceeds wait max %s", ErrInvalidHTTPConfigs, h.WaitMin, h.WaitMax)
	case h.RateLimit < 0 || h.RateBurst < 0:
		return fmt.Errorf("%w: rate limit must not be negative", ErrInvalidHTTPConfigs)
	}
	return nil
}

func (cfg *StructuredConfig) validateFlow() error {
	if cfg.Flow.Interval <= 0 {
		return fmt.Errorf("%w: interval must be positive", ErrInvalidFlowConfigs)
	}
	if _, err := cfg.Flow.Targets(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFlowConfigs, err)
	}
	return nil
}

func (cfg *StructuredConfig) validateSecrets() error {
	if cfg.Secrets.TargetRepository == "" {
		return nil
	}
	if _, err := cfg.Secrets.Target(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSecretsConfigs, err)
	}
	return nil
}

func (cfg *StructuredConfig) validateServer() error {
	if cfg.Server.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidServerConfigs)
	}
	return nil
}
