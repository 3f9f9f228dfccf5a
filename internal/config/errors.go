package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when a
// configuration group is incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, an unknown environment).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidLoggingConfigs indicates an unknown log format.
	ErrInvalidLoggingConfigs = errors.New("invalid logging configuration")
	// ErrInvalidHTTPConfigs indicates invalid outbound request tuning
	// (for example, a minimum wait above the maximum wait).
	ErrInvalidHTTPConfigs = errors.New("invalid http configuration")
	// ErrInvalidFlowConfigs indicates a malformed flow target or interval.
	ErrInvalidFlowConfigs = errors.New("invalid flow configuration")
	// ErrInvalidSecretsConfigs indicates a malformed secrets target repository.
	ErrInvalidSecretsConfigs = errors.New("invalid secrets configuration")
	// ErrInvalidServerConfigs indicates invalid listener settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
)
