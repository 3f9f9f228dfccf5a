// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/MKhiriev/go-repo-pulse/models"
)

// StructuredConfig is the top-level configuration container for the
// go-repo-pulse binaries. It aggregates all sub-configurations and is
// populated by merging values from a .env file, environment variables,
// command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	App         App         `envPrefix:"APP_"`
	Logging     Logging     `envPrefix:"LOGGING_"`
	Development Development `envPrefix:"DEVELOPMENT_"`
	HTTP        HTTP        `envPrefix:"HTTP_"`
	GitHub      GitHub      `envPrefix:"GITHUB_"`
	Flow        Flow        `envPrefix:"FLOW_"`
	Secrets     Secrets     `envPrefix:"SECRETS_"`
	Storage     Storage     `envPrefix:"STORAGE_"`
	Server      Server      `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`

	// Args holds the positional command-line arguments left after flags.
	Args []string
}

// Environments accepted by App.Environment.
const (
	EnvironmentLocal = "local"
	EnvironmentDev   = "dev"
	EnvironmentProd  = "prod"
)

// App holds application identity settings.
type App struct {
	// Env: APP_NAME
	Name string `env:"NAME"`
	// Env: APP_SLUG
	Slug string `env:"SLUG"`
	// Environment is one of local, dev or prod.
	// Env: APP_ENVIRONMENT
	Environment string `env:"ENVIRONMENT"`
	// Debug forces debug logging.
	// Env: APP_DEBUG
	Debug bool `env:"DEBUG"`
	// Version is exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// IsProduction reports whether the binaries run in the prod environment.
func (a App) IsProduction() bool {
	return a.Environment == EnvironmentProd
}

// IsLocal reports whether the binaries run on a developer machine.
func (a App) IsLocal() bool {
	return a.Environment == EnvironmentLocal
}

// Logging selects the level and the output format of every logger.
type Logging struct {
	// Env: LOGGING_LEVEL
	Level string `env:"LEVEL"`
	// Format is "json" or "console".
	// Env: LOGGING_FORMAT
	Format string `env:"FORMAT"`
}

// Development holds overrides that only apply when Enabled is true; otherwise
// every other field is zeroed after loading.
type Development struct {
	// Env: DEVELOPMENT_ENABLED
	Enabled bool `env:"ENABLED"`
	// GitHubAPIURL points the GitHub adapter at a local stub.
	// Env: DEVELOPMENT_GITHUB_API_URL
	GitHubAPIURL string `env:"GITHUB_API_URL"`
	// DumpResponses logs every upstream response body at debug level.
	// Env: DEVELOPMENT_DUMP_RESPONSES
	DumpResponses bool `env:"DUMP_RESPONSES"`
}

// HTTP tunes the outbound request layer.
type HTTP struct {
	// Timeout bounds a single attempt.
	// Env: HTTP_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`
	// Env: HTTP_USER_AGENT
	UserAgent string `env:"USER_AGENT"`
	// Env: HTTP_MAX_ATTEMPTS
	MaxAttempts int `env:"MAX_ATTEMPTS"`
	// Env: HTTP_WAIT_MULTIPLIER
	WaitMultiplier time.Duration `env:"WAIT_MULTIPLIER"`
	// Env: HTTP_WAIT_MIN
	WaitMin time.Duration `env:"WAIT_MIN"`
	// Env: HTTP_WAIT_MAX
	WaitMax time.Duration `env:"WAIT_MAX"`
	// RateLimit is the number of requests per second, 0 means unlimited.
	// Env: HTTP_RATE_LIMIT
	RateLimit float64 `env:"RATE_LIMIT"`
	// Env: HTTP_RATE_BURST
	RateBurst int `env:"RATE_BURST"`
}

// GitHub holds the upstream API settings.
type GitHub struct {
	// Env: GITHUB_API_URL
	APIURL string `env:"API_URL"`
	// Token is sent as a bearer token when set.
	// Env: GITHUB_TOKEN
	Token string `env:"TOKEN"`
}

// Flow configures the repository statistics flow.
type Flow struct {
	// Env: FLOW_REPO_OWNER
	RepoOwner string `env:"REPO_OWNER"`
	// Env: FLOW_REPO_NAME
	RepoName string `env:"REPO_NAME"`
	// Interval is the period of the flow job of the server.
	// Env: FLOW_INTERVAL
	Interval time.Duration `env:"INTERVAL"`
	// ExtraTargets lists additional owner/name repositories.
	// Env: FLOW_TARGETS (comma separated)
	ExtraTargets []string `env:"TARGETS"`
}

// Targets returns the primary repository followed by the extra targets,
// without duplicates.
func (f Flow) Targets() ([]models.Target, error) {
	seen := make(map[models.Target]struct{}, len(f.ExtraTargets)+1)
	targets := make([]models.Target, 0, len(f.ExtraTargets)+1)

	add := func(t models.Target) {
		if _, ok := seen[t]; ok {
			return
		}
		seen[t] = struct{}{}
		targets = append(targets, t)
	}

	if f.RepoOwner != "" || f.RepoName != "" {
		add(models.Target{Owner: f.RepoOwner, Name: f.RepoName})
	}
	for _, raw := range f.ExtraTargets {
		t, err := models.ParseTarget(raw)
		if err != nil {
			return nil, err
		}
		add(t)
	}

	return targets, nil
}

// Secrets holds the values pushed to GitHub Actions by cmd/secrets.
type Secrets struct {
	// TargetRepository is the owner/name repository receiving the secrets.
	// Env: SECRETS_TARGET_REPOSITORY
	TargetRepository string `env:"TARGET_REPOSITORY"`
	// Env: SECRETS_GIT_ACCESS_TOKEN
	GitAccessToken string `env:"GIT_ACCESS_TOKEN"`
	// Env: SECRETS_GIT_REPOSITORY_LINK
	GitRepositoryLink string `env:"GIT_REPOSITORY_LINK"`
	// Env: SECRETS_DOCKER_USERNAME
	DockerUsername string `env:"DOCKER_USERNAME"`
	// Env: SECRETS_DOCKER_PASSWORD
	DockerPassword string `env:"DOCKER_PASSWORD"`
}

// Target parses TargetRepository.
func (s Secrets) Target() (models.Target, error) {
	return models.ParseTarget(s.TargetRepository)
}

// Storage groups the configuration of the persistence backends.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN selects the backend: a postgres:// or postgresql:// URL opens
	// PostgreSQL, anything else is a SQLite file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address of the status API, "host:port".
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address of the gRPC health service.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// GitHubAPIURL returns the development override when set, the configured
// API URL otherwise.
func (cfg *StructuredConfig) GitHubAPIURL() string {
	if cfg.Development.Enabled && cfg.Development.GitHubAPIURL != "" {
		return cfg.Development.GitHubAPIURL
	}
	return cfg.GitHub.APIURL
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources using the process arguments.
func GetStructuredConfig() (*StructuredConfig, error) {
	return Load(os.Args[1:])
}

// Load builds the configuration from args and the environment. Precedence,
// lowest first: defaults, JSON file, environment (including .env), flags.
func Load(args []string) (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withDotEnv().
		withEnv().
		withFlags(args).
		withJSON().
		build()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return cfg, nil
}
