package config

import "time"

// Default values applied to fields no source has set.
const (
	DefaultAppName        = "go-repo-pulse"
	DefaultAppSlug        = "repo-pulse"
	DefaultVersion        = "dev"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "json"
	DefaultHTTPTimeout    = 30 * time.Second
	DefaultUserAgent      = "go-repo-pulse"
	DefaultMaxAttempts    = 5
	DefaultWaitMultiplier = time.Second
	DefaultWaitMin        = time.Second
	DefaultWaitMax        = 60 * time.Second
	DefaultGitHubAPIURL   = "https://api.github.com"
	DefaultRepoOwner      = "PrefectHQ"
	DefaultRepoName       = "prefect"
	DefaultFlowInterval   = time.Hour
	DefaultDSN            = "pulse.db"
	DefaultHTTPAddress    = "localhost:8080"
	DefaultGRPCAddress    = "localhost:9090"
	DefaultRequestTimeout = 30 * time.Second
)

func (cfg *StructuredConfig) applyDefaults() {
	setDefault(&cfg.App.Name, DefaultAppName)
	setDefault(&cfg.App.Slug, DefaultAppSlug)
	setDefault(&cfg.App.Environment, EnvironmentLocal)
	setDefault(&cfg.App.Version, DefaultVersion)

	setDefault(&cfg.Logging.Level, DefaultLogLevel)
	setDefault(&cfg.Logging.Format, DefaultLogFormat)

	setDefault(&cfg.HTTP.Timeout, DefaultHTTPTimeout)
	setDefault(&cfg.HTTP.UserAgent, DefaultUserAgent)
	setDefault(&cfg.HTTP.MaxAttempts, DefaultMaxAttempts)
	setDefault(&cfg.HTTP.WaitMultiplier, DefaultWaitMultiplier)
	setDefault(&cfg.HTTP.WaitMin, DefaultWaitMin)
	setDefault(&cfg.HTTP.WaitMax, DefaultWaitMax)
	if cfg.HTTP.RateLimit > 0 {
		setDefault(&cfg.HTTP.RateBurst, 1)
	}

	setDefault(&cfg.GitHub.APIURL, DefaultGitHubAPIURL)

	setDefault(&cfg.Flow.RepoOwner, DefaultRepoOwner)
	setDefault(&cfg.Flow.RepoName, DefaultRepoName)
	setDefault(&cfg.Flow.Interval, DefaultFlowInterval)

	setDefault(&cfg.Storage.DB.DSN, DefaultDSN)

	setDefault(&cfg.Server.HTTPAddress, DefaultHTTPAddress)
	setDefault(&cfg.Server.GRPCAddress, DefaultGRPCAddress)
	setDefault(&cfg.Server.RequestTimeout, DefaultRequestTimeout)
}

// normalize drops development overrides unless development mode is on.
func (cfg *StructuredConfig) normalize() {
	if !cfg.Development.Enabled {
		cfg.Development = Development{}
	}
}

func setDefault[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}
