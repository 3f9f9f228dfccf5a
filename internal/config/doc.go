// Package config provides configuration loading, merging, and validation
// facilities for the go-repo-pulse binaries.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Defaults
//  2. JSON config file (CONFIG or -c)
//  3. Environment variables, including those read from a .env file
//  4. Command-line flags
//
// The main entry points are [GetStructuredConfig] and [Load]. A [Provider]
// holds the loaded configuration of a long-running process and reloads it on
// demand.
package config
