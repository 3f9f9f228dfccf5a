package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the configuration flags in args. Positional arguments
// left after the flags are returned in Args.
//
// Flags:
//
//	-a status API address in format [host]:[port]
//	-grpc-address grpc server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-request-timeout inbound request timeout (e.g., "30s", "1m")
//	-env environment (local, dev, prod)
//	-log-level log level
//	-log-format log format (json, console)
//	-owner flow repository owner
//	-repo flow repository name
//	-interval flow job interval (e.g., "1h")
//	-max-attempts outbound request attempts
func ParseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress, grpcServerAddress NetAddress
	var (
		databaseDSN    string
		jsonConfigPath string
		requestTimeout time.Duration
		environment    string
		logLevel       string
		logFormat      string
		repoOwner      string
		repoName       string
		interval       time.Duration
		maxAttempts    int
	)

	fs := flag.NewFlagSet("go-repo-pulse", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&environment, "env", "", "Environment: local, dev or prod")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&logFormat, "log-format", "", "Log format: json or console")
	fs.StringVar(&repoOwner, "owner", "", "Flow repository owner")
	fs.StringVar(&repoName, "repo", "", "Flow repository name")
	fs.DurationVar(&interval, "interval", 0, "Flow job interval (e.g., 1h)")
	fs.IntVar(&maxAttempts, "max-attempts", 0, "Outbound request attempts")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			Environment: environment,
		},
		Logging: Logging{
			Level:  logLevel,
			Format: logFormat,
		},
		HTTP: HTTP{
			MaxAttempts: maxAttempts,
		},
		Flow: Flow{
			RepoOwner: repoOwner,
			RepoName:  repoName,
			Interval:  interval,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			GRPCAddress:    grpcServerAddress.String(),
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
		Args:         fs.Args(),
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// It returns an empty string when neither Host nor Port are set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range and checks IP correctness unless the host is
// "localhost" or empty (all interfaces).
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be between 1 and 65535")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
