package server

import "context"

// Server defines the lifecycle of the transports managed by this package.
type Server interface {
	// RunServer binds every transport and serves until ctx is done or a
	// termination signal arrives, then shuts down gracefully. It returns the
	// first serve or bind error.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops every transport, waiting at most until ctx
	// is done.
	Shutdown(ctx context.Context) error
}
