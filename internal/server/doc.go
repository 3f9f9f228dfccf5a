// Package server wires and runs the transport servers of the status API.
//
// It manages the HTTP and gRPC server lifecycles: binding, serving, signal
// handling and graceful shutdown of every enabled transport.
package server
