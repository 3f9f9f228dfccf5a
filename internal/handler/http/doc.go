// Package http implements the status API of the server.
//
// It exposes route wiring, request handlers and middleware. Request tracing,
// access logging, response compression and method checks happen in this
// package before requests are delegated to the service layer.
package http
