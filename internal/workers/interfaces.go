// Package workers manages the background workers of the server.
//
// It defines the Worker interface and a Workers aggregate that starts and
// stops several workers as one.
package workers

import "context"

// Worker is a background task with an explicit lifecycle.
//
// Start must not block: implementations spawn their own goroutine and keep
// running until ctx is done or Stop is called. Stop waits for that goroutine
// to exit and is safe to call before Start.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
