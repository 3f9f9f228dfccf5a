// Package metrics defines the observability hooks of the request layer and the
// flow runner together with a Prometheus implementation.
//
// Components depend on the Recorder interface; NoopRecorder is the default
// when no registry is configured.
package metrics
