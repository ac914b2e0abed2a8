// Package server wires and runs the application's HTTP server together with
// the background workers.
//
// It handles startup, signal handling and graceful shutdown: on SIGTERM,
// SIGINT or SIGQUIT in-flight requests get ShutdownTimeout to finish and the
// workers are stopped through context cancellation.
package server
