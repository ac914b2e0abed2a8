// Package workers provides the background workers of the application and
// a Workers aggregate that runs them together until the context is done.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run blocks until ctx is cancelled or the worker has nothing to do.
type Worker interface {
	Run(ctx context.Context)
}
