// Package remote provides the client-side view of the document store: a
// small path-addressed API for writing, reading, observing and deleting
// JSON values.
package remote

import "context"

// Store is the transport seam between the synchronization layer and the
// server. Values follow encoding/json conventions: maps, slices, strings,
// float64, bool and nil.
type Store interface {
	// Write replaces the value at path with value.
	Write(ctx context.Context, path string, value any) error

	// ReadOnce returns the current value at path, or nil when the path
	// does not exist.
	ReadOnce(ctx context.Context, path string) (any, error)

	// Observe subscribes to the subtree at path. The channel delivers the
	// current value immediately and a fresh snapshot after every change
	// under path. It is closed when ctx is cancelled or the connection is
	// lost.
	Observe(ctx context.Context, path string) (<-chan any, error)

	// Delete removes the subtree at path. Deleting a missing path is not
	// an error.
	Delete(ctx context.Context, path string) error
}
