// Package documents persists the leaf rows of the document tree. A row is a
// full slash-joined path plus the JSON encoding of the scalar stored there.
package documents

import "context"

// Repository is the persistence contract for document leaves.
type Repository interface {
	// Replace atomically removes the subtree rooted at path together with
	// any scalar leaves sitting on the listed ancestor paths, then inserts
	// the given leaves (keyed by absolute path).
	Replace(ctx context.Context, path string, ancestors []string, leaves map[string][]byte) error

	// Get returns the leaf stored exactly at path, or common.ErrNotFound.
	Get(ctx context.Context, path string) ([]byte, error)

	// ListPrefix returns all leaves at path or below it, keyed by absolute path.
	ListPrefix(ctx context.Context, path string) (map[string][]byte, error)

	// DeletePrefix removes the leaf at path and every leaf below it.
	// Deleting a missing subtree is not an error.
	DeletePrefix(ctx context.Context, path string) error
}
