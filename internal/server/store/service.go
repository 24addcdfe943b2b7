// Package store implements the hierarchical document tree behind the four
// remote primitives. A write replaces the subtree at its path, a read
// composes the subtree into a nested value, and watchers receive a full
// snapshot of their subtree after every overlapping change.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/cinescribe/cinescribe/internal/logging"
	"github.com/cinescribe/cinescribe/internal/server/repositories/documents"
)

// Service owns tree mutation and watcher fan-out. Mutations are serialized
// so every watcher observes snapshots in write order.
type Service struct {
	repo documents.Repository
	log  logging.Logger

	mu       sync.Mutex
	watchers map[int64]*watcher
	nextID   int64
}

func NewService(repo documents.Repository, log logging.Logger) *Service {
	return &Service{
		repo:     repo,
		log:      log,
		watchers: make(map[int64]*watcher),
	}
}

// Put replaces the subtree at path with value. Object values decompose into
// scalar leaves; scalar leaves left on ancestor paths are removed so the
// parent becomes an object node. A nil value or empty object acts as a
// delete of the subtree.
func (s *Service) Put(ctx context.Context, path string, value any) error {
	path, err := CleanPath(path)
	if err != nil {
		return err
	}

	rel := make(map[string]any)
	if err := flatten("", value, rel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	leaves := make(map[string][]byte, len(rel))
	for p, v := range rel {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		abs := path
		if p != "" {
			abs = path + "/" + p
		}
		leaves[abs] = raw
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Replace(ctx, path, ancestors(path), leaves); err != nil {
		return err
	}
	s.notifyLocked(ctx, path)
	return nil
}

// Get composes the subtree at path. A missing path yields nil, not an error.
func (s *Service) Get(ctx context.Context, path string) (any, error) {
	path, err := CleanPath(path)
	if err != nil {
		return nil, err
	}
	return s.snapshot(ctx, path)
}

// Delete removes the subtree at path. Deleting a missing path is a no-op.
func (s *Service) Delete(ctx context.Context, path string) error {
	path, err := CleanPath(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.DeletePrefix(ctx, path); err != nil {
		return err
	}
	s.notifyLocked(ctx, path)
	return nil
}

// Watch returns a snapshot stream for the subtree at path. The current
// snapshot is delivered first, then a fresh one after every overlapping
// Put or Delete. Intermediate snapshots may be coalesced for slow readers;
// the latest state is always delivered. The channel closes when ctx is
// cancelled.
func (s *Service) Watch(ctx context.Context, path string) (<-chan any, error) {
	path, err := CleanPath(path)
	if err != nil {
		return nil, err
	}

	w := newWatcher(path)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.watchers[id] = w

	snap, err := s.snapshot(ctx, path)
	if err != nil {
		delete(s.watchers, id)
		s.mu.Unlock()
		return nil, err
	}
	w.offer(snap)
	s.mu.Unlock()

	go func() {
		w.run(ctx)
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
	}()

	return w.out, nil
}

// snapshot reads and composes the subtree rooted at path.
func (s *Service) snapshot(ctx context.Context, path string) (any, error) {
	leaves, err := s.repo.ListPrefix(ctx, path)
	if err != nil {
		return nil, err
	}
	return compose(path, leaves)
}

// notifyLocked refreshes every watcher whose subtree overlaps the changed
// path. Caller holds s.mu.
func (s *Service) notifyLocked(ctx context.Context, changed string) {
	for _, w := range s.watchers {
		if !overlaps(changed, w.path) {
			continue
		}
		snap, err := s.snapshot(ctx, w.path)
		if err != nil {
			s.log.Warn(ctx, "watcher snapshot failed", "path", w.path, "error", err)
			continue
		}
		w.offer(snap)
	}
}
