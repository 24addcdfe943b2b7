package documents

import (
	"context"
	"strings"
	"sync"

	"github.com/cinescribe/cinescribe/internal/common"
)

// MemoryRepository keeps leaves in a mutex-guarded map. It backs tests and
// zero-config runs of the store server.
type MemoryRepository struct {
	mu     sync.RWMutex
	leaves map[string][]byte
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{leaves: make(map[string][]byte)}
}

func (r *MemoryRepository) Replace(ctx context.Context, path string, ancestors []string, leaves map[string][]byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.leaves, path)
	prefix := path + "/"
	for p := range r.leaves {
		if strings.HasPrefix(p, prefix) {
			delete(r.leaves, p)
		}
	}
	for _, a := range ancestors {
		delete(r.leaves, a)
	}
	for p, v := range leaves {
		cp := make([]byte, len(v))
		copy(cp, v)
		r.leaves[p] = cp
	}
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, path string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.leaves[path]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, nil
}

func (r *MemoryRepository) ListPrefix(ctx context.Context, path string) (map[string][]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string][]byte)
	prefix := path + "/"
	for p, v := range r.leaves {
		if p == path || strings.HasPrefix(p, prefix) {
			cp := make([]byte, len(v))
			copy(cp, v)
			out[p] = cp
		}
	}
	return out, nil
}

func (r *MemoryRepository) DeletePrefix(ctx context.Context, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.leaves, path)
	prefix := path + "/"
	for p := range r.leaves {
		if strings.HasPrefix(p, prefix) {
			delete(r.leaves, p)
		}
	}
	return nil
}
