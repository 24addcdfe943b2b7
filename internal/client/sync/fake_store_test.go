package sync

import (
	"context"
	"strings"
	gosync "sync"
)

// fakeStore is an in-memory stand-in for the remote document store. It keeps
// every written value under its exact path and composes subtrees on read the
// way the server does, which is enough to exercise the synchronization layer
// end to end.
type fakeStore struct {
	mu        gosync.Mutex
	data      map[string]any
	writeErr  map[string]error
	readErr   map[string]error
	deleteErr map[string]error
	observers map[string][]chan any
	deletes   chan string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		data:      make(map[string]any),
		writeErr:  make(map[string]error),
		readErr:   make(map[string]error),
		deleteErr: make(map[string]error),
		observers: make(map[string][]chan any),
		deletes:   make(chan string, 16),
	}
}

func (f *fakeStore) Write(ctx context.Context, path string, value any) error {
	f.mu.Lock()
	if err := f.writeErr[path]; err != nil {
		f.mu.Unlock()
		return err
	}
	f.data[path] = value
	f.mu.Unlock()
	f.notify(path)
	return nil
}

func (f *fakeStore) ReadOnce(ctx context.Context, path string) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.readErr[path]; err != nil {
		return nil, err
	}
	return f.composeLocked(path), nil
}

func (f *fakeStore) Delete(ctx context.Context, path string) error {
	f.mu.Lock()
	if err := f.deleteErr[path]; err != nil {
		f.mu.Unlock()
		f.deletes <- path
		return err
	}
	delete(f.data, path)
	for k := range f.data {
		if strings.HasPrefix(k, path+"/") {
			delete(f.data, k)
		}
	}
	f.mu.Unlock()
	f.notify(path)
	f.deletes <- path
	return nil
}

func (f *fakeStore) Observe(ctx context.Context, path string) (<-chan any, error) {
	ch := make(chan any, 16)
	f.mu.Lock()
	f.observers[path] = append(f.observers[path], ch)
	ch <- f.composeLocked(path)
	f.mu.Unlock()
	return ch, nil
}

// notify pushes a fresh snapshot to every observer whose root overlaps the
// changed path.
func (f *fakeStore) notify(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for root, chans := range f.observers {
		if root != path &&
			!strings.HasPrefix(path, root+"/") &&
			!strings.HasPrefix(root, path+"/") {
			continue
		}
		snapshot := f.composeLocked(root)
		for _, ch := range chans {
			ch <- snapshot
		}
	}
}

func (f *fakeStore) closeObservers() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, chans := range f.observers {
		for _, ch := range chans {
			close(ch)
		}
	}
	f.observers = make(map[string][]chan any)
}

// composeLocked rebuilds the subtree rooted at path from the exact-path
// entries.
func (f *fakeStore) composeLocked(path string) any {
	var root any
	if v, ok := f.data[path]; ok {
		root = v
	}

	children := make(map[string]any)
	if m, ok := root.(map[string]any); ok {
		for k, v := range m {
			children[k] = v
		}
	}

	for k, v := range f.data {
		if !strings.HasPrefix(k, path+"/") {
			continue
		}
		insertValue(children, strings.Split(k[len(path)+1:], "/"), v)
	}

	if len(children) > 0 {
		return children
	}
	return root
}

func insertValue(m map[string]any, segs []string, v any) {
	if len(segs) == 1 {
		m[segs[0]] = v
		return
	}
	child, ok := m[segs[0]].(map[string]any)
	if !ok {
		child = make(map[string]any)
		m[segs[0]] = child
	}
	insertValue(child, segs[1:], v)
}
