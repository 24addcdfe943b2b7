package store

import (
	"context"
	"sync"
)

// watcher delivers subtree snapshots to a single subscriber. Offers coalesce:
// if the subscriber lags, intermediate snapshots are replaced by newer ones
// so the latest state is never lost.
type watcher struct {
	path string
	out  chan any

	mu      sync.Mutex
	pending any
	dirty   bool
	wake    chan struct{}
}

func newWatcher(path string) *watcher {
	return &watcher{
		path: path,
		out:  make(chan any, 1),
		wake: make(chan struct{}, 1),
	}
}

// offer records the newest snapshot and wakes the delivery loop.
func (w *watcher) offer(snap any) {
	w.mu.Lock()
	w.pending = snap
	w.dirty = true
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// run pumps pending snapshots to the subscriber until ctx is cancelled,
// then closes the output channel.
func (w *watcher) run(ctx context.Context) {
	defer close(w.out)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.wake:
		}

		for {
			w.mu.Lock()
			if !w.dirty {
				w.mu.Unlock()
				break
			}
			snap := w.pending
			w.dirty = false
			w.mu.Unlock()

			select {
			case <-ctx.Done():
				return
			case w.out <- snap:
			}
		}
	}
}
