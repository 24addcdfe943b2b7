// Package imagecache memoizes poster downloads by exact URL string. One
// successful fetch per URL; no eviction, no size bound.
package imagecache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/cinescribe/cinescribe/internal/common"
)

const defaultTimeout = 15 * time.Second

type Cache struct {
	httpClient *http.Client

	mu     sync.Mutex
	images map[string][]byte
}

func New() *Cache {
	return &Cache{
		httpClient: &http.Client{Timeout: defaultTimeout},
		images:     make(map[string][]byte),
	}
}

// Fetch returns the image bytes for url, from cache when available. A failed
// download is not cached, so the next call retries. Concurrent calls for the
// same uncached URL may each trigger a download; the last writer wins, which
// is harmless since the payload is identical.
func (c *Cache) Fetch(ctx context.Context, url string) ([]byte, error) {
	c.mu.Lock()
	if data, ok := c.images[url]; ok {
		c.mu.Unlock()
		return data, nil
	}
	c.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrTransport, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d fetching %s",
			common.ErrTransport, resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrTransport, err)
	}

	c.mu.Lock()
	c.images[url] = data
	c.mu.Unlock()
	return data, nil
}

// Len reports how many images are cached.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.images)
}
