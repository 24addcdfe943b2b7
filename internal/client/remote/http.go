package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/cinescribe/cinescribe/internal/common"
)

const defaultTimeout = 10 * time.Second

// HTTPStore talks to the store server's JSON API. One-shot operations go
// over plain HTTP; Observe dials the /watch websocket endpoint.
type HTTPStore struct {
	endpoint   string
	httpClient *http.Client
	dialer     *websocket.Dialer
}

var _ Store = (*HTTPStore)(nil)

func NewHTTPStore(endpoint string) *HTTPStore {
	return &HTTPStore{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		dialer:     websocket.DefaultDialer,
	}
}

func (s *HTTPStore) url(path string) string {
	return s.endpoint + "/v1/" + strings.Trim(path, "/")
}

func (s *HTTPStore) watchURL(path string) string {
	u := s.endpoint + "/watch/" + strings.Trim(path, "/")
	switch {
	case strings.HasPrefix(u, "https://"):
		return "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		return "ws://" + strings.TrimPrefix(u, "http://")
	}
	return u
}

func (s *HTTPStore) do(ctx context.Context, method, url string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: unexpected status %d for %s %s",
			common.ErrTransport, resp.StatusCode, method, url)
	}
	return resp, nil
}

func (s *HTTPStore) Write(ctx context.Context, path string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrDecode, err)
	}

	resp, err := s.do(ctx, http.MethodPut, s.url(path), bytes.NewReader(data))
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (s *HTTPStore) ReadOnce(ctx context.Context, path string) (any, error) {
	resp, err := s.do(ctx, http.MethodGet, s.url(path), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var value any
	if err := json.NewDecoder(resp.Body).Decode(&value); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDecode, err)
	}
	return value, nil
}

func (s *HTTPStore) Delete(ctx context.Context, path string) error {
	resp, err := s.do(ctx, http.MethodDelete, s.url(path), nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (s *HTTPStore) Observe(ctx context.Context, path string) (<-chan any, error) {
	conn, resp, err := s.dialer.DialContext(ctx, s.watchURL(path), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	if resp != nil {
		resp.Body.Close()
	}

	out := make(chan any, 1)

	// close the socket when the caller is done, which unblocks ReadMessage
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	go func() {
		defer close(out)
		defer conn.Close()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var value any
			if err := json.Unmarshal(data, &value); err != nil {
				continue
			}
			select {
			case out <- value:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}
