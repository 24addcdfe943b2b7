package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinescribe/cinescribe/internal/common"
)

func TestHTTPStore_WriteAndReadOnce(t *testing.T) {
	var mu sync.Mutex
	var gotMethod, gotPath string
	var gotBody any

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		gotMethod = r.Method
		gotPath = r.URL.Path

		switch r.Method {
		case http.MethodPut:
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok"}`))
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"title":"Noir Classics"}`))
		}
	}))
	defer ts.Close()

	s := NewHTTPStore(ts.URL)
	ctx := context.Background()

	err := s.Write(ctx, "collections/c1", map[string]any{"title": "Noir Classics"})
	require.NoError(t, err)

	mu.Lock()
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/v1/collections/c1", gotPath)
	assert.Equal(t, map[string]any{"title": "Noir Classics"}, gotBody)
	mu.Unlock()

	value, err := s.ReadOnce(ctx, "collections/c1")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"title": "Noir Classics"}, value)
}

func TestHTTPStore_ReadOnce_MissingPathIsNil(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`null`))
	}))
	defer ts.Close()

	s := NewHTTPStore(ts.URL)
	value, err := s.ReadOnce(context.Background(), "users/nobody")
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestHTTPStore_Delete(t *testing.T) {
	var gotMethod, gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer ts.Close()

	s := NewHTTPStore(ts.URL)
	err := s.Delete(context.Background(), "reviews/r1")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/v1/reviews/r1", gotPath)
}

func TestHTTPStore_TransportErrors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	url := ts.URL
	ts.Close()

	s := NewHTTPStore(url)
	_, err := s.ReadOnce(context.Background(), "collections")
	assert.ErrorIs(t, err, common.ErrTransport)

	ts2 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts2.Close()

	s2 := NewHTTPStore(ts2.URL)
	err = s2.Write(context.Background(), "collections/c1", "x")
	assert.ErrorIs(t, err, common.ErrTransport)
}

func TestHTTPStore_ReadOnce_DecodeError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer ts.Close()

	s := NewHTTPStore(ts.URL)
	_, err := s.ReadOnce(context.Background(), "collections")
	assert.ErrorIs(t, err, common.ErrDecode)
}

func TestHTTPStore_Observe(t *testing.T) {
	upgrader := websocket.Upgrader{}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/watch/collections" {
			http.NotFound(w, r)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		_ = conn.WriteJSON(map[string]any{"c1": map[string]any{"title": "first"}})
		_ = conn.WriteJSON(map[string]any{"c1": map[string]any{"title": "second"}})
		// keep the connection open until the client hangs up
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewHTTPStore(ts.URL)
	ch, err := s.Observe(ctx, "collections")
	require.NoError(t, err)

	first := waitValue(t, ch)
	assert.Equal(t, map[string]any{"c1": map[string]any{"title": "first"}}, first)

	second := waitValue(t, ch)
	assert.Equal(t, map[string]any{"c1": map[string]any{"title": "second"}}, second)

	cancel()
	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel should be closed after cancel")
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestHTTPStore_Observe_DialError(t *testing.T) {
	s := NewHTTPStore("http://127.0.0.1:1")
	_, err := s.Observe(context.Background(), "collections")
	assert.True(t, errors.Is(err, common.ErrTransport))
}

func waitValue(t *testing.T, ch <-chan any) any {
	t.Helper()
	select {
	case v, ok := <-ch:
		if !ok {
			t.Fatal("channel closed early")
		}
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for value")
		return nil
	}
}
