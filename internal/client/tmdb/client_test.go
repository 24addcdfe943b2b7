package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinescribe/cinescribe/internal/common"
)

func TestSearchMovies(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/movie", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("api_key"))
		assert.Equal(t, "double indemnity", r.URL.Query().Get("query"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[
			{"id":996,"title":"Double Indemnity","overview":"An insurance rep...",
			 "poster_path":"/poster.jpg","backdrop_path":"","release_date":"1944-07-06"}
		]}`))
	}))
	defer ts.Close()

	c := NewClient("secret").WithBaseURLs(ts.URL, "https://img.example/w500")

	movies, err := c.SearchMovies(context.Background(), "double indemnity")
	require.NoError(t, err)
	require.Len(t, movies, 1)

	m := movies[0]
	assert.Equal(t, int64(996), m.ID)
	assert.Equal(t, "Double Indemnity", m.Title)
	assert.Equal(t, "https://img.example/w500/poster.jpg", m.PosterURL)
	assert.Empty(t, m.BackdropURL, "missing backdrop stays empty")
	assert.Equal(t, "1944-07-06", m.ReleaseDate)
}

func TestSearchMovies_NoMatchesIsNotAnError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	}))
	defer ts.Close()

	c := NewClient("secret").WithBaseURLs(ts.URL, "https://img.example/w500")
	movies, err := c.SearchMovies(context.Background(), "zzz")
	require.NoError(t, err)
	assert.Empty(t, movies)
}

func TestSearchMovies_Errors(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer ts.Close()

		c := NewClient("bad").WithBaseURLs(ts.URL, "")
		_, err := c.SearchMovies(context.Background(), "x")
		assert.ErrorIs(t, err, common.ErrTransport)
	})

	t.Run("malformed payload", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{broken`))
		}))
		defer ts.Close()

		c := NewClient("secret").WithBaseURLs(ts.URL, "")
		_, err := c.SearchMovies(context.Background(), "x")
		assert.ErrorIs(t, err, common.ErrDecode)
	})
}
