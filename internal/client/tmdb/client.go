// Package tmdb is a minimal client for The Movie Database search API, used
// to attach movie metadata and poster art to reviews.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cinescribe/cinescribe/internal/common"
	"github.com/cinescribe/cinescribe/internal/models"
)

const (
	DefaultBaseURL  = "https://api.themoviedb.org/3"
	DefaultImageURL = "https://image.tmdb.org/t/p/w500"

	defaultTimeout = 10 * time.Second
)

type Client struct {
	baseURL    string
	imageURL   string
	apiKey     string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		baseURL:    DefaultBaseURL,
		imageURL:   DefaultImageURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// WithBaseURLs overrides the API and image hosts, mainly for tests.
func (c *Client) WithBaseURLs(api, image string) *Client {
	c.baseURL = api
	c.imageURL = image
	return c
}

type searchResponse struct {
	Results []movieResult `json:"results"`
}

type movieResult struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Overview     string `json:"overview"`
	PosterPath   string `json:"poster_path"`
	BackdropPath string `json:"backdrop_path"`
	ReleaseDate  string `json:"release_date"`
}

// SearchMovies queries /search/movie and returns the matches with fully
// qualified image URLs. An empty result list is not an error.
func (c *Client) SearchMovies(ctx context.Context, query string) ([]models.Movie, error) {
	u := fmt.Sprintf("%s/search/movie?api_key=%s&query=%s",
		c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrTransport, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: movie search returned status %d",
			common.ErrTransport, resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDecode, err)
	}

	movies := make([]models.Movie, 0, len(payload.Results))
	for _, r := range payload.Results {
		movies = append(movies, models.Movie{
			ID:          r.ID,
			Title:       r.Title,
			Overview:    r.Overview,
			PosterURL:   c.imagePath(r.PosterPath),
			BackdropURL: c.imagePath(r.BackdropPath),
			ReleaseDate: r.ReleaseDate,
		})
	}
	return movies, nil
}

func (c *Client) imagePath(p string) string {
	if p == "" {
		return ""
	}
	return c.imageURL + p
}
