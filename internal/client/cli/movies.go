package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cinescribe/cinescribe/internal/models"
)

func printMovies(movies []models.Movie) {
	for i, m := range movies {
		year := m.ReleaseDate
		if len(year) >= 4 {
			year = year[:4]
		}
		printlnFn(fmt.Sprintf("%2d. %s (%s)", i+1, titleColor(m.Title), year))
	}
}

func (a *App) searchMovies(ctx context.Context, query string) {
	if a.movies == nil {
		printlnFn("Movie search is disabled: no TMDb API key configured.")
		return
	}
	query = strings.TrimSpace(query)
	if query == "" {
		printlnFn("Usage: search <title>")
		return
	}

	movies, err := a.movies.SearchMovies(ctx, query)
	if err != nil {
		printlnFn(warnColor("search failed: " + err.Error()))
		return
	}
	if len(movies) == 0 {
		printlnFn("No matches.")
		return
	}
	printMovies(movies)
}

// pickMovie runs an optional search-and-choose step during review entry.
// Returns nil when the user skips or nothing matches.
func (a *App) pickMovie(ctx context.Context) *models.Movie {
	query, err := getSimpleText(a.reader, "Movie title to search (empty to skip)", os.Stdout)
	if err != nil || strings.TrimSpace(query) == "" {
		return nil
	}

	movies, err := a.movies.SearchMovies(ctx, query)
	if err != nil {
		printlnFn(warnColor("search failed: " + err.Error()))
		return nil
	}
	if len(movies) == 0 {
		printlnFn("No matches, continuing without a movie.")
		return nil
	}

	printMovies(movies)
	choice, err := getSimpleText(a.reader, "Pick a number (empty to skip)", os.Stdout)
	if err != nil || strings.TrimSpace(choice) == "" {
		return nil
	}
	i, err := pickIndex([]string{choice}, len(movies))
	if err != nil {
		printlnFn(warnColor(err.Error()))
		return nil
	}
	return &movies[i]
}
