package models

// Movie is metadata fetched from the external movie database. PosterURL and
// BackdropURL are absolute; the search client resolves them against its
// configured image base.
type Movie struct {
	ID          int64
	Title       string
	Overview    string
	PosterURL   string
	BackdropURL string
	ReleaseDate string
}
