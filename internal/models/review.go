package models

import (
	"fmt"

	"github.com/cinescribe/cinescribe/internal/common"
	"github.com/google/uuid"
)

// Review is a single movie write-up: a title, optional linked movie metadata
// and four free-text note fields. MovieID 0 means no movie is attached; the
// same sentinel appears in the owning collection's review index.
type Review struct {
	ID           uuid.UUID
	CollectionID uuid.UUID
	MovieID      int64
	Title        string

	MemorableQuotes     string
	SceneDescription    string
	ActorNotes          string
	CinematographyNotes string

	ImageURL string
}

// Value renders the record for storage under reviews/{userId}/{reviewId}.
// Unset optional fields are omitted.
func (r Review) Value() map[string]any {
	v := map[string]any{
		"title":        r.Title,
		"collectionId": r.CollectionID.String(),
	}
	if r.MovieID != 0 {
		v["movieDbId"] = r.MovieID
	}
	if r.MemorableQuotes != "" {
		v["memorableQuotes"] = r.MemorableQuotes
	}
	if r.SceneDescription != "" {
		v["sceneDescription"] = r.SceneDescription
	}
	if r.ActorNotes != "" {
		v["actorNotes"] = r.ActorNotes
	}
	if r.CinematographyNotes != "" {
		v["cinematographyNotes"] = r.CinematographyNotes
	}
	if r.ImageURL != "" {
		v["imageUrl"] = r.ImageURL
	}
	return v
}

// ReviewFromValue decodes a review record. The key supplies the review
// identifier.
func ReviewFromValue(key string, v any) (Review, error) {
	m, err := asObject(v)
	if err != nil {
		return Review{}, err
	}

	id, err := uuid.Parse(key)
	if err != nil {
		return Review{}, fmt.Errorf("%w: bad review id %q", common.ErrDecode, key)
	}

	title, err := stringField(m, "title")
	if err != nil {
		return Review{}, err
	}

	collStr, err := stringField(m, "collectionId")
	if err != nil {
		return Review{}, err
	}
	collID, err := uuid.Parse(collStr)
	if err != nil {
		return Review{}, fmt.Errorf("%w: bad collection id %q", common.ErrDecode, collStr)
	}

	r := Review{
		ID:                  id,
		CollectionID:        collID,
		Title:               title,
		MemorableQuotes:     optionalString(m, "memorableQuotes"),
		SceneDescription:    optionalString(m, "sceneDescription"),
		ActorNotes:          optionalString(m, "actorNotes"),
		CinematographyNotes: optionalString(m, "cinematographyNotes"),
		ImageURL:            optionalString(m, "imageUrl"),
	}

	if raw, ok := m["movieDbId"]; ok {
		movieID, ok := numberField(raw)
		if !ok {
			return Review{}, fmt.Errorf("%w: movieDbId is not a number", common.ErrDecode)
		}
		r.MovieID = movieID
	}

	return r, nil
}
