package models

import (
	"fmt"

	"github.com/cinescribe/cinescribe/internal/common"
	"github.com/google/uuid"
)

// Collection is a named grouping of reviews with a denormalized summary:
// the poster image of the most recently saved review and an index mapping
// review ID to movie ID (0 when the review has no movie attached). The index
// lets the UI render a collection without fetching every review.
type Collection struct {
	ID       uuid.UUID
	Title    string
	ImageURL string
	Reviews  map[string]int64
}

// NewCollection creates an empty collection with a fresh identifier.
func NewCollection(title string) Collection {
	return Collection{
		ID:      uuid.New(),
		Title:   title,
		Reviews: make(map[string]int64),
	}
}

// Value renders the record for storage under collections/{userId}/{collId}.
// Empty optional fields are omitted, matching the original record shape.
func (c Collection) Value() map[string]any {
	v := map[string]any{
		"title": c.Title,
	}
	if c.ImageURL != "" {
		v["imageUrl"] = c.ImageURL
	}
	if len(c.Reviews) > 0 {
		idx := make(map[string]any, len(c.Reviews))
		for reviewID, movieID := range c.Reviews {
			idx[reviewID] = movieID
		}
		v["reviews"] = idx
	}
	return v
}

// CollectionFromValue decodes a collection record. The key supplies the
// collection identifier, mirroring how children of collections/{userId}
// are addressed.
func CollectionFromValue(key string, v any) (Collection, error) {
	m, err := asObject(v)
	if err != nil {
		return Collection{}, err
	}

	id, err := uuid.Parse(key)
	if err != nil {
		return Collection{}, fmt.Errorf("%w: bad collection id %q", common.ErrDecode, key)
	}

	title, err := stringField(m, "title")
	if err != nil {
		return Collection{}, err
	}

	c := Collection{
		ID:       id,
		Title:    title,
		ImageURL: optionalString(m, "imageUrl"),
		Reviews:  make(map[string]int64),
	}

	if raw, ok := m["reviews"]; ok {
		idx, err := asObject(raw)
		if err != nil {
			return Collection{}, err
		}
		for reviewID, movieVal := range idx {
			movieID, ok := numberField(movieVal)
			if !ok {
				return Collection{}, fmt.Errorf("%w: review index entry %q is not a number", common.ErrDecode, reviewID)
			}
			c.Reviews[reviewID] = movieID
		}
	}

	return c, nil
}
