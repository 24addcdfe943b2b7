package models

import (
	"errors"
	"testing"

	"github.com/cinescribe/cinescribe/internal/common"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewValue_OmitsUnsetFields(t *testing.T) {
	r := Review{
		ID:           uuid.New(),
		CollectionID: uuid.New(),
		Title:        "Double Indemnity",
	}

	v := r.Value()

	assert.Equal(t, "Double Indemnity", v["title"])
	assert.Equal(t, r.CollectionID.String(), v["collectionId"])
	_, hasMovie := v["movieDbId"]
	assert.False(t, hasMovie, "movieDbId should be omitted when no movie is attached")
	_, hasImage := v["imageUrl"]
	assert.False(t, hasImage)
}

func TestReviewFromValue_RoundTrip(t *testing.T) {
	orig := Review{
		ID:                  uuid.New(),
		CollectionID:        uuid.New(),
		MovieID:             603,
		Title:               "The Matrix",
		MemorableQuotes:     "There is no spoon.",
		SceneDescription:    "Lobby shootout.",
		ActorNotes:          "Reeves",
		CinematographyNotes: "Green tint throughout.",
		ImageURL:            "https://image.tmdb.org/t/p/w500/matrix.jpg",
	}

	got, err := ReviewFromValue(orig.ID.String(), orig.Value())
	require.NoError(t, err)
	assert.Equal(t, orig, got)
}

func TestReviewFromValue_NumberCoercion(t *testing.T) {
	// values arriving over the wire carry float64 numbers
	id := uuid.New()
	v := map[string]any{
		"title":        "Heat",
		"collectionId": uuid.New().String(),
		"movieDbId":    float64(949),
	}

	got, err := ReviewFromValue(id.String(), v)
	require.NoError(t, err)
	assert.Equal(t, int64(949), got.MovieID)
}

func TestReviewFromValue_BadShape(t *testing.T) {
	id := uuid.New().String()

	tests := []struct {
		name string
		v    any
	}{
		{"not an object", "plain string"},
		{"missing title", map[string]any{"collectionId": uuid.New().String()}},
		{"missing collectionId", map[string]any{"title": "x"}},
		{"garbage collectionId", map[string]any{"title": "x", "collectionId": "nope"}},
		{"non-numeric movieDbId", map[string]any{"title": "x", "collectionId": uuid.New().String(), "movieDbId": "603"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReviewFromValue(id, tc.v)
			require.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrDecode), "want ErrDecode, got %v", err)
		})
	}
}

func TestReviewFromValue_BadKey(t *testing.T) {
	_, err := ReviewFromValue("not-a-uuid", map[string]any{
		"title":        "x",
		"collectionId": uuid.New().String(),
	})
	require.ErrorIs(t, err, common.ErrDecode)
}
