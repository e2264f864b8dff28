package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/festival-jury/pkg/core/allocator"
	"github.com/jakechorley/festival-jury/pkg/db"
)

func TestBuildExistingRatings(t *testing.T) {
	ratings := []db.Rating{
		{FilmID: 1, JuryID: 10},
		{FilmID: 1, JuryID: 11},
		{FilmID: 1, JuryID: 10},
		{FilmID: 2, JuryID: 12},
	}

	existing := buildExistingRatings(ratings)

	assert.Equal(t, 2, existing.Count(1))
	assert.Equal(t, 1, existing.Count(2))
	assert.Equal(t, 0, existing.Count(3))
	assert.True(t, existing.HasRated(1, 11))
	assert.False(t, existing.HasRated(2, 10))
}

func TestToAllocatorFilms(t *testing.T) {
	films := toAllocatorFilms([]db.Film{
		{ID: 3, Title: "c", SubmittedAt: submitted},
		{ID: 1, Title: "a", SubmittedAt: submitted},
	})

	require.Len(t, films, 2)
	assert.Equal(t, allocator.Film{ID: 3, SubmittedAt: submitted}, films[0])
	assert.Equal(t, int64(1), films[1].ID)
}

func TestIsCoverageRefusal(t *testing.T) {
	assert.True(t, isCoverageRefusal(&allocator.CapacityError{JuryCount: 1}))
	assert.True(t, isCoverageRefusal(fmt.Errorf("wrapped: %w", &allocator.CapacityError{})))
	assert.True(t, isCoverageRefusal(&allocator.NoEligibleJuryError{FilmID: 1}))
	assert.False(t, isCoverageRefusal(fmt.Errorf("wrapped: %w", allocator.ErrInvalidParameter)))
	assert.False(t, isCoverageRefusal(nil))
}
