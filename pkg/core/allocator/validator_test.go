package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyDistribution_Valid(t *testing.T) {
	params := Params{MinRatingsPerFilm: 2, MaxFilmsPerJury: 2}
	result, err := Distribute(films(1, 2), juries(10, 11, 12), params, ExistingRatings{})
	require.NoError(t, err)

	assert.Empty(t, VerifyDistribution(films(1, 2), params, ExistingRatings{}, result.Assignments))
}

func TestVerifyDistribution_OverCapacity(t *testing.T) {
	params := Params{MinRatingsPerFilm: 1, MaxFilmsPerJury: 1}
	assignments := []Assignment{
		{FilmID: 1, JuryID: 10},
		{FilmID: 2, JuryID: 10},
	}

	violations := VerifyDistribution(films(1, 2), params, ExistingRatings{}, assignments)
	require.Len(t, violations, 1)
	assert.Equal(t, InvariantCapacity, violations[0].Invariant)
	assert.Equal(t, int64(10), violations[0].JuryID)
	assert.Contains(t, violations[0].Description, "jury 10 has 2 assignments but max is 1")
}

func TestVerifyDistribution_DuplicateWithinBatch(t *testing.T) {
	params := Params{MinRatingsPerFilm: 2, MaxFilmsPerJury: 5}
	assignments := []Assignment{
		{FilmID: 1, JuryID: 10},
		{FilmID: 1, JuryID: 10},
	}

	violations := VerifyDistribution(films(1), params, ExistingRatings{}, assignments)
	require.Len(t, violations, 1)
	assert.Equal(t, InvariantNoDuplicate, violations[0].Invariant)
	assert.Contains(t, violations[0].Description, "more than once")
}

func TestVerifyDistribution_DuplicateWithExisting(t *testing.T) {
	existing := ExistingRatings{}
	existing.Add(1, 10)
	params := Params{MinRatingsPerFilm: 2, MaxFilmsPerJury: 5}

	violations := VerifyDistribution(films(1), params, existing, []Assignment{{FilmID: 1, JuryID: 10}})
	require.Len(t, violations, 1)
	assert.Equal(t, InvariantNoDuplicate, violations[0].Invariant)
	assert.Contains(t, violations[0].Description, "already rated")
}

func TestVerifyDistribution_Coverage(t *testing.T) {
	params := Params{MinRatingsPerFilm: 2, MaxFilmsPerJury: 5}

	violations := VerifyDistribution(films(1, 2), params, ExistingRatings{}, []Assignment{
		{FilmID: 1, JuryID: 10},
		{FilmID: 1, JuryID: 11},
		{FilmID: 2, JuryID: 10},
	})
	require.Len(t, violations, 1)
	assert.Equal(t, InvariantCoverage, violations[0].Invariant)
	assert.Equal(t, int64(2), violations[0].FilmID)
	assert.Contains(t, violations[0].Description, "film 2 needed 2 new assignments but got 1")
}
