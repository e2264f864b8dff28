package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/festival-jury/pkg/core/allocator"
	"github.com/jakechorley/festival-jury/pkg/db"
	"github.com/jakechorley/festival-jury/pkg/metrics"
)

func defaultParams(minRatings, maxPerJury int) DistributeParams {
	return DistributeParams{
		Limits:           allocator.Params{MinRatingsPerFilm: minRatings, MaxFilmsPerJury: maxPerJury},
		EligibleStatuses: []string{db.FilmStatusApproved},
	}
}

func TestDistributeAssignments_Commit(t *testing.T) {
	store := &mockStore{
		films:  testFilms(2, 1),
		juries: testJuries(12, 10, 11),
	}
	recorder := &mockRecorder{}

	result, err := DistributeAssignments(context.Background(), store, defaultParams(2, 2), zap.NewNop(), recorder, false)
	require.NoError(t, err)

	assert.True(t, result.Committed)
	assert.Equal(t, 1, store.replaceCalls)
	assert.Equal(t, []string{db.FilmStatusApproved}, store.statusesSeen)

	expected := [][2]int64{{1, 10}, {1, 11}, {2, 12}, {2, 10}}
	assert.Equal(t, expected, pairs(store.replaced))
	assert.Equal(t, expected, pairs(result.Records))

	ids := make(map[string]bool)
	for _, r := range store.replaced {
		assert.Equal(t, result.RunID, r.RunID)
		_, err := uuid.Parse(r.ID)
		assert.NoError(t, err)
		assert.False(t, ids[r.ID], "duplicate row id %s", r.ID)
		ids[r.ID] = true
		assert.False(t, r.AssignedAt.IsZero())
	}

	assert.Equal(t, []string{metrics.ModeCommit}, recorder.successes)
	assert.Empty(t, recorder.failures)
	assert.Equal(t, 4, recorder.lastResult.Stats.Total)
}

func TestDistributeAssignments_DryRunLeavesTableUntouched(t *testing.T) {
	store := &mockStore{
		films:  testFilms(1, 2, 3),
		juries: testJuries(10, 11, 12),
	}
	recorder := &mockRecorder{}

	result, err := DistributeAssignments(context.Background(), store, defaultParams(2, 2), zap.NewNop(), recorder, true)
	require.NoError(t, err)

	assert.False(t, result.Committed)
	assert.Equal(t, 0, store.replaceCalls)
	assert.Len(t, result.Records, 6)
	assert.Equal(t, []string{metrics.ModePreview}, recorder.successes)
}

func TestDistributeAssignments_PreviewMatchesCommit(t *testing.T) {
	newStore := func() *mockStore {
		return &mockStore{
			films:  testFilms(5, 3, 8, 1, 4),
			juries: testJuries(21, 20, 23, 22),
			ratings: []db.Rating{
				{FilmID: 3, JuryID: 20, Score: 7},
				{FilmID: 8, JuryID: 22, Score: 6},
				{FilmID: 8, JuryID: 23, Score: 9},
			},
		}
	}

	preview, err := DistributeAssignments(context.Background(), newStore(), defaultParams(3, 4), zap.NewNop(), &mockRecorder{}, true)
	require.NoError(t, err)

	commitStore := newStore()
	commit, err := DistributeAssignments(context.Background(), commitStore, defaultParams(3, 4), zap.NewNop(), &mockRecorder{}, false)
	require.NoError(t, err)

	assert.Equal(t, preview.Result.Assignments, commit.Result.Assignments)
	assert.Equal(t, preview.Result.Stats, commit.Result.Stats)
	assert.Equal(t, pairs(preview.Records), pairs(commitStore.replaced))
}

func TestDistributeAssignments_ExistingRatingsReduceNeed(t *testing.T) {
	store := &mockStore{
		films:  testFilms(1, 2),
		juries: testJuries(10, 11),
		ratings: []db.Rating{
			{FilmID: 1, JuryID: 10, Score: 8},
			// Rater 99 has left the jury but their rating still counts
			{FilmID: 1, JuryID: 99, Score: 6},
			{FilmID: 2, JuryID: 11, Score: 5},
		},
	}

	result, err := DistributeAssignments(context.Background(), store, defaultParams(2, 5), zap.NewNop(), &mockRecorder{}, false)
	require.NoError(t, err)

	assert.Equal(t, [][2]int64{{2, 10}}, pairs(store.replaced))
	assert.Equal(t, 1, result.Result.Feasibility.TotalNeeded)
}

func TestDistributeAssignments_NothingNeededClearsTable(t *testing.T) {
	store := &mockStore{
		films:  testFilms(1),
		juries: testJuries(10),
		ratings: []db.Rating{
			{FilmID: 1, JuryID: 10, Score: 8},
		},
	}

	result, err := DistributeAssignments(context.Background(), store, defaultParams(1, 1), zap.NewNop(), &mockRecorder{}, false)
	require.NoError(t, err)

	assert.Empty(t, result.Records)
	assert.Equal(t, 1, store.replaceCalls)
	assert.Empty(t, store.replaced)
}

func TestDistributeAssignments_InfeasibleCapacity(t *testing.T) {
	store := &mockStore{
		films:  testFilms(1, 2, 3, 4, 5, 6, 7, 8, 9, 10),
		juries: testJuries(10, 11),
	}
	recorder := &mockRecorder{}

	_, err := DistributeAssignments(context.Background(), store, defaultParams(3, 1), zap.NewNop(), recorder, false)
	require.Error(t, err)

	assert.ErrorIs(t, err, allocator.ErrInfeasibleCapacity)
	var capErr *allocator.CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, 30, capErr.TotalNeeded)
	assert.Equal(t, 2, capErr.MaxCapacity)

	assert.Equal(t, 0, store.replaceCalls)
	assert.Equal(t, []string{metrics.ModeCommit}, recorder.failures)
	assert.Equal(t, 30, recorder.lastFeasibility.TotalNeeded)
	assert.Empty(t, recorder.successes)
}

func TestDistributeAssignments_NoEligibleJury(t *testing.T) {
	// Capacity is ample but only two juries exist for a film needing three ratings
	store := &mockStore{
		films:  testFilms(7),
		juries: testJuries(10, 11),
	}
	recorder := &mockRecorder{}

	_, err := DistributeAssignments(context.Background(), store, defaultParams(3, 5), zap.NewNop(), recorder, true)
	require.Error(t, err)

	var noJury *allocator.NoEligibleJuryError
	require.ErrorAs(t, err, &noJury)
	assert.Equal(t, int64(7), noJury.FilmID)
	assert.Equal(t, []string{metrics.ModePreview}, recorder.failures)
}

func TestDistributeAssignments_InvalidParameters(t *testing.T) {
	store := &mockStore{films: testFilms(1), juries: testJuries(10)}

	_, err := DistributeAssignments(context.Background(), store, defaultParams(0, 1), zap.NewNop(), &mockRecorder{}, false)
	assert.ErrorIs(t, err, allocator.ErrInvalidParameter)
	assert.Equal(t, 0, store.replaceCalls)
}

func TestDistributeAssignments_SnapshotError(t *testing.T) {
	store := &mockStore{snapshotErr: errors.New("connection refused")}
	recorder := &mockRecorder{}

	_, err := DistributeAssignments(context.Background(), store, defaultParams(1, 1), zap.NewNop(), recorder, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load snapshot")
	assert.Len(t, recorder.failures, 1)
}

func TestDistributeAssignments_ReplaceError(t *testing.T) {
	store := &mockStore{
		films:      testFilms(1),
		juries:     testJuries(10),
		replaceErr: errors.New("deadlock detected"),
	}
	recorder := &mockRecorder{}

	_, err := DistributeAssignments(context.Background(), store, defaultParams(1, 1), zap.NewNop(), recorder, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save assignments")
	assert.Equal(t, []string{metrics.ModeCommit}, recorder.failures)
	assert.Empty(t, recorder.successes)
}

func TestDistributeResult_Title(t *testing.T) {
	store := &mockStore{
		films: []db.Film{
			{ID: 1, Title: "Sunspring", Status: db.FilmStatusApproved, SubmittedAt: submitted},
			{ID: 2, Title: "The Frost", Status: db.FilmStatusApproved, SubmittedAt: submitted},
		},
		juries: testJuries(10),
	}

	result, err := DistributeAssignments(context.Background(), store, defaultParams(1, 2), zap.NewNop(), &mockRecorder{}, true)
	require.NoError(t, err)

	assert.Equal(t, "Sunspring", result.Title(1))
	assert.Equal(t, "The Frost", result.Title(2))
	assert.Empty(t, result.Title(3))
}
