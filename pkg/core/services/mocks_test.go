package services

import (
	"context"
	"time"

	"github.com/jakechorley/festival-jury/pkg/core/allocator"
	"github.com/jakechorley/festival-jury/pkg/db"
)

// mockStore implements every store interface used by the services
type mockStore struct {
	films       []db.Film
	juries      []db.JuryMember
	ratings     []db.Rating
	aggregates  []db.RatingAggregate
	assignments []db.Assignment

	replaced     []db.Assignment
	replaceCalls int
	statusesSeen []string

	snapshotErr   error
	replaceErr    error
	aggregatesErr error
	juriesErr     error
	assignmentErr error
}

func (m *mockStore) LoadSnapshot(ctx context.Context, statuses []string) (*db.Snapshot, error) {
	m.statusesSeen = statuses
	if m.snapshotErr != nil {
		return nil, m.snapshotErr
	}
	return &db.Snapshot{Films: m.films, Juries: m.juries, Ratings: m.ratings}, nil
}

func (m *mockStore) ReplaceAssignments(ctx context.Context, assignments []db.Assignment) error {
	m.replaceCalls++
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.replaced = assignments
	return nil
}

func (m *mockStore) GetRatingAggregates(ctx context.Context, statuses []string) ([]db.RatingAggregate, error) {
	m.statusesSeen = statuses
	if m.aggregatesErr != nil {
		return nil, m.aggregatesErr
	}
	return m.aggregates, nil
}

func (m *mockStore) GetJuryMembers(ctx context.Context) ([]db.JuryMember, error) {
	if m.juriesErr != nil {
		return nil, m.juriesErr
	}
	return m.juries, nil
}

func (m *mockStore) GetAssignments(ctx context.Context) ([]db.Assignment, error) {
	if m.assignmentErr != nil {
		return nil, m.assignmentErr
	}
	return m.assignments, nil
}

// mockRecorder records what the services report
type mockRecorder struct {
	successes      []string
	failures       []string
	lastResult     *allocator.Result
	lastFeasibility allocator.Feasibility
	lastErr        error
	rankedFilms    int
}

func (m *mockRecorder) ObserveDistribution(mode string, result *allocator.Result) {
	m.successes = append(m.successes, mode)
	m.lastResult = result
}

func (m *mockRecorder) ObserveDistributionFailure(mode string, feasibility allocator.Feasibility, err error) {
	m.failures = append(m.failures, mode)
	m.lastFeasibility = feasibility
	m.lastErr = err
}

func (m *mockRecorder) ObserveRanking(films int) {
	m.rankedFilms = films
}

var submitted = time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

func testFilms(ids ...int64) []db.Film {
	films := make([]db.Film, len(ids))
	for i, id := range ids {
		films[i] = db.Film{ID: id, Title: "Film", Status: db.FilmStatusApproved, SubmittedAt: submitted}
	}
	return films
}

func testJuries(ids ...int64) []db.JuryMember {
	juries := make([]db.JuryMember, len(ids))
	for i, id := range ids {
		juries[i] = db.JuryMember{ID: id, Name: "Juror", Email: "juror@example.com"}
	}
	return juries
}

func pairs(records []db.Assignment) [][2]int64 {
	result := make([][2]int64, len(records))
	for i, r := range records {
		result[i] = [2]int64{r.FilmID, r.JuryID}
	}
	return result
}
