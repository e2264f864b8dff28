package services

import (
	"errors"

	"github.com/samber/lo"

	"github.com/jakechorley/festival-jury/pkg/core/allocator"
	"github.com/jakechorley/festival-jury/pkg/core/ranking"
	"github.com/jakechorley/festival-jury/pkg/db"
)

func toAllocatorFilms(films []db.Film) []allocator.Film {
	return lo.Map(films, func(f db.Film, _ int) allocator.Film {
		return allocator.Film{ID: f.ID, SubmittedAt: f.SubmittedAt}
	})
}

func toAllocatorJuries(members []db.JuryMember) []allocator.JuryMember {
	return lo.Map(members, func(m db.JuryMember, _ int) allocator.JuryMember {
		return allocator.JuryMember{ID: m.ID, Name: m.Name}
	})
}

// buildExistingRatings groups rating records by film.
// Ratings by jury members no longer on the roster still count toward coverage.
func buildExistingRatings(ratings []db.Rating) allocator.ExistingRatings {
	existing := make(allocator.ExistingRatings)
	lo.ForEach(ratings, func(r db.Rating, _ int) {
		existing.Add(r.FilmID, r.JuryID)
	})
	return existing
}

func toAllocatorAssignments(assignments []db.Assignment) []allocator.Assignment {
	return lo.Map(assignments, func(a db.Assignment, _ int) allocator.Assignment {
		return allocator.Assignment{FilmID: a.FilmID, JuryID: a.JuryID}
	})
}

func toRankingRows(aggregates []db.RatingAggregate) []ranking.Row {
	return lo.Map(aggregates, func(a db.RatingAggregate, _ int) ranking.Row {
		return ranking.Row{
			FilmID:    a.FilmID,
			Title:     a.Title,
			Average:   a.Average,
			Count:     a.Count,
			CreatedAt: a.CreatedAt,
		}
	})
}

// filmTitles indexes film titles by ID for display
func filmTitles(films []db.Film) map[int64]string {
	return lo.SliceToMap(films, func(f db.Film) (int64, string) {
		return f.ID, f.Title
	})
}

// isCoverageRefusal reports whether err is the allocator declining the inputs
// rather than a validation or store failure
func isCoverageRefusal(err error) bool {
	return errors.Is(err, allocator.ErrInfeasibleCapacity) || errors.Is(err, allocator.ErrNoEligibleJury)
}
