package allocator

import "fmt"

// Invariant names reported in Violation.Invariant
const (
	InvariantCapacity    = "Capacity"
	InvariantCoverage    = "Coverage"
	InvariantNoDuplicate = "NoDuplicate"
)

// Violation describes a distribution that breaks one of the allocator's guarantees
type Violation struct {
	Invariant   string
	FilmID      int64
	JuryID      int64
	Description string
}

// VerifyDistribution checks a batch of new assignments against the existing ratings.
// Returns an empty slice if the batch is valid:
//   - no jury member has more than MaxFilmsPerJury new assignments
//   - every film with unmet need received exactly that many new assignments
//   - no (film, jury) pair appears twice across existing ratings and new assignments
func VerifyDistribution(films []Film, params Params, existing ExistingRatings, assignments []Assignment) []Violation {
	violations := make([]Violation, 0)

	loads := make(map[int64]int)
	perFilm := make(map[int64]int)
	seen := make(map[Assignment]bool)

	for _, a := range assignments {
		loads[a.JuryID]++
		perFilm[a.FilmID]++

		if existing.HasRated(a.FilmID, a.JuryID) {
			violations = append(violations, Violation{
				Invariant:   InvariantNoDuplicate,
				FilmID:      a.FilmID,
				JuryID:      a.JuryID,
				Description: fmt.Sprintf("jury %d assigned film %d which they have already rated", a.JuryID, a.FilmID),
			})
		}
		if seen[a] {
			violations = append(violations, Violation{
				Invariant:   InvariantNoDuplicate,
				FilmID:      a.FilmID,
				JuryID:      a.JuryID,
				Description: fmt.Sprintf("jury %d assigned film %d more than once", a.JuryID, a.FilmID),
			})
		}
		seen[a] = true
	}

	// Report capacity in assignment order so the output is deterministic
	reported := make(map[int64]bool)
	for _, a := range assignments {
		if reported[a.JuryID] || loads[a.JuryID] <= params.MaxFilmsPerJury {
			continue
		}
		reported[a.JuryID] = true
		violations = append(violations, Violation{
			Invariant:   InvariantCapacity,
			JuryID:      a.JuryID,
			Description: fmt.Sprintf("jury %d has %d assignments but max is %d", a.JuryID, loads[a.JuryID], params.MaxFilmsPerJury),
		})
	}

	for _, film := range films {
		need := max(0, params.MinRatingsPerFilm-existing.Count(film.ID))
		if perFilm[film.ID] != need {
			violations = append(violations, Violation{
				Invariant:   InvariantCoverage,
				FilmID:      film.ID,
				Description: fmt.Sprintf("film %d needed %d new assignments but got %d", film.ID, need, perFilm[film.ID]),
			})
		}
	}

	return violations
}
