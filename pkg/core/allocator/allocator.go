package allocator

import (
	"cmp"
	"slices"
)

// Distribute computes the missing (film, jury) assignments so that every film reaches
// params.MinRatingsPerFilm ratings without any jury exceeding params.MaxFilmsPerJury.
//
// The run is all-or-nothing: on any error no assignments are returned. Identical inputs
// always produce identical output, and caller-owned inputs are never modified.
func Distribute(films []Film, juries []JuryMember, params Params, existing ExistingRatings) (*Result, error) {
	feasibility, err := CheckFeasibility(films, juries, params, existing)
	if err != nil {
		return nil, err
	}

	// Most constrained films first, then by ID
	needs := filmNeeds(films, params.MinRatingsPerFilm, existing)
	slices.SortFunc(needs, func(a, b filmNeed) int {
		if a.need != b.need {
			return cmp.Compare(b.need, a.need)
		}
		return cmp.Compare(a.filmID, b.filmID)
	})

	// Juries ordered by ID so the first minimum found on a scan is the lowest ID
	states := make([]*juryState, 0, len(juries))
	for _, member := range sortedJuries(juries) {
		states = append(states, &juryState{
			member: member,
			films:  make(map[int64]bool),
		})
	}

	// TotalNeeded is bounded by the per-film check, but never size from it alone
	assignments := make([]Assignment, 0, min(feasibility.TotalNeeded, mulCapped(len(films), len(juries))))

	for _, fn := range needs {
		for range fn.need {
			jury := pickJury(states, fn.filmID, params.MaxFilmsPerJury, existing)
			if jury == nil {
				return nil, &NoEligibleJuryError{FilmID: fn.filmID}
			}

			jury.load++
			jury.films[fn.filmID] = true
			assignments = append(assignments, Assignment{FilmID: fn.filmID, JuryID: jury.member.ID})
		}
	}

	return &Result{
		Assignments: assignments,
		Stats:       ComputeStats(juries, assignments),
		Feasibility: feasibility,
	}, nil
}

// pickJury returns the eligible jury with the smallest load, lowest ID on ties.
// states must be sorted by jury ID. Returns nil if no jury is eligible.
func pickJury(states []*juryState, filmID int64, maxLoad int, existing ExistingRatings) *juryState {
	var best *juryState

	for _, jury := range states {
		if !isEligible(jury, filmID, maxLoad, existing) {
			continue
		}

		// Strict comparison keeps the earlier (lower ID) jury on equal load
		if best == nil || jury.load < best.load {
			best = jury
		}
	}

	return best
}

// isEligible reports whether the jury can take the film
func isEligible(jury *juryState, filmID int64, maxLoad int, existing ExistingRatings) bool {
	if existing.HasRated(filmID, jury.member.ID) {
		return false
	}
	if jury.films[filmID] {
		return false
	}
	return jury.load < maxLoad
}
