package allocator

import "math"

// Feasibility holds the capacity-vs-demand numbers for a distribution
type Feasibility struct {
	// TotalNeeded is the number of new assignments required across all films
	TotalNeeded int

	// MaxCapacity is JuryCount * MaxFilmsPerJury
	MaxCapacity int

	JuryCount       int
	MaxFilmsPerJury int

	// FilmsNeedingCoverage is the number of films with unmet need
	FilmsNeedingCoverage int
}

// Feasible returns true if the juries can absorb the total need
func (f Feasibility) Feasible() bool {
	return f.TotalNeeded <= f.MaxCapacity
}

// ValidateParameters checks that both limits are at least 1
func ValidateParameters(params Params) error {
	if params.MinRatingsPerFilm < 1 {
		return invalidParameter("minimum ratings per film must be at least 1, got %d", params.MinRatingsPerFilm)
	}
	if params.MaxFilmsPerJury < 1 {
		return invalidParameter("maximum films per jury must be at least 1, got %d", params.MaxFilmsPerJury)
	}
	return nil
}

// ValidateInputs checks that film and jury IDs are distinct
func ValidateInputs(films []Film, juries []JuryMember) error {
	seenFilms := make(map[int64]bool, len(films))
	for _, film := range films {
		if seenFilms[film.ID] {
			return invalidParameter("film %d appears more than once", film.ID)
		}
		seenFilms[film.ID] = true
	}

	seenJuries := make(map[int64]bool, len(juries))
	for _, jury := range juries {
		if seenJuries[jury.ID] {
			return invalidParameter("jury member %d appears more than once", jury.ID)
		}
		seenJuries[jury.ID] = true
	}

	return nil
}

// CheckFeasibility validates the inputs, compares total need against jury capacity, and
// checks that every film has enough roster juries that have not already rated it.
// Preview and commit paths both go through here so they always reach the same decision.
// The returned Feasibility is populated even when a check fails.
func CheckFeasibility(films []Film, juries []JuryMember, params Params, existing ExistingRatings) (Feasibility, error) {
	if err := ValidateParameters(params); err != nil {
		return Feasibility{}, err
	}
	if err := ValidateInputs(films, juries); err != nil {
		return Feasibility{}, err
	}

	feasibility := Feasibility{
		MaxCapacity:     mulCapped(len(juries), params.MaxFilmsPerJury),
		JuryCount:       len(juries),
		MaxFilmsPerJury: params.MaxFilmsPerJury,
	}

	needs := filmNeeds(films, params.MinRatingsPerFilm, existing)
	for _, need := range needs {
		feasibility.TotalNeeded = addCapped(feasibility.TotalNeeded, need.need)
		feasibility.FilmsNeedingCoverage++
	}

	if !feasibility.Feasible() {
		return feasibility, &CapacityError{
			TotalNeeded:     feasibility.TotalNeeded,
			MaxCapacity:     feasibility.MaxCapacity,
			JuryCount:       feasibility.JuryCount,
			MaxFilmsPerJury: feasibility.MaxFilmsPerJury,
		}
	}

	roster := make(map[int64]struct{}, len(juries))
	for _, jury := range juries {
		roster[jury.ID] = struct{}{}
	}

	for _, need := range needs {
		available := len(juries)
		for juryID := range existing[need.filmID] {
			if _, ok := roster[juryID]; ok {
				available--
			}
		}
		if need.need > available {
			return feasibility, &NoEligibleJuryError{FilmID: need.filmID, Needed: need.need, Available: available}
		}
	}

	return feasibility, nil
}

// filmNeeds returns every film with unmet need, in input order
func filmNeeds(films []Film, minRatings int, existing ExistingRatings) []filmNeed {
	needs := make([]filmNeed, 0, len(films))
	for _, film := range films {
		need := max(0, minRatings-existing.Count(film.ID))
		if need == 0 {
			continue
		}
		needs = append(needs, filmNeed{filmID: film.ID, need: need})
	}
	return needs
}

// mulCapped returns a*b for non-negative a and b, saturating at math.MaxInt
func mulCapped(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	if a > math.MaxInt/b {
		return math.MaxInt
	}
	return a * b
}

// addCapped returns a+b for non-negative a and b, saturating at math.MaxInt
func addCapped(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}
