package allocator

import (
	"cmp"
	"slices"
	"time"
)

// Film is a film that needs jury coverage.
// Only the ID and submission time matter to the allocator.
type Film struct {
	ID          int64
	SubmittedAt time.Time
}

// JuryMember is a member of the jury pool
type JuryMember struct {
	ID   int64
	Name string
}

// ExistingRatings maps a film ID to the set of jury IDs that have already rated it.
// A jury in the set for a film never receives a new assignment for that film.
type ExistingRatings map[int64]map[int64]struct{}

// Add records that juryID has rated filmID
func (er ExistingRatings) Add(filmID, juryID int64) {
	raters, ok := er[filmID]
	if !ok {
		raters = make(map[int64]struct{})
		er[filmID] = raters
	}
	raters[juryID] = struct{}{}
}

// Count returns the number of distinct juries that have rated the film
func (er ExistingRatings) Count(filmID int64) int {
	return len(er[filmID])
}

// HasRated returns true if the jury has already rated the film
func (er ExistingRatings) HasRated(filmID, juryID int64) bool {
	_, ok := er[filmID][juryID]
	return ok
}

// Assignment means "this jury member must rate this film"
type Assignment struct {
	FilmID int64
	JuryID int64
}

// JuryLoad is the number of assignments given to a single jury member
type JuryLoad struct {
	JuryID int64
	Name   string
	Count  int
}

// Stats summarises the load across juries for a batch of assignments.
// It is always derived from the assignment set, never stored on its own.
type Stats struct {
	Total int
	// Loads has one entry per jury member, ordered by jury ID
	Loads []JuryLoad
	Min   int
	Max   int
	Avg   float64
}

// Params are the tunable limits for a distribution run
type Params struct {
	// MinRatingsPerFilm is the number of independent ratings every film must reach (R)
	MinRatingsPerFilm int

	// MaxFilmsPerJury caps how many new assignments a single jury member may receive (Lmax)
	MaxFilmsPerJury int
}

// Result is the outcome of a successful distribution run
type Result struct {
	// Assignments in the order they were made
	Assignments []Assignment

	Stats Stats

	// Feasibility holds the capacity numbers the run was checked against
	Feasibility Feasibility
}

// juryState tracks a single jury member during a run.
// Entirely local to one invocation.
type juryState struct {
	member JuryMember
	load   int
	films  map[int64]bool
}

// filmNeed is a film with the number of new assignments it still requires
type filmNeed struct {
	filmID int64
	need   int
}

// sortedJuries returns a copy of the juries ordered by ascending ID
func sortedJuries(juries []JuryMember) []JuryMember {
	sorted := slices.Clone(juries)
	slices.SortFunc(sorted, func(a, b JuryMember) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return sorted
}
