// Package ranking orders films by their aggregated jury ratings.
package ranking

import (
	"cmp"
	"math"
	"slices"
	"time"
)

// Row is the aggregated rating data for one film.
// Callers must pre-filter rows to eligible films.
type Row struct {
	FilmID int64
	Title  string

	// Average is nil when the film has no ratings yet
	Average *float64

	Count     int
	CreatedAt time.Time
}

// RankedRow is a Row with its position in the ranking (1-based)
type RankedRow struct {
	Row
	Rank int
}

// HasAverage returns true if the row has a usable average.
// NaN is treated the same as no average so the ordering stays a total order.
func (r Row) HasAverage() bool {
	return r.Average != nil && !math.IsNaN(*r.Average)
}

// Rank orders rows and assigns ranks 1..N.
//
// Ordering, highest priority first:
//  1. average rating descending, rows without an average after every row that has one
//  2. rating count descending
//  3. creation time ascending (earlier submission wins)
//
// Rows equal on all three keys keep their input order. The input slice is not modified.
func Rank(rows []Row) []RankedRow {
	ordered := slices.Clone(rows)
	slices.SortStableFunc(ordered, Compare)

	ranked := make([]RankedRow, len(ordered))
	for i, row := range ordered {
		ranked[i] = RankedRow{Row: row, Rank: i + 1}
	}
	return ranked
}

// Compare returns a negative number when a ranks ahead of b, positive when b ranks
// ahead of a, and zero when the two are tied on every key.
func Compare(a, b Row) int {
	aHas, bHas := a.HasAverage(), b.HasAverage()

	switch {
	case aHas && !bHas:
		return -1
	case !aHas && bHas:
		return 1
	case aHas && bHas:
		if c := cmp.Compare(*b.Average, *a.Average); c != 0 {
			return c
		}
	}

	if c := cmp.Compare(b.Count, a.Count); c != 0 {
		return c
	}

	return a.CreatedAt.Compare(b.CreatedAt)
}
