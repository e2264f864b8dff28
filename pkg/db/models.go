package db

import "time"

// Film statuses
const (
	FilmStatusPending  = "pending"
	FilmStatusApproved = "approved"
	FilmStatusRejected = "rejected"
)

// Film represents a database film record
type Film struct {
	ID          int64
	Title       string
	Status      string
	SubmittedAt time.Time
}

// JuryMember represents a database jury member record
type JuryMember struct {
	ID    int64
	Name  string
	Email string
}

// Rating represents a rating a jury member has given a film
type Rating struct {
	FilmID    int64
	JuryID    int64
	Score     float64
	CreatedAt time.Time
}

// Assignment represents a database assignment record.
// RunID groups every row written by a single distribution run.
type Assignment struct {
	ID         string
	RunID      string
	FilmID     int64
	JuryID     int64
	AssignedAt time.Time
}

// RatingAggregate is the per-film result of the rating aggregation query.
// Average is nil when the film has no ratings.
type RatingAggregate struct {
	FilmID    int64
	Title     string
	Average   *float64
	Count     int
	CreatedAt time.Time
}

// Snapshot is the film, jury and rating state read in one consistent transaction
type Snapshot struct {
	Films   []Film
	Juries  []JuryMember
	Ratings []Rating
}
