package allocator

import (
	"errors"
	"fmt"
)

// Error kinds returned by the allocator. Match with errors.Is.
var (
	// ErrInvalidParameter is returned for out-of-range limits or malformed input lists
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInfeasibleCapacity is returned when the juries cannot absorb the required ratings
	ErrInfeasibleCapacity = errors.New("infeasible capacity")

	// ErrNoEligibleJury is returned when a film needs more new ratings than there are
	// roster juries left to give them
	ErrNoEligibleJury = errors.New("no eligible jury")
)

// CapacityError carries the numbers behind an infeasible distribution
type CapacityError struct {
	TotalNeeded     int
	MaxCapacity     int
	JuryCount       int
	MaxFilmsPerJury int
}

func (e *CapacityError) Error() string {
	if e.JuryCount == 0 {
		return fmt.Sprintf("%s: %d ratings needed but there are no juries (add juries)",
			ErrInfeasibleCapacity, e.TotalNeeded)
	}
	return fmt.Sprintf(
		"%s: %d ratings needed but %d juries x %d films per jury only gives capacity for %d (raise the per-jury limit to at least %d or add juries)",
		ErrInfeasibleCapacity,
		e.TotalNeeded,
		e.JuryCount,
		e.MaxFilmsPerJury,
		e.MaxCapacity,
		e.requiredPerJury(),
	)
}

func (e *CapacityError) Unwrap() error {
	return ErrInfeasibleCapacity
}

// requiredPerJury is the smallest per-jury limit that would fit the demand with the current roster
func (e *CapacityError) requiredPerJury() int {
	if e.TotalNeeded <= 0 {
		return 0
	}
	return (e.TotalNeeded-1)/e.JuryCount + 1
}

// NoEligibleJuryError names the film that could not be given another jury member.
// Needed and Available are set when the shortfall is detected before allocation.
type NoEligibleJuryError struct {
	FilmID    int64
	Needed    int
	Available int
}

func (e *NoEligibleJuryError) Error() string {
	if e.Needed > 0 {
		return fmt.Sprintf("%s: film %d needs %d more ratings but only %d jury members have not rated it (lower the minimum ratings per film or add juries)",
			ErrNoEligibleJury, e.FilmID, e.Needed, e.Available)
	}
	return fmt.Sprintf("%s: no jury member can take film %d", ErrNoEligibleJury, e.FilmID)
}

func (e *NoEligibleJuryError) Unwrap() error {
	return ErrNoEligibleJury
}

// invalidParameter wraps ErrInvalidParameter with a description
func invalidParameter(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}
