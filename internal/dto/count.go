package dto

import "github.com/pratyush0898/OnlyCodes/internal/models"

// FirstCountOrZero collapses an embedded aggregate (zero or one record)
// into an integer.
func FirstCountOrZero[T models.Aggregate](seq []T) int {
	if len(seq) == 0 {
		return 0
	}
	return int(seq[0].Total())
}
