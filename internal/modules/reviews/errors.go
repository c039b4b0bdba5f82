package reviews

import "errors"

var (
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrInvalidTarget  = errors.New("unknown review target")
	ErrTargetNotFound = errors.New("review target not found")
	ErrAlreadyExists  = errors.New("target already reviewed")
)
