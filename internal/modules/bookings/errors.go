package bookings

import "errors"

var (
	ErrBookingNotFound     = errors.New("booking not found")
	ErrProviderNotFound    = errors.New("provider not found")
	ErrProviderUnavailable = errors.New("provider is currently unavailable")
	ErrServiceNotFound     = errors.New("service not found")
	ErrConflict            = errors.New("booking was modified concurrently")
)
