package bookings_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iamlekside2/QuickGift/internal/modules/bookings"
)

func TestBookingTransitions(t *testing.T) {
	all := []bookings.Status{
		bookings.StatusPending,
		bookings.StatusConfirmed,
		bookings.StatusInProgress,
		bookings.StatusCompleted,
		bookings.StatusCancelled,
	}

	legal := map[bookings.Status][]bookings.Status{
		bookings.StatusPending:    {bookings.StatusConfirmed, bookings.StatusCancelled},
		bookings.StatusConfirmed:  {bookings.StatusInProgress, bookings.StatusCancelled},
		bookings.StatusInProgress: {bookings.StatusCompleted},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, next := range legal[from] {
				if next == to {
					want = true
				}
			}
			assert.Equal(t, want, bookings.CanTransition(from, to),
				"%s -> %s", from, to)
		}
	}
}

func TestBookingValidateTransitionError(t *testing.T) {
	err := bookings.ValidateTransition(bookings.StatusCompleted, bookings.StatusInProgress)
	assert.EqualError(t, err, "cannot transition booking from completed to in_progress")

	assert.NoError(t, bookings.ValidateTransition(bookings.StatusConfirmed, bookings.StatusCancelled))
}

func TestParseBookingStatus(t *testing.T) {
	st, ok := bookings.ParseStatus("in_progress")
	assert.True(t, ok)
	assert.Equal(t, bookings.StatusInProgress, st)

	_, ok = bookings.ParseStatus("done")
	assert.False(t, ok)
}
