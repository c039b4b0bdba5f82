package handlers

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/iamlekside2/QuickGift/internal/modules/bookings"
	"github.com/iamlekside2/QuickGift/internal/modules/orders"
	"github.com/iamlekside2/QuickGift/internal/modules/payments"
	"github.com/iamlekside2/QuickGift/internal/modules/reviews"
	"github.com/iamlekside2/QuickGift/internal/modules/users"
	"github.com/iamlekside2/QuickGift/internal/shared/apperr"
)

// translate maps domain errors onto the apperr taxonomy at the boundary.
// Anything unmapped becomes a 500 with a generic public message.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperr.As(err); ok {
		return err
	}

	var oit *orders.InvalidTransitionError
	if errors.As(err, &oit) {
		return apperr.InvalidErr(fmt.Sprintf("Cannot move order from %s to %s.", oit.From, oit.To), nil)
	}
	var bit *bookings.InvalidTransitionError
	if errors.As(err, &bit) {
		return apperr.InvalidErr(fmt.Sprintf("Cannot move booking from %s to %s.", bit.From, bit.To), nil)
	}
	var pnf *orders.ProductNotFoundError
	if errors.As(err, &pnf) {
		return apperr.NotFoundErr("One of the products is no longer available.")
	}

	switch {
	case errors.Is(err, orders.ErrOrderNotFound):
		return apperr.NotFoundErr("Order not found.")
	case errors.Is(err, bookings.ErrBookingNotFound):
		return apperr.NotFoundErr("Booking not found.")
	case errors.Is(err, bookings.ErrProviderNotFound):
		return apperr.NotFoundErr("Provider not found.")
	case errors.Is(err, bookings.ErrServiceNotFound):
		return apperr.NotFoundErr("Service not found.")
	case errors.Is(err, payments.ErrPaymentNotFound):
		return apperr.NotFoundErr("Payment not found.")
	case errors.Is(err, users.ErrUserNotFound):
		return apperr.NotFoundErr("User not found.")
	case errors.Is(err, reviews.ErrTargetNotFound):
		return apperr.NotFoundErr("Review target not found.")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFoundErr("Not found.")

	case errors.Is(err, orders.ErrNoItems):
		return apperr.InvalidErr("Order must contain at least one item.", nil)
	case errors.Is(err, payments.ErrLinkRequired):
		return apperr.InvalidErr("Provide exactly one of order_id or booking_id.", nil)
	case errors.Is(err, users.ErrInvalidPhone):
		return apperr.InvalidErr("Enter a valid Nigerian phone number.", nil)
	case errors.Is(err, reviews.ErrInvalidRating):
		return apperr.InvalidErr("Rating must be between 1 and 5.", nil)
	case errors.Is(err, reviews.ErrInvalidTarget):
		return apperr.InvalidErr("Review target must be a product or a provider.", nil)

	case errors.Is(err, users.ErrInvalidCredentials):
		return apperr.UnauthorizedErr("Invalid credentials.")
	case errors.Is(err, users.ErrInvalidOTP):
		return apperr.UnauthorizedErr("Invalid or expired code.")

	case errors.Is(err, users.ErrInactiveAccount):
		return apperr.ForbiddenErr("This account has been deactivated.")

	case errors.Is(err, orders.ErrConflict), errors.Is(err, bookings.ErrConflict):
		return apperr.ConflictErr("The record changed while processing; reload and retry.")
	case errors.Is(err, payments.ErrReconcileConflict):
		return apperr.ConflictErr("Payment was settled by another request.")
	case errors.Is(err, reviews.ErrAlreadyExists):
		return apperr.ConflictErr("You have already reviewed this.")
	case errors.Is(err, users.ErrPhoneTaken):
		return apperr.ConflictErr("Phone number already registered.")
	case errors.Is(err, users.ErrEmailTaken):
		return apperr.ConflictErr("Email already registered.")
	case errors.Is(err, users.ErrOTPThrottled):
		return apperr.ConflictErr("Please wait before requesting another code.")
	case errors.Is(err, bookings.ErrProviderUnavailable):
		return apperr.ConflictErr("This provider is not taking bookings right now.")

	case errors.Is(err, payments.ErrGatewayUnavailable):
		return apperr.UnavailableErr("Payment gateway is unavailable; try again shortly.", err)
	}

	return apperr.Wrap(err)
}
