package payments

import "errors"

var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrLinkRequired    = errors.New("exactly one of order_id or booking_id must be set")

	// ErrGatewayUnavailable wraps gateway timeouts and non-2xx responses.
	// Retryable by the caller with backoff; nothing in the core retries.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	// ErrReconcileConflict means a concurrent reconciliation won the
	// compare-and-swap. The caller should re-read, not re-apply.
	ErrReconcileConflict = errors.New("payment was reconciled concurrently")

	ErrSignatureInvalid = errors.New("invalid webhook signature")

	// ErrUnhandledEvent marks webhook event types the platform ignores.
	// Those are acknowledged so the gateway stops retrying.
	ErrUnhandledEvent = errors.New("unhandled webhook event type")
)
