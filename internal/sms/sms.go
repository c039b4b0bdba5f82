package sms

import "context"

// Sender delivers a single SMS. Implementations must be safe for
// concurrent use.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}
