package payments

import (
	"context"
	"net/http"
)

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

type InitializeRequest struct {
	Reference   string
	AmountKobo  int64
	Currency    string
	Email       string
	CallbackURL string
	Metadata    map[string]any
}

type InitializeResponse struct {
	AuthorizationURL string
	AccessCode       string
}

type VerifyResult struct {
	Outcome Outcome
	Channel string
}

type WebhookEvent struct {
	EventID   string
	EventType string
	Outcome   Outcome
	Reference string
	Channel   string
}

// Gateway is the payment provider boundary. The contract it owes the core:
// a reference, an outcome, optionally a channel tag, and webhook calls whose
// authenticity can be checked against a shared secret.
type Gateway interface {
	Name() string
	Initialize(ctx context.Context, req InitializeRequest) (InitializeResponse, error)
	Verify(ctx context.Context, reference string) (VerifyResult, error)

	// VerifyAndParseWebhook checks the signature over the raw body and
	// parses the event. Must not be called after reading the body through
	// any transformation.
	VerifyAndParseWebhook(header http.Header, body []byte) (WebhookEvent, error)
}
