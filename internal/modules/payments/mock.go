package payments

import (
	"context"
	"net/http"
)

// Mock is the development gateway used when no Paystack secret is
// configured. Initialize returns no authorization URL, Verify always
// reports success, and webhooks are validated against the same signature
// scheme as Paystack so the mock webhook tool can exercise the full path.
type Mock struct {
	secret string
}

func NewMock(secret string) *Mock { return &Mock{secret: secret} }

func (m *Mock) Name() string { return "mock" }

func (m *Mock) Initialize(ctx context.Context, req InitializeRequest) (InitializeResponse, error) {
	return InitializeResponse{}, nil
}

func (m *Mock) Verify(ctx context.Context, reference string) (VerifyResult, error) {
	return VerifyResult{Outcome: OutcomeSuccess, Channel: "mock"}, nil
}

func (m *Mock) VerifyAndParseWebhook(header http.Header, body []byte) (WebhookEvent, error) {
	if m.secret == "" {
		return WebhookEvent{}, ErrSignatureInvalid
	}
	real := &Paystack{secret: m.secret}
	evt, err := real.VerifyAndParseWebhook(header, body)
	if err != nil {
		return WebhookEvent{}, err
	}
	if evt.Channel == "" {
		evt.Channel = "mock"
	}
	return evt, nil
}
