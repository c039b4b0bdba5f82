package payments

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	paystackDefaultBaseURL = "https://api.paystack.co"
	signatureHeader        = "x-paystack-signature"
)

// Paystack implements Gateway against the live Paystack REST API. Amounts
// cross the wire in kobo, which matches the internal representation, so no
// conversion happens here.
type Paystack struct {
	secret  string
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger
}

func NewPaystack(secretKey, baseURL string, logger *slog.Logger) *Paystack {
	if baseURL == "" {
		baseURL = paystackDefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Paystack{
		secret:  secretKey,
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

func (p *Paystack) Name() string { return "paystack" }

func (p *Paystack) Initialize(ctx context.Context, req InitializeRequest) (InitializeResponse, error) {
	body := map[string]any{
		"reference":    req.Reference,
		"amount":       req.AmountKobo,
		"currency":     req.Currency,
		"email":        req.Email,
		"callback_url": req.CallbackURL,
	}
	if len(req.Metadata) > 0 {
		body["metadata"] = req.Metadata
	}

	var out struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		Data    struct {
			AuthorizationURL string `json:"authorization_url"`
			AccessCode       string `json:"access_code"`
			Reference        string `json:"reference"`
		} `json:"data"`
	}
	if err := p.call(ctx, http.MethodPost, "/transaction/initialize", body, &out); err != nil {
		return InitializeResponse{}, err
	}
	if !out.Status {
		return InitializeResponse{}, fmt.Errorf("%w: initialize rejected: %s", ErrGatewayUnavailable, out.Message)
	}
	return InitializeResponse{
		AuthorizationURL: out.Data.AuthorizationURL,
		AccessCode:       out.Data.AccessCode,
	}, nil
}

func (p *Paystack) Verify(ctx context.Context, reference string) (VerifyResult, error) {
	var out struct {
		Status bool `json:"status"`
		Data   struct {
			Status  string `json:"status"`
			Channel string `json:"channel"`
		} `json:"data"`
	}
	if err := p.call(ctx, http.MethodGet, "/transaction/verify/"+reference, nil, &out); err != nil {
		return VerifyResult{}, err
	}

	res := VerifyResult{Outcome: OutcomeFailure, Channel: out.Data.Channel}
	if out.Data.Status == "success" {
		res.Outcome = OutcomeSuccess
	}
	return res, nil
}

// VerifyAndParseWebhook checks the HMAC-SHA512 signature Paystack sends over
// the raw body, then maps charge events onto outcomes. Unknown event types
// return ErrUnhandledEvent so the caller can acknowledge without acting.
func (p *Paystack) VerifyAndParseWebhook(header http.Header, body []byte) (WebhookEvent, error) {
	sig := header.Get(signatureHeader)
	if sig == "" || !validSignature(p.secret, body, sig) {
		return WebhookEvent{}, ErrSignatureInvalid
	}

	var evt struct {
		Event string `json:"event"`
		Data  struct {
			Reference string `json:"reference"`
			Channel   string `json:"channel"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &evt); err != nil {
		return WebhookEvent{}, fmt.Errorf("parse webhook body: %w", err)
	}

	var outcome Outcome
	switch evt.Event {
	case "charge.success":
		outcome = OutcomeSuccess
	case "charge.failed":
		outcome = OutcomeFailure
	default:
		return WebhookEvent{}, fmt.Errorf("%w: %s", ErrUnhandledEvent, evt.Event)
	}

	return WebhookEvent{
		EventID:   evt.Event + ":" + evt.Data.Reference,
		EventType: evt.Event,
		Outcome:   outcome,
		Reference: evt.Data.Reference,
		Channel:   evt.Data.Channel,
	}, nil
}

func validSignature(secret string, body []byte, got string) bool {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	want := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(want), []byte(got))
}

func (p *Paystack) call(ctx context.Context, method, path string, body any, out any) error {
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+p.secret)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		p.logger.Warn("paystack call failed",
			"method", method, "path", path, "status", resp.StatusCode, "body", string(raw))
		return fmt.Errorf("%w: %s %s returned %d", ErrGatewayUnavailable, method, path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
