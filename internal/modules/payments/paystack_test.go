package payments_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamlekside2/QuickGift/internal/modules/payments"
)

const testSecret = "sk_test_0000000000"

func sign(secret string, body []byte) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestPaystackInitialize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer "+testSecret, r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "QG-PAY-AB12CD34EF56", body["reference"])
		assert.Equal(t, float64(26000), body["amount"])
		assert.Equal(t, "NGN", body["currency"])

		json.NewEncoder(w).Encode(map[string]any{
			"status":  true,
			"message": "Authorization URL created",
			"data": map[string]any{
				"authorization_url": "https://checkout.paystack.com/abc123",
				"access_code":       "abc123",
				"reference":         "QG-PAY-AB12CD34EF56",
			},
		})
	}))
	defer srv.Close()

	gw := payments.NewPaystack(testSecret, srv.URL, nil)
	resp, err := gw.Initialize(context.Background(), payments.InitializeRequest{
		Reference:  "QG-PAY-AB12CD34EF56",
		AmountKobo: 26000,
		Currency:   "NGN",
		Email:      "ada@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.paystack.com/abc123", resp.AuthorizationURL)
	assert.Equal(t, "abc123", resp.AccessCode)
}

func TestPaystackInitializeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	gw := payments.NewPaystack(testSecret, srv.URL, nil)
	_, err := gw.Initialize(context.Background(), payments.InitializeRequest{
		Reference: "QG-PAY-AB12CD34EF56", AmountKobo: 1000, Currency: "NGN",
	})
	assert.ErrorIs(t, err, payments.ErrGatewayUnavailable)
}

func TestPaystackVerify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/verify/QG-PAY-AB12CD34EF56", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"status": true,
			"data":   map[string]any{"status": "success", "channel": "card"},
		})
	}))
	defer srv.Close()

	gw := payments.NewPaystack(testSecret, srv.URL, nil)
	res, err := gw.Verify(context.Background(), "QG-PAY-AB12CD34EF56")
	require.NoError(t, err)
	assert.Equal(t, payments.OutcomeSuccess, res.Outcome)
	assert.Equal(t, "card", res.Channel)
}

func TestPaystackVerifyAbandoned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status": true,
			"data":   map[string]any{"status": "abandoned", "channel": ""},
		})
	}))
	defer srv.Close()

	gw := payments.NewPaystack(testSecret, srv.URL, nil)
	res, err := gw.Verify(context.Background(), "QG-PAY-AB12CD34EF56")
	require.NoError(t, err)
	assert.Equal(t, payments.OutcomeFailure, res.Outcome)
}

func TestPaystackWebhookSignature(t *testing.T) {
	gw := payments.NewPaystack(testSecret, "", nil)
	body := []byte(`{"event":"charge.success","data":{"reference":"QG-PAY-AB12CD34EF56","channel":"card"}}`)

	t.Run("valid", func(t *testing.T) {
		h := http.Header{}
		h.Set("x-paystack-signature", sign(testSecret, body))
		evt, err := gw.VerifyAndParseWebhook(h, body)
		require.NoError(t, err)
		assert.Equal(t, payments.OutcomeSuccess, evt.Outcome)
		assert.Equal(t, "QG-PAY-AB12CD34EF56", evt.Reference)
		assert.Equal(t, "charge.success:QG-PAY-AB12CD34EF56", evt.EventID)
		assert.Equal(t, "card", evt.Channel)
	})

	t.Run("wrong secret", func(t *testing.T) {
		h := http.Header{}
		h.Set("x-paystack-signature", sign("sk_test_wrong", body))
		_, err := gw.VerifyAndParseWebhook(h, body)
		assert.ErrorIs(t, err, payments.ErrSignatureInvalid)
	})

	t.Run("missing header", func(t *testing.T) {
		_, err := gw.VerifyAndParseWebhook(http.Header{}, body)
		assert.ErrorIs(t, err, payments.ErrSignatureInvalid)
	})

	t.Run("tampered body", func(t *testing.T) {
		h := http.Header{}
		h.Set("x-paystack-signature", sign(testSecret, body))
		tampered := []byte(`{"event":"charge.success","data":{"reference":"QG-PAY-OTHER","channel":"card"}}`)
		_, err := gw.VerifyAndParseWebhook(h, tampered)
		assert.ErrorIs(t, err, payments.ErrSignatureInvalid)
	})
}

func TestPaystackWebhookUnhandledEvent(t *testing.T) {
	gw := payments.NewPaystack(testSecret, "", nil)
	body := []byte(`{"event":"transfer.success","data":{"reference":"TRF-1"}}`)
	h := http.Header{}
	h.Set("x-paystack-signature", sign(testSecret, body))

	_, err := gw.VerifyAndParseWebhook(h, body)
	assert.ErrorIs(t, err, payments.ErrUnhandledEvent)
}

func TestPaystackWebhookChargeFailed(t *testing.T) {
	gw := payments.NewPaystack(testSecret, "", nil)
	body := []byte(`{"event":"charge.failed","data":{"reference":"QG-PAY-AB12CD34EF56","channel":"card"}}`)
	h := http.Header{}
	h.Set("x-paystack-signature", sign(testSecret, body))

	evt, err := gw.VerifyAndParseWebhook(h, body)
	require.NoError(t, err)
	assert.Equal(t, payments.OutcomeFailure, evt.Outcome)
}
