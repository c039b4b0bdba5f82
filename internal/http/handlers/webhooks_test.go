package handlers_test

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/iamlekside2/QuickGift/internal/http/handlers"
	"github.com/iamlekside2/QuickGift/internal/modules/orders"
	"github.com/iamlekside2/QuickGift/internal/modules/payments"
	"github.com/iamlekside2/QuickGift/internal/shared/keylock"
)

const webhookSecret = "sk_test_webhook"

func newWebhookRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&orders.Order{},
		&payments.Payment{}, &payments.GatewayEvent{},
	))

	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := payments.NewEngine(db, keylock.New(), discard)
	h := handlers.NewWebhookHandler(discard, payments.NewMock(webhookSecret), engine)

	r := gin.New()
	r.POST("/webhooks/paystack", h.Handle)
	return r, db
}

func seedPaidOrder(t *testing.T, db *gorm.DB) (orders.Order, payments.Payment) {
	t.Helper()
	now := time.Now()
	o := orders.Order{
		ID:              uuid.NewString(),
		OrderNumber:     fmt.Sprintf("QG-%04d", now.UnixNano()%10000),
		UserID:          uuid.NewString(),
		Status:          orders.StatusPending,
		PaymentStatus:   orders.PaymentPending,
		SubtotalKobo:    25000,
		DeliveryFeeKobo: 1000,
		CommissionKobo:  6250,
		TotalKobo:       26000,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	require.NoError(t, db.Create(&o).Error)

	p := payments.Payment{
		ID:         uuid.NewString(),
		UserID:     o.UserID,
		Reference:  payments.NewReference(),
		OrderID:    &o.ID,
		AmountKobo: o.TotalKobo,
		Currency:   payments.Currency,
		Status:     payments.StatusPending,
		Gateway:    "mock",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, db.Create(&p).Error)
	return o, p
}

func postWebhook(t *testing.T, r *gin.Engine, secret, event, reference string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"event": event,
		"data": map[string]any{
			"reference": reference,
			"channel":   "card",
			"amount":    26000,
			"currency":  "NGN",
		},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/paystack", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		mac := hmac.New(sha512.New, []byte(secret))
		mac.Write(body)
		req.Header.Set("x-paystack-signature", hex.EncodeToString(mac.Sum(nil)))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhookConfirmsOrder(t *testing.T) {
	r, db := newWebhookRouter(t)
	o, p := seedPaidOrder(t, db)

	w := postWebhook(t, r, webhookSecret, "charge.success", p.Reference)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, p.Reference, resp["reference"])
	assert.Equal(t, true, resp["applied"])

	var gotOrder orders.Order
	require.NoError(t, db.First(&gotOrder, "id = ?", o.ID).Error)
	assert.Equal(t, orders.StatusConfirmed, gotOrder.Status)
	assert.Equal(t, orders.PaymentPaid, gotOrder.PaymentStatus)
}

func TestWebhookBadSignatureIs401(t *testing.T) {
	r, db := newWebhookRouter(t)
	o, p := seedPaidOrder(t, db)

	w := postWebhook(t, r, "sk_wrong_secret", "charge.success", p.Reference)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// rejected before any state change
	var gotOrder orders.Order
	require.NoError(t, db.First(&gotOrder, "id = ?", o.ID).Error)
	assert.Equal(t, orders.StatusPending, gotOrder.Status)

	var gotPayment payments.Payment
	require.NoError(t, db.First(&gotPayment, "id = ?", p.ID).Error)
	assert.Equal(t, payments.StatusPending, gotPayment.Status)
}

func TestWebhookMissingSignatureIs401(t *testing.T) {
	r, db := newWebhookRouter(t)
	_, p := seedPaidOrder(t, db)

	w := postWebhook(t, r, "", "charge.success", p.Reference)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebhookUnhandledEventIsAcknowledged(t *testing.T) {
	r, db := newWebhookRouter(t)
	_, p := seedPaidOrder(t, db)

	w := postWebhook(t, r, webhookSecret, "transfer.success", p.Reference)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ignored", resp["status"])

	var gotPayment payments.Payment
	require.NoError(t, db.First(&gotPayment, "id = ?", p.ID).Error)
	assert.Equal(t, payments.StatusPending, gotPayment.Status)
}

func TestWebhookUnknownReferenceIsAcknowledged(t *testing.T) {
	r, _ := newWebhookRouter(t)

	w := postWebhook(t, r, webhookSecret, "charge.success", "QG-PAY-DEADBEEF0000")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestWebhookReplayReportsNotApplied(t *testing.T) {
	r, db := newWebhookRouter(t)
	_, p := seedPaidOrder(t, db)

	first := postWebhook(t, r, webhookSecret, "charge.success", p.Reference)
	require.Equal(t, http.StatusOK, first.Code)

	second := postWebhook(t, r, webhookSecret, "charge.success", p.Reference)
	require.Equal(t, http.StatusOK, second.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["applied"])

	var count int64
	require.NoError(t, db.Model(&payments.GatewayEvent{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestWebhookChargeFailedMarksPaymentFailed(t *testing.T) {
	r, db := newWebhookRouter(t)
	o, p := seedPaidOrder(t, db)

	w := postWebhook(t, r, webhookSecret, "charge.failed", p.Reference)
	require.Equal(t, http.StatusOK, w.Code)

	var gotPayment payments.Payment
	require.NoError(t, db.First(&gotPayment, "id = ?", p.ID).Error)
	assert.Equal(t, payments.StatusFailed, gotPayment.Status)

	var gotOrder orders.Order
	require.NoError(t, db.First(&gotOrder, "id = ?", o.ID).Error)
	assert.Equal(t, orders.StatusPending, gotOrder.Status)
}
