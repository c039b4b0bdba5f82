package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamlekside2/QuickGift/internal/modules/payments"
)

type WebhookHandler struct {
	Logger  *slog.Logger
	Gateway payments.Gateway
	Engine  *payments.Engine
}

func NewWebhookHandler(logger *slog.Logger, gw payments.Gateway, engine *payments.Engine) *WebhookHandler {
	return &WebhookHandler{Logger: logger, Gateway: gw, Engine: engine}
}

// POST /webhooks/paystack
//
// Response contract: bad signature is 401 before any state change; events
// we resolve (including no-op replays) and events we deliberately ignore
// are 200 so the gateway stops retrying; only internal failures are 500.
func (h *WebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid body"})
		return
	}

	evt, err := h.Gateway.VerifyAndParseWebhook(c.Request.Header, body)
	if err != nil {
		if errors.Is(err, payments.ErrUnhandledEvent) {
			h.Logger.InfoContext(c.Request.Context(), "webhook event ignored", "error", err)
			c.JSON(http.StatusOK, gin.H{"status": "ignored"})
			return
		}
		h.Logger.WarnContext(c.Request.Context(), "webhook rejected", "error", err)
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "invalid signature"})
		return
	}

	res, err := h.Engine.ProcessWebhook(c.Request.Context(), h.Gateway.Name(), evt, body)
	if err != nil {
		if errors.Is(err, payments.ErrPaymentNotFound) {
			// A reference we never issued; retrying will not help the
			// gateway, so acknowledge and keep the log line.
			h.Logger.WarnContext(c.Request.Context(), "webhook for unknown reference",
				"reference", evt.Reference, "event_id", evt.EventID)
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}
		h.Logger.ErrorContext(c.Request.Context(), "webhook apply failed",
			"reference", evt.Reference, "event_id", evt.EventID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"reference":      res.Reference,
		"payment_status": res.PaymentStatus,
		"applied":        res.Applied,
	})
}
