package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamlekside2/QuickGift/internal/http/middleware"
	"github.com/iamlekside2/QuickGift/internal/http/validation"
	"github.com/iamlekside2/QuickGift/internal/modules/payments"
	"github.com/iamlekside2/QuickGift/internal/modules/users"
	"github.com/iamlekside2/QuickGift/internal/shared/apperr"
	"github.com/iamlekside2/QuickGift/pkg/view"
)

type PaymentsHandler struct {
	Svc   *payments.Service
	Users *users.Service
}

func NewPaymentsHandler(svc *payments.Service, usersSvc *users.Service) *PaymentsHandler {
	return &PaymentsHandler{Svc: svc, Users: usersSvc}
}

type initializePaymentRequest struct {
	OrderID   *string `json:"order_id" binding:"omitempty,uuid4"`
	BookingID *string `json:"booking_id" binding:"omitempty,uuid4"`
}

// POST /api/payments/initialize
func (h *PaymentsHandler) Initialize(c *gin.Context) {
	var req initializePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return
	}

	uid := middleware.CurrentUserID(c)
	email := ""
	if u, err := h.Users.Get(c.Request.Context(), uid); err == nil && u.Email != nil {
		email = *u.Email
	}

	res, err := h.Svc.Initialize(c.Request.Context(), payments.InitializeInput{
		UserID:    uid,
		Email:     email,
		OrderID:   req.OrderID,
		BookingID: req.BookingID,
	})
	if err != nil {
		middleware.Fail(c, translate(err))
		return
	}
	c.JSON(http.StatusCreated, view.FromPaymentInit(res))
}

// GET /api/payments/verify/:reference — client-driven confirmation after
// the checkout redirect.
func (h *PaymentsHandler) Verify(c *gin.Context) {
	res, err := h.Svc.Verify(c.Request.Context(), middleware.CurrentUserID(c), c.Param("reference"))
	if err != nil {
		middleware.Fail(c, translate(err))
		return
	}
	c.JSON(http.StatusOK, view.FromReconcile(res))
}

// GET /api/payments
func (h *PaymentsHandler) List(c *gin.Context) {
	items, err := h.Svc.ListByUser(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		middleware.Fail(c, translate(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": view.FromPayments(items)})
}

// GET /api/payments/:reference
func (h *PaymentsHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), middleware.CurrentUserID(c), c.Param("reference"))
	if err != nil {
		middleware.Fail(c, translate(err))
		return
	}
	c.JSON(http.StatusOK, view.FromPayment(p))
}
