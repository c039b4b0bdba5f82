package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iamlekside2/QuickGift/internal/http/middleware"
	"github.com/iamlekside2/QuickGift/internal/http/validation"
	"github.com/iamlekside2/QuickGift/internal/modules/orders"
	"github.com/iamlekside2/QuickGift/internal/shared/apperr"
	"github.com/iamlekside2/QuickGift/pkg/view"
)

type OrdersHandler struct {
	Svc  *orders.Service
	Repo *orders.Repo
}

func NewOrdersHandler(svc *orders.Service, repo *orders.Repo) *OrdersHandler {
	return &OrdersHandler{Svc: svc, Repo: repo}
}

type orderItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid4"`
	Quantity  int    `json:"quantity" binding:"required,gte=1,lte=50"`
}

type createOrderRequest struct {
	Items []orderItemRequest `json:"items" binding:"required,min=1,dive"`

	DeliveryAddress *string `json:"delivery_address" binding:"omitempty,max=500"`
	DeliveryCity    *string `json:"delivery_city" binding:"omitempty,max=50"`
	RecipientName   *string `json:"recipient_name" binding:"omitempty,max=100"`
	RecipientPhone  *string `json:"recipient_phone" binding:"omitempty,max=20"`
	PersonalMessage *string `json:"personal_message" binding:"omitempty,max=1000"`
	IsAnonymous     bool    `json:"is_anonymous"`
	IsExpress       bool    `json:"is_express"`
	ScheduledDate   *string `json:"scheduled_date" binding:"omitempty,datetime=2006-01-02"`
}

// POST /api/orders
func (h *OrdersHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return
	}

	in := orders.CreateInput{
		UserID:          middleware.CurrentUserID(c),
		DeliveryAddress: req.DeliveryAddress,
		DeliveryCity:    req.DeliveryCity,
		RecipientName:   req.RecipientName,
		RecipientPhone:  req.RecipientPhone,
		PersonalMessage: req.PersonalMessage,
		IsAnonymous:     req.IsAnonymous,
		IsExpress:       req.IsExpress,
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, orders.ItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	if req.ScheduledDate != nil {
		d, _ := time.Parse("2006-01-02", *req.ScheduledDate)
		in.ScheduledDate = &d
	}

	ord, items, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		middleware.Fail(c, translate(err))
		return
	}
	c.JSON(http.StatusCreated, view.FromOrder(ord, items))
}

// GET /api/orders
func (h *OrdersHandler) List(c *gin.Context) {
	res, err := h.Repo.ListByUser(c.Request.Context(), orders.ListByUserParams{
		UserID:   middleware.CurrentUserID(c),
		Status:   c.Query("status"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	})
	if err != nil {
		middleware.Fail(c, translate(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": view.FromOrders(res.Items), "total": res.Total})
}

// GET /api/orders/:id
func (h *OrdersHandler) Get(c *gin.Context) {
	ord, items, err := h.Repo.GetWithItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Fail(c, translate(err))
		return
	}
	if ord.UserID != middleware.CurrentUserID(c) && middleware.CurrentRole(c) != "admin" {
		middleware.Fail(c, apperr.NotFoundErr("Order not found."))
		return
	}
	c.JSON(http.StatusOK, view.FromOrder(ord, items))
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed in_transit delivered cancelled"`
}

// PATCH /api/admin/orders/:id/status
func (h *OrdersHandler) UpdateStatus(c *gin.Context) {
	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return
	}

	to, ok := orders.ParseStatus(req.Status)
	if !ok {
		middleware.Fail(c, apperr.InvalidErr("Unknown order status.", nil))
		return
	}

	ord, err := h.Svc.UpdateStatus(c.Request.Context(), orders.UpdateStatusInput{
		OrderID: c.Param("id"),
		To:      to,
	})
	if err != nil {
		middleware.Fail(c, translate(err))
		return
	}
	c.JSON(http.StatusOK, view.FromOrder(ord, nil))
}
