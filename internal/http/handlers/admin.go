package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/iamlekside2/QuickGift/internal/http/middleware"
	"github.com/iamlekside2/QuickGift/internal/http/validation"
	"github.com/iamlekside2/QuickGift/internal/modules/bookings"
	"github.com/iamlekside2/QuickGift/internal/modules/orders"
	"github.com/iamlekside2/QuickGift/internal/modules/payments"
	"github.com/iamlekside2/QuickGift/internal/modules/providers"
	"github.com/iamlekside2/QuickGift/internal/shared/apperr"
	"github.com/iamlekside2/QuickGift/pkg/view"
)

type AdminHandler struct {
	DB        *gorm.DB
	Orders    *orders.Repo
	Bookings  *bookings.Repo
	Providers *providers.Repo
}

func NewAdminHandler(db *gorm.DB, ordersRepo *orders.Repo, bookingsRepo *bookings.Repo, provRepo *providers.Repo) *AdminHandler {
	return &AdminHandler{DB: db, Orders: ordersRepo, Bookings: bookingsRepo, Providers: provRepo}
}

type dashboard struct {
	RevenueKobo      int64 `json:"revenue_kobo"`
	CommissionKobo   int64 `json:"commission_kobo"`
	OrderCount       int64 `json:"order_count"`
	BookingCount     int64 `json:"booking_count"`
	PendingOrders    int64 `json:"pending_orders"`
	PendingBookings  int64 `json:"pending_bookings"`
	PendingProviders int64 `json:"pending_providers"`
	UserCount        int64 `json:"user_count"`
}

// GET /api/admin/dashboard
//
// Revenue counts paid orders at full total and paid bookings at the
// deposit actually collected; commission is the platform's cut of both.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	var d dashboard

	row := h.DB.WithContext(ctx).Model(&orders.Order{}).
		Select("COALESCE(SUM(total_kobo),0) AS revenue, COALESCE(SUM(commission_kobo),0) AS commission").
		Where("payment_status = ?", orders.PaymentPaid)
	var ord struct{ Revenue, Commission int64 }
	if err := row.Scan(&ord).Error; err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	var bkg struct{ Revenue, Commission int64 }
	if err := h.DB.WithContext(ctx).Model(&bookings.Booking{}).
		Select("COALESCE(SUM(deposit_kobo),0) AS revenue, COALESCE(SUM(commission_kobo),0) AS commission").
		Where("payment_status = ?", bookings.PaymentPaid).
		Scan(&bkg).Error; err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	d.RevenueKobo = ord.Revenue + bkg.Revenue
	d.CommissionKobo = ord.Commission + bkg.Commission

	counts := []struct {
		dst   *int64
		model any
		where []any
	}{
		{&d.OrderCount, &orders.Order{}, nil},
		{&d.BookingCount, &bookings.Booking{}, nil},
		{&d.PendingOrders, &orders.Order{}, []any{"status = ?", orders.StatusPending}},
		{&d.PendingBookings, &bookings.Booking{}, []any{"status = ?", bookings.StatusPending}},
		{&d.PendingProviders, &providers.Provider{}, []any{"status = ?", providers.StatusPending}},
	}
	for _, q := range counts {
		dbq := h.DB.WithContext(ctx).Model(q.model)
		if q.where != nil {
			dbq = dbq.Where(q.where[0], q.where[1:]...)
		}
		if err := dbq.Count(q.dst).Error; err != nil {
			middleware.Fail(c, apperr.Wrap(err))
			return
		}
	}

	if err := h.DB.WithContext(ctx).Table("users").Count(&d.UserCount).Error; err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.JSON(http.StatusOK, d)
}

// GET /api/admin/orders
func (h *AdminHandler) ListOrders(c *gin.Context) {
	res, err := h.Orders.AdminList(c.Request.Context(), orders.AdminListParams{
		Q:        c.Query("q"),
		Status:   c.Query("status"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 30),
	})
	if err != nil {
		middleware.Fail(c, translate(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": view.FromOrders(res.Items), "total": res.Total})
}

// GET /api/admin/bookings
func (h *AdminHandler) ListBookings(c *gin.Context) {
	var items []bookings.Booking
	q := h.DB.WithContext(c.Request.Context()).Model(&bookings.Booking{})
	if s := c.Query("status"); s != "" {
		q = q.Where("status = ?", s)
	}
	if err := q.Order("created_at DESC").Limit(100).Find(&items).Error; err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": view.FromBookings(items)})
}

// GET /api/admin/payments
func (h *AdminHandler) ListPayments(c *gin.Context) {
	var items []payments.Payment
	q := h.DB.WithContext(c.Request.Context()).Model(&payments.Payment{})
	if s := c.Query("status"); s != "" {
		q = q.Where("status = ?", s)
	}
	if err := q.Order("created_at DESC").Limit(100).Find(&items).Error; err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": view.FromPayments(items)})
}

type setProviderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending verified suspended"`
}

// PATCH /api/admin/providers/:id/status — approve or suspend a provider.
func (h *AdminHandler) SetProviderStatus(c *gin.Context) {
	var req setProviderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return
	}

	if err := h.Providers.SetStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		middleware.Fail(c, translate(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}
