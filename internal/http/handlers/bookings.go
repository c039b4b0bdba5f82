package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iamlekside2/QuickGift/internal/http/middleware"
	"github.com/iamlekside2/QuickGift/internal/http/validation"
	"github.com/iamlekside2/QuickGift/internal/modules/bookings"
	"github.com/iamlekside2/QuickGift/internal/modules/providers"
	"github.com/iamlekside2/QuickGift/internal/shared/apperr"
	"github.com/iamlekside2/QuickGift/pkg/view"
)

type BookingsHandler struct {
	Svc       *bookings.Service
	Repo      *bookings.Repo
	Providers *providers.Repo
}

func NewBookingsHandler(svc *bookings.Service, repo *bookings.Repo, provRepo *providers.Repo) *BookingsHandler {
	return &BookingsHandler{Svc: svc, Repo: repo, Providers: provRepo}
}

type createBookingRequest struct {
	ProviderID  string  `json:"provider_id" binding:"required,uuid4"`
	ServiceID   string  `json:"service_id" binding:"required,uuid4"`
	ServiceType string  `json:"service_type" binding:"required,oneof=home salon"`
	BookingDate string  `json:"booking_date" binding:"required,datetime=2006-01-02"`
	BookingTime string  `json:"booking_time" binding:"required,datetime=15:04"`
	Address     *string `json:"address" binding:"omitempty,max=500"`
	Notes       *string `json:"notes" binding:"omitempty,max=1000"`
}

// POST /api/bookings
func (h *BookingsHandler) Create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return
	}

	date, _ := time.Parse("2006-01-02", req.BookingDate)
	if date.Before(time.Now().Truncate(24 * time.Hour)) {
		middleware.Fail(c, apperr.InvalidErr("Booking date cannot be in the past.", nil))
		return
	}

	bk, err := h.Svc.Create(c.Request.Context(), bookings.CreateInput{
		UserID:      middleware.CurrentUserID(c),
		ProviderID:  req.ProviderID,
		ServiceID:   req.ServiceID,
		ServiceType: req.ServiceType,
		BookingDate: date,
		BookingTime: req.BookingTime,
		Address:     req.Address,
		Notes:       req.Notes,
	})
	if err != nil {
		middleware.Fail(c, translate(err))
		return
	}
	c.JSON(http.StatusCreated, view.FromBooking(bk))
}

// GET /api/bookings
func (h *BookingsHandler) List(c *gin.Context) {
	res, err := h.Repo.ListByUser(c.Request.Context(), bookings.ListByUserParams{
		UserID:   middleware.CurrentUserID(c),
		Status:   c.Query("status"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	})
	if err != nil {
		middleware.Fail(c, translate(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": view.FromBookings(res.Items), "total": res.Total})
}

// GET /api/bookings/:id
func (h *BookingsHandler) Get(c *gin.Context) {
	bk, err := h.Repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Fail(c, translate(err))
		return
	}
	if !h.canSee(c, bk) {
		middleware.Fail(c, apperr.NotFoundErr("Booking not found."))
		return
	}
	c.JSON(http.StatusOK, view.FromBooking(bk))
}

type updateBookingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed in_progress completed cancelled"`
}

// PATCH /api/bookings/:id/status — the booking's provider or an admin.
func (h *BookingsHandler) UpdateStatus(c *gin.Context) {
	var req updateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return
	}

	bk, err := h.Repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Fail(c, translate(err))
		return
	}
	if !h.canManage(c, bk) {
		middleware.Fail(c, apperr.ForbiddenErr("Only the provider or an admin can update this booking."))
		return
	}

	to, ok := bookings.ParseStatus(req.Status)
	if !ok {
		middleware.Fail(c, apperr.InvalidErr("Unknown booking status.", nil))
		return
	}

	updated, err := h.Svc.UpdateStatus(c.Request.Context(), bookings.UpdateStatusInput{
		BookingID: bk.ID,
		To:        to,
	})
	if err != nil {
		middleware.Fail(c, translate(err))
		return
	}
	c.JSON(http.StatusOK, view.FromBooking(updated))
}

// GET /api/provider/bookings — bookings for the caller's provider profile.
func (h *BookingsHandler) ListForProvider(c *gin.Context) {
	prov, err := h.providerFor(c)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	items, err := h.Repo.ListByProvider(c.Request.Context(), prov.ID, c.Query("status"))
	if err != nil {
		middleware.Fail(c, translate(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": view.FromBookings(items)})
}

func (h *BookingsHandler) canSee(c *gin.Context, bk bookings.Booking) bool {
	uid := middleware.CurrentUserID(c)
	if bk.UserID == uid || middleware.CurrentRole(c) == "admin" {
		return true
	}
	if prov, err := h.Providers.Get(c.Request.Context(), bk.ProviderID); err == nil {
		return prov.UserID == uid
	}
	return false
}

func (h *BookingsHandler) canManage(c *gin.Context, bk bookings.Booking) bool {
	if middleware.CurrentRole(c) == "admin" {
		return true
	}
	if prov, err := h.Providers.Get(c.Request.Context(), bk.ProviderID); err == nil {
		return prov.UserID == middleware.CurrentUserID(c)
	}
	return false
}

func (h *BookingsHandler) providerFor(c *gin.Context) (providers.Provider, error) {
	prov, err := h.Providers.GetByUser(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		return providers.Provider{}, apperr.NotFoundErr("No provider profile for this account.")
	}
	return prov, nil
}
