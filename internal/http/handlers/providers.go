package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamlekside2/QuickGift/internal/http/middleware"
	"github.com/iamlekside2/QuickGift/internal/http/validation"
	"github.com/iamlekside2/QuickGift/internal/modules/providers"
	"github.com/iamlekside2/QuickGift/internal/shared/apperr"
	"github.com/iamlekside2/QuickGift/internal/storage"
	"github.com/iamlekside2/QuickGift/pkg/view"
)

const maxPortfolioUpload = 5 << 20 // 5 MiB

type ProvidersHandler struct {
	Repo    *providers.Repo
	Storage storage.Storage
}

func NewProvidersHandler(repo *providers.Repo, store storage.Storage) *ProvidersHandler {
	return &ProvidersHandler{Repo: repo, Storage: store}
}

// GET /api/providers
func (h *ProvidersHandler) List(c *gin.Context) {
	params := providers.ListParams{
		City:        c.Query("city"),
		ServiceType: c.Query("service_type"),
		Search:      c.Query("q"),
		Sort:        c.Query("sort"),
	}
	if v := c.Query("available"); v != "" {
		avail := v == "true" || v == "1"
		params.Available = &avail
	}

	items, err := h.Repo.List(c.Request.Context(), params)
	if err != nil {
		middleware.Fail(c, translate(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": view.FromProviders(items)})
}

// GET /api/providers/:id
func (h *ProvidersHandler) Get(c *gin.Context) {
	p, services, portfolio, err := h.Repo.GetDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Fail(c, translate(err))
		return
	}
	c.JSON(http.StatusOK, view.FromProviderDetail(p, services, portfolio))
}

type registerProviderRequest struct {
	BusinessName       string  `json:"business_name" binding:"required,min=2,max=200"`
	ServiceType        string  `json:"service_type" binding:"required,max=100"`
	Bio                *string `json:"bio"`
	Location           string  `json:"location" binding:"required,max=200"`
	City               string  `json:"city" binding:"required,max=50"`
	ExperienceYears    int     `json:"experience_years" binding:"gte=0,lte=60"`
	OffersHomeService  bool    `json:"offers_home_service"`
	OffersSalonService bool    `json:"offers_salon_service"`
}

// POST /api/providers — registers the caller as a pending provider.
func (h *ProvidersHandler) Register(c *gin.Context) {
	var req registerProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return
	}

	p, err := h.Repo.Create(c.Request.Context(), providers.CreateInput{
		UserID:             middleware.CurrentUserID(c),
		BusinessName:       req.BusinessName,
		ServiceType:        req.ServiceType,
		Bio:                req.Bio,
		Location:           req.Location,
		City:               req.City,
		ExperienceYears:    req.ExperienceYears,
		OffersHomeService:  req.OffersHomeService,
		OffersSalonService: req.OffersSalonService,
	})
	if err != nil {
		middleware.Fail(c, translate(err))
		return
	}
	c.JSON(http.StatusCreated, view.FromProvider(p))
}

type updateProviderRequest struct {
	BusinessName *string `json:"business_name" binding:"omitempty,min=2,max=200"`
	ServiceType  *string `json:"service_type" binding:"omitempty,max=100"`
	Bio          *string `json:"bio"`
	Location     *string `json:"location" binding:"omitempty,max=200"`
	City         *string `json:"city" binding:"omitempty,max=50"`
	IsAvailable  *bool   `json:"is_available"`
}

// PATCH /api/providers/:id — owner only; the user_id guard is in the repo.
func (h *ProvidersHandler) Update(c *gin.Context) {
	var req updateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return
	}

	p, err := h.Repo.Update(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c), providers.UpdateInput{
		BusinessName: req.BusinessName,
		ServiceType:  req.ServiceType,
		Bio:          req.Bio,
		Location:     req.Location,
		City:         req.City,
		IsAvailable:  req.IsAvailable,
	})
	if err != nil {
		middleware.Fail(c, translate(err))
		return
	}
	c.JSON(http.StatusOK, view.FromProvider(p))
}

type addServiceRequest struct {
	Name            string  `json:"name" binding:"required,min=2,max=200"`
	Description     *string `json:"description"`
	PriceKobo       int64   `json:"price_kobo" binding:"required,gte=100"`
	DurationMinutes int     `json:"duration_minutes" binding:"gte=0,lte=480"`
}

// POST /api/providers/:id/services
func (h *ProvidersHandler) AddService(c *gin.Context) {
	providerID := c.Param("id")
	if err := h.requireOwner(c, providerID); err != nil {
		middleware.Fail(c, err)
		return
	}

	var req addServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return
	}

	s, err := h.Repo.AddService(c.Request.Context(), providerID, providers.ServiceInput{
		Name:            req.Name,
		Description:     req.Description,
		PriceKobo:       req.PriceKobo,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		middleware.Fail(c, translate(err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": s.ID, "name": s.Name, "price_kobo": s.PriceKobo})
}

// POST /api/providers/:id/portfolio — multipart image upload.
func (h *ProvidersHandler) UploadPortfolio(c *gin.Context) {
	providerID := c.Param("id")
	if err := h.requireOwner(c, providerID); err != nil {
		middleware.Fail(c, err)
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Attach an image file under the \"image\" field.", nil))
		return
	}
	if fh.Size > maxPortfolioUpload {
		middleware.Fail(c, apperr.InvalidErr("Image must be 5MB or smaller.", nil))
		return
	}

	f, err := fh.Open()
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	defer f.Close()

	put, err := h.Storage.Put(c.Request.Context(), f, storage.PutInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Folder:      "portfolio",
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	var caption *string
	if v := c.PostForm("caption"); v != "" {
		caption = &v
	}
	p, err := h.Repo.AddPortfolio(c.Request.Context(), providerID, put.Key, put.URL, caption)
	if err != nil {
		middleware.Fail(c, translate(err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": p.ID, "image_url": p.ImageURL})
}

func (h *ProvidersHandler) requireOwner(c *gin.Context, providerID string) error {
	p, err := h.Repo.Get(c.Request.Context(), providerID)
	if err != nil {
		return translate(err)
	}
	if p.UserID != middleware.CurrentUserID(c) {
		return apperr.ForbiddenErr("You do not manage this provider profile.")
	}
	return nil
}
