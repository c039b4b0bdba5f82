package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamlekside2/QuickGift/internal/http/middleware"
	"github.com/iamlekside2/QuickGift/internal/http/validation"
	"github.com/iamlekside2/QuickGift/internal/modules/reviews"
	"github.com/iamlekside2/QuickGift/internal/shared/apperr"
	"github.com/iamlekside2/QuickGift/pkg/view"
)

type ReviewsHandler struct {
	Svc *reviews.Service
}

func NewReviewsHandler(svc *reviews.Service) *ReviewsHandler {
	return &ReviewsHandler{Svc: svc}
}

type createReviewRequest struct {
	TargetType string  `json:"target_type" binding:"required,oneof=product provider"`
	TargetID   string  `json:"target_id" binding:"required,uuid4"`
	Rating     int     `json:"rating" binding:"required,gte=1,lte=5"`
	Comment    *string `json:"comment" binding:"omitempty,max=2000"`
}

// POST /api/reviews
func (h *ReviewsHandler) Create(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return
	}

	rv, err := h.Svc.Create(c.Request.Context(), reviews.CreateInput{
		UserID:     middleware.CurrentUserID(c),
		TargetType: reviews.TargetType(req.TargetType),
		TargetID:   req.TargetID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		middleware.Fail(c, translate(err))
		return
	}
	c.JSON(http.StatusCreated, view.FromReview(rv))
}

// GET /api/reviews?target_type=product&target_id=...
func (h *ReviewsHandler) List(c *gin.Context) {
	items, err := h.Svc.ListForTarget(c.Request.Context(),
		reviews.TargetType(c.Query("target_type")), c.Query("target_id"))
	if err != nil {
		middleware.Fail(c, translate(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": view.FromReviews(items)})
}
