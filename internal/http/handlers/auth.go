package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamlekside2/QuickGift/internal/http/middleware"
	"github.com/iamlekside2/QuickGift/internal/http/validation"
	"github.com/iamlekside2/QuickGift/internal/modules/users"
	"github.com/iamlekside2/QuickGift/internal/shared/apperr"
	"github.com/iamlekside2/QuickGift/pkg/view"
)

type AuthHandler struct {
	Users *users.Service
}

func NewAuthHandler(users *users.Service) *AuthHandler {
	return &AuthHandler{Users: users}
}

type sendOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// POST /api/auth/send-otp
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req sendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return
	}

	if err := h.Users.SendOTP(c.Request.Context(), req.Phone); err != nil {
		middleware.Fail(c, translate(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}

type verifyOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required,min=4,max=8"`
}

// POST /api/auth/verify-otp
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return
	}

	res, err := h.Users.VerifyOTP(c.Request.Context(), req.Phone, req.Code)
	if err != nil {
		middleware.Fail(c, translate(err))
		return
	}
	c.JSON(http.StatusOK, view.FromAuth(res))
}

type registerRequest struct {
	FullName string  `json:"full_name" binding:"required,min=2,max=100"`
	Phone    string  `json:"phone" binding:"required"`
	Email    string  `json:"email" binding:"omitempty,email"`
	Password string  `json:"password" binding:"required,min=8,max=72"`
	City     *string `json:"city" binding:"omitempty,max=50"`
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return
	}

	res, err := h.Users.Register(c.Request.Context(), users.RegisterInput{
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: req.Password,
		City:     req.City,
	})
	if err != nil {
		middleware.Fail(c, translate(err))
		return
	}
	c.JSON(http.StatusCreated, view.FromAuth(res))
}

type loginRequest struct {
	Identifier string `json:"identifier" binding:"required"` // phone or email
	Password   string `json:"password" binding:"required"`
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return
	}

	res, err := h.Users.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		middleware.Fail(c, translate(err))
		return
	}
	c.JSON(http.StatusOK, view.FromAuth(res))
}

// GET /api/me
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.Users.Get(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		middleware.Fail(c, translate(err))
		return
	}
	c.JSON(http.StatusOK, view.FromUser(u))
}

type updateProfileRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,min=2,max=100"`
	Email    *string `json:"email" binding:"omitempty,email"`
	City     *string `json:"city" binding:"omitempty,max=50"`
}

// PATCH /api/me
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Check the highlighted fields.", validation.FromBindError(err, &req)))
		return
	}

	u, err := h.Users.UpdateProfile(c.Request.Context(), middleware.CurrentUserID(c), users.UpdateProfileInput{
		FullName: req.FullName,
		Email:    req.Email,
		City:     req.City,
	})
	if err != nil {
		middleware.Fail(c, translate(err))
		return
	}
	c.JSON(http.StatusOK, view.FromUser(u))
}
