package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	appconfig "github.com/iamlekside2/QuickGift/internal/config"
	"github.com/iamlekside2/QuickGift/internal/http/handlers"
	"github.com/iamlekside2/QuickGift/internal/http/middleware"
	"github.com/iamlekside2/QuickGift/internal/modules/bookings"
	"github.com/iamlekside2/QuickGift/internal/modules/orders"
	"github.com/iamlekside2/QuickGift/internal/modules/payments"
	"github.com/iamlekside2/QuickGift/internal/modules/products"
	"github.com/iamlekside2/QuickGift/internal/modules/providers"
	"github.com/iamlekside2/QuickGift/internal/modules/reviews"
	"github.com/iamlekside2/QuickGift/internal/modules/users"
	"github.com/iamlekside2/QuickGift/internal/storage"
)

// Deps carries the wired services; main builds them once and hands them in.
type Deps struct {
	Config appconfig.Config
	DB     *gorm.DB

	Users    *users.Service
	Tokens   *users.TokenIssuer
	Orders   *orders.Service
	Bookings *bookings.Service
	Payments *payments.Service
	Engine   *payments.Engine
	Gateway  payments.Gateway
	Reviews  *reviews.Service
	Storage  storage.Storage
}

func NewRouter(logger *slog.Logger, d Deps) *gin.Engine {
	if d.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.ErrorHandler(logger),
	)

	ordersRepo := orders.NewRepo(d.DB)
	bookingsRepo := bookings.NewRepo(d.DB)
	productsRepo := products.NewRepo(d.DB)
	providersRepo := providers.NewRepo(d.DB)

	auth := handlers.NewAuthHandler(d.Users)
	productsH := handlers.NewProductsHandler(productsRepo)
	providersH := handlers.NewProvidersHandler(providersRepo, d.Storage)
	ordersH := handlers.NewOrdersHandler(d.Orders, ordersRepo)
	bookingsH := handlers.NewBookingsHandler(d.Bookings, bookingsRepo, providersRepo)
	paymentsH := handlers.NewPaymentsHandler(d.Payments, d.Users)
	reviewsH := handlers.NewReviewsHandler(d.Reviews)
	webhookH := handlers.NewWebhookHandler(logger, d.Gateway, d.Engine)
	adminH := handlers.NewAdminHandler(d.DB, ordersRepo, bookingsRepo, providersRepo)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Gateway callbacks; signature-authenticated, never behind JWT.
	r.POST("/webhooks/paystack", webhookH.Handle)

	if d.Config.StorageDriver == "local" {
		r.Static(d.Config.LocalUploadURL, d.Config.LocalUploadDir)
	}

	api := r.Group("/api")
	{
		api.POST("/auth/send-otp", auth.SendOTP)
		api.POST("/auth/verify-otp", auth.VerifyOTP)
		api.POST("/auth/register", auth.Register)
		api.POST("/auth/login", auth.Login)

		api.GET("/categories", productsH.Categories)
		api.GET("/products", productsH.List)
		api.GET("/products/:id", productsH.Get)

		api.GET("/providers", providersH.List)
		api.GET("/providers/:id", providersH.Get)

		api.GET("/reviews", reviewsH.List)
	}

	authed := api.Group("", middleware.RequireAuth(d.Tokens))
	{
		authed.GET("/me", auth.Me)
		authed.PATCH("/me", auth.UpdateMe)

		authed.POST("/orders", ordersH.Create)
		authed.GET("/orders", ordersH.List)
		authed.GET("/orders/:id", ordersH.Get)

		authed.POST("/bookings", bookingsH.Create)
		authed.GET("/bookings", bookingsH.List)
		authed.GET("/bookings/:id", bookingsH.Get)
		authed.PATCH("/bookings/:id/status", bookingsH.UpdateStatus)
		authed.GET("/provider/bookings", bookingsH.ListForProvider)

		authed.POST("/payments/initialize", paymentsH.Initialize)
		authed.GET("/payments", paymentsH.List)
		authed.GET("/payments/verify/:reference", paymentsH.Verify)
		authed.GET("/payments/:reference", paymentsH.Get)

		authed.POST("/providers", providersH.Register)
		authed.PATCH("/providers/:id", providersH.Update)
		authed.POST("/providers/:id/services", providersH.AddService)
		authed.POST("/providers/:id/portfolio", providersH.UploadPortfolio)

		authed.POST("/reviews", reviewsH.Create)
	}

	admin := api.Group("/admin", middleware.RequireAuth(d.Tokens), middleware.RequireAdmin())
	{
		admin.GET("/dashboard", adminH.Dashboard)
		admin.GET("/orders", adminH.ListOrders)
		admin.PATCH("/orders/:id/status", ordersH.UpdateStatus)
		admin.GET("/bookings", adminH.ListBookings)
		admin.GET("/payments", adminH.ListPayments)
		admin.PATCH("/providers/:id/status", adminH.SetProviderStatus)
	}

	return r
}
