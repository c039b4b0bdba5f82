package main

import (
	"context"
	"log"
	"os"
	"time"

	"log/slog"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	appconfig "github.com/iamlekside2/QuickGift/internal/config"
	apphttp "github.com/iamlekside2/QuickGift/internal/http"
	"github.com/iamlekside2/QuickGift/internal/modules/bookings"
	"github.com/iamlekside2/QuickGift/internal/modules/orders"
	"github.com/iamlekside2/QuickGift/internal/modules/payments"
	"github.com/iamlekside2/QuickGift/internal/modules/pricing"
	"github.com/iamlekside2/QuickGift/internal/modules/reviews"
	"github.com/iamlekside2/QuickGift/internal/modules/users"
	"github.com/iamlekside2/QuickGift/internal/shared/keylock"
	"github.com/iamlekside2/QuickGift/internal/sms"
	"github.com/iamlekside2/QuickGift/internal/storage"
)

func main() {
	// Load .env file (ignore error if not found - prod uses real env vars)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := appconfig.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	ctx := context.Background()

	store, err := storage.New(ctx, cfg)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	var sender sms.Sender
	if cfg.TwilioAccountSID != "" {
		sender = sms.NewTwilio(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber)
	} else {
		logger.Warn("twilio not configured, using mock sms sender")
		sender = sms.NewMock(logger)
	}

	var gateway payments.Gateway
	if cfg.PaystackEnabled() {
		gateway = payments.NewPaystack(cfg.PaystackSecretKey, cfg.PaystackBaseURL, logger)
	} else {
		logger.Warn("paystack not configured, payments run against the mock gateway")
		gateway = payments.NewMock(cfg.JWTSecret)
	}

	locks := keylock.New()
	pricingCfg := pricing.Config{
		GiftCommissionPercent:   cfg.GiftCommissionPercent,
		BeautyCommissionPercent: cfg.BeautyCommissionPercent,
		DepositPercent:          cfg.BookingDepositPercent,
		DeliveryBaseFeeKobo:     cfg.DeliveryBaseFeeKobo,
		ExpressMultiplier:       cfg.ExpressMultiplier,
	}

	tokens := users.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.JWTExpiryMinutes)*time.Minute)
	usersSvc := users.NewService(db, sender, tokens,
		time.Duration(cfg.OTPExpiryMinutes)*time.Minute, cfg.OTPLength, logger)

	ordersSvc := orders.NewService(db, pricingCfg, locks, logger)
	bookingsSvc := bookings.NewService(db, pricingCfg, locks, logger)

	engine := payments.NewEngine(db, locks, logger)
	paymentsSvc := payments.NewService(db, gateway, engine, cfg.PaymentCallback, logger)

	reviewsSvc := reviews.NewService(db, logger)

	r := apphttp.NewRouter(logger, apphttp.Deps{
		Config:   cfg,
		DB:       db,
		Users:    usersSvc,
		Tokens:   tokens,
		Orders:   ordersSvc,
		Bookings: bookingsSvc,
		Payments: paymentsSvc,
		Engine:   engine,
		Gateway:  gateway,
		Reviews:  reviewsSvc,
		Storage:  store,
	})

	logger.Info("listening", "addr", cfg.HTTPAddr, "env", cfg.Env, "gateway", gateway.Name())
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
