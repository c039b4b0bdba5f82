package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config carries everything the services need. It is built once in main and
// passed down explicitly; nothing in the app reads os.Getenv after startup.
type Config struct {
	Env      string // development | production
	HTTPAddr string
	BaseURL  string

	DBDSN string

	JWTSecret        string
	JWTExpiryMinutes int

	OTPExpiryMinutes int
	OTPLength        int

	PaystackSecretKey string
	PaystackPublicKey string
	PaystackBaseURL   string
	PaymentCallback   string

	// Money rules
	GiftCommissionPercent   float64
	BeautyCommissionPercent float64
	BookingDepositPercent   float64
	DeliveryBaseFeeKobo     int64
	ExpressMultiplier       float64

	// Twilio SMS
	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioPhoneNumber string

	// Blob storage
	StorageDriver   string // local | s3
	LocalUploadDir  string
	LocalUploadURL  string
	S3Region        string
	S3Bucket        string
	S3Prefix        string
	S3PublicBaseURL string
}

func (c Config) IsProduction() bool { return c.Env == "production" }

// PaystackEnabled reports whether a real gateway is configured. Without a
// secret key the app runs the mock adapter (dev mode only).
func (c Config) PaystackEnabled() bool { return c.PaystackSecretKey != "" }

func Load() (Config, error) {
	c := Config{
		Env:      envOr("APP_ENV", "development"),
		HTTPAddr: envOr("HTTP_ADDR", ":8080"),
		BaseURL:  envOr("BASE_URL", "http://localhost:8080"),

		DBDSN: os.Getenv("DB_DSN"),

		JWTSecret:        envOr("JWT_SECRET", "quickgift-dev-secret-change-in-production"),
		JWTExpiryMinutes: envInt("JWT_EXPIRE_MINUTES", 60*24*7),

		OTPExpiryMinutes: envInt("OTP_EXPIRE_MINUTES", 10),
		OTPLength:        envInt("OTP_LENGTH", 6),

		PaystackSecretKey: os.Getenv("PAYSTACK_SECRET_KEY"),
		PaystackPublicKey: os.Getenv("PAYSTACK_PUBLIC_KEY"),
		PaystackBaseURL:   envOr("PAYSTACK_BASE_URL", "https://api.paystack.co"),
		PaymentCallback:   envOr("PAYMENT_CALLBACK_URL", "https://quickgift.ng/payment/callback"),

		GiftCommissionPercent:   envFloat("GIFT_COMMISSION_PERCENT", 25.0),
		BeautyCommissionPercent: envFloat("BEAUTY_COMMISSION_PERCENT", 20.0),
		BookingDepositPercent:   envFloat("BOOKING_DEPOSIT_PERCENT", 30.0),
		DeliveryBaseFeeKobo:     envInt64("DELIVERY_BASE_FEE_KOBO", 1000),
		ExpressMultiplier:       envFloat("EXPRESS_MULTIPLIER", 2.5),

		TwilioAccountSID:  os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:   os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioPhoneNumber: os.Getenv("TWILIO_PHONE_NUMBER"),

		StorageDriver:   envOr("STORAGE_DRIVER", "local"),
		LocalUploadDir:  envOr("LOCAL_UPLOAD_DIR", "./storage/uploads"),
		LocalUploadURL:  envOr("LOCAL_UPLOAD_URL_PREFIX", "/uploads"),
		S3Region:        os.Getenv("S3_REGION"),
		S3Bucket:        os.Getenv("S3_BUCKET"),
		S3Prefix:        envOr("S3_PREFIX", "uploads"),
		S3PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
	}

	if c.DBDSN == "" {
		return Config{}, fmt.Errorf("DB_DSN environment variable is required")
	}
	if c.IsProduction() && !c.PaystackEnabled() {
		// The mock gateway auto-approves payments; never allow it in prod.
		return Config{}, fmt.Errorf("PAYSTACK_SECRET_KEY is required in production")
	}
	if c.IsProduction() && c.JWTSecret == "quickgift-dev-secret-change-in-production" {
		return Config{}, fmt.Errorf("JWT_SECRET must be set in production")
	}
	return c, nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envInt64(k string, def int64) int64 {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func envFloat(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
