package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/iamlekside2/QuickGift/internal/modules/bookings"
	"github.com/iamlekside2/QuickGift/internal/modules/orders"
	"github.com/iamlekside2/QuickGift/internal/modules/payments"
	"github.com/iamlekside2/QuickGift/internal/modules/products"
	"github.com/iamlekside2/QuickGift/internal/modules/providers"
	"github.com/iamlekside2/QuickGift/internal/modules/reviews"
	"github.com/iamlekside2/QuickGift/internal/modules/users"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&users.User{},
		&users.OTPCode{},
		&products.Category{},
		&products.Product{},
		&providers.Provider{},
		&providers.Service{},
		&providers.Portfolio{},
		&orders.Order{},
		&orders.OrderItem{},
		&bookings.Booking{},
		&payments.Payment{},
		&payments.GatewayEvent{},
		&reviews.Review{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	fmt.Println("✓ Schema migrated successfully!")
}
