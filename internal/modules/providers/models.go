package providers

import "time"

const (
	StatusPending   = "pending"
	StatusVerified  = "verified"
	StatusSuspended = "suspended"
)

type Provider struct {
	ID           string  `gorm:"type:char(36);primaryKey"`
	UserID       string  `gorm:"type:char(36);not null;index:ix_providers_user_id"`
	BusinessName string  `gorm:"type:varchar(200);not null"`
	ServiceType  string  `gorm:"type:varchar(100);not null"` // Nail Tech, Hair Stylist, MUA, Barber, ...
	Bio          *string `gorm:"type:text"`
	Location     string  `gorm:"type:varchar(200);not null"`
	City         string  `gorm:"type:varchar(50);not null"`
	Lat          *float64
	Lng          *float64

	Rating           float64 `gorm:"not null"`
	ReviewCount      int     `gorm:"not null"`
	BookingCount     int     `gorm:"not null"`
	TotalRevenueKobo int64   `gorm:"not null"`
	ExperienceYears  int     `gorm:"not null"`

	Status             string  `gorm:"type:varchar(20);not null"`
	Plan               string  `gorm:"type:varchar(20);not null"` // Free, Pro, Elite
	IsAvailable        bool    `gorm:"not null"`
	OffersHomeService  bool    `gorm:"not null"`
	OffersSalonService bool    `gorm:"not null"`
	AvatarURL          *string `gorm:"type:varchar(500)"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Provider) TableName() string { return "providers" }

type Service struct {
	ID              string  `gorm:"type:char(36);primaryKey"`
	ProviderID      string  `gorm:"type:char(36);not null;index:ix_services_provider_id"`
	Name            string  `gorm:"type:varchar(200);not null"`
	Description     *string `gorm:"type:text"`
	PriceKobo       int64   `gorm:"not null"`
	DurationMinutes int     `gorm:"not null"`
	IsActive        bool    `gorm:"not null"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Service) TableName() string { return "services" }

type Portfolio struct {
	ID         string  `gorm:"type:char(36);primaryKey"`
	ProviderID string  `gorm:"type:char(36);not null;index:ix_portfolios_provider_id"`
	StorageKey string  `gorm:"type:varchar(500);not null"`
	ImageURL   string  `gorm:"type:varchar(500);not null"`
	Caption    *string `gorm:"type:varchar(500)"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Portfolio) TableName() string { return "portfolios" }
