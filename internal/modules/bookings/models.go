package bookings

import "time"

type Booking struct {
	ID            string `gorm:"type:char(36);primaryKey"`
	BookingNumber string `gorm:"type:varchar(20);not null;uniqueIndex:ux_bookings_number"`
	UserID        string `gorm:"type:char(36);not null;index:ix_bookings_user_id"`
	ProviderID    string `gorm:"type:char(36);not null;index:ix_bookings_provider_id"`

	// Service snapshot taken at booking time; later edits to the service do
	// not change what was booked.
	ServiceID       string `gorm:"type:char(36);not null"`
	ServiceName     string `gorm:"type:varchar(200);not null"`
	ServiceType     string `gorm:"type:varchar(20);not null"` // home | salon
	DurationMinutes int    `gorm:"not null"`
	PriceKobo       int64  `gorm:"not null"`

	Status        Status        `gorm:"type:varchar(20);not null"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null"`

	BookingDate time.Time `gorm:"type:datetime(3);not null"`
	BookingTime string    `gorm:"type:varchar(10);not null"` // "10:00"

	DepositKobo    int64 `gorm:"not null"`
	CommissionKobo int64 `gorm:"not null"`

	Address *string `gorm:"type:text"`
	Notes   *string `gorm:"type:text"`

	PaymentRef *string `gorm:"type:varchar(100)"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Booking) TableName() string { return "bookings" }
