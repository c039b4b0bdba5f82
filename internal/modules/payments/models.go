package payments

import (
	"time"

	"gorm.io/datatypes"
)

// Currency is the only currency the platform settles in.
const Currency = "NGN"

type Status string

const (
	StatusPending  Status = "pending"
	StatusSuccess  Status = "success"
	StatusFailed   Status = "failed"
	StatusRefunded Status = "refunded"
)

// Terminal statuses are never rewritten; reconciliation short-circuits on
// them.
func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusFailed || s == StatusRefunded
}

// Payment links exactly one Order or one Booking to a gateway transaction.
// Reference is minted once, shared with the gateway, and acts as the
// idempotency key for reconciliation.
type Payment struct {
	ID        string  `gorm:"type:char(36);primaryKey"`
	UserID    string  `gorm:"type:char(36);not null;index:ix_payments_user_id"`
	Reference string  `gorm:"type:varchar(100);not null;uniqueIndex:ux_payments_reference"`
	OrderID   *string `gorm:"type:char(36);index:ix_payments_order_id"`
	BookingID *string `gorm:"type:char(36);index:ix_payments_booking_id"`

	AmountKobo int64  `gorm:"not null"`
	Currency   string `gorm:"type:char(3);not null"`

	Status  Status  `gorm:"type:varchar(20);not null"`
	Gateway string  `gorm:"type:varchar(20);not null"`
	Channel *string `gorm:"type:varchar(50)"` // card, bank, ussd, ... set on success

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Payment) TableName() string { return "payments" }

// GatewayEvent logs every webhook delivery. The unique (gateway, event_id)
// pair dedupes gateway retries before the engine runs; the raw payload is
// kept for audit.
type GatewayEvent struct {
	ID          string         `gorm:"type:char(36);primaryKey"`
	Gateway     string         `gorm:"type:varchar(20);not null;uniqueIndex:ux_gateway_events,priority:1"`
	EventID     string         `gorm:"type:varchar(128);not null;uniqueIndex:ux_gateway_events,priority:2"`
	EventType   string         `gorm:"type:varchar(64);not null"`
	PayloadJSON datatypes.JSON `gorm:"type:json;not null"`

	ReceivedAt   time.Time  `gorm:"type:datetime(3);not null"`
	ProcessedAt  *time.Time `gorm:"type:datetime(3)"`
	ProcessError *string    `gorm:"type:varchar(255)"`
}

func (GatewayEvent) TableName() string { return "gateway_events" }
