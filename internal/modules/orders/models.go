package orders

import "time"

type Order struct {
	ID          string `gorm:"type:char(36);primaryKey"`
	OrderNumber string `gorm:"type:varchar(20);not null;uniqueIndex:ux_orders_number"`
	UserID      string `gorm:"type:char(36);not null;index:ix_orders_user_id"`

	Status        Status        `gorm:"type:varchar(20);not null"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null"`

	SubtotalKobo    int64 `gorm:"not null"`
	DeliveryFeeKobo int64 `gorm:"not null"`
	CommissionKobo  int64 `gorm:"not null"`
	TotalKobo       int64 `gorm:"not null"`

	DeliveryAddress *string    `gorm:"type:text"`
	DeliveryCity    *string    `gorm:"type:varchar(50)"`
	RecipientName   *string    `gorm:"type:varchar(100)"`
	RecipientPhone  *string    `gorm:"type:varchar(20)"`
	PersonalMessage *string    `gorm:"type:text"`
	IsAnonymous     bool       `gorm:"not null"`
	IsExpress       bool       `gorm:"not null"`
	ScheduledDate   *time.Time `gorm:"type:datetime(3)"`

	PaymentRef *string `gorm:"type:varchar(100)"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID            string `gorm:"type:char(36);primaryKey"`
	OrderID       string `gorm:"type:char(36);not null;index:ix_order_items_order_id"`
	ProductID     string `gorm:"type:char(36);not null"`
	ProductName   string `gorm:"type:varchar(200);not null"`
	VendorName    string `gorm:"type:varchar(200);not null"`
	Quantity      int    `gorm:"not null"`
	UnitPriceKobo int64  `gorm:"not null"`
	TotalKobo     int64  `gorm:"not null"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (OrderItem) TableName() string { return "order_items" }
