package products

import "time"

const (
	StatusActive   = "active"
	StatusDraft    = "draft"
	StatusInactive = "inactive"
)

type Category struct {
	ID          string    `gorm:"type:char(36);primaryKey"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex:ux_categories_name"`
	Icon        *string   `gorm:"type:varchar(10)"`
	Description *string   `gorm:"type:varchar(500)"`
	IsActive    bool      `gorm:"not null"`
	SortOrder   int       `gorm:"not null"`
	CreatedAt   time.Time `gorm:"type:datetime(3);not null"`
}

func (Category) TableName() string { return "categories" }

type Product struct {
	ID               string  `gorm:"type:char(36);primaryKey"`
	Name             string  `gorm:"type:varchar(200);not null"`
	Description      *string `gorm:"type:text"`
	PriceKobo        int64   `gorm:"not null"`
	ComparePriceKobo *int64
	CategoryID       string  `gorm:"type:char(36);not null;index:ix_products_category_id"`
	VendorName       string  `gorm:"type:varchar(200);not null"`
	VendorID         *string `gorm:"type:char(36)"`
	ImageURL         *string `gorm:"type:varchar(500)"`

	Rating      float64 `gorm:"not null"`
	ReviewCount int     `gorm:"not null"`
	OrderCount  int     `gorm:"not null"`

	Status     string  `gorm:"type:varchar(20);not null"`
	IsFeatured bool    `gorm:"not null"`
	City       *string `gorm:"type:varchar(50)"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Product) TableName() string { return "products" }
