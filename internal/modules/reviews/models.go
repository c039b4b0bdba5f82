package reviews

import "time"

type TargetType string

const (
	TargetProduct  TargetType = "product"
	TargetProvider TargetType = "provider"
)

// Review covers both sides of the marketplace; one review per user per
// target.
type Review struct {
	ID         string     `gorm:"type:char(36);primaryKey"`
	UserID     string     `gorm:"type:char(36);not null;uniqueIndex:ux_reviews_user_target,priority:1"`
	TargetType TargetType `gorm:"type:varchar(20);not null;uniqueIndex:ux_reviews_user_target,priority:2"`
	TargetID   string     `gorm:"type:char(36);not null;uniqueIndex:ux_reviews_user_target,priority:3;index:ix_reviews_target"`

	Rating  int     `gorm:"not null"`
	Comment *string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Review) TableName() string { return "reviews" }
