package users

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID       string  `gorm:"type:char(36);primaryKey"`
	FullName string  `gorm:"type:varchar(100);not null"`
	Phone    string  `gorm:"type:varchar(20);not null;uniqueIndex:ux_users_phone"`
	Email    *string `gorm:"type:varchar(255);uniqueIndex:ux_users_email"`

	// Empty for OTP-only accounts.
	PasswordHash []byte `gorm:"type:varbinary(100)"`

	Role     Role    `gorm:"type:varchar(20);not null"`
	City     *string `gorm:"type:varchar(50)"`
	IsActive bool    `gorm:"not null"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (User) TableName() string { return "users" }

// OTPCode stores only a digest of the code. One live code per phone;
// requesting a new one invalidates the previous.
type OTPCode struct {
	ID        string     `gorm:"type:char(36);primaryKey"`
	Phone     string     `gorm:"type:varchar(20);not null;index:ix_otp_codes_phone"`
	CodeHash  []byte     `gorm:"type:varbinary(32);not null"`
	ExpiresAt time.Time  `gorm:"type:datetime(3);not null"`
	UsedAt    *time.Time `gorm:"type:datetime(3)"`
	CreatedAt time.Time  `gorm:"type:datetime(3);not null"`
}

func (OTPCode) TableName() string { return "otp_codes" }
