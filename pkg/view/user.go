package view

import (
	"time"

	"github.com/iamlekside2/QuickGift/internal/modules/users"
)

type User struct {
	ID       string  `json:"id"`
	FullName string  `json:"full_name"`
	Phone    string  `json:"phone"`
	Email    *string `json:"email,omitempty"`
	Role     string  `json:"role"`
	City     *string `json:"city,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func FromUser(u users.User) User {
	return User{
		ID:        u.ID,
		FullName:  u.FullName,
		Phone:     u.Phone,
		Email:     u.Email,
		Role:      string(u.Role),
		City:      u.City,
		CreatedAt: u.CreatedAt,
	}
}

type Auth struct {
	Token string `json:"token"`
	User  User   `json:"user"`
	IsNew bool   `json:"is_new"`
}

func FromAuth(a users.AuthResult) Auth {
	return Auth{Token: a.Token, User: FromUser(a.User), IsNew: a.IsNew}
}
