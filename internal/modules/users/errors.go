package users

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidPhone       = errors.New("invalid phone number")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidOTP         = errors.New("invalid or expired code")
	ErrPhoneTaken         = errors.New("phone number already registered")
	ErrEmailTaken         = errors.New("email already registered")
	ErrOTPThrottled       = errors.New("code requested too recently")
	ErrInactiveAccount    = errors.New("account is deactivated")
)
