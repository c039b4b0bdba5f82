package users

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/iamlekside2/QuickGift/internal/sms"
)

// resendWindow is the minimum gap between OTP requests for one phone.
const resendWindow = time.Minute

type Service struct {
	db        *gorm.DB
	sender    sms.Sender
	tokens    *TokenIssuer
	otpExpiry time.Duration
	otpLength int
	logger    *slog.Logger
}

func NewService(db *gorm.DB, sender sms.Sender, tokens *TokenIssuer, otpExpiry time.Duration, otpLength int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if otpLength < 4 {
		otpLength = 6
	}
	return &Service{db: db, sender: sender, tokens: tokens, otpExpiry: otpExpiry, otpLength: otpLength, logger: logger}
}

// SendOTP mints a fresh code for the phone, stores only its digest, and
// delivers the plaintext by SMS. A new request invalidates earlier codes.
func (s *Service) SendOTP(ctx context.Context, rawPhone string) error {
	phone, ok := NormalizePhone(rawPhone)
	if !ok {
		return ErrInvalidPhone
	}

	code, err := randomCode(s.otpLength)
	if err != nil {
		return err
	}
	hash := sha256.Sum256([]byte(code))

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last OTPCode
		err := tx.WithContext(ctx).
			Where("phone = ?", phone).
			Order("created_at DESC").
			First(&last).Error
		if err == nil && time.Since(last.CreatedAt) < resendWindow {
			return ErrOTPThrottled
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.WithContext(ctx).Where("phone = ?", phone).Delete(&OTPCode{}).Error; err != nil {
			return err
		}
		return tx.WithContext(ctx).Create(&OTPCode{
			ID:        uuid.NewString(),
			Phone:     phone,
			CodeHash:  hash[:],
			ExpiresAt: time.Now().Add(s.otpExpiry),
			CreatedAt: time.Now(),
		}).Error
	})
	if err != nil {
		return err
	}

	body := fmt.Sprintf("Your QuickGift verification code is %s. It expires in %d minutes.",
		code, int(s.otpExpiry.Minutes()))
	if err := s.sender.Send(ctx, phone, body); err != nil {
		s.logger.ErrorContext(ctx, "otp delivery failed", "phone", phone, "error", err)
		return err
	}

	s.logger.InfoContext(ctx, "otp sent", "phone", phone)
	return nil
}

type AuthResult struct {
	User  User
	Token string
	IsNew bool
}

// VerifyOTP checks the code, burns it, and signs the caller in. Unknown
// phones get an account created on the spot.
func (s *Service) VerifyOTP(ctx context.Context, rawPhone, code string) (AuthResult, error) {
	phone, ok := NormalizePhone(rawPhone)
	if !ok {
		return AuthResult{}, ErrInvalidPhone
	}

	hash := sha256.Sum256([]byte(code))

	var (
		u     User
		isNew bool
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var otp OTPCode
		err := tx.WithContext(ctx).
			Where("phone = ? AND used_at IS NULL", phone).
			Order("created_at DESC").
			First(&otp).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidOTP
			}
			return err
		}
		if time.Now().After(otp.ExpiresAt) {
			return ErrInvalidOTP
		}
		if subtle.ConstantTimeCompare(otp.CodeHash, hash[:]) != 1 {
			return ErrInvalidOTP
		}

		now := time.Now()
		if err := tx.WithContext(ctx).Model(&OTPCode{}).
			Where("id = ? AND used_at IS NULL", otp.ID).
			Update("used_at", now).Error; err != nil {
			return err
		}

		err = tx.WithContext(ctx).First(&u, "phone = ?", phone).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			isNew = true
			u = User{
				ID:        uuid.NewString(),
				FullName:  "",
				Phone:     phone,
				Role:      RoleCustomer,
				IsActive:  true,
				CreatedAt: now,
				UpdatedAt: now,
			}
			return tx.WithContext(ctx).Create(&u).Error
		case err != nil:
			return err
		}
		if !u.IsActive {
			return ErrInactiveAccount
		}
		return nil
	})
	if err != nil {
		return AuthResult{}, err
	}

	token, err := s.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return AuthResult{}, err
	}

	s.logger.InfoContext(ctx, "user authenticated", "user_id", u.ID, "new", isNew)
	return AuthResult{User: u, Token: token, IsNew: isNew}, nil
}

type RegisterInput struct {
	FullName string
	Phone    string
	Email    string
	Password string
	City     *string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	phone, ok := NormalizePhone(in.Phone)
	if !ok {
		return AuthResult{}, ErrInvalidPhone
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, err
	}

	now := time.Now()
	u := User{
		ID:           uuid.NewString(),
		FullName:     strings.TrimSpace(in.FullName),
		Phone:        phone,
		Role:         RoleCustomer,
		PasswordHash: hash,
		City:         in.City,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if e := strings.TrimSpace(strings.ToLower(in.Email)); e != "" {
		u.Email = &e
	}

	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		if isDuplicateKey(err) {
			if u.Email != nil {
				var existing User
				if e2 := s.db.WithContext(ctx).First(&existing, "email = ?", *u.Email).Error; e2 == nil {
					return AuthResult{}, ErrEmailTaken
				}
			}
			return AuthResult{}, ErrPhoneTaken
		}
		return AuthResult{}, err
	}

	token, err := s.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: u, Token: token, IsNew: true}, nil
}

// Login accepts a phone number or an email as the identifier.
func (s *Service) Login(ctx context.Context, identifier, password string) (AuthResult, error) {
	var u User
	q := s.db.WithContext(ctx)
	if phone, ok := NormalizePhone(identifier); ok {
		q = q.Where("phone = ?", phone)
	} else {
		q = q.Where("email = ?", strings.TrimSpace(strings.ToLower(identifier)))
	}
	if err := q.First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	if len(u.PasswordHash) == 0 ||
		bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	if !u.IsActive {
		return AuthResult{}, ErrInactiveAccount
	}

	token, err := s.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: u, Token: token}, nil
}

func (s *Service) Get(ctx context.Context, id string) (User, error) {
	var u User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return u, nil
}

type UpdateProfileInput struct {
	FullName *string
	Email    *string
	City     *string
}

func (s *Service) UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (User, error) {
	updates := map[string]any{"updated_at": time.Now()}
	if in.FullName != nil {
		updates["full_name"] = strings.TrimSpace(*in.FullName)
	}
	if in.Email != nil {
		updates["email"] = strings.TrimSpace(strings.ToLower(*in.Email))
	}
	if in.City != nil {
		updates["city"] = *in.City
	}

	res := s.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		if isDuplicateKey(res.Error) {
			return User{}, ErrEmailTaken
		}
		return User{}, res.Error
	}
	if res.RowsAffected != 1 {
		return User{}, ErrUserNotFound
	}
	return s.Get(ctx, id)
}

func randomCode(n int) (string, error) {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		sb.WriteByte(byte('0' + d.Int64()))
	}
	return sb.String(), nil
}

func isDuplicateKey(err error) bool {
	var me *gomysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
