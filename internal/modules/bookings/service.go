package bookings

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iamlekside2/QuickGift/internal/modules/pricing"
	"github.com/iamlekside2/QuickGift/internal/modules/providers"
	"github.com/iamlekside2/QuickGift/internal/shared/keylock"
)

type Service struct {
	db      *gorm.DB
	pricing pricing.Config
	locks   *keylock.KeyLock
	logger  *slog.Logger
}

func NewService(db *gorm.DB, cfg pricing.Config, locks *keylock.KeyLock, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{db: db, pricing: cfg, locks: locks, logger: logger}
}

type CreateInput struct {
	UserID      string
	ProviderID  string
	ServiceID   string
	ServiceType string // home | salon
	BookingDate time.Time
	BookingTime string
	Address     *string
	Notes       *string
}

// Create snapshots the service (name, price, duration) onto the booking and
// computes deposit and commission from the current money rules.
func (s *Service) Create(ctx context.Context, in CreateInput) (Booking, error) {
	var bk Booking

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prov providers.Provider
		if err := tx.WithContext(ctx).First(&prov, "id = ?", in.ProviderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProviderNotFound
			}
			return err
		}
		if !prov.IsAvailable {
			return ErrProviderUnavailable
		}

		var svc providers.Service
		if err := tx.WithContext(ctx).
			First(&svc, "id = ? AND provider_id = ? AND is_active = ?",
				in.ServiceID, in.ProviderID, true).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrServiceNotFound
			}
			return err
		}

		quote := pricing.BookingTotals(svc.PriceKobo, s.pricing)

		now := time.Now()
		bk = Booking{
			ID:              uuid.NewString(),
			UserID:          in.UserID,
			ProviderID:      in.ProviderID,
			ServiceID:       svc.ID,
			ServiceName:     svc.Name,
			ServiceType:     in.ServiceType,
			DurationMinutes: svc.DurationMinutes,
			PriceKobo:       svc.PriceKobo,
			Status:          StatusPending,
			PaymentStatus:   PaymentPending,
			BookingDate:     in.BookingDate,
			BookingTime:     in.BookingTime,
			DepositKobo:     quote.DepositKobo,
			CommissionKobo:  quote.CommissionKobo,
			Address:         in.Address,
			Notes:           in.Notes,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		var err error
		for attempt := 0; attempt < 3; attempt++ {
			bk.BookingNumber = generateBookingNumber()
			err = tx.WithContext(ctx).Create(&bk).Error
			if err == nil || !isDuplicateKey(err) {
				break
			}
		}
		return err
	})
	if err != nil {
		return Booking{}, err
	}

	s.logger.InfoContext(ctx, "booking created",
		"booking_id", bk.ID, "booking_number", bk.BookingNumber,
		"provider_id", bk.ProviderID, "deposit_kobo", bk.DepositKobo)
	return bk, nil
}

type UpdateStatusInput struct {
	BookingID string
	To        Status
}

// UpdateStatus mirrors the order-side manual transition: same table
// validation, same per-entity lock shared with the reconciliation engine,
// same status-guarded write.
func (s *Service) UpdateStatus(ctx context.Context, in UpdateStatusInput) (Booking, error) {
	unlock := s.locks.Lock("booking:" + in.BookingID)
	defer unlock()

	var bk Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).First(&bk, "id = ?", in.BookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		from := bk.Status
		if err := ValidateTransition(from, in.To); err != nil {
			return err
		}

		now := time.Now()
		res := tx.WithContext(ctx).Model(&Booking{}).
			Where("id = ? AND status = ?", bk.ID, from).
			Updates(map[string]any{
				"status":     in.To,
				"updated_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return ErrConflict
		}

		bk.Status = in.To
		bk.UpdatedAt = now
		return nil
	})
	if err != nil {
		return Booking{}, err
	}
	return bk, nil
}

func generateBookingNumber() string {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return fmt.Sprintf("QB-%04d", time.Now().UnixNano()%10000)
	}
	return fmt.Sprintf("QB-%04d", n.Int64())
}

func isDuplicateKey(err error) bool {
	var me *gomysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
