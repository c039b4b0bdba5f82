package payments

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iamlekside2/QuickGift/internal/modules/bookings"
	"github.com/iamlekside2/QuickGift/internal/modules/orders"
)

type Service struct {
	db          *gorm.DB
	gateway     Gateway
	engine      *Engine
	callbackURL string
	logger      *slog.Logger
}

func NewService(db *gorm.DB, gateway Gateway, engine *Engine, callbackURL string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{db: db, gateway: gateway, engine: engine, callbackURL: callbackURL, logger: logger}
}

type InitializeInput struct {
	UserID    string
	Email     string
	OrderID   *string
	BookingID *string
}

type InitializeResult struct {
	Reference        string
	AmountKobo       int64
	Currency         string
	AuthorizationURL string
	AccessCode       string
	Gateway          string
}

// Initialize mints a reference, records a pending payment for the linked
// order or booking, then asks the gateway for a checkout session. The
// gateway call happens after the payment row is committed so a timed-out
// call can still be verified later under the same reference.
func (s *Service) Initialize(ctx context.Context, in InitializeInput) (InitializeResult, error) {
	if (in.OrderID == nil) == (in.BookingID == nil) {
		return InitializeResult{}, ErrLinkRequired
	}

	amount, err := s.chargeAmount(ctx, in)
	if err != nil {
		return InitializeResult{}, err
	}

	now := time.Now()
	p := Payment{
		ID:         uuid.NewString(),
		UserID:     in.UserID,
		Reference:  NewReference(),
		OrderID:    in.OrderID,
		BookingID:  in.BookingID,
		AmountKobo: amount,
		Currency:   Currency,
		Status:     StatusPending,
		Gateway:    s.gateway.Name(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return InitializeResult{}, err
	}

	resp, err := s.gateway.Initialize(ctx, InitializeRequest{
		Reference:   p.Reference,
		AmountKobo:  p.AmountKobo,
		Currency:    p.Currency,
		Email:       in.Email,
		CallbackURL: s.callbackURL,
		Metadata:    s.metadataFor(in),
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "gateway initialize failed",
			"reference", p.Reference, "gateway", p.Gateway, "error", err)
		return InitializeResult{}, err
	}

	s.logger.InfoContext(ctx, "payment initialized",
		"reference", p.Reference, "amount_kobo", p.AmountKobo, "gateway", p.Gateway)

	return InitializeResult{
		Reference:        p.Reference,
		AmountKobo:       p.AmountKobo,
		Currency:         p.Currency,
		AuthorizationURL: resp.AuthorizationURL,
		AccessCode:       resp.AccessCode,
		Gateway:          p.Gateway,
	}, nil
}

// chargeAmount reads the amount due off the linked entity: the full total
// for orders, the deposit for bookings. Clients never supply amounts.
func (s *Service) chargeAmount(ctx context.Context, in InitializeInput) (int64, error) {
	if in.OrderID != nil {
		var o orders.Order
		if err := s.db.WithContext(ctx).First(&o, "id = ? AND user_id = ?", *in.OrderID, in.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, orders.ErrOrderNotFound
			}
			return 0, err
		}
		return o.TotalKobo, nil
	}

	var b bookings.Booking
	if err := s.db.WithContext(ctx).First(&b, "id = ? AND user_id = ?", *in.BookingID, in.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, bookings.ErrBookingNotFound
		}
		return 0, err
	}
	return b.DepositKobo, nil
}

func (s *Service) metadataFor(in InitializeInput) map[string]any {
	if in.OrderID != nil {
		return map[string]any{"order_id": *in.OrderID}
	}
	return map[string]any{"booking_id": *in.BookingID}
}

// Verify is the client-driven entry point, typically hit from the payment
// callback page. It asks the gateway for the transaction state and hands
// the outcome to the engine.
func (s *Service) Verify(ctx context.Context, userID, reference string) (ReconcileResult, error) {
	var p Payment
	if err := s.db.WithContext(ctx).First(&p, "reference = ?", reference).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReconcileResult{}, ErrPaymentNotFound
		}
		return ReconcileResult{}, err
	}
	if userID != "" && p.UserID != userID {
		return ReconcileResult{}, ErrPaymentNotFound
	}

	vr, err := s.gateway.Verify(ctx, reference)
	if err != nil {
		return ReconcileResult{}, err
	}

	return s.engine.Reconcile(ctx, ReconcileInput{
		Reference: reference,
		Outcome:   vr.Outcome,
		Channel:   vr.Channel,
		Source:    SourceVerify,
	})
}

// Get returns a payment scoped to its owner.
func (s *Service) Get(ctx context.Context, userID, reference string) (Payment, error) {
	var p Payment
	if err := s.db.WithContext(ctx).First(&p, "reference = ? AND user_id = ?", reference, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Payment{}, ErrPaymentNotFound
		}
		return Payment{}, err
	}
	return p, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Payment, error) {
	var items []Payment
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// NewReference mints the public payment reference shared with the gateway.
func NewReference() string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("QG-PAY-%012X", time.Now().UnixNano())
	}
	return "QG-PAY-" + strings.ToUpper(hex.EncodeToString(buf))
}
