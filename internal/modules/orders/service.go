package orders

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
	"github.com/iamlekside2/QuickGift/internal/modules/products"
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

type ItemInput struct {
	ProductID string
	Quantity  int
}

type CreateInput struct {
	UserID string
	Items  []ItemInput

	DeliveryAddress *string
	DeliveryCity    *string
	RecipientName   *string
	RecipientPhone  *string
	PersonalMessage *string
	IsAnonymous     bool
	IsExpress       bool
	ScheduledDate   *time.Time
}

// Create resolves every line against the catalog (current price, active
// products only), computes the totals once and persists order plus items in
// a single transaction. A missing product aborts the whole checkout.
func (s *Service) Create(ctx context.Context, in CreateInput) (Order, []OrderItem, error) {
	if len(in.Items) == 0 {
		return Order{}, nil, ErrNoItems
	}

	var ord Order
	var rows []OrderItem

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		lines := make([]pricing.Line, 0, len(in.Items))
		rows = rows[:0]
		for _, it := range in.Items {
			var p products.Product
			if err := tx.WithContext(ctx).
				First(&p, "id = ? AND status = ?", it.ProductID, products.StatusActive).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &ProductNotFoundError{ProductID: it.ProductID}
				}
				return err
			}

			qty := it.Quantity
			if qty < 1 {
				qty = 1
			}
			lines = append(lines, pricing.Line{UnitPriceKobo: p.PriceKobo, Quantity: qty})
			rows = append(rows, OrderItem{
				ID:            uuid.NewString(),
				ProductID:     p.ID,
				ProductName:   p.Name,
				VendorName:    p.VendorName,
				Quantity:      qty,
				UnitPriceKobo: p.PriceKobo,
				TotalKobo:     p.PriceKobo * int64(qty),
				CreatedAt:     now,
			})
		}

		quote := pricing.OrderTotals(lines, in.IsExpress, s.pricing)

		ord = Order{
			ID:              uuid.NewString(),
			UserID:          in.UserID,
			Status:          StatusPending,
			PaymentStatus:   PaymentPending,
			SubtotalKobo:    quote.SubtotalKobo,
			DeliveryFeeKobo: quote.DeliveryFeeKobo,
			CommissionKobo:  quote.CommissionKobo,
			TotalKobo:       quote.TotalKobo,
			DeliveryAddress: in.DeliveryAddress,
			DeliveryCity:    in.DeliveryCity,
			RecipientName:   in.RecipientName,
			RecipientPhone:  in.RecipientPhone,
			PersonalMessage: in.PersonalMessage,
			IsAnonymous:     in.IsAnonymous,
			IsExpress:       in.IsExpress,
			ScheduledDate:   in.ScheduledDate,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		// order_number carries a unique index; regenerate on collision.
		var err error
		for attempt := 0; attempt < 3; attempt++ {
			ord.OrderNumber = generateOrderNumber()
			err = tx.WithContext(ctx).Create(&ord).Error
			if err == nil || !isDuplicateKey(err) {
				break
			}
		}
		if err != nil {
			return err
		}

		for i := range rows {
			rows[i].OrderID = ord.ID
		}
		return tx.WithContext(ctx).Create(&rows).Error
	})
	if err != nil {
		return Order{}, nil, err
	}

	s.logger.InfoContext(ctx, "order created",
		"order_id", ord.ID, "order_number", ord.OrderNumber,
		"user_id", ord.UserID, "total_kobo", ord.TotalKobo)
	return ord, rows, nil
}

type UpdateStatusInput struct {
	OrderID string
	To      Status
}

// UpdateStatus applies one manual transition through the transition table.
// It shares the per-order lock with the reconciliation engine so a manual
// move and a payment-driven move cannot interleave.
func (s *Service) UpdateStatus(ctx context.Context, in UpdateStatusInput) (Order, error) {
	unlock := s.locks.Lock("order:" + in.OrderID)
	defer unlock()

	var ord Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).First(&ord, "id = ?", in.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		from := ord.Status
		if err := ValidateTransition(from, in.To); err != nil {
			return err
		}

		now := time.Now()
		res := tx.WithContext(ctx).Model(&Order{}).
			Where("id = ? AND status = ?", ord.ID, from). // guard against lost update
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

		ord.Status = in.To
		ord.UpdatedAt = now
		return nil
	})
	if err != nil {
		return Order{}, err
	}
	return ord, nil
}

func generateOrderNumber() string {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return fmt.Sprintf("QG-%04d", time.Now().UnixNano()%10000)
	}
	return fmt.Sprintf("QG-%04d", n.Int64())
}

func isDuplicateKey(err error) bool {
	var me *gomysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
