package payments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iamlekside2/QuickGift/internal/modules/bookings"
	"github.com/iamlekside2/QuickGift/internal/modules/orders"
	"github.com/iamlekside2/QuickGift/internal/shared/keylock"
)

type Source string

const (
	SourceVerify  Source = "verify"
	SourceWebhook Source = "webhook"
)

type ReconcileInput struct {
	Reference string
	Outcome   Outcome
	Channel   string
	Source    Source
}

type ReconcileResult struct {
	Reference     string
	PaymentStatus Status
	Applied       bool // false when the payment was already terminal
	OrderID       *string
	BookingID     *string
	EntityStatus  string
}

// Engine is the single reconciliation path. Client verification, webhooks
// and the dev fallback all funnel into Reconcile; nothing else in the
// codebase writes payment statuses or flips an entity to paid.
type Engine struct {
	db     *gorm.DB
	locks  *keylock.KeyLock
	logger *slog.Logger
}

func NewEngine(db *gorm.DB, locks *keylock.KeyLock, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{db: db, locks: locks, logger: logger}
}

// Reconcile applies a gateway-reported outcome to a payment and, on
// success, to its linked order or booking. Safe to call any number of
// times with the same reference: terminal payments are left untouched and
// reported back with Applied=false.
func (e *Engine) Reconcile(ctx context.Context, in ReconcileInput) (ReconcileResult, error) {
	unlockPay := e.locks.Lock("payment:" + in.Reference)
	defer unlockPay()

	var p Payment
	if err := e.db.WithContext(ctx).First(&p, "reference = ?", in.Reference).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReconcileResult{}, ErrPaymentNotFound
		}
		return ReconcileResult{}, err
	}

	if p.Status.Terminal() {
		if mismatched(p.Status, in.Outcome) {
			e.logger.WarnContext(ctx, "reconcile outcome disagrees with settled payment",
				"reference", p.Reference, "status", p.Status,
				"reported", in.Outcome, "source", in.Source)
		}
		return e.resultFor(ctx, p, false), nil
	}

	// Entity lock is taken after the payment lock, always in that order,
	// and shared with the manual status-update paths.
	switch {
	case p.OrderID != nil:
		unlockEnt := e.locks.Lock("order:" + *p.OrderID)
		defer unlockEnt()
	case p.BookingID != nil:
		unlockEnt := e.locks.Lock("booking:" + *p.BookingID)
		defer unlockEnt()
	}

	var entityStatus string
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		if in.Outcome == OutcomeFailure {
			if err := e.casPayment(ctx, tx, p.ID, map[string]any{
				"status":     StatusFailed,
				"updated_at": now,
			}); err != nil {
				return err
			}
			p.Status = StatusFailed
			return nil
		}

		updates := map[string]any{
			"status":     StatusSuccess,
			"updated_at": now,
		}
		if in.Channel != "" {
			updates["channel"] = in.Channel
			p.Channel = &in.Channel
		}
		if err := e.casPayment(ctx, tx, p.ID, updates); err != nil {
			return err
		}
		p.Status = StatusSuccess

		var err error
		switch {
		case p.OrderID != nil:
			entityStatus, err = e.applyOrderPaid(ctx, tx, *p.OrderID, p.Reference, now)
		case p.BookingID != nil:
			entityStatus, err = e.applyBookingPaid(ctx, tx, *p.BookingID, p.Reference, now)
		}
		return err
	})
	if err != nil {
		return ReconcileResult{}, err
	}

	e.logger.InfoContext(ctx, "payment reconciled",
		"reference", p.Reference, "status", p.Status,
		"source", in.Source, "entity_status", entityStatus)

	res := ReconcileResult{
		Reference:     p.Reference,
		PaymentStatus: p.Status,
		Applied:       true,
		OrderID:       p.OrderID,
		BookingID:     p.BookingID,
		EntityStatus:  entityStatus,
	}
	return res, nil
}

// casPayment writes the payment only if it is still pending. A zero row
// count means another process settled it between our read and write.
func (e *Engine) casPayment(ctx context.Context, tx *gorm.DB, id string, updates map[string]any) error {
	res := tx.WithContext(ctx).Model(&Payment{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return ErrReconcileConflict
	}
	return nil
}

// applyOrderPaid marks the order paid and records the winning reference.
// The pending-to-confirmed hop only happens if the order is still pending;
// an order an admin already moved keeps its status and only gains the
// payment fields.
func (e *Engine) applyOrderPaid(ctx context.Context, tx *gorm.DB, orderID, reference string, now time.Time) (string, error) {
	var o orders.Order
	if err := tx.WithContext(ctx).First(&o, "id = ?", orderID).Error; err != nil {
		return "", fmt.Errorf("load order %s for reconcile: %w", orderID, err)
	}

	if err := tx.WithContext(ctx).Model(&orders.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]any{
			"payment_status": orders.PaymentPaid,
			"payment_ref":    reference,
			"updated_at":     now,
		}).Error; err != nil {
		return "", err
	}

	if o.Status != orders.StatusPending {
		e.logger.InfoContext(ctx, "order already moved, payment fields updated only",
			"order_id", orderID, "status", o.Status)
		return string(o.Status), nil
	}

	res := tx.WithContext(ctx).Model(&orders.Order{}).
		Where("id = ? AND status = ?", orderID, orders.StatusPending).
		Updates(map[string]any{
			"status":     orders.StatusConfirmed,
			"updated_at": now,
		})
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected != 1 {
		return string(o.Status), nil
	}
	return string(orders.StatusConfirmed), nil
}

func (e *Engine) applyBookingPaid(ctx context.Context, tx *gorm.DB, bookingID, reference string, now time.Time) (string, error) {
	var b bookings.Booking
	if err := tx.WithContext(ctx).First(&b, "id = ?", bookingID).Error; err != nil {
		return "", fmt.Errorf("load booking %s for reconcile: %w", bookingID, err)
	}

	if err := tx.WithContext(ctx).Model(&bookings.Booking{}).
		Where("id = ?", bookingID).
		Updates(map[string]any{
			"payment_status": bookings.PaymentPaid,
			"payment_ref":    reference,
			"updated_at":     now,
		}).Error; err != nil {
		return "", err
	}

	if b.Status != bookings.StatusPending {
		e.logger.InfoContext(ctx, "booking already moved, payment fields updated only",
			"booking_id", bookingID, "status", b.Status)
		return string(b.Status), nil
	}

	res := tx.WithContext(ctx).Model(&bookings.Booking{}).
		Where("id = ? AND status = ?", bookingID, bookings.StatusPending).
		Updates(map[string]any{
			"status":     bookings.StatusConfirmed,
			"updated_at": now,
		})
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected != 1 {
		return string(b.Status), nil
	}
	return string(bookings.StatusConfirmed), nil
}

func (e *Engine) resultFor(ctx context.Context, p Payment, applied bool) ReconcileResult {
	res := ReconcileResult{
		Reference:     p.Reference,
		PaymentStatus: p.Status,
		Applied:       applied,
		OrderID:       p.OrderID,
		BookingID:     p.BookingID,
	}
	switch {
	case p.OrderID != nil:
		var o orders.Order
		if err := e.db.WithContext(ctx).First(&o, "id = ?", *p.OrderID).Error; err == nil {
			res.EntityStatus = string(o.Status)
		}
	case p.BookingID != nil:
		var b bookings.Booking
		if err := e.db.WithContext(ctx).First(&b, "id = ?", *p.BookingID).Error; err == nil {
			res.EntityStatus = string(b.Status)
		}
	}
	return res
}

func mismatched(settled Status, reported Outcome) bool {
	switch settled {
	case StatusSuccess:
		return reported != OutcomeSuccess
	case StatusFailed:
		return reported != OutcomeFailure
	default:
		return false
	}
}

// ProcessWebhook records the delivery and runs the engine once per unique
// (gateway, event_id). Redeliveries of an already processed event are
// acknowledged with the current payment state.
func (e *Engine) ProcessWebhook(ctx context.Context, gateway string, evt WebhookEvent, raw []byte) (ReconcileResult, error) {
	var existing GatewayEvent
	err := e.db.WithContext(ctx).
		First(&existing, "gateway = ? AND event_id = ?", gateway, evt.EventID).Error
	switch {
	case err == nil:
		if existing.ProcessedAt != nil {
			e.logger.InfoContext(ctx, "webhook event replayed, skipping",
				"gateway", gateway, "event_id", evt.EventID)
			return e.replayResult(ctx, evt.Reference)
		}
		// Recorded but never processed (earlier crash or error); run again.
	case errors.Is(err, gorm.ErrRecordNotFound):
		existing = GatewayEvent{
			ID:          uuid.NewString(),
			Gateway:     gateway,
			EventID:     evt.EventID,
			EventType:   evt.EventType,
			PayloadJSON: raw,
			ReceivedAt:  time.Now(),
		}
		if cerr := e.db.WithContext(ctx).Create(&existing).Error; cerr != nil {
			return ReconcileResult{}, cerr
		}
	default:
		return ReconcileResult{}, err
	}

	res, rerr := e.Reconcile(ctx, ReconcileInput{
		Reference: evt.Reference,
		Outcome:   evt.Outcome,
		Channel:   evt.Channel,
		Source:    SourceWebhook,
	})

	now := time.Now()
	updates := map[string]any{"processed_at": now}
	if rerr != nil {
		msg := rerr.Error()
		if len(msg) > 255 {
			msg = msg[:255]
		}
		updates = map[string]any{"process_error": msg}
	}
	if uerr := e.db.WithContext(ctx).Model(&GatewayEvent{}).
		Where("id = ?", existing.ID).
		Updates(updates).Error; uerr != nil {
		e.logger.ErrorContext(ctx, "failed to mark gateway event",
			"event_id", evt.EventID, "error", uerr)
	}
	return res, rerr
}

func (e *Engine) replayResult(ctx context.Context, reference string) (ReconcileResult, error) {
	var p Payment
	if err := e.db.WithContext(ctx).First(&p, "reference = ?", reference).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReconcileResult{}, ErrPaymentNotFound
		}
		return ReconcileResult{}, err
	}
	return e.resultFor(ctx, p, false), nil
}
