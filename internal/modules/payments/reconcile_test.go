package payments_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/iamlekside2/QuickGift/internal/modules/bookings"
	"github.com/iamlekside2/QuickGift/internal/modules/orders"
	"github.com/iamlekside2/QuickGift/internal/modules/payments"
	"github.com/iamlekside2/QuickGift/internal/shared/keylock"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&orders.Order{}, &orders.OrderItem{},
		&bookings.Booking{},
		&payments.Payment{}, &payments.GatewayEvent{},
	))
	return db
}

func newEngine(db *gorm.DB) *payments.Engine {
	return payments.NewEngine(db, keylock.New(), nil)
}

func seedOrder(t *testing.T, db *gorm.DB, userID string) orders.Order {
	t.Helper()
	now := time.Now()
	o := orders.Order{
		ID:              uuid.NewString(),
		OrderNumber:     fmt.Sprintf("QG-%04d", time.Now().UnixNano()%10000),
		UserID:          userID,
		Status:          orders.StatusPending,
		PaymentStatus:   orders.PaymentPending,
		SubtotalKobo:    25000,
		DeliveryFeeKobo: 1000,
		CommissionKobo:  6250,
		TotalKobo:       26000,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	require.NoError(t, db.Create(&o).Error)
	return o
}

func seedBooking(t *testing.T, db *gorm.DB, userID string) bookings.Booking {
	t.Helper()
	now := time.Now()
	b := bookings.Booking{
		ID:              uuid.NewString(),
		BookingNumber:   fmt.Sprintf("QB-%04d", time.Now().UnixNano()%10000),
		UserID:          userID,
		ProviderID:      uuid.NewString(),
		ServiceID:       uuid.NewString(),
		ServiceName:     "Gel Manicure",
		ServiceType:     "salon",
		DurationMinutes: 60,
		PriceKobo:       8000,
		Status:          bookings.StatusPending,
		PaymentStatus:   bookings.PaymentPending,
		BookingDate:     now.AddDate(0, 0, 3),
		BookingTime:     "10:00",
		DepositKobo:     2400,
		CommissionKobo:  1600,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	require.NoError(t, db.Create(&b).Error)
	return b
}

func seedPayment(t *testing.T, db *gorm.DB, userID string, orderID, bookingID *string, amount int64) payments.Payment {
	t.Helper()
	now := time.Now()
	p := payments.Payment{
		ID:         uuid.NewString(),
		UserID:     userID,
		Reference:  payments.NewReference(),
		OrderID:    orderID,
		BookingID:  bookingID,
		AmountKobo: amount,
		Currency:   payments.Currency,
		Status:     payments.StatusPending,
		Gateway:    "mock",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func TestReconcileSuccessConfirmsOrder(t *testing.T) {
	db := newTestDB(t)
	engine := newEngine(db)
	user := uuid.NewString()
	o := seedOrder(t, db, user)
	p := seedPayment(t, db, user, &o.ID, nil, o.TotalKobo)

	res, err := engine.Reconcile(context.Background(), payments.ReconcileInput{
		Reference: p.Reference,
		Outcome:   payments.OutcomeSuccess,
		Channel:   "card",
		Source:    payments.SourceVerify,
	})
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, payments.StatusSuccess, res.PaymentStatus)
	assert.Equal(t, string(orders.StatusConfirmed), res.EntityStatus)

	var got payments.Payment
	require.NoError(t, db.First(&got, "id = ?", p.ID).Error)
	assert.Equal(t, payments.StatusSuccess, got.Status)
	require.NotNil(t, got.Channel)
	assert.Equal(t, "card", *got.Channel)

	var gotOrder orders.Order
	require.NoError(t, db.First(&gotOrder, "id = ?", o.ID).Error)
	assert.Equal(t, orders.StatusConfirmed, gotOrder.Status)
	assert.Equal(t, orders.PaymentPaid, gotOrder.PaymentStatus)
	require.NotNil(t, gotOrder.PaymentRef)
	assert.Equal(t, p.Reference, *gotOrder.PaymentRef)
}

func TestReconcileSuccessConfirmsBooking(t *testing.T) {
	db := newTestDB(t)
	engine := newEngine(db)
	user := uuid.NewString()
	b := seedBooking(t, db, user)
	p := seedPayment(t, db, user, nil, &b.ID, b.DepositKobo)

	res, err := engine.Reconcile(context.Background(), payments.ReconcileInput{
		Reference: p.Reference,
		Outcome:   payments.OutcomeSuccess,
		Channel:   "bank",
		Source:    payments.SourceWebhook,
	})
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, string(bookings.StatusConfirmed), res.EntityStatus)

	var gotBooking bookings.Booking
	require.NoError(t, db.First(&gotBooking, "id = ?", b.ID).Error)
	assert.Equal(t, bookings.StatusConfirmed, gotBooking.Status)
	assert.Equal(t, bookings.PaymentPaid, gotBooking.PaymentStatus)
	require.NotNil(t, gotBooking.PaymentRef)
	assert.Equal(t, p.Reference, *gotBooking.PaymentRef)
}

func TestReconcileFailureLeavesEntityUntouched(t *testing.T) {
	db := newTestDB(t)
	engine := newEngine(db)
	user := uuid.NewString()
	o := seedOrder(t, db, user)
	p := seedPayment(t, db, user, &o.ID, nil, o.TotalKobo)

	res, err := engine.Reconcile(context.Background(), payments.ReconcileInput{
		Reference: p.Reference,
		Outcome:   payments.OutcomeFailure,
		Source:    payments.SourceWebhook,
	})
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, payments.StatusFailed, res.PaymentStatus)

	var gotOrder orders.Order
	require.NoError(t, db.First(&gotOrder, "id = ?", o.ID).Error)
	assert.Equal(t, orders.StatusPending, gotOrder.Status)
	assert.Equal(t, orders.PaymentPending, gotOrder.PaymentStatus)
	assert.Nil(t, gotOrder.PaymentRef)
}

func TestReconcileReplayIsNoOp(t *testing.T) {
	db := newTestDB(t)
	engine := newEngine(db)
	user := uuid.NewString()
	o := seedOrder(t, db, user)
	p := seedPayment(t, db, user, &o.ID, nil, o.TotalKobo)

	in := payments.ReconcileInput{
		Reference: p.Reference,
		Outcome:   payments.OutcomeSuccess,
		Channel:   "card",
		Source:    payments.SourceVerify,
	}

	first, err := engine.Reconcile(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, first.Applied)

	second, err := engine.Reconcile(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, second.Applied)
	assert.Equal(t, payments.StatusSuccess, second.PaymentStatus)
	assert.Equal(t, string(orders.StatusConfirmed), second.EntityStatus)
}

func TestReconcileMismatchedOutcomeDoesNotRewrite(t *testing.T) {
	db := newTestDB(t)
	engine := newEngine(db)
	user := uuid.NewString()
	o := seedOrder(t, db, user)
	p := seedPayment(t, db, user, &o.ID, nil, o.TotalKobo)

	_, err := engine.Reconcile(context.Background(), payments.ReconcileInput{
		Reference: p.Reference,
		Outcome:   payments.OutcomeSuccess,
		Source:    payments.SourceVerify,
	})
	require.NoError(t, err)

	res, err := engine.Reconcile(context.Background(), payments.ReconcileInput{
		Reference: p.Reference,
		Outcome:   payments.OutcomeFailure,
		Source:    payments.SourceWebhook,
	})
	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.Equal(t, payments.StatusSuccess, res.PaymentStatus)
}

func TestReconcileConcurrentAppliesOnce(t *testing.T) {
	db := newTestDB(t)
	engine := newEngine(db)
	user := uuid.NewString()
	o := seedOrder(t, db, user)
	p := seedPayment(t, db, user, &o.ID, nil, o.TotalKobo)

	const n = 20
	results := make([]payments.ReconcileResult, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = engine.Reconcile(context.Background(), payments.ReconcileInput{
				Reference: p.Reference,
				Outcome:   payments.OutcomeSuccess,
				Channel:   "card",
				Source:    payments.SourceWebhook,
			})
		}(i)
	}
	wg.Wait()

	applied := 0
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		if results[i].Applied {
			applied++
		}
		assert.Equal(t, payments.StatusSuccess, results[i].PaymentStatus)
	}
	assert.Equal(t, 1, applied)

	var gotOrder orders.Order
	require.NoError(t, db.First(&gotOrder, "id = ?", o.ID).Error)
	assert.Equal(t, orders.StatusConfirmed, gotOrder.Status)
}

func TestReconcileOrderAlreadyMovedKeepsStatus(t *testing.T) {
	db := newTestDB(t)
	engine := newEngine(db)
	user := uuid.NewString()
	o := seedOrder(t, db, user)
	p := seedPayment(t, db, user, &o.ID, nil, o.TotalKobo)

	require.NoError(t, db.Model(&orders.Order{}).
		Where("id = ?", o.ID).
		Update("status", orders.StatusCancelled).Error)

	res, err := engine.Reconcile(context.Background(), payments.ReconcileInput{
		Reference: p.Reference,
		Outcome:   payments.OutcomeSuccess,
		Channel:   "card",
		Source:    payments.SourceVerify,
	})
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, string(orders.StatusCancelled), res.EntityStatus)

	var gotOrder orders.Order
	require.NoError(t, db.First(&gotOrder, "id = ?", o.ID).Error)
	assert.Equal(t, orders.StatusCancelled, gotOrder.Status)
	assert.Equal(t, orders.PaymentPaid, gotOrder.PaymentStatus)
	require.NotNil(t, gotOrder.PaymentRef)
}

func TestReconcileUnknownReference(t *testing.T) {
	db := newTestDB(t)
	engine := newEngine(db)

	_, err := engine.Reconcile(context.Background(), payments.ReconcileInput{
		Reference: "QG-PAY-DEADBEEF0000",
		Outcome:   payments.OutcomeSuccess,
		Source:    payments.SourceWebhook,
	})
	assert.ErrorIs(t, err, payments.ErrPaymentNotFound)
}

func TestProcessWebhookDedupesEvent(t *testing.T) {
	db := newTestDB(t)
	engine := newEngine(db)
	user := uuid.NewString()
	o := seedOrder(t, db, user)
	p := seedPayment(t, db, user, &o.ID, nil, o.TotalKobo)

	evt := payments.WebhookEvent{
		EventID:   "charge.success:" + p.Reference,
		EventType: "charge.success",
		Outcome:   payments.OutcomeSuccess,
		Reference: p.Reference,
		Channel:   "card",
	}
	raw := []byte(`{"event":"charge.success"}`)

	first, err := engine.ProcessWebhook(context.Background(), "paystack", evt, raw)
	require.NoError(t, err)
	assert.True(t, first.Applied)

	second, err := engine.ProcessWebhook(context.Background(), "paystack", evt, raw)
	require.NoError(t, err)
	assert.False(t, second.Applied)
	assert.Equal(t, payments.StatusSuccess, second.PaymentStatus)

	var count int64
	require.NoError(t, db.Model(&payments.GatewayEvent{}).
		Where("gateway = ? AND event_id = ?", "paystack", evt.EventID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
