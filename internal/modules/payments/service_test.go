package payments_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/iamlekside2/QuickGift/internal/modules/bookings"
	"github.com/iamlekside2/QuickGift/internal/modules/orders"
	"github.com/iamlekside2/QuickGift/internal/modules/payments"
	"github.com/iamlekside2/QuickGift/internal/shared/keylock"
)

func newService(db *gorm.DB) (*payments.Service, *payments.Engine) {
	engine := payments.NewEngine(db, keylock.New(), nil)
	svc := payments.NewService(db, payments.NewMock(""), engine, "https://quickgift.ng/payment/callback", nil)
	return svc, engine
}

func TestInitializeChargesOrderTotal(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newService(db)
	user := uuid.NewString()
	o := seedOrder(t, db, user)

	res, err := svc.Initialize(context.Background(), payments.InitializeInput{
		UserID:  user,
		Email:   "ada@example.com",
		OrderID: &o.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, o.TotalKobo, res.AmountKobo)
	assert.Equal(t, "NGN", res.Currency)
	assert.Equal(t, "mock", res.Gateway)
	assert.Regexp(t, regexp.MustCompile(`^QG-PAY-[0-9A-F]{12}$`), res.Reference)

	var p payments.Payment
	require.NoError(t, db.First(&p, "reference = ?", res.Reference).Error)
	assert.Equal(t, payments.StatusPending, p.Status)
	require.NotNil(t, p.OrderID)
	assert.Equal(t, o.ID, *p.OrderID)
	assert.Nil(t, p.BookingID)
}

func TestInitializeChargesBookingDeposit(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newService(db)
	user := uuid.NewString()
	b := seedBooking(t, db, user)

	res, err := svc.Initialize(context.Background(), payments.InitializeInput{
		UserID:    user,
		Email:     "ada@example.com",
		BookingID: &b.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, b.DepositKobo, res.AmountKobo)
}

func TestInitializeRequiresExactlyOneLink(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newService(db)
	user := uuid.NewString()
	o := seedOrder(t, db, user)
	b := seedBooking(t, db, user)

	_, err := svc.Initialize(context.Background(), payments.InitializeInput{UserID: user})
	assert.ErrorIs(t, err, payments.ErrLinkRequired)

	_, err = svc.Initialize(context.Background(), payments.InitializeInput{
		UserID: user, OrderID: &o.ID, BookingID: &b.ID,
	})
	assert.ErrorIs(t, err, payments.ErrLinkRequired)
}

func TestInitializeRejectsForeignOrder(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newService(db)
	owner := uuid.NewString()
	o := seedOrder(t, db, owner)

	_, err := svc.Initialize(context.Background(), payments.InitializeInput{
		UserID:  uuid.NewString(),
		OrderID: &o.ID,
	})
	assert.ErrorIs(t, err, orders.ErrOrderNotFound)
}

func TestInitializeRejectsMissingBooking(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newService(db)
	missing := uuid.NewString()

	_, err := svc.Initialize(context.Background(), payments.InitializeInput{
		UserID:    uuid.NewString(),
		BookingID: &missing,
	})
	assert.ErrorIs(t, err, bookings.ErrBookingNotFound)
}

// Verify with the mock gateway reports success, so the whole dev-mode
// fallback path runs through the same engine as real verifications.
func TestVerifyWithMockGatewayConfirms(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newService(db)
	user := uuid.NewString()
	o := seedOrder(t, db, user)

	init, err := svc.Initialize(context.Background(), payments.InitializeInput{
		UserID:  user,
		Email:   "ada@example.com",
		OrderID: &o.ID,
	})
	require.NoError(t, err)

	res, err := svc.Verify(context.Background(), user, init.Reference)
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, payments.StatusSuccess, res.PaymentStatus)
	assert.Equal(t, string(orders.StatusConfirmed), res.EntityStatus)
}

func TestVerifyUnknownReference(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newService(db)

	_, err := svc.Verify(context.Background(), uuid.NewString(), "QG-PAY-000000000000")
	assert.ErrorIs(t, err, payments.ErrPaymentNotFound)
}

func TestVerifyScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newService(db)
	user := uuid.NewString()
	o := seedOrder(t, db, user)

	init, err := svc.Initialize(context.Background(), payments.InitializeInput{
		UserID:  user,
		Email:   "ada@example.com",
		OrderID: &o.ID,
	})
	require.NoError(t, err)

	_, err = svc.Verify(context.Background(), uuid.NewString(), init.Reference)
	assert.ErrorIs(t, err, payments.ErrPaymentNotFound)
}
