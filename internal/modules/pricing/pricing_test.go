package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testCfg = Config{
	GiftCommissionPercent:   25.0,
	BeautyCommissionPercent: 20.0,
	DepositPercent:          30.0,
	DeliveryBaseFeeKobo:     1000,
	ExpressMultiplier:       2.5,
}

func TestOrderTotalsStandardDelivery(t *testing.T) {
	q := OrderTotals([]Line{
		{UnitPriceKobo: 15000, Quantity: 1},
		{UnitPriceKobo: 5000, Quantity: 2},
	}, false, testCfg)

	assert.Equal(t, int64(25000), q.SubtotalKobo)
	assert.Equal(t, int64(1000), q.DeliveryFeeKobo)
	assert.Equal(t, int64(26000), q.TotalKobo)
	assert.Equal(t, int64(6250), q.CommissionKobo) // 25% of subtotal
}

func TestOrderTotalsExpressDelivery(t *testing.T) {
	q := OrderTotals([]Line{
		{UnitPriceKobo: 15000, Quantity: 1},
		{UnitPriceKobo: 5000, Quantity: 2},
	}, true, testCfg)

	assert.Equal(t, int64(2500), q.DeliveryFeeKobo)
	assert.Equal(t, int64(27500), q.TotalKobo)
}

func TestOrderTotalsClampsQuantity(t *testing.T) {
	q := OrderTotals([]Line{{UnitPriceKobo: 700, Quantity: 0}}, false, testCfg)
	assert.Equal(t, int64(700), q.SubtotalKobo)
}

func TestBookingTotals(t *testing.T) {
	q := BookingTotals(8000, testCfg)

	assert.Equal(t, int64(2400), q.DepositKobo) // 30%
	assert.Equal(t, int64(1600), q.CommissionKobo) // 20%
}

func TestBookingTotalsRoundsHalfUp(t *testing.T) {
	cfg := testCfg
	cfg.DepositPercent = 30.0
	q := BookingTotals(8335, cfg) // 2500.5 -> 2501
	assert.Equal(t, int64(2501), q.DepositKobo)
}
