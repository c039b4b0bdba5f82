// Package pricing holds the money rules: commission, delivery fee and
// deposit math. Everything here is pure; amounts are int64 kobo and the
// percentages come from configuration so tests can override them.
package pricing

import "math"

type Config struct {
	GiftCommissionPercent   float64
	BeautyCommissionPercent float64
	DepositPercent          float64
	DeliveryBaseFeeKobo     int64
	ExpressMultiplier       float64
}

// Line is one order line with the unit price already resolved against the
// catalog. Client-supplied prices never reach this package.
type Line struct {
	UnitPriceKobo int64
	Quantity      int
}

type OrderQuote struct {
	SubtotalKobo    int64
	DeliveryFeeKobo int64
	CommissionKobo  int64
	TotalKobo       int64
}

func OrderTotals(lines []Line, isExpress bool, cfg Config) OrderQuote {
	var subtotal int64
	for _, ln := range lines {
		qty := ln.Quantity
		if qty < 1 {
			qty = 1
		}
		subtotal += ln.UnitPriceKobo * int64(qty)
	}

	fee := cfg.DeliveryBaseFeeKobo
	if isExpress {
		fee = roundKobo(float64(cfg.DeliveryBaseFeeKobo) * cfg.ExpressMultiplier)
	}

	return OrderQuote{
		SubtotalKobo:    subtotal,
		DeliveryFeeKobo: fee,
		CommissionKobo:  percentOf(subtotal, cfg.GiftCommissionPercent),
		TotalKobo:       subtotal + fee,
	}
}

type BookingQuote struct {
	DepositKobo    int64
	CommissionKobo int64
}

func BookingTotals(servicePriceKobo int64, cfg Config) BookingQuote {
	return BookingQuote{
		DepositKobo:    percentOf(servicePriceKobo, cfg.DepositPercent),
		CommissionKobo: percentOf(servicePriceKobo, cfg.BeautyCommissionPercent),
	}
}

func percentOf(amount int64, pct float64) int64 {
	return roundKobo(float64(amount) * pct / 100)
}

func roundKobo(f float64) int64 {
	return int64(math.Round(f))
}
