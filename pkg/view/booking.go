package view

import (
	"time"

	"github.com/iamlekside2/QuickGift/internal/modules/bookings"
)

type Booking struct {
	ID            string `json:"id"`
	BookingNumber string `json:"booking_number"`
	ProviderID    string `json:"provider_id"`

	ServiceID       string `json:"service_id"`
	ServiceName     string `json:"service_name"`
	ServiceType     string `json:"service_type"`
	DurationMinutes int    `json:"duration_minutes"`
	PriceKobo       int64  `json:"price_kobo"`

	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`

	BookingDate time.Time `json:"booking_date"`
	BookingTime string    `json:"booking_time"`

	DepositKobo    int64  `json:"deposit_kobo"`
	DepositDisplay string `json:"deposit_display"`

	Address *string `json:"address,omitempty"`
	Notes   *string `json:"notes,omitempty"`

	PaymentRef *string   `json:"payment_ref,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func FromBooking(b bookings.Booking) Booking {
	return Booking{
		ID:              b.ID,
		BookingNumber:   b.BookingNumber,
		ProviderID:      b.ProviderID,
		ServiceID:       b.ServiceID,
		ServiceName:     b.ServiceName,
		ServiceType:     b.ServiceType,
		DurationMinutes: b.DurationMinutes,
		PriceKobo:       b.PriceKobo,
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),
		BookingDate:     b.BookingDate,
		BookingTime:     b.BookingTime,
		DepositKobo:     b.DepositKobo,
		DepositDisplay:  NairaFromKobo(b.DepositKobo),
		Address:         b.Address,
		Notes:           b.Notes,
		PaymentRef:      b.PaymentRef,
		CreatedAt:       b.CreatedAt,
	}
}

func FromBookings(items []bookings.Booking) []Booking {
	out := make([]Booking, 0, len(items))
	for _, b := range items {
		out = append(out, FromBooking(b))
	}
	return out
}
