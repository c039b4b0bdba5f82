package view

import (
	"time"

	"github.com/iamlekside2/QuickGift/internal/modules/payments"
)

type Payment struct {
	Reference  string  `json:"reference"`
	OrderID    *string `json:"order_id,omitempty"`
	BookingID  *string `json:"booking_id,omitempty"`
	AmountKobo int64   `json:"amount_kobo"`
	Currency   string  `json:"currency"`
	Status     string  `json:"status"`
	Gateway    string  `json:"gateway"`
	Channel    *string `json:"channel,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func FromPayment(p payments.Payment) Payment {
	return Payment{
		Reference:  p.Reference,
		OrderID:    p.OrderID,
		BookingID:  p.BookingID,
		AmountKobo: p.AmountKobo,
		Currency:   p.Currency,
		Status:     string(p.Status),
		Gateway:    p.Gateway,
		Channel:    p.Channel,
		CreatedAt:  p.CreatedAt,
	}
}

func FromPayments(items []payments.Payment) []Payment {
	out := make([]Payment, 0, len(items))
	for _, p := range items {
		out = append(out, FromPayment(p))
	}
	return out
}

type PaymentInit struct {
	Reference        string `json:"reference"`
	AmountKobo       int64  `json:"amount_kobo"`
	Currency         string `json:"currency"`
	AuthorizationURL string `json:"authorization_url,omitempty"`
	AccessCode       string `json:"access_code,omitempty"`
	Gateway          string `json:"gateway"`
}

func FromPaymentInit(r payments.InitializeResult) PaymentInit {
	return PaymentInit{
		Reference:        r.Reference,
		AmountKobo:       r.AmountKobo,
		Currency:         r.Currency,
		AuthorizationURL: r.AuthorizationURL,
		AccessCode:       r.AccessCode,
		Gateway:          r.Gateway,
	}
}

type Reconcile struct {
	Reference     string  `json:"reference"`
	PaymentStatus string  `json:"payment_status"`
	Applied       bool    `json:"applied"`
	OrderID       *string `json:"order_id,omitempty"`
	BookingID     *string `json:"booking_id,omitempty"`
	EntityStatus  string  `json:"entity_status,omitempty"`
}

func FromReconcile(r payments.ReconcileResult) Reconcile {
	return Reconcile{
		Reference:     r.Reference,
		PaymentStatus: string(r.PaymentStatus),
		Applied:       r.Applied,
		OrderID:       r.OrderID,
		BookingID:     r.BookingID,
		EntityStatus:  r.EntityStatus,
	}
}
