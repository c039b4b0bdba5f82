package view

import (
	"time"

	"github.com/iamlekside2/QuickGift/internal/modules/orders"
)

type OrderItem struct {
	ID            string `json:"id"`
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	VendorName    string `json:"vendor_name"`
	Quantity      int    `json:"quantity"`
	UnitPriceKobo int64  `json:"unit_price_kobo"`
	TotalKobo     int64  `json:"total_kobo"`
}

type Order struct {
	ID            string `json:"id"`
	OrderNumber   string `json:"order_number"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`

	SubtotalKobo    int64  `json:"subtotal_kobo"`
	DeliveryFeeKobo int64  `json:"delivery_fee_kobo"`
	TotalKobo       int64  `json:"total_kobo"`
	TotalDisplay    string `json:"total_display"`

	DeliveryAddress *string    `json:"delivery_address,omitempty"`
	DeliveryCity    *string    `json:"delivery_city,omitempty"`
	RecipientName   *string    `json:"recipient_name,omitempty"`
	RecipientPhone  *string    `json:"recipient_phone,omitempty"`
	PersonalMessage *string    `json:"personal_message,omitempty"`
	IsAnonymous     bool       `json:"is_anonymous"`
	IsExpress       bool       `json:"is_express"`
	ScheduledDate   *time.Time `json:"scheduled_date,omitempty"`

	PaymentRef *string `json:"payment_ref,omitempty"`

	Items     []OrderItem `json:"items,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

func FromOrder(o orders.Order, items []orders.OrderItem) Order {
	out := Order{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		Status:          string(o.Status),
		PaymentStatus:   string(o.PaymentStatus),
		SubtotalKobo:    o.SubtotalKobo,
		DeliveryFeeKobo: o.DeliveryFeeKobo,
		TotalKobo:       o.TotalKobo,
		TotalDisplay:    NairaFromKobo(o.TotalKobo),
		DeliveryAddress: o.DeliveryAddress,
		DeliveryCity:    o.DeliveryCity,
		RecipientName:   o.RecipientName,
		RecipientPhone:  o.RecipientPhone,
		PersonalMessage: o.PersonalMessage,
		IsAnonymous:     o.IsAnonymous,
		IsExpress:       o.IsExpress,
		ScheduledDate:   o.ScheduledDate,
		PaymentRef:      o.PaymentRef,
		CreatedAt:       o.CreatedAt,
	}
	for _, it := range items {
		out.Items = append(out.Items, OrderItem{
			ID:            it.ID,
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			VendorName:    it.VendorName,
			Quantity:      it.Quantity,
			UnitPriceKobo: it.UnitPriceKobo,
			TotalKobo:     it.TotalKobo,
		})
	}
	return out
}

func FromOrders(items []orders.Order) []Order {
	out := make([]Order, 0, len(items))
	for _, o := range items {
		out = append(out, FromOrder(o, nil))
	}
	return out
}
