package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/soldoshop/upn-nalog/internal/domain/enum"
	"github.com/soldoshop/upn-nalog/pkg/upn"
)

// Order is a store order as read from the shop database. The store owns the
// table; this service never writes it.
type Order struct {
	ID               uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	Number           string             `gorm:"column:order_number;size:100;uniqueIndex" json:"order_number"`
	PaymentMethod    enum.PaymentMethod `gorm:"size:50" json:"payment_method"`
	Status           enum.OrderStatus   `gorm:"size:30" json:"status"`
	BillingFirstName string             `gorm:"size:255" json:"billing_first_name"`
	BillingLastName  string             `gorm:"size:255" json:"billing_last_name"`
	BillingAddress1  string             `gorm:"column:billing_address_1;size:255" json:"billing_address_1"`
	BillingPostcode  string             `gorm:"size:20" json:"billing_postcode"`
	BillingCity      string             `gorm:"size:100" json:"billing_city"`
	Total            int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt        time.Time          `json:"created_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		Total float64 `json:"total"`
	}{
		Alias: Alias(o),
		Total: float64(o.Total) / 100,
	})
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// SlipOrder returns the fields a payment slip is built from.
func (o *Order) SlipOrder() upn.Order {
	return upn.Order{
		Number:           o.Number,
		BillingFirstName: o.BillingFirstName,
		BillingLastName:  o.BillingLastName,
		BillingAddress:   o.BillingAddress1,
		BillingPostcode:  o.BillingPostcode,
		BillingCity:      o.BillingCity,
		Total:            o.Total,
		CreatedAt:        o.CreatedAt,
		Status:           o.Status.String(),
	}
}
