// Package upn builds Slovenian UPN (Univerzalni plačilni nalog) payment slips
// from order and merchant account data.
package upn

import (
	"fmt"
	"time"
)

// PayerInfo identifies the party paying the order.
type PayerInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Post    string `json:"post"`
}

// ReceiverInfo identifies the merchant receiving the payment.
type ReceiverInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Post    string `json:"post"`
	IBAN    string `json:"iban"`
}

// PaymentSlip is a fully populated UPN slip. It is built per render and
// returned by value, so callers never share one instance.
type PaymentSlip struct {
	Amount      int64        `json:"-"` // cents
	PurposeCode string       `json:"purpose_code"`
	Reference   string       `json:"reference"`
	DueDate     time.Time    `json:"due_date"`
	Purpose     string       `json:"purpose"`
	Payer       PayerInfo    `json:"payer"`
	Receiver    ReceiverInfo `json:"receiver"`
}

// AmountDecimal formats the amount as a decimal string with two fraction digits.
func (s PaymentSlip) AmountDecimal() string {
	sign := ""
	cents := s.Amount
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// Order is the read-only snapshot of the order fields a slip is built from.
type Order struct {
	Number           string    `json:"order_number"`
	BillingFirstName string    `json:"billing_first_name"`
	BillingLastName  string    `json:"billing_last_name"`
	BillingAddress   string    `json:"billing_address"`
	BillingPostcode  string    `json:"billing_postcode"`
	BillingCity      string    `json:"billing_city"`
	Total            int64     `json:"total"` // cents
	CreatedAt        time.Time `json:"created_at"`
	Status           string    `json:"status"`
}

// Account is a configured receiving bank account.
type Account struct {
	Name string `json:"account_name"`
	IBAN string `json:"iban"`
}

// Merchant holds the receiving accounts and the store base address.
type Merchant struct {
	Accounts []Account `json:"accounts"`
	Address  string    `json:"address"`
	City     string    `json:"city"`
	Postcode string    `json:"postcode"`
}
