package entity

import "github.com/soldoshop/upn-nalog/pkg/upn"

// Reasons a payment slip is not shown.
const (
	SlipReasonNoAccount     = "no_account"
	SlipReasonNotApplicable = "not_applicable"
)

// SlipView is a value object holding everything an order page or email shows
// for a UPN payment. It is composed from order and account data per request
// and never stored.
type SlipView struct {
	OrderNumber  string           `json:"order_number"`
	Available    bool             `json:"available"`
	Reason       string           `json:"reason,omitempty"`
	Instructions string           `json:"instructions,omitempty"`
	Rows         []upn.Row        `json:"rows,omitempty"`
	Slip         *upn.PaymentSlip `json:"slip,omitempty"`
	Amount       string           `json:"amount,omitempty"`
	Image        []byte           `json:"-"`                   // PNG
	ImageSrc     string           `json:"image_src,omitempty"` // data:image/png;base64 URI
	Warning      string           `json:"warning,omitempty"`
}
