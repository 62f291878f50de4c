package upn

import (
	"strings"
	"time"
)

// Placeholder is replaced with the order number in reference and purpose templates.
const Placeholder = "{orderNumber}"

const (
	DefaultPurposeCode       = "OTHR"
	DefaultReferenceTemplate = "SI00 " + Placeholder
	DefaultPurposeTemplate   = "Payment for order " + Placeholder
)

// Overrides replaces the purpose code and the reference/purpose templates.
// Empty fields keep the builder defaults.
type Overrides struct {
	PurposeCode       string `json:"purpose_code,omitempty" mapstructure:"purpose_code"`
	ReferenceTemplate string `json:"reference_template,omitempty" mapstructure:"reference_template"`
	PurposeTemplate   string `json:"purpose_template,omitempty" mapstructure:"purpose_template"`
}

// merge returns o with empty fields taken from base.
func (o Overrides) merge(base Overrides) Overrides {
	if o.PurposeCode == "" {
		o.PurposeCode = base.PurposeCode
	}
	if o.ReferenceTemplate == "" {
		o.ReferenceTemplate = base.ReferenceTemplate
	}
	if o.PurposeTemplate == "" {
		o.PurposeTemplate = base.PurposeTemplate
	}
	return o
}

// Builder maps orders and merchant accounts to payment slips.
type Builder struct {
	defaults Overrides
}

// NewBuilder creates a builder. Empty fields in defaults fall back to
// DefaultPurposeCode, DefaultReferenceTemplate and DefaultPurposeTemplate.
func NewBuilder(defaults Overrides) *Builder {
	return &Builder{
		defaults: defaults.merge(Overrides{
			PurposeCode:       DefaultPurposeCode,
			ReferenceTemplate: DefaultReferenceTemplate,
			PurposeTemplate:   DefaultPurposeTemplate,
		}),
	}
}

// Defaults returns the effective defaults of the builder.
func (b *Builder) Defaults() Overrides {
	return b.defaults
}

// Build assembles the payment slip for order. The first account of merchant is
// always the receiver; callers choose a different one by filtering the list.
func (b *Builder) Build(order Order, merchant Merchant, overrides Overrides) (PaymentSlip, error) {
	if len(merchant.Accounts) == 0 || merchant.Accounts[0].IBAN == "" {
		return PaymentSlip{}, ErrMissingAccount
	}
	account := merchant.Accounts[0]

	if err := validateOrder(order); err != nil {
		return PaymentSlip{}, err
	}

	opts := overrides.merge(b.defaults)
	reference, err := fill("reference", opts.ReferenceTemplate, order.Number)
	if err != nil {
		return PaymentSlip{}, err
	}
	purpose, err := fill("purpose", opts.PurposeTemplate, order.Number)
	if err != nil {
		return PaymentSlip{}, err
	}

	return PaymentSlip{
		Amount:      order.Total,
		PurposeCode: opts.PurposeCode,
		Reference:   reference,
		DueDate:     calendarDate(order.CreatedAt),
		Purpose:     purpose,
		Payer: PayerInfo{
			Name:    order.BillingFirstName + " " + order.BillingLastName,
			Address: order.BillingAddress,
			Post:    order.BillingPostcode + " " + order.BillingCity,
		},
		Receiver: ReceiverInfo{
			Name:    account.Name,
			Address: merchant.Address,
			// City before postcode, unlike the payer.
			Post: merchant.City + " " + merchant.Postcode,
			IBAN: account.IBAN,
		},
	}, nil
}

var defaultBuilder = NewBuilder(Overrides{})

// Build uses a builder with the package defaults.
func Build(order Order, merchant Merchant, overrides Overrides) (PaymentSlip, error) {
	return defaultBuilder.Build(order, merchant, overrides)
}

func validateOrder(o Order) error {
	var missing []string
	check := func(name, value string) {
		if value == "" {
			missing = append(missing, name)
		}
	}
	check("order_number", o.Number)
	check("billing_first_name", o.BillingFirstName)
	check("billing_last_name", o.BillingLastName)
	check("billing_address", o.BillingAddress)
	check("billing_postcode", o.BillingPostcode)
	check("billing_city", o.BillingCity)
	if o.CreatedAt.IsZero() {
		missing = append(missing, "created_at")
	}
	if o.Total < 0 {
		missing = append(missing, "total")
	}
	if len(missing) > 0 {
		return &InvalidOrderDataError{Fields: missing}
	}
	return nil
}

// ValidTemplate reports whether template holds exactly one Placeholder.
func ValidTemplate(template string) bool {
	return strings.Count(template, Placeholder) == 1
}

func fill(name, template, orderNumber string) (string, error) {
	if !ValidTemplate(template) {
		return "", &TemplateError{Name: name, Template: template}
	}
	return strings.Replace(template, Placeholder, orderNumber, 1), nil
}

func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
