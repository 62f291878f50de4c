package upn

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder() Order {
	return Order{
		Number:           "1042",
		BillingFirstName: "Ana",
		BillingLastName:  "Novak",
		BillingAddress:   "Slovenska cesta 1",
		BillingPostcode:  "1000",
		BillingCity:      "Ljubljana",
		Total:            12350,
		CreatedAt:        time.Date(2024, time.March, 5, 23, 41, 7, 0, time.UTC),
		Status:           "on-hold",
	}
}

func testMerchant() Merchant {
	return Merchant{
		Accounts: []Account{
			{Name: "Soldo d.o.o.", IBAN: "SI56 0201 0001 2345 678"},
			{Name: "Second Account", IBAN: "SI56 1910 0000 0123 438"},
		},
		Address:  "Trg republike 3",
		City:     "Ljubljana",
		Postcode: "1000",
	}
}

func TestBuildDefaults(t *testing.T) {
	slip, err := Build(testOrder(), testMerchant(), Overrides{})
	require.NoError(t, err)

	assert.Equal(t, int64(12350), slip.Amount)
	assert.Equal(t, "123.50", slip.AmountDecimal())
	assert.Equal(t, "OTHR", slip.PurposeCode)
	assert.Equal(t, "SI00 1042", slip.Reference)
	assert.Equal(t, "Payment for order 1042", slip.Purpose)
	assert.Equal(t, PayerInfo{Name: "Ana Novak", Address: "Slovenska cesta 1", Post: "1000 Ljubljana"}, slip.Payer)
	assert.Equal(t, ReceiverInfo{
		Name:    "Soldo d.o.o.",
		Address: "Trg republike 3",
		Post:    "Ljubljana 1000",
		IBAN:    "SI56 0201 0001 2345 678",
	}, slip.Receiver)
}

func TestBuildIsDeterministic(t *testing.T) {
	first, err := Build(testOrder(), testMerchant(), Overrides{PurposeCode: "GDSV"})
	require.NoError(t, err)
	second, err := Build(testOrder(), testMerchant(), Overrides{PurposeCode: "GDSV"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, QRText(first), QRText(second))
}

func TestBuildMissingAccount(t *testing.T) {
	tests := []struct {
		name     string
		accounts []Account
	}{
		{name: "no accounts", accounts: nil},
		{name: "empty list", accounts: []Account{}},
		{name: "first account without IBAN", accounts: []Account{{Name: "Soldo"}, {Name: "Other", IBAN: "SI56 1910 0000 0123 438"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testMerchant()
			m.Accounts = tt.accounts

			_, err := Build(testOrder(), m, Overrides{})
			assert.ErrorIs(t, err, ErrMissingAccount)
		})
	}
}

func TestBuildMissingAccountWinsOverInvalidOrder(t *testing.T) {
	m := testMerchant()
	m.Accounts = nil

	_, err := Build(Order{}, m, Overrides{})
	assert.ErrorIs(t, err, ErrMissingAccount)
}

func TestBuildSelectsFirstAccount(t *testing.T) {
	slip, err := Build(testOrder(), testMerchant(), Overrides{})
	require.NoError(t, err)

	assert.Equal(t, "Soldo d.o.o.", slip.Receiver.Name)
	assert.NotEqual(t, "SI56 1910 0000 0123 438", slip.Receiver.IBAN)
}

func TestBuildPostFieldOrder(t *testing.T) {
	o := testOrder()
	o.BillingPostcode, o.BillingCity = "1000", "Ljubljana"
	m := testMerchant()
	m.Postcode, m.City = "1000", "Ljubljana"

	slip, err := Build(o, m, Overrides{})
	require.NoError(t, err)

	assert.Equal(t, "1000 Ljubljana", slip.Payer.Post)
	assert.Equal(t, "Ljubljana 1000", slip.Receiver.Post)
}

func TestBuildDueDateIsCalendarDate(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	for _, created := range []time.Time{
		time.Date(2024, time.December, 31, 0, 0, 0, 0, loc),
		time.Date(2024, time.December, 31, 12, 30, 0, 0, loc),
		time.Date(2024, time.December, 31, 23, 59, 59, 999, loc),
	} {
		o := testOrder()
		o.CreatedAt = created

		slip, err := Build(o, testMerchant(), Overrides{})
		require.NoError(t, err)
		assert.True(t, slip.DueDate.Equal(time.Date(2024, time.December, 31, 0, 0, 0, 0, loc)), "created %s", created)
		assert.Equal(t, loc, slip.DueDate.Location())
	}
}

func TestBuildPurposeCodeVerbatim(t *testing.T) {
	for _, code := range []string{"GDSV", "gdsv", "X"} {
		slip, err := Build(testOrder(), testMerchant(), Overrides{PurposeCode: code})
		require.NoError(t, err)
		assert.Equal(t, code, slip.PurposeCode)
	}
}

func TestBuildTemplateOverrides(t *testing.T) {
	slip, err := Build(testOrder(), testMerchant(), Overrides{
		ReferenceTemplate: "SI12 2024-{orderNumber}",
		PurposeTemplate:   "Plačilo naročila {orderNumber}",
	})
	require.NoError(t, err)

	assert.Equal(t, "SI12 2024-1042", slip.Reference)
	assert.Equal(t, "Plačilo naročila 1042", slip.Purpose)
}

func TestBuildRejectsBadTemplates(t *testing.T) {
	tests := []struct {
		name      string
		overrides Overrides
		field     string
	}{
		{name: "reference without placeholder", overrides: Overrides{ReferenceTemplate: "SI00 1"}, field: "reference"},
		{name: "purpose with two placeholders", overrides: Overrides{PurposeTemplate: "{orderNumber}/{orderNumber}"}, field: "purpose"},
		{name: "printf style", overrides: Overrides{PurposeTemplate: "Order %s"}, field: "purpose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(testOrder(), testMerchant(), tt.overrides)

			var tmplErr *TemplateError
			require.True(t, errors.As(err, &tmplErr))
			assert.Equal(t, tt.field, tmplErr.Name)
		})
	}
}

func TestValidTemplate(t *testing.T) {
	assert.True(t, ValidTemplate("SI00 {orderNumber}"))
	assert.False(t, ValidTemplate(""))
	assert.False(t, ValidTemplate("Order %s"))
	assert.False(t, ValidTemplate("{orderNumber}-{orderNumber}"))
}

func TestBuildInvalidOrderData(t *testing.T) {
	o := testOrder()
	o.Number = ""
	o.BillingCity = ""
	o.CreatedAt = time.Time{}

	_, err := Build(o, testMerchant(), Overrides{})

	var invalid *InvalidOrderDataError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, []string{"order_number", "billing_city", "created_at"}, invalid.Fields)
}

func TestBuildNegativeTotal(t *testing.T) {
	o := testOrder()
	o.Total = -1

	_, err := Build(o, testMerchant(), Overrides{})

	var invalid *InvalidOrderDataError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, []string{"total"}, invalid.Fields)
}

func TestNewBuilderDefaults(t *testing.T) {
	b := NewBuilder(Overrides{PurposeCode: "GDSV", PurposeTemplate: "Naročilo {orderNumber}"})

	assert.Equal(t, Overrides{
		PurposeCode:       "GDSV",
		ReferenceTemplate: DefaultReferenceTemplate,
		PurposeTemplate:   "Naročilo {orderNumber}",
	}, b.Defaults())

	slip, err := b.Build(testOrder(), testMerchant(), Overrides{PurposeCode: "OTHR"})
	require.NoError(t, err)
	assert.Equal(t, "OTHR", slip.PurposeCode)
	assert.Equal(t, "Naročilo 1042", slip.Purpose)
	assert.Equal(t, "SI00 1042", slip.Reference)
}

func TestAmountDecimal(t *testing.T) {
	assert.Equal(t, "0.00", PaymentSlip{}.AmountDecimal())
	assert.Equal(t, "0.05", PaymentSlip{Amount: 5}.AmountDecimal())
	assert.Equal(t, "1000.10", PaymentSlip{Amount: 100010}.AmountDecimal())
	assert.Equal(t, "-2.50", PaymentSlip{Amount: -250}.AmountDecimal())
}
