package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/soldoshop/upn-nalog/pkg/upn"
)

// BankAccount is a receiving account configured for bank transfer payments.
type BankAccount struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AccountName   string    `gorm:"size:255" json:"account_name"`
	AccountNumber string    `gorm:"size:100" json:"account_number,omitempty"`
	BankName      string    `gorm:"size:255" json:"bank_name,omitempty"`
	SortCode      string    `gorm:"size:50" json:"sort_code,omitempty"`
	IBAN          string    `gorm:"column:iban;size:50" json:"iban"`
	BIC           string    `gorm:"column:bic;size:20" json:"bic,omitempty"`
	Position      int       `gorm:"default:0" json:"position"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName returns the table name for the BankAccount model
func (BankAccount) TableName() string {
	return "bank_accounts"
}

// SlipAccounts converts accounts to slip receivers, keeping their order.
func SlipAccounts(accounts []BankAccount) []upn.Account {
	out := make([]upn.Account, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, upn.Account{Name: a.AccountName, IBAN: a.IBAN})
	}
	return out
}
