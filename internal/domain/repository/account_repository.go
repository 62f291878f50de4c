package repository

import (
	"context"

	"github.com/soldoshop/upn-nalog/internal/domain/entity"
)

// AccountRepository defines read access to the configured bank accounts
type AccountRepository interface {
	// List returns accounts in their configured order.
	List(ctx context.Context) ([]entity.BankAccount, error)
}
