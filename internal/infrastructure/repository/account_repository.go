package repository

import (
	"context"

	"github.com/soldoshop/upn-nalog/internal/domain/entity"
	domainRepo "github.com/soldoshop/upn-nalog/internal/domain/repository"
	"gorm.io/gorm"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new bank account repository
func NewAccountRepository(db *gorm.DB) domainRepo.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) List(ctx context.Context) ([]entity.BankAccount, error) {
	var accounts []entity.BankAccount
	err := r.db.WithContext(ctx).Scopes(ReceiverOrder).Find(&accounts).Error
	return accounts, err
}
