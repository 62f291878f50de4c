package repository

import (
	"context"
	"errors"

	"github.com/soldoshop/upn-nalog/internal/domain/entity"
	domainRepo "github.com/soldoshop/upn-nalog/internal/domain/repository"
	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) GetByNumber(ctx context.Context, number string) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).Scopes(VisibleOrders).First(&order, "order_number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}
