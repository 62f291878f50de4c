package repository

import (
	"context"

	"github.com/soldoshop/upn-nalog/internal/domain/entity"
)

// OrderRepository defines read access to store orders. A missing order is
// returned as (nil, nil).
type OrderRepository interface {
	GetByNumber(ctx context.Context, number string) (*entity.Order, error)
}
