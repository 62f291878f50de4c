package enum

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// OrderStatus is the store's order status slug, e.g. "on-hold".
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusOnHold     OrderStatus = "on-hold"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
	OrderStatusFailed     OrderStatus = "failed"
)

func (s OrderStatus) String() string {
	return string(s)
}

// Value stores the status slug.
func (s OrderStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// Scan reads a status slug. Some stores prefix slugs with "wc-".
func (s *OrderStatus) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = OrderStatusPending
	case string:
		*s = OrderStatus(strings.TrimPrefix(v, "wc-"))
	case []byte:
		*s = OrderStatus(strings.TrimPrefix(string(v), "wc-"))
	default:
		return fmt.Errorf("failed to scan OrderStatus: unsupported type %T", value)
	}
	return nil
}
