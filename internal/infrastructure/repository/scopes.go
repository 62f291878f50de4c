package repository

import "gorm.io/gorm"

// hiddenOrderStatuses are orders the shop keeps but never shows to customers.
var hiddenOrderStatuses = []string{"trash", "wc-trash", "checkout-draft", "wc-checkout-draft"}

// VisibleOrders returns a GORM scope that skips trashed and draft orders
func VisibleOrders(db *gorm.DB) *gorm.DB {
	return db.Where("status NOT IN ?", hiddenOrderStatuses)
}

// ReceiverOrder sorts bank accounts the way the shop lists them; the first
// one is the slip receiver.
func ReceiverOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC").Order("created_at ASC")
}
