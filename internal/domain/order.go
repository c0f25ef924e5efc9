package domain

import (
	"time"

	jsoniter "github.com/json-iterator/go"
)

const (
	OrderStatusPending     = "pending"
	OrderStatusPaid        = "paid"
	OrderStatusManualCheck = "manual_check"
)

// CartLine is one client-supplied cart entry. The ID may reference a menu
// item or a combo; Qty must be positive.
type CartLine struct {
	ID  int64 `json:"id"`
	Qty int64 `json:"qty"`
}

// Order is an immutable financial record of a placed cart. Amount and the
// items snapshot are fixed at creation; only status and served change
// afterwards, through the ledger transitions.
type Order struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	TableNo   int       `json:"table_no"`
	Name      string    `gorm:"size:64;index:idx_orders_match" json:"name"`
	Amount    int64     `gorm:"index:idx_orders_match" json:"amount"`
	Items     string    `gorm:"size:4096" json:"items"` // JSON snapshot of []CartLine
	Status    string    `gorm:"size:16;index;default:pending" json:"status"`
	Served    bool      `json:"served"`
	CreatedAt time.Time `json:"created_at"`
}

var cartJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// EncodeCartLines serializes a cart for the order items snapshot.
func EncodeCartLines(cart []CartLine) (string, error) {
	data, err := cartJSON.MarshalToString(cart)
	if err != nil {
		return "", err
	}
	return data, nil
}

// DecodeCartLines parses an order items snapshot back into cart lines.
func DecodeCartLines(items string) ([]CartLine, error) {
	var cart []CartLine
	if err := cartJSON.UnmarshalFromString(items, &cart); err != nil {
		return nil, err
	}
	return cart, nil
}
