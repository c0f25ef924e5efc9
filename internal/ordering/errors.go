package ordering

import (
	"errors"
	"fmt"
)

// ErrInvalidInput covers malformed order requests: blank name, empty cart
// or a non-positive quantity. Not retryable without client correction.
var ErrInvalidInput = errors.New("invalid order input")

// ErrOrderNotFound is returned for unknown order IDs.
var ErrOrderNotFound = errors.New("order not found")

// ErrNotPaid is returned when serving is requested for an order that has
// not been paid.
var ErrNotPaid = errors.New("order not paid")

// InvalidItemError reports a cart line whose ID resolves to nothing.
type InvalidItemError struct {
	ItemID int64
}

func (e *InvalidItemError) Error() string {
	return fmt.Sprintf("unknown item %d", e.ItemID)
}

// SoldOutError reports insufficient stock for a cart line. For combo
// shortfalls Remain is 0: the per-component remainder is not meaningful
// for the combo as a whole.
type SoldOutError struct {
	ItemID   int64
	ItemName string
	Remain   int64
}

func (e *SoldOutError) Error() string {
	return fmt.Sprintf("item %d (%s) sold out, %d remaining", e.ItemID, e.ItemName, e.Remain)
}
