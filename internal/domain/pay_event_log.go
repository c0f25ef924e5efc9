package domain

import "time"

// PayEventLog is the audit trail of incoming bank push notifications and
// the outcome the matcher produced for each. Append-only.
type PayEventLog struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:64" json:"name"`
	Amount     int64     `json:"amount"`
	Result     string    `gorm:"size:16" json:"result"` // no_match / paid / manual_check
	OrderID    int64     `json:"order_id"`
	Duplicates int       `json:"duplicates"`
	CreatedAt  time.Time `json:"created_at"`
}
