package domain

import "time"

// MenuItem is a primitive catalog entry with live stock. Rows are seeded
// once at startup (insert-if-absent) and afterwards only the stock column
// changes, exclusively through order reservations.
type MenuItem struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:128;index" json:"name"`
	Price     int64     `json:"price"` // smallest currency unit
	Stock     int64     `json:"stock"`
	Category  string    `gorm:"size:64" json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
