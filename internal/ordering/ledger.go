package ordering

import (
	"context"
	"errors"

	"github.com/openkiosk/stallpos/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Ledger owns the order records and their lifecycle transitions. Nothing
// else updates the orders table directly.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Get retrieves a single order by ID.
func (l *Ledger) Get(ctx context.Context, id int64) (*domain.Order, error) {
	var order domain.Order
	err := l.db.WithContext(ctx).First(&order, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrOrderNotFound
	case err != nil:
		return nil, err
	}
	return &order, nil
}

// List returns all orders, pending first, then by creation time ascending.
func (l *Ledger) List(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	err := l.db.WithContext(ctx).
		Order("CASE WHEN status = 'pending' THEN 0 ELSE 1 END, created_at ASC, id ASC").
		Find(&orders).Error
	return orders, err
}

// SetServed toggles the served flag. Setting served requires the order to
// be paid, unless it is already served (idempotent no-op). An order in
// manual_check is deliberately not servable; it must be force-paid first.
// Unsetting is always allowed.
func (l *Ledger) SetServed(ctx context.Context, id int64, served bool) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order domain.Order
		err := tx.First(&order, id).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrOrderNotFound
		case err != nil:
			return err
		}

		if served && order.Status != domain.OrderStatusPaid && !order.Served {
			return ErrNotPaid
		}

		if err := tx.Model(&domain.Order{}).Where("id = ?", id).
			Update("served", served).Error; err != nil {
			return err
		}

		zap.L().Info("order served flag updated",
			zap.Int64("order_id", id),
			zap.Bool("served", served))
		return nil
	})
}

// ForcePay unconditionally marks an order paid. Already-paid orders are a
// no-op; the returned flag reports that. This is the manual resolution
// path for manual_check orders and for pending orders the matcher never
// touched.
func (l *Ledger) ForcePay(ctx context.Context, id int64) (already bool, err error) {
	err = l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order domain.Order
		err := tx.First(&order, id).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrOrderNotFound
		case err != nil:
			return err
		}

		if order.Status == domain.OrderStatusPaid {
			already = true
			return nil
		}

		if err := tx.Model(&domain.Order{}).Where("id = ?", id).
			Update("status", domain.OrderStatusPaid).Error; err != nil {
			return err
		}

		zap.L().Info("order force-paid",
			zap.Int64("order_id", id),
			zap.String("previous_status", order.Status))
		return nil
	})
	return already, err
}
