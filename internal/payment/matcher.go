package payment

import (
	"context"
	"errors"
	"strings"

	"github.com/openkiosk/stallpos/internal/domain"
	"github.com/openkiosk/stallpos/pkg/common"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrInvalidEvent is returned for a push notification missing the payer
// name or a positive amount.
var ErrInvalidEvent = errors.New("invalid payment event")

// MatchResult is the outcome of reconciling one payment event.
type MatchResult struct {
	Matched    bool
	Status     string // paid or manual_check when Matched
	OrderID    int64
	Duplicates int // number of indistinguishable pending orders, when > 1
}

// Matcher reconciles asynchronous bank push notifications against pending
// orders by exact (trimmed name, amount) equality.
type Matcher struct {
	db *gorm.DB
}

func NewMatcher(db *gorm.DB) *Matcher {
	return &Matcher{db: db}
}

// OnPaymentEvent finds pending orders matching the event. A single match
// becomes paid. Two or more matches are a genuine ambiguity: the money
// cannot be attributed automatically, so only the lowest-ID order is
// flagged manual_check for staff review and the rest stay pending. The
// lowest-ID choice makes the flagged order deterministic (IDs are
// monotonic, so it is also the earliest-created).
//
// No match is an expected outcome, not an error: the notification may
// precede the order, belong to an unrelated payer, or duplicate a settled
// payment.
func (m *Matcher) OnPaymentEvent(ctx context.Context, name string, amount int64) (*MatchResult, error) {
	name = strings.TrimSpace(name)
	if name == "" || amount <= 0 {
		return nil, ErrInvalidEvent
	}

	result := &MatchResult{}
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var candidates []domain.Order
		err := tx.
			Where("status = ? AND name = ? AND amount = ?", domain.OrderStatusPending, name, amount).
			Order("id ASC").
			Find(&candidates).Error
		if err != nil {
			return err
		}

		if len(candidates) == 0 {
			return nil
		}

		result.Matched = true
		result.OrderID = candidates[0].ID
		if len(candidates) == 1 {
			result.Status = domain.OrderStatusPaid
		} else {
			result.Status = domain.OrderStatusManualCheck
			result.Duplicates = len(candidates)
		}

		return tx.Model(&domain.Order{}).
			Where("id = ?", result.OrderID).
			Update("status", result.Status).Error
	})
	if err != nil {
		return nil, err
	}

	m.logEvent(ctx, name, amount, result)

	if result.Matched {
		zap.L().Info("payment matched",
			zap.Int64("order_id", result.OrderID),
			zap.String("status", result.Status),
			zap.Int("duplicates", result.Duplicates))
	} else {
		zap.L().Info("payment unmatched",
			zap.String("name", name),
			zap.Int64("amount", amount))
	}
	return result, nil
}

// logEvent appends the event to the audit trail. Audit failures are
// logged, never surfaced: the match outcome already committed.
func (m *Matcher) logEvent(ctx context.Context, name string, amount int64, result *MatchResult) {
	entry := domain.PayEventLog{
		ID:     common.UUIDint64(),
		Name:   name,
		Amount: amount,
		Result: "no_match",
	}
	if result.Matched {
		entry.Result = result.Status
		entry.OrderID = result.OrderID
		entry.Duplicates = result.Duplicates
	}
	if err := m.db.WithContext(ctx).Create(&entry).Error; err != nil {
		zap.L().Warn("failed to write payment event log", zap.Error(err))
	}
}
