package payment

import (
	"context"
	"testing"

	"github.com/openkiosk/stallpos/internal/domain"
	"github.com/openkiosk/stallpos/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func pendingOrder(t *testing.T, db *gorm.DB, name string, amount int64) int64 {
	t.Helper()
	order := domain.Order{Name: name, Amount: amount, Items: "[]", Status: domain.OrderStatusPending}
	require.NoError(t, db.Create(&order).Error)
	return order.ID
}

func orderStatus(t *testing.T, db *gorm.DB, id int64) string {
	t.Helper()
	var order domain.Order
	require.NoError(t, db.First(&order, id).Error)
	return order.Status
}

func TestNoMatchIsNotAnError(t *testing.T) {
	db := testdb.Open(t)
	matcher := NewMatcher(db)

	result, err := matcher.OnPaymentEvent(context.Background(), "Kim", 15000)
	require.NoError(t, err)
	assert.False(t, result.Matched)

	var logs []domain.PayEventLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "no_match", logs[0].Result)
	assert.Equal(t, "Kim", logs[0].Name)
	assert.Equal(t, int64(15000), logs[0].Amount)
}

func TestSingleMatchBecomesPaid(t *testing.T) {
	db := testdb.Open(t)
	matcher := NewMatcher(db)
	id := pendingOrder(t, db, "Kim", 15000)
	other := pendingOrder(t, db, "Lee", 15000)

	result, err := matcher.OnPaymentEvent(context.Background(), " Kim ", 15000)
	require.NoError(t, err)

	assert.True(t, result.Matched)
	assert.Equal(t, domain.OrderStatusPaid, result.Status)
	assert.Equal(t, id, result.OrderID)
	assert.Zero(t, result.Duplicates)
	assert.Equal(t, domain.OrderStatusPaid, orderStatus(t, db, id))
	assert.Equal(t, domain.OrderStatusPending, orderStatus(t, db, other), "different payer stays pending")
}

func TestAmountMustMatchExactly(t *testing.T) {
	db := testdb.Open(t)
	matcher := NewMatcher(db)
	id := pendingOrder(t, db, "Kim", 15000)

	result, err := matcher.OnPaymentEvent(context.Background(), "Kim", 14999)
	require.NoError(t, err)
	assert.False(t, result.Matched)
	assert.Equal(t, domain.OrderStatusPending, orderStatus(t, db, id))
}

func TestDuplicatePairFlagsOnlyLowestID(t *testing.T) {
	db := testdb.Open(t)
	matcher := NewMatcher(db)
	first := pendingOrder(t, db, "Kim", 15000)
	second := pendingOrder(t, db, "Kim", 15000)

	result, err := matcher.OnPaymentEvent(context.Background(), "Kim", 15000)
	require.NoError(t, err)

	assert.True(t, result.Matched)
	assert.Equal(t, domain.OrderStatusManualCheck, result.Status)
	assert.Equal(t, first, result.OrderID, "deterministic tie-break: lowest order id")
	assert.Equal(t, 2, result.Duplicates)
	assert.Equal(t, domain.OrderStatusManualCheck, orderStatus(t, db, first))
	assert.Equal(t, domain.OrderStatusPending, orderStatus(t, db, second), "other ambiguous order stays pending")

	// The second identical event now sees a single pending candidate and
	// settles it.
	result, err = matcher.OnPaymentEvent(context.Background(), "Kim", 15000)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPaid, result.Status)
	assert.Equal(t, second, result.OrderID)
	assert.Zero(t, result.Duplicates)
	assert.Equal(t, domain.OrderStatusPaid, orderStatus(t, db, second))
}

func TestMatchedEventsAreAudited(t *testing.T) {
	db := testdb.Open(t)
	matcher := NewMatcher(db)
	pendingOrder(t, db, "Kim", 15000)
	pendingOrder(t, db, "Kim", 15000)

	_, err := matcher.OnPaymentEvent(context.Background(), "Kim", 15000)
	require.NoError(t, err)

	var logs []domain.PayEventLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.OrderStatusManualCheck, logs[0].Result)
	assert.Equal(t, 2, logs[0].Duplicates)
	assert.NotZero(t, logs[0].OrderID)
	assert.NotZero(t, logs[0].ID)
}

func TestInvalidEventRejected(t *testing.T) {
	db := testdb.Open(t)
	matcher := NewMatcher(db)

	_, err := matcher.OnPaymentEvent(context.Background(), "  ", 15000)
	assert.ErrorIs(t, err, ErrInvalidEvent)

	_, err = matcher.OnPaymentEvent(context.Background(), "Kim", 0)
	assert.ErrorIs(t, err, ErrInvalidEvent)
}
