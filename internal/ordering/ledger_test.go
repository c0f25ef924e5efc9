package ordering

import (
	"context"
	"testing"
	"time"

	"github.com/openkiosk/stallpos/internal/domain"
	"github.com/openkiosk/stallpos/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedOrder(t *testing.T, db *gorm.DB, order domain.Order) int64 {
	t.Helper()
	require.NoError(t, db.Create(&order).Error)
	return order.ID
}

func loadOrder(t *testing.T, db *gorm.DB, id int64) domain.Order {
	t.Helper()
	var order domain.Order
	require.NoError(t, db.First(&order, id).Error)
	return order
}

func TestSetServedRequiresPaid(t *testing.T) {
	db := testdb.Open(t)
	ledger := NewLedger(db)
	id := seedOrder(t, db, domain.Order{Name: "Kim", Amount: 15000, Items: "[]", Status: domain.OrderStatusPending})

	err := ledger.SetServed(context.Background(), id, true)
	assert.ErrorIs(t, err, ErrNotPaid)
	assert.False(t, loadOrder(t, db, id).Served, "record must stay unchanged")

	// The same call succeeds once the order is paid.
	_, err = ledger.ForcePay(context.Background(), id)
	require.NoError(t, err)
	require.NoError(t, ledger.SetServed(context.Background(), id, true))
	assert.True(t, loadOrder(t, db, id).Served)
}

func TestSetServedManualCheckIsNotServable(t *testing.T) {
	db := testdb.Open(t)
	ledger := NewLedger(db)
	id := seedOrder(t, db, domain.Order{Name: "Kim", Amount: 15000, Items: "[]", Status: domain.OrderStatusManualCheck})

	err := ledger.SetServed(context.Background(), id, true)
	assert.ErrorIs(t, err, ErrNotPaid)
}

func TestSetServedIdempotentWhenAlreadyServed(t *testing.T) {
	db := testdb.Open(t)
	ledger := NewLedger(db)
	id := seedOrder(t, db, domain.Order{Name: "Kim", Amount: 15000, Items: "[]", Status: domain.OrderStatusPending, Served: true})

	// Already served: re-setting is a no-op success even though unpaid.
	require.NoError(t, ledger.SetServed(context.Background(), id, true))
	assert.True(t, loadOrder(t, db, id).Served)
}

func TestSetServedUnsetAlwaysAllowed(t *testing.T) {
	db := testdb.Open(t)
	ledger := NewLedger(db)
	id := seedOrder(t, db, domain.Order{Name: "Kim", Amount: 15000, Items: "[]", Status: domain.OrderStatusPending, Served: true})

	require.NoError(t, ledger.SetServed(context.Background(), id, false))
	assert.False(t, loadOrder(t, db, id).Served)
}

func TestSetServedUnknownOrder(t *testing.T) {
	db := testdb.Open(t)
	ledger := NewLedger(db)

	err := ledger.SetServed(context.Background(), 12345, true)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestForcePayIsIdempotent(t *testing.T) {
	db := testdb.Open(t)
	ledger := NewLedger(db)
	id := seedOrder(t, db, domain.Order{Name: "Kim", Amount: 15000, Items: "[]", Status: domain.OrderStatusManualCheck})

	already, err := ledger.ForcePay(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, already)
	assert.Equal(t, domain.OrderStatusPaid, loadOrder(t, db, id).Status)

	already, err = ledger.ForcePay(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, already)
	assert.Equal(t, domain.OrderStatusPaid, loadOrder(t, db, id).Status)

	var n int64
	require.NoError(t, db.Model(&domain.Order{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestForcePayUnknownOrder(t *testing.T) {
	db := testdb.Open(t)
	ledger := NewLedger(db)

	_, err := ledger.ForcePay(context.Background(), 12345)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestListReturnsPendingFirstThenByCreation(t *testing.T) {
	db := testdb.Open(t)
	ledger := NewLedger(db)

	base := time.Now().Add(-time.Hour)
	seedOrder(t, db, domain.Order{Name: "A", Amount: 1000, Items: "[]", Status: domain.OrderStatusPaid, CreatedAt: base})
	seedOrder(t, db, domain.Order{Name: "B", Amount: 2000, Items: "[]", Status: domain.OrderStatusPending, CreatedAt: base.Add(2 * time.Minute)})
	seedOrder(t, db, domain.Order{Name: "C", Amount: 3000, Items: "[]", Status: domain.OrderStatusPending, CreatedAt: base.Add(1 * time.Minute)})
	seedOrder(t, db, domain.Order{Name: "D", Amount: 4000, Items: "[]", Status: domain.OrderStatusManualCheck, CreatedAt: base.Add(3 * time.Minute)})

	orders, err := ledger.List(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 4)

	got := []string{orders[0].Name, orders[1].Name, orders[2].Name, orders[3].Name}
	assert.Equal(t, []string{"C", "B", "A", "D"}, got)
}
