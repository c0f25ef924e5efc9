package catalog

import (
	"context"
	"testing"

	"github.com/openkiosk/stallpos/internal/domain"
	"github.com/openkiosk/stallpos/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedThree(t *testing.T, db *gorm.DB, stocks [3]int64) {
	testdb.SeedMenu(t, db,
		domain.MenuItem{ID: 1, Name: "Fried Rice", Price: 10000, Stock: stocks[0], Category: "MAIN MENU"},
		domain.MenuItem{ID: 2, Name: "Toast", Price: 8000, Stock: stocks[1], Category: "SIDE MENU"},
		domain.MenuItem{ID: 3, Name: "Cola", Price: 2000, Stock: stocks[2], Category: "BEVERAGE"},
	)
}

func TestComboStockIsMinimumOfComponents(t *testing.T) {
	db := testdb.Open(t)
	seedThree(t, db, [3]int64{5, 3, 9})

	cat, err := New(db, []Combo{
		{ID: 201, Name: "Trio Set", Price: 18000, Components: []int64{1, 2, 3}, Category: "SET MENU"},
	})
	require.NoError(t, err)

	entries, err := cat.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 4)

	combo := entries[3]
	assert.Equal(t, int64(201), combo.ID)
	assert.Equal(t, int64(3), combo.Stock)

	// Emptying any single component empties the combo.
	require.NoError(t, db.Model(&domain.MenuItem{}).Where("id = ?", 3).Update("stock", 0).Error)
	entries, err = cat.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), entries[3].Stock)
}

func TestListAllOrdersItemsBeforeCombos(t *testing.T) {
	db := testdb.Open(t)
	seedThree(t, db, [3]int64{1, 1, 1})

	cat, err := New(db, []Combo{
		{ID: 202, Name: "Pair Set", Price: 11000, Components: []int64{1, 2}, Category: "SET MENU"},
		{ID: 201, Name: "Trio Set", Price: 18000, Components: []int64{1, 2, 3}, Category: "SET MENU"},
	})
	require.NoError(t, err)

	entries, err := cat.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 5)
	assert.Equal(t, []int64{1, 2, 3}, []int64{entries[0].ID, entries[1].ID, entries[2].ID})
	// Combos follow in definition order, not ID order.
	assert.Equal(t, int64(202), entries[3].ID)
	assert.Equal(t, int64(201), entries[4].ID)
}

func TestResolveDistinguishesUnknownFromZeroStock(t *testing.T) {
	db := testdb.Open(t)
	testdb.SeedMenu(t, db, domain.MenuItem{ID: 1, Name: "Fried Rice", Price: 10000, Stock: 0})

	cat, err := New(db, nil)
	require.NoError(t, err)

	entry, err := cat.Resolve(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, entry.Item)
	assert.Equal(t, int64(0), entry.Item.Stock)

	_, err = cat.Resolve(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveCombo(t *testing.T) {
	db := testdb.Open(t)
	seedThree(t, db, [3]int64{1, 1, 1})

	cat, err := New(db, []Combo{
		{ID: 201, Name: "Trio Set", Price: 18000, Components: []int64{1, 2, 3}, Category: "SET MENU"},
	})
	require.NoError(t, err)

	entry, err := cat.Resolve(context.Background(), 201)
	require.NoError(t, err)
	require.NotNil(t, entry.Combo)
	assert.Equal(t, "Trio Set", entry.Combo.Name)
	assert.Nil(t, entry.Item)
}

func TestNewRejectsBadComboDefinitions(t *testing.T) {
	db := testdb.Open(t)
	seedThree(t, db, [3]int64{1, 1, 1})

	_, err := New(db, []Combo{{ID: 201, Name: "Empty", Price: 1000}})
	assert.Error(t, err, "empty component list must fail at load")

	_, err = New(db, []Combo{{ID: 201, Name: "Ghost", Price: 1000, Components: []int64{99}}})
	assert.Error(t, err, "unknown component must fail at load, not at order time")

	_, err = New(db, []Combo{{ID: 2, Name: "Collision", Price: 1000, Components: []int64{1}}})
	assert.Error(t, err, "combo id must not reuse a menu item id")

	_, err = New(db, []Combo{
		{ID: 201, Name: "A", Price: 1000, Components: []int64{1}},
		{ID: 201, Name: "B", Price: 1000, Components: []int64{2}},
	})
	assert.Error(t, err, "duplicate combo ids must fail at load")
}
