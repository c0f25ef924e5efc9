package catalog

import (
	"context"
	"errors"

	"github.com/openkiosk/stallpos/internal/domain"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// ErrNotFound is returned when an ID resolves to neither a menu item nor a
// combo. Callers must not confuse this with zero stock.
var ErrNotFound = errors.New("catalog entry not found")

// Combo is a composite catalog entry. It has no stock of its own; its
// availability is the minimum stock across its components, each consumed
// at the combo's quantity. Components may repeat, meaning the combo
// consumes one unit per occurrence.
type Combo struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Price      int64   `json:"price"`
	Components []int64 `json:"components"`
	Category   string  `json:"category"`
}

// DefaultCombos is the static combo table for the venue.
var DefaultCombos = []Combo{
	{ID: 101, Name: "Manager Set", Price: 29000, Components: []int64{1, 4, 6}, Category: "SET MENU"},
	{ID: 102, Name: "Part-Timer Set", Price: 19000, Components: []int64{7, 8, 9, 10}, Category: "SET MENU"},
}

// Entry is the resolved form of a catalog ID. Exactly one of Item and
// Combo is set.
type Entry struct {
	Item  *domain.MenuItem
	Combo *Combo
}

// EntryStock is a catalog listing row with the current (possibly derived)
// stock.
type EntryStock struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Stock    int64  `json:"stock"`
	Category string `json:"category"`
}

// Catalog resolves menu items and combos. Combo definitions are immutable
// after construction; menu stock is always read live from the store.
type Catalog struct {
	db       *gorm.DB
	combos   map[int64]Combo
	comboSeq []int64 // listing order
}

// New validates the combo table against the seeded menu and returns the
// catalog. Validation failures abort the boot rather than surfacing at
// order time.
func New(db *gorm.DB, combos []Combo) (*Catalog, error) {
	c := &Catalog{
		db:     db,
		combos: make(map[int64]Combo, len(combos)),
	}
	for _, combo := range combos {
		if len(combo.Components) == 0 {
			return nil, pkgerrors.Errorf("combo %d (%s) has no components", combo.ID, combo.Name)
		}
		if _, dup := c.combos[combo.ID]; dup {
			return nil, pkgerrors.Errorf("duplicate combo id %d", combo.ID)
		}
		var count int64
		if err := db.Model(&domain.MenuItem{}).Where("id = ?", combo.ID).Count(&count).Error; err != nil {
			return nil, pkgerrors.Wrap(err, "validate combo id")
		}
		if count > 0 {
			return nil, pkgerrors.Errorf("combo id %d collides with a menu item", combo.ID)
		}
		for _, cid := range combo.Components {
			var n int64
			if err := db.Model(&domain.MenuItem{}).Where("id = ?", cid).Count(&n).Error; err != nil {
				return nil, pkgerrors.Wrap(err, "validate combo component")
			}
			if n == 0 {
				return nil, pkgerrors.Errorf("combo %d references unknown menu item %d", combo.ID, cid)
			}
		}
		c.combos[combo.ID] = combo
		c.comboSeq = append(c.comboSeq, combo.ID)
	}
	return c, nil
}

// ComboByID looks up a combo definition. Pure; no store access.
func (c *Catalog) ComboByID(id int64) (Combo, bool) {
	combo, ok := c.combos[id]
	return combo, ok
}

// Resolve returns the catalog entry for an ID, or ErrNotFound.
func (c *Catalog) Resolve(ctx context.Context, id int64) (*Entry, error) {
	var item domain.MenuItem
	err := c.db.WithContext(ctx).First(&item, id).Error
	switch {
	case err == nil:
		return &Entry{Item: &item}, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}
	if combo, ok := c.combos[id]; ok {
		return &Entry{Combo: &combo}, nil
	}
	return nil, ErrNotFound
}

// ListAll returns menu items ordered by ID followed by combos with their
// derived stock. Read-only.
func (c *Catalog) ListAll(ctx context.Context) ([]EntryStock, error) {
	var items []domain.MenuItem
	err := c.db.WithContext(ctx).Order("id ASC").Find(&items).Error
	if err != nil {
		return nil, err
	}

	stockByID := make(map[int64]int64, len(items))
	out := make([]EntryStock, 0, len(items)+len(c.comboSeq))
	for _, item := range items {
		stockByID[item.ID] = item.Stock
		out = append(out, EntryStock{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Stock:    item.Stock,
			Category: item.Category,
		})
	}

	for _, id := range c.comboSeq {
		combo := c.combos[id]
		out = append(out, EntryStock{
			ID:       combo.ID,
			Name:     combo.Name,
			Price:    combo.Price,
			Stock:    comboStock(combo, stockByID),
			Category: combo.Category,
		})
	}
	return out, nil
}

// NameIndex returns a display-name lookup across menu items and combos.
func (c *Catalog) NameIndex(ctx context.Context) (map[int64]string, error) {
	var items []domain.MenuItem
	if err := c.db.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(items)+len(c.combos))
	for _, item := range items {
		names[item.ID] = item.Name
	}
	for id, combo := range c.combos {
		names[id] = combo.Name
	}
	return names, nil
}

// comboStock derives a combo's stock as the minimum across components.
// A component missing from the map counts as zero.
func comboStock(combo Combo, stockByID map[int64]int64) int64 {
	min := int64(-1)
	for _, cid := range combo.Components {
		s := stockByID[cid]
		if min < 0 || s < min {
			min = s
		}
	}
	if min < 0 {
		min = 0
	}
	return min
}
