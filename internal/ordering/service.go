package ordering

import (
	"context"
	"errors"
	"strings"

	"github.com/openkiosk/stallpos/internal/catalog"
	"github.com/openkiosk/stallpos/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Settings exposes the runtime settings the receipt needs.
type Settings interface {
	GetSettingsStringValue(category, key string) string
}

// BankInfo tells the customer where to send the transfer and under which
// depositor name the payment will be matched.
type BankInfo struct {
	Account   string `json:"account"`
	Holder    string `json:"holder"`
	Depositor string `json:"depositor"`
}

// Receipt is the successful result of PlaceOrder.
type Receipt struct {
	OrderID int64    `json:"orderId"`
	Amount  int64    `json:"amount"`
	Bank    BankInfo `json:"bank"`
}

// Service places orders: it validates a cart, reserves stock and writes
// the order row as one transaction.
type Service struct {
	db       *gorm.DB
	catalog  *catalog.Catalog
	settings Settings
}

func NewService(db *gorm.DB, cat *catalog.Catalog, settings Settings) *Service {
	return &Service{db: db, catalog: cat, settings: settings}
}

// requirement is one pending stock decrement: qty units of a single menu
// item. Combo lines expand to one requirement per component.
type requirement struct {
	itemID int64
	qty    int64
}

// PlaceOrder validates availability for every cart line, computes the
// total, decrements stock and inserts the order inside a single
// transaction. Either every effect applies or none do.
//
// The work is two full passes over the cart: pass one checks every line
// and accumulates the amount, pass two performs the decrements. A failure
// in either pass rolls the whole transaction back, so a late sold-out
// line can never leave earlier decrements behind.
func (s *Service) PlaceOrder(ctx context.Context, name string, tableNo int, cart []domain.CartLine) (*Receipt, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(cart) == 0 {
		return nil, ErrInvalidInput
	}
	for _, line := range cart {
		if line.Qty <= 0 {
			return nil, ErrInvalidInput
		}
	}

	// The receipt's bank details are read up front: the settings store
	// shares the connection pool with the transaction below, and on the
	// single-connection sqlite profile a read inside the transaction
	// would wait on the connection the transaction holds.
	bank := BankInfo{
		Account:   s.settings.GetSettingsStringValue("bank", "account"),
		Holder:    s.settings.GetSettingsStringValue("bank", "holder"),
		Depositor: name,
	}

	var receipt *Receipt
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var amount int64
		var reqs []requirement

		// Pass 1: resolve every line, check availability, accumulate amount.
		for _, line := range cart {
			if combo, ok := s.catalog.ComboByID(line.ID); ok {
				// A combo needs qty units of each component independently.
				// A component listed N times consumes N units per combo, so
				// occurrences aggregate before the check.
				need := make(map[int64]int64, len(combo.Components))
				var seq []int64
				for _, cid := range combo.Components {
					if _, seen := need[cid]; !seen {
						seq = append(seq, cid)
					}
					need[cid] += line.Qty
				}
				for _, cid := range seq {
					var item domain.MenuItem
					if err := tx.First(&item, cid).Error; err != nil {
						return err
					}
					if item.Stock < need[cid] {
						return &SoldOutError{ItemID: line.ID, ItemName: combo.Name, Remain: 0}
					}
					reqs = append(reqs, requirement{itemID: cid, qty: need[cid]})
				}
				amount += combo.Price * line.Qty
				continue
			}

			var item domain.MenuItem
			err := tx.First(&item, line.ID).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				return &InvalidItemError{ItemID: line.ID}
			case err != nil:
				return err
			}
			if item.Stock < line.Qty {
				return &SoldOutError{ItemID: line.ID, ItemName: item.Name, Remain: item.Stock}
			}
			amount += item.Price * line.Qty
			reqs = append(reqs, requirement{itemID: line.ID, qty: line.Qty})
		}

		// Pass 2: decrement every requirement. The guard clause keeps two
		// overlapping orders from both passing pass 1 and driving stock
		// negative; losing the race aborts and rolls back here.
		for _, r := range reqs {
			res := tx.Model(&domain.MenuItem{}).
				Where("id = ? AND stock >= ?", r.itemID, r.qty).
				Update("stock", gorm.Expr("stock - ?", r.qty))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				var item domain.MenuItem
				if err := tx.First(&item, r.itemID).Error; err != nil {
					return err
				}
				return &SoldOutError{ItemID: item.ID, ItemName: item.Name, Remain: item.Stock}
			}
		}

		snapshot, err := domain.EncodeCartLines(cart)
		if err != nil {
			return err
		}

		order := domain.Order{
			TableNo: tableNo,
			Name:    name,
			Amount:  amount,
			Items:   snapshot,
			Status:  domain.OrderStatusPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		receipt = &Receipt{
			OrderID: order.ID,
			Amount:  amount,
			Bank:    bank,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("order placed",
		zap.Int64("order_id", receipt.OrderID),
		zap.String("name", name),
		zap.Int64("amount", receipt.Amount),
		zap.Int("lines", len(cart)))
	return receipt, nil
}
