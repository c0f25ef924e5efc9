package app

import (
	"time"

	"github.com/openkiosk/stallpos/internal/domain"
	"go.uber.org/zap"
)

// defaultMenuItems is the base menu seeded on first boot. Stock values are
// the opening counts for the venue; later boots leave existing rows alone
// so reservations are never undone by a restart.
var defaultMenuItems = []domain.MenuItem{
	{ID: 1, Name: "Cheese Buldak", Price: 15000, Stock: 30, Category: "MAIN MENU"},
	{ID: 2, Name: "Mala Soya", Price: 15000, Stock: 30, Category: "MAIN MENU"},
	{ID: 3, Name: "Spoon Pizza", Price: 13000, Stock: 20, Category: "MAIN MENU"},
	{ID: 4, Name: "Cheese Kimchi Fried Rice", Price: 10000, Stock: 30, Category: "MAIN MENU"},
	{ID: 5, Name: "Honey Butter Toast", Price: 8000, Stock: 20, Category: "SIDE MENU"},
	{ID: 6, Name: "Skewer Odeng Ramen", Price: 6000, Stock: 36, Category: "SIDE MENU"},
	{ID: 7, Name: "Muksabal", Price: 6000, Stock: 30, Category: "SIDE MENU"},
	{ID: 8, Name: "Cream Honey Hotteok", Price: 5000, Stock: 20, Category: "SIDE MENU"},
	{ID: 9, Name: "Random Snack Box", Price: 5000, Stock: 30, Category: "SIDE MENU"},
	{ID: 10, Name: "Tipsy-GU", Price: 5000, Stock: 40, Category: "BEVERAGE"},
	{ID: 11, Name: "Zero Cola", Price: 2000, Stock: 72, Category: "BEVERAGE"},
	{ID: 12, Name: "Choco Emong", Price: 2000, Stock: 20, Category: "BEVERAGE"},
}

// checkMenu seeds the base menu, insert-if-absent.
func (a *Application) checkMenu() {
	for _, m := range defaultMenuItems {
		var count int64
		a.gormDB.Model(&domain.MenuItem{}).Where("id = ?", m.ID).Count(&count)
		if count == 0 {
			m.CreatedAt = time.Now()
			m.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&m).Error; err != nil {
				zap.L().Error("failed to seed menu item", zap.Int64("id", m.ID), zap.Error(err))
			} else {
				zap.L().Info("initialized menu item",
					zap.Int64("id", m.ID),
					zap.String("name", m.Name),
					zap.Int64("stock", m.Stock))
			}
		}
	}
}

// checkSettings seeds runtime settings with defaults from the config file.
func (a *Application) checkSettings() {
	defaultSettings := []domain.SysConfig{
		{Sort: 1, Type: "bank", Name: "account", Value: a.appConfig.Bank.Account, Remark: "Transfer account shown on receipts"},
		{Sort: 2, Type: "bank", Name: "holder", Value: a.appConfig.Bank.Holder, Remark: "Transfer account holder"},
		{Sort: 3, Type: "stock", Name: "low_watermark", Value: "5", Remark: "Stock level that triggers the low-stock report"},
	}

	for _, s := range defaultSettings {
		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", s.Type, s.Name).
			Count(&count)
		if count == 0 {
			if err := a.gormDB.Create(&s).Error; err != nil {
				zap.L().Error("failed to seed setting",
					zap.String("type", s.Type),
					zap.String("name", s.Name),
					zap.Error(err))
			} else {
				zap.L().Info("initialized setting",
					zap.String("key", s.Type+"."+s.Name),
					zap.String("default", s.Value))
			}
		}
	}
}
