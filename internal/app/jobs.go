package app

import (
	"github.com/openkiosk/stallpos/internal/domain"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// initJob starts the background scheduler. Jobs here only read; every
// stock mutation stays inside the order transaction.
func (a *Application) initJob() {
	a.sched = cron.New()

	_, err := a.sched.AddFunc("@every 10m", a.runLowStockReport)
	if err != nil {
		zap.L().Error("failed to register low stock report job", zap.Error(err))
	}

	a.sched.Start()
}

// runLowStockReport logs menu items at or below the configured watermark
// so staff can restock before sellout.
func (a *Application) runLowStockReport() {
	watermark := a.configManager.GetInt64("stock", "low_watermark")
	if watermark <= 0 {
		watermark = 5
	}

	var items []domain.MenuItem
	err := a.gormDB.
		Where("stock <= ?", watermark).
		Order("stock ASC").
		Find(&items).Error
	if err != nil {
		zap.L().Error("low stock report query failed", zap.Error(err))
		return
	}

	for _, item := range items {
		zap.L().Warn("low stock",
			zap.Int64("id", item.ID),
			zap.String("name", item.Name),
			zap.Int64("remaining", item.Stock))
	}
}
