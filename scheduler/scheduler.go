package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"inventory_manager/domain"
	"inventory_manager/inventory"
)

// SummarySource provides the current dashboard aggregate.
type SummarySource interface {
	Summary() domain.Summary
}

// Scheduler periodically logs the inventory summary and low-stock products.
type Scheduler struct {
	cron     *cron.Cron
	source   SummarySource
	schedule string
	logger   *zap.Logger
}

// NewScheduler creates a scheduler for the given cron expression
// (standard five fields, or descriptors such as "@hourly").
func NewScheduler(schedule string, source SummarySource, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:     cron.New(),
		source:   source,
		schedule: schedule,
		logger:   logger,
	}
}

// Start registers the report job and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.Report); err != nil {
		s.logger.Error("failed to schedule stock report", zap.String("schedule", s.schedule), zap.Error(err))
		return fmt.Errorf("invalid report schedule %q: %w", s.schedule, err)
	}
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running report to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

// Report logs one summary line plus a warning per low-stock product.
func (s *Scheduler) Report() {
	summary := s.source.Summary()
	s.logger.Info("inventory report",
		zap.Int("products", summary.TotalProducts),
		zap.Int("categories", summary.TotalCategories),
		zap.Int("total_stock", summary.TotalStock),
		zap.Int("sales", summary.TotalSales),
		zap.String("revenue", inventory.FormatMoney(summary.TotalRevenue)),
		zap.String("profit", inventory.FormatMoney(summary.TotalProfit)),
		zap.Int("low_stock", len(summary.LowStockProducts)))

	for _, p := range summary.LowStockProducts {
		s.logger.Warn("low stock",
			zap.String("product_id", p.ID),
			zap.String("name", p.Name),
			zap.Int("stock", p.Stock),
			zap.Int("threshold", domain.LowStockThreshold))
	}
}
