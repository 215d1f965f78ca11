package scheduler

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"inventory_manager/domain"
)

type fixedSummary domain.Summary

func (f fixedSummary) Summary() domain.Summary { return domain.Summary(f) }

func TestReport(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	src := fixedSummary{
		TotalProducts: 2,
		TotalStock:    7,
		TotalSales:    1,
		TotalRevenue:  60,
		TotalProfit:   35.5,
		LowStockProducts: []domain.Product{
			{ID: "p2", Name: "Q", Stock: 1},
		},
	}
	s := NewScheduler("@hourly", src, zap.New(core))

	s.Report()

	reports := logs.FilterMessage("inventory report").All()
	if len(reports) != 1 {
		t.Fatalf("expected one report entry, got %d", len(reports))
	}
	fields := reports[0].ContextMap()
	if fields["revenue"] != "60.00" || fields["profit"] != "35.50" || fields["low_stock"] != int64(1) {
		t.Fatalf("unexpected report fields: %v", fields)
	}

	warnings := logs.FilterMessage("low stock").All()
	if len(warnings) != 1 || warnings[0].Level != zapcore.WarnLevel {
		t.Fatalf("expected one low stock warning, got %+v", warnings)
	}
	if warnings[0].ContextMap()["product_id"] != "p2" {
		t.Fatalf("unexpected warning fields: %v", warnings[0].ContextMap())
	}
}

func TestStartRejectsInvalidSchedule(t *testing.T) {
	s := NewScheduler("not a schedule", fixedSummary{}, nil)
	if err := s.Start(); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
}

func TestStartStop(t *testing.T) {
	s := NewScheduler("*/5 * * * *", fixedSummary{}, nil)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Stop()
}
