package core_test

import (
	"context"
	"testing"

	"plystore/internal/catalog"
	"plystore/internal/core"

	"github.com/shopspring/decimal"
)

func TestReportService_SalesBreakdowns(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	inv := core.NewInventoryService(pool)
	challans := core.NewChallanService(pool)
	reports := core.NewReportService(pool)

	plyID := seedStock(t, ctx, inv, "8×4", "18mm", 100)
	board, err := inv.UpsertStock(ctx, core.StockInput{
		ProductType: catalog.Board,
		Grade:       "Marine",
		Measurement: "8×4",
		Thickness:   "19mm",
		Quantity:    40,
	})
	if err != nil {
		t.Fatalf("UpsertStock (board) failed: %v", err)
	}

	mustCreate := func(date string, lines []core.ChallanLineInput) {
		t.Helper()
		if _, err := challans.CreateChallan(ctx, core.ChallanInput{
			CustomerID: intp(1),
			Date:       date,
			Lines:      lines,
		}, inv); err != nil {
			t.Fatalf("CreateChallan failed: %v", err)
		}
	}

	mustCreate("2026-09-01", []core.ChallanLineInput{
		{Description: "Greenply Plywood 8×4 18mm", Quantity: 10, Rate: decimal.NewFromInt(120), InventoryID: intp(plyID)},
		{Description: "Board Marine 8×4 19mm", Quantity: 5, Rate: decimal.NewFromInt(200), InventoryID: intp(board.ID)},
	})
	mustCreate("2026-07-15", []core.ChallanLineInput{
		{Description: "Greenply Plywood 8×4 18mm", Quantity: 4, Rate: decimal.NewFromInt(120), InventoryID: intp(plyID)},
	})

	allTime := core.DateWindow{Kind: core.WindowAllTime}

	product, err := reports.ProductSales(ctx, plyID, allTime)
	if err != nil {
		t.Fatalf("ProductSales failed: %v", err)
	}
	if len(product.Lines) != 2 || product.TotalQuantity != 14 {
		t.Errorf("Expected 2 lines / qty 14 for the plywood item, got %d/%d", len(product.Lines), product.TotalQuantity)
	}
	if !product.TotalAmount.Equal(decimal.NewFromInt(1680)) {
		t.Errorf("Expected plywood total 1680, got %s", product.TotalAmount)
	}

	byType, err := reports.SalesByType(ctx, catalog.Board, allTime)
	if err != nil {
		t.Fatalf("SalesByType failed: %v", err)
	}
	if len(byType.Lines) != 1 || !byType.TotalAmount.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("Expected single board line totalling 1000, got %d lines / %s", len(byType.Lines), byType.TotalAmount)
	}

	byCompany, err := reports.SalesByCompany(ctx, 1, allTime)
	if err != nil {
		t.Fatalf("SalesByCompany failed: %v", err)
	}
	if byCompany.TotalQuantity != 14 {
		t.Errorf("Company report must only count company-scoped stock, got qty %d", byCompany.TotalQuantity)
	}

	byGrade, err := reports.SalesByGrade(ctx, catalog.Board, "Marine", allTime)
	if err != nil {
		t.Fatalf("SalesByGrade failed: %v", err)
	}
	if byGrade.TotalQuantity != 5 {
		t.Errorf("Expected grade qty 5, got %d", byGrade.TotalQuantity)
	}

	// A bounded window drops the July sale.
	windowed, err := reports.ProductSales(ctx, plyID, core.DateWindow{
		Kind: core.WindowCustom, Start: "2026-08-01", End: "2026-09-30",
	})
	if err != nil {
		t.Fatalf("ProductSales (windowed) failed: %v", err)
	}
	if len(windowed.Lines) != 1 || windowed.TotalQuantity != 10 {
		t.Errorf("Expected only the September sale in window, got %d lines / qty %d", len(windowed.Lines), windowed.TotalQuantity)
	}
}

func TestReportService_EmptyReport(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	reports := core.NewReportService(pool)

	report, err := reports.SalesByType(ctx, catalog.Flexi, core.DateWindow{Kind: core.WindowAllTime})
	if err != nil {
		t.Fatalf("SalesByType failed: %v", err)
	}
	if len(report.Lines) != 0 || report.TotalQuantity != 0 {
		t.Errorf("Expected empty report, got %+v", report)
	}
	if !report.TotalAmount.Equal(decimal.Zero) {
		t.Errorf("Expected zero total, got %s", report.TotalAmount)
	}
}
