package core_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"plystore/internal/catalog"
	"plystore/internal/core"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	_ = godotenv.Load("../../.env")

	// Use a dedicated TEST database to avoid wiping the live app database.
	// Set TEST_DATABASE_URL in your .env or environment to run integration tests.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set — skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	// Clean and seed test DB
	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE payments, challan_items, challans, laminate_entries, sites, inventory, companies, customers, users RESTART IDENTITY CASCADE;

		INSERT INTO customers (id, name, phone) VALUES (1, 'Ramesh Traders', '9800000001');
		INSERT INTO companies (id, name) VALUES (1, 'Greenply');
		SELECT setval('customers_id_seq', 1, true);
		SELECT setval('companies_id_seq', 1, true);
	`)
	if err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}

	return pool
}

func intp(i int) *int { return &i }

// seedStock creates a plywood stock record for company 1 and returns its ID.
func seedStock(t *testing.T, ctx context.Context, inv core.InventoryService, measurement, thickness string, qty int) int {
	t.Helper()
	item, err := inv.UpsertStock(ctx, core.StockInput{
		ProductType: catalog.Plywood,
		CompanyID:   intp(1),
		Measurement: measurement,
		Thickness:   thickness,
		Quantity:    qty,
	})
	if err != nil {
		t.Fatalf("UpsertStock failed: %v", err)
	}
	return item.ID
}

func TestChallanService_CreateAndSettle(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	inv := core.NewInventoryService(pool)
	svc := core.NewChallanService(pool)

	itemID := seedStock(t, ctx, inv, "8×4", "18mm", 50)

	next, err := svc.NextChallanNumber(ctx)
	if err != nil {
		t.Fatalf("NextChallanNumber failed: %v", err)
	}
	if next != "001" {
		t.Errorf("Expected first number 001, got %s", next)
	}

	challan, err := svc.CreateChallan(ctx, core.ChallanInput{
		CustomerID:       intp(1),
		Date:             "2026-09-01",
		CGSTPercentage:   decimal.NewFromInt(9),
		SGSTPercentage:   decimal.NewFromInt(9),
		TransportCharges: decimal.NewFromInt(200),
		Lines: []core.ChallanLineInput{
			{Description: "Greenply Plywood 8×4 18mm", Quantity: 10, Rate: decimal.NewFromInt(120), InventoryID: intp(itemID)},
		},
	}, inv)
	if err != nil {
		t.Fatalf("CreateChallan failed: %v", err)
	}

	if challan.ChallanNumber != "001" {
		t.Errorf("Expected challan number 001, got %s", challan.ChallanNumber)
	}
	if challan.CustomerName != "Ramesh Traders" {
		t.Errorf("Expected snapshotted customer name, got %q", challan.CustomerName)
	}
	if !challan.Subtotal.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("Expected subtotal 1200, got %s", challan.Subtotal)
	}
	if !challan.TotalAmount.Equal(decimal.NewFromInt(1616)) {
		t.Errorf("Expected total 1616, got %s", challan.TotalAmount)
	}
	if len(challan.Items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(challan.Items))
	}
	if !challan.Items[0].Amount.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("Expected line amount 1200, got %s", challan.Items[0].Amount)
	}

	item, err := inv.GetItem(ctx, itemID)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if item.Quantity != 40 {
		t.Errorf("Expected stock 40 after sale of 10, got %d", item.Quantity)
	}

	// Numbers are assigned sequentially.
	second, err := svc.CreateChallan(ctx, core.ChallanInput{
		CustomerName: "Walk-in",
		Date:         "2026-09-02",
		Lines: []core.ChallanLineInput{
			{Description: "Cut charges", Quantity: 1, Rate: decimal.NewFromInt(50)},
		},
	}, inv)
	if err != nil {
		t.Fatalf("CreateChallan (second) failed: %v", err)
	}
	if second.ChallanNumber != "002" {
		t.Errorf("Expected challan number 002, got %s", second.ChallanNumber)
	}
}

func TestChallanService_InsufficientStockRollsBackEverything(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	inv := core.NewInventoryService(pool)
	svc := core.NewChallanService(pool)

	okItem := seedStock(t, ctx, inv, "8×4", "18mm", 50)
	lowItem := seedStock(t, ctx, inv, "8×4", "12mm", 5)

	_, err := svc.CreateChallan(ctx, core.ChallanInput{
		CustomerID: intp(1),
		Date:       "2026-09-01",
		Lines: []core.ChallanLineInput{
			{Description: "Greenply Plywood 8×4 18mm", Quantity: 10, Rate: decimal.NewFromInt(120), InventoryID: intp(okItem)},
			{Description: "Greenply Plywood 8×4 12mm", Quantity: 6, Rate: decimal.NewFromInt(90), InventoryID: intp(lowItem)},
		},
	}, inv)
	if err == nil {
		t.Fatal("Expected insufficient stock error, got nil")
	}

	var stockErr *core.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("Expected InsufficientStockError, got %T: %v", err, err)
	}
	if stockErr.Available != 5 || stockErr.Requested != 6 {
		t.Errorf("Expected available 5 requested 6, got %d/%d", stockErr.Available, stockErr.Requested)
	}
	if stockErr.Description == "" {
		t.Error("Stock error must name the offending item")
	}

	// Nothing was applied: no challan, no items, first line's stock untouched.
	var challans, items int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM challans").Scan(&challans); err != nil {
		t.Fatalf("count challans: %v", err)
	}
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM challan_items").Scan(&items); err != nil {
		t.Fatalf("count challan_items: %v", err)
	}
	if challans != 0 || items != 0 {
		t.Errorf("Expected full rollback, found %d challans and %d items", challans, items)
	}

	item, err := inv.GetItem(ctx, okItem)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if item.Quantity != 50 {
		t.Errorf("Expected first line's stock restored to 50, got %d", item.Quantity)
	}

	// The failed attempt must not have consumed a challan number.
	next, err := svc.NextChallanNumber(ctx)
	if err != nil {
		t.Fatalf("NextChallanNumber failed: %v", err)
	}
	if next != "001" {
		t.Errorf("Expected next number still 001, got %s", next)
	}
}

func TestChallanService_DeleteDoesNotRestoreStock(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	inv := core.NewInventoryService(pool)
	svc := core.NewChallanService(pool)

	itemID := seedStock(t, ctx, inv, "6×4", "6mm", 20)

	challan, err := svc.CreateChallan(ctx, core.ChallanInput{
		CustomerID: intp(1),
		Date:       "2026-09-01",
		Lines: []core.ChallanLineInput{
			{Description: "Greenply Plywood 6×4 6mm", Quantity: 8, Rate: decimal.NewFromInt(75), InventoryID: intp(itemID)},
		},
	}, inv)
	if err != nil {
		t.Fatalf("CreateChallan failed: %v", err)
	}

	if err := svc.DeleteChallan(ctx, challan.ID); err != nil {
		t.Fatalf("DeleteChallan failed: %v", err)
	}

	if _, err := svc.GetChallan(ctx, challan.ID); err == nil {
		t.Error("Expected deleted challan to be gone")
	}

	item, err := inv.GetItem(ctx, itemID)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if item.Quantity != 12 {
		t.Errorf("Deletion must not restore stock: expected 12, got %d", item.Quantity)
	}
}

func TestChallanService_CustomerNameIsSnapshot(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	inv := core.NewInventoryService(pool)
	svc := core.NewChallanService(pool)
	customers := core.NewCustomerService(pool)

	challan, err := svc.CreateChallan(ctx, core.ChallanInput{
		CustomerID: intp(1),
		Date:       "2026-09-01",
		Lines: []core.ChallanLineInput{
			{Description: "Delivery charges", Quantity: 1, Rate: decimal.NewFromInt(300)},
		},
	}, inv)
	if err != nil {
		t.Fatalf("CreateChallan failed: %v", err)
	}

	if _, err := customers.UpdateCustomer(ctx, 1, "Renamed Traders", "9800000001", ""); err != nil {
		t.Fatalf("UpdateCustomer failed: %v", err)
	}

	got, err := svc.GetChallan(ctx, challan.ID)
	if err != nil {
		t.Fatalf("GetChallan failed: %v", err)
	}
	if got.CustomerName != "Ramesh Traders" {
		t.Errorf("Challan must keep the name snapshot, got %q", got.CustomerName)
	}
}

func TestChallanService_ListAndSearch(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	inv := core.NewInventoryService(pool)
	svc := core.NewChallanService(pool)

	for i := 0; i < 3; i++ {
		name := "Walk-in"
		if i == 1 {
			name = "Suresh Plywoods"
		}
		_, err := svc.CreateChallan(ctx, core.ChallanInput{
			CustomerName: name,
			Date:         "2026-09-01",
			Lines: []core.ChallanLineInput{
				{Description: "Misc", Quantity: 1, Rate: decimal.NewFromInt(100)},
			},
		}, inv)
		if err != nil {
			t.Fatalf("CreateChallan failed: %v", err)
		}
	}

	challans, total, err := svc.ListChallans(ctx, 1, 2, "")
	if err != nil {
		t.Fatalf("ListChallans failed: %v", err)
	}
	if total != 3 {
		t.Errorf("Expected total 3, got %d", total)
	}
	if len(challans) != 2 {
		t.Errorf("Expected page of 2, got %d", len(challans))
	}
	// Newest first.
	if challans[0].ChallanNumber != "003" {
		t.Errorf("Expected newest challan 003 first, got %s", challans[0].ChallanNumber)
	}

	matches, total, err := svc.ListChallans(ctx, 1, 10, "suresh")
	if err != nil {
		t.Fatalf("ListChallans (search) failed: %v", err)
	}
	if total != 1 || len(matches) != 1 {
		t.Fatalf("Expected 1 match for customer search, got %d", total)
	}
	if matches[0].CustomerName != "Suresh Plywoods" {
		t.Errorf("Unexpected match %q", matches[0].CustomerName)
	}
}
