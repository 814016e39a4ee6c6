package core_test

import (
	"context"
	"errors"
	"testing"

	"plystore/internal/core"
)

func TestCustomerService_CRUDAndSearch(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	svc := core.NewCustomerService(pool)

	created, err := svc.CreateCustomer(ctx, "Suresh Plywoods", "9800000002", "suresh@example.com")
	if err != nil {
		t.Fatalf("CreateCustomer failed: %v", err)
	}
	if created.Email == nil || *created.Email != "suresh@example.com" {
		t.Errorf("Expected email to round-trip, got %v", created.Email)
	}

	var validationErr *core.ValidationError
	if _, err := svc.CreateCustomer(ctx, "", "9800000003", ""); !errors.As(err, &validationErr) {
		t.Errorf("Expected ValidationError for blank name, got %v", err)
	}
	if _, err := svc.CreateCustomer(ctx, "No Phone", "  ", ""); !errors.As(err, &validationErr) {
		t.Errorf("Expected ValidationError for blank phone, got %v", err)
	}

	updated, err := svc.UpdateCustomer(ctx, created.ID, "Suresh Ply & Hardware", "9800000002", "")
	if err != nil {
		t.Fatalf("UpdateCustomer failed: %v", err)
	}
	if updated.Name != "Suresh Ply & Hardware" {
		t.Errorf("Expected updated name, got %q", updated.Name)
	}
	if updated.Email != nil {
		t.Errorf("Empty email must store NULL, got %v", *updated.Email)
	}

	all, err := svc.GetCustomers(ctx)
	if err != nil {
		t.Fatalf("GetCustomers failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 customers (seed + created), got %d", len(all))
	}
	// Ordered by name: Ramesh before Suresh.
	if all[0].Name != "Ramesh Traders" {
		t.Errorf("Expected name ordering, got %q first", all[0].Name)
	}

	// Search matches name, phone, or email, case-insensitively.
	byName, err := svc.SearchCustomers(ctx, "suresh")
	if err != nil {
		t.Fatalf("SearchCustomers failed: %v", err)
	}
	if len(byName) != 1 || byName[0].ID != created.ID {
		t.Fatalf("Expected 1 name match, got %d", len(byName))
	}
	byPhone, err := svc.SearchCustomers(ctx, "9800000001")
	if err != nil {
		t.Fatalf("SearchCustomers (phone) failed: %v", err)
	}
	if len(byPhone) != 1 || byPhone[0].Name != "Ramesh Traders" {
		t.Fatalf("Expected the seeded customer by phone, got %d matches", len(byPhone))
	}
	none, err := svc.SearchCustomers(ctx, "   ")
	if err != nil {
		t.Fatalf("SearchCustomers (blank) failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Blank query must match nothing, got %d", len(none))
	}

	if err := svc.DeleteCustomer(ctx, created.ID); err != nil {
		t.Fatalf("DeleteCustomer failed: %v", err)
	}
	var notFound *core.NotFoundError
	if _, err := svc.GetCustomer(ctx, created.ID); !errors.As(err, &notFound) {
		t.Errorf("Expected NotFoundError after delete, got %v", err)
	}
	if err := svc.DeleteCustomer(ctx, created.ID); !errors.As(err, &notFound) {
		t.Errorf("Expected NotFoundError on double delete, got %v", err)
	}
}

func TestCompanyService_CRUD(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	svc := core.NewCompanyService(pool)

	got, err := svc.GetCompany(ctx, 1)
	if err != nil {
		t.Fatalf("GetCompany failed: %v", err)
	}
	if got.Name != "Greenply" {
		t.Errorf("Expected seeded company, got %q", got.Name)
	}

	updated, err := svc.UpdateCompany(ctx, 1, "Greenply Industries")
	if err != nil {
		t.Fatalf("UpdateCompany failed: %v", err)
	}
	if updated.Name != "Greenply Industries" {
		t.Errorf("Expected renamed company, got %q", updated.Name)
	}

	var validationErr *core.ValidationError
	if _, err := svc.UpdateCompany(ctx, 1, "  "); !errors.As(err, &validationErr) {
		t.Errorf("Expected ValidationError for blank name, got %v", err)
	}
	var notFound *core.NotFoundError
	if _, err := svc.GetCompany(ctx, 999); !errors.As(err, &notFound) {
		t.Errorf("Expected NotFoundError for missing company, got %v", err)
	}

	companies, err := svc.GetCompanies(ctx)
	if err != nil {
		t.Fatalf("GetCompanies failed: %v", err)
	}
	if len(companies) != 1 {
		t.Errorf("Expected 1 company, got %d", len(companies))
	}

	if err := svc.DeleteCompany(ctx, 1); err != nil {
		t.Fatalf("DeleteCompany failed: %v", err)
	}
	if _, err := svc.GetCompany(ctx, 1); !errors.As(err, &notFound) {
		t.Errorf("Expected NotFoundError after delete, got %v", err)
	}
}
