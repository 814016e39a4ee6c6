package core_test

import (
	"context"
	"errors"
	"testing"

	"plystore/internal/core"
)

func TestSiteService_CRUD(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	svc := core.NewSiteService(pool)

	site, err := svc.CreateSite(ctx, 1, "12 MG Road, Pune", "Flat 4B")
	if err != nil {
		t.Fatalf("CreateSite failed: %v", err)
	}
	if site.CustomerID != 1 || site.Address != "12 MG Road, Pune" {
		t.Errorf("Unexpected site %+v", site)
	}
	if site.FlatNumber == nil || *site.FlatNumber != "Flat 4B" {
		t.Errorf("Expected flat number to round-trip, got %v", site.FlatNumber)
	}

	got, err := svc.GetSite(ctx, site.ID)
	if err != nil {
		t.Fatalf("GetSite failed: %v", err)
	}
	if got.Address != site.Address {
		t.Errorf("GetSite returned %q, want %q", got.Address, site.Address)
	}

	updated, err := svc.UpdateSite(ctx, site.ID, "14 MG Road, Pune", "")
	if err != nil {
		t.Fatalf("UpdateSite failed: %v", err)
	}
	if updated.Address != "14 MG Road, Pune" {
		t.Errorf("Expected updated address, got %q", updated.Address)
	}
	if updated.FlatNumber != nil {
		t.Errorf("Empty flat number must store NULL, got %v", *updated.FlatNumber)
	}

	if _, err := svc.CreateSite(ctx, 1, "Warehouse, Nashik", ""); err != nil {
		t.Fatalf("CreateSite (second) failed: %v", err)
	}
	sites, err := svc.GetSitesByCustomer(ctx, 1)
	if err != nil {
		t.Fatalf("GetSitesByCustomer failed: %v", err)
	}
	if len(sites) != 2 {
		t.Fatalf("Expected 2 sites, got %d", len(sites))
	}

	if err := svc.DeleteSite(ctx, site.ID); err != nil {
		t.Fatalf("DeleteSite failed: %v", err)
	}
	var notFound *core.NotFoundError
	if _, err := svc.GetSite(ctx, site.ID); !errors.As(err, &notFound) {
		t.Errorf("Expected NotFoundError after delete, got %v", err)
	}
}

func TestSiteService_Validation(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	svc := core.NewSiteService(pool)

	var validationErr *core.ValidationError
	if _, err := svc.CreateSite(ctx, 1, "   ", ""); !errors.As(err, &validationErr) {
		t.Errorf("Expected ValidationError for blank address, got %v", err)
	}

	// FK violation surfaces as a typed not-found, not a raw pg error.
	var notFound *core.NotFoundError
	if _, err := svc.CreateSite(ctx, 999, "Somewhere", ""); !errors.As(err, &notFound) {
		t.Errorf("Expected NotFoundError for missing customer, got %v", err)
	}
}

func TestSiteService_LaminateEntries(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	svc := core.NewSiteService(pool)

	site, err := svc.CreateSite(ctx, 1, "Bungalow 7, Baner", "")
	if err != nil {
		t.Fatalf("CreateSite failed: %v", err)
	}

	first, err := svc.CreateLaminateEntry(ctx, site.ID, "Kitchen", "Merino 21034", "High gloss white", "", "2026-08-20")
	if err != nil {
		t.Fatalf("CreateLaminateEntry failed: %v", err)
	}
	if _, err := svc.CreateLaminateEntry(ctx, site.ID, "Bedroom", "Century 70221", "", "client pick", "2026-08-25"); err != nil {
		t.Fatalf("CreateLaminateEntry (second) failed: %v", err)
	}

	entries, err := svc.GetLaminateEntries(ctx, site.ID)
	if err != nil {
		t.Fatalf("GetLaminateEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	// Newest date first.
	if entries[0].Room != "Bedroom" {
		t.Errorf("Expected newest entry first, got room %q", entries[0].Room)
	}

	updated, err := svc.UpdateLaminateEntry(ctx, first.ID, "Kitchen", "Merino 21040", "Matte white", "", "2026-08-21")
	if err != nil {
		t.Fatalf("UpdateLaminateEntry failed: %v", err)
	}
	if updated.ModelName != "Merino 21040" {
		t.Errorf("Expected updated model, got %q", updated.ModelName)
	}

	var validationErr *core.ValidationError
	if _, err := svc.CreateLaminateEntry(ctx, site.ID, "", "Merino 21034", "", "", "2026-08-20"); !errors.As(err, &validationErr) {
		t.Errorf("Expected ValidationError for blank room, got %v", err)
	}
	var notFound *core.NotFoundError
	if _, err := svc.CreateLaminateEntry(ctx, 999, "Hall", "Merino 21034", "", "", "2026-08-20"); !errors.As(err, &notFound) {
		t.Errorf("Expected NotFoundError for missing site, got %v", err)
	}

	if err := svc.DeleteLaminateEntry(ctx, first.ID); err != nil {
		t.Fatalf("DeleteLaminateEntry failed: %v", err)
	}
	entries, err = svc.GetLaminateEntries(ctx, site.ID)
	if err != nil {
		t.Fatalf("GetLaminateEntries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected 1 entry after delete, got %d", len(entries))
	}
}
