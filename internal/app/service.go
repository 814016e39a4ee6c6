package app

import (
	"context"

	"plystore/internal/catalog"
	"plystore/internal/core"
)

// Identity is the authenticated caller as the facade sees it: web requests
// derive it from JWT claims, tests and tools construct it directly. The core
// services know nothing about roles; all gating happens here.
type Identity struct {
	UserID int
	Role   string
}

// IsManager reports whether the identity may perform restricted operations.
func (id Identity) IsManager() bool { return id.Role == core.RoleManager }

// ApplicationService is the single interface UI adapters call. It decouples
// presentation from business logic and enforces the role model: deleting
// customers, challans, and payments, recording payments, and reading the
// customer ledger are manager-only.
type ApplicationService interface {
	// AuthenticateUser verifies credentials and returns a session on success.
	AuthenticateUser(ctx context.Context, username, password string) (*UserSession, error)

	// GetUser returns a user profile by ID.
	GetUser(ctx context.Context, userID int) (*UserResult, error)

	// ── Customers ───────────────────────────────────────────────────────────

	ListCustomers(ctx context.Context) (*CustomerListResult, error)
	SearchCustomers(ctx context.Context, query string) (*CustomerListResult, error)
	// GetCustomer returns the customer together with their delivery sites.
	GetCustomer(ctx context.Context, id int) (*CustomerResult, error)
	CreateCustomer(ctx context.Context, req CustomerRequest) (*core.Customer, error)
	UpdateCustomer(ctx context.Context, id int, req CustomerRequest) (*core.Customer, error)
	DeleteCustomer(ctx context.Context, identity Identity, id int) error

	// ── Companies ───────────────────────────────────────────────────────────

	ListCompanies(ctx context.Context) (*CompanyListResult, error)
	// CreateCompany also seeds the company's plywood inventory grid.
	CreateCompany(ctx context.Context, name string) (*core.Company, error)
	UpdateCompany(ctx context.Context, id int, name string) (*core.Company, error)
	DeleteCompany(ctx context.Context, identity Identity, id int) error

	// ── Inventory ───────────────────────────────────────────────────────────

	ListInventory(ctx context.Context, filter InventoryFilter) (*InventoryListResult, error)
	GetInventoryItem(ctx context.Context, id int) (*core.InventoryItem, error)
	// AddStock merges into an existing attribute combination or creates it.
	AddStock(ctx context.Context, req core.StockInput) (*core.InventoryItem, error)
	UpdateInventoryItem(ctx context.Context, id, quantity int, notes string) (*core.InventoryItem, error)
	DeleteInventoryItem(ctx context.Context, identity Identity, id int) error
	AdjustStock(ctx context.Context, id, delta int) (*core.InventoryItem, error)
	// InitializeInventory seeds every catalog combination for all companies
	// and product families. Returns the number of records created.
	InitializeInventory(ctx context.Context) (int, error)

	// ── Challans ────────────────────────────────────────────────────────────

	NextChallanNumber(ctx context.Context) (string, error)
	CreateChallan(ctx context.Context, req CreateChallanRequest) (*core.Challan, error)
	GetChallan(ctx context.Context, id int) (*core.Challan, error)
	ListChallans(ctx context.Context, page, limit int, query string) (*ChallanListResult, error)
	DeleteChallan(ctx context.Context, identity Identity, id int) error

	// ── Customer ledger (manager-only) ──────────────────────────────────────

	GetCustomerLedger(ctx context.Context, identity Identity, customerID int, window core.DateWindow) (*LedgerResult, error)
	RecordPayment(ctx context.Context, identity Identity, req PaymentRequest) (*core.Payment, error)
	DeletePayment(ctx context.Context, identity Identity, id int) error

	// ── Sites & laminates ───────────────────────────────────────────────────

	ListSites(ctx context.Context, customerID int) ([]core.Site, error)
	CreateSite(ctx context.Context, req SiteRequest) (*core.Site, error)
	UpdateSite(ctx context.Context, id int, req SiteRequest) (*core.Site, error)
	DeleteSite(ctx context.Context, id int) error
	ListLaminateEntries(ctx context.Context, siteID int) ([]core.LaminateEntry, error)
	CreateLaminateEntry(ctx context.Context, req LaminateEntryRequest) (*core.LaminateEntry, error)
	UpdateLaminateEntry(ctx context.Context, id int, req LaminateEntryRequest) (*core.LaminateEntry, error)
	DeleteLaminateEntry(ctx context.Context, id int) error

	// ── Sales reports ───────────────────────────────────────────────────────

	ProductSalesReport(ctx context.Context, inventoryID int, window core.DateWindow) (*core.SalesReport, error)
	SalesByTypeReport(ctx context.Context, productType catalog.ProductType, window core.DateWindow) (*core.SalesReport, error)
	SalesByCompanyReport(ctx context.Context, companyID int, window core.DateWindow) (*core.SalesReport, error)
	SalesByGradeReport(ctx context.Context, productType catalog.ProductType, grade string, window core.DateWindow) (*core.SalesReport, error)
}
