package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"plystore/internal/catalog"
	"plystore/internal/core"
)

type appService struct {
	pool      *pgxpool.Pool
	customers core.CustomerService
	companies core.CompanyService
	inventory core.InventoryService
	challans  core.ChallanService
	payments  core.PaymentService
	sites     core.SiteService
	reports   core.ReportService
	users     core.UserService
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	pool *pgxpool.Pool,
	customers core.CustomerService,
	companies core.CompanyService,
	inventory core.InventoryService,
	challans core.ChallanService,
	payments core.PaymentService,
	sites core.SiteService,
	reports core.ReportService,
	users core.UserService,
) ApplicationService {
	return &appService{
		pool:      pool,
		customers: customers,
		companies: companies,
		inventory: inventory,
		challans:  challans,
		payments:  payments,
		sites:     sites,
		reports:   reports,
		users:     users,
	}
}

// requireManager gates restricted operations on the caller's role.
func requireManager(identity Identity, op string) error {
	if !identity.IsManager() {
		return &core.AuthorizationError{Op: op}
	}
	return nil
}

// AuthenticateUser verifies credentials against the stored bcrypt hash.
func (s *appService) AuthenticateUser(ctx context.Context, username, password string) (*UserSession, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("authentication failed: invalid credentials")
	}
	return &UserSession{UserID: user.ID, Username: user.Username, Role: user.Role}, nil
}

func (s *appService) GetUser(ctx context.Context, userID int) (*UserResult, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	email := ""
	if user.Email != nil {
		email = *user.Email
	}
	return &UserResult{ID: user.ID, Username: user.Username, Email: email, Role: user.Role}, nil
}

// ── Customers ────────────────────────────────────────────────────────────────

func (s *appService) ListCustomers(ctx context.Context) (*CustomerListResult, error) {
	customers, err := s.customers.GetCustomers(ctx)
	if err != nil {
		return nil, err
	}
	return &CustomerListResult{Customers: customers}, nil
}

func (s *appService) SearchCustomers(ctx context.Context, query string) (*CustomerListResult, error) {
	customers, err := s.customers.SearchCustomers(ctx, query)
	if err != nil {
		return nil, err
	}
	return &CustomerListResult{Customers: customers}, nil
}

func (s *appService) GetCustomer(ctx context.Context, id int) (*CustomerResult, error) {
	customer, err := s.customers.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	sites, err := s.sites.GetSitesByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	return &CustomerResult{Customer: customer, Sites: sites}, nil
}

func (s *appService) CreateCustomer(ctx context.Context, req CustomerRequest) (*core.Customer, error) {
	return s.customers.CreateCustomer(ctx, req.Name, req.Phone, req.Email)
}

func (s *appService) UpdateCustomer(ctx context.Context, id int, req CustomerRequest) (*core.Customer, error) {
	return s.customers.UpdateCustomer(ctx, id, req.Name, req.Phone, req.Email)
}

func (s *appService) DeleteCustomer(ctx context.Context, identity Identity, id int) error {
	if err := requireManager(identity, "delete customer"); err != nil {
		return err
	}
	return s.customers.DeleteCustomer(ctx, id)
}

// ── Companies ────────────────────────────────────────────────────────────────

func (s *appService) ListCompanies(ctx context.Context) (*CompanyListResult, error) {
	companies, err := s.companies.GetCompanies(ctx)
	if err != nil {
		return nil, err
	}
	return &CompanyListResult{Companies: companies}, nil
}

func (s *appService) CreateCompany(ctx context.Context, name string) (*core.Company, error) {
	return s.companies.CreateCompany(ctx, name, s.inventory)
}

func (s *appService) UpdateCompany(ctx context.Context, id int, name string) (*core.Company, error) {
	return s.companies.UpdateCompany(ctx, id, name)
}

func (s *appService) DeleteCompany(ctx context.Context, identity Identity, id int) error {
	if err := requireManager(identity, "delete company"); err != nil {
		return err
	}
	return s.companies.DeleteCompany(ctx, id)
}

// ── Inventory ────────────────────────────────────────────────────────────────

func (s *appService) ListInventory(ctx context.Context, filter InventoryFilter) (*InventoryListResult, error) {
	var (
		items []core.InventoryItem
		err   error
	)
	switch {
	case filter.CompanyID != 0:
		items, err = s.inventory.GetInventoryByCompany(ctx, filter.CompanyID)
	case filter.ProductType != "":
		items, err = s.inventory.GetInventoryByType(ctx, filter.ProductType)
	default:
		items, err = s.inventory.GetInventory(ctx)
	}
	if err != nil {
		return nil, err
	}
	return &InventoryListResult{Items: items}, nil
}

func (s *appService) GetInventoryItem(ctx context.Context, id int) (*core.InventoryItem, error) {
	return s.inventory.GetItem(ctx, id)
}

func (s *appService) AddStock(ctx context.Context, req core.StockInput) (*core.InventoryItem, error) {
	return s.inventory.UpsertStock(ctx, req)
}

func (s *appService) UpdateInventoryItem(ctx context.Context, id, quantity int, notes string) (*core.InventoryItem, error) {
	return s.inventory.UpdateItem(ctx, id, quantity, notes)
}

func (s *appService) DeleteInventoryItem(ctx context.Context, identity Identity, id int) error {
	if err := requireManager(identity, "delete inventory item"); err != nil {
		return err
	}
	return s.inventory.DeleteItem(ctx, id)
}

func (s *appService) AdjustStock(ctx context.Context, id, delta int) (*core.InventoryItem, error) {
	return s.inventory.AdjustQuantity(ctx, id, delta)
}

func (s *appService) InitializeInventory(ctx context.Context) (int, error) {
	return s.inventory.InitializeAll(ctx)
}

// ── Challans ─────────────────────────────────────────────────────────────────

func (s *appService) NextChallanNumber(ctx context.Context) (string, error) {
	return s.challans.NextChallanNumber(ctx)
}

func (s *appService) CreateChallan(ctx context.Context, req CreateChallanRequest) (*core.Challan, error) {
	lines := make([]core.ChallanLineInput, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = core.ChallanLineInput{
			Description: l.Description,
			Quantity:    l.Quantity,
			Rate:        l.Rate,
			InventoryID: l.InventoryID,
		}
	}
	return s.challans.CreateChallan(ctx, core.ChallanInput{
		CustomerID:       req.CustomerID,
		CustomerName:     req.CustomerName,
		SiteID:           req.SiteID,
		SiteAddress:      req.SiteAddress,
		Phone:            req.Phone,
		AdditionalPhone:  req.AdditionalPhone,
		Date:             req.Date,
		CGSTPercentage:   req.CGSTPercentage,
		SGSTPercentage:   req.SGSTPercentage,
		TransportCharges: req.TransportCharges,
		LabourCharges:    req.LabourCharges,
		Notes:            req.Notes,
		Lines:            lines,
	}, s.inventory)
}

func (s *appService) GetChallan(ctx context.Context, id int) (*core.Challan, error) {
	return s.challans.GetChallan(ctx, id)
}

func (s *appService) ListChallans(ctx context.Context, page, limit int, query string) (*ChallanListResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	challans, total, err := s.challans.ListChallans(ctx, page, limit, query)
	if err != nil {
		return nil, err
	}
	return &ChallanListResult{Challans: challans, Total: total, Page: page, Limit: limit}, nil
}

func (s *appService) DeleteChallan(ctx context.Context, identity Identity, id int) error {
	if err := requireManager(identity, "delete challan"); err != nil {
		return err
	}
	return s.challans.DeleteChallan(ctx, id)
}

// ── Customer ledger ──────────────────────────────────────────────────────────

func (s *appService) GetCustomerLedger(ctx context.Context, identity Identity, customerID int, window core.DateWindow) (*LedgerResult, error) {
	if err := requireManager(identity, "view customer ledger"); err != nil {
		return nil, err
	}
	balance, err := s.payments.CustomerBalance(ctx, customerID, window)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.ListPayments(ctx, customerID, window)
	if err != nil {
		return nil, err
	}
	years, err := s.payments.PaymentYears(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return &LedgerResult{Balance: balance, Payments: payments, Years: years}, nil
}

func (s *appService) RecordPayment(ctx context.Context, identity Identity, req PaymentRequest) (*core.Payment, error) {
	if err := requireManager(identity, "record payment"); err != nil {
		return nil, err
	}
	return s.payments.RecordPayment(ctx, req.CustomerID, req.Amount, req.PaymentDate, req.PaymentMethod, req.Notes)
}

func (s *appService) DeletePayment(ctx context.Context, identity Identity, id int) error {
	if err := requireManager(identity, "delete payment"); err != nil {
		return err
	}
	return s.payments.DeletePayment(ctx, id)
}

// ── Sites & laminates ────────────────────────────────────────────────────────

func (s *appService) ListSites(ctx context.Context, customerID int) ([]core.Site, error) {
	return s.sites.GetSitesByCustomer(ctx, customerID)
}

func (s *appService) CreateSite(ctx context.Context, req SiteRequest) (*core.Site, error) {
	return s.sites.CreateSite(ctx, req.CustomerID, req.Address, req.FlatNumber)
}

func (s *appService) UpdateSite(ctx context.Context, id int, req SiteRequest) (*core.Site, error) {
	return s.sites.UpdateSite(ctx, id, req.Address, req.FlatNumber)
}

func (s *appService) DeleteSite(ctx context.Context, id int) error {
	return s.sites.DeleteSite(ctx, id)
}

func (s *appService) ListLaminateEntries(ctx context.Context, siteID int) ([]core.LaminateEntry, error) {
	return s.sites.GetLaminateEntries(ctx, siteID)
}

func (s *appService) CreateLaminateEntry(ctx context.Context, req LaminateEntryRequest) (*core.LaminateEntry, error) {
	return s.sites.CreateLaminateEntry(ctx, req.SiteID, req.Room, req.ModelName, req.Description, req.Notes, req.Date)
}

func (s *appService) UpdateLaminateEntry(ctx context.Context, id int, req LaminateEntryRequest) (*core.LaminateEntry, error) {
	return s.sites.UpdateLaminateEntry(ctx, id, req.Room, req.ModelName, req.Description, req.Notes, req.Date)
}

func (s *appService) DeleteLaminateEntry(ctx context.Context, id int) error {
	return s.sites.DeleteLaminateEntry(ctx, id)
}

// ── Sales reports ────────────────────────────────────────────────────────────

func (s *appService) ProductSalesReport(ctx context.Context, inventoryID int, window core.DateWindow) (*core.SalesReport, error) {
	return s.reports.ProductSales(ctx, inventoryID, window)
}

func (s *appService) SalesByTypeReport(ctx context.Context, productType catalog.ProductType, window core.DateWindow) (*core.SalesReport, error) {
	return s.reports.SalesByType(ctx, productType, window)
}

func (s *appService) SalesByCompanyReport(ctx context.Context, companyID int, window core.DateWindow) (*core.SalesReport, error) {
	return s.reports.SalesByCompany(ctx, companyID, window)
}

func (s *appService) SalesByGradeReport(ctx context.Context, productType catalog.ProductType, grade string, window core.DateWindow) (*core.SalesReport, error) {
	return s.reports.SalesByGrade(ctx, productType, grade, window)
}
