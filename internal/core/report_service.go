package core

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"plystore/internal/catalog"
)

// SaleLine is one sold challan line joined with its challan header.
type SaleLine struct {
	ChallanID     int             `json:"challan_id"`
	ChallanNumber string          `json:"challan_number"`
	Date          string          `json:"date"`
	CustomerName  string          `json:"customer_name"`
	Description   string          `json:"description"`
	Quantity      int             `json:"quantity"`
	Rate          decimal.Decimal `json:"rate"`
	Amount        decimal.Decimal `json:"amount"`
}

// SalesReport is the line rows plus their sheet and money totals.
type SalesReport struct {
	Lines         []SaleLine      `json:"lines"`
	TotalQuantity int             `json:"total_quantity"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// ReportService aggregates sales from challan lines. Lines sold against
// deleted inventory records drop out of these reports (inventory_id goes
// NULL); the challans themselves are untouched.
type ReportService interface {
	ProductSales(ctx context.Context, inventoryID int, window DateWindow) (*SalesReport, error)
	SalesByType(ctx context.Context, productType catalog.ProductType, window DateWindow) (*SalesReport, error)
	SalesByCompany(ctx context.Context, companyID int, window DateWindow) (*SalesReport, error)
	SalesByGrade(ctx context.Context, productType catalog.ProductType, grade string, window DateWindow) (*SalesReport, error)
}

type reportService struct {
	pool *pgxpool.Pool
}

func NewReportService(pool *pgxpool.Pool) ReportService {
	return &reportService{pool: pool}
}

// salesQuery runs the shared join with an extra filter on the inventory side.
// One round trip per report; totals are folded in Go while scanning.
func (s *reportService) salesQuery(ctx context.Context, window DateWindow, filter string, filterArgs ...any) (*SalesReport, error) {
	query := `
		SELECT ci.challan_id, ch.challan_number, ch.date::text, ch.customer_name,
		       ci.description, ci.quantity, ci.rate, ci.amount
		FROM challan_items ci
		JOIN challans ch ON ch.id = ci.challan_id
		JOIN inventory i ON i.id = ci.inventory_id
		WHERE ` + filter
	args := filterArgs

	if start, end, bounded := window.Bounds(time.Now()); bounded {
		query += fmt.Sprintf(" AND ch.date BETWEEN $%d AND $%d", len(args)+1, len(args)+2)
		args = append(args, start, end)
	}
	query += " ORDER BY ch.date DESC, ci.id DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	report := &SalesReport{TotalAmount: decimal.Zero}
	for rows.Next() {
		var l SaleLine
		if err := rows.Scan(&l.ChallanID, &l.ChallanNumber, &l.Date, &l.CustomerName,
			&l.Description, &l.Quantity, &l.Rate, &l.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan sale line: %w", err)
		}
		report.Lines = append(report.Lines, l)
		report.TotalQuantity += l.Quantity
		report.TotalAmount = report.TotalAmount.Add(l.Amount)
	}
	return report, nil
}

func (s *reportService) ProductSales(ctx context.Context, inventoryID int, window DateWindow) (*SalesReport, error) {
	return s.salesQuery(ctx, window, "ci.inventory_id = $1", inventoryID)
}

func (s *reportService) SalesByType(ctx context.Context, productType catalog.ProductType, window DateWindow) (*SalesReport, error) {
	return s.salesQuery(ctx, window, "i.product_type = $1", string(productType))
}

func (s *reportService) SalesByCompany(ctx context.Context, companyID int, window DateWindow) (*SalesReport, error) {
	return s.salesQuery(ctx, window, "i.company_id = $1", companyID)
}

func (s *reportService) SalesByGrade(ctx context.Context, productType catalog.ProductType, grade string, window DateWindow) (*SalesReport, error) {
	return s.salesQuery(ctx, window, "i.product_type = $1 AND i.grade = $2", string(productType), grade)
}
