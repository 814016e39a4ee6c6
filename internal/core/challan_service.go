package core

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ChallanService is the numbering authority and composer for delivery
// challans. Creation is one transaction: number assignment, header, items,
// and per-line stock deductions commit together or not at all.
type ChallanService interface {
	// NextChallanNumber previews the number the next challan would take.
	// Advisory only: the binding assignment happens inside CreateChallan's
	// transaction.
	NextChallanNumber(ctx context.Context) (string, error)
	CreateChallan(ctx context.Context, input ChallanInput, inv InventoryService) (*Challan, error)
	GetChallan(ctx context.Context, id int) (*Challan, error)
	// ListChallans returns one page of challan headers, newest first, plus the
	// total match count. query filters on challan number and customer name.
	ListChallans(ctx context.Context, page, limit int, query string) ([]Challan, int, error)
	// DeleteChallan removes the challan and its items. Stock deducted at
	// creation is never restored; corrections go through inventory adjustments.
	DeleteChallan(ctx context.Context, id int) error
}

type challanService struct {
	pool *pgxpool.Pool
}

func NewChallanService(pool *pgxpool.Pool) ChallanService {
	return &challanService{pool: pool}
}

// nextNumberQ reads the highest assigned number. A read failure here is fatal
// to the enclosing operation; numbering never falls back to a default.
func nextNumberQ(ctx context.Context, q pgxQuerier) (int, error) {
	var max int
	err := q.QueryRow(ctx,
		"SELECT COALESCE(MAX(challan_number::int), 0) FROM challans").Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("failed to read last challan number: %w", err)
	}
	return max, nil
}

func (s *challanService) NextChallanNumber(ctx context.Context) (string, error) {
	max, err := nextNumberQ(ctx, s.pool)
	if err != nil {
		return "", err
	}
	return FormatChallanNumber(max + 1), nil
}

func validateChallanInput(input *ChallanInput) error {
	if len(input.Lines) == 0 {
		return &ValidationError{Msg: "challan must have at least one line"}
	}
	for i, line := range input.Lines {
		if strings.TrimSpace(line.Description) == "" {
			return &ValidationError{Msg: fmt.Sprintf("line %d: description is required", i+1)}
		}
		if line.Quantity <= 0 {
			return &ValidationError{Msg: fmt.Sprintf("line %d: quantity must be positive", i+1)}
		}
		if line.Rate.IsNegative() {
			return &ValidationError{Msg: fmt.Sprintf("line %d: rate cannot be negative", i+1)}
		}
	}
	if input.CGSTPercentage.IsNegative() || input.SGSTPercentage.IsNegative() {
		return &ValidationError{Msg: "tax percentages cannot be negative"}
	}
	if input.TransportCharges.IsNegative() || input.LabourCharges.IsNegative() {
		return &ValidationError{Msg: "charges cannot be negative"}
	}
	if input.Date == "" {
		input.Date = time.Now().Format("2006-01-02")
	}
	return nil
}

func (s *challanService) CreateChallan(ctx context.Context, input ChallanInput, inv InventoryService) (*Challan, error) {
	if err := validateChallanInput(&input); err != nil {
		return nil, err
	}

	id, err := s.createOnce(ctx, input, inv)
	if isChallanNumberConflict(err) {
		// A concurrent creation took the number between our MAX read and the
		// insert. The first transaction rolled back cleanly, so one retry
		// re-reads MAX and lands on a fresh number.
		id, err = s.createOnce(ctx, input, inv)
	}
	if err != nil {
		return nil, err
	}
	return s.GetChallan(ctx, id)
}

func isChallanNumberConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == "23505" && pgErr.ConstraintName == "challans_challan_number_key"
}

func (s *challanService) createOnce(ctx context.Context, input ChallanInput, inv InventoryService) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Snapshot the customer name at creation. The challan keeps this name even
	// if the customer record is later renamed or deleted.
	customerName := strings.TrimSpace(input.CustomerName)
	if input.CustomerID != nil {
		err = tx.QueryRow(ctx, "SELECT name FROM customers WHERE id = $1", *input.CustomerID).Scan(&customerName)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return 0, &NotFoundError{Entity: "customer", Ref: strconv.Itoa(*input.CustomerID)}
			}
			return 0, fmt.Errorf("failed to resolve customer: %w", err)
		}
	}
	if customerName == "" {
		return 0, &ValidationError{Msg: "customer or customer name is required"}
	}

	siteAddress := strings.TrimSpace(input.SiteAddress)
	if input.SiteID != nil {
		var address string
		err = tx.QueryRow(ctx, "SELECT address FROM sites WHERE id = $1", *input.SiteID).Scan(&address)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return 0, &NotFoundError{Entity: "site", Ref: strconv.Itoa(*input.SiteID)}
			}
			return 0, fmt.Errorf("failed to resolve site: %w", err)
		}
		if siteAddress == "" {
			siteAddress = address
		}
	}

	max, err := nextNumberQ(ctx, tx)
	if err != nil {
		return 0, err
	}
	number := FormatChallanNumber(max + 1)

	totals := ComputeChallanTotals(input.Lines,
		input.CGSTPercentage, input.SGSTPercentage, input.TransportCharges, input.LabourCharges)

	var challanID int
	err = tx.QueryRow(ctx, `
		INSERT INTO challans (challan_number, customer_id, customer_name, site_id, site_address,
		                      phone, additional_phone, date, subtotal,
		                      cgst_percentage, sgst_percentage, cgst_amount, sgst_amount,
		                      transport_charges, labour_charges, total_amount, notes)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), $8, $9,
		        $10, $11, $12, $13, $14, $15, $16, NULLIF($17, ''))
		RETURNING id
	`, number, input.CustomerID, customerName, input.SiteID, siteAddress,
		input.Phone, input.AdditionalPhone, input.Date, totals.Subtotal,
		input.CGSTPercentage, input.SGSTPercentage, totals.CGSTAmount, totals.SGSTAmount,
		input.TransportCharges, input.LabourCharges, totals.TotalAmount, input.Notes).Scan(&challanID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert challan: %w", err)
	}

	for i, line := range input.Lines {
		_, err = tx.Exec(ctx, `
			INSERT INTO challan_items (challan_id, description, quantity, rate, amount, inventory_id)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, challanID, line.Description, line.Quantity, line.Rate, line.LineAmount(), line.InventoryID)
		if err != nil {
			return 0, fmt.Errorf("failed to insert challan line %d: %w", i+1, err)
		}

		if line.InventoryID != nil {
			if err := inv.DecrementForSaleTx(ctx, tx, *line.InventoryID, line.Quantity); err != nil {
				// Rolls back the whole challan, including lines that already
				// deducted successfully.
				return 0, err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, &PersistenceError{Op: "commit challan creation", Err: err}
	}
	return challanID, nil
}

const challanColumns = `
	id, challan_number, customer_id, customer_name, site_id, site_address,
	phone, additional_phone, date::text, subtotal,
	cgst_percentage, sgst_percentage, cgst_amount, sgst_amount,
	transport_charges, labour_charges, total_amount, notes, created_at`

func scanChallan(row pgx.Row) (*Challan, error) {
	var c Challan
	err := row.Scan(&c.ID, &c.ChallanNumber, &c.CustomerID, &c.CustomerName,
		&c.SiteID, &c.SiteAddress, &c.Phone, &c.AdditionalPhone, &c.Date, &c.Subtotal,
		&c.CGSTPercentage, &c.SGSTPercentage, &c.CGSTAmount, &c.SGSTAmount,
		&c.TransportCharges, &c.LabourCharges, &c.TotalAmount, &c.Notes, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *challanService) GetChallan(ctx context.Context, id int) (*Challan, error) {
	c, err := scanChallan(s.pool.QueryRow(ctx,
		"SELECT "+challanColumns+" FROM challans WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Entity: "challan", Ref: strconv.Itoa(id)}
		}
		return nil, fmt.Errorf("failed to fetch challan %d: %w", id, err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, challan_id, description, quantity, rate, amount, inventory_id
		FROM challan_items
		WHERE challan_id = $1
		ORDER BY id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query challan items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item ChallanItem
		if err := rows.Scan(&item.ID, &item.ChallanID, &item.Description,
			&item.Quantity, &item.Rate, &item.Amount, &item.InventoryID); err != nil {
			return nil, fmt.Errorf("failed to scan challan item: %w", err)
		}
		c.Items = append(c.Items, item)
	}
	return c, nil
}

func (s *challanService) ListChallans(ctx context.Context, page, limit int, query string) ([]Challan, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	where := ""
	args := []any{}
	if q := strings.TrimSpace(query); q != "" {
		where = "WHERE challan_number ILIKE $1 OR customer_name ILIKE $1"
		args = append(args, "%"+q+"%")
	}

	var total int
	if err := s.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM challans "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count challans: %w", err)
	}

	args = append(args, limit, (page-1)*limit)
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM challans %s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, challanColumns, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query challans: %w", err)
	}
	defer rows.Close()

	var challans []Challan
	for rows.Next() {
		var c Challan
		if err := rows.Scan(&c.ID, &c.ChallanNumber, &c.CustomerID, &c.CustomerName,
			&c.SiteID, &c.SiteAddress, &c.Phone, &c.AdditionalPhone, &c.Date, &c.Subtotal,
			&c.CGSTPercentage, &c.SGSTPercentage, &c.CGSTAmount, &c.SGSTAmount,
			&c.TransportCharges, &c.LabourCharges, &c.TotalAmount, &c.Notes, &c.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan challan: %w", err)
		}
		challans = append(challans, c)
	}
	return challans, total, nil
}

func (s *challanService) DeleteChallan(ctx context.Context, id int) error {
	// Items go with the header (FK cascade). Deducted stock stays deducted.
	tag, err := s.pool.Exec(ctx, "DELETE FROM challans WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete challan %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{Entity: "challan", Ref: strconv.Itoa(id)}
	}
	return nil
}
