package core

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"plystore/internal/catalog"
)

// InventoryService manages stock records, one per sellable attribute
// combination. Quantity can never go below zero: every decrement is a single
// conditional UPDATE whose rows-affected count decides success.
type InventoryService interface {
	// Standalone operations (manage their own statements/transactions).
	GetItem(ctx context.Context, id int) (*InventoryItem, error)
	GetInventory(ctx context.Context) ([]InventoryItem, error)
	GetInventoryByCompany(ctx context.Context, companyID int) ([]InventoryItem, error)
	GetInventoryByType(ctx context.Context, productType catalog.ProductType) ([]InventoryItem, error)
	// UpsertStock matches on the attribute combination: merges quantities into
	// an existing record or inserts a new one, in a single statement.
	UpsertStock(ctx context.Context, input StockInput) (*InventoryItem, error)
	UpdateItem(ctx context.Context, id, quantity int, notes string) (*InventoryItem, error)
	DeleteItem(ctx context.Context, id int) error
	// AdjustQuantity applies a signed delta. A delta that would take the
	// quantity below zero returns InsufficientStockError and changes nothing.
	AdjustQuantity(ctx context.Context, id, delta int) (*InventoryItem, error)

	// DecrementForSaleTx deducts stock within the caller's transaction.
	// Used by challan creation so line deductions and the challan header
	// commit or roll back together.
	DecrementForSaleTx(ctx context.Context, tx pgx.Tx, id, qty int) error

	// Generation seeds zero-quantity records for every catalog combination.
	// Idempotent: existing combinations are skipped, and the returned count
	// is the number of rows actually created.
	GenerateForCompany(ctx context.Context, companyID int) (int, error)
	GenerateForCompanyTx(ctx context.Context, tx pgx.Tx, companyID int) (int, error)
	GenerateNonPlywood(ctx context.Context) (int, error)
	InitializeAll(ctx context.Context) (int, error)
}

type inventoryService struct {
	pool *pgxpool.Pool
}

func NewInventoryService(pool *pgxpool.Pool) InventoryService {
	return &inventoryService{pool: pool}
}

// pgxQuerier is satisfied by both *pgxpool.Pool and pgx.Tx, enabling shared query helpers.
type pgxQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// inventoryConflictTarget matches the inventory_combination_idx expression index.
const inventoryConflictTarget = "(product_type, COALESCE(company_id, -1), COALESCE(grade, ''), COALESCE(measurement, ''), thickness)"

const inventorySelect = `
	SELECT i.id, i.product_type, i.company_id, c.name, i.grade, i.measurement,
	       i.thickness, i.quantity, i.notes, i.created_at, i.updated_at
	FROM inventory i
	LEFT JOIN companies c ON c.id = i.company_id`

func scanInventoryItem(row pgx.Row) (*InventoryItem, error) {
	var item InventoryItem
	err := row.Scan(&item.ID, &item.ProductType, &item.CompanyID, &item.CompanyName,
		&item.Grade, &item.Measurement, &item.Thickness, &item.Quantity,
		&item.Notes, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *inventoryService) getItemQ(ctx context.Context, q pgxQuerier, id int) (*InventoryItem, error) {
	item, err := scanInventoryItem(q.QueryRow(ctx, inventorySelect+" WHERE i.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Entity: "inventory item", Ref: strconv.Itoa(id)}
		}
		return nil, fmt.Errorf("failed to fetch inventory item %d: %w", id, err)
	}
	return item, nil
}

func (s *inventoryService) GetItem(ctx context.Context, id int) (*InventoryItem, error) {
	return s.getItemQ(ctx, s.pool, id)
}

func (s *inventoryService) listItems(ctx context.Context, where string, args ...any) ([]InventoryItem, error) {
	rows, err := s.pool.Query(ctx,
		inventorySelect+" "+where+" ORDER BY i.product_type, c.name NULLS FIRST, i.grade, i.measurement, i.thickness",
		args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	var items []InventoryItem
	for rows.Next() {
		var item InventoryItem
		if err := rows.Scan(&item.ID, &item.ProductType, &item.CompanyID, &item.CompanyName,
			&item.Grade, &item.Measurement, &item.Thickness, &item.Quantity,
			&item.Notes, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *inventoryService) GetInventory(ctx context.Context) ([]InventoryItem, error) {
	return s.listItems(ctx, "")
}

func (s *inventoryService) GetInventoryByCompany(ctx context.Context, companyID int) ([]InventoryItem, error) {
	return s.listItems(ctx, "WHERE i.company_id = $1", companyID)
}

func (s *inventoryService) GetInventoryByType(ctx context.Context, productType catalog.ProductType) ([]InventoryItem, error) {
	return s.listItems(ctx, "WHERE i.product_type = $1", string(productType))
}

// validateStockInput checks the attribute combination against the catalog.
func validateStockInput(input StockInput) error {
	family, ok := catalog.FamilyFor(input.ProductType)
	if !ok {
		return &ValidationError{Msg: fmt.Sprintf("unknown product type %q", input.ProductType)}
	}
	if family.CompanyScoped() {
		if input.CompanyID == nil {
			return &ValidationError{Msg: fmt.Sprintf("%s stock requires a company", input.ProductType)}
		}
		if input.Grade != "" {
			return &ValidationError{Msg: fmt.Sprintf("%s stock does not carry a grade", input.ProductType)}
		}
	} else {
		if input.CompanyID != nil {
			return &ValidationError{Msg: fmt.Sprintf("%s stock is not company-scoped", input.ProductType)}
		}
		if !family.ValidGrade(input.Grade) {
			return &ValidationError{Msg: fmt.Sprintf("invalid %s %s %q", input.ProductType, family.GradeLabel, input.Grade)}
		}
	}
	if !family.ValidMeasurement(input.Measurement) {
		return &ValidationError{Msg: fmt.Sprintf("invalid measurement %q for %s", input.Measurement, input.ProductType)}
	}
	if !family.ValidThickness(input.Thickness) {
		return &ValidationError{Msg: fmt.Sprintf("invalid thickness %q for %s", input.Thickness, input.ProductType)}
	}
	if input.Quantity < 0 {
		return &ValidationError{Msg: "stock quantity cannot be negative"}
	}
	return nil
}

func (s *inventoryService) UpsertStock(ctx context.Context, input StockInput) (*InventoryItem, error) {
	if err := validateStockInput(input); err != nil {
		return nil, err
	}
	if input.CompanyID != nil {
		var exists bool
		err := s.pool.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM companies WHERE id = $1)", *input.CompanyID).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("failed to verify company: %w", err)
		}
		if !exists {
			return nil, &NotFoundError{Entity: "company", Ref: strconv.Itoa(*input.CompanyID)}
		}
	}

	// Single-statement upsert against the combination index: no window where a
	// concurrent insert of the same combination can slip between check and write.
	var id int
	err := s.pool.QueryRow(ctx, `
		INSERT INTO inventory (product_type, company_id, grade, measurement, thickness, quantity, notes)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, NULLIF($7, ''))
		ON CONFLICT `+inventoryConflictTarget+` DO UPDATE
		SET quantity   = inventory.quantity + EXCLUDED.quantity,
		    notes      = COALESCE(EXCLUDED.notes, inventory.notes),
		    updated_at = NOW()
		RETURNING id
	`, string(input.ProductType), input.CompanyID, input.Grade, input.Measurement,
		input.Thickness, input.Quantity, input.Notes).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert stock: %w", err)
	}
	return s.GetItem(ctx, id)
}

func (s *inventoryService) UpdateItem(ctx context.Context, id, quantity int, notes string) (*InventoryItem, error) {
	if quantity < 0 {
		return nil, &ValidationError{Msg: "stock quantity cannot be negative"}
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE inventory SET quantity = $2, notes = NULLIF($3, ''), updated_at = NOW()
		WHERE id = $1
	`, id, quantity, notes)
	if err != nil {
		return nil, fmt.Errorf("failed to update inventory item %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, &NotFoundError{Entity: "inventory item", Ref: strconv.Itoa(id)}
	}
	return s.GetItem(ctx, id)
}

func (s *inventoryService) DeleteItem(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM inventory WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete inventory item %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{Entity: "inventory item", Ref: strconv.Itoa(id)}
	}
	return nil
}

func (s *inventoryService) AdjustQuantity(ctx context.Context, id, delta int) (*InventoryItem, error) {
	if err := s.adjustQ(ctx, s.pool, id, delta); err != nil {
		return nil, err
	}
	return s.GetItem(ctx, id)
}

func (s *inventoryService) DecrementForSaleTx(ctx context.Context, tx pgx.Tx, id, qty int) error {
	if qty <= 0 {
		return &ValidationError{Msg: "sale quantity must be positive"}
	}
	return s.adjustQ(ctx, tx, id, -qty)
}

// adjustQ applies a signed delta with a conditional UPDATE. The quantity
// floor is enforced in the WHERE clause, so concurrent adjustments can never
// drive the row negative regardless of interleaving.
func (s *inventoryService) adjustQ(ctx context.Context, q pgxQuerier, id, delta int) error {
	tag, err := q.Exec(ctx, `
		UPDATE inventory SET quantity = quantity + $2, updated_at = NOW()
		WHERE id = $1 AND quantity + $2 >= 0
	`, id, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust inventory item %d: %w", id, err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// Zero rows: either the item is missing or the floor blocked the delta.
	item, err := s.getItemQ(ctx, q, id)
	if err != nil {
		return err
	}
	return &InsufficientStockError{
		ItemID:      item.ID,
		Description: item.Description(),
		Available:   item.Quantity,
		Requested:   -delta,
	}
}

// ── Generation ───────────────────────────────────────────────────────────────

func (s *inventoryService) GenerateForCompany(ctx context.Context, companyID int) (int, error) {
	return s.generateForCompanyQ(ctx, s.pool, companyID)
}

func (s *inventoryService) GenerateForCompanyTx(ctx context.Context, tx pgx.Tx, companyID int) (int, error) {
	return s.generateForCompanyQ(ctx, tx, companyID)
}

func (s *inventoryService) generateForCompanyQ(ctx context.Context, q pgxQuerier, companyID int) (int, error) {
	var exists bool
	if err := q.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM companies WHERE id = $1)", companyID).Scan(&exists); err != nil {
		return 0, fmt.Errorf("failed to verify company: %w", err)
	}
	if !exists {
		return 0, &NotFoundError{Entity: "company", Ref: strconv.Itoa(companyID)}
	}

	family, _ := catalog.FamilyFor(catalog.Plywood)
	tag, err := q.Exec(ctx, `
		INSERT INTO inventory (product_type, company_id, measurement, thickness, quantity)
		SELECT $1, $2, m.measurement, t.thickness, 0
		FROM unnest($3::text[]) AS m(measurement)
		CROSS JOIN unnest($4::text[]) AS t(thickness)
		ON CONFLICT `+inventoryConflictTarget+` DO NOTHING
	`, string(catalog.Plywood), companyID, family.Measurements, family.Thicknesses)
	if err != nil {
		return 0, fmt.Errorf("failed to generate plywood inventory for company %d: %w", companyID, err)
	}
	return int(tag.RowsAffected()), nil
}

func (s *inventoryService) GenerateNonPlywood(ctx context.Context) (int, error) {
	total := 0
	for _, pt := range []catalog.ProductType{catalog.Board, catalog.MDF, catalog.Flexi} {
		family, _ := catalog.FamilyFor(pt)
		n, err := s.generateFamily(ctx, family)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func (s *inventoryService) generateFamily(ctx context.Context, family catalog.Family) (int, error) {
	var tag pgconn.CommandTag
	var err error
	if family.HasMeasurement() {
		tag, err = s.pool.Exec(ctx, `
			INSERT INTO inventory (product_type, grade, measurement, thickness, quantity)
			SELECT $1, g.grade, m.measurement, t.thickness, 0
			FROM unnest($2::text[]) AS g(grade)
			CROSS JOIN unnest($3::text[]) AS m(measurement)
			CROSS JOIN unnest($4::text[]) AS t(thickness)
			ON CONFLICT `+inventoryConflictTarget+` DO NOTHING
		`, string(family.Type), family.Grades, family.Measurements, family.Thicknesses)
	} else {
		tag, err = s.pool.Exec(ctx, `
			INSERT INTO inventory (product_type, grade, thickness, quantity)
			SELECT $1, g.grade, t.thickness, 0
			FROM unnest($2::text[]) AS g(grade)
			CROSS JOIN unnest($3::text[]) AS t(thickness)
			ON CONFLICT `+inventoryConflictTarget+` DO NOTHING
		`, string(family.Type), family.Grades, family.Thicknesses)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to generate %s inventory: %w", family.Type, err)
	}
	return int(tag.RowsAffected()), nil
}

func (s *inventoryService) InitializeAll(ctx context.Context) (int, error) {
	rows, err := s.pool.Query(ctx, "SELECT id FROM companies ORDER BY id")
	if err != nil {
		return 0, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	var companyIDs []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("failed to scan company id: %w", err)
		}
		companyIDs = append(companyIDs, id)
	}

	total := 0
	for _, id := range companyIDs {
		n, err := s.GenerateForCompany(ctx, id)
		if err != nil {
			return total, err
		}
		total += n
	}
	n, err := s.GenerateNonPlywood(ctx)
	if err != nil {
		return total, err
	}
	return total + n, nil
}
