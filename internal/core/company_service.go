package core

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CompanyService manages plywood manufacturer companies. Creating a company
// also seeds its full plywood inventory grid in the same transaction, so a
// company never exists without its stock records.
type CompanyService interface {
	// CreateCompany inserts the company and, via inv, generates its plywood
	// inventory combinations atomically.
	CreateCompany(ctx context.Context, name string, inv InventoryService) (*Company, error)
	UpdateCompany(ctx context.Context, id int, name string) (*Company, error)
	// DeleteCompany removes the company; its inventory rows go with it (FK cascade).
	DeleteCompany(ctx context.Context, id int) error
	GetCompany(ctx context.Context, id int) (*Company, error)
	GetCompanies(ctx context.Context) ([]Company, error)
}

type companyService struct {
	pool *pgxpool.Pool
}

func NewCompanyService(pool *pgxpool.Pool) CompanyService {
	return &companyService{pool: pool}
}

func (s *companyService) CreateCompany(ctx context.Context, name string, inv InventoryService) (*Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Msg: "company name is required"}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var c Company
	err = tx.QueryRow(ctx, `
		INSERT INTO companies (name) VALUES ($1)
		RETURNING id, name, created_at
	`, name).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	if inv != nil {
		if _, err := inv.GenerateForCompanyTx(ctx, tx, c.ID); err != nil {
			return nil, fmt.Errorf("failed to seed inventory for company %s: %w", name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, &PersistenceError{Op: "commit company creation", Err: err}
	}
	return &c, nil
}

func (s *companyService) UpdateCompany(ctx context.Context, id int, name string) (*Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Msg: "company name is required"}
	}

	var c Company
	err := s.pool.QueryRow(ctx, `
		UPDATE companies SET name = $2 WHERE id = $1
		RETURNING id, name, created_at
	`, id, name).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Entity: "company", Ref: strconv.Itoa(id)}
		}
		return nil, fmt.Errorf("failed to update company %d: %w", id, err)
	}
	return &c, nil
}

func (s *companyService) DeleteCompany(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM companies WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete company %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{Entity: "company", Ref: strconv.Itoa(id)}
	}
	return nil
}

func (s *companyService) GetCompany(ctx context.Context, id int) (*Company, error) {
	var c Company
	err := s.pool.QueryRow(ctx,
		"SELECT id, name, created_at FROM companies WHERE id = $1", id,
	).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Entity: "company", Ref: strconv.Itoa(id)}
		}
		return nil, fmt.Errorf("failed to fetch company %d: %w", id, err)
	}
	return &c, nil
}

func (s *companyService) GetCompanies(ctx context.Context) ([]Company, error) {
	rows, err := s.pool.Query(ctx, "SELECT id, name, created_at FROM companies ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	var companies []Company
	for rows.Next() {
		var c Company
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, c)
	}
	return companies, nil
}
