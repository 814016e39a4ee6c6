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

// CustomerService manages customer master data.
type CustomerService interface {
	CreateCustomer(ctx context.Context, name, phone, email string) (*Customer, error)
	UpdateCustomer(ctx context.Context, id int, name, phone, email string) (*Customer, error)
	DeleteCustomer(ctx context.Context, id int) error
	GetCustomer(ctx context.Context, id int) (*Customer, error)
	GetCustomers(ctx context.Context) ([]Customer, error)
	// SearchCustomers matches name, phone, or email, case-insensitively,
	// returning at most 10 rows.
	SearchCustomers(ctx context.Context, query string) ([]Customer, error)
}

type customerService struct {
	pool *pgxpool.Pool
}

func NewCustomerService(pool *pgxpool.Pool) CustomerService {
	return &customerService{pool: pool}
}

const customerColumns = "id, name, phone, email, created_at"

func scanCustomer(row pgx.Row) (*Customer, error) {
	var c Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *customerService) CreateCustomer(ctx context.Context, name, phone, email string) (*Customer, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" || phone == "" {
		return nil, &ValidationError{Msg: "customer name and phone are required"}
	}

	c, err := scanCustomer(s.pool.QueryRow(ctx, `
		INSERT INTO customers (name, phone, email)
		VALUES ($1, $2, NULLIF($3, ''))
		RETURNING `+customerColumns,
		name, phone, strings.TrimSpace(email)))
	if err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return c, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, id int, name, phone, email string) (*Customer, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" || phone == "" {
		return nil, &ValidationError{Msg: "customer name and phone are required"}
	}

	c, err := scanCustomer(s.pool.QueryRow(ctx, `
		UPDATE customers
		SET name = $2, phone = $3, email = NULLIF($4, '')
		WHERE id = $1
		RETURNING `+customerColumns,
		id, name, phone, strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Entity: "customer", Ref: strconv.Itoa(id)}
		}
		return nil, fmt.Errorf("failed to update customer %d: %w", id, err)
	}
	return c, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM customers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete customer %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{Entity: "customer", Ref: strconv.Itoa(id)}
	}
	return nil
}

func (s *customerService) GetCustomer(ctx context.Context, id int) (*Customer, error) {
	c, err := scanCustomer(s.pool.QueryRow(ctx,
		"SELECT "+customerColumns+" FROM customers WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Entity: "customer", Ref: strconv.Itoa(id)}
		}
		return nil, fmt.Errorf("failed to fetch customer %d: %w", id, err)
	}
	return c, nil
}

func (s *customerService) GetCustomers(ctx context.Context) ([]Customer, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+customerColumns+" FROM customers ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, nil
}

func (s *customerService) SearchCustomers(ctx context.Context, query string) ([]Customer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	pattern := "%" + query + "%"
	rows, err := s.pool.Query(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE name ILIKE $1 OR phone ILIKE $1 OR email ILIKE $1
		ORDER BY name
		LIMIT 10
	`, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search customers: %w", err)
	}
	defer rows.Close()

	var customers []Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, nil
}
