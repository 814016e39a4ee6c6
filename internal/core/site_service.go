package core

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SiteService manages customer delivery sites and the laminate selections
// recorded against them.
type SiteService interface {
	CreateSite(ctx context.Context, customerID int, address, flatNumber string) (*Site, error)
	UpdateSite(ctx context.Context, id int, address, flatNumber string) (*Site, error)
	DeleteSite(ctx context.Context, id int) error
	GetSite(ctx context.Context, id int) (*Site, error)
	GetSitesByCustomer(ctx context.Context, customerID int) ([]Site, error)

	CreateLaminateEntry(ctx context.Context, siteID int, room, modelName, description, notes, date string) (*LaminateEntry, error)
	UpdateLaminateEntry(ctx context.Context, id int, room, modelName, description, notes, date string) (*LaminateEntry, error)
	DeleteLaminateEntry(ctx context.Context, id int) error
	GetLaminateEntries(ctx context.Context, siteID int) ([]LaminateEntry, error)
}

type siteService struct {
	pool *pgxpool.Pool
}

func NewSiteService(pool *pgxpool.Pool) SiteService {
	return &siteService{pool: pool}
}

const siteColumns = "id, customer_id, address, flat_number, created_at"

func scanSite(row pgx.Row) (*Site, error) {
	var s Site
	if err := row.Scan(&s.ID, &s.CustomerID, &s.Address, &s.FlatNumber, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *siteService) CreateSite(ctx context.Context, customerID int, address, flatNumber string) (*Site, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, &ValidationError{Msg: "site address is required"}
	}

	site, err := scanSite(s.pool.QueryRow(ctx, `
		INSERT INTO sites (customer_id, address, flat_number)
		VALUES ($1, $2, NULLIF($3, ''))
		RETURNING `+siteColumns,
		customerID, address, strings.TrimSpace(flatNumber)))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, &NotFoundError{Entity: "customer", Ref: strconv.Itoa(customerID)}
		}
		return nil, fmt.Errorf("failed to create site: %w", err)
	}
	return site, nil
}

func (s *siteService) UpdateSite(ctx context.Context, id int, address, flatNumber string) (*Site, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, &ValidationError{Msg: "site address is required"}
	}

	site, err := scanSite(s.pool.QueryRow(ctx, `
		UPDATE sites SET address = $2, flat_number = NULLIF($3, '')
		WHERE id = $1
		RETURNING `+siteColumns,
		id, address, strings.TrimSpace(flatNumber)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Entity: "site", Ref: strconv.Itoa(id)}
		}
		return nil, fmt.Errorf("failed to update site %d: %w", id, err)
	}
	return site, nil
}

func (s *siteService) DeleteSite(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM sites WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete site %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{Entity: "site", Ref: strconv.Itoa(id)}
	}
	return nil
}

func (s *siteService) GetSite(ctx context.Context, id int) (*Site, error) {
	site, err := scanSite(s.pool.QueryRow(ctx,
		"SELECT "+siteColumns+" FROM sites WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Entity: "site", Ref: strconv.Itoa(id)}
		}
		return nil, fmt.Errorf("failed to fetch site %d: %w", id, err)
	}
	return site, nil
}

func (s *siteService) GetSitesByCustomer(ctx context.Context, customerID int) ([]Site, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+siteColumns+" FROM sites WHERE customer_id = $1 ORDER BY id", customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sites: %w", err)
	}
	defer rows.Close()

	var sites []Site
	for rows.Next() {
		var site Site
		if err := rows.Scan(&site.ID, &site.CustomerID, &site.Address, &site.FlatNumber, &site.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan site: %w", err)
		}
		sites = append(sites, site)
	}
	return sites, nil
}

const laminateColumns = "id, site_id, room, model_name, description, notes, date::text, created_at"

func scanLaminateEntry(row pgx.Row) (*LaminateEntry, error) {
	var e LaminateEntry
	err := row.Scan(&e.ID, &e.SiteID, &e.Room, &e.ModelName, &e.Description, &e.Notes, &e.Date, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *siteService) CreateLaminateEntry(ctx context.Context, siteID int, room, modelName, description, notes, date string) (*LaminateEntry, error) {
	room = strings.TrimSpace(room)
	modelName = strings.TrimSpace(modelName)
	if room == "" || modelName == "" {
		return nil, &ValidationError{Msg: "laminate entry room and model name are required"}
	}
	if date == "" {
		return nil, &ValidationError{Msg: "laminate entry date is required"}
	}

	entry, err := scanLaminateEntry(s.pool.QueryRow(ctx, `
		INSERT INTO laminate_entries (site_id, room, model_name, description, notes, date)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6)
		RETURNING `+laminateColumns,
		siteID, room, modelName, description, notes, date))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, &NotFoundError{Entity: "site", Ref: strconv.Itoa(siteID)}
		}
		return nil, fmt.Errorf("failed to create laminate entry: %w", err)
	}
	return entry, nil
}

func (s *siteService) UpdateLaminateEntry(ctx context.Context, id int, room, modelName, description, notes, date string) (*LaminateEntry, error) {
	room = strings.TrimSpace(room)
	modelName = strings.TrimSpace(modelName)
	if room == "" || modelName == "" {
		return nil, &ValidationError{Msg: "laminate entry room and model name are required"}
	}

	entry, err := scanLaminateEntry(s.pool.QueryRow(ctx, `
		UPDATE laminate_entries
		SET room = $2, model_name = $3, description = NULLIF($4, ''), notes = NULLIF($5, ''), date = $6
		WHERE id = $1
		RETURNING `+laminateColumns,
		id, room, modelName, description, notes, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Entity: "laminate entry", Ref: strconv.Itoa(id)}
		}
		return nil, fmt.Errorf("failed to update laminate entry %d: %w", id, err)
	}
	return entry, nil
}

func (s *siteService) DeleteLaminateEntry(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM laminate_entries WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete laminate entry %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{Entity: "laminate entry", Ref: strconv.Itoa(id)}
	}
	return nil
}

func (s *siteService) GetLaminateEntries(ctx context.Context, siteID int) ([]LaminateEntry, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+laminateColumns+" FROM laminate_entries WHERE site_id = $1 ORDER BY date DESC, id DESC", siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to query laminate entries: %w", err)
	}
	defer rows.Close()

	var entries []LaminateEntry
	for rows.Next() {
		var e LaminateEntry
		if err := rows.Scan(&e.ID, &e.SiteID, &e.Room, &e.ModelName, &e.Description, &e.Notes, &e.Date, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan laminate entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
