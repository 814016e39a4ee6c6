package core

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PaymentService is the customer ledger: payments received against a
// customer's billed challan total. Balances are derived sums, recomputed on
// every call; nothing is stored.
type PaymentService interface {
	// CustomerBalance reports billed, paid, and pending totals within the
	// window. Pending can go negative when historical data overpays; it is
	// reported as-is.
	CustomerBalance(ctx context.Context, customerID int, window DateWindow) (*CustomerBalance, error)
	// RecordPayment inserts a payment after checking it does not exceed the
	// customer's all-time pending balance. The pending check runs under a
	// customer row lock, so two concurrent payments cannot both pass it.
	RecordPayment(ctx context.Context, customerID int, amount decimal.Decimal, paymentDate, method, notes string) (*Payment, error)
	ListPayments(ctx context.Context, customerID int, window DateWindow) ([]Payment, error)
	// DeletePayment removes a payment. Always safe: it only raises the
	// pending balance.
	DeletePayment(ctx context.Context, id int) error
	// PaymentYears lists the distinct years the customer has payments in,
	// newest first. Feeds the year filter of the ledger view.
	PaymentYears(ctx context.Context, customerID int) ([]int, error)
}

type paymentService struct {
	pool *pgxpool.Pool
}

func NewPaymentService(pool *pgxpool.Pool) PaymentService {
	return &paymentService{pool: pool}
}

func (s *paymentService) customerExistsQ(ctx context.Context, q pgxQuerier, customerID int, lock bool) error {
	query := "SELECT id FROM customers WHERE id = $1"
	if lock {
		query += " FOR UPDATE"
	}
	var id int
	if err := q.QueryRow(ctx, query, customerID).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &NotFoundError{Entity: "customer", Ref: strconv.Itoa(customerID)}
		}
		return fmt.Errorf("failed to resolve customer %d: %w", customerID, err)
	}
	return nil
}

// balanceQ computes the derived balance over a querier (pool or tx).
func (s *paymentService) balanceQ(ctx context.Context, q pgxQuerier, customerID int, window DateWindow) (*CustomerBalance, error) {
	start, end, bounded := window.Bounds(time.Now())

	billedQuery := "SELECT COALESCE(SUM(total_amount), 0) FROM challans WHERE customer_id = $1"
	paidQuery := "SELECT COALESCE(SUM(amount), 0) FROM payments WHERE customer_id = $1"
	billedArgs := []any{customerID}
	paidArgs := []any{customerID}
	if bounded {
		billedQuery += " AND date BETWEEN $2 AND $3"
		paidQuery += " AND payment_date BETWEEN $2 AND $3"
		billedArgs = append(billedArgs, start, end)
		paidArgs = append(paidArgs, start, end)
	}

	var b CustomerBalance
	if err := q.QueryRow(ctx, billedQuery, billedArgs...).Scan(&b.TotalBilled); err != nil {
		return nil, fmt.Errorf("failed to sum billed total: %w", err)
	}
	if err := q.QueryRow(ctx, paidQuery, paidArgs...).Scan(&b.TotalPaid); err != nil {
		return nil, fmt.Errorf("failed to sum paid total: %w", err)
	}
	b.TotalPending = b.TotalBilled.Sub(b.TotalPaid)
	return &b, nil
}

func (s *paymentService) CustomerBalance(ctx context.Context, customerID int, window DateWindow) (*CustomerBalance, error) {
	if err := s.customerExistsQ(ctx, s.pool, customerID, false); err != nil {
		return nil, err
	}
	return s.balanceQ(ctx, s.pool, customerID, window)
}

func (s *paymentService) RecordPayment(ctx context.Context, customerID int, amount decimal.Decimal, paymentDate, method, notes string) (*Payment, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, &ValidationError{Msg: "payment amount must be positive"}
	}
	if !ValidPaymentMethod(method) {
		return nil, &ValidationError{Msg: fmt.Sprintf("invalid payment method %q", method)}
	}
	if paymentDate == "" {
		paymentDate = time.Now().Format("2006-01-02")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Row lock serializes concurrent payments for the same customer; the
	// overpayment check below sees every committed payment.
	if err := s.customerExistsQ(ctx, tx, customerID, true); err != nil {
		return nil, err
	}

	// The guard always uses the all-time balance, regardless of any window
	// the caller is viewing.
	balance, err := s.balanceQ(ctx, tx, customerID, DateWindow{Kind: WindowAllTime})
	if err != nil {
		return nil, err
	}
	if amount.GreaterThan(balance.TotalPending) {
		return nil, &OverpaymentError{Amount: amount, Pending: balance.TotalPending}
	}

	var p Payment
	err = tx.QueryRow(ctx, `
		INSERT INTO payments (customer_id, amount, payment_date, payment_method, notes)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		RETURNING id, customer_id, amount, payment_date::text, payment_method, notes, created_at
	`, customerID, amount, paymentDate, method, notes).Scan(
		&p.ID, &p.CustomerID, &p.Amount, &p.PaymentDate, &p.PaymentMethod, &p.Notes, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert payment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, &PersistenceError{Op: "commit payment", Err: err}
	}
	return &p, nil
}

func (s *paymentService) ListPayments(ctx context.Context, customerID int, window DateWindow) ([]Payment, error) {
	if err := s.customerExistsQ(ctx, s.pool, customerID, false); err != nil {
		return nil, err
	}

	query := `
		SELECT id, customer_id, amount, payment_date::text, payment_method, notes, created_at
		FROM payments
		WHERE customer_id = $1`
	args := []any{customerID}
	if start, end, bounded := window.Bounds(time.Now()); bounded {
		query += " AND payment_date BETWEEN $2 AND $3"
		args = append(args, start, end)
	}
	query += " ORDER BY payment_date DESC, id DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	var payments []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.CustomerID, &p.Amount, &p.PaymentDate,
			&p.PaymentMethod, &p.Notes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, nil
}

func (s *paymentService) DeletePayment(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM payments WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete payment %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{Entity: "payment", Ref: strconv.Itoa(id)}
	}
	return nil
}

func (s *paymentService) PaymentYears(ctx context.Context, customerID int) ([]int, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT DISTINCT EXTRACT(YEAR FROM payment_date)::int AS year
		FROM payments
		WHERE customer_id = $1
		ORDER BY year DESC
	`, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment years: %w", err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("failed to scan payment year: %w", err)
		}
		years = append(years, y)
	}
	return years, nil
}
