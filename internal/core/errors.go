package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Domain error types. Services return these for conditions callers are
// expected to branch on with errors.As; everything else is wrapped with
// fmt.Errorf("...: %w", err).

// ValidationError reports malformed or out-of-range input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NotFoundError reports a missing entity.
type NotFoundError struct {
	Entity string
	Ref    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.Ref)
}

// InsufficientStockError reports a stock decrement that would take an
// inventory item below zero. Description names the item in catalog terms
// so the message is meaningful without another lookup.
type InsufficientStockError struct {
	ItemID      int
	Description string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: available %d, requested %d",
		e.Description, e.Available, e.Requested)
}

// OverpaymentError reports a payment that exceeds the customer's pending balance.
type OverpaymentError struct {
	Amount  decimal.Decimal
	Pending decimal.Decimal
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payment of %s exceeds pending balance of %s",
		e.Amount.StringFixed(2), e.Pending.StringFixed(2))
}

// AuthorizationError reports an operation the caller's role does not permit.
type AuthorizationError struct {
	Op string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("not authorized to %s", e.Op)
}

// PersistenceError wraps an unexpected database failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
