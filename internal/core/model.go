package core

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"plystore/internal/catalog"
)

type Customer struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Company struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Site struct {
	ID         int       `json:"id"`
	CustomerID int       `json:"customer_id"`
	Address    string    `json:"address"`
	FlatNumber *string   `json:"flat_number,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type LaminateEntry struct {
	ID          int       `json:"id"`
	SiteID      int       `json:"site_id"`
	Room        string    `json:"room"`
	ModelName   string    `json:"model_name"`
	Description *string   `json:"description,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

// InventoryItem is one sellable attribute combination. Plywood stock belongs
// to a company (CompanyID set, Grade nil); Board/MDF/Flexi stock carries a
// grade label instead (Grade set, CompanyID nil).
type InventoryItem struct {
	ID          int                 `json:"id"`
	ProductType catalog.ProductType `json:"product_type"`
	CompanyID   *int                `json:"company_id,omitempty"`
	CompanyName *string             `json:"company_name,omitempty"`
	Grade       *string             `json:"grade,omitempty"`
	Measurement *string             `json:"measurement,omitempty"`
	Thickness   string              `json:"thickness"`
	Quantity    int                 `json:"quantity"`
	Notes       *string             `json:"notes,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// Description renders the item in catalog terms, e.g.
// "Greenply Plywood 8×4 18mm" or "Board Marine 8×4 19mm".
// Used in stock error messages and challan line descriptions.
func (i InventoryItem) Description() string {
	out := ""
	if i.CompanyName != nil {
		out = *i.CompanyName + " "
	}
	out += string(i.ProductType)
	if i.Grade != nil {
		out += " " + *i.Grade
	}
	if i.Measurement != nil {
		out += " " + *i.Measurement
	}
	return out + " " + i.Thickness
}

// StockInput identifies an attribute combination plus a quantity for upserts.
type StockInput struct {
	ProductType catalog.ProductType `json:"product_type"`
	CompanyID   *int                `json:"company_id,omitempty"`
	Grade       string              `json:"grade,omitempty"`
	Measurement string              `json:"measurement,omitempty"`
	Thickness   string              `json:"thickness"`
	Quantity    int                 `json:"quantity"`
	Notes       string              `json:"notes,omitempty"`
}

type Challan struct {
	ID               int             `json:"id"`
	ChallanNumber    string          `json:"challan_number"`
	CustomerID       *int            `json:"customer_id,omitempty"`
	CustomerName     string          `json:"customer_name"`
	SiteID           *int            `json:"site_id,omitempty"`
	SiteAddress      *string         `json:"site_address,omitempty"`
	Phone            *string         `json:"phone,omitempty"`
	AdditionalPhone  *string         `json:"additional_phone,omitempty"`
	Date             string          `json:"date"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	CGSTPercentage   decimal.Decimal `json:"cgst_percentage"`
	SGSTPercentage   decimal.Decimal `json:"sgst_percentage"`
	CGSTAmount       decimal.Decimal `json:"cgst_amount"`
	SGSTAmount       decimal.Decimal `json:"sgst_amount"`
	TransportCharges decimal.Decimal `json:"transport_charges"`
	LabourCharges    decimal.Decimal `json:"labour_charges"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	Notes            *string         `json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	Items            []ChallanItem   `json:"items,omitempty"`
}

type ChallanItem struct {
	ID          int             `json:"id"`
	ChallanID   int             `json:"challan_id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
	InventoryID *int            `json:"inventory_id,omitempty"`
}

// ChallanLineInput is one line of a challan being created. InventoryID, when
// set, binds the line to a stock record that is decremented at creation.
type ChallanLineInput struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	InventoryID *int            `json:"inventory_id,omitempty"`
}

// ChallanInput carries everything needed to create a challan. CustomerName is
// only consulted when CustomerID is nil (walk-in customer); otherwise the
// name is snapshotted from the customer record at creation time.
type ChallanInput struct {
	CustomerID       *int               `json:"customer_id,omitempty"`
	CustomerName     string             `json:"customer_name,omitempty"`
	SiteID           *int               `json:"site_id,omitempty"`
	SiteAddress      string             `json:"site_address,omitempty"`
	Phone            string             `json:"phone,omitempty"`
	AdditionalPhone  string             `json:"additional_phone,omitempty"`
	Date             string             `json:"date"`
	CGSTPercentage   decimal.Decimal    `json:"cgst_percentage"`
	SGSTPercentage   decimal.Decimal    `json:"sgst_percentage"`
	TransportCharges decimal.Decimal    `json:"transport_charges"`
	LabourCharges    decimal.Decimal    `json:"labour_charges"`
	Notes            string             `json:"notes,omitempty"`
	Lines            []ChallanLineInput `json:"lines"`
}

// ChallanTotals is the money block computed from the lines and charges.
type ChallanTotals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	CGSTAmount  decimal.Decimal `json:"cgst_amount"`
	SGSTAmount  decimal.Decimal `json:"sgst_amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

var hundred = decimal.NewFromInt(100)

// ComputeChallanTotals derives the challan money block. Line amounts are
// always quantity × rate; client-supplied amounts are never trusted.
// Tax amounts are rounded to 2 decimal places before entering the total.
func ComputeChallanTotals(lines []ChallanLineInput, cgstPct, sgstPct, transport, labour decimal.Decimal) ChallanTotals {
	var subtotal decimal.Decimal
	for _, l := range lines {
		subtotal = subtotal.Add(l.Rate.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	cgst := subtotal.Mul(cgstPct).Div(hundred).Round(2)
	sgst := subtotal.Mul(sgstPct).Div(hundred).Round(2)
	return ChallanTotals{
		Subtotal:    subtotal,
		CGSTAmount:  cgst,
		SGSTAmount:  sgst,
		TotalAmount: subtotal.Add(cgst).Add(sgst).Add(transport).Add(labour),
	}
}

// LineAmount is the server-side amount of one challan line.
func (l ChallanLineInput) LineAmount() decimal.Decimal {
	return l.Rate.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// FormatChallanNumber renders a sequence value as a challan number:
// zero-padded to three digits, widening naturally past 999 (1000, 1001, ...).
func FormatChallanNumber(n int) string {
	return fmt.Sprintf("%03d", n)
}

type Payment struct {
	ID            int             `json:"id"`
	CustomerID    int             `json:"customer_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   string          `json:"payment_date"`
	PaymentMethod string          `json:"payment_method"`
	Notes         *string         `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// PaymentMethods are the accepted values for Payment.PaymentMethod.
var PaymentMethods = []string{"Cash", "Cheque", "Bank Transfer", "UPI", "Card", "Other"}

func ValidPaymentMethod(m string) bool {
	for _, pm := range PaymentMethods {
		if pm == m {
			return true
		}
	}
	return false
}

// CustomerBalance is the derived ledger position of one customer.
// It is recomputed from challans and payments on every call; no balance
// is ever stored.
type CustomerBalance struct {
	TotalBilled  decimal.Decimal `json:"total_billed"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	TotalPending decimal.Decimal `json:"total_pending"`
}

type WindowKind string

const (
	WindowAllTime   WindowKind = "all"
	WindowLast7Days WindowKind = "last7days"
	WindowThisMonth WindowKind = "thisMonth"
	WindowLastMonth WindowKind = "lastMonth"
	WindowYear      WindowKind = "year"
	WindowCustom    WindowKind = "custom"
)

// DateWindow selects a date range for ledger queries. Year is consulted for
// WindowYear; Start/End (YYYY-MM-DD, inclusive) for WindowCustom.
type DateWindow struct {
	Kind  WindowKind `json:"kind"`
	Year  int        `json:"year,omitempty"`
	Start string     `json:"start,omitempty"`
	End   string     `json:"end,omitempty"`
}

// Bounds resolves the window to inclusive [start, end] date strings relative
// to now. ok is false for the all-time window (no bounds).
func (w DateWindow) Bounds(now time.Time) (start, end string, ok bool) {
	const layout = "2006-01-02"
	switch w.Kind {
	case WindowLast7Days:
		return now.AddDate(0, 0, -7).Format(layout), now.Format(layout), true
	case WindowThisMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return first.Format(layout), now.Format(layout), true
	case WindowLastMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
		last := first.AddDate(0, 1, -1)
		return first.Format(layout), last.Format(layout), true
	case WindowYear:
		return fmt.Sprintf("%04d-01-01", w.Year), fmt.Sprintf("%04d-12-31", w.Year), true
	case WindowCustom:
		return w.Start, w.End, true
	default:
		return "", "", false
	}
}
