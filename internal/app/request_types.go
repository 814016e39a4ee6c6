package app

import (
	"github.com/shopspring/decimal"

	"plystore/internal/catalog"
)

// CustomerRequest is the input for creating or updating a customer.
type CustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// InventoryFilter narrows ListInventory. Zero value means everything.
type InventoryFilter struct {
	CompanyID   int                 `json:"company_id,omitempty"`
	ProductType catalog.ProductType `json:"product_type,omitempty"`
}

// ChallanLineRequest is one line of a CreateChallanRequest. Amounts are
// computed server-side from quantity and rate.
type ChallanLineRequest struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	InventoryID *int            `json:"inventory_id,omitempty"`
}

// CreateChallanRequest is the input for creating a delivery challan.
// CustomerName is consulted only when CustomerID is absent (walk-ins).
type CreateChallanRequest struct {
	CustomerID       *int                 `json:"customer_id,omitempty"`
	CustomerName     string               `json:"customer_name,omitempty"`
	SiteID           *int                 `json:"site_id,omitempty"`
	SiteAddress      string               `json:"site_address,omitempty"`
	Phone            string               `json:"phone,omitempty"`
	AdditionalPhone  string               `json:"additional_phone,omitempty"`
	Date             string               `json:"date"`
	CGSTPercentage   decimal.Decimal      `json:"cgst_percentage"`
	SGSTPercentage   decimal.Decimal      `json:"sgst_percentage"`
	TransportCharges decimal.Decimal      `json:"transport_charges"`
	LabourCharges    decimal.Decimal      `json:"labour_charges"`
	Notes            string               `json:"notes,omitempty"`
	Lines            []ChallanLineRequest `json:"lines"`
}

// PaymentRequest is the input for recording a customer payment.
type PaymentRequest struct {
	CustomerID    int             `json:"customer_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   string          `json:"payment_date,omitempty"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes,omitempty"`
}

// SiteRequest is the input for creating or updating a delivery site.
type SiteRequest struct {
	CustomerID int    `json:"customer_id"`
	Address    string `json:"address"`
	FlatNumber string `json:"flat_number,omitempty"`
}

// LaminateEntryRequest is the input for creating or updating a laminate selection.
type LaminateEntryRequest struct {
	SiteID      int    `json:"site_id"`
	Room        string `json:"room"`
	ModelName   string `json:"model_name"`
	Description string `json:"description,omitempty"`
	Notes       string `json:"notes,omitempty"`
	Date        string `json:"date"`
}
