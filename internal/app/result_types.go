package app

import "plystore/internal/core"

// UserSession is returned by AuthenticateUser.
type UserSession struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// UserResult is returned by GetUser.
type UserResult struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
}

// CustomerListResult is returned by ListCustomers and SearchCustomers.
type CustomerListResult struct {
	Customers []core.Customer `json:"customers"`
}

// CustomerResult is returned by GetCustomer.
type CustomerResult struct {
	Customer *core.Customer `json:"customer"`
	Sites    []core.Site    `json:"sites"`
}

// CompanyListResult is returned by ListCompanies.
type CompanyListResult struct {
	Companies []core.Company `json:"companies"`
}

// InventoryListResult is returned by ListInventory.
type InventoryListResult struct {
	Items []core.InventoryItem `json:"items"`
}

// ChallanListResult is one page of challan headers.
type ChallanListResult struct {
	Challans []core.Challan `json:"challans"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	Limit    int            `json:"limit"`
}

// LedgerResult is the manager's view of one customer's account.
type LedgerResult struct {
	Balance  *core.CustomerBalance `json:"balance"`
	Payments []core.Payment        `json:"payments"`
	Years    []int                 `json:"years"`
}
