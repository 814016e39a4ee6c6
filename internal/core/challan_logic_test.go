package core_test

import (
	"testing"

	"plystore/internal/core"

	"github.com/shopspring/decimal"
)

func TestComputeChallanTotals(t *testing.T) {
	// 10 sheets @ 120 = 1200; 9% CGST + 9% SGST = 108 + 108; transport 200.
	lines := []core.ChallanLineInput{
		{Description: "Greenply Plywood 8×4 18mm", Quantity: 10, Rate: decimal.NewFromInt(120)},
	}
	totals := core.ComputeChallanTotals(lines,
		decimal.NewFromInt(9), decimal.NewFromInt(9),
		decimal.NewFromInt(200), decimal.Zero)

	if !totals.Subtotal.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("Expected subtotal 1200, got %s", totals.Subtotal)
	}
	if !totals.CGSTAmount.Equal(decimal.NewFromInt(108)) {
		t.Errorf("Expected CGST 108, got %s", totals.CGSTAmount)
	}
	if !totals.SGSTAmount.Equal(decimal.NewFromInt(108)) {
		t.Errorf("Expected SGST 108, got %s", totals.SGSTAmount)
	}
	if !totals.TotalAmount.Equal(decimal.NewFromInt(1616)) {
		t.Errorf("Expected total 1616, got %s", totals.TotalAmount)
	}
}

func TestComputeChallanTotals_MultiLineAndRounding(t *testing.T) {
	lines := []core.ChallanLineInput{
		{Description: "Board Marine 8×4 19mm", Quantity: 3, Rate: decimal.RequireFromString("333.33")},
		{Description: "MDF Pink 12mm", Quantity: 2, Rate: decimal.RequireFromString("50.50")},
	}
	// subtotal = 999.99 + 101.00 = 1100.99; 9% = 99.0891 → 99.09 rounded
	totals := core.ComputeChallanTotals(lines,
		decimal.NewFromInt(9), decimal.NewFromInt(9),
		decimal.Zero, decimal.Zero)

	if !totals.Subtotal.Equal(decimal.RequireFromString("1100.99")) {
		t.Errorf("Expected subtotal 1100.99, got %s", totals.Subtotal)
	}
	if !totals.CGSTAmount.Equal(decimal.RequireFromString("99.09")) {
		t.Errorf("Expected CGST 99.09, got %s", totals.CGSTAmount)
	}
	if !totals.TotalAmount.Equal(decimal.RequireFromString("1299.17")) {
		t.Errorf("Expected total 1299.17, got %s", totals.TotalAmount)
	}
}

func TestComputeChallanTotals_ZeroTax(t *testing.T) {
	lines := []core.ChallanLineInput{
		{Description: "Flexi H.W 6mm", Quantity: 4, Rate: decimal.NewFromInt(250)},
	}
	totals := core.ComputeChallanTotals(lines, decimal.Zero, decimal.Zero, decimal.Zero, decimal.NewFromInt(150))

	if !totals.TotalAmount.Equal(decimal.NewFromInt(1150)) {
		t.Errorf("Expected total 1150, got %s", totals.TotalAmount)
	}
	if !totals.CGSTAmount.IsZero() || !totals.SGSTAmount.IsZero() {
		t.Errorf("Expected zero tax, got CGST %s SGST %s", totals.CGSTAmount, totals.SGSTAmount)
	}
}

func TestFormatChallanNumber(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{1, "001"},
		{42, "042"},
		{999, "999"},
		{1000, "1000"},
		{10001, "10001"},
	}
	for _, c := range cases {
		if got := core.FormatChallanNumber(c.n); got != c.want {
			t.Errorf("FormatChallanNumber(%d) = %q, want %q", c.n, got, c.want)
		}
	}
}
