package core_test

import (
	"testing"
	"time"

	"plystore/internal/core"
)

func TestDateWindowBounds(t *testing.T) {
	now := time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC)

	cases := []struct {
		name      string
		window    core.DateWindow
		wantStart string
		wantEnd   string
		wantOK    bool
	}{
		{"all time", core.DateWindow{Kind: core.WindowAllTime}, "", "", false},
		{"last 7 days", core.DateWindow{Kind: core.WindowLast7Days}, "2026-09-08", "2026-09-15", true},
		{"this month", core.DateWindow{Kind: core.WindowThisMonth}, "2026-09-01", "2026-09-15", true},
		{"last month", core.DateWindow{Kind: core.WindowLastMonth}, "2026-08-01", "2026-08-31", true},
		{"year", core.DateWindow{Kind: core.WindowYear, Year: 2025}, "2025-01-01", "2025-12-31", true},
		{"custom", core.DateWindow{Kind: core.WindowCustom, Start: "2026-03-01", End: "2026-03-10"}, "2026-03-01", "2026-03-10", true},
	}
	for _, c := range cases {
		start, end, ok := c.window.Bounds(now)
		if ok != c.wantOK || start != c.wantStart || end != c.wantEnd {
			t.Errorf("%s: got (%q, %q, %v), want (%q, %q, %v)",
				c.name, start, end, ok, c.wantStart, c.wantEnd, c.wantOK)
		}
	}
}

func TestDateWindowBounds_YearBoundary(t *testing.T) {
	// Last month from mid-January must land in December of the prior year.
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	start, end, ok := core.DateWindow{Kind: core.WindowLastMonth}.Bounds(now)
	if !ok || start != "2025-12-01" || end != "2025-12-31" {
		t.Errorf("got (%q, %q, %v), want (2025-12-01, 2025-12-31, true)", start, end, ok)
	}

	// Last 7 days across the year boundary.
	now = time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)
	start, end, ok = core.DateWindow{Kind: core.WindowLast7Days}.Bounds(now)
	if !ok || start != "2025-12-27" || end != "2026-01-03" {
		t.Errorf("got (%q, %q, %v), want (2025-12-27, 2026-01-03, true)", start, end, ok)
	}
}
