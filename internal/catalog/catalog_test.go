package catalog_test

import (
	"testing"

	"plystore/internal/catalog"
)

func TestCombinationCounts(t *testing.T) {
	cases := []struct {
		pt   catalog.ProductType
		want int
	}{
		{catalog.Plywood, 6 * 5},
		{catalog.Board, 8 * 6},
		{catalog.MDF, 5},
		{catalog.Flexi, 2},
	}
	for _, c := range cases {
		f, ok := catalog.FamilyFor(c.pt)
		if !ok {
			t.Fatalf("FamilyFor(%s) not found", c.pt)
		}
		if got := len(f.Combinations()); got != c.want {
			t.Errorf("%s: expected %d combinations, got %d", c.pt, c.want, got)
		}
	}
}

func TestPlywoodIsCompanyScoped(t *testing.T) {
	f, _ := catalog.FamilyFor(catalog.Plywood)
	if !f.CompanyScoped() {
		t.Error("Plywood must be company-scoped")
	}
	if !f.HasMeasurement() {
		t.Error("Plywood must carry measurements")
	}

	for _, pt := range []catalog.ProductType{catalog.Board, catalog.MDF, catalog.Flexi} {
		f, _ := catalog.FamilyFor(pt)
		if f.CompanyScoped() {
			t.Errorf("%s must use grade labels, not company scoping", pt)
		}
	}
}

func TestMeasurementValidation(t *testing.T) {
	ply, _ := catalog.FamilyFor(catalog.Plywood)
	if !ply.ValidMeasurement("8×4") {
		t.Error("8×4 is a valid plywood measurement")
	}
	if ply.ValidMeasurement("7×2.5") {
		t.Error("7×2.5 is board-only, not plywood")
	}

	mdf, _ := catalog.FamilyFor(catalog.MDF)
	if !mdf.ValidMeasurement("") {
		t.Error("MDF has no measurement; empty string must validate")
	}
	if mdf.ValidMeasurement("8×4") {
		t.Error("MDF must reject any measurement value")
	}
}

func TestGradeValidation(t *testing.T) {
	board, _ := catalog.FamilyFor(catalog.Board)
	if !board.ValidGrade("Marine") {
		t.Error("Marine is a valid board grade")
	}
	if board.ValidGrade("Pink") {
		t.Error("Pink is an MDF color, not a board grade")
	}

	flexi, _ := catalog.FamilyFor(catalog.Flexi)
	if !flexi.ValidGrade("GURJAN") {
		t.Error("GURJAN is a valid flexi type")
	}
	if flexi.ValidThickness("18mm") {
		t.Error("flexi comes in 6mm and 12mm only")
	}
}

func TestUnknownFamily(t *testing.T) {
	if _, ok := catalog.FamilyFor(catalog.ProductType("Veneer")); ok {
		t.Error("unknown product type must not resolve to a family")
	}
}
