// Package catalog holds the static reference data for the store's product
// families: which measurements, thicknesses, and grade labels are valid for
// each product type. It is pure data plus lookup helpers — nothing here
// touches the database.
package catalog

// ProductType identifies a sheet-goods family.
type ProductType string

const (
	Plywood ProductType = "Plywood"
	Board   ProductType = "Board"
	MDF     ProductType = "MDF"
	Flexi   ProductType = "Flexi"
)

// Family describes the valid attribute space of one product type.
// GradeLabel names what the generic "grade" column means for that family
// (grade for Board, color for MDF, type for Flexi). Plywood has no grades:
// its stock is scoped to a manufacturer company instead.
type Family struct {
	Type         ProductType
	Measurements []string // empty = family has no measurement attribute
	Thicknesses  []string
	Grades       []string // empty = family is company-scoped (Plywood)
	GradeLabel   string
}

// Measurements are in feet.
var (
	plywoodMeasurements = []string{"8×4", "8×3", "7×4", "7×3", "6×4", "6×3"}
	plywoodThicknesses  = []string{"6mm", "8mm", "12mm", "15mm", "18mm"}

	boardMeasurements = []string{"8×4", "8×3", "7×4", "7×3", "6×4", "6×3", "7×2.5", "6×2.5"}
	boardThicknesses  = []string{"19mm", "25mm", "30mm", "35mm", "40mm", "45mm"}
	boardGrades       = []string{"A grade", "B grade", "Marine"}

	mdfColors      = []string{"Pink", "Green"}
	mdfThicknesses = []string{"4mm", "6mm", "8mm", "12mm", "18mm"}

	flexiTypes       = []string{"H.W", "GURJAN"}
	flexiThicknesses = []string{"6mm", "12mm"}
)

var families = map[ProductType]Family{
	Plywood: {
		Type:         Plywood,
		Measurements: plywoodMeasurements,
		Thicknesses:  plywoodThicknesses,
	},
	Board: {
		Type:         Board,
		Measurements: boardMeasurements,
		Thicknesses:  boardThicknesses,
		Grades:       boardGrades,
		GradeLabel:   "grade",
	},
	MDF: {
		Type:        MDF,
		Thicknesses: mdfThicknesses,
		Grades:      mdfColors,
		GradeLabel:  "color",
	},
	Flexi: {
		Type:        Flexi,
		Thicknesses: flexiThicknesses,
		Grades:      flexiTypes,
		GradeLabel:  "type",
	},
}

// ProductTypes returns all families in display order.
func ProductTypes() []ProductType {
	return []ProductType{Plywood, Board, MDF, Flexi}
}

// FamilyFor returns the attribute descriptor for a product type.
func FamilyFor(pt ProductType) (Family, bool) {
	f, ok := families[pt]
	return f, ok
}

// HasMeasurement reports whether the family carries a measurement attribute.
func (f Family) HasMeasurement() bool { return len(f.Measurements) > 0 }

// CompanyScoped reports whether stock of this family belongs to a company
// rather than a grade label.
func (f Family) CompanyScoped() bool { return len(f.Grades) == 0 }

// ValidThickness reports whether t is a valid thickness for the family.
func (f Family) ValidThickness(t string) bool { return contains(f.Thicknesses, t) }

// ValidMeasurement reports whether m is a valid measurement for the family.
// Families without a measurement attribute accept only the empty string.
func (f Family) ValidMeasurement(m string) bool {
	if !f.HasMeasurement() {
		return m == ""
	}
	return contains(f.Measurements, m)
}

// ValidGrade reports whether g is a valid grade/color/type label for the family.
func (f Family) ValidGrade(g string) bool { return contains(f.Grades, g) }

// Combination is one point of a family's attribute grid, used by the
// inventory generator to seed zero-quantity stock records.
type Combination struct {
	Measurement string // empty when the family has none
	Thickness   string
}

// Combinations enumerates every (measurement × thickness) point of the family.
// Families without measurements yield one combination per thickness.
func (f Family) Combinations() []Combination {
	if !f.HasMeasurement() {
		out := make([]Combination, 0, len(f.Thicknesses))
		for _, t := range f.Thicknesses {
			out = append(out, Combination{Thickness: t})
		}
		return out
	}
	out := make([]Combination, 0, len(f.Measurements)*len(f.Thicknesses))
	for _, m := range f.Measurements {
		for _, t := range f.Thicknesses {
			out = append(out, Combination{Measurement: m, Thickness: t})
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
