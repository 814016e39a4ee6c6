package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"plystore/internal/catalog"
)

// productTypeParam extracts and validates the {type} URL parameter.
func productTypeParam(w http.ResponseWriter, r *http.Request) (catalog.ProductType, bool) {
	pt := catalog.ProductType(chi.URLParam(r, "type"))
	if _, ok := catalog.FamilyFor(pt); !ok {
		writeError(w, r, "unknown product type", "BAD_REQUEST", http.StatusBadRequest)
		return "", false
	}
	return pt, true
}

// apiProductSales reports sales of a single inventory item over the window.
func (h *Handler) apiProductSales(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	window, ok := windowFromQuery(w, r)
	if !ok {
		return
	}
	report, err := h.svc.ProductSalesReport(r.Context(), id, window)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, report)
}

func (h *Handler) apiSalesByType(w http.ResponseWriter, r *http.Request) {
	pt, ok := productTypeParam(w, r)
	if !ok {
		return
	}
	window, ok := windowFromQuery(w, r)
	if !ok {
		return
	}
	report, err := h.svc.SalesByTypeReport(r.Context(), pt, window)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, report)
}

func (h *Handler) apiSalesByCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	window, ok := windowFromQuery(w, r)
	if !ok {
		return
	}
	report, err := h.svc.SalesByCompanyReport(r.Context(), id, window)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, report)
}

// apiSalesByGrade reports sales for one grade of a product family, for
// families that carry a grade axis.
func (h *Handler) apiSalesByGrade(w http.ResponseWriter, r *http.Request) {
	pt, ok := productTypeParam(w, r)
	if !ok {
		return
	}
	grade := chi.URLParam(r, "grade")
	if grade == "" {
		writeError(w, r, "grade is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	window, ok := windowFromQuery(w, r)
	if !ok {
		return
	}
	report, err := h.svc.SalesByGradeReport(r.Context(), pt, grade, window)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, report)
}
