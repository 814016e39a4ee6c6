package web

import (
	"net/http"
	"strconv"

	"plystore/internal/app"
	"plystore/internal/catalog"
	"plystore/internal/core"
)

func (h *Handler) apiListInventory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter app.InventoryFilter
	if cid := q.Get("company_id"); cid != "" {
		n, err := strconv.Atoi(cid)
		if err != nil || n <= 0 {
			writeError(w, r, "invalid company_id", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		filter.CompanyID = n
	}
	if pt := q.Get("product_type"); pt != "" {
		filter.ProductType = catalog.ProductType(pt)
		if _, ok := catalog.FamilyFor(filter.ProductType); !ok {
			writeError(w, r, "unknown product type", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
	}

	result, err := h.svc.ListInventory(r.Context(), filter)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) apiGetInventoryItem(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	item, err := h.svc.GetInventoryItem(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, item)
}

// apiAddStock merges incoming quantity into the matching attribute combination,
// creating the record if it does not exist yet.
func (h *Handler) apiAddStock(w http.ResponseWriter, r *http.Request) {
	var body core.StockInput
	if !decodeJSON(w, r, &body) {
		return
	}
	item, err := h.svc.AddStock(r.Context(), body)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, item)
}

func (h *Handler) apiUpdateInventoryItem(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var body struct {
		Quantity int    `json:"quantity"`
		Notes    string `json:"notes"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Quantity < 0 {
		writeError(w, r, "quantity cannot be negative", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	item, err := h.svc.UpdateInventoryItem(r.Context(), id, body.Quantity, body.Notes)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, item)
}

func (h *Handler) apiDeleteInventoryItem(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteInventoryItem(r.Context(), h.identity(r), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// apiAdjustStock applies a signed delta to one item's quantity. A delta that
// would take the quantity below zero is rejected with 409.
func (h *Handler) apiAdjustStock(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var body struct {
		Delta int `json:"delta"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Delta == 0 {
		writeError(w, r, "delta cannot be zero", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	item, err := h.svc.AdjustStock(r.Context(), id, body.Delta)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, item)
}

// apiInitializeInventory seeds zero-quantity records for every catalog
// combination that does not exist yet. Safe to call repeatedly.
func (h *Handler) apiInitializeInventory(w http.ResponseWriter, r *http.Request) {
	created, err := h.svc.InitializeInventory(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	type response struct {
		Created int `json:"created"`
	}
	writeJSON(w, response{Created: created})
}
