package web

import (
	"net/http"
	"strconv"
	"strings"

	"plystore/internal/app"
)

func (h *Handler) apiListChallans(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	if page <= 0 {
		page = 1
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	query := strings.TrimSpace(q.Get("q"))

	result, err := h.svc.ListChallans(r.Context(), page, limit, query)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) apiGetChallan(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	challan, err := h.svc.GetChallan(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, challan)
}

// apiNextChallanNumber previews the number the next challan would receive.
// It is advisory: the number is assigned again inside the creation transaction.
func (h *Handler) apiNextChallanNumber(w http.ResponseWriter, r *http.Request) {
	number, err := h.svc.NextChallanNumber(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	type response struct {
		ChallanNumber string `json:"challan_number"`
	}
	writeJSON(w, response{ChallanNumber: number})
}

// apiCreateChallan creates a delivery challan and settles inventory in one
// transaction. Line amounts and totals are computed server-side.
func (h *Handler) apiCreateChallan(w http.ResponseWriter, r *http.Request) {
	var body app.CreateChallanRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	if len(body.Lines) == 0 {
		writeError(w, r, "challan requires at least one line", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	challan, err := h.svc.CreateChallan(r.Context(), body)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, challan)
}

// apiDeleteChallan removes a challan and its lines. Inventory already shipped
// is not restored.
func (h *Handler) apiDeleteChallan(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteChallan(r.Context(), h.identity(r), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
