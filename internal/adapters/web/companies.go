package web

import (
	"net/http"
	"strings"
)

func (h *Handler) apiListCompanies(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListCompanies(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// apiCreateCompany registers a plywood brand. The facade seeds the brand's
// plywood inventory grid in the same transaction.
func (h *Handler) apiCreateCompany(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	if strings.TrimSpace(body.Name) == "" {
		writeError(w, r, "company name is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	company, err := h.svc.CreateCompany(r.Context(), strings.TrimSpace(body.Name))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, company)
}

func (h *Handler) apiUpdateCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var body struct {
		Name string `json:"name"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	if strings.TrimSpace(body.Name) == "" {
		writeError(w, r, "company name is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	company, err := h.svc.UpdateCompany(r.Context(), id, strings.TrimSpace(body.Name))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, company)
}

func (h *Handler) apiDeleteCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteCompany(r.Context(), h.identity(r), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
