package web

import (
	"net/http"
	"strings"

	"plystore/internal/app"
)

func (h *Handler) apiListCustomers(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListCustomers(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) apiSearchCustomers(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, r, "search query is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.SearchCustomers(r.Context(), query)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) apiGetCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	result, err := h.svc.GetCustomer(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) apiCreateCustomer(w http.ResponseWriter, r *http.Request) {
	var body app.CustomerRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	customer, err := h.svc.CreateCustomer(r.Context(), body)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, customer)
}

func (h *Handler) apiUpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var body app.CustomerRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	customer, err := h.svc.UpdateCustomer(r.Context(), id, body)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, customer)
}

func (h *Handler) apiDeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteCustomer(r.Context(), h.identity(r), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
