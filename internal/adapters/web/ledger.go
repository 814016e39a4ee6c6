package web

import (
	"net/http"

	"plystore/internal/app"
)

// apiCustomerLedger returns the windowed balance, payment history, and the
// years with payment activity for one customer. Manager-only.
func (h *Handler) apiCustomerLedger(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	window, ok := windowFromQuery(w, r)
	if !ok {
		return
	}
	result, err := h.svc.GetCustomerLedger(r.Context(), h.identity(r), id, window)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// apiRecordPayment records a payment against a customer's account. Amounts
// exceeding the pending balance are rejected with 409.
func (h *Handler) apiRecordPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var body app.PaymentRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	body.CustomerID = id
	payment, err := h.svc.RecordPayment(r.Context(), h.identity(r), body)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, payment)
}

func (h *Handler) apiDeletePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeletePayment(r.Context(), h.identity(r), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
