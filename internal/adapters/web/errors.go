package web

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"plystore/internal/core"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// writeJSON writes a JSON response with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeDomainError maps the domain error taxonomy onto HTTP statuses.
// Anything unclassified is a 500 whose detail goes to the log, not the client.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *core.ValidationError
		notFoundErr   *core.NotFoundError
		authErr       *core.AuthorizationError
		stockErr      *core.InsufficientStockError
		overErr       *core.OverpaymentError
	)
	switch {
	case errors.As(err, &validationErr):
		writeError(w, r, validationErr.Error(), "BAD_REQUEST", http.StatusBadRequest)
	case errors.As(err, &notFoundErr):
		writeError(w, r, notFoundErr.Error(), "NOT_FOUND", http.StatusNotFound)
	case errors.As(err, &authErr):
		writeError(w, r, authErr.Error(), "FORBIDDEN", http.StatusForbidden)
	case errors.As(err, &stockErr):
		writeError(w, r, stockErr.Error(), "INSUFFICIENT_STOCK", http.StatusConflict)
	case errors.As(err, &overErr):
		writeError(w, r, overErr.Error(), "OVERPAYMENT", http.StatusConflict)
	default:
		log.Printf("internal error [%s]: %v", requestIDFromContext(r.Context()), err)
		writeError(w, r, "internal server error", "INTERNAL_ERROR", http.StatusInternalServerError)
	}
}
