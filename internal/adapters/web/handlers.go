package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"plystore/internal/app"
	"plystore/internal/core"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc       app.ApplicationService
	router    chi.Router
	jwtSecret string
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins, jwtSecret string) http.Handler {
	h := &Handler{
		svc:       svc,
		jwtSecret: jwtSecret,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))

	// ── Health (public) ───────────────────────────────────────────────────────
	r.Get("/api/health", h.health)

	// ── Auth (public) ─────────────────────────────────────────────────────────
	r.Post("/api/auth/login", h.login)
	r.Post("/api/auth/logout", h.logout)

	// ── Protected API routes (return 401 JSON if unauthenticated) ────────────
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		r.Get("/api/auth/me", h.me)

		// Customers
		r.Get("/api/customers", h.apiListCustomers)
		r.Post("/api/customers", h.apiCreateCustomer)
		r.Get("/api/customers/search", h.apiSearchCustomers)
		r.Get("/api/customers/{id}", h.apiGetCustomer)
		r.Put("/api/customers/{id}", h.apiUpdateCustomer)
		r.Delete("/api/customers/{id}", h.apiDeleteCustomer)

		// Customer ledger (manager-only, enforced by the facade)
		r.Get("/api/customers/{id}/ledger", h.apiCustomerLedger)
		r.Post("/api/customers/{id}/payments", h.apiRecordPayment)
		r.Delete("/api/payments/{id}", h.apiDeletePayment)

		// Companies
		r.Get("/api/companies", h.apiListCompanies)
		r.Post("/api/companies", h.apiCreateCompany)
		r.Put("/api/companies/{id}", h.apiUpdateCompany)
		r.Delete("/api/companies/{id}", h.apiDeleteCompany)

		// Inventory
		r.Get("/api/inventory", h.apiListInventory)
		r.Post("/api/inventory", h.apiAddStock)
		r.Post("/api/inventory/initialize", h.apiInitializeInventory)
		r.Get("/api/inventory/{id}", h.apiGetInventoryItem)
		r.Put("/api/inventory/{id}", h.apiUpdateInventoryItem)
		r.Delete("/api/inventory/{id}", h.apiDeleteInventoryItem)
		r.Post("/api/inventory/{id}/adjust", h.apiAdjustStock)

		// Challans
		r.Get("/api/challans", h.apiListChallans)
		r.Post("/api/challans", h.apiCreateChallan)
		r.Get("/api/challans/next-number", h.apiNextChallanNumber)
		r.Get("/api/challans/{id}", h.apiGetChallan)
		r.Delete("/api/challans/{id}", h.apiDeleteChallan)

		// Sites & laminates
		r.Get("/api/customers/{id}/sites", h.apiListSites)
		r.Post("/api/sites", h.apiCreateSite)
		r.Put("/api/sites/{id}", h.apiUpdateSite)
		r.Delete("/api/sites/{id}", h.apiDeleteSite)
		r.Get("/api/sites/{id}/laminates", h.apiListLaminateEntries)
		r.Post("/api/laminates", h.apiCreateLaminateEntry)
		r.Put("/api/laminates/{id}", h.apiUpdateLaminateEntry)
		r.Delete("/api/laminates/{id}", h.apiDeleteLaminateEntry)

		// Sales reports
		r.Get("/api/reports/product/{id}", h.apiProductSales)
		r.Get("/api/reports/type/{type}", h.apiSalesByType)
		r.Get("/api/reports/company/{id}", h.apiSalesByCompany)
		r.Get("/api/reports/grade/{type}/{grade}", h.apiSalesByGrade)
	})

	h.router = r
	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
}

// idParam extracts the {id} URL parameter as an int. Writes a 400 response
// and returns false when the parameter is not a valid positive integer.
func idParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeError(w, r, "invalid id", "BAD_REQUEST", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// windowFromQuery builds a date window from the filter/year/start/end query
// parameters. A missing filter means all time.
func windowFromQuery(w http.ResponseWriter, r *http.Request) (core.DateWindow, bool) {
	q := r.URL.Query()
	window := core.DateWindow{
		Kind:  core.WindowKind(q.Get("filter")),
		Start: q.Get("start"),
		End:   q.Get("end"),
	}
	if window.Kind == "" {
		window.Kind = core.WindowAllTime
	}
	if yr := q.Get("year"); yr != "" {
		n, err := strconv.Atoi(yr)
		if err != nil {
			writeError(w, r, "invalid year", "BAD_REQUEST", http.StatusBadRequest)
			return core.DateWindow{}, false
		}
		window.Year = n
	}
	switch window.Kind {
	case core.WindowAllTime, core.WindowLast7Days, core.WindowThisMonth, core.WindowLastMonth:
	case core.WindowYear:
		if window.Year <= 0 {
			writeError(w, r, "year filter requires a year", "BAD_REQUEST", http.StatusBadRequest)
			return core.DateWindow{}, false
		}
	case core.WindowCustom:
		if window.Start == "" || window.End == "" {
			writeError(w, r, "custom filter requires start and end", "BAD_REQUEST", http.StatusBadRequest)
			return core.DateWindow{}, false
		}
	default:
		writeError(w, r, "invalid date filter", "BAD_REQUEST", http.StatusBadRequest)
		return core.DateWindow{}, false
	}
	return window, true
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by RequestBodyLimit middleware; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
