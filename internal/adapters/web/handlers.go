package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"backoffice/internal/app"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
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
	r.Use(Metrics)
	r.Use(CORS(allowedOrigins))

	// ── Public ────────────────────────────────────────────────────────────────
	r.Get("/api/health", h.health)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/api/auth/login", h.login)
	r.Post("/api/auth/logout", h.logout)

	// ── Protected API routes (401 JSON if unauthenticated) ────────────────────
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		r.Get("/api/auth/me", h.me)

		// Customers and client statements
		r.Get("/api/customers", h.listCustomers)
		r.Post("/api/customers", h.createCustomer)
		r.Get("/api/customers/{id}", h.getCustomer)
		r.Put("/api/customers/{id}", h.updateCustomer)
		r.Delete("/api/customers/{id}", h.deleteCustomer)
		r.Post("/api/customers/{id}/recompute-balance", h.recomputeBalance)
		r.Get("/api/customers/{id}/statement", h.getStatement)
		r.Get("/api/customers/{id}/statement.pdf", h.statementPDF)
		r.Get("/api/customers/{id}/statement.xlsx", h.statementXLSX)

		// Invoices and quotes (kind=invoice|quote query param on list)
		r.Get("/api/invoices", h.listInvoices)
		r.Post("/api/invoices", h.createInvoice)
		r.Get("/api/invoices/{id}", h.getInvoice)
		r.Patch("/api/invoices/{id}/status", h.updateInvoiceStatus)
		r.Delete("/api/invoices/{id}", h.deleteInvoice)
		r.Get("/api/invoices/{id}/pdf", h.invoicePDF)

		// Customer payments
		r.Get("/api/payments", h.listPayments)
		r.Post("/api/payments", h.recordPayment)
		r.Delete("/api/payments/{id}", h.deletePayment)

		// Suppliers and supplier payments
		r.Get("/api/suppliers", h.listSuppliers)
		r.Post("/api/suppliers", h.createSupplier)
		r.Put("/api/suppliers/{id}", h.updateSupplier)
		r.Delete("/api/suppliers/{id}", h.deleteSupplier)
		r.Get("/api/supplier-payments", h.listSupplierPayments)
		r.Post("/api/supplier-payments", h.recordSupplierPayment)
		r.Delete("/api/supplier-payments/{id}", h.deleteSupplierPayment)

		// Staff and payroll
		r.Get("/api/staff", h.listStaff)
		r.Post("/api/staff", h.createStaff)
		r.Put("/api/staff/{id}", h.updateStaff)
		r.Delete("/api/staff/{id}", h.deleteStaff)
		r.Post("/api/staff/{id}/payslip", h.generatePayslip)
		r.Post("/api/staff/{id}/payslip.pdf", h.payslipPDF)

		// Stock
		r.Get("/api/stock", h.listStock)
		r.Post("/api/stock", h.createStockItem)
		r.Put("/api/stock/{id}", h.updateStockItem)
		r.Delete("/api/stock/{id}", h.deleteStockItem)
		r.Post("/api/stock/{id}/adjust", h.adjustStock)
		r.Get("/api/stock/low", h.listLowStock)

		// Workflows (job tracking)
		r.Get("/api/workflows", h.listWorkflows)
		r.Post("/api/workflows", h.createWorkflow)
		r.Put("/api/workflows/{id}", h.updateWorkflow)
		r.Delete("/api/workflows/{id}", h.deleteWorkflow)
		r.Post("/api/workflows/{id}/transition", h.transitionWorkflow)

		// Fuel logs
		r.Get("/api/fuel-logs", h.listFuelLogs)
		r.Post("/api/fuel-logs", h.createFuelLog)
		r.Delete("/api/fuel-logs/{id}", h.deleteFuelLog)
		r.Get("/api/fuel-logs/summary", h.fuelMonthlySummary)

		// Dashboard
		r.Get("/api/dashboard", h.dashboard)

		// Document extraction
		r.Post("/api/extract/invoice", h.extractInvoice)
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

// owner returns the authenticated owner ID; writes 401 and returns false if absent.
func (h *Handler) owner(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	claims := authFromContext(r.Context())
	if claims == nil {
		writeError(w, r, "not authenticated", "UNAUTHORIZED", http.StatusUnauthorized)
		return uuid.Nil, false
	}
	return claims.UserID, true
}

// urlUUID extracts and parses the {id} URL parameter. Writes 400 on failure.
func urlUUID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "invalid id: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

// queryDate parses an optional YYYY-MM-DD query parameter. A missing or empty
// parameter yields the zero time.
func queryDate(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", raw)
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
