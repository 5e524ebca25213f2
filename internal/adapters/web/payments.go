package web

import (
	"net/http"
	"time"

	"backoffice/internal/core"

	"github.com/google/uuid"
)

// listPayments handles GET /api/payments. Query: ?customer_id= optional filter.
func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}

	var customerID *uuid.UUID
	if raw := r.URL.Query().Get("customer_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, r, "invalid customer_id: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		customerID = &id
	}

	payments, err := h.svc.ListPayments(r.Context(), ownerID, customerID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, payments)
}

// recordPayment handles POST /api/payments.
// Body: { customer_id, date?, amount, method?, reference? }
func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}

	var body struct {
		CustomerID string `json:"customer_id"`
		Date       string `json:"date"`
		Amount     string `json:"amount"`
		Method     string `json:"method"`
		Reference  string `json:"reference"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	customerID, err := uuid.Parse(body.CustomerID)
	if err != nil {
		writeError(w, r, "invalid customer_id: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if body.Amount == "" {
		writeError(w, r, "amount is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	date := time.Now()
	if body.Date != "" {
		date, err = time.Parse("2006-01-02", body.Date)
		if err != nil {
			writeError(w, r, "invalid date: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
			return
		}
	}

	payment, err := h.svc.RecordPayment(r.Context(), ownerID, core.PaymentInput{
		CustomerID: customerID,
		Date:       date,
		Amount:     body.Amount,
		Method:     body.Method,
		Reference:  body.Reference,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, payment)
}

// deletePayment handles DELETE /api/payments/{id}.
func (h *Handler) deletePayment(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := urlUUID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeletePayment(r.Context(), ownerID, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
