package web

import (
	"net/http"
	"time"

	"backoffice/internal/core"

	"github.com/google/uuid"
)

type supplierBody struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// listSuppliers handles GET /api/suppliers.
func (h *Handler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	suppliers, err := h.svc.ListSuppliers(r.Context(), ownerID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, suppliers)
}

// createSupplier handles POST /api/suppliers.
func (h *Handler) createSupplier(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}

	var body supplierBody
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Name == "" {
		writeError(w, r, "name is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	supplier, err := h.svc.CreateSupplier(r.Context(), ownerID, core.SupplierInput{
		Name:    body.Name,
		Email:   body.Email,
		Phone:   body.Phone,
		Address: body.Address,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, supplier)
}

// updateSupplier handles PUT /api/suppliers/{id}.
func (h *Handler) updateSupplier(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := urlUUID(w, r)
	if !ok {
		return
	}

	var body supplierBody
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Name == "" {
		writeError(w, r, "name is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	supplier, err := h.svc.UpdateSupplier(r.Context(), ownerID, id, core.SupplierInput{
		Name:    body.Name,
		Email:   body.Email,
		Phone:   body.Phone,
		Address: body.Address,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, supplier)
}

// deleteSupplier handles DELETE /api/suppliers/{id}.
func (h *Handler) deleteSupplier(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := urlUUID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteSupplier(r.Context(), ownerID, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listSupplierPayments handles GET /api/supplier-payments.
// Query: ?supplier_id= optional filter.
func (h *Handler) listSupplierPayments(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}

	var supplierID *uuid.UUID
	if raw := r.URL.Query().Get("supplier_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, r, "invalid supplier_id: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		supplierID = &id
	}

	payments, err := h.svc.ListSupplierPayments(r.Context(), ownerID, supplierID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, payments)
}

// recordSupplierPayment handles POST /api/supplier-payments.
// Body: { supplier_id, date?, amount, reference? }
func (h *Handler) recordSupplierPayment(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}

	var body struct {
		SupplierID string `json:"supplier_id"`
		Date       string `json:"date"`
		Amount     string `json:"amount"`
		Reference  string `json:"reference"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	supplierID, err := uuid.Parse(body.SupplierID)
	if err != nil {
		writeError(w, r, "invalid supplier_id: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
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

	payment, err := h.svc.RecordSupplierPayment(r.Context(), ownerID, core.SupplierPaymentInput{
		SupplierID: supplierID,
		Date:       date,
		Amount:     body.Amount,
		Reference:  body.Reference,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, payment)
}

// deleteSupplierPayment handles DELETE /api/supplier-payments/{id}.
func (h *Handler) deleteSupplierPayment(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := urlUUID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteSupplierPayment(r.Context(), ownerID, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
