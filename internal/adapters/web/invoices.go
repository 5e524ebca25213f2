package web

import (
	"fmt"
	"net/http"
	"time"

	"backoffice/internal/core"

	"github.com/google/uuid"
)

// listInvoices handles GET /api/invoices.
// Query: ?kind=invoice|quote (default invoice), ?status= optional filter.
func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}

	kind := core.DocKindInvoice
	if k := r.URL.Query().Get("kind"); k != "" {
		kind = core.DocKind(k)
		if kind != core.DocKindInvoice && kind != core.DocKindQuote {
			writeError(w, r, "kind must be invoice or quote", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
	}

	var status *core.InvoiceStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := core.InvoiceStatus(s)
		status = &st
	}

	invoices, err := h.svc.ListInvoices(r.Context(), ownerID, kind, status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, invoices)
}

// createInvoice handles POST /api/invoices.
// Body: { customer_id, doc_kind?, date?, due_date?, status?, notes?, items: [...] }
// Totals are computed server-side; client-supplied totals are ignored.
func (h *Handler) createInvoice(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}

	var body struct {
		CustomerID string `json:"customer_id"`
		DocKind    string `json:"doc_kind"`
		Date       string `json:"date"`
		DueDate    string `json:"due_date"`
		Status     string `json:"status"`
		Notes      string `json:"notes"`
		Items      []struct {
			Description    string `json:"description"`
			Quantity       string `json:"quantity"`
			UnitPrice      string `json:"unit_price"`
			TaxRatePercent string `json:"tax_rate_percent"`
		} `json:"items"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	customerID, err := uuid.Parse(body.CustomerID)
	if err != nil {
		writeError(w, r, "invalid customer_id: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if len(body.Items) == 0 {
		writeError(w, r, "at least one item is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	kind := core.DocKindInvoice
	if body.DocKind != "" {
		kind = core.DocKind(body.DocKind)
		if kind != core.DocKindInvoice && kind != core.DocKindQuote {
			writeError(w, r, "doc_kind must be invoice or quote", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
	}

	date := time.Now()
	if body.Date != "" {
		date, err = time.Parse("2006-01-02", body.Date)
		if err != nil {
			writeError(w, r, "invalid date: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
			return
		}
	}

	var dueDate *time.Time
	if body.DueDate != "" {
		d, err := time.Parse("2006-01-02", body.DueDate)
		if err != nil {
			writeError(w, r, "invalid due_date: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		dueDate = &d
	}

	status := core.InvoiceStatusDraft
	if body.Status != "" {
		status = core.InvoiceStatus(body.Status)
	}

	items := make([]core.InvoiceItemInput, len(body.Items))
	for i, it := range body.Items {
		items[i] = core.InvoiceItemInput{
			Description:    it.Description,
			Quantity:       it.Quantity,
			UnitPrice:      it.UnitPrice,
			TaxRatePercent: it.TaxRatePercent,
		}
	}

	invoice, err := h.svc.CreateInvoice(r.Context(), ownerID, core.InvoiceInput{
		CustomerID: customerID,
		DocKind:    kind,
		Date:       date,
		DueDate:    dueDate,
		Status:     status,
		Notes:      body.Notes,
		Items:      items,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, invoice)
}

// getInvoice handles GET /api/invoices/{id} — returns the document with items.
func (h *Handler) getInvoice(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := urlUUID(w, r)
	if !ok {
		return
	}

	invoice, err := h.svc.GetInvoice(r.Context(), ownerID, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, invoice)
}

// updateInvoiceStatus handles PATCH /api/invoices/{id}/status.
// Body: { status }
func (h *Handler) updateInvoiceStatus(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := urlUUID(w, r)
	if !ok {
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Status == "" {
		writeError(w, r, "status is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	invoice, err := h.svc.UpdateInvoiceStatus(r.Context(), ownerID, id, core.InvoiceStatus(body.Status))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, invoice)
}

// deleteInvoice handles DELETE /api/invoices/{id}.
func (h *Handler) deleteInvoice(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := urlUUID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteInvoice(r.Context(), ownerID, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// invoicePDF handles GET /api/invoices/{id}/pdf.
func (h *Handler) invoicePDF(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := urlUUID(w, r)
	if !ok {
		return
	}

	pdf, err := h.svc.InvoicePDF(r.Context(), ownerID, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="document-%s.pdf"`, id))
	_, _ = w.Write(pdf)
}
