package web

import (
	"fmt"
	"net/http"
)

// getStatement handles GET /api/customers/{id}/statement.
// Optional ?cutoff=YYYY-MM-DD; the cutoff day is inclusive and defaults to today.
func (h *Handler) getStatement(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := urlUUID(w, r)
	if !ok {
		return
	}
	cutoff, err := queryDate(r, "cutoff")
	if err != nil {
		writeError(w, r, "invalid cutoff date: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	stmt, err := h.svc.GetStatement(r.Context(), ownerID, id, cutoff)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, stmt)
}

// statementPDF handles GET /api/customers/{id}/statement.pdf.
func (h *Handler) statementPDF(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := urlUUID(w, r)
	if !ok {
		return
	}
	cutoff, err := queryDate(r, "cutoff")
	if err != nil {
		writeError(w, r, "invalid cutoff date: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	pdf, err := h.svc.StatementPDF(r.Context(), ownerID, id, cutoff)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="statement-%s.pdf"`, id))
	_, _ = w.Write(pdf)
}

// statementXLSX handles GET /api/customers/{id}/statement.xlsx.
func (h *Handler) statementXLSX(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := urlUUID(w, r)
	if !ok {
		return
	}
	cutoff, err := queryDate(r, "cutoff")
	if err != nil {
		writeError(w, r, "invalid cutoff date: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	book, err := h.svc.StatementXLSX(r.Context(), ownerID, id, cutoff)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="statement-%s.xlsx"`, id))
	_, _ = w.Write(book)
}

// dashboard handles GET /api/dashboard.
func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	summary, err := h.svc.GetDashboard(r.Context(), ownerID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, summary)
}

// extractInvoice handles POST /api/extract/invoice.
// Body: { text }. Runs AI extraction over pasted document text and returns a
// draft invoice for the user to review; nothing is persisted.
func (h *Handler) extractInvoice(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.owner(w, r); !ok {
		return
	}

	var body struct {
		Text string `json:"text"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Text == "" {
		writeError(w, r, "text is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	draft, err := h.svc.ExtractInvoiceDraft(r.Context(), body.Text)
	if err != nil {
		writeError(w, r, err.Error(), "EXTRACTION_FAILED", http.StatusBadGateway)
		return
	}
	writeJSON(w, draft)
}
