package web

import (
	"fmt"
	"net/http"
	"time"

	"backoffice/internal/core"

	"github.com/shopspring/decimal"
)

type staffBody struct {
	FullName   string `json:"full_name"`
	Position   string `json:"position"`
	BaseSalary string `json:"base_salary"`
	HourlyRate string `json:"hourly_rate"`
}

// listStaff handles GET /api/staff.
func (h *Handler) listStaff(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	staff, err := h.svc.ListStaff(r.Context(), ownerID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, staff)
}

// createStaff handles POST /api/staff.
// Body: { full_name, position?, base_salary?, hourly_rate? }
func (h *Handler) createStaff(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}

	var body staffBody
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.FullName == "" {
		writeError(w, r, "full_name is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	member, err := h.svc.CreateStaff(r.Context(), ownerID, core.StaffInput{
		FullName:   body.FullName,
		Position:   body.Position,
		BaseSalary: body.BaseSalary,
		HourlyRate: body.HourlyRate,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, member)
}

// updateStaff handles PUT /api/staff/{id}.
func (h *Handler) updateStaff(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := urlUUID(w, r)
	if !ok {
		return
	}

	var body staffBody
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.FullName == "" {
		writeError(w, r, "full_name is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	member, err := h.svc.UpdateStaff(r.Context(), ownerID, id, core.StaffInput{
		FullName:   body.FullName,
		Position:   body.Position,
		BaseSalary: body.BaseSalary,
		HourlyRate: body.HourlyRate,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, member)
}

// deleteStaff handles DELETE /api/staff/{id}.
func (h *Handler) deleteStaff(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := urlUUID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteStaff(r.Context(), ownerID, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type payslipBody struct {
	PeriodStart   string `json:"period_start"`
	PeriodEnd     string `json:"period_end"`
	OvertimeHours string `json:"overtime_hours"`
	Deductions    []struct {
		Label  string `json:"label"`
		Amount string `json:"amount"`
	} `json:"deductions"`
}

// payslipRequest parses the shared payslip body into a core request. Writes
// an error response and returns false on invalid input.
func (h *Handler) payslipRequest(w http.ResponseWriter, r *http.Request) (core.PayslipRequest, bool) {
	id, ok := urlUUID(w, r)
	if !ok {
		return core.PayslipRequest{}, false
	}

	var body payslipBody
	if !decodeJSON(w, r, &body) {
		return core.PayslipRequest{}, false
	}

	start, err := time.Parse("2006-01-02", body.PeriodStart)
	if err != nil {
		writeError(w, r, "invalid period_start: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return core.PayslipRequest{}, false
	}
	end, err := time.Parse("2006-01-02", body.PeriodEnd)
	if err != nil {
		writeError(w, r, "invalid period_end: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return core.PayslipRequest{}, false
	}

	deductions := make([]core.PayslipDeduction, 0, len(body.Deductions))
	for _, d := range body.Deductions {
		amount, err := decimal.NewFromString(d.Amount)
		if err != nil {
			writeError(w, r, "invalid deduction amount: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
			return core.PayslipRequest{}, false
		}
		deductions = append(deductions, core.PayslipDeduction{Label: d.Label, Amount: amount})
	}

	return core.PayslipRequest{
		StaffID:       id,
		PeriodStart:   start,
		PeriodEnd:     end,
		OvertimeHours: body.OvertimeHours,
		Deductions:    deductions,
	}, true
}

// generatePayslip handles POST /api/staff/{id}/payslip.
// Body: { period_start, period_end, overtime_hours?, deductions? }
func (h *Handler) generatePayslip(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	req, ok := h.payslipRequest(w, r)
	if !ok {
		return
	}

	slip, err := h.svc.GeneratePayslip(r.Context(), ownerID, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, slip)
}

// payslipPDF handles POST /api/staff/{id}/payslip.pdf.
func (h *Handler) payslipPDF(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	req, ok := h.payslipRequest(w, r)
	if !ok {
		return
	}

	pdf, err := h.svc.PayslipPDF(r.Context(), ownerID, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="payslip-%s.pdf"`, req.StaffID))
	_, _ = w.Write(pdf)
}
