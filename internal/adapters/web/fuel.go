package web

import (
	"net/http"
	"time"

	"backoffice/internal/core"
)

// listFuelLogs handles GET /api/fuel-logs. Query: ?vehicle= optional filter.
func (h *Handler) listFuelLogs(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}

	var vehicle *string
	if v := r.URL.Query().Get("vehicle"); v != "" {
		vehicle = &v
	}

	logs, err := h.svc.ListFuelLogs(r.Context(), ownerID, vehicle)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, logs)
}

// createFuelLog handles POST /api/fuel-logs.
// Body: { date?, vehicle, litres, cost, odometer? }
func (h *Handler) createFuelLog(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}

	var body struct {
		Date     string `json:"date"`
		Vehicle  string `json:"vehicle"`
		Litres   string `json:"litres"`
		Cost     string `json:"cost"`
		Odometer *int   `json:"odometer"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Vehicle == "" {
		writeError(w, r, "vehicle is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	date := time.Now()
	if body.Date != "" {
		var err error
		date, err = time.Parse("2006-01-02", body.Date)
		if err != nil {
			writeError(w, r, "invalid date: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
			return
		}
	}

	logEntry, err := h.svc.CreateFuelLog(r.Context(), ownerID, core.FuelLogInput{
		Date:     date,
		Vehicle:  body.Vehicle,
		Litres:   body.Litres,
		Cost:     body.Cost,
		Odometer: body.Odometer,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, logEntry)
}

// deleteFuelLog handles DELETE /api/fuel-logs/{id}.
func (h *Handler) deleteFuelLog(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := urlUUID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteFuelLog(r.Context(), ownerID, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// fuelMonthlySummary handles GET /api/fuel-logs/summary — litres and cost
// aggregated per calendar month, newest first.
func (h *Handler) fuelMonthlySummary(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	summary, err := h.svc.FuelMonthlySummary(r.Context(), ownerID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, summary)
}
