package web

import (
	"net/http"
	"time"

	"backoffice/internal/core"

	"github.com/google/uuid"
)

type workflowBody struct {
	CustomerID  string `json:"customer_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
}

// parseWorkflowInput converts a workflow body into a core input. Writes an
// error response and returns false on invalid input.
func parseWorkflowInput(w http.ResponseWriter, r *http.Request, body workflowBody) (core.WorkflowInput, bool) {
	if body.Title == "" {
		writeError(w, r, "title is required", "BAD_REQUEST", http.StatusBadRequest)
		return core.WorkflowInput{}, false
	}

	input := core.WorkflowInput{
		Title:       body.Title,
		Description: body.Description,
	}

	if body.CustomerID != "" {
		id, err := uuid.Parse(body.CustomerID)
		if err != nil {
			writeError(w, r, "invalid customer_id: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
			return core.WorkflowInput{}, false
		}
		input.CustomerID = &id
	}
	if body.DueDate != "" {
		d, err := time.Parse("2006-01-02", body.DueDate)
		if err != nil {
			writeError(w, r, "invalid due_date: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
			return core.WorkflowInput{}, false
		}
		input.DueDate = &d
	}
	return input, true
}

// listWorkflows handles GET /api/workflows. Query: ?status= optional filter.
func (h *Handler) listWorkflows(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}

	var status *core.WorkflowStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := core.WorkflowStatus(s)
		status = &st
	}

	workflows, err := h.svc.ListWorkflows(r.Context(), ownerID, status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, workflows)
}

// createWorkflow handles POST /api/workflows.
// Body: { title, description?, customer_id?, due_date? }. New jobs start pending.
func (h *Handler) createWorkflow(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}

	var body workflowBody
	if !decodeJSON(w, r, &body) {
		return
	}
	input, ok := parseWorkflowInput(w, r, body)
	if !ok {
		return
	}

	workflow, err := h.svc.CreateWorkflow(r.Context(), ownerID, input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, workflow)
}

// updateWorkflow handles PUT /api/workflows/{id} — edits fields, not status.
func (h *Handler) updateWorkflow(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := urlUUID(w, r)
	if !ok {
		return
	}

	var body workflowBody
	if !decodeJSON(w, r, &body) {
		return
	}
	input, ok := parseWorkflowInput(w, r, body)
	if !ok {
		return
	}

	workflow, err := h.svc.UpdateWorkflow(r.Context(), ownerID, id, input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, workflow)
}

// transitionWorkflow handles POST /api/workflows/{id}/transition.
// Body: { status }. Only legal lifecycle moves are accepted.
func (h *Handler) transitionWorkflow(w http.ResponseWriter, r *http.Request) {
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

	workflow, err := h.svc.TransitionWorkflow(r.Context(), ownerID, id, core.WorkflowStatus(body.Status))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, workflow)
}

// deleteWorkflow handles DELETE /api/workflows/{id}.
func (h *Handler) deleteWorkflow(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := urlUUID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteWorkflow(r.Context(), ownerID, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
