package web

import (
	"net/http"

	"backoffice/internal/core"
)

type stockItemBody struct {
	SKU            string `json:"sku"`
	Name           string `json:"name"`
	QuantityOnHand int    `json:"quantity_on_hand"`
	ReorderLevel   int    `json:"reorder_level"`
	UnitPrice      string `json:"unit_price"`
}

// listStock handles GET /api/stock.
func (h *Handler) listStock(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	items, err := h.svc.ListStockItems(r.Context(), ownerID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, items)
}

// listLowStock handles GET /api/stock/low — items at or below reorder level.
func (h *Handler) listLowStock(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	items, err := h.svc.ListLowStock(r.Context(), ownerID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, items)
}

// createStockItem handles POST /api/stock.
// Body: { sku?, name, quantity_on_hand?, reorder_level?, unit_price? }
func (h *Handler) createStockItem(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}

	var body stockItemBody
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Name == "" {
		writeError(w, r, "name is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	item, err := h.svc.CreateStockItem(r.Context(), ownerID, core.StockItemInput{
		SKU:            body.SKU,
		Name:           body.Name,
		QuantityOnHand: body.QuantityOnHand,
		ReorderLevel:   body.ReorderLevel,
		UnitPrice:      body.UnitPrice,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, item)
}

// updateStockItem handles PUT /api/stock/{id}.
func (h *Handler) updateStockItem(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := urlUUID(w, r)
	if !ok {
		return
	}

	var body stockItemBody
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Name == "" {
		writeError(w, r, "name is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	item, err := h.svc.UpdateStockItem(r.Context(), ownerID, id, core.StockItemInput{
		SKU:            body.SKU,
		Name:           body.Name,
		QuantityOnHand: body.QuantityOnHand,
		ReorderLevel:   body.ReorderLevel,
		UnitPrice:      body.UnitPrice,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, item)
}

// adjustStock handles POST /api/stock/{id}/adjust.
// Body: { delta } — signed change to quantity on hand; the result may not go
// below zero.
func (h *Handler) adjustStock(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := urlUUID(w, r)
	if !ok {
		return
	}

	var body struct {
		Delta int `json:"delta"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Delta == 0 {
		writeError(w, r, "delta must be non-zero", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	item, err := h.svc.AdjustStock(r.Context(), ownerID, id, body.Delta)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, item)
}

// deleteStockItem handles DELETE /api/stock/{id}.
func (h *Handler) deleteStockItem(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := urlUUID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteStockItem(r.Context(), ownerID, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
