package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fotokiosk/kiosk/internal/dispatch"
	"github.com/fotokiosk/kiosk/internal/formats"
	"github.com/fotokiosk/kiosk/internal/model"
	"github.com/fotokiosk/kiosk/internal/store"
)

// OrdersHandler handles order CRUD and the validate/dispatch action.
type OrdersHandler struct {
	db         *sql.DB
	registry   *formats.Registry
	dispatcher *dispatch.Dispatcher
}

// NewOrdersHandler creates a new orders handler.
func NewOrdersHandler(db *sql.DB, registry *formats.Registry, dispatcher *dispatch.Dispatcher) *OrdersHandler {
	return &OrdersHandler{
		db:         db,
		registry:   registry,
		dispatcher: dispatcher,
	}
}

type createOrderRequest struct {
	ClientName  string           `json:"clientName"`
	ClientEmail string           `json:"clientEmail"`
	Items       []model.CartItem `json:"items"`
}

// Create handles POST /orders: checkout of a cart. Subtotals are computed
// here from the format registry's pricing rules; client-sent subtotals are
// ignored. Unknown SKUs fail the whole checkout, unlike at dispatch time
// where the order already holds money and we skip-and-log instead.
func (h *OrdersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	order := model.Order{
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		Items:       req.Items,
	}
	if err := order.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	for i, item := range order.Items {
		format, err := h.registry.Lookup(item.SKU)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		order.Items[i].Subtotal = format.Subtotal(len(item.Photos))
	}

	created, err := store.CreateOrder(r.Context(), h.db, order)
	if err != nil {
		log.Printf("creating order for %s: %v", sanitizeForLog(req.ClientName), err)
		respondError(w, http.StatusInternalServerError, "failed to create order")
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// Get handles GET /orders/{id}.
func (h *OrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	order, err := store.GetOrder(r.Context(), h.db, id)
	if err != nil {
		log.Printf("getting order %s: %v", sanitizeForLog(id), err)
		respondError(w, http.StatusInternalServerError, "failed to load order")
		return
	}
	if order == nil {
		respondError(w, http.StatusNotFound, "order not found")
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// List handles GET /orders with an optional ?status= filter.
func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	status := model.OrderStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown status %q", status))
		return
	}

	orders, err := store.ListOrders(r.Context(), h.db, status)
	if err != nil {
		log.Printf("listing orders: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

// updateStatus loads an order and applies a status transition if legal.
func (h *OrdersHandler) updateStatus(w http.ResponseWriter, r *http.Request, next model.OrderStatus) *model.Order {
	id := chi.URLParam(r, "id")
	order, err := store.GetOrder(r.Context(), h.db, id)
	if err != nil {
		log.Printf("getting order %s: %v", sanitizeForLog(id), err)
		respondError(w, http.StatusInternalServerError, "failed to load order")
		return nil
	}
	if order == nil {
		respondError(w, http.StatusNotFound, "order not found")
		return nil
	}
	if !order.Status.CanTransition(next) {
		respondError(w, http.StatusConflict,
			fmt.Sprintf("cannot move order from %s to %s", order.Status, next))
		return nil
	}
	if err := store.UpdateOrderStatus(r.Context(), h.db, id, next); err != nil {
		log.Printf("updating order %s: %v", sanitizeForLog(id), err)
		respondError(w, http.StatusInternalServerError, "failed to update order")
		return nil
	}
	order.Status = next
	return order
}

// Pay handles POST /orders/{id}/pay: payment confirmation from the payment
// gateway collaborator or a manual operator action.
func (h *OrdersHandler) Pay(w http.ResponseWriter, r *http.Request) {
	if order := h.updateStatus(w, r, model.StatusPaid); order != nil {
		respondJSON(w, http.StatusOK, order)
	}
}

// Cancel handles POST /orders/{id}/cancel.
func (h *OrdersHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if order := h.updateStatus(w, r, model.StatusCancelled); order != nil {
		respondJSON(w, http.StatusOK, order)
	}
}

// Validate handles POST /orders/{id}/validate: the operator confirms the
// order and its photos are dispatched into the hot-folder tree. The status
// transition commits before dispatch runs; a dispatch failure is reported
// but not rolled back, and the operator can retry validation because the
// files_copied flag is only set once a run completes.
func (h *OrdersHandler) Validate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	order, err := store.GetOrder(r.Context(), h.db, id)
	if err != nil {
		log.Printf("getting order %s: %v", sanitizeForLog(id), err)
		respondError(w, http.StatusInternalServerError, "failed to load order")
		return
	}
	if order == nil {
		respondError(w, http.StatusNotFound, "order not found")
		return
	}

	// Re-validating an already-validated order is allowed: it retries
	// dispatch, which is a no-op once files_copied is set.
	if order.Status != model.StatusValidated {
		if !order.Status.CanTransition(model.StatusValidated) {
			respondError(w, http.StatusConflict,
				fmt.Sprintf("cannot move order from %s to %s", order.Status, model.StatusValidated))
			return
		}
		if err := store.UpdateOrderStatus(r.Context(), h.db, id, model.StatusValidated); err != nil {
			log.Printf("updating order %s: %v", sanitizeForLog(id), err)
			respondError(w, http.StatusInternalServerError, "failed to update order")
			return
		}
		order.Status = model.StatusValidated
	}

	result, err := h.dispatcher.Dispatch(r.Context(), order.ID)
	if err != nil {
		log.Printf("dispatching order %s: %v", sanitizeForLog(order.ID), err)
		respondError(w, http.StatusInternalServerError,
			fmt.Sprintf("order validated but dispatch failed: %v; retry validation to dispatch again", err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"order":    order,
		"dispatch": result,
	})
}
