package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/getbarcodesolutions-star/GBS/internal/auth"
	"github.com/getbarcodesolutions-star/GBS/internal/domain"
	"github.com/getbarcodesolutions-star/GBS/internal/service"
)

// OrderService is what the handlers need from the order core. The handler
// defines the interface, not the service implementation.
type OrderService interface {
	PlaceOrder(ctx context.Context, identity auth.Identity, input service.PlaceOrderInput) (*domain.Order, error)
	ListOwnOrders(ctx context.Context, identity auth.Identity) ([]domain.Order, error)
	ListAllOrders(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) error
}

type OrderHandler struct {
	orders OrderService
}

func NewOrderHandler(orders OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// PlaceOrderRequestDTO is the checkout submission. Any user identifier in
// the payload is ignored; ownership comes from the verified token.
type PlaceOrderRequestDTO struct {
	Items          []domain.OrderItem `json:"items"`
	Amount         float64            `json:"amount"`
	Address        domain.Address     `json:"address"`
	IdempotencyKey string             `json:"idempotencyKey,omitempty"`
}

type UpdateStatusRequestDTO struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

// POST /api/order/place
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondAuthFailure(w, http.StatusUnauthorized, "please login to continue")
		return
	}

	var req PlaceOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondFailure(w, "invalid JSON body")
		return
	}

	order, err := h.orders.PlaceOrder(r.Context(), identity, service.PlaceOrderInput{
		Items:          req.Items,
		Amount:         req.Amount,
		Address:        req.Address,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		respondFailure(w, err.Error())
		return
	}

	respondSuccess(w, envelope{Message: "Order Placed", Order: order})
}

// POST /api/order/userorders
func (h *OrderHandler) UserOrders(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondAuthFailure(w, http.StatusUnauthorized, "please login to continue")
		return
	}

	orders, err := h.orders.ListOwnOrders(r.Context(), identity)
	if err != nil {
		respondFailure(w, err.Error())
		return
	}

	respondSuccess(w, envelope{Orders: orders})
}

// POST /api/order/list (admin)
func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListAllOrders(r.Context())
	if err != nil {
		respondFailure(w, err.Error())
		return
	}

	respondSuccess(w, envelope{Orders: orders})
}

// POST /api/order/status (admin)
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondFailure(w, "invalid JSON body")
		return
	}

	err := h.orders.UpdateStatus(r.Context(), req.OrderID, domain.OrderStatus(req.Status))
	if err != nil {
		respondFailure(w, err.Error())
		return
	}

	respondSuccess(w, envelope{Message: "Status Updated Successfully"})
}
