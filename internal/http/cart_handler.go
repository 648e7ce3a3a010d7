package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/getbarcodesolutions-star/GBS/internal/domain"
	"github.com/getbarcodesolutions-star/GBS/internal/pricing"
	"github.com/getbarcodesolutions-star/GBS/internal/repository"
)

type CartService interface {
	GetCart(ctx context.Context, userID string) (*domain.Cart, error)
	AdjustQuantity(ctx context.Context, userID string, productID int64, delta int) error
	SetQuantity(ctx context.Context, userID string, productID int64, quantity int) error
	RemoveItem(ctx context.Context, userID string, productID int64) error
}

type CartHandler struct {
	cart    CartService
	catalog repository.CatalogRepository
}

func NewCartHandler(cart CartService, catalog repository.CatalogRepository) *CartHandler {
	return &CartHandler{cart: cart, catalog: catalog}
}

type AdjustItemRequestDTO struct {
	ProductID int64 `json:"productId"`
	Delta     *int  `json:"delta,omitempty"`
}

type SetQuantityRequestDTO struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// POST /api/cart/get
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondAuthFailure(w, http.StatusUnauthorized, "please login to continue")
		return
	}

	cart, err := h.cart.GetCart(r.Context(), identity.UserID)
	if err != nil {
		respondFailure(w, err.Error())
		return
	}

	respondSuccess(w, envelope{Cart: cart})
}

// POST /api/cart/add adjusts an item quantity by a signed delta, default +1.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondAuthFailure(w, http.StatusUnauthorized, "please login to continue")
		return
	}

	var req AdjustItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondFailure(w, "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondFailure(w, "productId must be positive")
		return
	}

	delta := 1
	if req.Delta != nil {
		delta = *req.Delta
	}

	if err := h.cart.AdjustQuantity(r.Context(), identity.UserID, req.ProductID, delta); err != nil {
		respondFailure(w, err.Error())
		return
	}

	cart, err := h.cart.GetCart(r.Context(), identity.UserID)
	if err != nil {
		respondFailure(w, err.Error())
		return
	}

	respondSuccess(w, envelope{Cart: cart})
}

// POST /api/cart/remove
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondAuthFailure(w, http.StatusUnauthorized, "please login to continue")
		return
	}

	var req AdjustItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondFailure(w, "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondFailure(w, "productId must be positive")
		return
	}

	if err := h.cart.RemoveItem(r.Context(), identity.UserID, req.ProductID); err != nil {
		respondFailure(w, err.Error())
		return
	}

	cart, err := h.cart.GetCart(r.Context(), identity.UserID)
	if err != nil {
		respondFailure(w, err.Error())
		return
	}

	respondSuccess(w, envelope{Cart: cart})
}

// POST /api/cart/total returns totals computed from the cart mirror
// against current catalog prices.
func (h *CartHandler) Totals(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondAuthFailure(w, http.StatusUnauthorized, "please login to continue")
		return
	}

	cart, err := h.cart.GetCart(r.Context(), identity.UserID)
	if err != nil {
		respondFailure(w, err.Error())
		return
	}

	catalog, err := h.catalog.GetAllProducts(r.Context())
	if err != nil {
		respondFailure(w, err.Error())
		return
	}

	totals := pricing.Calculate(cart.Quantities(), catalog)
	respondSuccess(w, envelope{Totals: &totals})
}

// POST /api/cart/update sets an absolute quantity (manual entry path).
// Out-of-range values are clamped, never an error.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		respondAuthFailure(w, http.StatusUnauthorized, "please login to continue")
		return
	}

	var req SetQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondFailure(w, "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondFailure(w, "productId must be positive")
		return
	}

	if err := h.cart.SetQuantity(r.Context(), identity.UserID, req.ProductID, req.Quantity); err != nil {
		respondFailure(w, err.Error())
		return
	}

	cart, err := h.cart.GetCart(r.Context(), identity.UserID)
	if err != nil {
		respondFailure(w, err.Error())
		return
	}

	respondSuccess(w, envelope{Cart: cart})
}
