package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/getbarcodesolutions-star/GBS/internal/auth"
	"github.com/getbarcodesolutions-star/GBS/internal/domain"
	"github.com/getbarcodesolutions-star/GBS/internal/pricing"
	"github.com/getbarcodesolutions-star/GBS/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const testingPaymentMethod = "Testing order"

type OrderService struct {
	orders   repository.OrderRepository
	outbox   repository.OutboxRepository
	catalog  repository.CatalogRepository
	cart     *CartService
	validate *validator.Validate
}

func NewOrderService(
	orders repository.OrderRepository,
	outbox repository.OutboxRepository,
	catalog repository.CatalogRepository,
	cart *CartService,
) *OrderService {
	return &OrderService{
		orders:   orders,
		outbox:   outbox,
		catalog:  catalog,
		cart:     cart,
		validate: validator.New(),
	}
}

// PlaceOrderInput is the submission payload. It carries no user identifier:
// ownership always comes from the authenticated identity.
type PlaceOrderInput struct {
	Items          []domain.OrderItem
	Amount         float64
	Address        domain.Address
	IdempotencyKey string
}

// PlaceOrder turns the submitted cart snapshot into a persisted order.
// Line items and the amount are rebuilt server-side from the catalog; the
// client-computed amount is informational only.
func (s *OrderService) PlaceOrder(ctx context.Context, identity auth.Identity, input PlaceOrderInput) (*domain.Order, error) {
	if input.IdempotencyKey != "" {
		existing, err := s.orders.FindByIdempotencyKey(ctx, input.IdempotencyKey)
		if err == nil {
			slog.Info("duplicate order submission",
				"idempotency_key", input.IdempotencyKey, "order_id", existing.ID)
			return existing, nil
		}
		if !errors.Is(err, repository.ErrOrderNotFound) {
			return nil, fmt.Errorf("failed to check idempotency: %w", err)
		}
	}

	quantities := make(map[int64]int, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity > 0 {
			quantities[item.ProductID] += domain.ClampQuantity(item.Quantity)
		}
	}
	if len(quantities) == 0 {
		return nil, ErrEmptyCart
	}

	if err := s.validate.Struct(input.Address); err != nil {
		return nil, &ValidationError{Message: "invalid shipping address: " + err.Error()}
	}

	catalog, err := s.catalog.GetAllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	items := freezeLineItems(quantities, catalog)
	if len(items) == 0 {
		// every submitted product has left the catalog
		return nil, ErrEmptyCart
	}

	totals := pricing.Calculate(quantities, catalog)
	if math.Abs(totals.GrandTotal-input.Amount) > 0.01 {
		slog.Warn("client amount mismatch, using server total",
			"user_id", identity.UserID,
			"client_amount", input.Amount,
			"server_amount", totals.GrandTotal)
	}

	order := &domain.Order{
		ID:             uuid.NewString(),
		UserID:         identity.UserID,
		Items:          items,
		Address:        input.Address,
		Amount:         totals.GrandTotal,
		PaymentMethod:  testingPaymentMethod,
		Payment:        false,
		Status:         domain.OrderStatusPlaced,
		IdempotencyKey: input.IdempotencyKey,
		CreatedAt:      time.Now(),
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, err
	}

	s.writeOutboxEvent(ctx, order)

	// Cart clearing is not transactional with order creation. The order
	// stands even if the clear fails; DeleteCart is idempotent and the
	// outbox event lets downstream reconcile.
	if err := s.cart.ClearCart(ctx, identity.UserID); err != nil {
		slog.Error("failed to clear cart after order", "user_id", identity.UserID, "order_id", order.ID, "error", err)
	}

	return order, nil
}

func (s *OrderService) ListOwnOrders(ctx context.Context, identity auth.Identity) ([]domain.Order, error) {
	return s.orders.FindByUser(ctx, identity.UserID)
}

func (s *OrderService) ListAllOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.FindAll(ctx)
}

// UpdateStatus overwrites an order's status. The target status must be a
// known one, but any known-to-known move is allowed, including backwards.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	if orderID == "" {
		return &ValidationError{Message: "orderId is required"}
	}
	if !status.IsValid() {
		return ErrUnknownStatus
	}

	return s.orders.UpdateStatus(ctx, orderID, status)
}

// freezeLineItems copies catalog products into order items so later catalog
// edits never touch placed orders. Quantities for unknown products are
// dropped.
func freezeLineItems(quantities map[int64]int, catalog []domain.Product) []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(quantities))
	for _, p := range catalog {
		qty := quantities[p.ID]
		if qty <= 0 {
			continue
		}
		items = append(items, domain.OrderItem{
			ProductID:   p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			ImageURL:    p.ImageURL,
			Quantity:    qty,
		})
	}
	return items
}

func (s *OrderService) writeOutboxEvent(ctx context.Context, order *domain.Order) {
	payload, err := json.Marshal(order)
	if err != nil {
		slog.Error("failed to marshal order event", "order_id", order.ID, "error", err)
		return
	}

	event := &domain.OutboxEvent{
		ID:        uuid.NewString(),
		OrderID:   order.ID,
		UserID:    order.UserID,
		Type:      domain.EventOrderPlaced,
		Payload:   payload,
		CreatedAt: time.Now(),
	}

	if err := s.outbox.InsertEvent(ctx, event); err != nil {
		slog.Error("failed to write outbox event", "order_id", order.ID, "error", err)
	}
}
