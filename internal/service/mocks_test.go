package service

import (
	"context"
	"sync"
	"time"

	"github.com/getbarcodesolutions-star/GBS/internal/cache"
	"github.com/getbarcodesolutions-star/GBS/internal/domain"
	"github.com/getbarcodesolutions-star/GBS/internal/repository"
)

// --- cart repository mock ---

type mockCartRepo struct {
	m     sync.RWMutex
	carts map[string]*domain.Cart
	err   error
}

func newMockCartRepo() *mockCartRepo {
	return &mockCartRepo{carts: make(map[string]*domain.Cart)}
}

func (m *mockCartRepo) GetCart(_ context.Context, userID string) (*domain.Cart, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	cart, ok := m.carts[userID]
	if !ok {
		return nil, repository.ErrCartNotFound
	}
	copied := *cart
	copied.Items = append([]domain.CartItem(nil), cart.Items...)
	return &copied, nil
}

func (m *mockCartRepo) SetItemQuantity(_ context.Context, userID string, productID int64, quantity int) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	cart, ok := m.carts[userID]
	if !ok {
		if quantity <= 0 {
			return nil
		}
		m.carts[userID] = &domain.Cart{
			UserID: userID,
			Items:  []domain.CartItem{{ProductID: productID, Quantity: quantity}},
		}
		return nil
	}
	for i, item := range cart.Items {
		if item.ProductID == productID {
			if quantity <= 0 {
				cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			} else {
				cart.Items[i].Quantity = quantity
			}
			return nil
		}
	}
	if quantity > 0 {
		cart.Items = append(cart.Items, domain.CartItem{ProductID: productID, Quantity: quantity})
	}
	return nil
}

func (m *mockCartRepo) RemoveItem(_ context.Context, userID string, productID int64) error {
	return m.SetItemQuantity(context.Background(), userID, productID, 0)
}

func (m *mockCartRepo) DeleteCart(_ context.Context, userID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.carts, userID)
	return nil
}

func (m *mockCartRepo) quantity(userID string, productID int64) int {
	m.m.RLock()
	defer m.m.RUnlock()
	cart, ok := m.carts[userID]
	if !ok {
		return 0
	}
	return cart.Quantity(productID)
}

// --- cache mock ---

type mockCache struct {
	m    sync.RWMutex
	cart *domain.Cart
	err  error
}

func (m *mockCache) Get(context.Context, string) (*domain.Cart, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.cart == nil {
		return nil, cache.ErrCacheMiss
	}
	return m.cart, nil
}

func (m *mockCache) Set(_ context.Context, _ string, cart *domain.Cart) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.cart = cart
	return m.err
}

func (m *mockCache) Delete(context.Context, string) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.cart = nil
	return m.err
}

// --- order repository mock ---

type mockOrderRepo struct {
	m      sync.RWMutex
	orders []domain.Order
	err    error
}

func (m *mockOrderRepo) Insert(_ context.Context, order *domain.Order) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	// newest first, like the mongo query
	m.orders = append([]domain.Order{*order}, m.orders...)
	return nil
}

func (m *mockOrderRepo) FindByUser(_ context.Context, userID string) ([]domain.Order, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Order, 0)
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockOrderRepo) FindAll(context.Context) ([]domain.Order, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]domain.Order(nil), m.orders...), nil
}

func (m *mockOrderRepo) FindByIdempotencyKey(_ context.Context, key string) (*domain.Order, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, o := range m.orders {
		if o.IdempotencyKey != "" && o.IdempotencyKey == key {
			copied := o
			return &copied, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, orderID string, status domain.OrderStatus) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	for i := range m.orders {
		if m.orders[i].ID == orderID {
			m.orders[i].Status = status
			return nil
		}
	}
	return repository.ErrOrderNotFound
}

func (m *mockOrderRepo) count() int {
	m.m.RLock()
	defer m.m.RUnlock()
	return len(m.orders)
}

// --- outbox mock ---

type mockOutbox struct {
	m      sync.Mutex
	events []domain.OutboxEvent
	err    error
}

func (m *mockOutbox) InsertEvent(_ context.Context, event *domain.OutboxEvent) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, *event)
	return nil
}

func (m *mockOutbox) UnprocessedEvents(context.Context, int64) ([]domain.OutboxEvent, error) {
	m.m.Lock()
	defer m.m.Unlock()
	out := make([]domain.OutboxEvent, 0)
	for _, e := range m.events {
		if e.ProcessedAt == nil {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockOutbox) MarkEventProcessed(_ context.Context, eventID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	now := nowPtr()
	for i := range m.events {
		if m.events[i].ID == eventID {
			m.events[i].ProcessedAt = now
		}
	}
	return nil
}

func nowPtr() *time.Time {
	now := time.Now()
	return &now
}

// --- catalog mock ---

type mockCatalog struct {
	products []domain.Product
	err      error
}

func (m *mockCatalog) GetAllProducts(context.Context) ([]domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.products, nil
}

func (m *mockCatalog) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, p := range m.products {
		if p.ID == id {
			copied := p
			return &copied, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (m *mockCatalog) Close() error { return nil }
