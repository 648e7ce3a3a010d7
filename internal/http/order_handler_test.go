package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/getbarcodesolutions-star/GBS/internal/auth"
	"github.com/getbarcodesolutions-star/GBS/internal/domain"
	"github.com/getbarcodesolutions-star/GBS/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type orderServiceMock struct {
	order      *domain.Order
	orders     []domain.Order
	err        error
	placedBy   string
	gotInput   service.PlaceOrderInput
	statusID   string
	gotStatus  domain.OrderStatus
	listOwnFor string
}

func (m *orderServiceMock) PlaceOrder(_ context.Context, identity auth.Identity, input service.PlaceOrderInput) (*domain.Order, error) {
	m.placedBy = identity.UserID
	m.gotInput = input
	if m.err != nil {
		return nil, m.err
	}
	order := *m.order
	order.UserID = identity.UserID
	return &order, nil
}

func (m *orderServiceMock) ListOwnOrders(_ context.Context, identity auth.Identity) ([]domain.Order, error) {
	m.listOwnFor = identity.UserID
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Order, 0)
	for _, o := range m.orders {
		if o.UserID == identity.UserID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *orderServiceMock) ListAllOrders(context.Context) ([]domain.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.orders, nil
}

func (m *orderServiceMock) UpdateStatus(_ context.Context, orderID string, status domain.OrderStatus) error {
	m.statusID = orderID
	m.gotStatus = status
	return m.err
}

type cartServiceMock struct {
	cart *domain.Cart
	err  error
}

func (m *cartServiceMock) GetCart(_ context.Context, userID string) (*domain.Cart, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.cart != nil {
		return m.cart, nil
	}
	return &domain.Cart{UserID: userID}, nil
}

func (m *cartServiceMock) AdjustQuantity(context.Context, string, int64, int) error {
	return m.err
}

func (m *cartServiceMock) SetQuantity(context.Context, string, int64, int) error {
	return m.err
}

func (m *cartServiceMock) RemoveItem(context.Context, string, int64) error {
	return m.err
}

type catalogMock struct {
	products []domain.Product
	err      error
}

func (m *catalogMock) GetAllProducts(context.Context) ([]domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.products, nil
}

func (m *catalogMock) GetProduct(context.Context, int64) (*domain.Product, error) {
	return nil, errors.New("not implemented")
}

func (m *catalogMock) Close() error { return nil }

// --- harness ---

var testVerifier = auth.NewHMACVerifier("test-secret")

type fixture struct {
	orders  *orderServiceMock
	cart    *cartServiceMock
	catalog *catalogMock
	router  http.Handler
}

func newFixture() *fixture {
	f := &fixture{
		orders:  &orderServiceMock{order: &domain.Order{ID: "order-1", Status: domain.OrderStatusPlaced}},
		cart:    &cartServiceMock{},
		catalog: &catalogMock{},
	}
	f.router = NewRouter(
		testVerifier,
		NewOrderHandler(f.orders),
		NewCartHandler(f.cart, f.catalog),
		NewProductHandler(f.catalog),
		5*time.Second,
	)
	return f
}

func (f *fixture) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("token", token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return rec, env
}

func userToken(id string) string {
	return testVerifier.Issue(auth.Identity{UserID: id, Role: auth.RoleUser})
}

func adminToken() string {
	return testVerifier.Issue(auth.Identity{UserID: "admin-1", Role: auth.RoleAdmin})
}

// --- place order ---

func TestPlaceOrder_HTTPSuccess(t *testing.T) {
	f := newFixture()

	rec, env := f.do(t, "POST", "/api/order/place", userToken("u1"), map[string]interface{}{
		"items":   []map[string]interface{}{{"product_id": 1, "quantity": 2}},
		"amount":  2596.0,
		"address": map[string]string{"firstName": "Asha"},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Order Placed", env.Message)
	assert.Equal(t, "u1", f.orders.placedBy)
}

func TestPlaceOrder_ForgedUserIDIgnored(t *testing.T) {
	f := newFixture()

	// a userId field in the payload must not become the owner
	_, env := f.do(t, "POST", "/api/order/place", userToken("honest-user"), map[string]interface{}{
		"userId": "victim-user",
		"items":  []map[string]interface{}{{"product_id": 1, "quantity": 1}},
	})

	assert.True(t, env.Success)
	assert.Equal(t, "honest-user", f.orders.placedBy)
}

func TestPlaceOrder_NoToken(t *testing.T) {
	f := newFixture()

	rec, env := f.do(t, "POST", "/api/order/place", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "please login to continue", env.Message)
	assert.Empty(t, f.orders.placedBy)
}

func TestPlaceOrder_ServiceFailureInBand(t *testing.T) {
	f := newFixture()
	f.orders.err = service.ErrEmptyCart

	rec, env := f.do(t, "POST", "/api/order/place", userToken("u1"), map[string]interface{}{})

	// failures are reported via the success flag, not the status code
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "cart is empty", env.Message)
}

func TestPlaceOrder_MalformedBody(t *testing.T) {
	f := newFixture()

	req := httptest.NewRequest("POST", "/api/order/place", bytes.NewBufferString("{not json"))
	req.Header.Set("token", userToken("u1"))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	assert.False(t, env.Success)
}

// --- list orders ---

func TestUserOrders_ReturnsOnlyOwn(t *testing.T) {
	f := newFixture()
	f.orders.orders = []domain.Order{
		{ID: "o1", UserID: "alice"},
		{ID: "o2", UserID: "bob"},
	}

	_, env := f.do(t, "POST", "/api/order/userorders", userToken("alice"), nil)

	assert.True(t, env.Success)
	assert.Equal(t, "alice", f.orders.listOwnFor)

	raw, _ := json.Marshal(env.Orders)
	var orders []domain.Order
	require.NoError(t, json.Unmarshal(raw, &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "o1", orders[0].ID)
}

func TestListAll_AdminOnly(t *testing.T) {
	f := newFixture()

	rec, env := f.do(t, "POST", "/api/order/list", userToken("u1"), nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, env.Success)
}

func TestListAll_AsAdmin(t *testing.T) {
	f := newFixture()
	f.orders.orders = []domain.Order{{ID: "o1"}, {ID: "o2"}}

	rec, env := f.do(t, "POST", "/api/order/list", adminToken(), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
}

// --- status update ---

func TestUpdateStatus_AsAdmin(t *testing.T) {
	f := newFixture()

	_, env := f.do(t, "POST", "/api/order/status", adminToken(), map[string]string{
		"orderId": "o1",
		"status":  "Shipped",
	})

	assert.True(t, env.Success)
	assert.Equal(t, "Status Updated Successfully", env.Message)
	assert.Equal(t, "o1", f.orders.statusID)
	assert.Equal(t, domain.OrderStatusShipped, f.orders.gotStatus)
}

func TestUpdateStatus_NonAdminRejected(t *testing.T) {
	f := newFixture()

	rec, env := f.do(t, "POST", "/api/order/status", userToken("u1"), map[string]string{
		"orderId": "o1",
		"status":  "Shipped",
	})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, env.Success)
	// service was never reached, status unchanged
	assert.Empty(t, f.orders.statusID)
}

func TestUpdateStatus_InvalidTokenRejected(t *testing.T) {
	f := newFixture()

	rec, _ := f.do(t, "POST", "/api/order/status", "garbage-token", map[string]string{
		"orderId": "o1",
		"status":  "Shipped",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, f.orders.statusID)
}
