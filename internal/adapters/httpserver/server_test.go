package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delphine/shop/internal/adapters/httpserver"
	"github.com/delphine/shop/internal/domain"
	"github.com/delphine/shop/internal/store"
)

type memState struct {
	mu sync.Mutex
	m  map[string][]byte
}

func (s *memState) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func (s *memState) Save(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = append([]byte(nil), value...)
	return nil
}

type fixture struct {
	srv      *httptest.Server
	identity *store.Identity
	orders   *store.Orders
	catalog  *store.Catalog
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	state := &memState{m: map[string][]byte{}}

	catalog := store.NewCatalog(state)
	cart := store.NewCart(state)
	orders := store.NewOrders(state)
	identity := store.NewIdentity(state)
	newsletter := store.NewNewsletter(state)
	wishlist := store.NewWishlist(state)

	catalog.Seed(ctx, store.DefaultProducts())
	identity.Seed(ctx, store.DefaultCredentials())
	newsletter.Seed(ctx, store.DefaultSubscribers())

	checkout := &store.Checkout{Cart: cart, Catalog: catalog, Orders: orders, Identity: identity}

	handler := httpserver.New(catalog, cart, orders, identity, newsletter, wishlist, checkout, nil, nil)
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &fixture{srv: srv, identity: identity, orders: orders, catalog: catalog}
}

func (f *fixture) postJSON(t *testing.T, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	res, err := http.Post(f.srv.URL+path, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return res, decodeBody(t, res)
}

func (f *fixture) getJSON(t *testing.T, path string) (*http.Response, map[string]any) {
	t.Helper()
	res, err := http.Get(f.srv.URL + path)
	require.NoError(t, err)
	return res, decodeBody(t, res)
}

func decodeBody(t *testing.T, res *http.Response) map[string]any {
	t.Helper()
	defer res.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return out
}

func (f *fixture) loginAdmin(t *testing.T) {
	t.Helper()
	res, _ := f.postJSON(t, "/api/auth/login", map[string]string{
		"email": "admin@delphine.com", "password": "admin123",
	})
	require.Equal(t, http.StatusOK, res.StatusCode)
}

func TestProductEndpoints(t *testing.T) {
	f := newFixture(t)

	res, body := f.getJSON(t, "/api/products")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotEmpty(t, body["products"])

	res, _ = f.getJSON(t, "/api/products/coastal-breeze-bikini")
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = f.getJSON(t, "/api/products/no-such-slug")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, body = f.getJSON(t, "/api/collections")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Len(t, body["collections"], 4)
}

func TestShippingRatesEndpoint(t *testing.T) {
	f := newFixture(t)

	res, body := f.getJSON(t, "/api/shipping-rates?country=AL")

	assert.Equal(t, http.StatusOK, res.StatusCode)
	rates := body["rates"].([]any)
	require.Len(t, rates, 2)
	assert.Equal(t, "al-std", rates[0].(map[string]any)["id"])
}

func TestCheckoutFlow(t *testing.T) {
	f := newFixture(t)

	res, body := f.postJSON(t, "/api/cart", map[string]any{
		"productId": "prod-1", "color": "Seafoam", "size": "M", "quantity": 2,
	})
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, float64(2), body["itemCount"])
	assert.Equal(t, true, body["isOpen"])

	res, body = f.postJSON(t, "/api/checkout", map[string]any{
		"email": "maria@example.com",
		"name":  "Maria Koci",
		"address": map[string]string{
			"firstName": "Maria", "lastName": "Koci",
			"address": "Rruga e Durresit 45", "city": "Tirana",
			"country": "AL", "postalCode": "1016",
		},
		"shippingRateId": "al-exp",
	})
	require.Equal(t, http.StatusOK, res.StatusCode)
	order := body["order"].(map[string]any)
	orderID := order["orderId"].(string)
	assert.True(t, strings.HasPrefix(orderID, "DLP-"))
	assert.InDelta(t, 2*89+6.99, order["total"].(float64), 0.001)

	// Confirmation lookup and cart reset.
	res, body = f.getJSON(t, "/api/orders/"+orderID)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, orderID, body["orderId"])

	res, body = f.getJSON(t, "/api/cart")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, float64(0), body["itemCount"])

	p, _ := f.catalog.ByID("prod-1")
	assert.Equal(t, 22, p.Stock)
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	f := newFixture(t)

	res, body := f.postJSON(t, "/api/checkout", map[string]any{
		"email": "maria@example.com", "name": "Maria",
		"address": map[string]string{"country": "AL"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestNewsletterSubscribeEndpoint(t *testing.T) {
	f := newFixture(t)

	res, _ := f.postJSON(t, "/api/newsletter/subscribe", map[string]string{"email": "new@example.com"})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, body := f.postJSON(t, "/api/newsletter/subscribe", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestAuthEndpoints(t *testing.T) {
	f := newFixture(t)

	res, body := f.getJSON(t, "/api/auth/me")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, false, body["isAuthenticated"])

	res, _ = f.postJSON(t, "/api/auth/login", map[string]string{"email": "demo@delphine.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, body = f.postJSON(t, "/api/auth/login", map[string]string{"email": "demo@delphine.com", "password": "demo123"})
	require.Equal(t, http.StatusOK, res.StatusCode)
	user := body["user"].(map[string]any)
	assert.Equal(t, "demo@delphine.com", user["email"])

	res, body = f.getJSON(t, "/api/auth/me")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, true, body["isAuthenticated"])

	res, _ = f.postJSON(t, "/api/auth/logout", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	res, body = f.getJSON(t, "/api/auth/me")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, false, body["isAuthenticated"])
}

func TestAdminEndpointsRequireAdmin(t *testing.T) {
	f := newFixture(t)

	res, _ := f.getJSON(t, "/admin/api/stats")
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = f.postJSON(t, "/api/auth/login", map[string]string{"email": "demo@delphine.com", "password": "demo123"})
	require.Equal(t, http.StatusOK, res.StatusCode)
	res, _ = f.getJSON(t, "/admin/api/stats")
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	f.loginAdmin(t)
	res, body := f.getJSON(t, "/admin/api/stats")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "orders")
	assert.Contains(t, body, "products")
}

func TestAdminOrderActions(t *testing.T) {
	f := newFixture(t)
	f.loginAdmin(t)
	placed := f.orders.AddOrder(context.Background(), domain.Order{
		UserEmail: "maria@example.com", UserName: "Maria",
		Total: 50, PaymentStatus: domain.PaymentStatusPaid, Status: domain.OrderStatusProcessing,
	})

	res, body := f.postJSON(t, fmt.Sprintf("/admin/api/orders/%s/tracking", placed.OrderID), map[string]string{"trackingNumber": "TRK-1"})
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "shipped", body["status"])
	assert.Equal(t, "TRK-1", body["trackingNumber"])

	res, body = f.postJSON(t, fmt.Sprintf("/admin/api/orders/%s/status", placed.OrderID), map[string]string{"status": "delivered"})
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "delivered", body["status"])

	res, _ = f.postJSON(t, fmt.Sprintf("/admin/api/orders/%s/status", placed.OrderID), map[string]string{"status": "teleported"})
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)

	res, _ = f.postJSON(t, "/admin/api/orders/DLP-MISSING/status", map[string]string{"status": "shipped"})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestAdminProductLifecycle(t *testing.T) {
	f := newFixture(t)
	f.loginAdmin(t)

	res, body := f.postJSON(t, "/admin/api/products", map[string]any{
		"name": "Riviera Wrap Top", "price": 65, "stock": 10, "active": true,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	id := body["id"].(string)

	res, body = f.postJSON(t, "/admin/api/products/"+id+"/toggle-featured", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, true, body["featured"])

	res, body = f.postJSON(t, "/admin/api/products/"+id+"/stock", map[string]int{"stock": 3})
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, float64(3), body["stock"])

	req, err := http.NewRequest(http.MethodDelete, f.srv.URL+"/admin/api/products/"+id, nil)
	require.NoError(t, err)
	delRes, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	delRes.Body.Close()
	assert.Equal(t, http.StatusOK, delRes.StatusCode)
	_, ok := f.catalog.ByID(id)
	assert.False(t, ok)
}

func TestAdminExports(t *testing.T) {
	f := newFixture(t)
	f.loginAdmin(t)

	res, err := http.Get(f.srv.URL + "/admin/export/orders.csv")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "text/csv", res.Header.Get("Content-Type"))

	res, err = http.Get(f.srv.URL + "/admin/export/orders.xlsx")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.Header.Get("Content-Type"), "spreadsheetml")
}
