// Package httpserver exposes the store layer as a JSON API. It is the
// presentation-facing collaborator: all business rules live in the stores,
// the handlers translate requests and surface store results.
package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/oauth2"

	"github.com/delphine/shop/internal/domain"
	"github.com/delphine/shop/internal/shipping"
	"github.com/delphine/shop/internal/store"
)

type Server struct {
	mux *http.ServeMux

	catalog    *store.Catalog
	cart       *store.Cart
	orders     *store.Orders
	identity   *store.Identity
	newsletter *store.Newsletter
	wishlist   *store.Wishlist
	checkout   *store.Checkout
	notifier   domain.OrderNotifier
	oauthCfg   *oauth2.Config
}

func New(catalog *store.Catalog, cart *store.Cart, orders *store.Orders, identity *store.Identity,
	newsletter *store.Newsletter, wishlist *store.Wishlist, checkout *store.Checkout,
	notifier domain.OrderNotifier, oauthCfg *oauth2.Config) http.Handler {

	s := &Server{
		mux:        http.NewServeMux(),
		catalog:    catalog,
		cart:       cart,
		orders:     orders,
		identity:   identity,
		newsletter: newsletter,
		wishlist:   wishlist,
		checkout:   checkout,
		notifier:   notifier,
		oauthCfg:   oauthCfg,
	}
	s.routes()
	return Chain(s.mux,
		RateLimit(60),
		RequestID,
		Recovery,
		Logging,
	)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/products", s.apiProducts)
	s.mux.HandleFunc("/api/products/", s.apiProductBySlug)
	s.mux.HandleFunc("/api/collections", s.apiCollections)
	s.mux.HandleFunc("/api/shipping-rates", s.apiShippingRates)

	s.mux.HandleFunc("/api/cart", s.apiCart)
	s.mux.HandleFunc("/api/cart/update", s.apiCartUpdate)
	s.mux.HandleFunc("/api/cart/remove", s.apiCartRemove)
	s.mux.HandleFunc("/api/cart/clear", s.apiCartClear)
	s.mux.HandleFunc("/api/cart/open", s.apiCartOpen)
	s.mux.HandleFunc("/api/cart/close", s.apiCartClose)

	s.mux.HandleFunc("/api/wishlist", s.apiWishlist)
	s.mux.HandleFunc("/api/wishlist/toggle", s.apiWishlistToggle)
	s.mux.HandleFunc("/api/wishlist/clear", s.apiWishlistClear)

	s.mux.HandleFunc("/api/newsletter/subscribe", s.apiNewsletterSubscribe)

	s.mux.HandleFunc("/api/auth/login", s.apiLogin)
	s.mux.HandleFunc("/api/auth/register", s.apiRegister)
	s.mux.HandleFunc("/api/auth/logout", s.apiLogout)
	s.mux.HandleFunc("/api/auth/me", s.apiMe)
	s.mux.HandleFunc("/api/auth/profile", s.apiProfile)
	s.mux.HandleFunc("/api/auth/password", s.apiChangePassword)
	if s.oauthCfg != nil {
		s.mux.HandleFunc("/auth/google/login", s.handleGoogleLogin)
		s.mux.HandleFunc("/auth/google/callback", s.handleGoogleCallback)
	}

	s.mux.HandleFunc("/api/checkout", s.apiCheckout)
	s.mux.HandleFunc("/api/orders", s.apiUserOrders)
	s.mux.HandleFunc("/api/orders/", s.apiOrderByID)

	s.mux.HandleFunc("/admin/api/products", s.adminProducts)
	s.mux.HandleFunc("/admin/api/products/", s.adminProductByID)
	s.mux.HandleFunc("/admin/api/products/bulk-stock", s.adminBulkStock)
	s.mux.HandleFunc("/admin/api/products/low-stock", s.adminLowStock)
	s.mux.HandleFunc("/admin/api/orders", s.adminOrders)
	s.mux.HandleFunc("/admin/api/orders/", s.adminOrderByID)
	s.mux.HandleFunc("/admin/api/subscribers", s.adminSubscribers)
	s.mux.HandleFunc("/admin/api/subscribers/", s.adminSubscriberByID)
	s.mux.HandleFunc("/admin/api/stats", s.adminStats)
	s.mux.HandleFunc("/admin/api/analytics", s.adminAnalytics)
	s.mux.HandleFunc("/admin/api/top-customers", s.adminTopCustomers)
	s.mux.HandleFunc("/admin/export/orders.csv", s.adminExportOrdersCSV)
	s.mux.HandleFunc("/admin/export/orders.xlsx", s.adminExportOrdersXLSX)
	s.mux.HandleFunc("/admin/export/subscribers.csv", s.adminExportSubscribersCSV)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"success": false, "error": msg})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

// --- catalog ---

func (s *Server) apiProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	q := r.URL.Query()
	var products []domain.Product
	switch {
	case q.Get("q") != "":
		// Storefront search stays within the active catalog.
		products = []domain.Product{}
		for _, p := range s.catalog.Search(q.Get("q")) {
			if p.Active {
				products = append(products, p)
			}
		}
	case q.Get("featured") == "1" || q.Get("featured") == "true":
		products = s.catalog.Featured()
	case q.Get("category") != "":
		products = s.catalog.ByCategory(q.Get("category"))
	default:
		products = s.catalog.Active()
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (s *Server) apiProductBySlug(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimPrefix(r.URL.Path, "/api/products/")
	if slug == "" {
		writeErr(w, http.StatusNotFound, "product not found")
		return
	}
	p, ok := s.catalog.BySlug(slug)
	if !ok {
		writeErr(w, http.StatusNotFound, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) apiCollections(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"collections": store.Collections()})
}

func (s *Server) apiShippingRates(w http.ResponseWriter, r *http.Request) {
	country := r.URL.Query().Get("country")
	writeJSON(w, http.StatusOK, map[string]any{"rates": shipping.RatesFor(country)})
}

// --- cart ---

func (s *Server) cartState() map[string]any {
	return map[string]any{
		"items":     s.cart.Items(),
		"isOpen":    s.cart.IsOpen(),
		"itemCount": s.cart.ItemCount(),
		"subtotal":  s.cart.Subtotal(),
	}
}

func (s *Server) apiCart(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.cartState())
	case http.MethodPost:
		var in struct {
			ProductID string `json:"productId"`
			Color     string `json:"color"`
			Size      string `json:"size"`
			Quantity  int    `json:"quantity"`
		}
		if !decode(w, r, &in) {
			return
		}
		p, ok := s.catalog.ByID(in.ProductID)
		if !ok {
			writeErr(w, http.StatusNotFound, "product not found")
			return
		}
		// The line carries a value snapshot of the product, so later catalog
		// edits leave it untouched.
		s.cart.AddItem(r.Context(), domain.CartItem{
			ProductID:    p.ID,
			ProductName:  p.Name,
			ProductImage: p.PrimaryImage(),
			VariantID:    domain.VariantID(p.ID, in.Color, in.Size),
			VariantName:  in.Color + " / " + in.Size,
			Size:         in.Size,
			Color:        in.Color,
			Price:        p.Price,
			Quantity:     in.Quantity,
		})
		writeJSON(w, http.StatusOK, s.cartState())
	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) apiCartUpdate(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var in struct {
		VariantID string `json:"variantId"`
		Quantity  int    `json:"quantity"`
	}
	if !decode(w, r, &in) {
		return
	}
	s.cart.UpdateQuantity(r.Context(), in.VariantID, in.Quantity)
	writeJSON(w, http.StatusOK, s.cartState())
}

func (s *Server) apiCartRemove(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var in struct {
		VariantID string `json:"variantId"`
	}
	if !decode(w, r, &in) {
		return
	}
	s.cart.RemoveItem(r.Context(), in.VariantID)
	writeJSON(w, http.StatusOK, s.cartState())
}

func (s *Server) apiCartClear(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	s.cart.Clear(r.Context())
	writeJSON(w, http.StatusOK, s.cartState())
}

func (s *Server) apiCartOpen(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	s.cart.Open(r.Context())
	writeJSON(w, http.StatusOK, s.cartState())
}

func (s *Server) apiCartClose(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	s.cart.Close(r.Context())
	writeJSON(w, http.StatusOK, s.cartState())
}

// --- wishlist ---

func (s *Server) apiWishlist(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"items": s.wishlist.Items(), "count": s.wishlist.Count()})
}

func (s *Server) apiWishlistToggle(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var in struct {
		ProductID string `json:"productId"`
	}
	if !decode(w, r, &in) {
		return
	}
	inList := s.wishlist.Toggle(r.Context(), in.ProductID)
	writeJSON(w, http.StatusOK, map[string]any{"inWishlist": inList, "count": s.wishlist.Count()})
}

func (s *Server) apiWishlistClear(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	s.wishlist.Clear(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"items": []string{}, "count": 0})
}

// --- newsletter ---

func (s *Server) apiNewsletterSubscribe(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var in struct {
		Email string `json:"email"`
	}
	if !decode(w, r, &in) {
		return
	}
	if err := s.newsletter.Subscribe(r.Context(), in.Email); err != nil {
		writeErr(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// --- checkout and orders ---

func (s *Server) apiCheckout(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var in store.CheckoutInput
	if !decode(w, r, &in) {
		return
	}
	order, err := s.checkout.Submit(r.Context(), in)
	if err != nil {
		writeErr(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "order": order})
}

func (s *Server) apiUserOrders(w http.ResponseWriter, r *http.Request) {
	u, ok := s.identity.Current()
	if !ok {
		writeErr(w, http.StatusUnauthorized, "not logged in")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": s.orders.UserOrders(u.Email)})
}

func (s *Server) apiOrderByID(w http.ResponseWriter, r *http.Request) {
	orderID := strings.TrimPrefix(r.URL.Path, "/api/orders/")
	o, ok := s.orders.ByOrderID(orderID)
	if !ok {
		writeErr(w, http.StatusNotFound, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func limitParam(r *http.Request, def int) int {
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return def
}
