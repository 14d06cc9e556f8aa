// Package app wires the persistence backend, the stores and the adapters into
// a runnable application.
package app

import (
	"context"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"github.com/delphine/shop/internal/adapters/httpserver"
	"github.com/delphine/shop/internal/adapters/notify/resend"
	"github.com/delphine/shop/internal/adapters/state"
	"github.com/delphine/shop/internal/domain"
	"github.com/delphine/shop/internal/store"
)

type App struct {
	Catalog    *store.Catalog
	Cart       *store.Cart
	Orders     *store.Orders
	Identity   *store.Identity
	Newsletter *store.Newsletter
	Wishlist   *store.Wishlist
	Checkout   *store.Checkout
	Notifier   domain.OrderNotifier

	repo     *state.Repo
	oauthCfg *oauth2.Config
}

func New(db *gorm.DB) *App {
	repo := state.NewRepo(db)

	notifier := resend.NewGateway(os.Getenv("RESEND_API_KEY"), os.Getenv("RESEND_FROM"))

	a := &App{
		Catalog:    store.NewCatalog(repo),
		Cart:       store.NewCart(repo),
		Orders:     store.NewOrders(repo),
		Identity:   store.NewIdentity(repo),
		Newsletter: store.NewNewsletter(repo),
		Wishlist:   store.NewWishlist(repo),
		Notifier:   notifier,
		repo:       repo,
		oauthCfg:   googleOAuthConfig(),
	}
	a.Checkout = &store.Checkout{
		Cart:     a.Cart,
		Catalog:  a.Catalog,
		Orders:   a.Orders,
		Identity: a.Identity,
		Notifier: notifier,
	}
	return a
}

func googleOAuthConfig() *oauth2.Config {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		return nil
	}
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  baseURL + "/auth/google/callback",
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

func (a *App) Migrate() error {
	return a.repo.Migrate()
}

// Rehydrate loads every store's persisted snapshot, then seeds the demo data
// into any store that came up empty.
func (a *App) Rehydrate(ctx context.Context) {
	a.Catalog.Rehydrate(ctx)
	a.Cart.Rehydrate(ctx)
	a.Orders.Rehydrate(ctx)
	a.Identity.Rehydrate(ctx)
	a.Newsletter.Rehydrate(ctx)
	a.Wishlist.Rehydrate(ctx)

	a.Catalog.Seed(ctx, store.DefaultProducts())
	a.Orders.Seed(ctx, store.DefaultOrders())
	a.Identity.Seed(ctx, store.DefaultCredentials())
	a.Newsletter.Seed(ctx, store.DefaultSubscribers())
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.Catalog, a.Cart, a.Orders, a.Identity, a.Newsletter, a.Wishlist, a.Checkout, a.Notifier, a.oauthCfg)
}
