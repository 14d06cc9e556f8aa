package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/delphine/shop/internal/domain"
)

const catalogKey = "delphine-products"

// Catalog is the product registry. Mutations on unknown ids report false and
// change nothing; callers decide whether that surfaces as a 404.
type Catalog struct {
	mu    sync.RWMutex
	state Persister

	products []domain.Product
}

func NewCatalog(state Persister) *Catalog { return &Catalog{state: state} }

func (c *Catalog) Rehydrate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var products []domain.Product
	if rehydrate(ctx, c.state, catalogKey, &products) {
		c.products = products
	}
}

// Seed inserts the given products only when the registry is empty.
func (c *Catalog) Seed(ctx context.Context, products []domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.products) > 0 {
		return
	}
	c.products = append(c.products, products...)
	c.persist(ctx)
}

func (c *Catalog) persist(ctx context.Context) {
	persist(ctx, c.state, catalogKey, c.products)
}

func (c *Catalog) All() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) ByID(id string) (domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func (c *Catalog) BySlug(slug string) (domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.products {
		if p.Slug == slug {
			return p, true
		}
	}
	return domain.Product{}, false
}

func (c *Catalog) Active() []domain.Product {
	return c.filter(func(p domain.Product) bool { return p.Active })
}

func (c *Catalog) Featured() []domain.Product {
	return c.filter(func(p domain.Product) bool { return p.Featured && p.Active })
}

// Search matches a case-insensitive substring over name, description and
// category.
func (c *Catalog) Search(query string) []domain.Product {
	q := strings.ToLower(query)
	return c.filter(func(p domain.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Category), q)
	})
}

func (c *Catalog) ByCategory(category string) []domain.Product {
	return c.filter(func(p domain.Product) bool { return p.Category == category && p.Active })
}

func (c *Catalog) LowStock(threshold int) []domain.Product {
	return c.filter(func(p domain.Product) bool { return p.Stock <= threshold && p.Active })
}

func (c *Catalog) filter(keep func(domain.Product) bool) []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := []domain.Product{}
	for _, p := range c.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// Add registers a product, assigning id, sold=0 and createdAt. An empty slug
// is derived from the name.
func (c *Catalog) Add(ctx context.Context, p domain.Product) domain.Product {
	p.ID = uuid.NewString()
	p.Sold = 0
	p.CreatedAt = time.Now()
	if p.Slug == "" {
		p.Slug = Slugify(p.Name)
	}
	if p.Stock < 0 {
		p.Stock = 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = append(c.products, p)
	c.persist(ctx)
	return p
}

// ProductPatch carries the fields an admin edit may change; nil fields are
// left untouched (shallow merge).
type ProductPatch struct {
	Name         *string         `json:"name"`
	Slug         *string         `json:"slug"`
	Description  *string         `json:"description"`
	Price        *float64        `json:"price"`
	ComparePrice *float64        `json:"comparePrice"`
	Images       *[]string       `json:"images"`
	Category     *string         `json:"category"`
	Colors       *[]domain.Color `json:"colors"`
	Sizes        *[]string       `json:"sizes"`
	Material     *string         `json:"material"`
	Care         *[]string       `json:"care"`
	Stock        *int            `json:"stock"`
	Featured     *bool           `json:"featured"`
	Active       *bool           `json:"active"`
}

func (c *Catalog) Update(ctx context.Context, id string, patch ProductPatch) bool {
	return c.mutate(ctx, id, func(p *domain.Product) {
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Slug != nil {
			p.Slug = *patch.Slug
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.Price != nil {
			p.Price = *patch.Price
		}
		if patch.ComparePrice != nil {
			p.ComparePrice = *patch.ComparePrice
		}
		if patch.Images != nil {
			p.Images = *patch.Images
		}
		if patch.Category != nil {
			p.Category = *patch.Category
		}
		if patch.Colors != nil {
			p.Colors = *patch.Colors
		}
		if patch.Sizes != nil {
			p.Sizes = *patch.Sizes
		}
		if patch.Material != nil {
			p.Material = *patch.Material
		}
		if patch.Care != nil {
			p.Care = *patch.Care
		}
		if patch.Stock != nil {
			p.Stock = max(0, *patch.Stock)
		}
		if patch.Featured != nil {
			p.Featured = *patch.Featured
		}
		if patch.Active != nil {
			p.Active = *patch.Active
		}
	})
}

// Delete removes the product outright. Orders keep their own snapshots, so no
// referential check is made.
func (c *Catalog) Delete(ctx context.Context, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, p := range c.products {
		if p.ID == id {
			c.products = append(c.products[:i], c.products[i+1:]...)
			c.persist(ctx)
			return true
		}
	}
	return false
}

func (c *Catalog) ToggleActive(ctx context.Context, id string) bool {
	return c.mutate(ctx, id, func(p *domain.Product) { p.Active = !p.Active })
}

func (c *Catalog) ToggleFeatured(ctx context.Context, id string) bool {
	return c.mutate(ctx, id, func(p *domain.Product) { p.Featured = !p.Featured })
}

// SetStock sets the absolute stock level, clamped at zero.
func (c *Catalog) SetStock(ctx context.Context, id string, stock int) bool {
	return c.mutate(ctx, id, func(p *domain.Product) { p.Stock = max(0, stock) })
}

// IncrementSold records a sale of qty units: sold grows by qty and stock
// drops by qty, clamped at zero. Checkout calls this once per distinct order
// line; it is the only path that debits inventory.
func (c *Catalog) IncrementSold(ctx context.Context, id string, qty int) bool {
	return c.mutate(ctx, id, func(p *domain.Product) {
		p.Sold += qty
		p.Stock = max(0, p.Stock-qty)
	})
}

// Duplicate copies a product into a new inactive entry with zero sales.
func (c *Catalog) Duplicate(ctx context.Context, id string) (domain.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.products {
		if p.ID == id {
			dup := p
			dup.ID = uuid.NewString()
			dup.Name = p.Name + " (Copy)"
			dup.Slug = p.Slug + "-copy-" + uuid.NewString()[:8]
			dup.Sold = 0
			dup.Active = false
			dup.CreatedAt = time.Now()
			c.products = append(c.products, dup)
			c.persist(ctx)
			return dup, true
		}
	}
	return domain.Product{}, false
}

type StockUpdate struct {
	ID    string `json:"id"`
	Stock int    `json:"stock"`
}

func (c *Catalog) BulkSetStock(ctx context.Context, updates []StockUpdate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	byID := make(map[string]int, len(updates))
	for _, u := range updates {
		byID[u.ID] = max(0, u.Stock)
	}
	for i := range c.products {
		if v, ok := byID[c.products[i].ID]; ok {
			c.products[i].Stock = v
		}
	}
	c.persist(ctx)
}

type ProductStats struct {
	Total      int     `json:"total"`
	Active     int     `json:"active"`
	OutOfStock int     `json:"outOfStock"`
	LowStock   int     `json:"lowStock"`
	TotalValue float64 `json:"totalValue"`
}

func (c *Catalog) Stats() ProductStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var st ProductStats
	st.Total = len(c.products)
	for _, p := range c.products {
		if p.Active {
			st.Active++
		}
		if p.Stock == 0 {
			st.OutOfStock++
		} else if p.Stock < 10 {
			st.LowStock++
		}
		st.TotalValue += p.Price * float64(p.Stock)
	}
	return st
}

func (c *Catalog) mutate(ctx context.Context, id string, apply func(*domain.Product)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.products {
		if c.products[i].ID == id {
			apply(&c.products[i])
			c.persist(ctx)
			return true
		}
	}
	return false
}

// Slugify lowercases and dash-joins a name the way admin-created products get
// their URL key.
func Slugify(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
}
