package store

import (
	"time"

	"github.com/delphine/shop/internal/domain"
)

// Collections returns the fixed storefront collections; products reference
// them through their category slug.
func Collections() []domain.Collection {
	return []domain.Collection{
		{ID: "col-1", Name: "Bikinis", Slug: "bikinis", Description: "Two-piece sets for every shape", Image: "/images/collections/bikinis.jpg"},
		{ID: "col-2", Name: "One-Pieces", Slug: "one-pieces", Description: "Timeless silhouettes, modern cuts", Image: "/images/collections/one-pieces.jpg"},
		{ID: "col-3", Name: "Cover-Ups", Slug: "cover-ups", Description: "From beach to bar", Image: "/images/collections/cover-ups.jpg"},
		{ID: "col-4", Name: "Accessories", Slug: "accessories", Description: "Finish the look", Image: "/images/collections/accessories.jpg"},
	}
}

// DefaultProducts is the demo catalog used when the store starts empty.
func DefaultProducts() []domain.Product {
	now := time.Now()
	return []domain.Product{
		{
			ID:          "prod-1",
			Name:        "Coastal Breeze Bikini",
			Slug:        "coastal-breeze-bikini",
			Description: "A lightweight two-piece in breathable ribbed fabric, made for long days by the water.",
			Price:       89,
			Images:      []string{"/images/products/coastal-breeze-1.jpg", "/images/products/coastal-breeze-2.jpg"},
			Category:    "bikinis",
			Colors: []domain.Color{
				{Name: "Seafoam", Hex: "#9fd8cb"},
				{Name: "Coral", Hex: "#ff7f6b"},
			},
			Sizes:     []string{"XS", "S", "M", "L"},
			Material:  "82% recycled nylon, 18% spandex",
			Care:      []string{"Hand wash cold", "Dry flat in shade"},
			Stock:     24,
			Sold:      12,
			Featured:  true,
			Active:    true,
			CreatedAt: now.AddDate(0, -3, 0),
		},
		{
			ID:           "prod-2",
			Name:         "Mediterranean Blue",
			Slug:         "mediterranean-blue",
			Description:  "Deep-blue triangle top and matching bottoms with adjustable ties.",
			Price:        95,
			ComparePrice: 120,
			Images:       []string{"/images/products/mediterranean-1.jpg"},
			Category:     "bikinis",
			Colors: []domain.Color{
				{Name: "Deep Blue", Hex: "#1e3a8a"},
			},
			Sizes:     []string{"S", "M", "L"},
			Material:  "80% nylon, 20% elastane",
			Care:      []string{"Hand wash cold", "Do not tumble dry"},
			Stock:     18,
			Sold:      8,
			Featured:  true,
			Active:    true,
			CreatedAt: now.AddDate(0, -2, -10),
		},
		{
			ID:          "prod-3",
			Name:        "Sunset One Piece",
			Slug:        "sunset-one-piece",
			Description: "A sculpting one-piece with a low back and gradient sunset print.",
			Price:       120,
			Images:      []string{"/images/products/sunset-1.jpg", "/images/products/sunset-2.jpg"},
			Category:    "one-pieces",
			Colors: []domain.Color{
				{Name: "Sunset", Hex: "#f97316"},
				{Name: "Dusk", Hex: "#7c3aed"},
			},
			Sizes:     []string{"XS", "S", "M", "L", "XL"},
			Material:  "78% recycled polyamide, 22% elastane",
			Care:      []string{"Rinse after use", "Hand wash cold"},
			Stock:     15,
			Sold:      21,
			Featured:  true,
			Active:    true,
			CreatedAt: now.AddDate(0, -2, 0),
		},
		{
			ID:          "prod-4",
			Name:        "Classic Black One Piece",
			Slug:        "classic-black-one-piece",
			Description: "The wardrobe staple. Square neckline, medium coverage, holds its shape season after season.",
			Price:       85,
			Images:      []string{"/images/products/classic-black-1.jpg"},
			Category:    "one-pieces",
			Colors: []domain.Color{
				{Name: "Black", Hex: "#111111"},
			},
			Sizes:     []string{"XS", "S", "M", "L", "XL"},
			Material:  "85% nylon, 15% spandex",
			Care:      []string{"Hand wash cold", "Dry flat"},
			Stock:     30,
			Sold:      35,
			Featured:  false,
			Active:    true,
			CreatedAt: now.AddDate(0, -4, 0),
		},
	}
}

// DefaultCredentials holds the demo accounts: one admin, one customer.
func DefaultCredentials() map[string]domain.Credential {
	base := time.Now().AddDate(0, -6, 0)
	return map[string]domain.Credential{
		"admin@delphine.com": {
			Password: "admin123",
			User: domain.User{
				ID:        "admin-1",
				Email:     "admin@delphine.com",
				Name:      "Admin",
				IsAdmin:   true,
				CreatedAt: base,
			},
		},
		"demo@delphine.com": {
			Password: "demo123",
			User: domain.User{
				ID:        "user-1",
				Email:     "demo@delphine.com",
				Name:      "Demo User",
				Phone:     "+355691234567",
				CreatedAt: base.AddDate(0, 1, 0),
			},
		},
	}
}

// DefaultSubscribers seeds the newsletter list, including one lapsed address
// so reactivation is exercisable from the admin screen.
func DefaultSubscribers() []domain.NewsletterSubscriber {
	now := time.Now()
	return []domain.NewsletterSubscriber{
		{ID: "sub-1", Email: "maria@example.com", SubscribedAt: now.AddDate(0, 0, -5), Status: domain.SubscriberActive},
		{ID: "sub-2", Email: "elena@example.com", SubscribedAt: now.AddDate(0, 0, -12), Status: domain.SubscriberActive},
		{ID: "sub-3", Email: "ana@example.com", SubscribedAt: now.AddDate(0, -1, 0), Status: domain.SubscriberActive},
		{ID: "sub-4", Email: "demo@delphine.com", SubscribedAt: now.AddDate(0, -2, 0), Status: domain.SubscriberActive},
		{ID: "sub-5", Email: "old.subscriber@example.com", SubscribedAt: now.AddDate(0, -5, 0), Status: domain.SubscriberUnsubscribed},
	}
}

// DefaultOrders seeds the ledger with a few orders in different states so the
// admin dashboard has something to report on.
func DefaultOrders() []domain.Order {
	now := time.Now()
	addr := domain.ShippingAddress{
		FirstName:  "Demo",
		LastName:   "User",
		Address:    "Rruga Myslym Shyri 12",
		City:       "Tirana",
		Country:    "AL",
		PostalCode: "1001",
		Phone:      "+355691234567",
	}
	return []domain.Order{
		{
			ID:      "seed-order-1",
			OrderID: "DLP-SEED01-A1B2",
			UserEmail: "demo@delphine.com",
			UserName:  "Demo User",
			Items: []domain.CartItem{
				{ProductID: "prod-1", ProductName: "Coastal Breeze Bikini", VariantID: "prod-1-Seafoam-M", VariantName: "Seafoam / M", Size: "M", Color: "Seafoam", Price: 89, Quantity: 1},
			},
			Subtotal: 89, Shipping: 3.99, Total: 92.99,
			ShippingAddress: addr,
			ShippingMethod:  "al-std",
			PaymentMethod:   domain.PaymentMethodCOD,
			PaymentStatus:   domain.PaymentStatusPaid,
			Status:          domain.OrderStatusDelivered,
			CreatedAt:       now.AddDate(0, -2, -3),
			UpdatedAt:       now.AddDate(0, -2, 0),
		},
		{
			ID:      "seed-order-2",
			OrderID: "DLP-SEED02-C3D4",
			UserEmail: "maria@example.com",
			UserName:  "Maria Koci",
			Items: []domain.CartItem{
				{ProductID: "prod-3", ProductName: "Sunset One Piece", VariantID: "prod-3-Sunset-S", VariantName: "Sunset / S", Size: "S", Color: "Sunset", Price: 120, Quantity: 1},
				{ProductID: "prod-2", ProductName: "Mediterranean Blue", VariantID: "prod-2-Deep Blue-S", VariantName: "Deep Blue / S", Size: "S", Color: "Deep Blue", Price: 95, Quantity: 1},
			},
			Subtotal: 215, Shipping: 6.99, Total: 221.99,
			ShippingAddress: domain.ShippingAddress{FirstName: "Maria", LastName: "Koci", Address: "Rruga e Durresit 45", City: "Tirana", Country: "AL", PostalCode: "1016", Phone: "+355692223344"},
			ShippingMethod:  "al-exp",
			PaymentMethod:   domain.PaymentMethodCOD,
			PaymentStatus:   domain.PaymentStatusPaid,
			Status:          domain.OrderStatusShipped,
			TrackingNumber:  "ALP-7781-4429",
			CreatedAt:       now.AddDate(0, -1, -5),
			UpdatedAt:       now.AddDate(0, -1, -3),
		},
		{
			ID:      "seed-order-3",
			OrderID: "DLP-SEED03-E5F6",
			UserEmail: "elena@example.com",
			UserName:  "Elena Hoxha",
			Items: []domain.CartItem{
				{ProductID: "prod-4", ProductName: "Classic Black One Piece", VariantID: "prod-4-Black-L", VariantName: "Black / L", Size: "L", Color: "Black", Price: 85, Quantity: 2},
			},
			Subtotal: 170, Shipping: 5.99, Total: 175.99,
			ShippingAddress: domain.ShippingAddress{FirstName: "Elena", LastName: "Hoxha", Address: "Rr. Nena Tereze 8", City: "Prishtina", Country: "XK", PostalCode: "10000", Phone: "+38344556677"},
			ShippingMethod:  "xk-std",
			PaymentMethod:   domain.PaymentMethodCOD,
			PaymentStatus:   domain.PaymentStatusPaid,
			Status:          domain.OrderStatusProcessing,
			CreatedAt:       now.AddDate(0, 0, -6),
			UpdatedAt:       now.AddDate(0, 0, -6),
		},
		{
			ID:      "seed-order-4",
			OrderID: "DLP-SEED04-G7H8",
			UserEmail: "demo@delphine.com",
			UserName:  "Demo User",
			Items: []domain.CartItem{
				{ProductID: "prod-2", ProductName: "Mediterranean Blue", VariantID: "prod-2-Deep Blue-M", VariantName: "Deep Blue / M", Size: "M", Color: "Deep Blue", Price: 95, Quantity: 1},
			},
			Subtotal: 95, Shipping: 3.99, Total: 98.99,
			ShippingAddress: addr,
			ShippingMethod:  "al-std",
			PaymentMethod:   domain.PaymentMethodCOD,
			PaymentStatus:   domain.PaymentStatusPending,
			Status:          domain.OrderStatusPending,
			CreatedAt:       now.AddDate(0, 0, -1),
			UpdatedAt:       now.AddDate(0, 0, -1),
		},
	}
}
