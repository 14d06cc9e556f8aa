package domain

import "fmt"

// CartItem is a denormalized snapshot of a product variant at the time it was
// added. Product data referenced here is copied by value, so a later catalog
// edit or delete does not touch lines already in a cart or an order.
type CartItem struct {
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	ProductImage string  `json:"productImage"`
	VariantID    string  `json:"variantId"`
	VariantName  string  `json:"variantName"`
	Size         string  `json:"size"`
	Color        string  `json:"color"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
}

// VariantID builds the synthetic cart key for a product/color/size combination.
func VariantID(productID, color, size string) string {
	return fmt.Sprintf("%s-%s-%s", productID, color, size)
}
