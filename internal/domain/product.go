package domain

import "time"

type Color struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

type Product struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	ComparePrice float64   `json:"comparePrice,omitempty"`
	Images       []string  `json:"images"`
	Category     string    `json:"category"`
	Colors       []Color   `json:"colors"`
	Sizes        []string  `json:"sizes"`
	Material     string    `json:"material,omitempty"`
	Care         []string  `json:"care,omitempty"`
	Stock        int       `json:"stock"`
	Sold         int       `json:"sold"`
	Featured     bool      `json:"featured"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PrimaryImage is the first image in the ordered list, empty when none.
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

type Collection struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Image       string `json:"image"`
}
