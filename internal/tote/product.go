package tote

import "strings"

// Product is a bet type offered by the tote. The set is closed.
type Product string

const (
	Win    Product = "W"
	Place  Product = "P"
	Exacta Product = "E"
)

// AllProducts returns every product in report order.
func AllProducts() []Product {
	return []Product{Win, Place, Exacta}
}

// ParseProduct maps a product code such as " W " to its Product.
func ParseProduct(code string) (Product, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", ErrProductMandatory
	}
	p := Product(code)
	if !p.Valid() {
		return "", ErrInvalidProduct
	}
	return p, nil
}

// Valid reports whether p is one of the offered products.
func (p Product) Valid() bool {
	switch p {
	case Win, Place, Exacta:
		return true
	}
	return false
}

func (p Product) String() string {
	return string(p)
}

// Name returns the human name of the product ("Win", "Place", "Exacta").
func (p Product) Name() string {
	switch p {
	case Win:
		return "Win"
	case Place:
		return "Place"
	case Exacta:
		return "Exacta"
	}
	return string(p)
}
