// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is a physical artisan good sold through the marketplace shop.
type Product struct {
	ID          uuid.UUID // The unique ID of the product.
	ProviderID  uuid.UUID // The user ID of the artisan selling this product.
	Name        string    // Display name.
	Description string    // Longer description.
	Price       int64     // Unit price.
	Stock       int       // Units available; zero means sold out.
	ImageURL    string    // Optional product image.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InStock reports whether the requested quantity can currently be fulfilled.
func (p *Product) InStock(quantity int) bool {
	return quantity > 0 && p.Stock >= quantity
}
