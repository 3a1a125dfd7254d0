// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category groups service listings by trade, e.g. "Plumbing" or "Electrical".
type Category struct {
	ID        uuid.UUID // The unique ID of the category.
	Name      string    // Display name.
	Slug      string    // URL-friendly identifier, unique.
	Icon      string    // Icon name used by clients.
	CreatedAt time.Time
}

// ServiceListing is a bookable service offered by a provider, e.g. "Tap repair".
// All monetary amounts in the system are whole currency units.
type ServiceListing struct {
	ID          uuid.UUID // The unique ID of the listing.
	ProviderID  uuid.UUID // The user ID of the provider offering this service.
	CategoryID  uuid.UUID // The category this listing belongs to.
	Title       string    // Short title shown in search results.
	Description string    // Longer description of the work covered.
	Price       int64     // Quoted price for the service.
	DurationMin int       // Estimated duration in minutes.
	ImageURL    string    // Optional illustration image.
	Active      bool      // Inactive listings are hidden from browsing but keep their bookings.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
