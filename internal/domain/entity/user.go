// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a unique "person" or "account".
// It contains only the most fundamental identity information shared across all roles.
type User struct {
	ID              uuid.UUID        // The Global Unique Identifier (GUID) for the user.
	Email           string           // The user's primary contact email, often used as a login identifier.
	Name            string           // The user's display name or real name.
	Phone           string           // Optional contact phone number in E.164 form.
	CustomerProfile *CustomerProfile // A pointer to the customer-specific profile. Nil if this person does not have a 'customer' role.
	ProviderProfile *ProviderProfile // A pointer to the provider-specific profile. Nil if this person does not have a 'provider' role.
	CreatedAt       time.Time        // Timestamp of when this user account was created.
	UpdatedAt       time.Time        // Timestamp of the last modification to this user's data.
}

// CustomerProfile holds data specific to the "customer" role.
type CustomerProfile struct {
	UserID    uuid.UUID // Foreign Key that links this profile to a core User entity.
	City      string    // The customer's city, used to scope marketplace browsing.
	UpdatedAt time.Time // Timestamp of the last modification to this profile.
}

// ProviderProfile holds data specific to the "provider" role: a tradesperson or
// artisan offering services and products on the marketplace.
type ProviderProfile struct {
	UserID          uuid.UUID // Foreign Key that links this profile to a core User entity.
	Bio             string    // Short self-description shown on the provider's public page.
	Skills          []string  // Trade skills, e.g. "plumbing", "electrical".
	ExperienceYears int       // Years of professional experience.
	Rating          float64   // Average review rating, 0 when unrated.
	ReviewCount     int       // Number of reviews behind the rating.
	Verified        bool      // Whether the marketplace has verified this provider.
	LocationName    string    // Human-readable service area, e.g. a neighbourhood name.
	Latitude        float64   // Service area coordinates for nearby queries.
	Longitude       float64
	UpdatedAt       time.Time // Timestamp of the last modification to this profile.
}

// Roles derives the role set from the profiles attached to the user.
func (u *User) Roles() Roles {
	var roles Roles
	if u.CustomerProfile != nil {
		roles = append(roles, RoleCustomer)
	}
	if u.ProviderProfile != nil {
		roles = append(roles, RoleProvider)
	}

	return roles
}
