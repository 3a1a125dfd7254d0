// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
// Role selects which profile is attached to the account at creation time.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     entity.Role
}

// LoginInput defines the data required for a user to log in with email and password.
type LoginInput struct {
	Email    string
	Password string
}

// RefreshTokenInput carries the refresh token presented by the client.
type RefreshTokenInput struct {
	RefreshToken string
}

// LogoutInput carries the refresh token of the session being ended.
type LogoutInput struct {
	RefreshToken string
}

// FederatedLoginInput carries an identity token issued by an external provider
// (a Google ID token or a Firebase phone-verification token).
type FederatedLoginInput struct {
	IDToken string
}

// UpdateCustomerProfileInput defines the editable fields of a customer profile.
type UpdateCustomerProfileInput struct {
	City string
}

// UpdateProviderProfileInput defines the editable fields of a provider profile.
type UpdateProviderProfileInput struct {
	Bio             string
	Skills          []string
	ExperienceYears int
	LocationName    string
	Latitude        float64
	Longitude       float64
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's basic information.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// RefreshTokenOutput returns a fresh access token.
type RefreshTokenOutput struct {
	AccessToken string
}

// UserUsecase defines the interface for account and session business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	// Register creates a new account with an email credential and the requested role profile.
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)

	// Login authenticates an email credential and opens a new session.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// RefreshToken issues a new access token for a valid, stored refresh token.
	RefreshToken(ctx context.Context, input *RefreshTokenInput) (*RefreshTokenOutput, error)

	// Logout ends the session identified by the refresh token.
	Logout(ctx context.Context, input *LogoutInput) error

	// LogoutAllDevices ends every session belonging to the user.
	LogoutAllDevices(ctx context.Context, userID uuid.UUID) error

	// GetActiveSessions lists the user's stored sessions across devices.
	GetActiveSessions(ctx context.Context, userID uuid.UUID) ([]*entity.RefreshToken, error)

	// GoogleLogin signs a user in with a Google ID token, creating the account
	// and linking the federated identity on first sight.
	GoogleLogin(ctx context.Context, input *FederatedLoginInput) (*LoginOutput, error)

	// PhoneLogin signs a user in with a Firebase phone-verification token,
	// creating the account and linking the identity on first sight.
	PhoneLogin(ctx context.Context, input *FederatedLoginInput) (*LoginOutput, error)

	// GetMe loads the authenticated user's account with profiles.
	GetMe(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// UpdateCustomerProfile creates or updates the user's customer profile.
	UpdateCustomerProfile(ctx context.Context, userID uuid.UUID, input *UpdateCustomerProfileInput) error

	// UpdateProviderProfile creates or updates the user's provider profile.
	UpdateProviderProfile(ctx context.Context, userID uuid.UUID, input *UpdateProviderProfileInput) error
}
