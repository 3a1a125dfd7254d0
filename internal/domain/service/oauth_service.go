package service

import (
	"context"

	"bazaar/internal/domain/entity"
)

// OAuthUser represents user information verified from a federated identity provider.
type OAuthUser struct {
	ID            string              // Provider-specific user ID (e.g., Google's 'sub' claim, Firebase uid)
	Email         string              // User's email address; may be empty for phone sign-in
	Name          string              // User's display name
	Phone         string              // E.164 phone number; set only for phone sign-in
	Provider      entity.ProviderType // The identity provider (google, phone)
	AvatarURL     string              // URL to user's profile picture
	EmailVerified bool                // Whether the email is verified by the provider
}

// OAuthAuthService defines the interface for federated ID token verification.
// Clients complete the provider flow on-device and send the resulting ID token here.
type OAuthAuthService interface {
	// VerifyIDToken verifies an ID token and returns the identity it attests to.
	VerifyIDToken(ctx context.Context, idToken string) (*OAuthUser, error)

	// GetProvider returns the identity provider this verifier handles.
	GetProvider() entity.ProviderType
}

// PhoneAuthService is the verifier for Firebase phone-verification tokens.
// It is a distinct type so both verifiers can be injected side by side.
type PhoneAuthService interface {
	OAuthAuthService
}
