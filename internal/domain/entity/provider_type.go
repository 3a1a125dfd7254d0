// Package entity contains the core business objects of the project.
package entity

// ProviderType identifies the identity provider behind an authentication record.
type ProviderType = string

const (
	// ProviderTypeEmail is the password credential keyed by email address.
	ProviderTypeEmail ProviderType = "email"
	// ProviderTypeGoogle is a federated Google account, keyed by Google's 'sub' claim.
	ProviderTypeGoogle ProviderType = "google"
	// ProviderTypePhone is a Firebase phone-verification identity, keyed by the Firebase UID.
	ProviderTypePhone ProviderType = "phone"
)
