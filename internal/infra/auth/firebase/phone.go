// Package firebase verifies Firebase phone sign-in ID tokens.
package firebase

import (
	"context"
	"log/slog"

	"bazaar/config"
	"bazaar/internal/domain/entity"
	"bazaar/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// PhoneAuthService implements service.OAuthAuthService for Firebase phone sign-in.
// The client completes the SMS OTP flow against Firebase and sends the resulting
// ID token here; we verify it and read the attested phone number.
type PhoneAuthService struct {
	client *auth.Client
	logger *slog.Logger
}

// NewPhoneAuthService creates a verifier backed by the Firebase Admin SDK.
func NewPhoneAuthService(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.PhoneAuthService, error) {
	opts := []option.ClientOption{}
	if cfg.Firebase != nil && cfg.Firebase.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsPath))
	}

	var appConfig *firebase.Config
	if cfg.Firebase != nil && cfg.Firebase.ProjectID != "" {
		appConfig = &firebase.Config{ProjectID: cfg.Firebase.ProjectID}
	}

	app, err := firebase.NewApp(ctx, appConfig, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get Firebase auth client")
	}

	return &PhoneAuthService{client: client, logger: logger}, nil
}

// VerifyIDToken implements service.OAuthAuthService interface
func (s *PhoneAuthService) VerifyIDToken(ctx context.Context, idToken string) (*service.OAuthUser, error) {
	token, err := s.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		s.logger.Error("Failed to verify Firebase ID token", "error", err)

		return nil, errors.Wrap(err, "invalid ID token")
	}

	phone, _ := token.Claims["phone_number"].(string)
	if phone == "" {
		return nil, errors.New("token does not attest to a phone number")
	}

	name, _ := token.Claims["name"].(string)

	s.logger.Info("Firebase phone ID token verified successfully",
		slog.String("uid", token.UID))

	return &service.OAuthUser{
		ID:       token.UID,
		Name:     name,
		Phone:    phone,
		Provider: entity.ProviderTypePhone,
	}, nil
}

// GetProvider returns the OAuth provider type
func (s *PhoneAuthService) GetProvider() entity.ProviderType {
	return entity.ProviderTypePhone
}
