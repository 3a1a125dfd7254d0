// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"bazaar/config"
	deliverycontext "bazaar/internal/delivery/context"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager         repository.TransactionManager
	userRepo          repository.UserRepository
	authRepo          repository.AuthRepository
	refreshTokenRepo  repository.RefreshTokenRepository
	hasher            service.PasswordHasher
	tokenService      service.TokenService
	googleAuthService service.OAuthAuthService
	phoneAuthService  service.PhoneAuthService
	maxActiveSessions int
	logger            *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager         repository.TransactionManager
	UserRepo          repository.UserRepository
	AuthRepo          repository.AuthRepository
	RefreshTokenRepo  repository.RefreshTokenRepository
	Hasher            service.PasswordHasher
	TokenService      service.TokenService
	GoogleAuthService service.OAuthAuthService
	PhoneAuthService  service.PhoneAuthService
	Config            *config.Config
	Logger            *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	maxActiveSessions := 0
	if params.Config != nil && params.Config.Auth != nil {
		maxActiveSessions = params.Config.Auth.MaxActiveSessions
	}

	return &userService{
		txManager:         params.TxManager,
		userRepo:          params.UserRepo,
		authRepo:          params.AuthRepo,
		refreshTokenRepo:  params.RefreshTokenRepo,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		googleAuthService: params.GoogleAuthService,
		phoneAuthService:  params.PhoneAuthService,
		maxActiveSessions: maxActiveSessions,
		logger:            params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete registration process for either role.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.Any("role", input.Role), slog.String("email", input.Email))

	if !input.Role.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrRoleRequired, "registration failed")
	}

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		srv.log(ctx).Warn("Password validation failed during registration", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "password does not meet security requirements")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	var registeredUser *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		authRepo := repoFactory.AuthRepo()

		authRecord, err := authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, input.Email)
		if errors.Is(err, repository.ErrAuthNotFound) {
			return srv.handleNewRegistration(ctx, input, hashedPassword, userRepo, authRepo, &registeredUser)
		}
		if err != nil {
			return errors.Wrap(err, "failed to find authentication")
		}

		return srv.handleExistingAccountRegistration(ctx, input, userRepo, authRecord, &registeredUser)
	})

	if err != nil {
		srv.log(ctx).Error("Failed to execute registration transaction", slog.Any("role", input.Role), slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("role", input.Role), slog.Any("userID", registeredUser.ID))

	return &usecase.RegisterOutput{User: registeredUser}, nil
}

func (srv *userService) handleNewRegistration(
	ctx context.Context,
	input *usecase.RegisterInput,
	hashedPassword string,
	userRepo repository.UserRepository,
	authRepo repository.AuthRepository,
	registeredUser **entity.User,
) error {
	newUser := &entity.User{
		Name:  input.Name,
		Email: input.Email,
	}

	if err := userRepo.Create(ctx, newUser); err != nil {
		return errors.Wrap(err, "failed to create user during registration")
	}

	if err := srv.attachProfile(ctx, userRepo, newUser, input.Role); err != nil {
		return err
	}

	newAuth := &entity.Authentication{
		UserID:         newUser.ID,
		Provider:       entity.ProviderTypeEmail,
		ProviderUserID: input.Email,
		PasswordHash:   hashedPassword,
	}

	if err := authRepo.CreateAuthentication(ctx, newAuth); err != nil {
		return errors.Wrap(err, "failed to create authentication during registration")
	}

	*registeredUser = newUser

	return nil
}

// handleExistingAccountRegistration attaches a second role profile to an account
// that already holds an email credential, after re-verifying the password.
func (srv *userService) handleExistingAccountRegistration(
	ctx context.Context,
	input *usecase.RegisterInput,
	userRepo repository.UserRepository,
	authRecord *entity.Authentication,
	registeredUser **entity.User,
) error {
	if !srv.hasher.Check(input.Password, authRecord.PasswordHash) {
		srv.log(ctx).Warn("Password mismatch when attaching profile", slog.Any("role", input.Role), slog.String("email", input.Email))

		return errors.Wrap(domainerrors.ErrInvalidCredentials, "password mismatch during registration")
	}

	existingUser, err := userRepo.FindByID(ctx, authRecord.UserID)
	if err != nil {
		return errors.Wrap(err, "failed to load existing user for registration")
	}

	if existingUser.Roles().Contains(input.Role) {
		srv.log(ctx).Warn("Profile already exists for account", slog.Any("role", input.Role), slog.Any("userID", existingUser.ID))

		return domainerrors.ErrUserAlreadyExists.WrapMessage("profile already registered for this account")
	}

	if input.Name != "" && existingUser.Name != input.Name {
		existingUser.Name = input.Name
		if err := userRepo.Update(ctx, existingUser); err != nil {
			return errors.Wrap(err, "failed to update user during registration")
		}
	}

	if err := srv.attachProfile(ctx, userRepo, existingUser, input.Role); err != nil {
		return err
	}

	srv.log(ctx).Debug("Attached profile to existing account", slog.Any("role", input.Role), slog.Any("userID", existingUser.ID))
	*registeredUser = existingUser

	return nil
}

func (srv *userService) attachProfile(ctx context.Context, userRepo repository.UserRepository, user *entity.User, role entity.Role) error {
	switch role {
	case entity.RoleCustomer:
		profile := &entity.CustomerProfile{UserID: user.ID}
		if err := userRepo.UpsertCustomerProfile(ctx, profile); err != nil {
			return errors.Wrap(err, "failed to create customer profile")
		}
		user.CustomerProfile = profile
	case entity.RoleProvider:
		profile := &entity.ProviderProfile{UserID: user.ID}
		if err := userRepo.UpsertProviderProfile(ctx, profile); err != nil {
			return errors.Wrap(err, "failed to create provider profile")
		}
		user.ProviderProfile = profile
	default:
		return errors.Wrap(domainerrors.ErrRoleRequired, "unknown role")
	}

	return nil
}

// Login orchestrates the user login process.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting user login", slog.String("email", input.Email))

	authRecord, err := srv.authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, input.Email)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", err))

		if errors.Is(err, repository.ErrAuthNotFound) {
			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to find authentication")
	}

	// Check password outside transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, authRecord.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	loggedInUser, err := srv.userRepo.FindByID(ctx, authRecord.UserID)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	accessToken, refreshTokenString, err := srv.openSession(ctx, loggedInUser)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", loggedInUser.ID))

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenString,
		User:         loggedInUser,
	}, nil
}

// openSession issues a token pair for the user and persists the refresh token.
func (srv *userService) openSession(ctx context.Context, user *entity.User) (string, string, error) {
	accessToken, refreshTokenString, err := srv.tokenService.GenerateTokens(user.ID, user.Roles().ToStrings())
	if err != nil {
		return "", "", errors.Wrap(err, "failed to generate tokens")
	}

	if srv.maxActiveSessions > 0 {
		activeSessions, err := srv.refreshTokenRepo.CountActiveSessionsByUserID(ctx, user.ID)
		if err != nil {
			return "", "", errors.Wrap(err, "failed to count active sessions")
		}
		if activeSessions >= srv.maxActiveSessions {
			return "", "", errors.Wrap(domainerrors.ErrSessionLimitExceeded, "active session limit exceeded")
		}
	}

	if err := srv.storeRefreshToken(ctx, srv.refreshTokenRepo, user.ID, refreshTokenString); err != nil {
		return "", "", err
	}

	return accessToken, refreshTokenString, nil
}

func (srv *userService) storeRefreshToken(ctx context.Context, refreshRepo repository.RefreshTokenRepository, userID uuid.UUID, refreshTokenString string) error {
	refreshTokenHash := srv.tokenService.HashToken(refreshTokenString)

	newRefreshToken := &entity.RefreshToken{
		UserID:    userID,
		TokenHash: refreshTokenHash,
		ExpiresAt: time.Now().Add(srv.tokenService.GetRefreshTokenDuration()),
	}

	if err := refreshRepo.CreateRefreshToken(ctx, newRefreshToken); err != nil {
		return errors.Wrap(err, "failed to store refresh token")
	}

	return nil
}

// RefreshToken handles the process of issuing a new access token using a refresh token.
// The refresh token remains unchanged for security reasons.
func (srv *userService) RefreshToken(ctx context.Context, input *usecase.RefreshTokenInput) (*usecase.RefreshTokenOutput, error) {
	srv.log(ctx).Info("Attempting to refresh access token")

	claims, err := srv.tokenService.ValidateToken(input.RefreshToken)
	if err != nil {
		return nil, errors.Wrap(err, "invalid refresh token")
	}

	// 1. Verify the refresh token exists in the database.
	tokenHash := srv.tokenService.HashToken(input.RefreshToken)

	if _, err := srv.refreshTokenRepo.FindRefreshTokenByHash(ctx, tokenHash); err != nil {
		return nil, errors.Wrap(err, "refresh token not found or expired")
	}

	// 2. Fetch user and roles.
	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	// 3. Generate only a new access token (the refresh token remains unchanged).
	newAccessToken, _, err := srv.tokenService.GenerateTokens(user.ID, user.Roles().ToStrings())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate new access token")
	}

	return &usecase.RefreshTokenOutput{
		AccessToken: newAccessToken,
	}, nil
}

// Logout handles the process of invalidating a user's session by deleting their refresh token.
func (srv *userService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	srv.log(ctx).Info("Attempting to log out")

	if _, err := srv.tokenService.ValidateToken(input.RefreshToken); err != nil {
		// Even if the token is invalid, we can proceed to delete it from the database.
		srv.log(ctx).Warn("Logout with invalid token", slog.Any("error", err))
	}

	tokenHash := srv.tokenService.HashToken(input.RefreshToken)

	if err := srv.refreshTokenRepo.DeleteRefreshTokenByHash(ctx, tokenHash); err != nil {
		srv.log(ctx).Error("Failed to delete refresh token", slog.Any("error", err))

		return errors.Wrap(err, "failed to delete refresh token")
	}
	srv.log(ctx).Info("Successfully logged out")

	return nil
}

// LogoutAllDevices handles the process of invalidating all user sessions by deleting all refresh tokens.
func (srv *userService) LogoutAllDevices(ctx context.Context, userID uuid.UUID) error {
	srv.log(ctx).Info("Attempting to log out from all devices", slog.Any("userID", userID))

	if err := srv.refreshTokenRepo.DeleteRefreshTokensByUserID(ctx, userID); err != nil {
		srv.log(ctx).Error("Failed to delete all refresh tokens", slog.Any("error", err), slog.Any("userID", userID))

		return errors.Wrap(err, "failed to delete all refresh tokens")
	}
	srv.log(ctx).Info("Successfully logged out from all devices", slog.Any("userID", userID))

	return nil
}

// GetActiveSessions retrieves all active sessions for a user.
func (srv *userService) GetActiveSessions(ctx context.Context, userID uuid.UUID) ([]*entity.RefreshToken, error) {
	srv.log(ctx).Debug("Getting active sessions", slog.Any("userID", userID))

	sessions, err := srv.refreshTokenRepo.FindRefreshTokensByUserID(ctx, userID)
	if err != nil {
		srv.log(ctx).Error("Failed to get active sessions", slog.Any("error", err), slog.Any("userID", userID))

		return nil, errors.Wrap(err, "failed to get active sessions")
	}

	return sessions, nil
}

// GoogleLogin handles the user login or registration via Google Sign-In.
func (srv *userService) GoogleLogin(ctx context.Context, input *usecase.FederatedLoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Info("Handling Google sign-in")

	oauthUser, err := srv.googleAuthService.VerifyIDToken(ctx, input.IDToken)
	if err != nil {
		return nil, errors.Wrap(err, "failed to verify Google ID token")
	}

	return srv.federatedLogin(ctx, oauthUser)
}

// PhoneLogin handles the user login or registration via a Firebase phone-verification token.
func (srv *userService) PhoneLogin(ctx context.Context, input *usecase.FederatedLoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Info("Handling phone sign-in")

	oauthUser, err := srv.phoneAuthService.VerifyIDToken(ctx, input.IDToken)
	if err != nil {
		return nil, errors.Wrap(err, "failed to verify phone token")
	}

	return srv.federatedLogin(ctx, oauthUser)
}

// federatedLogin signs in a verified external identity, lazily creating the
// account and the provider link on first sight.
func (srv *userService) federatedLogin(ctx context.Context, oauthUser *service.OAuthUser) (*usecase.LoginOutput, error) {
	var loggedInUser *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user, err := srv.findOrCreateFederatedUser(ctx, repoFactory, oauthUser)
		if err != nil {
			return err
		}
		loggedInUser = user

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute federated login transaction")
	}

	accessToken, refreshTokenString, err := srv.openSession(ctx, loggedInUser)
	if err != nil {
		return nil, err
	}

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenString,
		User:         loggedInUser,
	}, nil
}

// findOrCreateFederatedUser finds the existing account linked to the external
// identity or creates a fresh one with a default customer profile.
func (srv *userService) findOrCreateFederatedUser(ctx context.Context, repoFactory repository.RepositoryFactory, oauthUser *service.OAuthUser) (*entity.User, error) {
	authRepo := repoFactory.AuthRepo()
	userRepo := repoFactory.UserRepo()

	authRecord, err := authRepo.FindAuthentication(ctx, oauthUser.Provider, oauthUser.ID)
	if err != nil && !errors.Is(err, repository.ErrAuthNotFound) {
		return nil, errors.Wrap(err, "failed to find authentication")
	}

	if errors.Is(err, repository.ErrAuthNotFound) {
		return srv.createFederatedUser(ctx, userRepo, authRepo, oauthUser)
	}

	srv.log(ctx).Info("Found existing federated user", slog.Any("userID", authRecord.UserID), slog.String("provider", oauthUser.Provider))

	user, err := userRepo.FindByID(ctx, authRecord.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by id for federated login")
	}

	return user, nil
}

// createFederatedUser creates a new account for a first-time external identity.
func (srv *userService) createFederatedUser(ctx context.Context, userRepo repository.UserRepository, authRepo repository.AuthRepository, oauthUser *service.OAuthUser) (*entity.User, error) {
	srv.log(ctx).Info("Federated user not found, creating new account",
		slog.String("provider", oauthUser.Provider),
		slog.String("email", oauthUser.Email))

	newUser := &entity.User{
		Name:  oauthUser.Name,
		Email: oauthUser.Email,
		Phone: oauthUser.Phone,
	}

	if err := userRepo.Create(ctx, newUser); err != nil {
		return nil, errors.Wrap(err, "failed to create user for federated login")
	}

	// First-time federated accounts start as customers.
	profile := &entity.CustomerProfile{UserID: newUser.ID}
	if err := userRepo.UpsertCustomerProfile(ctx, profile); err != nil {
		return nil, errors.Wrap(err, "failed to create customer profile for federated login")
	}
	newUser.CustomerProfile = profile

	newAuth := &entity.Authentication{
		UserID:         newUser.ID,
		Provider:       oauthUser.Provider,
		ProviderUserID: oauthUser.ID,
	}

	if err := authRepo.CreateAuthentication(ctx, newAuth); err != nil {
		return nil, errors.Wrap(err, "failed to create federated authentication")
	}

	return newUser, nil
}

// GetMe loads the authenticated user's account with profiles.
func (srv *userService) GetMe(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user")
	}

	return user, nil
}

// UpdateCustomerProfile creates or updates the user's customer profile.
func (srv *userService) UpdateCustomerProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateCustomerProfileInput) error {
	srv.log(ctx).Debug("Updating customer profile", slog.Any("userID", userID))

	profile := &entity.CustomerProfile{
		UserID: userID,
		City:   input.City,
	}

	if err := srv.userRepo.UpsertCustomerProfile(ctx, profile); err != nil {
		srv.log(ctx).Error("Failed to upsert customer profile", slog.Any("error", err), slog.Any("userID", userID))

		return errors.Wrap(err, "failed to upsert customer profile")
	}

	return nil
}

// UpdateProviderProfile creates or updates the user's provider profile.
func (srv *userService) UpdateProviderProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProviderProfileInput) error {
	srv.log(ctx).Debug("Updating provider profile", slog.Any("userID", userID))

	profile := &entity.ProviderProfile{
		UserID:          userID,
		Bio:             input.Bio,
		Skills:          input.Skills,
		ExperienceYears: input.ExperienceYears,
		LocationName:    input.LocationName,
		Latitude:        input.Latitude,
		Longitude:       input.Longitude,
	}

	if err := srv.userRepo.UpsertProviderProfile(ctx, profile); err != nil {
		srv.log(ctx).Error("Failed to upsert provider profile", slog.Any("error", err), slog.Any("userID", userID))

		return errors.Wrap(err, "failed to upsert provider profile")
	}

	return nil
}
