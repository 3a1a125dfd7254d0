package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"bazaar/config"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	mockRepo "bazaar/internal/mocks/repository"
	mockSvc "bazaar/internal/mocks/service"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service          usecase.UserUsecase
	txManager        *mockRepo.MockTransactionManager
	factory          *mockRepo.MockRepositoryFactory
	userRepo         *mockRepo.MockUserRepository
	authRepo         *mockRepo.MockAuthRepository
	refreshTokenRepo *mockRepo.MockRefreshTokenRepository
	hasher           *mockSvc.MockPasswordHasher
	tokenService     *mockSvc.MockTokenService
	googleAuth       *mockSvc.MockOAuthAuthService
	phoneAuth        *mockSvc.MockOAuthAuthService
}

func createTestUserService(t *testing.T, maxActiveSessions int) userServiceFixtures {
	f := userServiceFixtures{
		txManager:        mockRepo.NewMockTransactionManager(t),
		factory:          mockRepo.NewMockRepositoryFactory(t),
		userRepo:         mockRepo.NewMockUserRepository(t),
		authRepo:         mockRepo.NewMockAuthRepository(t),
		refreshTokenRepo: mockRepo.NewMockRefreshTokenRepository(t),
		hasher:           mockSvc.NewMockPasswordHasher(t),
		tokenService:     mockSvc.NewMockTokenService(t),
		googleAuth:       mockSvc.NewMockOAuthAuthService(t),
		phoneAuth:        mockSvc.NewMockOAuthAuthService(t),
	}

	f.service = NewUserService(UserServiceParams{
		TxManager:         f.txManager,
		UserRepo:          f.userRepo,
		AuthRepo:          f.authRepo,
		RefreshTokenRepo:  f.refreshTokenRepo,
		Hasher:            f.hasher,
		TokenService:      f.tokenService,
		GoogleAuthService: f.googleAuth,
		PhoneAuthService:  f.phoneAuth,
		Config:            &config.Config{Auth: &config.AuthConfig{MaxActiveSessions: maxActiveSessions}},
		Logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return f
}

func refreshClaims(userID uuid.UUID) *service.Claims {
	return &service.Claims{UserID: userID, Type: "refresh"}
}

func federatedIdentity(provider entity.ProviderType, id, email, phone string) *service.OAuthUser {
	return &service.OAuthUser{
		ID:       id,
		Email:    email,
		Phone:    phone,
		Name:     "Asha Verma",
		Provider: provider,
	}
}

// runTransaction makes the mock transaction manager call its callback with
// the mock factory, mirroring a committed transaction.
func (f userServiceFixtures) runTransaction(ctx context.Context) {
	f.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Return(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(f.factory)
		})
}

func TestUserService_Register_NewAccount(t *testing.T) {
	f := createTestUserService(t, 0)
	ctx := context.Background()

	input := &usecase.RegisterInput{
		Name:     "Asha Verma",
		Email:    "asha@example.com",
		Password: "Password123!",
		Role:     entity.RoleCustomer,
	}

	f.hasher.On("ValidatePasswordStrength", input.Password).Return(nil)
	f.hasher.On("Hash", input.Password).Return("hashed-password", nil)

	f.runTransaction(ctx)
	f.factory.On("UserRepo").Return(f.userRepo)
	f.factory.On("AuthRepo").Return(f.authRepo)

	f.authRepo.On("FindAuthentication", ctx, "email", input.Email).
		Return(nil, repository.ErrAuthNotFound)
	f.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.User).ID = uuid.New()
		}).
		Return(nil)
	f.userRepo.On("UpsertCustomerProfile", ctx, mock.AnythingOfType("*entity.CustomerProfile")).Return(nil)
	f.authRepo.On("CreateAuthentication", ctx, mock.MatchedBy(func(auth *entity.Authentication) bool {
		return auth.Provider == "email" && auth.ProviderUserID == input.Email && auth.PasswordHash == "hashed-password"
	})).Return(nil)

	output, err := f.service.Register(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output.User)
	assert.Equal(t, input.Email, output.User.Email)
	assert.NotNil(t, output.User.CustomerProfile)
	assert.True(t, output.User.Roles().Contains(entity.RoleCustomer))
}

func TestUserService_Register_AttachSecondRole(t *testing.T) {
	f := createTestUserService(t, 0)
	ctx := context.Background()
	userID := uuid.New()

	input := &usecase.RegisterInput{
		Name:     "Asha Verma",
		Email:    "asha@example.com",
		Password: "Password123!",
		Role:     entity.RoleProvider,
	}

	f.hasher.On("ValidatePasswordStrength", input.Password).Return(nil)
	f.hasher.On("Hash", input.Password).Return("hashed-password", nil)
	f.hasher.On("Check", input.Password, "stored-hash").Return(true)

	f.runTransaction(ctx)
	f.factory.On("UserRepo").Return(f.userRepo)
	f.factory.On("AuthRepo").Return(f.authRepo)

	f.authRepo.On("FindAuthentication", ctx, "email", input.Email).
		Return(&entity.Authentication{UserID: userID, PasswordHash: "stored-hash"}, nil)
	f.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{
			ID:              userID,
			Name:            input.Name,
			Email:           input.Email,
			CustomerProfile: &entity.CustomerProfile{UserID: userID},
		}, nil)
	f.userRepo.On("UpsertProviderProfile", ctx, mock.MatchedBy(func(p *entity.ProviderProfile) bool {
		return p.UserID == userID
	})).Return(nil)

	output, err := f.service.Register(ctx, input)

	require.NoError(t, err)
	assert.True(t, output.User.Roles().Contains(entity.RoleCustomer))
	assert.True(t, output.User.Roles().Contains(entity.RoleProvider))
}

func TestUserService_Register_ExistingRoleRejected(t *testing.T) {
	f := createTestUserService(t, 0)
	ctx := context.Background()
	userID := uuid.New()

	input := &usecase.RegisterInput{
		Email:    "asha@example.com",
		Password: "Password123!",
		Role:     entity.RoleCustomer,
	}

	f.hasher.On("ValidatePasswordStrength", input.Password).Return(nil)
	f.hasher.On("Hash", input.Password).Return("hashed-password", nil)
	f.hasher.On("Check", input.Password, "stored-hash").Return(true)

	f.runTransaction(ctx)
	f.factory.On("UserRepo").Return(f.userRepo)
	f.factory.On("AuthRepo").Return(f.authRepo)

	f.authRepo.On("FindAuthentication", ctx, "email", input.Email).
		Return(&entity.Authentication{UserID: userID, PasswordHash: "stored-hash"}, nil)
	f.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{
			ID:              userID,
			CustomerProfile: &entity.CustomerProfile{UserID: userID},
		}, nil)

	_, err := f.service.Register(ctx, input)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestUserService_Register_WrongPasswordOnExistingAccount(t *testing.T) {
	f := createTestUserService(t, 0)
	ctx := context.Background()

	input := &usecase.RegisterInput{
		Email:    "asha@example.com",
		Password: "WrongPassword1!",
		Role:     entity.RoleProvider,
	}

	f.hasher.On("ValidatePasswordStrength", input.Password).Return(nil)
	f.hasher.On("Hash", input.Password).Return("hashed-password", nil)
	f.hasher.On("Check", input.Password, "stored-hash").Return(false)

	f.runTransaction(ctx)
	f.factory.On("UserRepo").Return(f.userRepo)
	f.factory.On("AuthRepo").Return(f.authRepo)

	f.authRepo.On("FindAuthentication", ctx, "email", input.Email).
		Return(&entity.Authentication{UserID: uuid.New(), PasswordHash: "stored-hash"}, nil)

	_, err := f.service.Register(ctx, input)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestUserService_Register_InvalidRole(t *testing.T) {
	f := createTestUserService(t, 0)

	_, err := f.service.Register(context.Background(), &usecase.RegisterInput{
		Email:    "asha@example.com",
		Password: "Password123!",
		Role:     entity.Role("admin"),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrRoleRequired))
}

func TestUserService_Register_WeakPassword(t *testing.T) {
	f := createTestUserService(t, 0)

	f.hasher.On("ValidatePasswordStrength", "weak").Return(errors.New("too short"))

	_, err := f.service.Register(context.Background(), &usecase.RegisterInput{
		Email:    "asha@example.com",
		Password: "weak",
		Role:     entity.RoleCustomer,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestUserService_Login_Success(t *testing.T) {
	f := createTestUserService(t, 0)
	ctx := context.Background()
	userID := uuid.New()

	user := &entity.User{
		ID:              userID,
		Email:           "asha@example.com",
		CustomerProfile: &entity.CustomerProfile{UserID: userID},
	}

	f.authRepo.On("FindAuthentication", ctx, "email", user.Email).
		Return(&entity.Authentication{UserID: userID, PasswordHash: "stored-hash"}, nil)
	f.hasher.On("Check", "Password123!", "stored-hash").Return(true)
	f.userRepo.On("FindByID", ctx, userID).Return(user, nil)
	f.tokenService.On("GenerateTokens", userID, []string{"customer"}).
		Return("access-token", "refresh-token", nil)
	f.tokenService.On("HashToken", "refresh-token").Return("refresh-hash")
	f.tokenService.On("GetRefreshTokenDuration").Return(24 * time.Hour)
	f.refreshTokenRepo.On("CreateRefreshToken", ctx, mock.MatchedBy(func(token *entity.RefreshToken) bool {
		return token.UserID == userID && token.TokenHash == "refresh-hash"
	})).Return(nil)

	output, err := f.service.Login(ctx, &usecase.LoginInput{Email: user.Email, Password: "Password123!"})

	require.NoError(t, err)
	assert.Equal(t, "access-token", output.AccessToken)
	assert.Equal(t, "refresh-token", output.RefreshToken)
	assert.Equal(t, userID, output.User.ID)
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	f := createTestUserService(t, 0)
	ctx := context.Background()

	f.authRepo.On("FindAuthentication", ctx, "email", "nobody@example.com").
		Return(nil, repository.ErrAuthNotFound)

	_, err := f.service.Login(ctx, &usecase.LoginInput{Email: "nobody@example.com", Password: "x"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	f := createTestUserService(t, 0)
	ctx := context.Background()

	f.authRepo.On("FindAuthentication", ctx, "email", "asha@example.com").
		Return(&entity.Authentication{UserID: uuid.New(), PasswordHash: "stored-hash"}, nil)
	f.hasher.On("Check", "wrong", "stored-hash").Return(false)

	_, err := f.service.Login(ctx, &usecase.LoginInput{Email: "asha@example.com", Password: "wrong"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestUserService_Login_SessionLimitExceeded(t *testing.T) {
	f := createTestUserService(t, 3)
	ctx := context.Background()
	userID := uuid.New()

	user := &entity.User{ID: userID, CustomerProfile: &entity.CustomerProfile{UserID: userID}}

	f.authRepo.On("FindAuthentication", ctx, "email", "asha@example.com").
		Return(&entity.Authentication{UserID: userID, PasswordHash: "stored-hash"}, nil)
	f.hasher.On("Check", "Password123!", "stored-hash").Return(true)
	f.userRepo.On("FindByID", ctx, userID).Return(user, nil)
	f.tokenService.On("GenerateTokens", userID, []string{"customer"}).
		Return("access-token", "refresh-token", nil)
	f.refreshTokenRepo.On("CountActiveSessionsByUserID", ctx, userID).Return(3, nil)

	_, err := f.service.Login(ctx, &usecase.LoginInput{Email: "asha@example.com", Password: "Password123!"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrSessionLimitExceeded))
}

func TestUserService_RefreshToken_IssuesNewAccessTokenOnly(t *testing.T) {
	f := createTestUserService(t, 0)
	ctx := context.Background()
	userID := uuid.New()

	user := &entity.User{ID: userID, CustomerProfile: &entity.CustomerProfile{UserID: userID}}

	f.tokenService.On("ValidateToken", "refresh-token").
		Return(refreshClaims(userID), nil)
	f.tokenService.On("HashToken", "refresh-token").Return("refresh-hash")
	f.refreshTokenRepo.On("FindRefreshTokenByHash", ctx, "refresh-hash").
		Return(&entity.RefreshToken{UserID: userID, TokenHash: "refresh-hash"}, nil)
	f.userRepo.On("FindByID", ctx, userID).Return(user, nil)
	f.tokenService.On("GenerateTokens", userID, []string{"customer"}).
		Return("new-access-token", "unused-refresh", nil)

	output, err := f.service.RefreshToken(ctx, &usecase.RefreshTokenInput{RefreshToken: "refresh-token"})

	require.NoError(t, err)
	assert.Equal(t, "new-access-token", output.AccessToken)
}

func TestUserService_RefreshToken_UnknownHash(t *testing.T) {
	f := createTestUserService(t, 0)
	ctx := context.Background()
	userID := uuid.New()

	f.tokenService.On("ValidateToken", "refresh-token").
		Return(refreshClaims(userID), nil)
	f.tokenService.On("HashToken", "refresh-token").Return("refresh-hash")
	f.refreshTokenRepo.On("FindRefreshTokenByHash", ctx, "refresh-hash").
		Return(nil, repository.ErrRefreshTokenNotFound)

	_, err := f.service.RefreshToken(ctx, &usecase.RefreshTokenInput{RefreshToken: "refresh-token"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrRefreshTokenNotFound))
}

func TestUserService_Logout_DeletesTokenEvenWhenInvalid(t *testing.T) {
	f := createTestUserService(t, 0)
	ctx := context.Background()

	f.tokenService.On("ValidateToken", "stale-token").Return(nil, errors.New("expired"))
	f.tokenService.On("HashToken", "stale-token").Return("stale-hash")
	f.refreshTokenRepo.On("DeleteRefreshTokenByHash", ctx, "stale-hash").Return(nil)

	err := f.service.Logout(ctx, &usecase.LogoutInput{RefreshToken: "stale-token"})

	require.NoError(t, err)
}

func TestUserService_GoogleLogin_CreatesCustomerAccount(t *testing.T) {
	f := createTestUserService(t, 0)
	ctx := context.Background()

	oauthUser := federatedIdentity("google", "google-sub-123", "asha@example.com", "")
	f.googleAuth.On("VerifyIDToken", ctx, "google-id-token").Return(oauthUser, nil)

	f.runTransaction(ctx)
	f.factory.On("UserRepo").Return(f.userRepo)
	f.factory.On("AuthRepo").Return(f.authRepo)

	f.authRepo.On("FindAuthentication", ctx, "google", "google-sub-123").
		Return(nil, repository.ErrAuthNotFound)
	f.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.User).ID = uuid.New()
		}).
		Return(nil)
	f.userRepo.On("UpsertCustomerProfile", ctx, mock.AnythingOfType("*entity.CustomerProfile")).Return(nil)
	f.authRepo.On("CreateAuthentication", ctx, mock.MatchedBy(func(auth *entity.Authentication) bool {
		return auth.Provider == "google" && auth.ProviderUserID == "google-sub-123" && auth.PasswordHash == ""
	})).Return(nil)

	f.tokenService.On("GenerateTokens", mock.AnythingOfType("uuid.UUID"), []string{"customer"}).
		Return("access-token", "refresh-token", nil)
	f.tokenService.On("HashToken", "refresh-token").Return("refresh-hash")
	f.tokenService.On("GetRefreshTokenDuration").Return(24 * time.Hour)
	f.refreshTokenRepo.On("CreateRefreshToken", ctx, mock.AnythingOfType("*entity.RefreshToken")).Return(nil)

	output, err := f.service.GoogleLogin(ctx, &usecase.FederatedLoginInput{IDToken: "google-id-token"})

	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", output.User.Email)
	assert.NotNil(t, output.User.CustomerProfile)
}

func TestUserService_PhoneLogin_ReusesLinkedAccount(t *testing.T) {
	f := createTestUserService(t, 0)
	ctx := context.Background()
	userID := uuid.New()

	oauthUser := federatedIdentity("phone", "firebase-uid-9", "", "+919900112233")
	f.phoneAuth.On("VerifyIDToken", ctx, "firebase-id-token").Return(oauthUser, nil)

	f.runTransaction(ctx)
	f.factory.On("UserRepo").Return(f.userRepo)
	f.factory.On("AuthRepo").Return(f.authRepo)

	f.authRepo.On("FindAuthentication", ctx, "phone", "firebase-uid-9").
		Return(&entity.Authentication{UserID: userID}, nil)
	f.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{
			ID:              userID,
			Phone:           "+919900112233",
			CustomerProfile: &entity.CustomerProfile{UserID: userID},
		}, nil)

	f.tokenService.On("GenerateTokens", userID, []string{"customer"}).
		Return("access-token", "refresh-token", nil)
	f.tokenService.On("HashToken", "refresh-token").Return("refresh-hash")
	f.tokenService.On("GetRefreshTokenDuration").Return(24 * time.Hour)
	f.refreshTokenRepo.On("CreateRefreshToken", ctx, mock.AnythingOfType("*entity.RefreshToken")).Return(nil)

	output, err := f.service.PhoneLogin(ctx, &usecase.FederatedLoginInput{IDToken: "firebase-id-token"})

	require.NoError(t, err)
	assert.Equal(t, userID, output.User.ID)
}
