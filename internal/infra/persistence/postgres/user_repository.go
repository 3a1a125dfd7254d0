// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"encoding/json"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID, preloading their profiles.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Preload("CustomerProfile").
		Preload("ProviderProfile").
		Where("id = ?", id).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by ID")
	}

	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Preload("CustomerProfile").
		Preload("ProviderProfile").
		Where("email = ?", email).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user entity to the storage.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrUserCreationFailed.WrapMessage("missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Update the entity with generated values
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Update modifies an existing user entity in the storage.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"email": userM.Email,
			"name":  userM.Name,
			"phone": userM.Phone,
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrUserAlreadyExists
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// UpsertCustomerProfile creates or replaces the user's customer profile.
func (repo *userRepository) UpsertCustomerProfile(ctx context.Context, profile *entity.CustomerProfile) error {
	profileM := &model.CustomerProfileModel{
		UserID: profile.UserID,
		City:   profile.City,
	}

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"city", "updated_at"}),
		}).
		Create(profileM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert customer profile")
	}

	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

// UpsertProviderProfile creates or replaces the user's provider profile.
func (repo *userRepository) UpsertProviderProfile(ctx context.Context, profile *entity.ProviderProfile) error {
	profileM := fromProviderProfileDomain(profile)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"bio", "skills", "experience_years", "location_name",
				"latitude", "longitude", "updated_at",
			}),
		}).
		Create(profileM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert provider profile")
	}

	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

// ListProviders retrieves all users that have a provider profile.
func (repo *userRepository) ListProviders(ctx context.Context) ([]*entity.User, error) {
	var userModels []*model.UserModel

	if err := repo.db.WithContext(ctx).
		Preload("ProviderProfile").
		Joins("JOIN provider_profiles ON provider_profiles.user_id = users.id").
		Order("users.created_at DESC").
		Find(&userModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list providers")
	}

	users := make([]*entity.User, 0, len(userModels))
	for _, userM := range userModels {
		users = append(users, toUserDomain(userM))
	}

	return users, nil
}

// --- Mapper Functions ---

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	user := &entity.User{
		ID:        data.ID,
		Name:      data.Name,
		Phone:     data.Phone,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
	if data.Email != nil {
		user.Email = *data.Email
	}
	if data.CustomerProfile != nil {
		user.CustomerProfile = &entity.CustomerProfile{
			UserID:    data.CustomerProfile.UserID,
			City:      data.CustomerProfile.City,
			UpdatedAt: data.CustomerProfile.UpdatedAt,
		}
	}
	if data.ProviderProfile != nil {
		user.ProviderProfile = toProviderProfileDomain(data.ProviderProfile)
	}

	return user
}

// fromUserDomain converts a domain User entity to a GORM UserModel.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	userM := &model.UserModel{
		ID:        data.ID,
		Name:      data.Name,
		Phone:     data.Phone,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
	if data.Email != "" {
		email := data.Email
		userM.Email = &email
	}

	return userM
}

// toProviderProfileDomain converts a GORM ProviderProfileModel to its domain entity.
func toProviderProfileDomain(data *model.ProviderProfileModel) *entity.ProviderProfile {
	profile := &entity.ProviderProfile{
		UserID:          data.UserID,
		Bio:             data.Bio,
		ExperienceYears: data.ExperienceYears,
		Rating:          data.Rating,
		ReviewCount:     data.ReviewCount,
		Verified:        data.Verified,
		LocationName:    data.LocationName,
		Latitude:        data.Latitude,
		Longitude:       data.Longitude,
		UpdatedAt:       data.UpdatedAt,
	}
	if data.Skills != "" {
		// Skills are stored as a JSON-encoded array; a decode failure leaves them empty.
		_ = json.Unmarshal([]byte(data.Skills), &profile.Skills)
	}

	return profile
}

// fromProviderProfileDomain converts a domain ProviderProfile to its GORM model.
func fromProviderProfileDomain(data *entity.ProviderProfile) *model.ProviderProfileModel {
	profileM := &model.ProviderProfileModel{
		UserID:          data.UserID,
		Bio:             data.Bio,
		ExperienceYears: data.ExperienceYears,
		Rating:          data.Rating,
		ReviewCount:     data.ReviewCount,
		Verified:        data.Verified,
		LocationName:    data.LocationName,
		Latitude:        data.Latitude,
		Longitude:       data.Longitude,
	}
	if len(data.Skills) > 0 {
		if encoded, err := json.Marshal(data.Skills); err == nil {
			profileM.Skills = string(encoded)
		}
	}

	return profileM
}
