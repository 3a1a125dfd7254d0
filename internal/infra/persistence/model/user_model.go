package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
// It is an exported type so it can be used by the GORM Gen tool from other packages.
// Email is nullable because phone sign-in accounts may not carry one.
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email     *string   `gorm:"type:varchar(255);uniqueIndex"`
	Name      string    `gorm:"type:varchar(100)"`
	Phone     string    `gorm:"type:varchar(20);index"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time `gorm:"index"`

	CustomerProfile *CustomerProfileModel `gorm:"foreignKey:UserID"`
	ProviderProfile *ProviderProfileModel `gorm:"foreignKey:UserID"`
	Authentications []AuthenticationModel `gorm:"foreignKey:UserID"`
	RefreshTokens   []RefreshTokenModel   `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// CustomerProfileModel mirrors the 'customer_profiles' table. UserID references users.id (UUID).
type CustomerProfileModel struct {
	UserID    uuid.UUID `gorm:"primaryKey"`
	City      string    `gorm:"type:varchar(100)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CustomerProfileModel) TableName() string {
	return "customer_profiles"
}

// ProviderProfileModel mirrors the 'provider_profiles' table. UserID references users.id (UUID).
// Skills is stored as a JSON-encoded string array.
type ProviderProfileModel struct {
	UserID          uuid.UUID `gorm:"primaryKey"`
	Bio             string    `gorm:"type:text"`
	Skills          string    `gorm:"type:text"`
	ExperienceYears int
	Rating          float64 `gorm:"not null;default:0"`
	ReviewCount     int     `gorm:"not null;default:0"`
	Verified        bool    `gorm:"not null;default:false"`
	LocationName    string  `gorm:"type:varchar(255)"`
	Latitude        float64
	Longitude       float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProviderProfileModel) TableName() string {
	return "provider_profiles"
}
