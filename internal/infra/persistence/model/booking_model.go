package model

import (
	"time"

	"github.com/google/uuid"
)

// BookingModel mirrors the 'bookings' table.
type BookingModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CustomerID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ProviderID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ServiceID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Status      string    `gorm:"type:varchar(20);not null;index"`
	Price       int64     `gorm:"not null"`
	ScheduledAt time.Time `gorm:"not null"`
	Notes       string    `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (BookingModel) TableName() string {
	return "bookings"
}
