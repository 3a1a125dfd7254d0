package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel mirrors the 'orders' table. The shipping address is inlined as a
// snapshot so later profile edits never rewrite order history.
type OrderModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Number        string    `gorm:"type:varchar(20);unique;not null"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Subtotal      int64     `gorm:"not null"`
	DeliveryFee   int64     `gorm:"not null"`
	Total         int64     `gorm:"not null"`
	PaymentMethod string    `gorm:"type:varchar(10);not null"`
	Status        string    `gorm:"type:varchar(20);not null"`

	ShipFullName string `gorm:"type:varchar(100);not null"`
	ShipPhone    string `gorm:"type:varchar(20);not null"`
	ShipLine1    string `gorm:"type:varchar(255);not null"`
	ShipLine2    string `gorm:"type:varchar(255)"`
	ShipCity     string `gorm:"type:varchar(100);not null"`
	ShipState    string `gorm:"type:varchar(100)"`
	ShipPincode  string `gorm:"type:varchar(6);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Items []OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table.
type OrderItemModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Price     int64     `gorm:"not null"`
	Quantity  int       `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
