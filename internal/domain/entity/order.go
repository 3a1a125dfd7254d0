// Package entity contains the core business objects of the project.
package entity

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the fulfilment state of a shop order.
type OrderStatus string

const (
	// OrderPlaced means payment succeeded (or COD was confirmed) and the
	// order is waiting to be shipped.
	OrderPlaced OrderStatus = "placed"
	// OrderShipped means the order left the provider.
	OrderShipped OrderStatus = "shipped"
	// OrderDelivered is the terminal state.
	OrderDelivered OrderStatus = "delivered"
)

// String returns the string representation of the OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// orderNumberPrefix marks public order numbers issued by this service.
const orderNumberPrefix = "JGR-"

// NewOrderNumber issues a public order number like "JGR-48213957".
// The number is what customers quote in support tickets, distinct from the row id.
func NewOrderNumber() string {
	n, err := rand.Int(rand.Reader, big.NewInt(100000000))
	if err != nil {
		// crypto/rand only fails when the platform source is broken.
		n = big.NewInt(time.Now().UnixNano() % 100000000)
	}

	return fmt.Sprintf("%s%08d", orderNumberPrefix, n.Int64())
}

// OrderItem is one purchased line of an order, copied from the cart at checkout.
type OrderItem struct {
	ID        uuid.UUID // The unique ID of the line.
	OrderID   uuid.UUID // The order this line belongs to.
	ProductID uuid.UUID // The purchased product.
	Name      string    // Product name snapshot.
	Price     int64     // Unit price snapshot.
	Quantity  int       // Units purchased.
}

// Order is a completed shop purchase. Amounts and the shipping address are
// snapshots taken at payment time and never change afterwards.
type Order struct {
	ID            uuid.UUID       // The unique ID of the order row.
	Number        string          // Public order number, "JGR-" prefixed.
	UserID        uuid.UUID       // The customer who placed the order.
	Items         []OrderItem     // Purchased lines.
	Subtotal      int64           // Sum of line totals.
	DeliveryFee   int64           // Fee charged, zero when shipping was free.
	Total         int64           // Amount captured from the customer.
	PaymentMethod PaymentMethod   // How the order was paid.
	Status        OrderStatus     // Fulfilment state.
	Address       ShippingAddress // Delivery address snapshot.
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
