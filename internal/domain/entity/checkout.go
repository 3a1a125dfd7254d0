// Package entity contains the core business objects of the project.
package entity

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// CheckoutStep is the position of a checkout session within the payment wizard.
type CheckoutStep string

const (
	// StepCart is the initial step where the customer reviews cart contents.
	StepCart CheckoutStep = "cart"
	// StepAddress collects the shipping address.
	StepAddress CheckoutStep = "address"
	// StepPayment collects the payment method and its details.
	StepPayment CheckoutStep = "payment"
	// StepConfirm shows the order summary with final totals.
	StepConfirm CheckoutStep = "confirm"
	// StepVerify collects the payment credential (UPI PIN or card OTP).
	StepVerify CheckoutStep = "verify"
	// StepSuccess is the terminal step after payment succeeds.
	StepSuccess CheckoutStep = "success"
)

// String returns the string representation of the CheckoutStep.
func (s CheckoutStep) String() string {
	return string(s)
}

// PaymentMethod is the way a customer pays for an order.
type PaymentMethod string

const (
	// PaymentUPI pays through a UPI id, verified with a PIN.
	PaymentUPI PaymentMethod = "upi"
	// PaymentCard pays by card, verified with an OTP.
	PaymentCard PaymentMethod = "card"
	// PaymentCOD is cash on delivery; no verification step.
	PaymentCOD PaymentMethod = "cod"
)

// IsValid checks if the PaymentMethod is a valid value.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentUPI, PaymentCard, PaymentCOD:
		return true
	default:
		return false
	}
}

// RequiresVerification reports whether the method needs a credential step before capture.
func (m PaymentMethod) RequiresVerification() bool {
	return m == PaymentUPI || m == PaymentCard
}

// Checkout guard errors. These mark invalid wizard input or an operation
// attempted at the wrong step; the application layer maps them to 400/409 responses.
var (
	ErrCheckoutStepMismatch = errors.New("operation not allowed at current checkout step")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidAddress       = errors.New("invalid shipping address")
	ErrInvalidPayment       = errors.New("invalid payment details")
	ErrInvalidCredential    = errors.New("invalid payment credential")
	ErrNoPriorStep          = errors.New("no previous step to return to")
)

// CartItem is one product line inside a checkout cart. Name and Price are
// snapshots taken when the item was added.
type CartItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Quantity  int       `json:"quantity"`
}

// Cart holds the items the customer intends to buy.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Subtotal sums price times quantity across all items.
func (c Cart) Subtotal() int64 {
	var sum int64
	for _, item := range c.Items {
		sum += item.Price * int64(item.Quantity)
	}

	return sum
}

// IsEmpty reports whether the cart has no items.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ShippingAddress is where a paid order will be delivered.
type ShippingAddress struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Line1    string `json:"line1"`
	Line2    string `json:"line2"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
}

// Validate enforces the address guards: name, phone with at least 10 digits,
// address line, city, and a 6-digit pincode. Line2 and State are optional.
func (a ShippingAddress) Validate() error {
	if strings.TrimSpace(a.FullName) == "" {
		return errors.Join(ErrInvalidAddress, errors.New("full name is required"))
	}
	if countDigits(a.Phone) < 10 {
		return errors.Join(ErrInvalidAddress, errors.New("phone must contain at least 10 digits"))
	}
	if strings.TrimSpace(a.Line1) == "" {
		return errors.Join(ErrInvalidAddress, errors.New("address line is required"))
	}
	if strings.TrimSpace(a.City) == "" {
		return errors.Join(ErrInvalidAddress, errors.New("city is required"))
	}
	if !isDigits(a.Pincode) || len(a.Pincode) != 6 {
		return errors.Join(ErrInvalidAddress, errors.New("pincode must be exactly 6 digits"))
	}

	return nil
}

// PaymentDetails carries the chosen method and its method-specific fields.
// Only the fields for the selected method are validated.
type PaymentDetails struct {
	Method     PaymentMethod `json:"method"`
	UPIID      string        `json:"upi_id,omitempty"`
	CardNumber string        `json:"card_number,omitempty"`
	CardExpiry string        `json:"card_expiry,omitempty"`
	CardCVV    string        `json:"card_cvv,omitempty"`
	CardHolder string        `json:"card_holder,omitempty"`
}

// Validate enforces the per-method payment guards.
func (p PaymentDetails) Validate() error {
	switch p.Method {
	case PaymentUPI:
		if !strings.Contains(p.UPIID, "@") {
			return errors.Join(ErrInvalidPayment, errors.New("upi id must contain '@'"))
		}
	case PaymentCard:
		if countDigits(p.CardNumber) < 16 {
			return errors.Join(ErrInvalidPayment, errors.New("card number must contain at least 16 digits"))
		}
		if !strings.Contains(p.CardExpiry, "/") {
			return errors.Join(ErrInvalidPayment, errors.New("card expiry must be in MM/YY form"))
		}
		if countDigits(p.CardCVV) < 3 {
			return errors.Join(ErrInvalidPayment, errors.New("cvv must contain at least 3 digits"))
		}
		if strings.TrimSpace(p.CardHolder) == "" {
			return errors.Join(ErrInvalidPayment, errors.New("card holder name is required"))
		}
	case PaymentCOD:
		// Cash on delivery needs no details.
	default:
		return errors.Join(ErrInvalidPayment, errors.New("unknown payment method"))
	}

	return nil
}

// ValidateCredential enforces the verification guards for the selected method:
// a UPI PIN of at least 4 digits, or a card OTP of exactly 6 digits.
func (p PaymentDetails) ValidateCredential(credential string) error {
	switch p.Method {
	case PaymentUPI:
		if !isDigits(credential) || len(credential) < 4 {
			return errors.Join(ErrInvalidCredential, errors.New("pin must be at least 4 digits"))
		}
	case PaymentCard:
		if !isDigits(credential) || len(credential) != 6 {
			return errors.Join(ErrInvalidCredential, errors.New("otp must be exactly 6 digits"))
		}
	default:
		return errors.Join(ErrInvalidCredential, errors.New("method does not take a credential"))
	}

	return nil
}

// CheckoutTotals is the priced view of a cart.
type CheckoutTotals struct {
	Subtotal    int64 `json:"subtotal"`
	DeliveryFee int64 `json:"delivery_fee"`
	Total       int64 `json:"total"`
}

// PricingPolicy computes checkout totals from cart contents.
type PricingPolicy struct {
	DeliveryFee           int64
	FreeShippingThreshold int64
}

// TotalsFor applies the flat delivery fee when the subtotal is below the
// free shipping threshold; at or above the threshold delivery is free.
func (p PricingPolicy) TotalsFor(cart Cart) CheckoutTotals {
	subtotal := cart.Subtotal()
	var fee int64
	if subtotal < p.FreeShippingThreshold {
		fee = p.DeliveryFee
	}

	return CheckoutTotals{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Total:       subtotal + fee,
	}
}

// CheckoutSession is one customer's in-flight walk through the payment wizard.
// All field values survive backward navigation so a returning step shows what
// was entered before. Sessions are ephemeral and never persisted.
type CheckoutSession struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Step      CheckoutStep
	Cart      Cart
	Address   ShippingAddress
	Payment   PaymentDetails
	PaidTotal int64  // Total captured at payment success; 0 until then.
	OrderID   string // Public order id assigned at success.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCheckoutSession starts a session at the cart step.
func NewCheckoutSession(userID uuid.UUID) *CheckoutSession {
	now := time.Now()

	return &CheckoutSession{
		ID:        uuid.New(),
		UserID:    userID,
		Step:      StepCart,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SubmitCart stores the cart contents and advances to the address step.
func (s *CheckoutSession) SubmitCart(cart Cart) error {
	if s.Step != StepCart {
		return ErrCheckoutStepMismatch
	}
	if cart.IsEmpty() {
		return ErrEmptyCart
	}

	s.Cart = cart
	s.advance(StepAddress)

	return nil
}

// SubmitAddress validates and stores the shipping address, advancing to payment.
func (s *CheckoutSession) SubmitAddress(addr ShippingAddress) error {
	if s.Step != StepAddress {
		return ErrCheckoutStepMismatch
	}
	if err := addr.Validate(); err != nil {
		return err
	}

	s.Address = addr
	s.advance(StepPayment)

	return nil
}

// SubmitPayment validates and stores the payment details, advancing to confirm.
func (s *CheckoutSession) SubmitPayment(details PaymentDetails) error {
	if s.Step != StepPayment {
		return ErrCheckoutStepMismatch
	}
	if err := details.Validate(); err != nil {
		return err
	}

	s.Payment = details
	s.advance(StepConfirm)

	return nil
}

// BeginVerification moves from confirm to verify for methods that need a credential.
// Cash on delivery skips verification entirely; callers complete it from confirm.
func (s *CheckoutSession) BeginVerification() error {
	if s.Step != StepConfirm {
		return ErrCheckoutStepMismatch
	}
	if !s.Payment.Method.RequiresVerification() {
		return ErrCheckoutStepMismatch
	}

	s.advance(StepVerify)

	return nil
}

// Complete records the captured total and order id, clears the cart, and moves
// to the terminal success step. Valid from verify, or from confirm for COD.
func (s *CheckoutSession) Complete(total int64, orderID string) error {
	switch s.Step {
	case StepVerify:
	case StepConfirm:
		if s.Payment.Method.RequiresVerification() {
			return ErrCheckoutStepMismatch
		}
	default:
		return ErrCheckoutStepMismatch
	}

	s.PaidTotal = total
	s.OrderID = orderID
	s.Cart = Cart{}
	s.advance(StepSuccess)

	return nil
}

// Back returns to the immediate predecessor step. Entered values are kept.
// The cart step has no predecessor and success is terminal.
func (s *CheckoutSession) Back() error {
	switch s.Step {
	case StepAddress:
		s.advance(StepCart)
	case StepPayment:
		s.advance(StepAddress)
	case StepConfirm:
		s.advance(StepPayment)
	case StepVerify:
		s.advance(StepConfirm)
	default:
		return ErrNoPriorStep
	}

	return nil
}

func (s *CheckoutSession) advance(step CheckoutStep) {
	s.Step = step
	s.UpdatedAt = time.Now()
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}

	return n
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}

	return true
}
