package domain

import (
	"time"

	apperrors "github.com/gamify/storefront/pkg/errors"
)

// Payment method constants. This is a fixed, closed set.
const (
	PaymentMethodBkash  = "bkash"
	PaymentMethodNagad  = "nagad"
	PaymentMethodRocket = "rocket"
	PaymentMethodCard   = "card"
)

// Order status constants.
const (
	OrderStatusSettled = "settled"
	OrderStatusFailed  = "failed"
)

// PaymentMethods returns all valid payment methods.
func PaymentMethods() []string {
	return []string{
		PaymentMethodBkash,
		PaymentMethodNagad,
		PaymentMethodRocket,
		PaymentMethodCard,
	}
}

// IsValidPaymentMethod checks whether the given method is in the closed set.
func IsValidPaymentMethod(method string) bool {
	for _, m := range PaymentMethods() {
		if m == method {
			return true
		}
	}
	return false
}

// IsMobileWallet reports whether the method is a mobile-wallet method,
// which requires a phone number instead of card details.
func IsMobileWallet(method string) bool {
	return method == PaymentMethodBkash || method == PaymentMethodNagad || method == PaymentMethodRocket
}

// PaymentDetails holds the method-specific fields collected before settlement.
// Only the fields for the selected method are validated; values entered for
// another method never satisfy the current one.
type PaymentDetails struct {
	Method      string `json:"method"`
	PhoneNumber string `json:"phone_number,omitempty"`
	CardNumber  string `json:"card_number,omitempty"`
	CardExpiry  string `json:"card_expiry,omitempty"`
	CardCVV     string `json:"card_cvv,omitempty"`
}

// Validate checks that a method is selected and that every field the method
// requires is present. Each missing requirement has its own message so the
// user is told exactly what to fix.
func (d PaymentDetails) Validate() error {
	if d.Method == "" {
		return apperrors.InvalidInput("please select a payment method")
	}
	if !IsValidPaymentMethod(d.Method) {
		return apperrors.InvalidInput("unknown payment method: " + d.Method)
	}

	if IsMobileWallet(d.Method) {
		if d.PhoneNumber == "" {
			return apperrors.InvalidInput("please enter your mobile number")
		}
		return nil
	}

	// Card method.
	if d.CardNumber == "" {
		return apperrors.InvalidInput("please enter your card number")
	}
	if d.CardExpiry == "" {
		return apperrors.InvalidInput("please enter your card expiry date")
	}
	if d.CardCVV == "" {
		return apperrors.InvalidInput("please enter your card CVV")
	}
	return nil
}

// Order is the terminal artifact of a successful settlement. It is returned
// to the caller and published as an event; durable order management is a
// separate concern.
type Order struct {
	ID                string     `json:"id"`
	SessionID         string     `json:"session_id"`
	CheckoutID        string     `json:"checkout_id"`
	Status            string     `json:"status"`
	PaymentMethod     string     `json:"payment_method"`
	Items             []LineItem `json:"items"`
	Subtotal          float64    `json:"subtotal"`
	Discount          float64    `json:"discount"`
	Total             float64    `json:"total"`
	CouponCode        string     `json:"coupon_code,omitempty"`
	ProviderPaymentID string     `json:"provider_payment_id,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}
