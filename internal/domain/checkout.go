package domain

import (
	"time"

	"github.com/google/uuid"
)

// CheckoutSnapshot is the immutable payload handed from the cart review to
// the payment step: a copy of the selected line items with pricing fixed at
// handoff time. The payment step derives everything from this frozen list,
// so later cart mutations cannot retroactively change an in-flight checkout.
type CheckoutSnapshot struct {
	ID         string     `json:"id"`
	SessionID  string     `json:"session_id"`
	Items      []LineItem `json:"items"`
	Subtotal   float64    `json:"subtotal"`
	Discount   float64    `json:"discount"`
	Total      float64    `json:"total"`
	CouponCode string     `json:"coupon_code,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	ExpiresAt  time.Time  `json:"expires_at"`
}

// NewCheckoutSnapshot freezes the given selected items and quote into a new
// snapshot. The items slice is copied so the snapshot is detached from the
// live cart.
func NewCheckoutSnapshot(sessionID string, items []LineItem, quote Quote, couponCode string, ttl time.Duration) *CheckoutSnapshot {
	copied := make([]LineItem, len(items))
	copy(copied, items)

	now := time.Now().UTC()
	return &CheckoutSnapshot{
		ID:         uuid.New().String(),
		SessionID:  sessionID,
		Items:      copied,
		Subtotal:   quote.Subtotal,
		Discount:   quote.Discount,
		Total:      quote.Total,
		CouponCode: couponCode,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}
}

// ItemCount returns the total number of units in the snapshot.
func (s *CheckoutSnapshot) ItemCount() int {
	var count int
	for _, item := range s.Items {
		count += item.Quantity
	}
	return count
}

// Keys returns the identity of every snapshot line item.
func (s *CheckoutSnapshot) Keys() []ItemKey {
	keys := make([]ItemKey, len(s.Items))
	for i, item := range s.Items {
		keys[i] = item.Key()
	}
	return keys
}

// IsExpired checks whether the snapshot has passed its expiry time.
func (s *CheckoutSnapshot) IsExpired() bool {
	return time.Now().UTC().After(s.ExpiresAt)
}
