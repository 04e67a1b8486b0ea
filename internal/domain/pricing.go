package domain

import "strings"

// Coupon is an applied discount: the code as the user entered it and a
// fractional rate in [0, 1). At most one coupon is applied at a time.
type Coupon struct {
	Code         string  `json:"code"`
	DiscountRate float64 `json:"discount_rate"`
}

// Accepted coupon codes. Matching is case-insensitive; validation against a
// real campaign backend is out of scope.
var acceptedCoupons = map[string]float64{
	"GAMIFY10": 0.10,
}

// LookupCoupon validates a user-entered coupon code against the accepted set.
// The comparison is case-insensitive but the returned coupon keeps the code
// as entered. Returns false for unknown codes.
func LookupCoupon(code string) (*Coupon, bool) {
	trimmed := strings.TrimSpace(code)
	rate, ok := acceptedCoupons[strings.ToUpper(trimmed)]
	if !ok {
		return nil, false
	}
	return &Coupon{Code: trimmed, DiscountRate: rate}, true
}

// Quote is the derived pricing for a set of selected items and an optional
// coupon. All values are computed from unrounded unit prices on every
// derivation; rounding to two digits happens only at presentation time.
type Quote struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// NewQuote derives subtotal, discount, and final total from the selected
// items total and the applied coupon. The total is floored at zero; with
// rates below 1 it cannot go negative, the floor is policy for any future
// fixed-amount discount.
func NewQuote(selectedTotal float64, coupon *Coupon) Quote {
	q := Quote{Subtotal: selectedTotal}
	if coupon != nil {
		q.Discount = selectedTotal * coupon.DiscountRate
	}
	q.Total = q.Subtotal - q.Discount
	if q.Total < 0 {
		q.Total = 0
	}
	return q
}
