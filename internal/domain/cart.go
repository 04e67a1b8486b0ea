package domain

import "time"

// ItemKey is the composite identity of a cart line item. A cart holds at most
// one line item per key; re-adding the same key merges quantities.
type ItemKey struct {
	GameID   string `json:"game_id"`
	BundleID string `json:"bundle_id"`
}

// LineItem is one purchasable quantity of a currency bundle for a game.
// UnitPrice is copied from the catalog at add time and never re-read, so a
// later catalog price change cannot alter an item already in the cart.
type LineItem struct {
	GameID     string  `json:"game_id"`
	GameName   string  `json:"game_name"`
	BundleID   string  `json:"bundle_id"`
	BundleName string  `json:"bundle_name"`
	UnitPrice  float64 `json:"unit_price"`
	Quantity   int     `json:"quantity"`
}

// Key returns the composite identity of the line item.
func (i LineItem) Key() ItemKey {
	return ItemKey{GameID: i.GameID, BundleID: i.BundleID}
}

// Subtotal returns unit price times quantity for this line item.
func (i LineItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// Cart is the session-scoped collection of line items. Insertion order is
// preserved for display; totals are derived from the item list on every read,
// never cached. Version increases on every content change and drives the
// review screen's selection resync.
type Cart struct {
	ID        string     `json:"id"`
	SessionID string     `json:"session_id"`
	Items     []LineItem `json:"items"`
	Version   int        `json:"version"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// Total calculates the sum of unit price times quantity over all items.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

// ItemCount returns the total number of units in the cart.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// FindItemIndex returns the index of the line item matching the given key,
// or -1 if not found.
func (c *Cart) FindItemIndex(gameID, bundleID string) int {
	for i := range c.Items {
		if c.Items[i].GameID == gameID && c.Items[i].BundleID == bundleID {
			return i
		}
	}
	return -1
}

// Keys returns the identity of every line item in display order.
func (c *Cart) Keys() []ItemKey {
	keys := make([]ItemKey, len(c.Items))
	for i, item := range c.Items {
		keys[i] = item.Key()
	}
	return keys
}

// IsEmpty reports whether the cart has no line items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
