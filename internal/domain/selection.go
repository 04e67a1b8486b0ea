package domain

import "time"

// ReviewState is the per-session cart review state: which line items are
// marked for the next checkout, plus the applied coupon if any. It records
// the cart identity and version it was built against; SyncWithCart resets
// the selection whenever the cart has changed underneath it, so the
// selection never retains stale keys for removed items.
type ReviewState struct {
	SessionID    string    `json:"session_id"`
	CartID       string    `json:"cart_id"`
	CartVersion  int       `json:"cart_version"`
	SelectedKeys []ItemKey `json:"selected_keys"`
	Coupon       *Coupon   `json:"coupon,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewReviewState creates a review state for the given cart with every current
// line item selected, the default after any cart change.
func NewReviewState(sessionID string, cart *Cart) *ReviewState {
	return &ReviewState{
		SessionID:    sessionID,
		CartID:       cart.ID,
		CartVersion:  cart.Version,
		SelectedKeys: cart.Keys(),
		UpdatedAt:    time.Now().UTC(),
	}
}

// SyncWithCart resynchronizes the selection against the cart's current
// contents. If the cart has changed since the state was recorded (different
// cart or different version), the selection resets to all current items.
// The coupon is dropped when the cart no longer has any items to select.
// Returns true if anything changed.
func (s *ReviewState) SyncWithCart(cart *Cart) bool {
	changed := false

	if s.CartID != cart.ID || s.CartVersion != cart.Version {
		s.CartID = cart.ID
		s.CartVersion = cart.Version
		s.SelectedKeys = cart.Keys()
		changed = true
	}

	if cart.IsEmpty() && s.Coupon != nil {
		s.Coupon = nil
		changed = true
	}

	if changed {
		s.UpdatedAt = time.Now().UTC()
	}
	return changed
}

// IsSelected reports whether the given key is in the selection.
func (s *ReviewState) IsSelected(key ItemKey) bool {
	for _, k := range s.SelectedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Toggle flips membership of the given key in the selection.
func (s *ReviewState) Toggle(key ItemKey) {
	for i, k := range s.SelectedKeys {
		if k == key {
			s.SelectedKeys = append(s.SelectedKeys[:i], s.SelectedKeys[i+1:]...)
			s.UpdatedAt = time.Now().UTC()
			return
		}
	}
	s.SelectedKeys = append(s.SelectedKeys, key)
	s.UpdatedAt = time.Now().UTC()
}

// ToggleAll is a strict two-state toggle: if every cart item is currently
// selected the selection is cleared; any other state (including partial
// selections) collapses to "all selected".
func (s *ReviewState) ToggleAll(cart *Cart) {
	if len(s.SelectedKeys) == len(cart.Items) && len(cart.Items) > 0 {
		s.SelectedKeys = []ItemKey{}
	} else {
		s.SelectedKeys = cart.Keys()
	}
	s.UpdatedAt = time.Now().UTC()
}

// SelectedItems returns the cart line items whose key is in the selection,
// in cart display order.
func (s *ReviewState) SelectedItems(cart *Cart) []LineItem {
	items := make([]LineItem, 0, len(s.SelectedKeys))
	for _, item := range cart.Items {
		if s.IsSelected(item.Key()) {
			items = append(items, item)
		}
	}
	return items
}

// SelectedTotal sums unit price times quantity over selected items.
// It is 0 when the selection is empty.
func (s *ReviewState) SelectedTotal(cart *Cart) float64 {
	var total float64
	for _, item := range cart.Items {
		if s.IsSelected(item.Key()) {
			total += item.Subtotal()
		}
	}
	return total
}

// AllSelected reports whether every cart item is currently selected.
func (s *ReviewState) AllSelected(cart *Cart) bool {
	if len(cart.Items) == 0 {
		return false
	}
	for _, item := range cart.Items {
		if !s.IsSelected(item.Key()) {
			return false
		}
	}
	return true
}
