// Package repository defines the persistence interfaces for session-scoped
// storefront state. All state is keyed by session and expires; there is no
// durable database behind it.
package repository

import (
	"context"

	"github.com/gamify/storefront/internal/domain"
)

// CartRepository persists carts keyed by session ID.
type CartRepository interface {
	// Get retrieves the cart for a session. Returns ErrNotFound when the
	// session has no cart.
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)

	// Save persists the cart, refreshing its TTL.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes the cart for a session. Deleting an absent cart is
	// not an error.
	Delete(ctx context.Context, sessionID string) error
}

// ReviewRepository persists the per-session review state (selection + coupon).
type ReviewRepository interface {
	// Get retrieves the review state for a session. Returns ErrNotFound
	// when none exists.
	Get(ctx context.Context, sessionID string) (*domain.ReviewState, error)

	// Save persists the review state, refreshing its TTL.
	Save(ctx context.Context, state *domain.ReviewState) error

	// Delete removes the review state for a session.
	Delete(ctx context.Context, sessionID string) error
}

// SnapshotRepository persists checkout snapshots keyed by checkout ID.
type SnapshotRepository interface {
	// Save persists the snapshot with a TTL matching its expiry.
	Save(ctx context.Context, snap *domain.CheckoutSnapshot) error

	// Get retrieves a snapshot without consuming it. Returns ErrNotFound
	// when it does not exist or has expired.
	Get(ctx context.Context, checkoutID string) (*domain.CheckoutSnapshot, error)

	// Consume atomically retrieves and removes a snapshot, so at most one
	// settlement can ever start for it. Returns ErrNotFound if it was
	// already consumed or never existed.
	Consume(ctx context.Context, checkoutID string) (*domain.CheckoutSnapshot, error)
}
