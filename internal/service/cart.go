// Package service implements the storefront business logic: cart mutations,
// the checkout review flow, and payment settlement.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gamify/storefront/internal/catalog"
	"github.com/gamify/storefront/internal/domain"
	"github.com/gamify/storefront/internal/event"
	"github.com/gamify/storefront/internal/repository"
	apperrors "github.com/gamify/storefront/pkg/errors"
)

// CartService implements the business logic for cart operations.
type CartService struct {
	repo     repository.CartRepository
	producer *event.Producer
	logger   *slog.Logger
	cartTTL  time.Duration
}

// NewCartService creates a new cart service.
func NewCartService(repo repository.CartRepository, producer *event.Producer, logger *slog.Logger, cartTTL time.Duration) *CartService {
	return &CartService{
		repo:     repo,
		producer: producer,
		logger:   logger,
		cartTTL:  cartTTL,
	}
}

// GetCart retrieves the cart for a session. If no cart exists, returns an
// empty cart without persisting it.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.newEmptyCart(sessionID), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	return cart, nil
}

// AddItem adds one unit of a currency bundle to the session's cart. The unit
// price is resolved from the catalog, never taken from the caller. Adding a
// bundle that is already in the cart increments its quantity by one.
func (s *CartService) AddItem(ctx context.Context, sessionID, gameID, bundleID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if gameID == "" {
		return nil, apperrors.InvalidInput("game id is required")
	}
	if bundleID == "" {
		return nil, apperrors.InvalidInput("bundle id is required")
	}

	game, bundle, err := catalog.GetBundle(gameID, bundleID)
	if err != nil {
		return nil, err
	}

	cart, err := s.getOrCreateCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if idx := cart.FindItemIndex(gameID, bundleID); idx >= 0 {
		cart.Items[idx].Quantity++
	} else {
		cart.Items = append(cart.Items, domain.LineItem{
			GameID:     game.ID,
			GameName:   game.Name,
			BundleID:   bundle.ID,
			BundleName: bundle.Name,
			UnitPrice:  bundle.Price,
			Quantity:   1,
		})
	}

	if err := s.saveCart(ctx, cart); err != nil {
		return nil, err
	}

	s.publishCartUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("session_id", sessionID),
		slog.String("game_id", gameID),
		slog.String("bundle_id", bundleID),
	)

	return cart, nil
}

// UpdateQuantity sets the quantity of a line item exactly. Any quantity below
// one removes the item. There is no upper bound at this layer; stock limits
// belong to whatever fulfills the order. Updating an item that is not in the
// cart is a no-op.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, gameID, bundleID string, quantity int) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindItemIndex(gameID, bundleID)
	if idx < 0 {
		return cart, nil
	}

	if quantity < 1 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	} else {
		cart.Items[idx].Quantity = quantity
	}

	if err := s.saveCart(ctx, cart); err != nil {
		return nil, err
	}

	s.publishCartUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "cart item quantity updated",
		slog.String("session_id", sessionID),
		slog.String("game_id", gameID),
		slog.String("bundle_id", bundleID),
		slog.Int("quantity", quantity),
	)

	return cart, nil
}

// RemoveItem removes a line item from the cart. Removing an item that is not
// in the cart is a no-op, not an error.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, gameID, bundleID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindItemIndex(gameID, bundleID)
	if idx < 0 {
		return cart, nil
	}

	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)

	if err := s.saveCart(ctx, cart); err != nil {
		return nil, err
	}

	s.publishCartUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("session_id", sessionID),
		slog.String("game_id", gameID),
		slog.String("bundle_id", bundleID),
	)

	return cart, nil
}

// ClearCart removes the session's cart entirely.
func (s *CartService) ClearCart(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return apperrors.InvalidInput("session id is required")
	}

	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}

	if err := s.producer.PublishCartCleared(ctx, sessionID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart cleared",
		slog.String("session_id", sessionID),
	)

	return nil
}

// RemoveItems removes a set of line items in one mutation, used after a
// successful settlement to take purchased items out of the live cart.
func (s *CartService) RemoveItems(ctx context.Context, sessionID string, keys []domain.ItemKey) (*domain.Cart, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	remove := make(map[domain.ItemKey]bool, len(keys))
	for _, k := range keys {
		remove[k] = true
	}

	kept := cart.Items[:0]
	changed := false
	for _, item := range cart.Items {
		if remove[item.Key()] {
			changed = true
			continue
		}
		kept = append(kept, item)
	}
	if !changed {
		return cart, nil
	}
	cart.Items = kept

	if err := s.saveCart(ctx, cart); err != nil {
		return nil, err
	}

	s.publishCartUpdated(ctx, cart)
	return cart, nil
}

// saveCart bumps the cart version, refreshes timestamps and TTL, and persists.
func (s *CartService) saveCart(ctx context.Context, cart *domain.Cart) error {
	now := time.Now().UTC()
	cart.Version++
	cart.UpdatedAt = now
	cart.ExpiresAt = now.Add(s.cartTTL)

	if err := s.repo.Save(ctx, cart); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *CartService) publishCartUpdated(ctx context.Context, cart *domain.Cart) {
	if err := s.producer.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("session_id", cart.SessionID),
			slog.String("error", err.Error()),
		)
	}
}

// getOrCreateCart retrieves the cart for a session, creating an empty one if
// it does not exist.
func (s *CartService) getOrCreateCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.newEmptyCart(sessionID), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return cart, nil
}

// newEmptyCart creates a new empty cart for the given session.
func (s *CartService) newEmptyCart(sessionID string) *domain.Cart {
	now := time.Now().UTC()
	return &domain.Cart{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Items:     []domain.LineItem{},
		Version:   0,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.cartTTL),
	}
}
