package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gamify/storefront/internal/domain"
	"github.com/gamify/storefront/internal/repository"
	apperrors "github.com/gamify/storefront/pkg/errors"
)

// ReviewView is the full state of the cart review screen: the live cart, the
// synchronized selection, the applied coupon, and the quote derived from the
// selected items only.
type ReviewView struct {
	Cart         *domain.Cart     `json:"cart"`
	SelectedKeys []domain.ItemKey `json:"selected_keys"`
	AllSelected  bool             `json:"all_selected"`
	Coupon       *domain.Coupon   `json:"coupon,omitempty"`
	Quote        domain.Quote     `json:"quote"`
}

// CheckoutService implements the cart review flow: item selection, coupon
// application, and the handoff that freezes a checkout snapshot.
type CheckoutService struct {
	carts       *CartService
	reviews     repository.ReviewRepository
	snapshots   repository.SnapshotRepository
	logger      *slog.Logger
	checkoutTTL time.Duration
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(carts *CartService, reviews repository.ReviewRepository, snapshots repository.SnapshotRepository, logger *slog.Logger, checkoutTTL time.Duration) *CheckoutService {
	return &CheckoutService{
		carts:       carts,
		reviews:     reviews,
		snapshots:   snapshots,
		logger:      logger,
		checkoutTTL: checkoutTTL,
	}
}

// Review returns the review screen state for a session, resynchronizing the
// selection against the cart's current contents first.
func (s *CheckoutService) Review(ctx context.Context, sessionID string) (*ReviewView, error) {
	cart, state, err := s.loadSynced(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(cart, state), nil
}

// ToggleItem flips the selection of one cart line item. The item must be in
// the cart.
func (s *CheckoutService) ToggleItem(ctx context.Context, sessionID, gameID, bundleID string) (*ReviewView, error) {
	cart, state, err := s.loadSynced(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if cart.FindItemIndex(gameID, bundleID) < 0 {
		return nil, apperrors.NotFound("cart item", gameID+"/"+bundleID)
	}

	state.Toggle(domain.ItemKey{GameID: gameID, BundleID: bundleID})

	if err := s.reviews.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("save review state: %w", err)
	}

	return s.view(cart, state), nil
}

// ToggleAll applies the strict two-state select-all toggle: a full selection
// clears, any other state selects every cart item.
func (s *CheckoutService) ToggleAll(ctx context.Context, sessionID string) (*ReviewView, error) {
	cart, state, err := s.loadSynced(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	state.ToggleAll(cart)

	if err := s.reviews.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("save review state: %w", err)
	}

	return s.view(cart, state), nil
}

// ApplyCoupon validates and applies a coupon code to the review. Applying a
// second code replaces the first; at most one coupon is active.
func (s *CheckoutService) ApplyCoupon(ctx context.Context, sessionID, code string) (*ReviewView, error) {
	if code == "" {
		return nil, apperrors.InvalidInput("please enter a coupon code")
	}

	cart, state, err := s.loadSynced(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if cart.IsEmpty() {
		return nil, apperrors.InvalidInput("cannot apply a coupon to an empty cart")
	}

	coupon, ok := domain.LookupCoupon(code)
	if !ok {
		return nil, apperrors.InvalidInput("invalid coupon code")
	}

	state.Coupon = coupon
	state.UpdatedAt = time.Now().UTC()

	if err := s.reviews.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("save review state: %w", err)
	}

	s.logger.InfoContext(ctx, "coupon applied",
		slog.String("session_id", sessionID),
		slog.String("code", coupon.Code),
	)

	return s.view(cart, state), nil
}

// RemoveCoupon drops the applied coupon. Removing when none is applied is a
// no-op.
func (s *CheckoutService) RemoveCoupon(ctx context.Context, sessionID string) (*ReviewView, error) {
	cart, state, err := s.loadSynced(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if state.Coupon != nil {
		state.Coupon = nil
		state.UpdatedAt = time.Now().UTC()
		if err := s.reviews.Save(ctx, state); err != nil {
			return nil, fmt.Errorf("save review state: %w", err)
		}
	}

	return s.view(cart, state), nil
}

// PrepareCheckout freezes the current selection and quote into an immutable
// snapshot for the payment step. The live cart and review state are left
// untouched; the snapshot alone feeds settlement.
func (s *CheckoutService) PrepareCheckout(ctx context.Context, sessionID string) (*domain.CheckoutSnapshot, error) {
	cart, state, err := s.loadSynced(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	selected := state.SelectedItems(cart)
	if len(selected) == 0 {
		return nil, apperrors.InvalidInput("select at least one item to checkout")
	}

	quote := domain.NewQuote(state.SelectedTotal(cart), state.Coupon)

	couponCode := ""
	if state.Coupon != nil {
		couponCode = state.Coupon.Code
	}

	snap := domain.NewCheckoutSnapshot(sessionID, selected, quote, couponCode, s.checkoutTTL)

	if err := s.snapshots.Save(ctx, snap); err != nil {
		return nil, fmt.Errorf("save checkout snapshot: %w", err)
	}

	s.logger.InfoContext(ctx, "checkout prepared",
		slog.String("session_id", sessionID),
		slog.String("checkout_id", snap.ID),
		slog.Int("item_count", snap.ItemCount()),
		slog.Float64("total", snap.Total),
	)

	return snap, nil
}

// loadSynced loads the cart and review state for a session, creating and
// resynchronizing the review state as needed. A changed state is persisted
// before it is returned.
func (s *CheckoutService) loadSynced(ctx context.Context, sessionID string) (*domain.Cart, *domain.ReviewState, error) {
	if sessionID == "" {
		return nil, nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	state, err := s.reviews.Get(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("get review state: %w", err)
		}
		state = domain.NewReviewState(sessionID, cart)
		if err := s.reviews.Save(ctx, state); err != nil {
			return nil, nil, fmt.Errorf("save review state: %w", err)
		}
		return cart, state, nil
	}

	if state.SyncWithCart(cart) {
		if err := s.reviews.Save(ctx, state); err != nil {
			return nil, nil, fmt.Errorf("save review state: %w", err)
		}
	}

	return cart, state, nil
}

// DeleteReview removes the review state for a session, used after settlement.
func (s *CheckoutService) DeleteReview(ctx context.Context, sessionID string) error {
	if err := s.reviews.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete review state: %w", err)
	}
	return nil
}

func (s *CheckoutService) view(cart *domain.Cart, state *domain.ReviewState) *ReviewView {
	return &ReviewView{
		Cart:         cart,
		SelectedKeys: state.SelectedKeys,
		AllSelected:  state.AllSelected(cart),
		Coupon:       state.Coupon,
		Quote:        domain.NewQuote(state.SelectedTotal(cart), state.Coupon),
	}
}
