package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamify/storefront/internal/domain"
	"github.com/gamify/storefront/internal/provider/mock"
	apperrors "github.com/gamify/storefront/pkg/errors"
)

// In-memory repositories for flow tests. Values are cloned through JSON on
// both reads and writes, matching the detachment the Redis repositories give.

func jsonClone[T any](t *testing.T, in *T) *T {
	t.Helper()
	data, err := json.Marshal(in)
	require.NoError(t, err)
	out := new(T)
	require.NoError(t, json.Unmarshal(data, out))
	return out
}

type memCartRepo struct {
	t     *testing.T
	carts map[string]*domain.Cart
}

func (r *memCartRepo) Get(_ context.Context, sessionID string) (*domain.Cart, error) {
	cart, ok := r.carts[sessionID]
	if !ok {
		return nil, apperrors.NotFound("cart", sessionID)
	}
	return jsonClone(r.t, cart), nil
}

func (r *memCartRepo) Save(_ context.Context, cart *domain.Cart) error {
	r.carts[cart.SessionID] = jsonClone(r.t, cart)
	return nil
}

func (r *memCartRepo) Delete(_ context.Context, sessionID string) error {
	delete(r.carts, sessionID)
	return nil
}

type memReviewRepo struct {
	t      *testing.T
	states map[string]*domain.ReviewState
}

func (r *memReviewRepo) Get(_ context.Context, sessionID string) (*domain.ReviewState, error) {
	state, ok := r.states[sessionID]
	if !ok {
		return nil, apperrors.NotFound("review state", sessionID)
	}
	return jsonClone(r.t, state), nil
}

func (r *memReviewRepo) Save(_ context.Context, state *domain.ReviewState) error {
	r.states[state.SessionID] = jsonClone(r.t, state)
	return nil
}

func (r *memReviewRepo) Delete(_ context.Context, sessionID string) error {
	delete(r.states, sessionID)
	return nil
}

type memSnapshotRepo struct {
	t     *testing.T
	snaps map[string]*domain.CheckoutSnapshot
}

func (r *memSnapshotRepo) Save(_ context.Context, snap *domain.CheckoutSnapshot) error {
	r.snaps[snap.ID] = jsonClone(r.t, snap)
	return nil
}

func (r *memSnapshotRepo) Get(_ context.Context, checkoutID string) (*domain.CheckoutSnapshot, error) {
	snap, ok := r.snaps[checkoutID]
	if !ok {
		return nil, apperrors.NotFound("checkout", checkoutID)
	}
	return jsonClone(r.t, snap), nil
}

func (r *memSnapshotRepo) Consume(_ context.Context, checkoutID string) (*domain.CheckoutSnapshot, error) {
	snap, ok := r.snaps[checkoutID]
	if !ok {
		return nil, apperrors.NotFound("checkout", checkoutID)
	}
	delete(r.snaps, checkoutID)
	return jsonClone(r.t, snap), nil
}

type testEnv struct {
	carts     *CartService
	checkouts *CheckoutService
	payments  *PaymentService
	snapRepo  *memSnapshotRepo
	revRepo   *memReviewRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := newTestLogger()
	producer := newTestProducer()

	cartRepo := &memCartRepo{t: t, carts: map[string]*domain.Cart{}}
	revRepo := &memReviewRepo{t: t, states: map[string]*domain.ReviewState{}}
	snapRepo := &memSnapshotRepo{t: t, snaps: map[string]*domain.CheckoutSnapshot{}}

	carts := NewCartService(cartRepo, producer, logger, 24*time.Hour)
	checkouts := NewCheckoutService(carts, revRepo, snapRepo, logger, 30*time.Minute)
	payments := NewPaymentService(snapRepo, carts, checkouts, mock.NewProviderWithDelay(0), producer, logger)

	return &testEnv{
		carts:     carts,
		checkouts: checkouts,
		payments:  payments,
		snapRepo:  snapRepo,
		revRepo:   revRepo,
	}
}

// fillCart puts two line items in the session's cart: 2x 1000 VP (9.99) and
// 1x 1000 V-Bucks (7.99).
func fillCart(t *testing.T, env *testEnv, sessionID string) {
	t.Helper()
	ctx := context.Background()
	_, err := env.carts.AddItem(ctx, sessionID, "valorant", "vp-1000")
	require.NoError(t, err)
	_, err = env.carts.AddItem(ctx, sessionID, "valorant", "vp-1000")
	require.NoError(t, err)
	_, err = env.carts.AddItem(ctx, sessionID, "fortnite", "fn-1000")
	require.NoError(t, err)
}

// --- Review ---

func TestReview_NewSessionSelectsEverything(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fillCart(t, env, "sess-1")

	view, err := env.checkouts.Review(ctx, "sess-1")
	require.NoError(t, err)

	assert.True(t, view.AllSelected)
	assert.Len(t, view.SelectedKeys, 2)
	assert.Nil(t, view.Coupon)
	// 2*9.99 + 7.99
	assert.InDelta(t, 27.97, view.Quote.Subtotal, 1e-9)
	assert.InDelta(t, 27.97, view.Quote.Total, 1e-9)
}

func TestReview_EmptyCart(t *testing.T) {
	env := newTestEnv(t)

	view, err := env.checkouts.Review(context.Background(), "sess-1")
	require.NoError(t, err)

	assert.Empty(t, view.SelectedKeys)
	assert.False(t, view.AllSelected)
	assert.Zero(t, view.Quote.Total)
}

func TestReview_CartChangeResetsSelection(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fillCart(t, env, "sess-1")

	// Deselect one item.
	view, err := env.checkouts.ToggleItem(ctx, "sess-1", "fortnite", "fn-1000")
	require.NoError(t, err)
	require.False(t, view.AllSelected)

	// Any cart mutation resets the selection to all current items.
	_, err = env.carts.AddItem(ctx, "sess-1", "pubg-mobile", "pubg-660")
	require.NoError(t, err)

	view, err = env.checkouts.Review(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, view.AllSelected)
	assert.Len(t, view.SelectedKeys, 3)
}

// --- ToggleItem / ToggleAll ---

func TestToggleItem_ExcludesFromQuote(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fillCart(t, env, "sess-1")

	view, err := env.checkouts.ToggleItem(ctx, "sess-1", "fortnite", "fn-1000")
	require.NoError(t, err)

	assert.Len(t, view.SelectedKeys, 1)
	assert.InDelta(t, 19.98, view.Quote.Subtotal, 1e-9)
}

func TestToggleItem_NotInCart(t *testing.T) {
	env := newTestEnv(t)
	fillCart(t, env, "sess-1")

	view, err := env.checkouts.ToggleItem(context.Background(), "sess-1", "pubg-mobile", "pubg-660")
	assert.Nil(t, view)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestToggleAll_TwoStateCycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fillCart(t, env, "sess-1")

	view, err := env.checkouts.ToggleAll(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, view.SelectedKeys)
	assert.Zero(t, view.Quote.Total)

	view, err = env.checkouts.ToggleAll(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, view.AllSelected)
}

// --- Coupons ---

func TestApplyCoupon_DiscountsSelectedTotal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fillCart(t, env, "sess-1")

	// Drop the 7.99 item, then add one more 9.99 unit: subtotal 29.97.
	_, err := env.checkouts.ToggleItem(ctx, "sess-1", "fortnite", "fn-1000")
	require.NoError(t, err)
	_, err = env.carts.UpdateQuantity(ctx, "sess-1", "valorant", "vp-1000", 3)
	require.NoError(t, err)
	_, err = env.checkouts.ToggleItem(ctx, "sess-1", "fortnite", "fn-1000")
	require.NoError(t, err)
	view, err := env.checkouts.ToggleItem(ctx, "sess-1", "fortnite", "fn-1000")
	require.NoError(t, err)
	require.InDelta(t, 29.97, view.Quote.Subtotal, 1e-9)

	view, err = env.checkouts.ApplyCoupon(ctx, "sess-1", "GAMIFY10")
	require.NoError(t, err)

	require.NotNil(t, view.Coupon)
	assert.InDelta(t, 2.997, view.Quote.Discount, 1e-9)
	assert.InDelta(t, 26.973, view.Quote.Total, 1e-9)
}

func TestApplyCoupon_CaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	fillCart(t, env, "sess-1")

	view, err := env.checkouts.ApplyCoupon(context.Background(), "sess-1", "gamify10")
	require.NoError(t, err)
	require.NotNil(t, view.Coupon)
	assert.Equal(t, "gamify10", view.Coupon.Code)
}

func TestApplyCoupon_EmptyCode(t *testing.T) {
	env := newTestEnv(t)
	fillCart(t, env, "sess-1")

	_, err := env.checkouts.ApplyCoupon(context.Background(), "sess-1", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "please enter a coupon code")
}

func TestApplyCoupon_UnknownCode(t *testing.T) {
	env := newTestEnv(t)
	fillCart(t, env, "sess-1")

	_, err := env.checkouts.ApplyCoupon(context.Background(), "sess-1", "SAVE99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid coupon code")
}

func TestApplyCoupon_EmptyCart(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.checkouts.ApplyCoupon(context.Background(), "sess-1", "GAMIFY10")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestApplyCoupon_ReplacesPrevious(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fillCart(t, env, "sess-1")

	_, err := env.checkouts.ApplyCoupon(ctx, "sess-1", "GAMIFY10")
	require.NoError(t, err)

	view, err := env.checkouts.ApplyCoupon(ctx, "sess-1", "gamify10")
	require.NoError(t, err)
	assert.Equal(t, "gamify10", view.Coupon.Code)
}

func TestRemoveCoupon(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fillCart(t, env, "sess-1")

	_, err := env.checkouts.ApplyCoupon(ctx, "sess-1", "GAMIFY10")
	require.NoError(t, err)

	view, err := env.checkouts.RemoveCoupon(ctx, "sess-1")
	require.NoError(t, err)
	assert.Nil(t, view.Coupon)
	assert.Zero(t, view.Quote.Discount)
}

func TestRemoveCoupon_NoneApplied(t *testing.T) {
	env := newTestEnv(t)
	fillCart(t, env, "sess-1")

	view, err := env.checkouts.RemoveCoupon(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Nil(t, view.Coupon)
}

func TestCoupon_DroppedWhenCartEmptied(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fillCart(t, env, "sess-1")

	_, err := env.checkouts.ApplyCoupon(ctx, "sess-1", "GAMIFY10")
	require.NoError(t, err)

	_, err = env.carts.RemoveItem(ctx, "sess-1", "valorant", "vp-1000")
	require.NoError(t, err)
	_, err = env.carts.RemoveItem(ctx, "sess-1", "fortnite", "fn-1000")
	require.NoError(t, err)

	view, err := env.checkouts.Review(ctx, "sess-1")
	require.NoError(t, err)
	assert.Nil(t, view.Coupon)
}

// --- PrepareCheckout ---

func TestPrepareCheckout_FreezesSelectedItems(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fillCart(t, env, "sess-1")

	// Only the valorant line stays selected.
	_, err := env.checkouts.ToggleItem(ctx, "sess-1", "fortnite", "fn-1000")
	require.NoError(t, err)

	snap, err := env.checkouts.PrepareCheckout(ctx, "sess-1")
	require.NoError(t, err)

	require.Len(t, snap.Items, 1)
	assert.Equal(t, "valorant", snap.Items[0].GameID)
	assert.InDelta(t, 19.98, snap.Total, 1e-9)

	// The live cart keeps everything, including the deselected item.
	cart, err := env.carts.GetCart(ctx, "sess-1")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
}

func TestPrepareCheckout_EmptySelection(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fillCart(t, env, "sess-1")

	_, err := env.checkouts.ToggleAll(ctx, "sess-1")
	require.NoError(t, err)

	snap, err := env.checkouts.PrepareCheckout(ctx, "sess-1")
	assert.Nil(t, snap)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "select at least one item to checkout")
}

func TestPrepareCheckout_EmptyCart(t *testing.T) {
	env := newTestEnv(t)

	snap, err := env.checkouts.PrepareCheckout(context.Background(), "sess-1")
	assert.Nil(t, snap)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestPrepareCheckout_SnapshotImmuneToLaterCartChanges(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fillCart(t, env, "sess-1")

	snap, err := env.checkouts.PrepareCheckout(ctx, "sess-1")
	require.NoError(t, err)
	require.InDelta(t, 27.97, snap.Total, 1e-9)

	// Mutate the cart after the handoff.
	_, err = env.carts.UpdateQuantity(ctx, "sess-1", "valorant", "vp-1000", 10)
	require.NoError(t, err)

	got, err := env.payments.GetCheckout(ctx, "sess-1", snap.ID)
	require.NoError(t, err)
	assert.InDelta(t, 27.97, got.Total, 1e-9)
	assert.Equal(t, 2, got.Items[0].Quantity)
}

func TestPrepareCheckout_IncludesCoupon(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fillCart(t, env, "sess-1")

	_, err := env.checkouts.ApplyCoupon(ctx, "sess-1", "GAMIFY10")
	require.NoError(t, err)

	snap, err := env.checkouts.PrepareCheckout(ctx, "sess-1")
	require.NoError(t, err)

	assert.Equal(t, "GAMIFY10", snap.CouponCode)
	assert.InDelta(t, 27.97, snap.Subtotal, 1e-9)
	assert.InDelta(t, 2.797, snap.Discount, 1e-9)
	assert.InDelta(t, 25.173, snap.Total, 1e-9)
}
