package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gamify/storefront/internal/domain"
	"github.com/gamify/storefront/internal/event"
	"github.com/gamify/storefront/internal/provider"
	"github.com/gamify/storefront/internal/repository"
	apperrors "github.com/gamify/storefront/pkg/errors"
)

// PaymentService settles prepared checkouts through a payment provider.
type PaymentService struct {
	snapshots repository.SnapshotRepository
	carts     *CartService
	checkouts *CheckoutService
	provider  provider.Provider
	producer  *event.Producer
	logger    *slog.Logger
}

// NewPaymentService creates a new payment service.
func NewPaymentService(snapshots repository.SnapshotRepository, carts *CartService, checkouts *CheckoutService, prov provider.Provider, producer *event.Producer, logger *slog.Logger) *PaymentService {
	return &PaymentService{
		snapshots: snapshots,
		carts:     carts,
		checkouts: checkouts,
		provider:  prov,
		producer:  producer,
		logger:    logger,
	}
}

// GetCheckout retrieves a prepared checkout snapshot without consuming it.
// The snapshot must belong to the requesting session.
func (s *PaymentService) GetCheckout(ctx context.Context, sessionID, checkoutID string) (*domain.CheckoutSnapshot, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if checkoutID == "" {
		return nil, apperrors.InvalidInput("checkout id is required")
	}

	snap, err := s.snapshots.Get(ctx, checkoutID)
	if err != nil {
		return nil, err
	}
	if snap.SessionID != sessionID {
		return nil, apperrors.NotFound("checkout", checkoutID)
	}
	return snap, nil
}

// SubmitPayment validates the payment details, consumes the checkout snapshot
// so no second settlement can start for it, charges the provider, and on
// success builds the order, removes the purchased items from the live cart,
// and clears the review state.
func (s *PaymentService) SubmitPayment(ctx context.Context, sessionID, checkoutID string, details domain.PaymentDetails) (*domain.Order, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if checkoutID == "" {
		return nil, apperrors.InvalidInput("checkout id is required")
	}

	// Validate before consuming: bad input must not burn the snapshot.
	if err := details.Validate(); err != nil {
		return nil, err
	}

	snap, err := s.snapshots.Consume(ctx, checkoutID)
	if err != nil {
		return nil, err
	}
	if snap.SessionID != sessionID {
		return nil, apperrors.NotFound("checkout", checkoutID)
	}
	if snap.IsExpired() {
		return nil, apperrors.InvalidInput("checkout has expired, please start over")
	}

	result, err := s.provider.Charge(ctx, &provider.ChargeInput{
		Amount:      snap.Total,
		Method:      details.Method,
		PhoneNumber: details.PhoneNumber,
		Description: fmt.Sprintf("gamify checkout %s", snap.ID),
		Metadata: map[string]any{
			"checkout_id": snap.ID,
			"session_id":  snap.SessionID,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("charge provider: %w", err)
	}
	if result.Status != provider.StatusSucceeded {
		s.logger.WarnContext(ctx, "payment declined",
			slog.String("checkout_id", checkoutID),
			slog.String("reason", result.FailureReason),
		)
		return nil, apperrors.PaymentFailed(result.FailureReason)
	}

	order := &domain.Order{
		ID:                uuid.New().String(),
		SessionID:         sessionID,
		CheckoutID:        snap.ID,
		Status:            domain.OrderStatusSettled,
		PaymentMethod:     details.Method,
		Items:             snap.Items,
		Subtotal:          snap.Subtotal,
		Discount:          snap.Discount,
		Total:             snap.Total,
		CouponCode:        snap.CouponCode,
		ProviderPaymentID: result.ProviderPaymentID,
		CreatedAt:         time.Now().UTC(),
	}

	// Take the purchased items out of the live cart and drop the review
	// state. Settlement already succeeded, so failures here are logged
	// rather than surfaced to the buyer.
	if _, err := s.carts.RemoveItems(ctx, sessionID, snap.Keys()); err != nil {
		s.logger.ErrorContext(ctx, "failed to remove purchased items from cart",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}
	if err := s.checkouts.DeleteReview(ctx, sessionID); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete review state",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.producer.PublishOrderCompleted(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.completed event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "payment settled",
		slog.String("order_id", order.ID),
		slog.String("checkout_id", checkoutID),
		slog.String("payment_method", details.Method),
		slog.Float64("total", order.Total),
	)

	return order, nil
}
