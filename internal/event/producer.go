package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gamify/storefront/internal/domain"
	pkgkafka "github.com/gamify/storefront/pkg/kafka"
)

// Kafka topic constants for storefront domain events.
const (
	TopicCartUpdated    = "gamify.cart.updated"
	TopicCartCleared    = "gamify.cart.cleared"
	TopicOrderCompleted = "gamify.order.completed"
)

// Aggregate type constants.
const (
	AggregateTypeCart  = "cart"
	AggregateTypeOrder = "order"
)

// Source identifier for events originating from the storefront.
const SourceStorefront = "storefront"

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	SessionID string         `json:"session_id"`
	Items     []CartItemData `json:"items"`
	ItemCount int            `json:"item_count"`
	Total     float64        `json:"total"`
}

// CartItemData is the item payload within cart and order events.
type CartItemData struct {
	GameID     string  `json:"game_id"`
	GameName   string  `json:"game_name"`
	BundleID   string  `json:"bundle_id"`
	BundleName string  `json:"bundle_name"`
	UnitPrice  float64 `json:"unit_price"`
	Quantity   int     `json:"quantity"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	SessionID string `json:"session_id"`
}

// OrderCompletedData is the payload for an order.completed event.
type OrderCompletedData struct {
	OrderID       string         `json:"order_id"`
	SessionID     string         `json:"session_id"`
	CheckoutID    string         `json:"checkout_id"`
	PaymentMethod string         `json:"payment_method"`
	Items         []CartItemData `json:"items"`
	Subtotal      float64        `json:"subtotal"`
	Discount      float64        `json:"discount"`
	Total         float64        `json:"total"`
	CouponCode    string         `json:"coupon_code,omitempty"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the storefront.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

func itemData(items []domain.LineItem) []CartItemData {
	out := make([]CartItemData, len(items))
	for i, item := range items {
		out[i] = CartItemData{
			GameID:     item.GameID,
			GameName:   item.GameName,
			BundleID:   item.BundleID,
			BundleName: item.BundleName,
			UnitPrice:  item.UnitPrice,
			Quantity:   item.Quantity,
		}
	}
	return out
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	data := CartUpdatedData{
		SessionID: cart.SessionID,
		Items:     itemData(cart.Items),
		ItemCount: cart.ItemCount(),
		Total:     cart.Total(),
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, cart.SessionID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("session_id", cart.SessionID),
		slog.Int("item_count", cart.ItemCount()),
	)

	return nil
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, sessionID string) error {
	data := CartClearedData{SessionID: sessionID}

	event, err := pkgkafka.NewEvent(TopicCartCleared, sessionID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.cleared event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartCleared, event); err != nil {
		return fmt.Errorf("publish cart.cleared event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.cleared event",
		slog.String("session_id", sessionID),
	)

	return nil
}

// PublishOrderCompleted publishes an order.completed event after a
// successful settlement.
func (p *Producer) PublishOrderCompleted(ctx context.Context, order *domain.Order) error {
	data := OrderCompletedData{
		OrderID:       order.ID,
		SessionID:     order.SessionID,
		CheckoutID:    order.CheckoutID,
		PaymentMethod: order.PaymentMethod,
		Items:         itemData(order.Items),
		Subtotal:      order.Subtotal,
		Discount:      order.Discount,
		Total:         order.Total,
		CouponCode:    order.CouponCode,
	}

	event, err := pkgkafka.NewEvent(TopicOrderCompleted, order.ID, AggregateTypeOrder, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create order.completed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderCompleted, event); err != nil {
		return fmt.Errorf("publish order.completed event: %w", err)
	}

	p.logger.InfoContext(ctx, "published order.completed event",
		slog.String("order_id", order.ID),
		slog.String("payment_method", order.PaymentMethod),
	)

	return nil
}
