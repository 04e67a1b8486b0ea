package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gamify/storefront/internal/domain"
	apperrors "github.com/gamify/storefront/pkg/errors"
)

const checkoutKeyPrefix = "checkout:"

// SnapshotRepository implements repository.SnapshotRepository using Redis.
// Snapshots are keyed by checkout ID and expire with the snapshot itself.
type SnapshotRepository struct {
	client *redis.Client
}

// NewSnapshotRepository creates a new Redis-backed snapshot repository.
func NewSnapshotRepository(client *redis.Client) *SnapshotRepository {
	return &SnapshotRepository{client: client}
}

// Save persists a checkout snapshot with a TTL derived from its expiry.
func (r *SnapshotRepository) Save(ctx context.Context, snap *domain.CheckoutSnapshot) error {
	key := checkoutKeyPrefix + snap.ID

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal checkout snapshot: %w", err)
	}

	ttl := time.Until(snap.ExpiresAt)
	if ttl <= 0 {
		return apperrors.InvalidInput("checkout snapshot is already expired")
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set checkout snapshot: %w", err)
	}

	return nil
}

// Get retrieves a snapshot by checkout ID without consuming it.
func (r *SnapshotRepository) Get(ctx context.Context, checkoutID string) (*domain.CheckoutSnapshot, error) {
	data, err := r.client.Get(ctx, checkoutKeyPrefix+checkoutID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("checkout", checkoutID)
		}
		return nil, fmt.Errorf("redis get checkout snapshot: %w", err)
	}

	return unmarshalSnapshot(data)
}

// Consume atomically retrieves and removes a snapshot using GETDEL, so two
// concurrent settlement attempts can never both obtain it.
func (r *SnapshotRepository) Consume(ctx context.Context, checkoutID string) (*domain.CheckoutSnapshot, error) {
	data, err := r.client.GetDel(ctx, checkoutKeyPrefix+checkoutID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("checkout", checkoutID)
		}
		return nil, fmt.Errorf("redis getdel checkout snapshot: %w", err)
	}

	return unmarshalSnapshot(data)
}

func unmarshalSnapshot(data []byte) (*domain.CheckoutSnapshot, error) {
	var snap domain.CheckoutSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal checkout snapshot: %w", err)
	}
	return &snap, nil
}
