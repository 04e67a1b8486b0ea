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

const reviewKeyPrefix = "review:"

// ReviewRepository implements repository.ReviewRepository using Redis.
type ReviewRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReviewRepository creates a new Redis-backed review-state repository.
func NewReviewRepository(client *redis.Client, ttl time.Duration) *ReviewRepository {
	return &ReviewRepository{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves the review state for a session from Redis.
func (r *ReviewRepository) Get(ctx context.Context, sessionID string) (*domain.ReviewState, error) {
	key := reviewKeyPrefix + sessionID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("review state", sessionID)
		}
		return nil, fmt.Errorf("redis get review state: %w", err)
	}

	var state domain.ReviewState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("unmarshal review state: %w", err)
	}

	return &state, nil
}

// Save persists the review state to Redis with the configured TTL.
func (r *ReviewRepository) Save(ctx context.Context, state *domain.ReviewState) error {
	key := reviewKeyPrefix + state.SessionID

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal review state: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set review state: %w", err)
	}

	return nil
}

// Delete removes the review state for a session.
func (r *ReviewRepository) Delete(ctx context.Context, sessionID string) error {
	key := reviewKeyPrefix + sessionID

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del review state: %w", err)
	}

	return nil
}
