// Package mock provides a payment provider that simulates settlement with a
// fixed processing delay and always approves the charge.
package mock

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gamify/storefront/internal/provider"
)

// DefaultDelay mirrors the settlement latency of a real gateway round trip.
const DefaultDelay = 2 * time.Second

// Provider is a mock payment provider that always succeeds after a
// configurable delay. It is intended for development and testing purposes.
type Provider struct {
	delay time.Duration
}

// NewProvider creates a new mock payment provider with the default delay.
func NewProvider() *Provider {
	return &Provider{delay: DefaultDelay}
}

// NewProviderWithDelay creates a mock provider with a custom settlement delay.
// Tests use a zero delay.
func NewProviderWithDelay(delay time.Duration) *Provider {
	return &Provider{delay: delay}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "mock"
}

// Charge simulates a payment charge. It waits out the settlement delay
// unless the context is cancelled first, then approves.
func (p *Provider) Charge(ctx context.Context, _ *provider.ChargeInput) (*provider.ChargeResult, error) {
	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return &provider.ChargeResult{
		ProviderPaymentID: "mock_pay_" + uuid.New().String(),
		Status:            provider.StatusSucceeded,
	}, nil
}
