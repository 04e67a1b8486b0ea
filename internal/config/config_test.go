package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8010, cfg.HTTPPort)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 168, cfg.CartTTL)
	assert.Equal(t, 30, cfg.CheckoutTTL)
	assert.Equal(t, 2000, cfg.SettlementDelayMS)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, []string{"127.0.0.0/8"}, cfg.PprofAllowedCIDRs)
	assert.False(t, cfg.OTELEnabled)
	assert.Equal(t, "localhost:4318", cfg.OTELEndpoint)
	assert.InDelta(t, 1.0, cfg.OTELSampleRate, 1e-9)
}

func TestLoad_InvalidOTELSampleRate(t *testing.T) {
	t.Setenv("OTEL_SAMPLE_RATE", "1.5")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OTEL_SAMPLE_RATE")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STOREFRONT_HTTP_PORT", "9010")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("CHECKOUT_TTL_MINUTES", "15")
	t.Setenv("SETTLEMENT_DELAY_MS", "0")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9010, cfg.HTTPPort)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 15, cfg.CheckoutTTL)
	assert.Equal(t, 0, cfg.SettlementDelayMS)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
}

func TestLoad_InvalidHTTPPort(t *testing.T) {
	t.Setenv("STOREFRONT_HTTP_PORT", "0")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid HTTP port")
}

func TestLoad_InvalidCheckoutTTL(t *testing.T) {
	t.Setenv("CHECKOUT_TTL_MINUTES", "0")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checkout TTL")
}

func TestLoad_NegativeSettlementDelay(t *testing.T) {
	t.Setenv("SETTLEMENT_DELAY_MS", "-5")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "settlement delay")
}

func TestLoad_MalformedInt(t *testing.T) {
	t.Setenv("CART_TTL_HOURS", "week")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
}
