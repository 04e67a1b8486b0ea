package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load fills cfg from environment variables using `env` struct tags. Defaults
// come from `envDefault`; list-valued fields use `envSeparator`.
//
// Example:
//
//	type Config struct {
//	    RedisAddr string   `env:"REDIS_ADDR" envDefault:"localhost:6379"`
//	    Brokers   []string `env:"KAFKA_BROKERS" envSeparator:","`
//	}
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
