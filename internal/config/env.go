package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Env holds process settings shared by the terminal and Nakama front ends.
type Env struct {
	ConfigPath   string        `env:"CLUE_CONFIG_PATH" envDefault:"data/clue_config.json"`
	Seed         int64         `env:"CLUE_SEED"`
	LogLevel     string        `env:"CLUE_LOG_LEVEL" envDefault:"info"`
	NoColor      bool          `env:"CLUE_NO_COLOR"`
	TicketSecret string        `env:"CLUE_TICKET_SECRET"`
	TicketTTL    time.Duration `env:"CLUE_TICKET_TTL" envDefault:"10m"`
}

// ParseEnv reads settings from the process environment.
func ParseEnv() (Env, error) {
	var cfg Env
	if err := env.Parse(&cfg); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ParseEnvMap reads settings from an explicit map, such as the Nakama
// runtime environment.
func ParseEnvMap(vars map[string]string) (Env, error) {
	var cfg Env
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
