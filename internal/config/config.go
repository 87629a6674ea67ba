package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"clue/internal/domain"
)

// GameConfig holds the card lists and seat names a table is dealt from.
type GameConfig struct {
	Suspects       []string `json:"suspects"`
	Weapons        []string `json:"weapons"`
	Rooms          []string `json:"rooms"`
	DefaultPlayers []string `json:"default_players"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		c, err := ParseGameConfig(data)
		if err != nil {
			loadErr = err
			return
		}
		cfg = c
	})
	return loadErr
}

// ParseGameConfig decodes and validates a JSON config. Missing card lists and
// player names fall back to the built-in defaults.
func ParseGameConfig(data []byte) (*GameConfig, error) {
	var c GameConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	if c.CardSet().IsZero() {
		defaults := domain.DefaultCardSet()
		c.Suspects, c.Weapons, c.Rooms = defaults.Suspects, defaults.Weapons, defaults.Rooms
	}
	if err := c.CardSet().Validate(); err != nil {
		return nil, fmt.Errorf("game config: %w", err)
	}
	if len(c.DefaultPlayers) > 0 {
		if err := domain.ValidatePlayerNames(c.DefaultPlayers); err != nil {
			return nil, fmt.Errorf("game config: %w", err)
		}
	}
	return &c, nil
}

// GetGameConfig returns the global game configuration, or the built-in
// defaults when nothing was loaded.
func GetGameConfig() *GameConfig {
	if cfg == nil {
		return Default()
	}
	return cfg
}

// Default is the configuration used when no file is provided.
func Default() *GameConfig {
	cards := domain.DefaultCardSet()
	return &GameConfig{
		Suspects:       cards.Suspects,
		Weapons:        cards.Weapons,
		Rooms:          cards.Rooms,
		DefaultPlayers: append([]string(nil), domain.DefaultPlayerNames...),
	}
}

// CardSet converts the lists to the domain deck description.
func (c *GameConfig) CardSet() domain.CardSet {
	return domain.CardSet{
		Suspects: append([]string(nil), c.Suspects...),
		Weapons:  append([]string(nil), c.Weapons...),
		Rooms:    append([]string(nil), c.Rooms...),
	}
}

// Players returns the seat names to use when a table is created without any.
func (c *GameConfig) Players() []string {
	if len(c.DefaultPlayers) == 0 {
		return append([]string(nil), domain.DefaultPlayerNames...)
	}
	return append([]string(nil), c.DefaultPlayers...)
}
