package domain

import (
	"fmt"
	"strings"
)

// Category identifies one of the three card families.
type Category string

const (
	CategorySuspect Category = "suspect"
	CategoryWeapon  Category = "weapon"
	CategoryRoom    Category = "room"
)

// Categories lists the card families in dealing order.
var Categories = []Category{CategorySuspect, CategoryWeapon, CategoryRoom}

// Default card lists. Room cards match the room names on the board.
var (
	DefaultSuspects = []string{"Professor Pear", "Colonel Ketchup", "Mrs. Peanut", "Miss Violet"}
	DefaultWeapons  = []string{"Golf Club", "Brick", "Potato Peeler", "M9A1 Rocket Launcher"}
	DefaultRooms    = []string{"Kitchen", "Living Room", "Bedroom", "Bathroom"}
)

// CardSet is the configured deck split by category.
type CardSet struct {
	Suspects []string
	Weapons  []string
	Rooms    []string
}

// DefaultCardSet returns a copy of the built-in card lists.
func DefaultCardSet() CardSet {
	return CardSet{
		Suspects: append([]string(nil), DefaultSuspects...),
		Weapons:  append([]string(nil), DefaultWeapons...),
		Rooms:    append([]string(nil), DefaultRooms...),
	}
}

// IsZero reports whether no category has been configured.
func (cs CardSet) IsZero() bool {
	return len(cs.Suspects) == 0 && len(cs.Weapons) == 0 && len(cs.Rooms) == 0
}

// Items returns the cards of a category in configured order.
func (cs CardSet) Items(c Category) []string {
	switch c {
	case CategorySuspect:
		return cs.Suspects
	case CategoryWeapon:
		return cs.Weapons
	case CategoryRoom:
		return cs.Rooms
	default:
		return nil
	}
}

// Contains reports whether card belongs to category c.
func (cs CardSet) Contains(c Category, card string) bool {
	for _, item := range cs.Items(c) {
		if item == card {
			return true
		}
	}
	return false
}

// CategoryOf returns the family a card belongs to.
func (cs CardSet) CategoryOf(card string) (Category, bool) {
	for _, c := range Categories {
		if cs.Contains(c, card) {
			return c, true
		}
	}
	return "", false
}

// All returns every card, suspects first, then weapons, then rooms.
func (cs CardSet) All() []string {
	out := make([]string, 0, cs.Size())
	for _, c := range Categories {
		out = append(out, cs.Items(c)...)
	}
	return out
}

// Size is the total number of cards.
func (cs CardSet) Size() int {
	return len(cs.Suspects) + len(cs.Weapons) + len(cs.Rooms)
}

// Clone returns a deep copy.
func (cs CardSet) Clone() CardSet {
	return CardSet{
		Suspects: append([]string(nil), cs.Suspects...),
		Weapons:  append([]string(nil), cs.Weapons...),
		Rooms:    append([]string(nil), cs.Rooms...),
	}
}

// Validate checks that every category is populated and card names are unique
// across the whole deck.
func (cs CardSet) Validate() error {
	seen := make(map[string]bool, cs.Size())
	for _, c := range Categories {
		items := cs.Items(c)
		if len(items) == 0 {
			return fmt.Errorf("%w: %s", ErrEmptyCategory, c)
		}
		for _, item := range items {
			if strings.TrimSpace(item) == "" {
				return fmt.Errorf("%w: %s card", ErrEmptyName, c)
			}
			if seen[item] {
				return fmt.Errorf("%w: %q", ErrDuplicateCard, item)
			}
			seen[item] = true
		}
	}
	return nil
}

// checkCard rejects names that are not cards of category c.
func (cs CardSet) checkCard(c Category, card string) error {
	if !cs.Contains(c, card) {
		return fmt.Errorf("%w: %q is not a %s", ErrUnknownCard, card, c)
	}
	return nil
}
