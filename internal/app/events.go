package app

import "clue/internal/domain"

// EventKind identifies emitted domain events for front-end dispatch.
type EventKind string

const (
	EventGameStarted      EventKind = "game_started"
	EventHandDealt        EventKind = "hand_dealt"
	EventDiceRolled       EventKind = "dice_rolled"
	EventPlayerMoved      EventKind = "player_moved"
	EventMoveBlocked      EventKind = "move_blocked"
	EventRoomEntered      EventKind = "room_entered"
	EventSuggestionMade   EventKind = "suggestion_made"
	EventCardShown        EventKind = "card_shown"
	EventNoCardShown      EventKind = "no_card_shown"
	EventAccusationMade   EventKind = "accusation_made"
	EventPlayerEliminated EventKind = "player_eliminated"
	EventTurnAdvanced     EventKind = "turn_advanced"
	EventGameEnded        EventKind = "game_ended"
)

// Event is a domain/app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // player names; empty means everyone
}

// Private reports whether the event is meant for specific players only.
func (e Event) Private() bool {
	return len(e.Recipients) > 0
}

type SeatPayload struct {
	Player   string
	Position int
}

type GameStartedPayload struct {
	Phase       domain.Phase
	Seats       []SeatPayload
	FirstPlayer string
}

type HandDealtPayload struct {
	Player string
	Hand   []string
}

type DiceRolledPayload struct {
	Player string
	First  int
	Second int
	Total  int
}

type PlayerMovedPayload struct {
	Player         string
	From           int
	To             int
	Direction      domain.Direction
	MovesRemaining int
}

type MoveBlockedPayload struct {
	Player         string
	Position       int
	Direction      domain.Direction
	MovesRemaining int
}

type RoomEnteredPayload struct {
	Player string
	Room   string
	Cell   int
}

type SuggestionMadePayload struct {
	Suggester string
	Suspect   string
	Weapon    string
	Room      string
	Passed    []string
	Disprover string // empty when nobody could disprove
}

type CardShownPayload struct {
	Suggester string
	Disprover string
	Card      string
}

type NoCardShownPayload struct {
	Suggester string
}

type AccusationMadePayload struct {
	Accuser string
	Suspect string
	Weapon  string
	Room    string
	Correct bool
}

type PlayerEliminatedPayload struct {
	Player    string
	Remaining int
}

type TurnAdvancedPayload struct {
	Previous string
	Next     string
	Skipped  []string
}

type GameEndedPayload struct {
	Winner   string
	NoWinner bool
	Solution domain.Solution
}
