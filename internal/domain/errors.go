package domain

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by this package wraps exactly one of them.
var (
	// ErrInvalidInput marks requests carrying values the game does not recognise.
	ErrInvalidInput = errors.New("invalid input")
	// ErrIllegalState marks requests made in a phase that does not permit them.
	ErrIllegalState = errors.New("illegal state transition")
	// ErrInvalidConfiguration marks setups that must not start a game.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

var (
	ErrUnknownDirection = fmt.Errorf("%w: unknown direction", ErrInvalidInput)
	ErrUnknownCard      = fmt.Errorf("%w: unknown card", ErrInvalidInput)
	ErrUnknownPlayer    = fmt.Errorf("%w: unknown player", ErrInvalidInput)
	ErrUnknownNote      = fmt.Errorf("%w: unknown notepad entry", ErrInvalidInput)
	ErrRoomMismatch     = fmt.Errorf("%w: suggestion must name the room the player stands in", ErrInvalidInput)

	ErrGameOver         = fmt.Errorf("%w: game is over", ErrIllegalState)
	ErrNotYourTurn      = fmt.Errorf("%w: not the active player", ErrIllegalState)
	ErrPlayerEliminated = fmt.Errorf("%w: player is eliminated", ErrIllegalState)
	ErrAlreadyRolled    = fmt.Errorf("%w: dice already rolled this turn", ErrIllegalState)
	ErrNotMoving        = fmt.Errorf("%w: roll the dice before moving", ErrIllegalState)
	ErrNoMovesRemaining = fmt.Errorf("%w: no moves remaining", ErrIllegalState)
	ErrStoppedInRoom    = fmt.Errorf("%w: player has entered a room and stopped", ErrIllegalState)
	ErrNotInRoom        = fmt.Errorf("%w: player is not standing in a room", ErrIllegalState)
	ErrAlreadySuggested = fmt.Errorf("%w: suggestion already made this turn", ErrIllegalState)

	ErrEmptyCategory  = fmt.Errorf("%w: card category is empty", ErrInvalidConfiguration)
	ErrDuplicateCard  = fmt.Errorf("%w: duplicate card name", ErrInvalidConfiguration)
	ErrNoPlayers      = fmt.Errorf("%w: no players", ErrInvalidConfiguration)
	ErrTooManyPlayers = fmt.Errorf("%w: more players than start positions", ErrInvalidConfiguration)
	ErrDuplicateName  = fmt.Errorf("%w: duplicate player name", ErrInvalidConfiguration)
	ErrEmptyName      = fmt.Errorf("%w: empty name", ErrInvalidConfiguration)
)
