package app

import (
	"fmt"
	"math/rand"
	"time"

	"clue/internal/domain"
)

// Service contains Clue use-cases operating on domain state.
type Service struct {
	rng   *rand.Rand
	cards domain.CardSet
}

// NewService constructs a Service with provided rng or a time-seeded default.
// A zero card set falls back to the standard cards.
func NewService(rng *rand.Rand, cards domain.CardSet) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cards.IsZero() {
		cards = domain.DefaultCardSet()
	}
	return &Service{rng: rng, cards: cards.Clone()}
}

// NewGame seats the named players (the default tokens when none are given),
// deals and picks the hidden solution.
func (s *Service) NewGame(playerNames []string) (*domain.Game, []Event, error) {
	names := playerNames
	if len(names) == 0 {
		names = domain.DefaultPlayerNames
	}

	game, err := domain.NewGame(s.rng, names, s.cards)
	if err != nil {
		return nil, nil, err
	}

	players := game.Players()
	events := make([]Event, 0, len(players)+1)
	seats := make([]SeatPayload, len(players))
	for i, p := range players {
		seats[i] = SeatPayload{Player: p.Name, Position: p.Position}
		events = append(events, Event{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{Player: p.Name, Hand: p.Hand},
			Recipients: []string{p.Name},
		})
	}

	events = append(events, Event{
		Kind: EventGameStarted,
		Payload: GameStartedPayload{
			Phase:       game.Phase(),
			Seats:       seats,
			FirstPlayer: game.CurrentPlayer().Name,
		},
	})
	return game, events, nil
}

// RollDice grants the actor a 2d6 move budget.
func (s *Service) RollDice(game *domain.Game, actor string) ([]Event, error) {
	if err := checkActor(game, actor); err != nil {
		return nil, err
	}
	roll, err := game.RollDice(s.rng)
	if err != nil {
		return nil, err
	}
	return []Event{{
		Kind: EventDiceRolled,
		Payload: DiceRolledPayload{
			Player: actor,
			First:  roll.First,
			Second: roll.Second,
			Total:  roll.Total(),
		},
	}}, nil
}

// RequestMove steps the actor one cell. A blocked step is reported as an
// event, not an error.
func (s *Service) RequestMove(game *domain.Game, actor string, dir domain.Direction) ([]Event, error) {
	if err := checkActor(game, actor); err != nil {
		return nil, err
	}
	from := game.CurrentPlayer().Position
	moved, err := game.RequestMove(dir)
	if err != nil {
		return nil, err
	}
	if !moved {
		return []Event{{
			Kind: EventMoveBlocked,
			Payload: MoveBlockedPayload{
				Player:         actor,
				Position:       from,
				Direction:      dir,
				MovesRemaining: game.MovesRemaining(),
			},
		}}, nil
	}

	to := game.CurrentPlayer().Position
	events := []Event{{
		Kind: EventPlayerMoved,
		Payload: PlayerMovedPayload{
			Player:         actor,
			From:           from,
			To:             to,
			Direction:      dir,
			MovesRemaining: game.MovesRemaining(),
		},
	}}
	if room, ok := game.CurrentRoom(); ok {
		events = append(events, Event{
			Kind:    EventRoomEntered,
			Payload: RoomEnteredPayload{Player: actor, Room: room, Cell: to},
		})
	}
	return events, nil
}

// Suggest names a suspect and weapon for the room the actor is standing in.
// The shown card only goes to the suggester.
func (s *Service) Suggest(game *domain.Game, actor, suspect, weapon string) ([]Event, error) {
	if err := checkActor(game, actor); err != nil {
		return nil, err
	}
	room, _ := game.CurrentRoom()
	disproof, err := game.Suggest(s.rng, suspect, weapon, room)
	if err != nil {
		return nil, err
	}

	events := []Event{{
		Kind: EventSuggestionMade,
		Payload: SuggestionMadePayload{
			Suggester: actor,
			Suspect:   suspect,
			Weapon:    weapon,
			Room:      room,
			Passed:    disproof.Passed,
			Disprover: disproof.Disprover,
		},
	}}
	if !disproof.Shown() {
		return append(events, Event{
			Kind:    EventNoCardShown,
			Payload: NoCardShownPayload{Suggester: actor},
		}), nil
	}
	return append(events, Event{
		Kind: EventCardShown,
		Payload: CardShownPayload{
			Suggester: actor,
			Disprover: disproof.Disprover,
			Card:      disproof.Card,
		},
		Recipients: []string{actor},
	}), nil
}

// Accuse checks a triple against the solution. A wrong guess eliminates the
// actor; the turn still has to be ended with AdvanceTurn.
func (s *Service) Accuse(game *domain.Game, actor, suspect, weapon, room string) ([]Event, error) {
	if err := checkActor(game, actor); err != nil {
		return nil, err
	}
	res, err := game.Accuse(suspect, weapon, room)
	if err != nil {
		return nil, err
	}

	events := []Event{{
		Kind: EventAccusationMade,
		Payload: AccusationMadePayload{
			Accuser: actor,
			Suspect: suspect,
			Weapon:  weapon,
			Room:    room,
			Correct: res.Correct,
		},
	}}
	if res.Eliminated {
		events = append(events, Event{
			Kind:    EventPlayerEliminated,
			Payload: PlayerEliminatedPayload{Player: actor, Remaining: game.ActiveCount()},
		})
	}
	if res.GameOver {
		events = append(events, gameEnded(game))
	}
	return events, nil
}

// AdvanceTurn ends the actor's turn. The actor may already be eliminated.
// Once the game is over it does nothing.
func (s *Service) AdvanceTurn(game *domain.Game, actor string) ([]Event, error) {
	if game.IsGameOver() {
		return nil, nil
	}
	if err := checkActor(game, actor); err != nil {
		return nil, err
	}

	change := game.AdvanceTurn()
	if change.AllEliminated {
		return []Event{gameEnded(game)}, nil
	}
	return []Event{{
		Kind: EventTurnAdvanced,
		Payload: TurnAdvancedPayload{
			Previous: change.Previous,
			Next:     change.Next,
			Skipped:  change.Skipped,
		},
	}}, nil
}

// SetNote updates a player's notepad. Notes are private and emit nothing.
func (s *Service) SetNote(game *domain.Game, player string, category domain.Category, item string, marked bool) error {
	return game.SetNote(player, category, item, marked)
}

// checkActor ensures actor is a seated player whose turn it is. Eliminated
// actors pass here; the domain decides which actions they may still take.
func checkActor(game *domain.Game, actor string) error {
	if game.IsGameOver() {
		return domain.ErrGameOver
	}
	if _, ok := game.Player(actor); !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownPlayer, actor)
	}
	if current := game.CurrentPlayer().Name; current != actor {
		return fmt.Errorf("%w: %q, current is %q", domain.ErrNotYourTurn, actor, current)
	}
	return nil
}

func gameEnded(game *domain.Game) Event {
	payload := GameEndedPayload{NoWinner: true}
	if w, ok := game.Winner(); ok {
		payload.Winner = w.Name
		payload.NoWinner = false
	}
	payload.Solution, _ = game.Solution()
	return Event{Kind: EventGameEnded, Payload: payload}
}
