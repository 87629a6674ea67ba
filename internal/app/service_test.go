package app

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"clue/internal/domain"
)

func newTestService(seed int64) *Service {
	return NewService(rand.New(rand.NewSource(seed)), domain.CardSet{})
}

// solutionOf recovers the hidden triple as the cards nobody holds.
func solutionOf(t *testing.T, game *domain.Game) domain.Solution {
	t.Helper()
	held := make(map[string]bool)
	for _, p := range game.Players() {
		for _, c := range p.Hand {
			held[c] = true
		}
	}
	missing := func(c domain.Category) string {
		var out []string
		for _, item := range game.Cards().Items(c) {
			if !held[item] {
				out = append(out, item)
			}
		}
		if len(out) != 1 {
			t.Fatalf("%d unheld %s cards, want 1", len(out), c)
		}
		return out[0]
	}
	return domain.Solution{
		Suspect: missing(domain.CategorySuspect),
		Weapon:  missing(domain.CategoryWeapon),
		Room:    missing(domain.CategoryRoom),
	}
}

func eventKinds(evs []Event) []EventKind {
	kinds := make([]EventKind, len(evs))
	for i, ev := range evs {
		kinds[i] = ev.Kind
	}
	return kinds
}

// walkToKitchen drives Red from cell 1 to the Kitchen entrance, passing the
// other seats without moving whenever the dice run out.
func walkToKitchen(t *testing.T, svc *Service, game *domain.Game) []Event {
	t.Helper()
	path := []domain.Direction{
		domain.DirectionRight, domain.DirectionRight, domain.DirectionRight,
		domain.DirectionDown, domain.DirectionDown, domain.DirectionDown,
		domain.DirectionLeft,
	}

	var last []Event
	for step := 0; step < len(path); {
		if game.CurrentPlayer().Name != "Red" {
			if _, err := svc.AdvanceTurn(game, game.CurrentPlayer().Name); err != nil {
				t.Fatalf("advance error: %v", err)
			}
			continue
		}
		if game.Phase() == domain.PhaseAwaitingRoll {
			if _, err := svc.RollDice(game, "Red"); err != nil {
				t.Fatalf("roll error: %v", err)
			}
		}
		for game.MovesRemaining() > 0 && step < len(path) {
			evs, err := svc.RequestMove(game, "Red", path[step])
			if err != nil {
				t.Fatalf("move %d error: %v", step, err)
			}
			if evs[0].Kind != EventPlayerMoved {
				t.Fatalf("move %d not taken: %v", step, eventKinds(evs))
			}
			last = evs
			step++
		}
		if step < len(path) {
			if _, err := svc.AdvanceTurn(game, "Red"); err != nil {
				t.Fatalf("advance error: %v", err)
			}
		}
	}
	return last
}

func TestNewGameDefaultsAndEvents(t *testing.T) {
	svc := newTestService(42)
	game, evs, err := svc.NewGame(nil)
	if err != nil {
		t.Fatalf("new game error: %v", err)
	}

	players := game.Players()
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}
	if !reflect.DeepEqual(names, domain.DefaultPlayerNames) {
		t.Fatalf("players = %v, want defaults", names)
	}

	// 12 cards less the solution leaves 9, dealt round-robin from Red.
	var sizes []int
	total := 0
	for _, ev := range evs {
		if ev.Kind != EventHandDealt {
			continue
		}
		payload := ev.Payload.(HandDealtPayload)
		if !reflect.DeepEqual(ev.Recipients, []string{payload.Player}) {
			t.Fatalf("hand for %s sent to %v", payload.Player, ev.Recipients)
		}
		sizes = append(sizes, len(payload.Hand))
		total += len(payload.Hand)
	}
	if !reflect.DeepEqual(sizes, []int{3, 2, 2, 2}) {
		t.Fatalf("hand sizes = %v, want [3 2 2 2]", sizes)
	}
	if total != 9 {
		t.Fatalf("dealt %d cards, want 9", total)
	}

	last := evs[len(evs)-1]
	if last.Kind != EventGameStarted || last.Private() {
		t.Fatalf("last event = %s, want public game_started", last.Kind)
	}
	started := last.Payload.(GameStartedPayload)
	if started.FirstPlayer != "Red" || started.Phase != domain.PhaseAwaitingRoll {
		t.Fatalf("started = %+v", started)
	}
	if started.Seats[3].Position != 144 {
		t.Fatalf("Green seated at %d, want 144", started.Seats[3].Position)
	}
}

func TestNewGameRejectsBadNames(t *testing.T) {
	svc := newTestService(1)
	if _, _, err := svc.NewGame([]string{"a", "b", "c", "d", "e"}); !errors.Is(err, domain.ErrInvalidConfiguration) {
		t.Fatalf("error = %v, want InvalidConfiguration", err)
	}
	if _, _, err := svc.NewGame([]string{"a", "a"}); !errors.Is(err, domain.ErrDuplicateName) {
		t.Fatalf("error = %v, want ErrDuplicateName", err)
	}
}

func TestNewServiceDefaults(t *testing.T) {
	svc := NewService(nil, domain.CardSet{})
	if svc.rng == nil {
		t.Fatalf("rng not defaulted")
	}
	game, _, err := svc.NewGame(nil)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if !reflect.DeepEqual(game.Cards(), domain.DefaultCardSet()) {
		t.Fatalf("cards not defaulted")
	}
}

func TestActorChecks(t *testing.T) {
	svc := newTestService(7)
	game, _, err := svc.NewGame([]string{"Red", "Blue"})
	if err != nil {
		t.Fatalf("new game error: %v", err)
	}

	tests := []struct {
		name  string
		actor string
		want  error
		cat   error
	}{
		{name: "not your turn", actor: "Blue", want: domain.ErrNotYourTurn, cat: domain.ErrIllegalState},
		{name: "unknown player", actor: "Mallory", want: domain.ErrUnknownPlayer, cat: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := map[string]func() error{
				"roll": func() error { _, err := svc.RollDice(game, tt.actor); return err },
				"move": func() error { _, err := svc.RequestMove(game, tt.actor, domain.DirectionRight); return err },
				"suggest": func() error {
					_, err := svc.Suggest(game, tt.actor, "Miss Violet", "Brick")
					return err
				},
				"accuse": func() error {
					_, err := svc.Accuse(game, tt.actor, "Miss Violet", "Brick", "Kitchen")
					return err
				},
				"end": func() error { _, err := svc.AdvanceTurn(game, tt.actor); return err },
			}
			for op, call := range calls {
				if err := call(); !errors.Is(err, tt.want) || !errors.Is(err, tt.cat) {
					t.Fatalf("%s: error = %v, want %v", op, err, tt.want)
				}
			}
			if game.CurrentPlayer().Name != "Red" || game.Phase() != domain.PhaseAwaitingRoll {
				t.Fatalf("rejected actions changed the game")
			}
		})
	}
}

func TestRollAndMoveEvents(t *testing.T) {
	svc := newTestService(3)
	game, _, err := svc.NewGame(nil)
	if err != nil {
		t.Fatalf("new game error: %v", err)
	}

	evs, err := svc.RollDice(game, "Red")
	if err != nil {
		t.Fatalf("roll error: %v", err)
	}
	rolled := evs[0].Payload.(DiceRolledPayload)
	if rolled.Total != rolled.First+rolled.Second || rolled.Total != game.MovesRemaining() {
		t.Fatalf("rolled = %+v, moves = %d", rolled, game.MovesRemaining())
	}

	evs, err = svc.RequestMove(game, "Red", domain.DirectionUp)
	if err != nil {
		t.Fatalf("blocked move error: %v", err)
	}
	blocked := evs[0].Payload.(MoveBlockedPayload)
	if evs[0].Kind != EventMoveBlocked || blocked.Position != 1 || blocked.MovesRemaining != rolled.Total {
		t.Fatalf("blocked event = %s %+v", evs[0].Kind, blocked)
	}

	evs, err = svc.RequestMove(game, "Red", domain.DirectionRight)
	if err != nil {
		t.Fatalf("move error: %v", err)
	}
	moved := evs[0].Payload.(PlayerMovedPayload)
	if moved.From != 1 || moved.To != 2 || moved.MovesRemaining != rolled.Total-1 {
		t.Fatalf("moved = %+v", moved)
	}

	if _, err := svc.RequestMove(game, "Red", domain.Direction("sideways")); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("bad direction error = %v", err)
	}
}

func TestSuggestInRoom(t *testing.T) {
	svc := newTestService(11)
	game, _, err := svc.NewGame(nil)
	if err != nil {
		t.Fatalf("new game error: %v", err)
	}

	if _, err := svc.Suggest(game, "Red", "Miss Violet", "Brick"); !errors.Is(err, domain.ErrNotInRoom) {
		t.Fatalf("suggest outside room error = %v", err)
	}

	last := walkToKitchen(t, svc, game)
	if kinds := eventKinds(last); !reflect.DeepEqual(kinds, []EventKind{EventPlayerMoved, EventRoomEntered}) {
		t.Fatalf("entry events = %v", kinds)
	}
	if entered := last[1].Payload.(RoomEnteredPayload); entered.Room != "Kitchen" || entered.Cell != 39 {
		t.Fatalf("entered = %+v", entered)
	}

	players := game.Players()
	suspect, weapon := "Miss Violet", "Brick"
	wantDisprover := ""
	for _, p := range players[1:] {
		for _, c := range p.Hand {
			if c == suspect || c == weapon || c == "Kitchen" {
				wantDisprover = p.Name
			}
		}
		if wantDisprover != "" {
			break
		}
	}

	evs, err := svc.Suggest(game, "Red", suspect, weapon)
	if err != nil {
		t.Fatalf("suggest error: %v", err)
	}
	made := evs[0].Payload.(SuggestionMadePayload)
	if made.Room != "Kitchen" || made.Disprover != wantDisprover {
		t.Fatalf("suggestion = %+v, want disprover %q", made, wantDisprover)
	}
	if wantDisprover == "" {
		if evs[1].Kind != EventNoCardShown {
			t.Fatalf("second event = %s, want no_card_shown", evs[1].Kind)
		}
	} else {
		shown := evs[1].Payload.(CardShownPayload)
		if evs[1].Kind != EventCardShown || !reflect.DeepEqual(evs[1].Recipients, []string{"Red"}) {
			t.Fatalf("card shown event = %s to %v", evs[1].Kind, evs[1].Recipients)
		}
		if shown.Card != suspect && shown.Card != weapon && shown.Card != "Kitchen" {
			t.Fatalf("shown card %q was not suggested", shown.Card)
		}
	}

	if _, err := svc.Suggest(game, "Red", suspect, weapon); !errors.Is(err, domain.ErrAlreadySuggested) {
		t.Fatalf("second suggestion error = %v", err)
	}
}

func TestAccuseCorrectEndsGame(t *testing.T) {
	svc := newTestService(21)
	game, _, err := svc.NewGame(nil)
	if err != nil {
		t.Fatalf("new game error: %v", err)
	}
	solution := solutionOf(t, game)

	evs, err := svc.Accuse(game, "Red", solution.Suspect, solution.Weapon, solution.Room)
	if err != nil {
		t.Fatalf("accuse error: %v", err)
	}
	if kinds := eventKinds(evs); !reflect.DeepEqual(kinds, []EventKind{EventAccusationMade, EventGameEnded}) {
		t.Fatalf("events = %v", kinds)
	}
	ended := evs[1].Payload.(GameEndedPayload)
	if ended.Winner != "Red" || ended.NoWinner || ended.Solution != solution {
		t.Fatalf("ended = %+v", ended)
	}

	if _, err := svc.RollDice(game, "Red"); !errors.Is(err, domain.ErrGameOver) {
		t.Fatalf("roll after game over error = %v", err)
	}
	if evs, err := svc.AdvanceTurn(game, "Red"); err != nil || evs != nil {
		t.Fatalf("advance after game over = %v, %v", evs, err)
	}
}

func TestAccuseWrongThenAdvance(t *testing.T) {
	svc := newTestService(5)
	game, _, err := svc.NewGame(nil)
	if err != nil {
		t.Fatalf("new game error: %v", err)
	}
	solution := solutionOf(t, game)
	wrongRoom := "Kitchen"
	if solution.Room == wrongRoom {
		wrongRoom = "Bathroom"
	}

	evs, err := svc.Accuse(game, "Red", solution.Suspect, solution.Weapon, wrongRoom)
	if err != nil {
		t.Fatalf("accuse error: %v", err)
	}
	if kinds := eventKinds(evs); !reflect.DeepEqual(kinds, []EventKind{EventAccusationMade, EventPlayerEliminated}) {
		t.Fatalf("events = %v", kinds)
	}
	if elim := evs[1].Payload.(PlayerEliminatedPayload); elim.Remaining != 3 {
		t.Fatalf("remaining = %d, want 3", elim.Remaining)
	}

	if _, err := svc.RollDice(game, "Red"); !errors.Is(err, domain.ErrPlayerEliminated) {
		t.Fatalf("eliminated roll error = %v", err)
	}

	evs, err = svc.AdvanceTurn(game, "Red")
	if err != nil {
		t.Fatalf("advance error: %v", err)
	}
	turn := evs[0].Payload.(TurnAdvancedPayload)
	if turn.Previous != "Red" || turn.Next != "Blue" {
		t.Fatalf("turn = %+v", turn)
	}

	// Red is skipped from now on.
	for _, name := range []string{"Blue", "Yellow", "Green"} {
		if _, err := svc.AdvanceTurn(game, name); err != nil {
			t.Fatalf("advance error: %v", err)
		}
	}
	if game.CurrentPlayer().Name != "Blue" {
		t.Fatalf("current = %s, want Blue", game.CurrentPlayer().Name)
	}
}

func TestAccuseWrongLastTwo(t *testing.T) {
	svc := newTestService(8)
	game, _, err := svc.NewGame([]string{"Red", "Blue"})
	if err != nil {
		t.Fatalf("new game error: %v", err)
	}
	solution := solutionOf(t, game)
	wrongSuspect := domain.DefaultSuspects[0]
	if wrongSuspect == solution.Suspect {
		wrongSuspect = domain.DefaultSuspects[1]
	}

	evs, err := svc.Accuse(game, "Red", wrongSuspect, solution.Weapon, solution.Room)
	if err != nil {
		t.Fatalf("accuse error: %v", err)
	}
	if kinds := eventKinds(evs); !reflect.DeepEqual(kinds, []EventKind{EventAccusationMade, EventPlayerEliminated, EventGameEnded}) {
		t.Fatalf("events = %v", kinds)
	}
	if ended := evs[2].Payload.(GameEndedPayload); ended.Winner != "Blue" {
		t.Fatalf("winner = %q, want Blue", ended.Winner)
	}
}

func TestAccuseWrongSoloEndsWithoutWinner(t *testing.T) {
	svc := newTestService(9)
	game, _, err := svc.NewGame([]string{"Red"})
	if err != nil {
		t.Fatalf("new game error: %v", err)
	}
	solution := solutionOf(t, game)
	wrongWeapon := domain.DefaultWeapons[0]
	if wrongWeapon == solution.Weapon {
		wrongWeapon = domain.DefaultWeapons[1]
	}

	evs, err := svc.Accuse(game, "Red", solution.Suspect, wrongWeapon, solution.Room)
	if err != nil {
		t.Fatalf("accuse error: %v", err)
	}
	ended := evs[len(evs)-1].Payload.(GameEndedPayload)
	if !ended.NoWinner || ended.Winner != "" {
		t.Fatalf("ended = %+v", ended)
	}
}

func TestSetNote(t *testing.T) {
	svc := newTestService(2)
	game, _, err := svc.NewGame(nil)
	if err != nil {
		t.Fatalf("new game error: %v", err)
	}

	if err := svc.SetNote(game, "Yellow", domain.CategoryRoom, "Bedroom", true); err != nil {
		t.Fatalf("set note error: %v", err)
	}
	p, _ := game.Player("Yellow")
	if !p.Notes[domain.CategoryRoom]["Bedroom"] {
		t.Fatalf("note not stored")
	}
	if err := svc.SetNote(game, "Yellow", "furniture", "Sofa", true); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("bad note error = %v", err)
	}
}
