package domain

import (
	"fmt"
	"strings"
)

// Phase is the turn state of the active player.
type Phase string

const (
	// PhaseAwaitingRoll is the start of a turn, before the dice are rolled.
	PhaseAwaitingRoll Phase = "awaiting_roll"
	// PhaseMoving means the player is spending a move budget.
	PhaseMoving Phase = "moving"
	// PhaseInRoom means the player entered a room this turn and stopped.
	PhaseInRoom Phase = "in_room"
	// PhaseGameOver is terminal.
	PhaseGameOver Phase = "game_over"
)

// DefaultPlayerNames are the token identities used when none are given.
var DefaultPlayerNames = []string{"Red", "Blue", "Yellow", "Green"}

// ValidatePlayerNames checks a seat list before a game is built.
func ValidatePlayerNames(names []string) error {
	if len(names) == 0 {
		return ErrNoPlayers
	}
	if len(names) > MaxPlayers {
		return fmt.Errorf("%w: %d > %d", ErrTooManyPlayers, len(names), MaxPlayers)
	}
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: player", ErrEmptyName)
		}
		if seen[name] {
			return fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		seen[name] = true
	}
	return nil
}

// Game is the authoritative state of one Clue game. All mutation goes through
// its methods; callers only ever see copies.
type Game struct {
	board    *Board
	cards    CardSet
	players  []*Player
	solution Solution

	current        int
	phase          Phase
	movesRemaining int
	room           string // room entered this turn
	suggested      bool
	winner         int // index into players, -1 for none
}

// NewGame seats the players in order on the start cells and deals.
func NewGame(rng Rand, names []string, cards CardSet) (*Game, error) {
	if err := ValidatePlayerNames(names); err != nil {
		return nil, err
	}
	if err := cards.Validate(); err != nil {
		return nil, err
	}

	board := NewBoard()
	starts := board.StartPositions()
	players := make([]*Player, len(names))
	for i, name := range names {
		players[i] = &Player{
			Name:     name,
			Position: starts[i],
			Notes:    newNotes(cards),
		}
	}

	solution, err := DealAndChooseSolution(rng, players, cards)
	if err != nil {
		return nil, err
	}

	return &Game{
		board:    board,
		cards:    cards.Clone(),
		players:  players,
		solution: solution,
		phase:    PhaseAwaitingRoll,
		winner:   -1,
	}, nil
}

// Board returns the immutable board.
func (g *Game) Board() *Board { return g.board }

// Cards returns a copy of the configured card lists.
func (g *Game) Cards() CardSet { return g.cards.Clone() }

// Phase returns the current turn state.
func (g *Game) Phase() Phase { return g.phase }

// MovesRemaining is the unspent move budget of the active player.
func (g *Game) MovesRemaining() int { return g.movesRemaining }

// CurrentRoom returns the room the active player entered this turn.
func (g *Game) CurrentRoom() (string, bool) {
	return g.room, g.room != ""
}

// HasSuggested reports whether the active player already suggested this turn.
func (g *Game) HasSuggested() bool { return g.suggested }

// IsGameOver reports whether the game has ended.
func (g *Game) IsGameOver() bool { return g.phase == PhaseGameOver }

// CurrentPlayer returns the active player.
func (g *Game) CurrentPlayer() PlayerView {
	return g.players[g.current].view()
}

// Players returns every player in turn order.
func (g *Game) Players() []PlayerView {
	out := make([]PlayerView, len(g.players))
	for i, p := range g.players {
		out[i] = p.view()
	}
	return out
}

// Player looks a player up by name.
func (g *Game) Player(name string) (PlayerView, bool) {
	i := g.indexOf(name)
	if i < 0 {
		return PlayerView{}, false
	}
	return g.players[i].view(), true
}

// RoomAt returns the room whose entrance the named player stands on.
func (g *Game) RoomAt(name string) (string, bool) {
	i := g.indexOf(name)
	if i < 0 {
		return "", false
	}
	return g.board.RoomAt(g.players[i])
}

// ActiveCount is the number of players not eliminated.
func (g *Game) ActiveCount() int {
	n := 0
	for _, p := range g.players {
		if !p.Eliminated {
			n++
		}
	}
	return n
}

// Winner returns the winning player once the game is over.
func (g *Game) Winner() (PlayerView, bool) {
	if g.winner < 0 {
		return PlayerView{}, false
	}
	return g.players[g.winner].view(), true
}

// Solution is only revealed after the game has ended.
func (g *Game) Solution() (Solution, bool) {
	if !g.IsGameOver() {
		return Solution{}, false
	}
	return g.solution, true
}

func (g *Game) indexOf(name string) int {
	for i, p := range g.players {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// guardActive rejects actions once the game is over or when the active
// player has been eliminated.
func (g *Game) guardActive() error {
	if g.phase == PhaseGameOver {
		return ErrGameOver
	}
	if g.players[g.current].Eliminated {
		return ErrPlayerEliminated
	}
	return nil
}

// RollDice starts the move phase with a 2d6 budget.
func (g *Game) RollDice(rng Rand) (DiceRoll, error) {
	if err := g.guardActive(); err != nil {
		return DiceRoll{}, err
	}
	if g.phase != PhaseAwaitingRoll {
		return DiceRoll{}, ErrAlreadyRolled
	}

	roll := RollDice(rng)
	g.movesRemaining = roll.Total()
	g.phase = PhaseMoving
	return roll, nil
}

// RequestMove steps the active player one cell. A blocked step returns false
// and spends nothing. Stepping onto a room entrance stops the player there.
func (g *Game) RequestMove(d Direction) (bool, error) {
	if err := g.guardActive(); err != nil {
		return false, err
	}
	switch {
	case g.phase == PhaseInRoom:
		return false, ErrStoppedInRoom
	case g.phase != PhaseMoving:
		return false, ErrNotMoving
	case g.movesRemaining <= 0:
		return false, ErrNoMovesRemaining
	}
	if !d.Valid() {
		return false, fmt.Errorf("%w: %q", ErrUnknownDirection, string(d))
	}

	p := g.players[g.current]
	if !g.board.Move(p, d) {
		return false, nil
	}
	g.movesRemaining--

	if room, ok := g.board.RoomAt(p); ok {
		g.room = room
		g.movesRemaining = 0
		g.phase = PhaseInRoom
	}
	return true, nil
}

// Suggest asks the other players, clockwise from the suggester, to disprove
// the triple. Only the first holder answers.
func (g *Game) Suggest(rng Rand, suspect, weapon, room string) (Disproof, error) {
	if err := g.guardActive(); err != nil {
		return Disproof{}, err
	}
	if g.phase != PhaseInRoom {
		return Disproof{}, ErrNotInRoom
	}
	if g.suggested {
		return Disproof{}, ErrAlreadySuggested
	}
	if err := g.checkTriple(suspect, weapon, room); err != nil {
		return Disproof{}, err
	}
	if room != g.room {
		return Disproof{}, fmt.Errorf("%w: in %q, named %q", ErrRoomMismatch, g.room, room)
	}

	g.suggested = true
	return disprove(rng, g.players, g.current, Suggestion{Suspect: suspect, Weapon: weapon, Room: room}), nil
}

// Accuse checks the triple against the solution. A wrong accusation
// eliminates the accuser.
func (g *Game) Accuse(suspect, weapon, room string) (AccusationResult, error) {
	if err := g.guardActive(); err != nil {
		return AccusationResult{}, err
	}
	if err := g.checkTriple(suspect, weapon, room); err != nil {
		return AccusationResult{}, err
	}

	accuser := g.players[g.current]
	result := AccusationResult{Accuser: accuser.Name}

	if g.solution.Matches(suspect, weapon, room) {
		result.Correct = true
		g.finish(g.current)
	} else {
		accuser.Eliminated = true
		result.Eliminated = true
		g.movesRemaining = 0
		g.settle()
	}

	result.GameOver = g.IsGameOver()
	if w, ok := g.Winner(); ok {
		result.Winner = w.Name
	}
	return result, nil
}

// AdvanceTurn passes play to the next non-eliminated player. The search is
// bounded to one full cycle; finding nobody ends the game without a winner.
// It is a no-op once the game is over.
func (g *Game) AdvanceTurn() TurnChange {
	if g.phase == PhaseGameOver {
		return TurnChange{}
	}

	change := TurnChange{Previous: g.players[g.current].Name}
	n := len(g.players)
	for step := 1; step <= n; step++ {
		seat := (g.current + step) % n
		p := g.players[seat]
		if p.Eliminated {
			change.Skipped = append(change.Skipped, p.Name)
			continue
		}
		g.current = seat
		g.resetTurn()
		g.phase = PhaseAwaitingRoll
		change.Advanced = true
		change.Next = p.Name
		return change
	}

	change.AllEliminated = true
	g.finish(-1)
	return change
}

// SetNote marks or clears a notepad entry. Notes never affect the rules.
func (g *Game) SetNote(player string, c Category, item string, marked bool) error {
	i := g.indexOf(player)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownPlayer, player)
	}
	if !g.cards.Contains(c, item) {
		return fmt.Errorf("%w: %s/%q", ErrUnknownNote, c, item)
	}
	g.players[i].Notes[c][item] = marked
	return nil
}

func (g *Game) checkTriple(suspect, weapon, room string) error {
	if err := g.cards.checkCard(CategorySuspect, suspect); err != nil {
		return err
	}
	if err := g.cards.checkCard(CategoryWeapon, weapon); err != nil {
		return err
	}
	return g.cards.checkCard(CategoryRoom, room)
}

// settle ends the game when at most one player is left standing.
func (g *Game) settle() {
	last, active := -1, 0
	for i, p := range g.players {
		if !p.Eliminated {
			last = i
			active++
		}
	}
	switch active {
	case 0:
		g.finish(-1)
	case 1:
		g.finish(last)
	}
}

func (g *Game) finish(winner int) {
	g.winner = winner
	g.phase = PhaseGameOver
	g.resetTurn()
}

func (g *Game) resetTurn() {
	g.movesRemaining = 0
	g.room = ""
	g.suggested = false
}
