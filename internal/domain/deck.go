package domain

// Rand is the random source used for dealing, dice and disproof choice.
// *math/rand.Rand satisfies it; tests pass a seeded one.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Solution is the hidden suspect/weapon/room triple.
type Solution struct {
	Suspect string
	Weapon  string
	Room    string
}

// Matches reports whether the triple equals the solution category-wise.
func (s Solution) Matches(suspect, weapon, room string) bool {
	return s.Suspect == suspect && s.Weapon == weapon && s.Room == room
}

// Cards returns the solution as a card list.
func (s Solution) Cards() []string {
	return []string{s.Suspect, s.Weapon, s.Room}
}

// ShuffleCards returns a shuffled copy of cards.
func ShuffleCards(rng Rand, cards []string) []string {
	out := make([]string, len(cards))
	copy(out, cards)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// DealAndChooseSolution picks one card per category as the solution, shuffles
// the rest and deals them round-robin starting with players[0]. Every
// player's hand is replaced.
func DealAndChooseSolution(rng Rand, players []*Player, cards CardSet) (Solution, error) {
	if len(players) == 0 {
		return Solution{}, ErrNoPlayers
	}
	if err := cards.Validate(); err != nil {
		return Solution{}, err
	}

	solution := Solution{
		Suspect: cards.Suspects[rng.Intn(len(cards.Suspects))],
		Weapon:  cards.Weapons[rng.Intn(len(cards.Weapons))],
		Room:    cards.Rooms[rng.Intn(len(cards.Rooms))],
	}

	remaining := make([]string, 0, cards.Size()-3)
	for _, card := range cards.All() {
		if card == solution.Suspect || card == solution.Weapon || card == solution.Room {
			continue
		}
		remaining = append(remaining, card)
	}
	remaining = ShuffleCards(rng, remaining)

	perPlayer := len(remaining)/len(players) + 1
	hands := make([][]string, len(players))
	for i := range hands {
		hands[i] = make([]string, 0, perPlayer)
	}
	for i, card := range remaining {
		seat := i % len(players)
		hands[seat] = append(hands[seat], card)
	}
	for i, p := range players {
		p.Hand = hands[i]
	}

	return solution, nil
}
