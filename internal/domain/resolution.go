package domain

// Suggestion is a suspect/weapon/room claim checked against other hands.
type Suggestion struct {
	Suspect string
	Weapon  string
	Room    string
}

func (s Suggestion) cards() []string {
	return []string{s.Suspect, s.Weapon, s.Room}
}

// Disproof is the outcome of a suggestion. Card is empty when nobody could
// disprove.
type Disproof struct {
	Suggester string
	Disprover string
	Card      string
	Passed    []string // players asked before the disprover, in order
}

// Shown reports whether a card was revealed.
func (d Disproof) Shown() bool {
	return d.Card != ""
}

// disproveOrder returns the seats asked after suggester, clockwise, excluding
// the suggester.
func disproveOrder(playerCount, suggester int) []int {
	order := make([]int, 0, playerCount-1)
	for step := 1; step < playerCount; step++ {
		order = append(order, (suggester+step)%playerCount)
	}
	return order
}

// disprove asks each player in order and stops at the first one holding a
// suggested card. That player shows one of their matching cards at random.
func disprove(rng Rand, players []*Player, suggester int, s Suggestion) Disproof {
	result := Disproof{Suggester: players[suggester].Name}
	for _, seat := range disproveOrder(len(players), suggester) {
		p := players[seat]
		matches := p.matchingCards(s.cards()...)
		if len(matches) == 0 {
			result.Passed = append(result.Passed, p.Name)
			continue
		}
		card := matches[0]
		if len(matches) > 1 {
			card = matches[rng.Intn(len(matches))]
		}
		result.Disprover = p.Name
		result.Card = card
		return result
	}
	return result
}

// AccusationResult is the verdict of an accusation.
type AccusationResult struct {
	Accuser    string
	Correct    bool
	Eliminated bool
	GameOver   bool
	Winner     string // empty when nobody won
}

// TurnChange describes an AdvanceTurn call.
type TurnChange struct {
	Advanced      bool
	Previous      string
	Next          string
	Skipped       []string // eliminated players passed over
	AllEliminated bool
}
