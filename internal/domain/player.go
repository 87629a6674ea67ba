package domain

// Notes is a player's detective notepad: category -> card -> marked.
// The rules never read it.
type Notes map[Category]map[string]bool

func newNotes(cards CardSet) Notes {
	n := make(Notes, len(Categories))
	for _, c := range Categories {
		items := cards.Items(c)
		n[c] = make(map[string]bool, len(items))
		for _, item := range items {
			n[c][item] = false
		}
	}
	return n
}

func (n Notes) clone() Notes {
	out := make(Notes, len(n))
	for c, items := range n {
		out[c] = make(map[string]bool, len(items))
		for item, marked := range items {
			out[c][item] = marked
		}
	}
	return out
}

// Player holds the domain state for one participant.
type Player struct {
	Name       string
	Position   int // 1-based cell
	Hand       []string
	Eliminated bool
	Notes      Notes
}

// HasCard reports whether card is in the player's hand.
func (p *Player) HasCard(card string) bool {
	for _, c := range p.Hand {
		if c == card {
			return true
		}
	}
	return false
}

// matchingCards returns the hand cards among wanted, in hand order.
func (p *Player) matchingCards(wanted ...string) []string {
	var out []string
	for _, c := range p.Hand {
		for _, w := range wanted {
			if c == w {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// PlayerView is a read-only snapshot of a player.
type PlayerView struct {
	Name       string
	Position   int
	Hand       []string
	Eliminated bool
	Notes      Notes
}

func (p *Player) view() PlayerView {
	return PlayerView{
		Name:       p.Name,
		Position:   p.Position,
		Hand:       append([]string(nil), p.Hand...),
		Eliminated: p.Eliminated,
		Notes:      p.Notes.clone(),
	}
}

// HasCard reports whether card is in the viewed hand.
func (v PlayerView) HasCard(card string) bool {
	for _, c := range v.Hand {
		if c == card {
			return true
		}
	}
	return false
}
