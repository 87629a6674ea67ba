package console

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"clue/internal/domain"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// renderBoard draws the grid row by row: walls, room entrances and tokens.
func renderBoard(w io.Writer, game *domain.Game, pal palette) {
	layout := game.Board().Layout()
	walls := make(map[int]bool, len(layout.Walls))
	for _, cell := range layout.Walls {
		walls[cell] = true
	}

	occupants := make(map[int][]int)
	for i, p := range game.Players() {
		occupants[p.Position] = append(occupants[p.Position], i)
	}
	players := game.Players()

	var b strings.Builder
	for row := 0; row < layout.GridSize; row++ {
		for col := 0; col < layout.GridSize; col++ {
			cell := row*layout.GridSize + col + 1
			switch seats := occupants[cell]; {
			case len(seats) > 0:
				glyph := " " + initial(players[seats[0]].Name)
				if len(seats) > 1 {
					glyph += "+"
				} else {
					glyph += " "
				}
				b.WriteString(pal.token(seats[0]).Sprint(glyph))
			case walls[cell]:
				b.WriteString(pal.Wall.Sprint("###"))
			case layout.Entrances[cell] != "":
				b.WriteString(pal.Room.Sprint(" " + initial(layout.Entrances[cell]) + " "))
			default:
				b.WriteString(pal.Dim.Sprint(" . "))
			}
		}
		b.WriteString("\n")
	}
	fmt.Fprint(w, b.String())

	cells := make([]int, 0, len(layout.Entrances))
	for cell := range layout.Entrances {
		cells = append(cells, cell)
	}
	sort.Ints(cells)
	legend := make([]string, len(cells))
	for i, cell := range cells {
		legend[i] = fmt.Sprintf("%s %s", pal.Room.Sprint(initial(layout.Entrances[cell])), layout.Entrances[cell])
	}
	fmt.Fprintf(w, "Rooms: %s\n", strings.Join(legend, ", "))
}

func initial(name string) string {
	for _, r := range name {
		return strings.ToUpper(string(r))
	}
	return "?"
}

// renderStatus prints whose turn it is and every token's state.
func renderStatus(w io.Writer, game *domain.Game, pal palette) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Players")
	t.AppendHeader(table.Row{"#", "Player", "Cell", "Room", "Cards", "Status"})

	current := game.CurrentPlayer().Name
	for i, p := range game.Players() {
		room, _ := game.RoomAt(p.Name)
		status := pal.Good.Sprint("active")
		if p.Eliminated {
			status = pal.Bad.Sprint("eliminated")
		}
		name := pal.token(i).Sprint(p.Name)
		if p.Name == current && !game.IsGameOver() {
			name += " *"
		}
		t.AppendRow(table.Row{i + 1, name, p.Position, room, len(p.Hand), status})
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Title.Align = text.AlignCenter
	t.Render()

	if game.IsGameOver() {
		renderGameOver(w, game, pal)
		return
	}
	line := fmt.Sprintf("Turn: %s, phase %s", current, game.Phase())
	if game.Phase() == domain.PhaseMoving {
		line += fmt.Sprintf(", %d moves left", game.MovesRemaining())
	}
	if room, ok := game.CurrentRoom(); ok {
		line += fmt.Sprintf(", in the %s", room)
	}
	pal.Info.Fprintln(w, line)
}

func renderGameOver(w io.Writer, game *domain.Game, pal palette) {
	if winner, ok := game.Winner(); ok {
		pal.Good.Fprintf(w, "Game over. %s wins.\n", winner.Name)
	} else {
		pal.Bad.Fprintln(w, "Game over. Nobody solved the case.")
	}
	if s, ok := game.Solution(); ok {
		pal.Header.Fprintf(w, "Solution: %s with the %s in the %s\n", s.Suspect, s.Weapon, s.Room)
	}
}

// renderHand lists the cards of player.
func renderHand(w io.Writer, game *domain.Game, player domain.PlayerView) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("%s's Hand", player.Name))
	t.AppendHeader(table.Row{"Card", "Type"})
	cards := game.Cards()
	for _, card := range player.Hand {
		category, _ := cards.CategoryOf(card)
		t.AppendRow(table.Row{card, category})
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Title.Align = text.AlignCenter
	t.Render()
}

// renderNotes prints the notepad with cards from the player's own hand flagged.
func renderNotes(w io.Writer, game *domain.Game, player domain.PlayerView, pal palette) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("%s's Detective Notes", player.Name))
	t.AppendHeader(table.Row{"Type", "Card", "Ruled out"})

	cards := game.Cards()
	for i, category := range domain.Categories {
		if i > 0 {
			t.AppendSeparator()
		}
		for _, item := range cards.Items(category) {
			mark := pal.Dim.Sprint("-")
			if player.Notes[category][item] {
				mark = pal.Good.Sprint("x")
			}
			name := item
			if player.HasCard(item) {
				name += " (hand)"
			}
			t.AppendRow(table.Row{category, name, mark})
		}
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Title.Align = text.AlignCenter
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignCenter},
	})
	t.Render()
}
