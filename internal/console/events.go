package console

import (
	"fmt"
	"strings"

	"clue/internal/app"

	"github.com/fatih/color"
)

// describe renders one event as a line of text. Hands are never printed on
// the shared screen; players look at them with the hand command.
func describe(ev app.Event, pal palette) (string, *color.Color) {
	switch p := ev.Payload.(type) {
	case app.GameStartedPayload:
		return fmt.Sprintf("A new game begins with %d players. %s goes first.", len(p.Seats), p.FirstPlayer), pal.Header
	case app.HandDealtPayload:
		return fmt.Sprintf("%s was dealt %d cards.", p.Player, len(p.Hand)), pal.Dim
	case app.DiceRolledPayload:
		return fmt.Sprintf("%s rolled %d and %d: %d moves.", p.Player, p.First, p.Second, p.Total), pal.Info
	case app.PlayerMovedPayload:
		return fmt.Sprintf("%s moved %s to cell %d (%d left).", p.Player, p.Direction, p.To, p.MovesRemaining), pal.Dim
	case app.MoveBlockedPayload:
		return fmt.Sprintf("%s cannot move %s from cell %d.", p.Player, p.Direction, p.Position), pal.Warn
	case app.RoomEnteredPayload:
		return fmt.Sprintf("%s entered the %s.", p.Player, p.Room), pal.Good
	case app.SuggestionMadePayload:
		text := fmt.Sprintf("%s suggests %s with the %s in the %s.", p.Suggester, p.Suspect, p.Weapon, p.Room)
		if len(p.Passed) > 0 {
			text += fmt.Sprintf(" %s could not disprove.", strings.Join(p.Passed, ", "))
		}
		if p.Disprover != "" {
			text += fmt.Sprintf(" %s shows a card.", p.Disprover)
		}
		return text, pal.Info
	case app.CardShownPayload:
		return fmt.Sprintf("%s shows %s the %s.", p.Disprover, p.Suggester, p.Card), pal.Header
	case app.NoCardShownPayload:
		return "Nobody could disprove the suggestion.", pal.Warn
	case app.AccusationMadePayload:
		verdict := pal.Bad.Sprint("wrong")
		if p.Correct {
			verdict = pal.Good.Sprint("correct")
		}
		return fmt.Sprintf("%s accuses %s with the %s in the %s. The accusation is %s.", p.Accuser, p.Suspect, p.Weapon, p.Room, verdict), pal.Header
	case app.PlayerEliminatedPayload:
		return fmt.Sprintf("%s is eliminated. %d still in the game.", p.Player, p.Remaining), pal.Bad
	case app.TurnAdvancedPayload:
		text := fmt.Sprintf("%s's turn.", p.Next)
		if len(p.Skipped) > 0 {
			text = fmt.Sprintf("Skipping %s. %s", strings.Join(p.Skipped, ", "), text)
		}
		return text, pal.Header
	case app.GameEndedPayload:
		// The final summary is rendered separately.
		return "", pal.Dim
	}
	return fmt.Sprintf("%s: %+v", ev.Kind, ev.Payload), pal.Dim
}
