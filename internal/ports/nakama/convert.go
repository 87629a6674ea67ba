package nakama

import (
	"errors"
	"fmt"

	"clue/internal/app"
	"clue/internal/domain"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

var eventOpCodes = map[app.EventKind]int64{
	app.EventGameStarted:      OpGameStarted,
	app.EventHandDealt:        OpHandDealt,
	app.EventDiceRolled:       OpDiceRolled,
	app.EventPlayerMoved:      OpPlayerMoved,
	app.EventMoveBlocked:      OpMoveBlocked,
	app.EventRoomEntered:      OpRoomEntered,
	app.EventSuggestionMade:   OpSuggestionMade,
	app.EventCardShown:        OpCardShown,
	app.EventNoCardShown:      OpNoCardShown,
	app.EventAccusationMade:   OpAccusationMade,
	app.EventPlayerEliminated: OpPlayerEliminated,
	app.EventTurnAdvanced:     OpTurnAdvanced,
	app.EventGameEnded:        OpGameEnded,
}

// eventToMessage maps an app event to its op code and wire fields.
func eventToMessage(ev app.Event) (int64, map[string]interface{}, error) {
	opCode, ok := eventOpCodes[ev.Kind]
	if !ok {
		return 0, nil, fmt.Errorf("unknown event kind %q", ev.Kind)
	}

	var fields map[string]interface{}
	switch p := ev.Payload.(type) {
	case app.GameStartedPayload:
		seats := make([]interface{}, len(p.Seats))
		for i, s := range p.Seats {
			seats[i] = map[string]interface{}{"player": s.Player, "position": s.Position}
		}
		fields = map[string]interface{}{
			"phase":        string(p.Phase),
			"seats":        seats,
			"first_player": p.FirstPlayer,
		}
	case app.HandDealtPayload:
		fields = map[string]interface{}{"player": p.Player, "hand": toList(p.Hand)}
	case app.DiceRolledPayload:
		fields = map[string]interface{}{
			"player": p.Player,
			"first":  p.First,
			"second": p.Second,
			"total":  p.Total,
		}
	case app.PlayerMovedPayload:
		fields = map[string]interface{}{
			"player":          p.Player,
			"from":            p.From,
			"to":              p.To,
			"direction":       string(p.Direction),
			"moves_remaining": p.MovesRemaining,
		}
	case app.MoveBlockedPayload:
		fields = map[string]interface{}{
			"player":          p.Player,
			"position":        p.Position,
			"direction":       string(p.Direction),
			"moves_remaining": p.MovesRemaining,
		}
	case app.RoomEnteredPayload:
		fields = map[string]interface{}{"player": p.Player, "room": p.Room, "cell": p.Cell}
	case app.SuggestionMadePayload:
		fields = map[string]interface{}{
			"suggester": p.Suggester,
			"suspect":   p.Suspect,
			"weapon":    p.Weapon,
			"room":      p.Room,
			"passed":    toList(p.Passed),
			"disprover": p.Disprover,
		}
	case app.CardShownPayload:
		fields = map[string]interface{}{"suggester": p.Suggester, "disprover": p.Disprover, "card": p.Card}
	case app.NoCardShownPayload:
		fields = map[string]interface{}{"suggester": p.Suggester}
	case app.AccusationMadePayload:
		fields = map[string]interface{}{
			"accuser": p.Accuser,
			"suspect": p.Suspect,
			"weapon":  p.Weapon,
			"room":    p.Room,
			"correct": p.Correct,
		}
	case app.PlayerEliminatedPayload:
		fields = map[string]interface{}{"player": p.Player, "remaining": p.Remaining}
	case app.TurnAdvancedPayload:
		fields = map[string]interface{}{
			"previous": p.Previous,
			"next":     p.Next,
			"skipped":  toList(p.Skipped),
		}
	case app.GameEndedPayload:
		fields = map[string]interface{}{
			"winner":    p.Winner,
			"no_winner": p.NoWinner,
			"solution":  solutionFields(p.Solution),
		}
	default:
		return 0, nil, fmt.Errorf("unexpected payload %T for %q", ev.Payload, ev.Kind)
	}

	// Private events still reach the single hot-seat device; the client
	// hides them from everyone but the listed players.
	if ev.Private() {
		fields["recipients"] = toList(ev.Recipients)
	}
	return opCode, fields, nil
}

// snapshotFields describes the table as the active player may see it: every
// token, but only the active player's hand and notepad.
func snapshotFields(tableID string, game *domain.Game) map[string]interface{} {
	current := game.CurrentPlayer()
	room, _ := game.CurrentRoom()

	players := make([]interface{}, 0, len(game.Players()))
	for _, p := range game.Players() {
		players = append(players, map[string]interface{}{
			"name":       p.Name,
			"position":   p.Position,
			"eliminated": p.Eliminated,
			"hand_size":  len(p.Hand),
		})
	}

	notes := make(map[string]interface{}, len(current.Notes))
	for category, items := range current.Notes {
		marked := make(map[string]interface{}, len(items))
		for item, v := range items {
			marked[item] = v
		}
		notes[string(category)] = marked
	}

	fields := map[string]interface{}{
		"table_id":        tableID,
		"phase":           string(game.Phase()),
		"current_player":  current.Name,
		"moves_remaining": game.MovesRemaining(),
		"current_room":    room,
		"has_suggested":   game.HasSuggested(),
		"players":         players,
		"hand":            toList(current.Hand),
		"notes":           notes,
	}
	if w, ok := game.Winner(); ok {
		fields["winner"] = w.Name
	}
	if s, ok := game.Solution(); ok {
		fields["solution"] = solutionFields(s)
	}
	return fields
}

func solutionFields(s domain.Solution) map[string]interface{} {
	return map[string]interface{}{
		"suspect": s.Suspect,
		"weapon":  s.Weapon,
		"room":    s.Room,
	}
}

func toList(items []string) []interface{} {
	out := make([]interface{}, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

func encodeFields(fields map[string]interface{}) ([]byte, error) {
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}
	return protojson.Marshal(s)
}

// decodeCommand parses a client message body. An empty body is an empty command.
func decodeCommand(data []byte) (*structpb.Struct, error) {
	cmd := &structpb.Struct{}
	if len(data) == 0 {
		return cmd, nil
	}
	if err := protojson.Unmarshal(data, cmd); err != nil {
		return nil, err
	}
	return cmd, nil
}

func stringField(cmd *structpb.Struct, key string) string {
	return cmd.GetFields()[key].GetStringValue()
}

func boolField(cmd *structpb.Struct, key string) bool {
	return cmd.GetFields()[key].GetBoolValue()
}

// errorCode maps domain error categories to gRPC status codes.
func errorCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidConfiguration):
		return codeInvalidArgument
	case errors.Is(err, domain.ErrIllegalState):
		return codeFailedPrecondition
	case errors.Is(err, app.ErrInvalidTicket):
		return codeUnauthenticated
	default:
		return codeInternal
	}
}
