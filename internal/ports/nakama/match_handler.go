package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"clue/internal/app"
	"clue/internal/domain"
	"clue/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// MatchCreate params set by the RpcCreateTable handler.
const (
	paramTableID = "table_id"
	paramOwnerID = "owner_id"
	paramPlayers = "players"
)

// MatchState holds the authoritative runtime state for one hot-seat table.
type MatchState struct {
	TableID      string               `json:"table_id"`
	OwnerID      string               `json:"owner_id"`
	Tick         int64                `json:"tick"`
	EndedTick    int64                `json:"ended_tick"`    // tick the game ended on, 0 while running
	JoinDeadline int64                `json:"join_deadline"` // last tick the owner may still arrive on
	Owner        runtime.Presence     `json:"-"`             // nil until the owner joins
	App          *app.Service         `json:"-"`
	Game         *domain.Game         `json:"-"`
	Tickets      ports.TicketVerifier `json:"-"`
}

type matchHandler struct {
	tickets     ports.TicketVerifier
	cards       domain.CardSet
	seed        int64         // 0 means time-seeded
	joinTimeout time.Duration // how long an unjoined table waits; matches the ticket TTL
}

func newMatchHandler(tickets ports.TicketVerifier, cards domain.CardSet, seed int64, joinTimeout time.Duration) *matchHandler {
	if joinTimeout <= 0 {
		joinTimeout = app.DefaultTicketTTL
	}
	return &matchHandler{tickets: tickets, cards: cards, seed: seed, joinTimeout: joinTimeout}
}

// joinDeadlineTicks converts the join timeout to loop ticks.
func (mh *matchHandler) joinDeadlineTicks() int64 {
	return int64(mh.joinTimeout.Seconds() * tickRate)
}

// MatchInit is called when the match is created. The game is dealt straight
// away; there is no lobby.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	tableID, _ := params[paramTableID].(string)
	ownerID, _ := params[paramOwnerID].(string)
	if tableID == "" || ownerID == "" {
		logger.Error("MatchInit: Missing table or owner in params.")
		return nil, 0, ""
	}

	var players []string
	if raw, ok := params[paramPlayers].(string); ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &players); err != nil {
			logger.Error("MatchInit: Invalid players param %q: %v", raw, err)
			return nil, 0, ""
		}
	}

	var rng *rand.Rand
	if mh.seed != 0 {
		rng = rand.New(rand.NewSource(mh.seed))
	}
	svc := app.NewService(rng, mh.cards)
	game, events, err := svc.NewGame(players)
	if err != nil {
		logger.Error("MatchInit: Failed to start game for table %s: %v", tableID, err)
		return nil, 0, ""
	}

	state := &MatchState{
		TableID:      tableID,
		OwnerID:      ownerID,
		JoinDeadline: mh.joinDeadlineTicks(),
		App:          svc,
		Game:         game,
		Tickets:      mh.tickets,
	}
	logger.Info("MatchInit: Table %s dealt for %d players (%d events).", tableID, len(game.Players()), len(events))

	label, err := matchLabel(state)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}
	return state, tickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	userID := presence.GetUserId()
	if userID != matchState.OwnerID {
		logger.Warn("MatchJoinAttempt: User %s is not the owner of table %s.", userID, matchState.TableID)
		return state, false, "Not the table owner"
	}
	if matchState.Owner != nil {
		return state, false, "Table already in use"
	}
	if matchState.Tickets == nil {
		logger.Error("MatchJoinAttempt: No ticket verifier for table %s.", matchState.TableID)
		return state, false, "Table unavailable"
	}
	if err := matchState.Tickets.Verify(metadata[MetadataTicket], userID, matchState.TableID); err != nil {
		logger.Warn("MatchJoinAttempt: User %s rejected from table %s: %v", userID, matchState.TableID, err)
		return state, false, "Invalid ticket"
	}
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		if p.GetUserId() == matchState.OwnerID {
			matchState.Owner = p
		}
	}
	logger.Debug("MatchJoin: Owner %s seated at table %s.", matchState.OwnerID, matchState.TableID)

	mh.updateLabel(matchState, dispatcher, logger)
	mh.sendSnapshot(matchState, dispatcher, logger)
	return matchState
}

// MatchLeave ends the table when its owner goes away.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		if p.GetUserId() == matchState.OwnerID {
			logger.Info("MatchLeave: Owner left table %s, terminating.", matchState.TableID)
			return nil
		}
	}
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	// Once the ticket has expired nobody can join, so an empty table is closed.
	if matchState.Owner == nil && tick > matchState.JoinDeadline {
		logger.Info("MatchLoop: Owner never joined table %s, terminating.", matchState.TableID)
		return nil
	}

	for _, msg := range messages {
		if msg.GetUserId() != matchState.OwnerID {
			logger.Warn("MatchLoop: Ignoring message from non-owner %s.", msg.GetUserId())
			continue
		}
		mh.handleCommand(matchState, dispatcher, logger, msg)
	}

	if matchState.Game.IsGameOver() {
		if matchState.EndedTick == 0 {
			matchState.EndedTick = tick
		}
		if tick-matchState.EndedTick >= lingerTicks {
			logger.Info("MatchLoop: Table %s finished, terminating.", matchState.TableID)
			return nil
		}
	}
	return matchState
}

// handleCommand applies one client command on behalf of the active player.
// The owner's device is shared, so the actor is always whoever's turn it is.
func (mh *matchHandler) handleCommand(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	cmd, err := decodeCommand(msg.GetData())
	if err != nil {
		logger.Warn("handleCommand: Bad payload for op %d: %v", msg.GetOpCode(), err)
		mh.sendError(state, dispatcher, logger, codeInvalidArgument, "invalid payload")
		return
	}

	game := state.Game
	actor := game.CurrentPlayer().Name

	var events []app.Event
	switch msg.GetOpCode() {
	case OpRoll:
		events, err = state.App.RollDice(game, actor)
	case OpMove:
		events, err = state.App.RequestMove(game, actor, domain.Direction(stringField(cmd, "direction")))
	case OpSuggest:
		events, err = state.App.Suggest(game, actor, stringField(cmd, "suspect"), stringField(cmd, "weapon"))
	case OpAccuse:
		events, err = state.App.Accuse(game, actor, stringField(cmd, "suspect"), stringField(cmd, "weapon"), stringField(cmd, "room"))
	case OpEndTurn:
		events, err = state.App.AdvanceTurn(game, actor)
	case OpNote:
		player := stringField(cmd, "player")
		if player == "" {
			player = actor
		}
		err = state.App.SetNote(game, player, domain.Category(stringField(cmd, "category")), stringField(cmd, "item"), boolField(cmd, "marked"))
		if err == nil {
			mh.sendSnapshot(state, dispatcher, logger)
		}
	case OpSync:
		mh.sendSnapshot(state, dispatcher, logger)
		return
	default:
		logger.Warn("handleCommand: Unknown opcode received: %d", msg.GetOpCode())
		mh.sendError(state, dispatcher, logger, codeInvalidArgument, fmt.Sprintf("unknown op code %d", msg.GetOpCode()))
		return
	}

	if err != nil {
		logger.Debug("handleCommand: %s rejected op %d at table %s: %v", actor, msg.GetOpCode(), state.TableID, err)
		mh.sendError(state, dispatcher, logger, errorCode(err), err.Error())
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	if len(events) > 0 {
		mh.updateLabel(state, dispatcher, logger)
	}
}

// broadcastEvent handles the conversion and dispatching of app events to Nakama.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, fields, err := eventToMessage(ev)
	if err != nil {
		logger.Warn("broadcastEvent: %v", err)
		return
	}
	mh.send(state, dispatcher, logger, opCode, fields)
}

func (mh *matchHandler) sendSnapshot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	mh.send(state, dispatcher, logger, OpSnapshot, snapshotFields(state.TableID, state.Game))
}

// sendError reports a rejected command to the owner.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, code int, message string) {
	mh.send(state, dispatcher, logger, OpError, map[string]interface{}{
		"code":    code,
		"message": message,
	})
}

func (mh *matchHandler) send(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, opCode int64, fields map[string]interface{}) {
	if state.Owner == nil {
		return
	}
	data, err := encodeFields(fields)
	if err != nil {
		logger.Error("send: Failed to marshal op %d: %v", opCode, err)
		return
	}
	if err := dispatcher.BroadcastMessage(opCode, data, []runtime.Presence{state.Owner}, nil, true); err != nil {
		logger.Error("send: Failed to dispatch op %d: %v", opCode, err)
	}
}

func matchLabel(state *MatchState) (string, error) {
	label, err := structpb.NewStruct(map[string]interface{}{
		"game":     MatchLabelGame,
		"phase":    string(state.Game.Phase()),
		"table_id": state.TableID,
	})
	if err != nil {
		return "", err
	}
	b, err := (&protojson.MarshalOptions{EmitUnpopulated: true}).Marshal(label)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := matchLabel(state)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminated with %d grace seconds", graceSeconds)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
