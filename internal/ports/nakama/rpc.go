package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"

	"clue/internal/config"
	"clue/internal/domain"
	"clue/internal/ports"

	"github.com/google/uuid"
	"github.com/heroiclabs/nakama-common/runtime"
)

// CreateTableRequest is the optional RpcCreateTable payload.
type CreateTableRequest struct {
	Players []string `json:"players"`
}

// CreateTableResponse tells the owner which match to join and with what ticket.
type CreateTableResponse struct {
	MatchID string   `json:"match_id"`
	TableID string   `json:"table_id"`
	Ticket  string   `json:"ticket"`
	Players []string `json:"players"`
}

// EntranceInfo is one room entrance on the board.
type EntranceInfo struct {
	Cell int    `json:"cell"`
	Room string `json:"room"`
}

// BoardResponse is the static table description returned by RpcBoard.
type BoardResponse struct {
	GridSize       int            `json:"grid_size"`
	Walls          []int          `json:"walls"`
	Entrances      []EntranceInfo `json:"entrances"`
	StartPositions []int          `json:"start_positions"`
	Suspects       []string       `json:"suspects"`
	Weapons        []string       `json:"weapons"`
	Rooms          []string       `json:"rooms"`
}

// RegisterRPCs registers Nakama RPC endpoints. New tables get their join
// tickets from issuer.
func RegisterRPCs(initializer runtime.Initializer, issuer ports.TicketIssuer) error {
	if err := initializer.RegisterRpc(RpcCreateTable, newCreateTableHandler(issuer)); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcBoard, RpcBoardHandler)
}

// newCreateTableHandler returns the RpcCreateTable handler, which opens a
// hot-seat table owned by the caller.
//
// Payload: {"players": ["Red", "Blue"]} (optional; configured defaults otherwise).
// Returns: CreateTableResponse as JSON.
func newCreateTableHandler(issuer ports.TicketIssuer) func(context.Context, runtime.Logger, *sql.DB, runtime.NakamaModule, string) (string, error) {
	return func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
		userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
		if userID == "" {
			return "", runtime.NewError("Authentication required", codeUnauthenticated)
		}
		if issuer == nil {
			logger.Error("RpcCreateTable [User:%s]: ticket issuer not configured", userID)
			return "", runtime.NewError("Internal error", codeInternal)
		}

		var req CreateTableRequest
		if payload != "" {
			if err := json.Unmarshal([]byte(payload), &req); err != nil {
				return "", runtime.NewError("Invalid payload", codeInvalidArgument)
			}
		}
		players := req.Players
		if len(players) == 0 {
			players = config.GetGameConfig().Players()
		}
		if err := domain.ValidatePlayerNames(players); err != nil {
			return "", runtime.NewError(err.Error(), errorCode(err))
		}

		// The ticket comes first so a signing failure leaves no match behind.
		tableID := uuid.NewString()
		ticket, err := issuer.Issue(userID, tableID)
		if err != nil {
			logger.Error("RpcCreateTable [User:%s]: Failed to issue ticket: %v", userID, err)
			return "", runtime.NewError("Internal error", codeInternal)
		}

		playersJSON, _ := json.Marshal(players)
		matchID, err := nk.MatchCreate(ctx, MatchNameClue, map[string]interface{}{
			paramTableID: tableID,
			paramOwnerID: userID,
			paramPlayers: string(playersJSON),
		})
		if err != nil {
			logger.Error("RpcCreateTable [User:%s]: Failed to create match: %v", userID, err)
			return "", runtime.NewError("Internal error", codeInternal)
		}

		logger.Info("RpcCreateTable [User:%s]: Created table %s (match %s) for %v", userID, tableID, matchID, players)
		b, _ := json.Marshal(CreateTableResponse{
			MatchID: matchID,
			TableID: tableID,
			Ticket:  ticket,
			Players: players,
		})
		return string(b), nil
	}
}

// RpcBoardHandler returns the board layout and configured card lists.
func RpcBoardHandler(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	layout := domain.NewBoard().Layout()
	cards := config.GetGameConfig().CardSet()

	entrances := make([]EntranceInfo, 0, len(layout.Entrances))
	for cell, room := range layout.Entrances {
		entrances = append(entrances, EntranceInfo{Cell: cell, Room: room})
	}
	sort.Slice(entrances, func(i, j int) bool { return entrances[i].Cell < entrances[j].Cell })

	b, err := json.Marshal(BoardResponse{
		GridSize:       layout.GridSize,
		Walls:          layout.Walls,
		Entrances:      entrances,
		StartPositions: layout.StartPositions,
		Suspects:       cards.Suspects,
		Weapons:        cards.Weapons,
		Rooms:          cards.Rooms,
	})
	if err != nil {
		logger.Error("RpcBoard: Failed to marshal board: %v", err)
		return "", runtime.NewError("Internal error", codeInternal)
	}
	return string(b), nil
}
