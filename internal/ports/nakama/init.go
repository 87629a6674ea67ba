package nakama

import (
	"context"
	"database/sql"

	"clue/internal/app"
	"clue/internal/config"

	"github.com/google/uuid"
	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires RPCs and match handlers for Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	vars, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	settings, err := config.ParseEnvMap(vars)
	if err != nil {
		logger.Error("InitModule: Invalid runtime env: %v", err)
		return err
	}

	if err := config.LoadGameConfig(settings.ConfigPath); err != nil {
		logger.Warn("InitModule: Could not load game config, using defaults: %v", err)
	}
	cards := config.GetGameConfig().CardSet()

	secret := settings.TicketSecret
	if secret == "" {
		// Tickets then only survive until the next restart.
		secret = uuid.NewString()
		logger.Warn("InitModule: CLUE_TICKET_SECRET not set, using a random per-process secret.")
	}
	tickets := app.NewTicketService(secret, settings.TicketTTL)

	if err := RegisterRPCs(initializer, tickets); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameClue, func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
		return newMatchHandler(tickets, cards, settings.Seed, settings.TicketTTL), nil
	}); err != nil {
		return err
	}

	logger.Info("Clue Go module loaded.")
	return nil
}
