package nakama

const (
	// RpcCreateTable is the Nakama RPC id clients call to open a hot-seat table.
	RpcCreateTable = "clue_create_table"
	// RpcBoard returns the static board layout and card lists for rendering.
	RpcBoard = "clue_board"

	// MatchNameClue is the authoritative match handler name registered with Nakama.
	MatchNameClue = "clue_table"

	// MatchLabelGame is the "game" value in every table label.
	MatchLabelGame = "clue"

	// MetadataTicket is the join metadata key carrying the table ticket.
	MetadataTicket = "ticket"
)

const (
	tickRate = 1
	// lingerTicks is how long a finished table stays up for the end screen.
	lingerTicks = 30
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpRoll    int64 = 1
	OpMove    int64 = 2
	OpSuggest int64 = 3
	OpAccuse  int64 = 4
	OpEndTurn int64 = 5
	OpNote    int64 = 6
	OpSync    int64 = 7

	// Server -> Client events
	OpGameStarted      int64 = 101
	OpHandDealt        int64 = 102 // private
	OpDiceRolled       int64 = 103
	OpPlayerMoved      int64 = 104
	OpMoveBlocked      int64 = 105
	OpRoomEntered      int64 = 106
	OpSuggestionMade   int64 = 107
	OpCardShown        int64 = 108 // private to the suggester
	OpNoCardShown      int64 = 109
	OpAccusationMade   int64 = 110
	OpPlayerEliminated int64 = 111
	OpTurnAdvanced     int64 = 112
	OpGameEnded        int64 = 113

	OpSnapshot int64 = 150
	OpError    int64 = 199
)

// gRPC status codes used by runtime.NewError and error events.
const (
	codeInvalidArgument    = 3
	codeFailedPrecondition = 9
	codeInternal           = 13
	codeUnauthenticated    = 16
)
