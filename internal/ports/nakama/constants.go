package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create an open table.
	RpcQuickMatch = "quick_match"

	// RpcInviteToken is the Nakama RPC id that mints a private-table invite token.
	RpcInviteToken = "invite_token"

	// MatchNameBlackjack is the authoritative match handler name registered with Nakama.
	MatchNameBlackjack = "blackjack_match"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpPlaceBet int64 = 1
	OpAction   int64 = 2

	// Server -> Client events
	OpWelcome    int64 = 101
	OpGameState  int64 = 102
	OpHitResult  int64 = 103
	OpSplitAck   int64 = 104
	OpNextHand   int64 = 105
	OpPlayerDone int64 = 106
	OpResult     int64 = 107
	OpSettlement int64 = 108
	OpError      int64 = 109
	OpGameOver   int64 = 110
)
