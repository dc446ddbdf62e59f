package bot

// Move represents the action decided by the AI for the active hand.
type Move struct {
	Action string
}

// BotLevel selects a strategy implementation.
type BotLevel int

const (
	// BotLevelDealer mimics the house: hit below 17, stand otherwise.
	BotLevelDealer BotLevel = iota
	// BotLevelBasic plays basic strategy against the dealer upcard.
	BotLevelBasic
)
