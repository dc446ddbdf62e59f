package app

// MaxSeats caps a table at two players. Keep this centralized so tests or
// local runs can adjust the rule without touching multiple call sites.
const MaxSeats = 2

// Client action tokens accepted during a player turn.
const (
	ActionHit    = "hit"
	ActionStand  = "stand"
	ActionDouble = "double"
	ActionSplit  = "split"
)
