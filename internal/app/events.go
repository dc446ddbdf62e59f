package app

import "blackjack/internal/domain"

// EventKind identifies emitted game events; values double as the wire
// message type tag.
type EventKind string

const (
	EventWelcome    EventKind = "welcome"
	EventGameState  EventKind = "game_state"
	EventHitResult  EventKind = "hit_result"
	EventSplitAck   EventKind = "split_ack"
	EventNextHand   EventKind = "next_hand"
	EventPlayerDone EventKind = "player1_done"
	EventResult     EventKind = "result"
	EventSettlement EventKind = "settlement"
	EventGameOver   EventKind = "game_over"
)

// Event is a game event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

// WelcomePayload announces a seat's starting balance.
type WelcomePayload struct {
	Seat    int
	Money   int64
	Message string
}

// GameStatePayload is the private post-deal snapshot for one seat. Only the
// dealer's first card is exposed; the hole card never leaves the round state
// before settlement.
type GameStatePayload struct {
	Seat          int
	Hand          []domain.Card
	Value         int
	DealerVisible []domain.Card
	Bet           int64
}

// HitResultPayload reports a dealt card on a still-live hand.
type HitResultPayload struct {
	Seat  int
	Card  domain.Card
	Hand  []domain.Card
	Value int
}

// SplitAckPayload confirms a split and the newly active hand index.
type SplitAckPayload struct {
	Seat         int
	Hands        [][]domain.Card
	CurrentIndex int
}

// NextHandPayload announces which sub-hand became active.
type NextHandPayload struct {
	Seat         int
	CurrentIndex int
}

// PlayerDonePayload is the hand-over signal on two-seat tables: the first
// seat finished its turn and the next seat may bet.
type PlayerDonePayload struct {
	Seat  int
	Hand  []domain.Card
	Value int
}

// HandResult is the settled outcome of one wagered hand.
type HandResult struct {
	Hand    []domain.Card
	Value   int
	Outcome domain.Outcome
}

// ResultPayload reports a seat's settled hands. DealerHand is empty on the
// immediate bust form, where the hole card stays hidden.
type ResultPayload struct {
	Seat        int
	Results     []HandResult
	DealerHand  []domain.Card
	DealerValue int
	Message     string
	Money       int64
}

// SeatSettlement is one seat's slice of the combined settlement record.
type SeatSettlement struct {
	Seat    int
	Results []HandResult
	Money   int64
}

// SettlementPayload is the combined end-of-round record broadcast on
// multi-seat tables: both players' hands and results with the shared
// dealer hand.
type SettlementPayload struct {
	DealerHand  []domain.Card
	DealerValue int
	Seats       []SeatSettlement
}

// GameOverPayload retires a seat whose balance is exhausted.
type GameOverPayload struct {
	Seat    int
	Message string
}
