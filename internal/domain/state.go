package domain

// Phase represents the lifecycle stage of the round in progress.
type Phase string

const (
	// PhaseIdle indicates no round exists yet.
	PhaseIdle Phase = "idle"
	// PhaseAwaitingBet indicates the engaged seat must place a bet.
	PhaseAwaitingBet Phase = "awaiting_bet"
	// PhasePlayerTurn indicates the engaged seat is drawing on its hands.
	PhasePlayerTurn Phase = "player_turn"
	// PhaseDealerTurn indicates all player hands are terminal and the dealer draws.
	PhaseDealerTurn Phase = "dealer_turn"
	// PhaseSettled indicates outcomes are final and balances applied.
	PhaseSettled Phase = "settled"
)

// HandStatus marks how far one wagered hand has progressed.
type HandStatus string

const (
	HandActive  HandStatus = "active"
	HandStood   HandStatus = "stood"
	HandBusted  HandStatus = "busted"
	HandDoubled HandStatus = "doubled"
)

// Terminal reports whether the hand can take no further action.
func (s HandStatus) Terminal() bool {
	return s != HandActive
}

// Outcome is the settled result of one player hand against the dealer.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLose Outcome = "lose"
	OutcomeTie  Outcome = "tie"
	OutcomeBust Outcome = "bust"
)

// PlayerHand is a single wagered hand; a split produces two of them.
type PlayerHand struct {
	Cards   []Card
	Bet     int64
	Status  HandStatus
	Outcome Outcome
	// Charged is set once the hand's balance delta has been applied, so a
	// bust debited mid-round is never debited again at settlement.
	Charged bool
}

// SeatRound is the per-seat state of the round in progress.
type SeatRound struct {
	Hands       []*PlayerHand
	ActiveHand  int
	OriginalBet int64
	Split       bool
	Done        bool
	Abandoned   bool
}

// Active returns the hand the seat is currently playing, or nil when every
// hand is terminal.
func (sr *SeatRound) Active() *PlayerHand {
	if sr.ActiveHand >= len(sr.Hands) {
		return nil
	}
	return sr.Hands[sr.ActiveHand]
}

// Advance moves the active-hand pointer past terminal hands and reports
// whether a playable hand remains.
func (sr *SeatRound) Advance() bool {
	for sr.ActiveHand < len(sr.Hands) {
		if !sr.Hands[sr.ActiveHand].Status.Terminal() {
			return true
		}
		sr.ActiveHand++
	}
	return false
}

// Round holds one shared dealer hand plus per-seat player state. A round is
// created when the first bet of the cycle is accepted and discarded once
// settled.
type Round struct {
	Phase  Phase
	Dealer []Card
	Seats  map[int]*SeatRound
	// Turn is the seat whose messages are currently honored. It is
	// independent of the per-seat active-hand pointer: with two seats the
	// first plays its whole turn before the second even bets.
	Turn int
}

// HasCompletedSeats reports whether any non-abandoned seat finished its
// hands and is owed a settlement.
func (r *Round) HasCompletedSeats() bool {
	for _, sr := range r.Seats {
		if sr.Done && !sr.Abandoned {
			return true
		}
	}
	return false
}

// HasUnchargedHands reports whether any non-abandoned hand still awaits a
// dealer comparison. When false the dealer need not draw.
func (r *Round) HasUnchargedHands() bool {
	for _, sr := range r.Seats {
		if sr.Abandoned {
			continue
		}
		for _, h := range sr.Hands {
			if !h.Charged {
				return true
			}
		}
	}
	return false
}

// Account tracks a seat's chip balance for the lifetime of the session. The
// balance changes only when a hand is charged, never mid-hand; double and
// split raise the committed stake at action time but settle later.
type Account struct {
	UserID  string
	Seat    int
	Balance int64
	// Out marks a seat retired after its balance reached zero or the
	// player disconnected mid-session.
	Out bool
}

// Table is the authoritative session state: persistent per-seat accounts
// plus the round in progress.
type Table struct {
	SeatCount int
	Accounts  map[int]*Account
	Round     *Round
}

// NewTable constructs a table with one or two seats.
func NewTable(seatCount int) *Table {
	if seatCount < 1 {
		seatCount = 1
	}
	if seatCount > 2 {
		seatCount = 2
	}
	return &Table{
		SeatCount: seatCount,
		Accounts:  make(map[int]*Account),
	}
}

// Phase reports the current round phase, or PhaseIdle when no round exists.
func (t *Table) CurrentPhase() Phase {
	if t.Round == nil {
		return PhaseIdle
	}
	return t.Round.Phase
}

// FirstFundedSeat returns the lowest seat index holding a live funded
// account, or -1 when none remain.
func (t *Table) FirstFundedSeat() int {
	return t.NextFundedSeat(-1)
}

// NextFundedSeat returns the lowest live funded seat index greater than the
// given one, or -1 when none remain.
func (t *Table) NextFundedSeat(after int) int {
	for seat := after + 1; seat < t.SeatCount; seat++ {
		if acct, ok := t.Accounts[seat]; ok && !acct.Out && acct.Balance > 0 {
			return seat
		}
	}
	return -1
}
