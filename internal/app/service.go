package app

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"blackjack/internal/domain"
)

// Service contains the blackjack round use-cases operating on table state.
// All mutation happens through these methods on a single owner goroutine;
// illegal requests leave the table untouched.
type Service struct {
	shoe domain.Shoe
}

// NewService constructs a Service with the provided shoe or a time-seeded
// infinite shoe by default.
func NewService(shoe domain.Shoe) *Service {
	if shoe == nil {
		shoe = domain.NewInfiniteShoe(rand.New(rand.NewSource(time.Now().UnixNano())))
	}
	return &Service{shoe: shoe}
}

var (
	ErrNoAccount         = errors.New("no live account at seat")
	ErrNoFundedSeats     = errors.New("no funded seats remain")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrWrongPhase        = errors.New("action not legal in current phase")
	ErrBetOutOfRange     = errors.New("bet must be positive and within balance")
	ErrNoActiveHand      = errors.New("no active hand")
	ErrDoubleTwoCards    = errors.New("double requires exactly two cards")
	ErrSplitUnequal      = errors.New("split requires two cards of equal value")
	ErrResplit           = errors.New("splitting a split hand is not supported")
	ErrInsufficientChips = errors.New("balance cannot cover the added stake")
	ErrUnknownAction     = errors.New("unknown action")
)

// StartRound opens a fresh betting cycle. The previous round, if any, is
// discarded; the lowest funded seat is engaged first.
func (s *Service) StartRound(t *domain.Table) error {
	first := t.FirstFundedSeat()
	if first < 0 {
		return ErrNoFundedSeats
	}
	t.Round = &domain.Round{
		Phase: domain.PhaseAwaitingBet,
		Seats: make(map[int]*domain.SeatRound),
		Turn:  first,
	}
	return nil
}

// PlaceBet validates and escrows the engaged seat's bet, deals its opening
// hand and, on the first bet of the round, the dealer's two cards. Only the
// dealer's first card appears in the emitted state.
func (s *Service) PlaceBet(t *domain.Table, seat int, amount int64) ([]Event, error) {
	acct := t.Accounts[seat]
	if acct == nil || acct.Out {
		return nil, ErrNoAccount
	}
	if t.CurrentPhase() != domain.PhaseAwaitingBet {
		return nil, ErrWrongPhase
	}
	if t.Round.Turn != seat {
		return nil, ErrNotYourTurn
	}
	if amount <= 0 || amount > acct.Balance {
		return nil, ErrBetOutOfRange
	}

	hand := &domain.PlayerHand{
		Cards:  []domain.Card{s.shoe.Draw(), s.shoe.Draw()},
		Bet:    amount,
		Status: domain.HandActive,
	}
	t.Round.Seats[seat] = &domain.SeatRound{
		Hands:       []*domain.PlayerHand{hand},
		OriginalBet: amount,
	}
	if len(t.Round.Dealer) == 0 {
		t.Round.Dealer = []domain.Card{s.shoe.Draw(), s.shoe.Draw()}
	}
	t.Round.Phase = domain.PhasePlayerTurn

	return []Event{{
		Kind: EventGameState,
		Payload: GameStatePayload{
			Seat:          seat,
			Hand:          hand.Cards,
			Value:         domain.HandValue(hand.Cards),
			DealerVisible: t.Round.Dealer[:1],
			Bet:           amount,
		},
		Recipients: []string{acct.UserID},
	}}, nil
}

// Apply dispatches a player-turn action token. Unknown tokens are rejected
// without touching round state.
func (s *Service) Apply(t *domain.Table, seat int, action string) ([]Event, error) {
	switch action {
	case ActionHit:
		return s.Hit(t, seat)
	case ActionStand:
		return s.Stand(t, seat)
	case ActionDouble:
		return s.Double(t, seat)
	case ActionSplit:
		return s.Split(t, seat)
	default:
		return nil, ErrUnknownAction
	}
}

// Hit deals one card to the active hand. A bust is charged on the spot and
// reported immediately; otherwise play continues on the same hand.
func (s *Service) Hit(t *domain.Table, seat int) ([]Event, error) {
	acct, sr, hand, err := s.engagedHand(t, seat)
	if err != nil {
		return nil, err
	}

	card := s.shoe.Draw()
	hand.Cards = append(hand.Cards, card)
	value := domain.HandValue(hand.Cards)

	if value > 21 {
		hand.Status = domain.HandBusted
		events := s.chargeBust(t, seat, acct, hand)
		return append(events, s.advance(t, seat, sr, acct)...), nil
	}

	return []Event{{
		Kind: EventHitResult,
		Payload: HitResultPayload{
			Seat:  seat,
			Card:  card,
			Hand:  hand.Cards,
			Value: value,
		},
		Recipients: []string{acct.UserID},
	}}, nil
}

// Stand ends drawing on the active hand and advances to the next sub-hand,
// the next seat, or the dealer.
func (s *Service) Stand(t *domain.Table, seat int) ([]Event, error) {
	acct, sr, hand, err := s.engagedHand(t, seat)
	if err != nil {
		return nil, err
	}
	hand.Status = domain.HandStood
	return s.advance(t, seat, sr, acct), nil
}

// Double doubles the active hand's bet, deals exactly one card and forces
// the hand terminal. The raised stake must be covered by the seat's balance.
func (s *Service) Double(t *domain.Table, seat int) ([]Event, error) {
	acct, sr, hand, err := s.engagedHand(t, seat)
	if err != nil {
		return nil, err
	}
	if !domain.CanDouble(hand) {
		return nil, ErrDoubleTwoCards
	}
	if acct.Balance < hand.Bet {
		return nil, ErrInsufficientChips
	}

	hand.Bet *= 2
	card := s.shoe.Draw()
	hand.Cards = append(hand.Cards, card)
	value := domain.HandValue(hand.Cards)

	events := []Event{{
		Kind: EventHitResult,
		Payload: HitResultPayload{
			Seat:  seat,
			Card:  card,
			Hand:  hand.Cards,
			Value: value,
		},
		Recipients: []string{acct.UserID},
	}}

	if value > 21 {
		hand.Status = domain.HandBusted
		events = append(events, s.chargeBust(t, seat, acct, hand)...)
	} else {
		hand.Status = domain.HandDoubled
	}
	return append(events, s.advance(t, seat, sr, acct)...), nil
}

// Split divides a pair of equal-value cards into two independently played
// hands, each seeded with one original card plus a fresh draw. A second bet
// equal to the original is escrowed for the new hand. Re-splitting is
// rejected.
func (s *Service) Split(t *domain.Table, seat int) ([]Event, error) {
	acct, sr, hand, err := s.engagedHand(t, seat)
	if err != nil {
		return nil, err
	}
	if sr.Split {
		return nil, ErrResplit
	}
	if !domain.CanSplit(hand) {
		return nil, ErrSplitUnequal
	}
	if acct.Balance < hand.Bet {
		return nil, ErrInsufficientChips
	}

	first := &domain.PlayerHand{
		Cards:  []domain.Card{hand.Cards[0], s.shoe.Draw()},
		Bet:    sr.OriginalBet,
		Status: domain.HandActive,
	}
	second := &domain.PlayerHand{
		Cards:  []domain.Card{hand.Cards[1], s.shoe.Draw()},
		Bet:    sr.OriginalBet,
		Status: domain.HandActive,
	}
	sr.Hands = []*domain.PlayerHand{first, second}
	sr.ActiveHand = 0
	sr.Split = true

	return []Event{{
		Kind: EventSplitAck,
		Payload: SplitAckPayload{
			Seat:         seat,
			Hands:        [][]domain.Card{first.Cards, second.Cards},
			CurrentIndex: 0,
		},
		Recipients: []string{acct.UserID},
	}}, nil
}

// Abandon discards a seat's round state after a disconnect. Escrowed bets
// are not refunded and nothing further is charged. If the leaver held the
// turn, play moves on without it.
func (s *Service) Abandon(t *domain.Table, seat int) []Event {
	acct := t.Accounts[seat]
	if acct == nil {
		return nil
	}
	acct.Out = true

	round := t.Round
	if round == nil || round.Phase == domain.PhaseSettled {
		return nil
	}
	if sr := round.Seats[seat]; sr != nil {
		sr.Done = true
		sr.Abandoned = true
	}
	if round.Turn != seat {
		return nil
	}

	next := t.NextFundedSeat(seat)
	if next >= 0 && round.Seats[next] == nil {
		round.Turn = next
		round.Phase = domain.PhaseAwaitingBet
		payload := PlayerDonePayload{Seat: seat}
		if sr := round.Seats[seat]; sr != nil && len(sr.Hands) > 0 {
			payload.Hand = sr.Hands[0].Cards
			payload.Value = domain.HandValue(sr.Hands[0].Cards)
		}
		// The remaining seat needs the hand-over cue to know it may bet.
		return []Event{{Kind: EventPlayerDone, Payload: payload}}
	}
	if round.HasCompletedSeats() {
		return s.playDealerAndSettle(t)
	}
	round.Phase = domain.PhaseSettled
	return nil
}

// engagedHand resolves the account, seat round and active hand for an
// action, enforcing phase and turn gating.
func (s *Service) engagedHand(t *domain.Table, seat int) (*domain.Account, *domain.SeatRound, *domain.PlayerHand, error) {
	acct := t.Accounts[seat]
	if acct == nil || acct.Out {
		return nil, nil, nil, ErrNoAccount
	}
	if t.CurrentPhase() != domain.PhasePlayerTurn {
		return nil, nil, nil, ErrWrongPhase
	}
	if t.Round.Turn != seat {
		return nil, nil, nil, ErrNotYourTurn
	}
	sr := t.Round.Seats[seat]
	if sr == nil {
		return nil, nil, nil, ErrWrongPhase
	}
	hand := sr.Active()
	if hand == nil {
		return nil, nil, nil, ErrNoActiveHand
	}
	return acct, sr, hand, nil
}

// chargeBust applies the bust debit once and emits the immediate result.
// The dealer's hole card stays hidden, so the payload carries no dealer
// hand.
func (s *Service) chargeBust(t *domain.Table, seat int, acct *domain.Account, hand *domain.PlayerHand) []Event {
	hand.Outcome = domain.OutcomeBust
	acct.Balance += domain.BalanceDelta(hand.Outcome, hand.Bet)
	hand.Charged = true

	events := []Event{{
		Kind: EventResult,
		Payload: ResultPayload{
			Seat: seat,
			Results: []HandResult{{
				Hand:    hand.Cards,
				Value:   domain.HandValue(hand.Cards),
				Outcome: hand.Outcome,
			}},
			Message: "Bust! You lose.",
			Money:   acct.Balance,
		},
		Recipients: []string{acct.UserID},
	}}
	return append(events, s.retireIfBroke(seat, acct)...)
}

// advance moves play past the terminal active hand: to the next sub-hand,
// to the next seat's betting phase, or to the dealer and settlement.
func (s *Service) advance(t *domain.Table, seat int, sr *domain.SeatRound, acct *domain.Account) []Event {
	if sr.Advance() {
		return []Event{{
			Kind: EventNextHand,
			Payload: NextHandPayload{
				Seat:         seat,
				CurrentIndex: sr.ActiveHand,
			},
			Recipients: []string{acct.UserID},
		}}
	}

	sr.Done = true
	next := t.NextFundedSeat(seat)
	if next >= 0 && t.Round.Seats[next] == nil {
		t.Round.Turn = next
		t.Round.Phase = domain.PhaseAwaitingBet
		firstHand := sr.Hands[0]
		return []Event{{
			Kind: EventPlayerDone,
			Payload: PlayerDonePayload{
				Seat:  seat,
				Hand:  firstHand.Cards,
				Value: domain.HandValue(firstHand.Cards),
			},
		}}
	}
	return s.playDealerAndSettle(t)
}

// playDealerAndSettle runs the dealer's fully deterministic draw and settles
// every uncharged hand. The dealer does not draw when every player hand
// already busted.
func (s *Service) playDealerAndSettle(t *domain.Table) []Event {
	round := t.Round
	round.Phase = domain.PhaseDealerTurn

	if round.HasUnchargedHands() {
		for domain.DealerShouldHit(round.Dealer) {
			round.Dealer = append(round.Dealer, s.shoe.Draw())
		}
	}
	return s.settle(t)
}

// settle resolves each seat's hands against the final dealer total. Hands
// charged at bust time are never charged again; seats whose every hand was
// already charged get no second result message.
func (s *Service) settle(t *domain.Table) []Event {
	round := t.Round
	round.Phase = domain.PhaseSettled
	dealerValue := domain.HandValue(round.Dealer)

	var events []Event
	var seatSettlements []SeatSettlement

	for seat := 0; seat < t.SeatCount; seat++ {
		sr := round.Seats[seat]
		if sr == nil || sr.Abandoned {
			continue
		}
		acct := t.Accounts[seat]
		if acct == nil {
			continue
		}

		unchargedBefore := false
		results := make([]HandResult, 0, len(sr.Hands))
		for _, hand := range sr.Hands {
			if !hand.Charged {
				unchargedBefore = true
				hand.Outcome = domain.CompareOutcome(domain.HandValue(hand.Cards), dealerValue)
				acct.Balance += domain.BalanceDelta(hand.Outcome, hand.Bet)
				hand.Charged = true
			}
			results = append(results, HandResult{
				Hand:    hand.Cards,
				Value:   domain.HandValue(hand.Cards),
				Outcome: hand.Outcome,
			})
		}

		seatSettlements = append(seatSettlements, SeatSettlement{
			Seat:    seat,
			Results: results,
			Money:   acct.Balance,
		})

		if unchargedBefore {
			events = append(events, Event{
				Kind: EventResult,
				Payload: ResultPayload{
					Seat:        seat,
					Results:     results,
					DealerHand:  round.Dealer,
					DealerValue: dealerValue,
					Message:     resultMessage(results),
					Money:       acct.Balance,
				},
				Recipients: []string{acct.UserID},
			})
		}
		events = append(events, s.retireIfBroke(seat, acct)...)
	}

	if len(seatSettlements) > 1 {
		events = append(events, Event{
			Kind: EventSettlement,
			Payload: SettlementPayload{
				DealerHand:  round.Dealer,
				DealerValue: dealerValue,
				Seats:       seatSettlements,
			},
		})
	}
	return events
}

// retireIfBroke emits the terminal game-over signal once a seat's balance
// is exhausted.
func (s *Service) retireIfBroke(seat int, acct *domain.Account) []Event {
	if acct.Balance > 0 || acct.Out {
		return nil
	}
	acct.Out = true
	return []Event{{
		Kind: EventGameOver,
		Payload: GameOverPayload{
			Seat:    seat,
			Message: "You're out of chips. Game over.",
		},
		Recipients: []string{acct.UserID},
	}}
}

func resultMessage(results []HandResult) string {
	if len(results) == 1 {
		switch results[0].Outcome {
		case domain.OutcomeWin:
			return "You win!"
		case domain.OutcomeLose:
			return "Dealer wins!"
		case domain.OutcomeBust:
			return "Bust! You lose."
		default:
			return "It's a tie!"
		}
	}
	msg := ""
	for i, r := range results {
		if i > 0 {
			msg += ", "
		}
		msg += fmt.Sprintf("hand %d: %s", i+1, r.Outcome)
	}
	return msg
}
