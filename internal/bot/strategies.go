package bot

import (
	"fmt"

	"blackjack/internal/app"
	"blackjack/internal/domain"
)

// DealerBrain plays exactly like the house: hit under 17, stand otherwise.
// It never splits or doubles.
type DealerBrain struct{}

func (b *DealerBrain) CalculateMove(table *domain.Table, seat int) (Move, error) {
	hand, _, err := activeHand(table, seat)
	if err != nil {
		return Move{}, err
	}
	if domain.HandValue(hand.Cards) < domain.DealerStandTotal {
		return Move{Action: app.ActionHit}, nil
	}
	return Move{Action: app.ActionStand}, nil
}

// BasicBrain plays basic strategy against the dealer upcard: split aces and
// eights, double hard 9 through 11 in the right windows, and stand on stiff
// totals only when the dealer shows a weak card.
type BasicBrain struct{}

func (b *BasicBrain) CalculateMove(table *domain.Table, seat int) (Move, error) {
	hand, up, err := activeHand(table, seat)
	if err != nil {
		return Move{}, err
	}
	sr := table.Round.Seats[seat]
	value := domain.HandValue(hand.Cards)
	upValue := int(up)

	if !sr.Split && domain.CanSplit(hand) {
		if hand.Cards[0].IsAce() || hand.Cards[0] == 8 {
			return Move{Action: app.ActionSplit}, nil
		}
	}

	if domain.CanDouble(hand) && !domain.IsSoft(hand.Cards) {
		switch {
		case value == 11:
			return Move{Action: app.ActionDouble}, nil
		case value == 10 && upValue <= 9:
			return Move{Action: app.ActionDouble}, nil
		case value == 9 && upValue >= 3 && upValue <= 6:
			return Move{Action: app.ActionDouble}, nil
		}
	}

	if domain.IsSoft(hand.Cards) {
		switch {
		case value >= 19:
			return Move{Action: app.ActionStand}, nil
		case value == 18 && upValue <= 8:
			return Move{Action: app.ActionStand}, nil
		default:
			return Move{Action: app.ActionHit}, nil
		}
	}

	switch {
	case value >= 17:
		return Move{Action: app.ActionStand}, nil
	case value >= 13 && upValue <= 6:
		return Move{Action: app.ActionStand}, nil
	case value == 12 && upValue >= 4 && upValue <= 6:
		return Move{Action: app.ActionStand}, nil
	default:
		return Move{Action: app.ActionHit}, nil
	}
}

// activeHand resolves the hand the seat must act on plus the dealer upcard.
func activeHand(table *domain.Table, seat int) (*domain.PlayerHand, domain.Card, error) {
	if table == nil || table.Round == nil {
		return nil, 0, fmt.Errorf("no round in progress")
	}
	sr := table.Round.Seats[seat]
	if sr == nil {
		return nil, 0, fmt.Errorf("seat %d has no hand this round", seat)
	}
	hand := sr.Active()
	if hand == nil {
		return nil, 0, fmt.Errorf("seat %d has no active hand", seat)
	}
	if len(table.Round.Dealer) == 0 {
		return nil, 0, fmt.Errorf("dealer has no upcard")
	}
	return hand, table.Round.Dealer[0], nil
}
