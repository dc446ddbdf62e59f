package domain

// DealerStandTotal is the dealer draw threshold. The rule is total-based, so
// a soft 17 already counts as 17 and the dealer stands on it.
const DealerStandTotal = 17

// DealerShouldHit reports whether the dealer must draw another card.
func DealerShouldHit(dealer []Card) bool {
	return HandValue(dealer) < DealerStandTotal
}

// CompareOutcome resolves one player hand total against the final dealer
// total. A busted player hand loses regardless of what the dealer holds.
func CompareOutcome(playerTotal, dealerTotal int) Outcome {
	switch {
	case playerTotal > 21:
		return OutcomeBust
	case dealerTotal > 21:
		return OutcomeWin
	case playerTotal > dealerTotal:
		return OutcomeWin
	case playerTotal < dealerTotal:
		return OutcomeLose
	default:
		return OutcomeTie
	}
}

// BalanceDelta is the chip movement for a resolved hand: even money on a
// win, the stake lost on a loss or bust, nothing on a tie.
func BalanceDelta(o Outcome, bet int64) int64 {
	switch o {
	case OutcomeWin:
		return bet
	case OutcomeLose, OutcomeBust:
		return -bet
	default:
		return 0
	}
}

// CanSplit reports whether a hand may be split: exactly two cards of equal
// value. Re-splitting is rejected at the engine level.
func CanSplit(h *PlayerHand) bool {
	return len(h.Cards) == 2 && h.Cards[0] == h.Cards[1]
}

// CanDouble reports whether a hand may be doubled: exactly two cards and no
// prior action taken on it.
func CanDouble(h *PlayerHand) bool {
	return len(h.Cards) == 2 && h.Status == HandActive
}
