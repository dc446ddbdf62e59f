package domain

import "strconv"

// Card is a blackjack card identified by its point value, 2 through 11.
// Value 11 is an Ace; evaluation may soften it to 1. The face label is a
// presentation detail derived from the value, not independent card state.
type Card int

// AceValue is the unsoftened point value of an Ace.
const AceValue Card = 11

// IsAce reports whether the card is an Ace.
func (c Card) IsAce() bool {
	return c == AceValue
}

// Label returns the display face for the card. Face cards all collapse onto
// value 10 so they share the "10" label.
func (c Card) Label() string {
	if c.IsAce() {
		return "A"
	}
	return strconv.Itoa(int(c))
}

// HandValue sums a hand, softening aces from 11 down to 1 one at a time until
// the total fits under 21 or no softenable aces remain. The result is the
// minimal achievable total that is <= 21 when one exists, otherwise the
// busted total. An empty hand evaluates to 0.
func HandValue(hand []Card) int {
	total := 0
	aces := 0
	for _, c := range hand {
		total += int(c)
		if c.IsAce() {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

// IsBust reports whether a hand's total exceeds 21.
func IsBust(hand []Card) bool {
	return HandValue(hand) > 21
}

// IsNatural reports whether a hand is a two-card 21.
func IsNatural(hand []Card) bool {
	return len(hand) == 2 && HandValue(hand) == 21
}

// IsSoft reports whether the hand total still counts an ace as 11, meaning
// a further draw can never bust it.
func IsSoft(hand []Card) bool {
	minTotal := 0
	for _, c := range hand {
		if c.IsAce() {
			minTotal++
		} else {
			minTotal += int(c)
		}
	}
	return HandValue(hand) != minTotal
}

// Labels returns the display faces for a hand in order.
func Labels(hand []Card) []string {
	out := make([]string, len(hand))
	for i, c := range hand {
		out[i] = c.Label()
	}
	return out
}
