package bot

import (
	"blackjack/internal/domain"
)

// Brain is the interface that all bot strategies must implement. It decides
// the next action for the seat's active hand given the visible table state.
type Brain interface {
	CalculateMove(table *domain.Table, seat int) (Move, error)
}
