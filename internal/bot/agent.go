package bot

import (
	"blackjack/internal/domain"
)

// Agent represents an autonomous bot player occupying a seat.
type Agent struct {
	ID       string
	Name     string
	Seat     int
	Strategy Brain
}

// Play asks the agent to calculate its move for its active hand.
func (a *Agent) Play(table *domain.Table) (Move, error) {
	return a.Strategy.CalculateMove(table, a.Seat)
}
