// Package sim drives the round engine through deterministic self-play so the
// full action surface can be soaked without a server.
package sim

import (
	"fmt"
	"math/rand"

	"blackjack/internal/app"
	"blackjack/internal/bot"
	"blackjack/internal/domain"
)

// Stats aggregates outcomes across a self-play run. Net and Wagered are in
// chips.
type Stats struct {
	Rounds  int
	Hands   int
	Wins    int
	Losses  int
	Ties    int
	Busts   int
	Splits  int
	Doubles int
	Wagered int64
	Net     int64
}

// HouseEdge is the house's take as a fraction of total amount wagered.
func (s Stats) HouseEdge() float64 {
	if s.Wagered == 0 {
		return 0
	}
	return -float64(s.Net) / float64(s.Wagered)
}

const (
	betUnit            = 10
	startingBalance    = 1 << 40 // effectively bottomless so splits and doubles stay legal
	maxActionsPerRound = 32
)

// RunRounds plays the given number of solo rounds with the selected brain
// against a seeded shoe, checking state-machine invariants as it goes.
func RunRounds(seed int64, rounds int, level bot.BotLevel) (Stats, error) {
	rng := rand.New(rand.NewSource(seed))
	svc := app.NewService(domain.NewDeckShoe(rng))
	brain, err := bot.NewBrain(level)
	if err != nil {
		return Stats{}, err
	}

	table := domain.NewTable(1)
	table.Accounts[0] = &domain.Account{
		UserID:  "sim-player",
		Seat:    0,
		Balance: startingBalance,
	}

	stats := Stats{}
	for r := 0; r < rounds; r++ {
		if err := svc.StartRound(table); err != nil {
			return stats, fmt.Errorf("round %d: %w", r, err)
		}
		if table.CurrentPhase() != domain.PhaseAwaitingBet {
			return stats, fmt.Errorf("round %d: phase %s after start", r, table.CurrentPhase())
		}

		before := table.Accounts[0].Balance
		if _, err := svc.PlaceBet(table, 0, betUnit); err != nil {
			return stats, fmt.Errorf("round %d: bet: %w", r, err)
		}

		for step := 0; table.CurrentPhase() == domain.PhasePlayerTurn; step++ {
			if step >= maxActionsPerRound {
				return stats, fmt.Errorf("round %d: no terminal state after %d actions", r, step)
			}
			move, err := brain.CalculateMove(table, 0)
			if err != nil {
				return stats, fmt.Errorf("round %d: brain: %w", r, err)
			}
			if _, err := svc.Apply(table, 0, move.Action); err != nil {
				return stats, fmt.Errorf("round %d: action %q: %w", r, move.Action, err)
			}
			switch move.Action {
			case app.ActionSplit:
				stats.Splits++
			case app.ActionDouble:
				stats.Doubles++
			}
		}

		if table.CurrentPhase() != domain.PhaseSettled {
			return stats, fmt.Errorf("round %d: phase %s after play", r, table.CurrentPhase())
		}

		stats.Rounds++
		for _, sr := range table.Round.Seats {
			for _, hand := range sr.Hands {
				if !hand.Charged {
					return stats, fmt.Errorf("round %d: settled round left an uncharged hand", r)
				}
				stats.Hands++
				stats.Wagered += hand.Bet
				switch hand.Outcome {
				case domain.OutcomeWin:
					stats.Wins++
				case domain.OutcomeLose:
					stats.Losses++
				case domain.OutcomeTie:
					stats.Ties++
				case domain.OutcomeBust:
					stats.Busts++
				}
			}
		}
		stats.Net += table.Accounts[0].Balance - before
	}
	return stats, nil
}
