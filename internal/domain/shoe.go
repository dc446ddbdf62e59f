package domain

import "math/rand"

// shoeValues is the draw distribution over the thirteen ranks, with ten,
// jack, queen and king all collapsing onto value 10.
var shoeValues = []Card{2, 3, 4, 5, 6, 7, 8, 9, 10, 10, 10, 10, 11}

// Shoe produces cards for the lifetime of one session.
type Shoe interface {
	Draw() Card
}

// InfiniteShoe draws every card independently with replacement, so no card
// removal is observable across hands or rounds.
type InfiniteShoe struct {
	rng *rand.Rand
}

// NewInfiniteShoe constructs an infinite shoe over the given rng.
func NewInfiniteShoe(rng *rand.Rand) *InfiniteShoe {
	return &InfiniteShoe{rng: rng}
}

// Draw returns a uniformly weighted rank value.
func (s *InfiniteShoe) Draw() Card {
	return shoeValues[s.rng.Intn(len(shoeValues))]
}

// DeckShoe deals without replacement from a shuffled 52-card deck. The deck
// is built once when the shoe is created, at session start, and is rebuilt
// and reshuffled only when it runs dry.
type DeckShoe struct {
	rng   *rand.Rand
	cards []Card
}

// NewDeckShoe constructs a finite shoe with a freshly shuffled deck.
func NewDeckShoe(rng *rand.Rand) *DeckShoe {
	s := &DeckShoe{rng: rng}
	s.refill()
	return s
}

func (s *DeckShoe) refill() {
	s.cards = make([]Card, 0, 52)
	for _, v := range shoeValues {
		for suit := 0; suit < 4; suit++ {
			s.cards = append(s.cards, v)
		}
	}
	s.rng.Shuffle(len(s.cards), func(i, j int) {
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	})
}

// Draw removes and returns the top card, reshuffling a fresh deck first if
// the previous one is exhausted.
func (s *DeckShoe) Draw() Card {
	if len(s.cards) == 0 {
		s.refill()
	}
	c := s.cards[len(s.cards)-1]
	s.cards = s.cards[:len(s.cards)-1]
	return c
}

// Remaining reports how many cards are left before a reshuffle.
func (s *DeckShoe) Remaining() int {
	return len(s.cards)
}
