package entities

import (
	"errors"
	"math/rand"
)

// ErrShoeEmpty is returned when drawing from an exhausted shoe. A single
// deck comfortably covers a four-hand round, so hitting this is a bug in
// the caller rather than an expected condition.
var ErrShoeEmpty = errors.New("shoe is empty")

// Shoe is a shuffled single deck consumed strictly from the front. It is
// created fresh for every round and never replenished mid-round.
type Shoe struct {
	Cards []Card
}

// NewShoe builds the full 52-card set and applies a Fisher-Yates
// permutation using the injected source. Seeding is the caller's choice,
// which keeps rounds reproducible under test.
func NewShoe(rng *rand.Rand) *Shoe {
	cards := make([]Card, 0, 52)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, NewCard(suit, rank))
		}
	}

	for i := len(cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}

	return &Shoe{Cards: cards}
}

// Draw removes and returns the next card from the front of the shoe.
func (s *Shoe) Draw() (Card, error) {
	if len(s.Cards) == 0 {
		return Card{}, ErrShoeEmpty
	}
	card := s.Cards[0]
	s.Cards = s.Cards[1:]
	return card, nil
}

// Remaining returns the number of undrawn cards.
func (s *Shoe) Remaining() int {
	return len(s.Cards)
}
