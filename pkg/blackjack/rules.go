package blackjack

import (
	"errors"
	"strconv"

	"github.com/cardhouse/blackjack/pkg/entities"
)

// Rules holds the table configuration. All of it is supplied at
// construction; nothing here is hard-coded into the engine logic.
type Rules struct {
	HitSoft17        bool  // Dealer hits soft 17 instead of standing
	DoubleAfterSplit bool  // Doubling allowed on split hands (single global flag)
	ResplitAces      bool  // A split-ace hand may be split again
	SplitAceOneCard  bool  // Split aces receive exactly one card
	LateSurrender    bool  // Surrender allowed as first action of the original hand
	MaxHands         int   // Maximum hands after splits
	PayoutNum        int64 // Blackjack payout numerator (3 for 3:2)
	PayoutDen        int64 // Blackjack payout denominator (2 for 3:2)
}

// DefaultRules returns the standard table configuration.
func DefaultRules() Rules {
	return Rules{
		HitSoft17:        false,
		DoubleAfterSplit: true,
		ResplitAces:      false,
		SplitAceOneCard:  true,
		LateSurrender:    true,
		MaxHands:         4,
		PayoutNum:        3,
		PayoutDen:        2,
	}
}

// Validate rejects configurations the engine cannot play under.
func (r Rules) Validate() error {
	if r.MaxHands < 1 {
		return errors.New("max hands must be at least 1")
	}
	if r.PayoutNum <= 0 || r.PayoutDen <= 0 {
		return errors.New("blackjack payout ratio must be positive")
	}
	return nil
}

// Result represents the outcome of a blackjack hand
type Result string

const (
	ResultWin       Result = "WIN"
	ResultLose      Result = "LOSE"
	ResultPush      Result = "PUSH"
	ResultBlackjack Result = "BLACKJACK"
	ResultBust      Result = "BUST"
	ResultSurrender Result = "SURRENDER"
)

// String returns the string representation of the result
func (r Result) String() string {
	return string(r)
}

// IsWin returns true if this result represents a win
func (r Result) IsWin() bool {
	return r == ResultWin || r == ResultBlackjack
}

func CardValue(card entities.Card) int {
	switch card.Rank {
	case entities.Ace:
		return 11
	case entities.Jack, entities.Queen, entities.King:
		return 10
	default:
		val, _ := strconv.Atoi(string(card.Rank))
		return val
	}
}

func IsAce(card entities.Card) bool {
	return card.Rank == entities.Ace
}

// IsTenValue reports whether the card counts ten, i.e. any of 10/J/Q/K.
func IsTenValue(card entities.Card) bool {
	return !IsAce(card) && CardValue(card) == 10
}

// HandValue returns the best total for the hand: aces start at 11 and are
// softened to 1 one at a time while the total busts. The result is the
// best non-busting total, or the minimum total if every reduction still
// exceeds 21.
func HandValue(cards []entities.Card) int {
	value := 0
	aces := 0

	for _, card := range cards {
		value += CardValue(card)
		if IsAce(card) {
			aces++
		}
	}

	for value > 21 && aces > 0 {
		value -= 10
		aces--
	}

	return value
}

// IsSoftSeventeen reports whether the hand is a soft 17, i.e. it totals 17
// with at least one ace still counted as 11. Used only for the dealer's
// hit-or-stand decision.
func IsSoftSeventeen(cards []entities.Card) bool {
	if HandValue(cards) != 17 {
		return false
	}

	hard := 0
	aces := 0
	for _, card := range cards {
		if IsAce(card) {
			aces++
			hard++
		} else {
			hard += CardValue(card)
		}
	}

	// Soft iff the best total still counts an ace as 11.
	return aces > 0 && hard+10 == 17
}

func IsBlackjack(cards []entities.Card) bool {
	return len(cards) == 2 && HandValue(cards) == 21
}

// IsBust checks if a hand exceeds 21
func IsBust(cards []entities.Card) bool {
	return HandValue(cards) > 21
}
