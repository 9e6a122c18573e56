package blackjack

import (
	"github.com/cardhouse/blackjack/pkg/entities"
)

// Hand carries every per-hand field together so splits never have to keep
// parallel arrays of bets and flags in sync.
type Hand struct {
	Cards       []entities.Card
	Bet         int64
	Done        bool
	Doubled     bool
	Surrendered bool
	SplitAce    bool   // Created by splitting aces
	FirstAction bool   // True until any action is taken on this hand
	Result      Result // Empty until settlement, then set exactly once
	Net         int64  // Signed settlement delta, valid once Result is set
}

func newHand(bet int64) *Hand {
	return &Hand{
		Cards:       make([]entities.Card, 0, 4),
		Bet:         bet,
		FirstAction: true,
	}
}

// Value returns the best total for the hand.
func (h *Hand) Value() int {
	return HandValue(h.Cards)
}

// Blackjack reports a natural: a two-card 21 on a hand that was not
// created by splitting aces. A split-ace 21 pays as an ordinary win.
func (h *Hand) Blackjack() bool {
	return !h.SplitAce && IsBlackjack(h.Cards)
}

// Bust reports whether the hand exceeds 21.
func (h *Hand) Bust() bool {
	return IsBust(h.Cards)
}

// Live reports whether the hand still contends at settlement: not
// surrendered and not bust. The dealer only plays when a live hand
// remains.
func (h *Hand) Live() bool {
	return !h.Surrendered && !h.Bust()
}

// Settled reports whether the hand has already been resolved.
func (h *Hand) Settled() bool {
	return h.Result != ""
}

// clone returns a deep copy for read-only views.
func (h *Hand) clone() *Hand {
	c := *h
	c.Cards = append([]entities.Card(nil), h.Cards...)
	return &c
}
