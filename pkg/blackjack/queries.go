package blackjack

import (
	"github.com/cardhouse/blackjack/pkg/entities"
)

// Actions is the set of currently legal player actions, computed from the
// same predicates the action handlers enforce. A UI can render buttons
// straight from it without re-deriving legality.
type Actions struct {
	Hit              bool
	Stand            bool
	Double           bool
	Split            bool
	Surrender        bool
	TakeInsurance    bool
	DeclineInsurance bool
}

// Phase returns the externally visible round phase.
func (g *Game) Phase() Phase {
	if g.round == nil {
		return PhaseIdle
	}
	return g.round.phase
}

// RoundActive reports whether a round is in progress.
func (g *Game) RoundActive() bool {
	return g.round != nil
}

// CurrentHandIndex returns the index of the hand awaiting action, or -1
// when no round is active.
func (g *Game) CurrentHandIndex() int {
	if g.round == nil {
		return -1
	}
	return g.round.current
}

// Hands returns deep copies of the player hands in table order.
func (g *Game) Hands() []*Hand {
	if g.round == nil {
		return nil
	}
	hands := make([]*Hand, len(g.round.hands))
	for i, h := range g.round.hands {
		hands[i] = h.clone()
	}
	return hands
}

// DealerUpcard returns the dealer's face-up card.
func (g *Game) DealerUpcard() (entities.Card, bool) {
	if g.round == nil || len(g.round.dealer) == 0 {
		return entities.Card{}, false
	}
	return g.round.dealer[0], true
}

// DealerHand returns the dealer cards visible right now: just the upcard
// while the hole card is down, the full hand once it has been revealed.
func (g *Game) DealerHand() []entities.Card {
	if g.round == nil {
		return nil
	}
	r := g.round
	if !r.dealerRevealed {
		return append([]entities.Card(nil), r.dealer[:1]...)
	}
	return append([]entities.Card(nil), r.dealer...)
}

// InsuranceState returns a copy of the round's insurance sub-state.
func (g *Game) InsuranceState() Insurance {
	if g.round == nil {
		return Insurance{}
	}
	return g.round.insurance
}

// Committed returns the total wagered so far in the active round.
func (g *Game) Committed() int64 {
	if g.round == nil {
		return 0
	}
	return g.round.committed
}

// Limits returns the table's bet limits.
func (g *Game) Limits() Limits {
	return g.limits
}

// TableRules returns the table's rule configuration.
func (g *Game) TableRules() Rules {
	return g.rules
}

// LastSummary returns the snapshot of the most recently settled round. It
// is replaced wholesale at each settlement and is stable in between, so
// querying it mid-round yields the previous round untouched.
func (g *Game) LastSummary() *Summary {
	return g.summary
}

// LegalActions computes the allowed actions for the current state.
func (g *Game) LegalActions() Actions {
	var a Actions
	if g.round == nil {
		return a
	}
	r := g.round

	if r.insurance.Offered {
		cost := r.insuranceCost(g.limits.Step)
		a.TakeInsurance = cost >= g.limits.Step && r.available() >= cost
		a.DeclineInsurance = true
	}

	if r.phase != PhasePlayerTurn && r.phase != PhaseDealt {
		return a
	}
	h := r.hands[r.current]
	if h.Done {
		return a
	}

	a.Hit = !(h.SplitAce && g.rules.SplitAceOneCard)
	a.Stand = true

	firstTwo := h.FirstAction && len(h.Cards) == 2
	a.Double = firstTwo &&
		(len(r.hands) == 1 || g.rules.DoubleAfterSplit) &&
		r.available() >= h.Bet
	a.Split = firstTwo &&
		h.Cards[0].Rank == h.Cards[1].Rank &&
		len(r.hands) < g.rules.MaxHands &&
		r.available() >= h.Bet &&
		(!IsAce(h.Cards[0]) || !h.SplitAce || g.rules.ResplitAces)
	a.Surrender = g.rules.LateSurrender && firstTwo && len(r.hands) == 1

	return a
}
