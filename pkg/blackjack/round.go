package blackjack

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/cardhouse/blackjack/pkg/entities"
)

var (
	ErrInvalidBet           = errors.New("bet outside table limits")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrRoundActive          = errors.New("round already active")
	ErrNoRound              = errors.New("no active round")
	ErrIllegalAction        = errors.New("action not permitted for current hand")
	ErrInsuranceUnavailable = errors.New("insurance unavailable")
)

// Phase identifies where the round is in its lifecycle. Dealer play and
// settlement run to completion inside a single action call, so from the
// caller's point of view a round is always idle, freshly dealt, or
// waiting on a player decision.
type Phase string

const (
	PhaseIdle       Phase = "IDLE"
	PhaseDealt      Phase = "DEALT"
	PhasePlayerTurn Phase = "PLAYER_TURN"
	PhaseDealerTurn Phase = "DEALER_TURN"
	PhaseSettlement Phase = "SETTLEMENT"
)

// Insurance is the round's insurance sub-state. EvenMoney records that
// the bet was taken against the player's own natural; the payout
// arithmetic is identical either way, the flag only changes how the
// result is announced.
type Insurance struct {
	Offered   bool
	Taken     bool
	Amount    int64
	EvenMoney bool
}

// round holds everything that lives and dies with a single wagered round.
// The shoe is created with it and discarded with it.
type round struct {
	phase          Phase
	shoe           *entities.Shoe
	dealer         []entities.Card
	hands          []*Hand
	current        int
	insurance      Insurance
	insuranceBasis int64 // first-hand bet frozen at deal time, pre-split
	peeked         bool
	dealerBJ       bool
	dealerRevealed bool
	balance        int64 // bankroll snapshot taken at Start
	committed      int64 // wagers placed so far this round
}

func (r *round) available() int64 {
	return r.balance - r.committed
}

func (r *round) insuranceCost(step int64) int64 {
	return r.insuranceBasis / 2 / step * step
}

// Game is a single-table blackjack engine. It owns at most one active
// round at a time plus the summary of the last settled round; the
// authoritative bankroll lives with the caller, which passes a balance
// into Start and applies the settlement net afterwards.
type Game struct {
	rules   Rules
	limits  Limits
	newShoe func() *entities.Shoe
	round   *round
	summary *Summary
}

// NewGame builds an engine for the given table configuration. The rng
// drives shoe shuffling only; malformed configuration is rejected here so
// the engine never has to re-validate it per action.
func NewGame(rules Rules, limits Limits, rng *rand.Rand) (*Game, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	if err := limits.Validate(); err != nil {
		return nil, fmt.Errorf("invalid limits: %w", err)
	}
	return &Game{
		rules:   rules,
		limits:  limits,
		newShoe: func() *entities.Shoe { return entities.NewShoe(rng) },
	}, nil
}

// NewGameWithShoeFunc builds an engine that deals each round from a shoe
// produced by the given factory instead of a shuffled deck. Scripted
// decks make settled outcomes reproducible.
func NewGameWithShoeFunc(rules Rules, limits Limits, newShoe func() *entities.Shoe) (*Game, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	if err := limits.Validate(); err != nil {
		return nil, fmt.Errorf("invalid limits: %w", err)
	}
	return &Game{rules: rules, limits: limits, newShoe: newShoe}, nil
}

// Start deals a new round for the given wager against the given bankroll
// balance. The bet is clamped to the table limits first; a request that
// cannot reach the minimum fails without touching any state. Dealing
// order is player, dealer upcard, player, dealer hole card.
func (g *Game) Start(bet, balance int64) error {
	if g.round != nil {
		return ErrRoundActive
	}

	clamped := ClampBet(bet, balance, g.limits)
	if clamped == 0 {
		if ClampBet(bet, g.limits.MaxBet, g.limits) == 0 {
			return ErrInvalidBet
		}
		return ErrInsufficientFunds
	}

	shoe := g.newShoe()
	hand := newHand(clamped)
	var dealer []entities.Card

	for i := 0; i < 2; i++ {
		card, err := shoe.Draw()
		if err != nil {
			return err
		}
		hand.Cards = append(hand.Cards, card)

		card, err = shoe.Draw()
		if err != nil {
			return err
		}
		dealer = append(dealer, card)
	}

	r := &round{
		phase:          PhaseDealt,
		shoe:           shoe,
		dealer:         dealer,
		hands:          []*Hand{hand},
		insuranceBasis: clamped,
		balance:        balance,
		committed:      clamped,
	}
	g.round = r

	// Dealer peeks under an ace or ten-value upcard. A peeked blackjack
	// ends the round before any player action, which is what turns a
	// player natural into a push rather than a 3:2 win.
	up := r.dealer[0]
	if IsAce(up) || IsTenValue(up) {
		r.peeked = true
		r.dealerBJ = IsBlackjack(r.dealer)
	}
	if IsAce(up) {
		r.insurance.Offered = true
	}

	if r.dealerBJ {
		g.settle()
		return nil
	}
	if r.insurance.Offered {
		// Stay in Dealt until the insurance decision, even when the
		// player holds a natural.
		return nil
	}
	if hand.Blackjack() {
		g.settle()
		return nil
	}

	r.phase = PhasePlayerTurn
	return nil
}

// beginAction resolves the pre-action bookkeeping shared by every player
// action: a pending insurance offer is implicitly declined first. When
// that decline settles the round (player natural), the triggering action
// is consumed by the settlement and beginAction reports a nil round.
func (g *Game) beginAction() (*round, error) {
	if g.round == nil {
		return nil, ErrNoRound
	}
	if g.round.insurance.Offered {
		if err := g.DeclineInsurance(); err != nil {
			return nil, err
		}
		if g.round == nil {
			return nil, nil
		}
	}
	if g.round.phase != PhasePlayerTurn {
		return nil, ErrIllegalAction
	}
	return g.round, nil
}

// Hit draws one card for the current hand. Busting or reaching 21 ends
// the hand and moves play along.
func (g *Game) Hit() error {
	r, err := g.beginAction()
	if r == nil {
		return err
	}

	h := r.hands[r.current]
	if h.Done || h.Surrendered {
		return ErrIllegalAction
	}
	if h.SplitAce && g.rules.SplitAceOneCard {
		return ErrIllegalAction
	}

	card, err := r.shoe.Draw()
	if err != nil {
		return err
	}
	h.Cards = append(h.Cards, card)
	h.FirstAction = false

	if v := h.Value(); v >= 21 {
		// 21 auto-stands, above 21 is a bust; either way the hand is done.
		h.Done = true
		return g.advance()
	}
	return nil
}

// Stand finishes the current hand.
func (g *Game) Stand() error {
	r, err := g.beginAction()
	if r == nil {
		return err
	}

	h := r.hands[r.current]
	if h.Done {
		return ErrIllegalAction
	}
	h.FirstAction = false
	h.Done = true
	return g.advance()
}

// Double doubles the current hand's bet, draws exactly one card, and
// finishes the hand. Only legal as the hand's first action on two cards,
// and on split hands only when the table allows doubling after a split.
func (g *Game) Double() error {
	r, err := g.beginAction()
	if r == nil {
		return err
	}

	h := r.hands[r.current]
	if !h.FirstAction || len(h.Cards) != 2 {
		return ErrIllegalAction
	}
	if len(r.hands) > 1 && !g.rules.DoubleAfterSplit {
		return ErrIllegalAction
	}
	if r.available() < h.Bet {
		return ErrInsufficientFunds
	}

	card, err := r.shoe.Draw()
	if err != nil {
		return err
	}

	r.committed += h.Bet
	h.Bet *= 2
	h.Doubled = true
	h.FirstAction = false
	h.Cards = append(h.Cards, card)
	h.Done = true
	return g.advance()
}

// Surrender forfeits half the bet. Late surrender only: it must be the
// first action of the original, unsplit hand.
func (g *Game) Surrender() error {
	r, err := g.beginAction()
	if r == nil {
		return err
	}

	h := r.hands[r.current]
	if !g.rules.LateSurrender {
		return ErrIllegalAction
	}
	if !h.FirstAction || len(h.Cards) != 2 || len(r.hands) != 1 {
		return ErrIllegalAction
	}

	h.FirstAction = false
	h.Surrendered = true
	h.Done = true
	return g.advance()
}

// Split separates a two-card pair into two hands, inserting the new hand
// immediately after the current one. Both halves draw a fresh card and
// both are again open to first actions, which is what makes
// double-after-split and resplits possible.
func (g *Game) Split() error {
	r, err := g.beginAction()
	if r == nil {
		return err
	}

	h := r.hands[r.current]
	if !h.FirstAction || len(h.Cards) != 2 {
		return ErrIllegalAction
	}
	if h.Cards[0].Rank != h.Cards[1].Rank {
		return ErrIllegalAction
	}
	if len(r.hands) >= g.rules.MaxHands {
		return ErrIllegalAction
	}
	aces := IsAce(h.Cards[0])
	if aces && h.SplitAce && !g.rules.ResplitAces {
		return ErrIllegalAction
	}
	if r.available() < h.Bet {
		return ErrInsufficientFunds
	}

	first, err := r.shoe.Draw()
	if err != nil {
		return err
	}
	second, err := r.shoe.Draw()
	if err != nil {
		return err
	}

	r.committed += h.Bet
	split := newHand(h.Bet)
	split.Cards = append(split.Cards, h.Cards[1])
	h.Cards = h.Cards[:1]

	if aces {
		h.SplitAce = true
		split.SplitAce = true
	}
	h.FirstAction = true
	h.Cards = append(h.Cards, first)
	split.Cards = append(split.Cards, second)

	r.hands = append(r.hands, nil)
	copy(r.hands[r.current+2:], r.hands[r.current+1:])
	r.hands[r.current+1] = split

	if aces && g.rules.SplitAceOneCard {
		// One card each and that's it; play moves on without a stand.
		h.Done = true
		split.Done = true
		return g.advance()
	}

	// Keep acting on the first half before the new one.
	return nil
}

// TakeInsurance places the insurance side bet: half the original
// first-hand bet, floored to the table step. The basis is frozen at deal
// time, so later splits never change the cost.
func (g *Game) TakeInsurance(evenMoney bool) error {
	if g.round == nil {
		return ErrNoRound
	}
	r := g.round
	if !r.insurance.Offered || r.insurance.Taken {
		return ErrInsuranceUnavailable
	}

	amount := r.insuranceCost(g.limits.Step)
	if amount < g.limits.Step || r.available() < amount {
		return ErrInsuranceUnavailable
	}

	r.insurance = Insurance{
		Taken:     true,
		Amount:    amount,
		EvenMoney: evenMoney,
	}
	r.committed += amount
	return g.afterInsuranceDecision()
}

// DeclineInsurance clears the insurance sub-state. When the player holds
// a deferred natural, declining is what finally settles it.
func (g *Game) DeclineInsurance() error {
	if g.round == nil {
		return ErrNoRound
	}
	r := g.round
	pending := r.insurance.Offered
	r.insurance = Insurance{}
	if pending {
		return g.afterInsuranceDecision()
	}
	return nil
}

// afterInsuranceDecision resumes the round once insurance is resolved.
// A deferred player natural settles immediately; the dealer was already
// peeked, so there is no blackjack left to chase.
func (g *Game) afterInsuranceDecision() error {
	r := g.round
	if r.hands[0].Blackjack() {
		g.settle()
		return nil
	}
	r.phase = PhasePlayerTurn
	return nil
}

// advance moves play to the next unfinished hand, scanning forward from
// the current index and wrapping once. When every hand is done the round
// proceeds to the dealer and settles.
func (g *Game) advance() error {
	r := g.round
	next := -1
	for i := r.current + 1; i < len(r.hands); i++ {
		if !r.hands[i].Done {
			next = i
			break
		}
	}
	if next == -1 {
		for i := 0; i < len(r.hands); i++ {
			if !r.hands[i].Done {
				next = i
				break
			}
		}
	}
	if next == -1 {
		return g.finish()
	}

	r.current = next
	r.phase = PhasePlayerTurn
	return nil
}

// finish plays out the dealer and settles the round. The dealer only
// draws when a live hand remains to pay; against a table of busts and
// surrenders the hole card is simply revealed.
func (g *Game) finish() error {
	r := g.round
	r.phase = PhaseDealerTurn
	r.dealerRevealed = true

	live := false
	for _, h := range r.hands {
		if h.Live() {
			live = true
			break
		}
	}

	if live && !r.dealerBJ {
		for {
			v := HandValue(r.dealer)
			if v < 17 || (v == 17 && g.rules.HitSoft17 && IsSoftSeventeen(r.dealer)) {
				card, err := r.shoe.Draw()
				if err != nil {
					return err
				}
				r.dealer = append(r.dealer, card)
				continue
			}
			break
		}
	}

	g.settle()
	return nil
}

// settle resolves every hand and the insurance bet, publishes the round
// summary, and retires the round. The shoe dies with it.
func (g *Game) settle() {
	r := g.round
	r.phase = PhaseSettlement
	r.dealerRevealed = true
	g.summary = Resolve(r.hands, r.dealer, r.dealerBJ, r.insurance, g.rules)
	g.round = nil
}
