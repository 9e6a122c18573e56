package blackjack

import (
	"github.com/cardhouse/blackjack/pkg/entities"
)

// HandOutcome is one hand's line in the round summary.
type HandOutcome struct {
	Cards    []entities.Card
	Bet      int64
	Result   Result
	Net      int64
	Doubled  bool
	SplitAce bool
}

// InsuranceOutcome is the insurance line of the round summary. It only
// exists when the bet was actually taken.
type InsuranceOutcome struct {
	Amount    int64
	EvenMoney bool
	Won       bool
	Net       int64
}

// Summary is the immutable snapshot of a settled round. A new one
// replaces the old wholesale at each settlement; nothing is ever merged.
type Summary struct {
	NetTotal        int64
	DealerCards     []entities.Card
	DealerValue     int
	DealerBlackjack bool
	Hands           []HandOutcome
	Insurance       *InsuranceOutcome
}

// Resolve settles every hand against the dealer, settles the insurance
// bet independently, and returns the round summary. Hand settlement is
// idempotent: a hand whose Result is already set keeps its Result and Net
// untouched, so re-resolving the same hands never changes money.
func Resolve(hands []*Hand, dealer []entities.Card, dealerBJ bool, ins Insurance, rules Rules) *Summary {
	sum := &Summary{
		DealerCards:     append([]entities.Card(nil), dealer...),
		DealerValue:     HandValue(dealer),
		DealerBlackjack: dealerBJ,
		Hands:           make([]HandOutcome, 0, len(hands)),
	}

	for _, h := range hands {
		resolveHand(h, dealer, dealerBJ, rules)
		sum.NetTotal += h.Net
		sum.Hands = append(sum.Hands, HandOutcome{
			Cards:    append([]entities.Card(nil), h.Cards...),
			Bet:      h.Bet,
			Result:   h.Result,
			Net:      h.Net,
			Doubled:  h.Doubled,
			SplitAce: h.SplitAce,
		})
	}

	if ins.Taken {
		line := &InsuranceOutcome{
			Amount:    ins.Amount,
			EvenMoney: ins.EvenMoney,
			Won:       dealerBJ,
		}
		if dealerBJ {
			line.Net = 2 * ins.Amount
		} else {
			line.Net = -ins.Amount
		}
		sum.Insurance = line
		sum.NetTotal += line.Net
	}

	return sum
}

// resolveHand classifies one hand and writes its Result and Net exactly
// once. Surrender and bust pay out regardless of the dealer; everything
// else is measured against the dealer's blackjack, bust, or total.
func resolveHand(h *Hand, dealer []entities.Card, dealerBJ bool, rules Rules) {
	if h.Settled() {
		return
	}

	switch {
	case h.Surrendered:
		h.Result = ResultSurrender
		h.Net = -(h.Bet / 2)
	case h.Bust():
		h.Result = ResultBust
		h.Net = -h.Bet
	default:
		playerBJ := h.Blackjack()
		dealerValue := HandValue(dealer)

		switch {
		case dealerBJ && playerBJ:
			h.Result = ResultPush
		case dealerBJ:
			h.Result = ResultLose
			h.Net = -h.Bet
		case playerBJ:
			h.Result = ResultBlackjack
			h.Net = blackjackNet(h.Bet, rules)
		case dealerValue > 21:
			h.Result = ResultWin
			h.Net = h.Bet
		case h.Value() > dealerValue:
			h.Result = ResultWin
			h.Net = h.Bet
		case h.Value() < dealerValue:
			h.Result = ResultLose
			h.Net = -h.Bet
		default:
			h.Result = ResultPush
		}
	}
}

// blackjackNet computes the natural's payout at the configured ratio,
// rounded half up. At 3:2 a 100 bet pays 150.
func blackjackNet(bet int64, rules Rules) int64 {
	return (bet*rules.PayoutNum + rules.PayoutDen/2) / rules.PayoutDen
}
