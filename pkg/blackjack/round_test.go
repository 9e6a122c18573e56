package blackjack

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardhouse/blackjack/pkg/entities"
)

const testBalance = int64(10000)

// riggedGame builds an engine whose shoe deals the given cards in order.
// Dealing order at Start is player, dealer upcard, player, dealer hole.
func riggedGame(t *testing.T, rules Rules, ranks ...entities.Rank) *Game {
	t.Helper()
	g, err := NewGame(rules, DefaultLimits(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	g.newShoe = func() *entities.Shoe {
		return &entities.Shoe{Cards: cards(ranks...)}
	}
	return g
}

func TestStartDealsInOrder(t *testing.T) {
	g := riggedGame(t, DefaultRules(),
		entities.Ten, entities.Six, entities.Nine, entities.Five)

	require.NoError(t, g.Start(100, testBalance))
	assert.Equal(t, PhasePlayerTurn, g.Phase())
	assert.Equal(t, 0, g.CurrentHandIndex())

	hands := g.Hands()
	require.Len(t, hands, 1)
	assert.Equal(t, cards(entities.Ten, entities.Nine), hands[0].Cards)
	assert.Equal(t, int64(100), hands[0].Bet)
	assert.True(t, hands[0].FirstAction)

	up, ok := g.DealerUpcard()
	require.True(t, ok)
	assert.Equal(t, c(entities.Six), up)

	// Hole card stays hidden until the dealer is revealed.
	assert.Equal(t, cards(entities.Six), g.DealerHand())
}

func TestStartRejectsBadBets(t *testing.T) {
	g := riggedGame(t, DefaultRules(),
		entities.Ten, entities.Six, entities.Nine, entities.Five)

	assert.ErrorIs(t, g.Start(50, testBalance), ErrInvalidBet)
	// A bet above the balance clamps down, so only a balance below the
	// table minimum is actually unplayable.
	assert.ErrorIs(t, g.Start(200, 50), ErrInsufficientFunds)
	assert.Equal(t, PhaseIdle, g.Phase())

	require.NoError(t, g.Start(100, testBalance))
	assert.ErrorIs(t, g.Start(100, testBalance), ErrRoundActive)
}

func TestActionsRequireActiveRound(t *testing.T) {
	g := riggedGame(t, DefaultRules())

	assert.ErrorIs(t, g.Hit(), ErrNoRound)
	assert.ErrorIs(t, g.Stand(), ErrNoRound)
	assert.ErrorIs(t, g.Double(), ErrNoRound)
	assert.ErrorIs(t, g.Split(), ErrNoRound)
	assert.ErrorIs(t, g.Surrender(), ErrNoRound)
	assert.ErrorIs(t, g.TakeInsurance(false), ErrNoRound)
	assert.ErrorIs(t, g.DeclineInsurance(), ErrNoRound)
}

func TestStandLetsDealerDrawOut(t *testing.T) {
	// Player 19 vs dealer 6+5, dealer draws a 9 to 20.
	g := riggedGame(t, DefaultRules(),
		entities.Ten, entities.Six, entities.Nine, entities.Five, entities.Nine)

	require.NoError(t, g.Start(100, testBalance))
	require.NoError(t, g.Stand())

	assert.Equal(t, PhaseIdle, g.Phase())
	sum := g.LastSummary()
	require.NotNil(t, sum)
	require.Len(t, sum.Hands, 1)
	assert.Equal(t, ResultLose, sum.Hands[0].Result)
	assert.Equal(t, int64(-100), sum.Hands[0].Net)
	assert.Equal(t, int64(-100), sum.NetTotal)
	assert.Equal(t, 20, sum.DealerValue)
}

func TestHitBustEndsHand(t *testing.T) {
	g := riggedGame(t, DefaultRules(),
		entities.Ten, entities.Six, entities.Nine, entities.Five, entities.King)

	require.NoError(t, g.Start(100, testBalance))
	require.NoError(t, g.Hit())

	assert.Equal(t, PhaseIdle, g.Phase())
	sum := g.LastSummary()
	require.NotNil(t, sum)
	assert.Equal(t, ResultBust, sum.Hands[0].Result)
	assert.Equal(t, int64(-100), sum.NetTotal)
	// All hands busted: the dealer reveals but does not draw.
	assert.Equal(t, 11, sum.DealerValue)
}

func TestHitToTwentyOneAutoStands(t *testing.T) {
	// Player 5+6, hits a ten to 21, which stands automatically and the
	// round runs to settlement in the same call.
	g := riggedGame(t, DefaultRules(),
		entities.Five, entities.Six, entities.Six, entities.Ten, entities.King, entities.Ace)

	require.NoError(t, g.Start(100, testBalance))
	require.NoError(t, g.Hit())

	assert.Equal(t, PhaseIdle, g.Phase())
	sum := g.LastSummary()
	require.NotNil(t, sum)
	assert.Equal(t, 21, HandValue(sum.Hands[0].Cards))
	assert.Equal(t, ResultWin, sum.Hands[0].Result)
}

func TestDoubleDrawsOneAndFinishes(t *testing.T) {
	// Player 5+6 doubles into a 9 for 20; dealer 6+10 draws a king and busts.
	g := riggedGame(t, DefaultRules(),
		entities.Five, entities.Six, entities.Six, entities.Ten, entities.Nine, entities.King)

	require.NoError(t, g.Start(100, testBalance))
	require.NoError(t, g.Double())

	sum := g.LastSummary()
	require.NotNil(t, sum)
	require.Len(t, sum.Hands, 1)
	assert.True(t, sum.Hands[0].Doubled)
	assert.Equal(t, int64(200), sum.Hands[0].Bet)
	assert.Equal(t, ResultWin, sum.Hands[0].Result)
	assert.Equal(t, int64(200), sum.NetTotal)
}

func TestDoubleRequiresFirstActionAndFunds(t *testing.T) {
	g := riggedGame(t, DefaultRules(),
		entities.Five, entities.Six, entities.Six, entities.Ten,
		entities.Two, entities.Nine, entities.King)

	require.NoError(t, g.Start(100, testBalance))
	require.NoError(t, g.Hit()) // 13, still playing
	assert.ErrorIs(t, g.Double(), ErrIllegalAction)

	g2 := riggedGame(t, DefaultRules(),
		entities.Five, entities.Six, entities.Six, entities.Ten)
	require.NoError(t, g2.Start(100, 100))
	assert.ErrorIs(t, g2.Double(), ErrInsufficientFunds)
}

func TestSurrenderForfeitsHalf(t *testing.T) {
	g := riggedGame(t, DefaultRules(),
		entities.Ten, entities.Six, entities.Six, entities.Ten)

	require.NoError(t, g.Start(100, testBalance))
	require.NoError(t, g.Surrender())

	sum := g.LastSummary()
	require.NotNil(t, sum)
	assert.Equal(t, ResultSurrender, sum.Hands[0].Result)
	assert.Equal(t, int64(-50), sum.NetTotal)
	// Nothing live, so the dealer keeps 16.
	assert.Equal(t, 16, sum.DealerValue)
}

func TestSurrenderOnlyFirstAction(t *testing.T) {
	g := riggedGame(t, DefaultRules(),
		entities.Ten, entities.Six, entities.Six, entities.Ten,
		entities.Two, entities.Nine)

	require.NoError(t, g.Start(100, testBalance))
	require.NoError(t, g.Hit())
	assert.ErrorIs(t, g.Surrender(), ErrIllegalAction)
}

func TestSplitEights(t *testing.T) {
	// 8,8 vs dealer 5. The split inserts the new hand after the current
	// one; each half draws a fresh card and the action stays on the first.
	g := riggedGame(t, DefaultRules(),
		entities.Eight, entities.Five, entities.Eight, entities.Ten,
		entities.Two, entities.Three, // one fresh card per half
		entities.King, entities.Queen, // first half hits to 20, then busts
		entities.Five, entities.King) // second half hits to 16, then busts
	require.NoError(t, g.Start(100, testBalance))
	require.NoError(t, g.Split())

	hands := g.Hands()
	require.Len(t, hands, 2)
	assert.Equal(t, cards(entities.Eight, entities.Two), hands[0].Cards)
	assert.Equal(t, cards(entities.Eight, entities.Three), hands[1].Cards)
	assert.Equal(t, int64(100), hands[1].Bet)
	assert.True(t, hands[0].FirstAction)
	assert.True(t, hands[1].FirstAction)
	assert.Equal(t, 0, g.CurrentHandIndex(), "play continues on the first half")
	assert.Equal(t, int64(200), g.Committed())

	// Play out the first half until it busts; action moves to the second.
	require.NoError(t, g.Hit())
	assert.Equal(t, 0, g.CurrentHandIndex())
	require.NoError(t, g.Hit())
	assert.Equal(t, 1, g.CurrentHandIndex())

	// Bust the second half too; the round settles without a dealer draw.
	require.NoError(t, g.Hit())
	require.NoError(t, g.Hit())
	assert.Equal(t, PhaseIdle, g.Phase())
	sum := g.LastSummary()
	require.NotNil(t, sum)
	require.Len(t, sum.Hands, 2)
	assert.Equal(t, int64(-200), sum.NetTotal)
	assert.Equal(t, 15, sum.DealerValue)
}

func TestSplitLegality(t *testing.T) {
	g := riggedGame(t, DefaultRules(),
		entities.Eight, entities.Five, entities.Nine, entities.Ten)
	require.NoError(t, g.Start(100, testBalance))
	assert.ErrorIs(t, g.Split(), ErrIllegalAction, "unequal ranks")

	g2 := riggedGame(t, DefaultRules(),
		entities.Eight, entities.Five, entities.Eight, entities.Ten)
	require.NoError(t, g2.Start(100, 100))
	assert.ErrorIs(t, g2.Split(), ErrInsufficientFunds)
}

func TestSplitAcesOneCardEach(t *testing.T) {
	// Split aces draw one card each and are done; dealer stands on 17.
	g := riggedGame(t, DefaultRules(),
		entities.Ace, entities.Seven, entities.Ace, entities.Ten,
		entities.Ten, entities.Five)
	require.NoError(t, g.Start(200, testBalance))
	require.NoError(t, g.Split())

	assert.Equal(t, PhaseIdle, g.Phase(), "one card each, then straight to settlement")
	sum := g.LastSummary()
	require.NotNil(t, sum)
	require.Len(t, sum.Hands, 2)

	// A,10 on a split ace is 21 but not a natural.
	assert.Equal(t, ResultWin, sum.Hands[0].Result)
	assert.Equal(t, int64(200), sum.Hands[0].Net)
	assert.True(t, sum.Hands[0].SplitAce)

	// A,5 is 16 against the dealer's 17.
	assert.Equal(t, ResultLose, sum.Hands[1].Result)
	assert.Equal(t, int64(0), sum.NetTotal)
}

func TestSplitAcesPlayableWhenOneCardRuleOff(t *testing.T) {
	rules := DefaultRules()
	rules.SplitAceOneCard = false

	g := riggedGame(t, rules,
		entities.Ace, entities.Seven, entities.Ace, entities.Ten,
		entities.Five, entities.Six, entities.King)
	require.NoError(t, g.Start(200, testBalance))
	require.NoError(t, g.Split())

	// With the one-card rule off the halves stay playable.
	require.Equal(t, PhasePlayerTurn, g.Phase())
	require.NoError(t, g.Hit())
}

func TestMaxHandsLimit(t *testing.T) {
	rules := DefaultRules()
	rules.MaxHands = 2

	g := riggedGame(t, rules,
		entities.Eight, entities.Five, entities.Eight, entities.Ten,
		entities.Eight, entities.Eight)
	require.NoError(t, g.Start(100, testBalance))
	require.NoError(t, g.Split())
	assert.ErrorIs(t, g.Split(), ErrIllegalAction, "table caps the hand count")
}

func TestDealerBlackjackShortCircuits(t *testing.T) {
	// Ten upcard hiding an ace: peek finds the blackjack and the round
	// settles before the player ever acts.
	g := riggedGame(t, DefaultRules(),
		entities.Ten, entities.King, entities.Nine, entities.Ace)

	require.NoError(t, g.Start(100, testBalance))
	assert.Equal(t, PhaseIdle, g.Phase())

	sum := g.LastSummary()
	require.NotNil(t, sum)
	assert.True(t, sum.DealerBlackjack)
	assert.Equal(t, ResultLose, sum.Hands[0].Result)
	assert.Equal(t, int64(-100), sum.NetTotal)
	assert.Nil(t, sum.Insurance)
}

func TestBlackjackVersusDealerBlackjackPushes(t *testing.T) {
	g := riggedGame(t, DefaultRules(),
		entities.Ace, entities.Queen, entities.King, entities.Ace)

	require.NoError(t, g.Start(100, testBalance))
	assert.Equal(t, PhaseIdle, g.Phase())

	sum := g.LastSummary()
	require.NotNil(t, sum)
	assert.True(t, sum.DealerBlackjack)
	assert.Equal(t, ResultPush, sum.Hands[0].Result)
	assert.Equal(t, int64(0), sum.NetTotal)
}

func TestPlayerBlackjackSettlesImmediately(t *testing.T) {
	// Dealer upcard 9: no peek, no insurance, the natural pays at once
	// without a dealer draw.
	g := riggedGame(t, DefaultRules(),
		entities.Ace, entities.Nine, entities.King, entities.Five)

	require.NoError(t, g.Start(100, testBalance))
	assert.Equal(t, PhaseIdle, g.Phase())

	sum := g.LastSummary()
	require.NotNil(t, sum)
	assert.Equal(t, ResultBlackjack, sum.Hands[0].Result)
	assert.Equal(t, int64(150), sum.NetTotal)
	assert.Equal(t, 14, sum.DealerValue)
}

func TestInsuranceOfferDefersBlackjack(t *testing.T) {
	// Player natural against a dealer ace without blackjack: the round
	// waits for the insurance decision.
	g := riggedGame(t, DefaultRules(),
		entities.Ace, entities.Ace, entities.King, entities.Nine)

	require.NoError(t, g.Start(200, testBalance))
	assert.Equal(t, PhaseDealt, g.Phase())
	assert.True(t, g.InsuranceState().Offered)
	assert.Nil(t, g.LastSummary())

	require.NoError(t, g.DeclineInsurance())
	assert.Equal(t, PhaseIdle, g.Phase())

	sum := g.LastSummary()
	require.NotNil(t, sum)
	assert.Equal(t, ResultBlackjack, sum.Hands[0].Result)
	assert.Equal(t, int64(300), sum.NetTotal)
	assert.Nil(t, sum.Insurance)
}

func TestEvenMoney(t *testing.T) {
	g := riggedGame(t, DefaultRules(),
		entities.Ace, entities.Ace, entities.King, entities.Nine)

	require.NoError(t, g.Start(200, testBalance))
	require.NoError(t, g.TakeInsurance(true))

	sum := g.LastSummary()
	require.NotNil(t, sum)
	require.NotNil(t, sum.Insurance)
	assert.True(t, sum.Insurance.EvenMoney)
	assert.Equal(t, int64(100), sum.Insurance.Amount)
	// Natural +300, insurance -100: net equals the original bet, which
	// is exactly what even money promises.
	assert.Equal(t, int64(200), sum.NetTotal)
}

func TestInsuranceUnavailableWhenBelowStep(t *testing.T) {
	// Half of a minimum bet floors to zero at the table step.
	g := riggedGame(t, DefaultRules(),
		entities.Ten, entities.Ace, entities.Nine, entities.Nine)

	require.NoError(t, g.Start(100, testBalance))
	assert.True(t, g.InsuranceState().Offered)
	assert.ErrorIs(t, g.TakeInsurance(false), ErrInsuranceUnavailable)

	// The offer is still pending; declining resumes play.
	require.NoError(t, g.DeclineInsurance())
	assert.Equal(t, PhasePlayerTurn, g.Phase())
}

func TestInsuranceLosesWhenDealerMisses(t *testing.T) {
	// Dealer shows an ace without the blackjack; insurance is taken and
	// lost while the hand is played out and won.
	g := riggedGame(t, DefaultRules(),
		entities.Ten, entities.Ace, entities.Nine, entities.Nine, entities.King)

	require.NoError(t, g.Start(200, testBalance))
	require.NoError(t, g.TakeInsurance(false))
	assert.Equal(t, PhasePlayerTurn, g.Phase())

	require.NoError(t, g.Stand())
	sum := g.LastSummary()
	require.NotNil(t, sum)
	require.NotNil(t, sum.Insurance)
	assert.False(t, sum.Insurance.Won)
	assert.Equal(t, int64(-100), sum.Insurance.Net)
	// Dealer A,9 stands on 20; player 19 loses.
	assert.Equal(t, ResultLose, sum.Hands[0].Result)
	assert.Equal(t, int64(-300), sum.NetTotal)
}

func TestActionImplicitlyDeclinesInsurance(t *testing.T) {
	g := riggedGame(t, DefaultRules(),
		entities.Ten, entities.Ace, entities.Nine, entities.Nine, entities.King)

	require.NoError(t, g.Start(200, testBalance))
	assert.True(t, g.InsuranceState().Offered)

	require.NoError(t, g.Stand())
	sum := g.LastSummary()
	require.NotNil(t, sum)
	assert.Nil(t, sum.Insurance, "standing declined the pending offer")
}

func TestHitConsumedWhenDeclineSettlesNatural(t *testing.T) {
	g := riggedGame(t, DefaultRules(),
		entities.Ace, entities.Ace, entities.King, entities.Nine)

	require.NoError(t, g.Start(200, testBalance))
	require.NoError(t, g.Hit(), "the implicit decline settles the natural and absorbs the action")
	assert.Equal(t, PhaseIdle, g.Phase())
	assert.Equal(t, ResultBlackjack, g.LastSummary().Hands[0].Result)
}

func TestDealerHitsSoftSeventeenWhenConfigured(t *testing.T) {
	stand17 := DefaultRules()
	g := riggedGame(t, stand17,
		entities.Ten, entities.Ace, entities.Nine, entities.Six, entities.Four)
	require.NoError(t, g.Start(200, testBalance))
	require.NoError(t, g.DeclineInsurance())
	require.NoError(t, g.Stand())
	assert.Equal(t, 17, g.LastSummary().DealerValue, "S17 dealer keeps soft 17")

	hit17 := DefaultRules()
	hit17.HitSoft17 = true
	g = riggedGame(t, hit17,
		entities.Ten, entities.Ace, entities.Nine, entities.Six, entities.Four)
	require.NoError(t, g.Start(200, testBalance))
	require.NoError(t, g.DeclineInsurance())
	require.NoError(t, g.Stand())
	assert.Equal(t, 21, g.LastSummary().DealerValue, "H17 dealer draws the four")
}

func TestDoubleAfterSplitToggle(t *testing.T) {
	noDAS := DefaultRules()
	noDAS.DoubleAfterSplit = false

	g := riggedGame(t, noDAS,
		entities.Eight, entities.Five, entities.Eight, entities.Ten,
		entities.Two, entities.Three)
	require.NoError(t, g.Start(100, testBalance))
	require.NoError(t, g.Split())
	assert.ErrorIs(t, g.Double(), ErrIllegalAction)
	assert.False(t, g.LegalActions().Double)
}

func TestLegalActionsMatchState(t *testing.T) {
	g := riggedGame(t, DefaultRules(),
		entities.Eight, entities.Five, entities.Eight, entities.Ten)
	require.NoError(t, g.Start(100, testBalance))

	actions := g.LegalActions()
	assert.True(t, actions.Hit)
	assert.True(t, actions.Stand)
	assert.True(t, actions.Double)
	assert.True(t, actions.Split)
	assert.True(t, actions.Surrender)
	assert.False(t, actions.TakeInsurance)
	assert.False(t, actions.DeclineInsurance)

	assert.Equal(t, Actions{}, riggedGame(t, DefaultRules()).LegalActions())
}

func TestSummarySurvivesIntoNextRound(t *testing.T) {
	g := riggedGame(t, DefaultRules(),
		entities.Ten, entities.Six, entities.Nine, entities.Five, entities.Nine)
	require.NoError(t, g.Start(100, testBalance))
	require.NoError(t, g.Stand())

	first := g.LastSummary()
	require.NotNil(t, first)

	// A new deal must not disturb the previous snapshot.
	require.NoError(t, g.Start(100, testBalance))
	assert.Same(t, first, g.LastSummary())

	require.NoError(t, g.Stand())
	assert.NotSame(t, first, g.LastSummary())
}

func TestRejectedActionLeavesStateUntouched(t *testing.T) {
	g := riggedGame(t, DefaultRules(),
		entities.Eight, entities.Five, entities.Nine, entities.Ten)
	require.NoError(t, g.Start(100, testBalance))

	before := g.Hands()
	require.Error(t, g.Split())
	assert.Equal(t, before, g.Hands())
	assert.Equal(t, PhasePlayerTurn, g.Phase())
	assert.Equal(t, int64(100), g.Committed())
}
