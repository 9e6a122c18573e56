package table

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/cardhouse/blackjack/pkg/blackjack"
	"github.com/cardhouse/blackjack/pkg/entities"
	historyRepo "github.com/cardhouse/blackjack/pkg/repositories/history"
	bankrollSvc "github.com/cardhouse/blackjack/pkg/services/bankroll"
)

// Service ties the round engine to its collaborators: it feeds the
// engine the persisted balance, forwards player actions, and when a round
// settles it applies the net to the bankroll and archives the round.
// Settlement can hide inside any action call (a hit that busts the last
// hand, a decline that pays a natural), so every action funnels through
// the same post-call check.
type Service struct {
	engine   *blackjack.Game
	bankroll *bankrollSvc.Service
	history  historyRepo.Repository
	logger   *log.Logger
	playerID string

	roundID string             // ID assigned at Start, carried into the archive
	applied *blackjack.Summary // last summary already applied to the bankroll
}

// NewService creates a new table service for one player.
func NewService(engine *blackjack.Game, bankroll *bankrollSvc.Service, history historyRepo.Repository, playerID string, logger *log.Logger) *Service {
	return &Service{
		engine:   engine,
		bankroll: bankroll,
		history:  history,
		logger:   logger.WithPrefix("table"),
		playerID: playerID,
		applied:  engine.LastSummary(),
	}
}

// StartRound deals a new round for the given wager, validated against the
// persisted balance. The accepted (clamped) bet becomes the player's
// rebet amount.
func (s *Service) StartRound(ctx context.Context, bet int64) error {
	bankroll, _, err := s.bankroll.GetOrCreate(ctx, s.playerID)
	if err != nil {
		return err
	}

	if err := s.engine.Start(bet, bankroll.Balance); err != nil {
		return err
	}
	s.roundID = uuid.New().String()

	accepted := s.acceptedBet()
	if err := s.bankroll.SetLastBet(ctx, s.playerID, accepted); err != nil {
		s.logger.Warn("storing last bet failed", "error", err)
	}

	s.logger.Info("round started", "round", s.roundID, "bet", accepted)
	return s.settleIfNeeded(ctx)
}

// Rebet starts a round at the last accepted wager, falling back to the
// table minimum for a fresh bankroll.
func (s *Service) Rebet(ctx context.Context) error {
	bankroll, _, err := s.bankroll.GetOrCreate(ctx, s.playerID)
	if err != nil {
		return err
	}

	bet := bankroll.LastBet
	if bet == 0 {
		bet = s.engine.Limits().MinBet
	}
	return s.StartRound(ctx, bet)
}

// acceptedBet reads the wager the engine actually accepted: from the live
// hand while the round runs, from the summary when the deal settled the
// round on the spot.
func (s *Service) acceptedBet() int64 {
	if hands := s.engine.Hands(); len(hands) > 0 {
		return hands[0].Bet
	}
	if sum := s.engine.LastSummary(); sum != nil && len(sum.Hands) > 0 {
		return sum.Hands[0].Bet
	}
	return 0
}

// Hit draws a card for the current hand.
func (s *Service) Hit(ctx context.Context) error {
	if err := s.engine.Hit(); err != nil {
		return err
	}
	return s.settleIfNeeded(ctx)
}

// Stand finishes the current hand.
func (s *Service) Stand(ctx context.Context) error {
	if err := s.engine.Stand(); err != nil {
		return err
	}
	return s.settleIfNeeded(ctx)
}

// Double doubles down on the current hand.
func (s *Service) Double(ctx context.Context) error {
	if err := s.engine.Double(); err != nil {
		return err
	}
	return s.settleIfNeeded(ctx)
}

// Split splits the current pair.
func (s *Service) Split(ctx context.Context) error {
	if err := s.engine.Split(); err != nil {
		return err
	}
	return s.settleIfNeeded(ctx)
}

// Surrender forfeits the original hand for half the bet.
func (s *Service) Surrender(ctx context.Context) error {
	if err := s.engine.Surrender(); err != nil {
		return err
	}
	return s.settleIfNeeded(ctx)
}

// TakeInsurance places the insurance side bet.
func (s *Service) TakeInsurance(ctx context.Context, evenMoney bool) error {
	if err := s.engine.TakeInsurance(evenMoney); err != nil {
		return err
	}
	return s.settleIfNeeded(ctx)
}

// DeclineInsurance turns down a pending insurance offer.
func (s *Service) DeclineInsurance(ctx context.Context) error {
	if err := s.engine.DeclineInsurance(); err != nil {
		return err
	}
	return s.settleIfNeeded(ctx)
}

// settleIfNeeded applies a freshly produced settlement exactly once: the
// engine publishes a new summary pointer per settlement, and this service
// remembers the last one it banked.
func (s *Service) settleIfNeeded(ctx context.Context) error {
	sum := s.engine.LastSummary()
	if sum == nil || sum == s.applied {
		return nil
	}
	s.applied = sum

	if _, err := s.bankroll.ApplyRoundNet(ctx, s.playerID, sum.NetTotal, s.roundID); err != nil {
		return fmt.Errorf("applying settlement: %w", err)
	}

	outcomes := make([]string, 0, len(sum.Hands))
	for _, h := range sum.Hands {
		outcomes = append(outcomes, h.Result.String())
	}
	record := &entities.RoundRecord{
		ID:          s.roundID,
		PlayerID:    s.playerID,
		Net:         sum.NetTotal,
		DealerValue: sum.DealerValue,
		HandCount:   len(sum.Hands),
		Outcomes:    strings.Join(outcomes, ","),
		CompletedAt: time.Now(),
	}
	if err := s.history.SaveRound(ctx, record); err != nil {
		// History is advisory; the money has already moved.
		s.logger.Warn("archiving round failed", "round", s.roundID, "error", err)
	}

	s.logger.Info("round settled", "round", s.roundID, "net", sum.NetTotal)
	return nil
}

// Balance returns the persisted balance.
func (s *Service) Balance(ctx context.Context) (int64, error) {
	return s.bankroll.Balance(ctx, s.playerID)
}

// LastBet returns the most recently accepted wager.
func (s *Service) LastBet(ctx context.Context) (int64, error) {
	bankroll, _, err := s.bankroll.GetOrCreate(ctx, s.playerID)
	if err != nil {
		return 0, err
	}
	return bankroll.LastBet, nil
}

// ResetBankroll restores the starting balance. Only legal between rounds.
func (s *Service) ResetBankroll(ctx context.Context) error {
	if s.engine.RoundActive() {
		return blackjack.ErrRoundActive
	}
	_, err := s.bankroll.Reset(ctx, s.playerID)
	return err
}

// RecentRounds returns the latest archived rounds.
func (s *Service) RecentRounds(ctx context.Context, limit int) ([]*entities.RoundRecord, error) {
	return s.history.RecentRounds(ctx, s.playerID, limit)
}

// Read-only engine queries, safe to poll every frame.

func (s *Service) Phase() blackjack.Phase               { return s.engine.Phase() }
func (s *Service) RoundActive() bool                    { return s.engine.RoundActive() }
func (s *Service) CurrentHandIndex() int                { return s.engine.CurrentHandIndex() }
func (s *Service) Hands() []*blackjack.Hand             { return s.engine.Hands() }
func (s *Service) DealerHand() []entities.Card          { return s.engine.DealerHand() }
func (s *Service) DealerUpcard() (entities.Card, bool)  { return s.engine.DealerUpcard() }
func (s *Service) InsuranceState() blackjack.Insurance  { return s.engine.InsuranceState() }
func (s *Service) LegalActions() blackjack.Actions      { return s.engine.LegalActions() }
func (s *Service) LastSummary() *blackjack.Summary      { return s.engine.LastSummary() }
func (s *Service) Committed() int64                     { return s.engine.Committed() }
func (s *Service) Limits() blackjack.Limits             { return s.engine.Limits() }
