package bankroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/cardhouse/blackjack/pkg/entities"
	bankrollRepo "github.com/cardhouse/blackjack/pkg/repositories/bankroll"
)

// Service handles bankroll business logic. It is the only writer of the
// persistent balance: the round engine proposes deltas and this service
// applies them.
type Service struct {
	repo            bankrollRepo.Repository
	startingBalance int64
	logger          *log.Logger
}

// NewService creates a new bankroll service
func NewService(repo bankrollRepo.Repository, startingBalance int64, logger *log.Logger) *Service {
	return &Service{
		repo:            repo,
		startingBalance: startingBalance,
		logger:          logger.WithPrefix("bankroll"),
	}
}

// GetOrCreate retrieves a player's bankroll, creating one at the
// configured starting balance on first sight. The bool reports creation.
func (s *Service) GetOrCreate(ctx context.Context, playerID string) (*entities.Bankroll, bool, error) {
	bankroll, err := s.repo.GetBankroll(ctx, playerID)
	if err == nil {
		return bankroll, false, nil
	}
	if !errors.Is(err, bankrollRepo.ErrBankrollNotFound) {
		return nil, false, fmt.Errorf("loading bankroll: %w", err)
	}

	bankroll = &entities.Bankroll{
		PlayerID:    playerID,
		Balance:     s.startingBalance,
		LastUpdated: time.Now(),
	}
	if err := s.repo.SaveBankroll(ctx, bankroll); err != nil {
		return nil, false, fmt.Errorf("creating bankroll: %w", err)
	}

	s.logger.Info("created bankroll", "player", playerID, "balance", bankroll.Balance)
	return bankroll, true, nil
}

// Balance returns the player's current balance.
func (s *Service) Balance(ctx context.Context, playerID string) (int64, error) {
	bankroll, _, err := s.GetOrCreate(ctx, playerID)
	if err != nil {
		return 0, err
	}
	return bankroll.Balance, nil
}

// ApplyRoundNet applies a settled round's signed net to the balance and
// records the movement against the round ID.
func (s *Service) ApplyRoundNet(ctx context.Context, playerID string, net int64, roundID string) (*entities.Bankroll, error) {
	bankroll, _, err := s.GetOrCreate(ctx, playerID)
	if err != nil {
		return nil, err
	}

	bankroll.Balance += net
	bankroll.LastUpdated = time.Now()
	if err := s.repo.SaveBankroll(ctx, bankroll); err != nil {
		return nil, fmt.Errorf("saving bankroll: %w", err)
	}

	tx := &entities.Transaction{
		ID:           uuid.New().String(),
		PlayerID:     playerID,
		Amount:       net,
		Type:         entities.TransactionTypeRound,
		ReferenceID:  roundID,
		Description:  "Round settlement",
		Timestamp:    bankroll.LastUpdated,
		BalanceAfter: bankroll.Balance,
	}
	if err := s.repo.AddTransaction(ctx, tx); err != nil {
		// Balance is already committed; a missing ledger row is worth a
		// warning but not a failed settlement.
		s.logger.Warn("recording transaction failed", "player", playerID, "error", err)
	}

	s.logger.Info("applied round net", "player", playerID, "net", net, "balance", bankroll.Balance)
	return bankroll, nil
}

// SetLastBet stores the most recently accepted wager for rebets.
func (s *Service) SetLastBet(ctx context.Context, playerID string, bet int64) error {
	bankroll, _, err := s.GetOrCreate(ctx, playerID)
	if err != nil {
		return err
	}
	if bankroll.LastBet == bet {
		return nil
	}

	bankroll.LastBet = bet
	bankroll.LastUpdated = time.Now()
	if err := s.repo.SaveBankroll(ctx, bankroll); err != nil {
		return fmt.Errorf("saving bankroll: %w", err)
	}
	return nil
}

// Reset restores the bankroll to the starting balance and records the
// adjustment.
func (s *Service) Reset(ctx context.Context, playerID string) (*entities.Bankroll, error) {
	bankroll, _, err := s.GetOrCreate(ctx, playerID)
	if err != nil {
		return nil, err
	}

	delta := s.startingBalance - bankroll.Balance
	bankroll.Balance = s.startingBalance
	bankroll.LastBet = 0
	bankroll.LastUpdated = time.Now()
	if err := s.repo.SaveBankroll(ctx, bankroll); err != nil {
		return nil, fmt.Errorf("saving bankroll: %w", err)
	}

	tx := &entities.Transaction{
		ID:           uuid.New().String(),
		PlayerID:     playerID,
		Amount:       delta,
		Type:         entities.TransactionTypeReset,
		Description:  "Bankroll reset",
		Timestamp:    bankroll.LastUpdated,
		BalanceAfter: bankroll.Balance,
	}
	if err := s.repo.AddTransaction(ctx, tx); err != nil {
		s.logger.Warn("recording transaction failed", "player", playerID, "error", err)
	}

	s.logger.Info("reset bankroll", "player", playerID, "balance", bankroll.Balance)
	return bankroll, nil
}

// Transactions returns the player's most recent ledger entries.
func (s *Service) Transactions(ctx context.Context, playerID string, limit int) ([]*entities.Transaction, error) {
	return s.repo.GetTransactions(ctx, playerID, limit)
}
