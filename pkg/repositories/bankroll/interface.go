package bankroll

import (
	"context"
	"errors"

	"github.com/cardhouse/blackjack/pkg/entities"
)

// ErrBankrollNotFound is returned when no bankroll exists for a player.
var ErrBankrollNotFound = errors.New("bankroll not found")

// Repository defines the interface for bankroll data operations
type Repository interface {
	// GetBankroll retrieves a bankroll by player ID
	GetBankroll(ctx context.Context, playerID string) (*entities.Bankroll, error)

	// SaveBankroll creates or updates a bankroll
	SaveBankroll(ctx context.Context, bankroll *entities.Bankroll) error

	// AddTransaction records a new transaction
	AddTransaction(ctx context.Context, transaction *entities.Transaction) error

	// GetTransactions retrieves recent transactions for a player
	GetTransactions(ctx context.Context, playerID string, limit int) ([]*entities.Transaction, error)

	// Close releases the underlying store
	Close() error
}
